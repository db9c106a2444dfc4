/*
dto.go - Data Transfer Objects for API requests and responses

PURPOSE:
  Defines the JSON structures for API communication and the parsing of
  user-facing date/time strings. This is the boundary the engine never
  crosses: dates arrive as DD/MM/YYYY and times as HH:MM, and both are
  parsed and validated here before any planner value is constructed.

NAMING CONVENTION:
  - *DTO: Response types returned to clients
  - *Request: Request body types from clients

VALIDATION:
  Validation is done in handlers and the parse helpers, not in DTOs.
  DTOs are pure data carriers.

SEE ALSO:
  - handlers.go: Uses these types
*/
package api

import (
	"fmt"
	"strings"
	"time"

	"github.com/nathfher/planificador-evento/planner"
)

// =============================================================================
// REQUEST TYPES
// =============================================================================

// CreateSessionRequest opens an allocation session for one event.
type CreateSessionRequest struct {
	Date       string `json:"date"`  // DD/MM/YYYY
	Start      string `json:"start"` // HH:MM
	End        string `json:"end"`   // HH:MM
	GuestCount int    `json:"guest_count"`
	Budget     string `json:"budget"` // decimal string
}

// SelectVenueRequest reserves a venue for the session.
type SelectVenueRequest struct {
	VenueID string `json:"venue_id"`
}

// AddStaffRequest hires a staff member into the session bundle.
type AddStaffRequest struct {
	StaffID string `json:"staff_id"`
}

// AddLineItemRequest reserves a quantity of an inventory item.
type AddLineItemRequest struct {
	ItemID   string `json:"item_id"`
	Quantity int    `json:"quantity"`
}

// =============================================================================
// RESPONSE TYPES
// =============================================================================

// SessionDTO is the session state returned after every mutation.
type SessionDTO struct {
	ID         string    `json:"id"`
	Date       string    `json:"date"`
	Start      string    `json:"start"`
	End        string    `json:"end"`
	GuestCount int       `json:"guest_count"`
	Ledger     LedgerDTO `json:"ledger"`
	VenueID    string    `json:"venue_id,omitempty"`
	StaffCount int       `json:"staff_count"`
	LineItems  int       `json:"line_items"`
}

// LedgerDTO is the session's budget state.
type LedgerDTO struct {
	Ceiling   string `json:"ceiling"`
	Remaining string `json:"remaining"`
	Spent     string `json:"spent"`
}

// VenueDTO represents a venue in availability responses.
type VenueDTO struct {
	ID               string   `json:"id"`
	Name             string   `json:"name"`
	Capacity         int      `json:"capacity"`
	Price            string   `json:"price"`
	IncludedServices []string `json:"included_services,omitempty"`
	// RequiresSecurity flags pool venues so the client can warn up front
	// instead of discovering the safety rule at validation time.
	RequiresSecurity bool `json:"requires_security"`
}

// VenueAvailabilityDTO is the availability answer for the session's window.
// Suggestions are populated only when no venue is free on the requested date.
type VenueAvailabilityDTO struct {
	Venues      []VenueDTO      `json:"venues"`
	Suggestions []SuggestionDTO `json:"suggestions,omitempty"`
}

// SuggestionDTO is a venue free on an alternative date.
type SuggestionDTO struct {
	VenueID   string `json:"venue_id"`
	VenueName string `json:"venue_name"`
	Date      string `json:"date"`
}

// StaffDTO represents a staff member in availability responses.
type StaffDTO struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Trade string `json:"trade"`
	Wage  string `json:"wage"`
}

// LineItemDTO represents a reserved line item.
type LineItemDTO struct {
	ItemID    string `json:"item_id"`
	Name      string `json:"name"`
	UnitPrice string `json:"unit_price"`
	Quantity  int    `json:"quantity"`
	Subtotal  string `json:"subtotal"`
}

// QuoteDTO represents a quote in API responses.
type QuoteDTO struct {
	ID         string        `json:"id"`
	VenueID    string        `json:"venue_id"`
	VenueName  string        `json:"venue_name"`
	Date       string        `json:"date"`
	Start      string        `json:"start"`
	End        string        `json:"end"`
	GuestCount int           `json:"guest_count"`
	Staff      []StaffDTO    `json:"staff"`
	LineItems  []LineItemDTO `json:"line_items"`
	Subtotal   string        `json:"subtotal"`
	Commission string        `json:"commission"`
	Total      string        `json:"total"`
	Status     string        `json:"status"`
}

// QuoteHistoryDTO is the recorded history plus the agency's earnings.
type QuoteHistoryDTO struct {
	Quotes          []QuoteDTO `json:"quotes"`
	TotalCommission string     `json:"total_commission"`
}

// ValidationResultDTO reports the rule engine's verdict.
type ValidationResultDTO struct {
	Valid  bool   `json:"valid"`
	RuleID string `json:"rule_id,omitempty"`
	Rule   string `json:"rule,omitempty"`
	Reason string `json:"reason,omitempty"`
}

// ErrorDTO is the error envelope for all failure responses.
type ErrorDTO struct {
	Kind    string `json:"kind"`
	Message string `json:"message"`
}

// =============================================================================
// DATE/TIME PARSING - The DD/MM/YYYY + HH:MM boundary
// =============================================================================

// ParseDate parses a DD/MM/YYYY calendar date.
func ParseDate(s string) (planner.Date, error) {
	t, err := time.ParseInLocation("02/01/2006", s, time.UTC)
	if err != nil {
		return planner.Date{}, fmt.Errorf("invalid date %q: want DD/MM/YYYY", s)
	}
	return planner.NewDate(t.Year(), t.Month(), t.Day()), nil
}

// ParseClock parses an HH:MM time of day.
func ParseClock(s string) (planner.ClockTime, error) {
	var hour, minute int
	if _, err := fmt.Sscanf(s, "%d:%d", &hour, &minute); err != nil ||
		len(s) != 5 || s[2] != ':' ||
		hour < 0 || hour > 23 || minute < 0 || minute > 59 {
		return 0, fmt.Errorf("invalid time %q: want HH:MM", s)
	}
	return planner.NewClockTime(hour, minute), nil
}

// =============================================================================
// DTO BUILDERS
// =============================================================================

func toSessionDTO(s *planner.Session) SessionDTO {
	dto := SessionDTO{
		ID:         s.ID,
		Date:       s.Bundle.Window.Date.String(),
		Start:      s.Bundle.Window.Start.String(),
		End:        s.Bundle.Window.End.String(),
		GuestCount: s.Bundle.GuestCount,
		Ledger: LedgerDTO{
			Ceiling:   s.Ledger.Ceiling.String(),
			Remaining: s.Ledger.Remaining.String(),
			Spent:     s.Ledger.Spent().String(),
		},
		StaffCount: len(s.Bundle.Staff),
		LineItems:  len(s.Bundle.LineItems),
	}
	if s.Bundle.Venue != nil {
		dto.VenueID = string(s.Bundle.Venue.ID)
	}
	return dto
}

func toVenueDTO(v *planner.Venue) VenueDTO {
	requiresSecurity := containsAny(v.Name, "pool", "piscina") ||
		tagsContainAny(v.IncludedServices, "pool", "piscina")
	return VenueDTO{
		ID:               string(v.ID),
		Name:             v.Name,
		Capacity:         v.Capacity,
		Price:            v.Price.String(),
		IncludedServices: v.IncludedServices,
		RequiresSecurity: requiresSecurity,
	}
}

func toStaffDTO(s *planner.StaffMember) StaffDTO {
	return StaffDTO{ID: string(s.ID), Name: s.Name, Trade: s.Trade, Wage: s.Wage.String()}
}

func toQuoteDTO(q *planner.Quote) QuoteDTO {
	dto := QuoteDTO{
		ID:         q.ID,
		VenueID:    string(q.Venue.ID),
		VenueName:  q.Venue.Name,
		Date:       q.Window.Date.String(),
		Start:      q.Window.Start.String(),
		End:        q.Window.End.String(),
		GuestCount: q.GuestCount,
		Subtotal:   q.Subtotal.String(),
		Commission: q.Commission.String(),
		Total:      q.Total.String(),
		Status:     string(q.Status),
	}
	for _, m := range q.Staff {
		dto.Staff = append(dto.Staff, toStaffDTO(m))
	}
	for _, li := range q.LineItems {
		dto.LineItems = append(dto.LineItems, LineItemDTO{
			ItemID:    string(li.ItemID),
			Name:      li.Name,
			UnitPrice: li.UnitPrice.String(),
			Quantity:  li.Quantity,
			Subtotal:  li.Subtotal().String(),
		})
	}
	return dto
}

func containsAny(s string, needles ...string) bool {
	folded := planner.Fold(s)
	for _, n := range needles {
		if strings.Contains(folded, planner.Fold(n)) {
			return true
		}
	}
	return false
}

func tagsContainAny(tags []string, needles ...string) bool {
	for _, t := range tags {
		if containsAny(t, needles...) {
			return true
		}
	}
	return false
}

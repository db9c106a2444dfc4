/*
session.go - One allocation session: a bundle plus its budget ledger

PURPOSE:
  Drives a single event request from availability query to finalized quote.
  One session owns one CandidateBundle and one BudgetLedger; sessions run
  start-to-finish before the next begins, so nothing here locks.

LIFECYCLE:
  NewSession -> availability queries -> SelectVenue -> AddStaff* ->
  (BeginRound -> AddLineItem* -> EndRound | RollbackRound)* ->
  Validate -> BuildQuote -> Approve/Reject (commit.go)

  A session may be abandoned at any point before approval with no cleanup:
  every debit lived only in the session's ledger, and nothing was written
  to the master catalogs.

ROUNDS:
  Inventory is selected in category rounds. BeginRound snapshots the ledger
  and the line-item count; RollbackRound restores both, discarding the whole
  round, e.g. when a category's minimums can't be met within budget.
*/
package planner

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// roundMark captures the session state at the start of a selection round.
type roundMark struct {
	ledger    LedgerSnapshot
	lineItems int
}

// Session is one in-progress allocation. Not safe for concurrent use; the
// engine processes one session at a time.
type Session struct {
	ID             string
	Catalog        *Catalog
	Rules          RuleSet
	CommissionRate decimal.Decimal

	Bundle Bundle
	Ledger BudgetLedger

	round  *roundMark
	issued *Quote
}

// NewSession starts an allocation for one event request.
func NewSession(c *Catalog, rules RuleSet, window TimeWindow, guestCount int, budget decimal.Decimal) (*Session, error) {
	if err := window.Validate(); err != nil {
		return nil, err
	}
	if guestCount < 0 || budget.IsNegative() {
		return nil, ErrInvalidAmount
	}
	return &Session{
		ID:             uuid.NewString(),
		Catalog:        c,
		Rules:          rules,
		CommissionRate: DefaultCommissionRate,
		Bundle:         Bundle{GuestCount: guestCount, Window: window},
		Ledger:         NewBudgetLedger(budget),
	}, nil
}

// =============================================================================
// QUERIES - Read-only, no session state changes
// =============================================================================

// AvailableVenues returns venues free for the session window with capacity
// for the session's guest count.
func (s *Session) AvailableVenues() ([]*Venue, error) {
	return AvailableVenues(s.Catalog.Venues, s.Bundle.Window, s.Bundle.GuestCount)
}

// AvailableStaff returns free staff matching the trade.
func (s *Session) AvailableStaff(trade string) ([]*StaffMember, error) {
	return AvailableStaff(s.Catalog.Staff, trade, s.Bundle.Window)
}

// SuggestDates probes the following horizonDays dates for free venues.
func (s *Session) SuggestDates(horizonDays int) ([]Suggestion, error) {
	return SuggestAlternativeDates(s.Catalog.Venues, s.Bundle.Window, s.Bundle.GuestCount, horizonDays)
}

// =============================================================================
// BUNDLE MUTATION - Each addition debits the ledger first
// =============================================================================

// SelectVenue reserves the venue for the bundle, debiting its price. The
// venue must have capacity for the guest count and no conflicting booking.
func (s *Session) SelectVenue(id VenueID) error {
	if s.Bundle.Venue != nil {
		return ErrVenueAlreadySelected
	}
	venue, err := s.Catalog.VenueByID(id)
	if err != nil {
		return err
	}
	if venue.Capacity < s.Bundle.GuestCount || venue.HasConflict(s.Bundle.Window) {
		return ErrVenueUnavailable
	}

	ledger, err := s.Ledger.TryDebit(venue.Price)
	if err != nil {
		return err
	}
	s.Ledger = ledger
	s.Bundle.Venue = venue
	return nil
}

// AddStaff hires a staff member, debiting their wage. Re-hiring the same
// member and hiring over a conflicting booking are rejected.
func (s *Session) AddStaff(id StaffID) error {
	member, err := s.Catalog.StaffByID(id)
	if err != nil {
		return err
	}
	if s.Bundle.HasStaff(id) {
		return ErrStaffAlreadyHired
	}
	if member.HasConflict(s.Bundle.Window) {
		return ErrStaffUnavailable
	}

	ledger, err := s.Ledger.TryDebit(member.Wage)
	if err != nil {
		return err
	}
	s.Ledger = ledger
	s.Bundle.Staff = append(s.Bundle.Staff, member)
	return nil
}

// AddLineItem reserves a quantity of an inventory item, debiting its
// subtotal. The quantity is checked against stock net of what the bundle
// already reserves; stock itself is only decremented at commit.
func (s *Session) AddLineItem(id ItemID, quantity int) error {
	if quantity < 1 {
		return ErrInvalidAmount
	}
	item, err := s.Catalog.ItemByID(id)
	if err != nil {
		return err
	}

	available := item.Stock - s.Bundle.ReservedQuantity(id)
	if quantity > available {
		return &StockInsufficientError{
			ItemID:    item.ID,
			Name:      item.Name,
			Requested: quantity,
			Available: available,
		}
	}

	line := LineItem{ItemID: item.ID, Name: item.Name, UnitPrice: item.UnitPrice, Quantity: quantity}
	ledger, err := s.Ledger.TryDebit(line.Subtotal())
	if err != nil {
		return err
	}
	s.Ledger = ledger
	s.Bundle.LineItems = append(s.Bundle.LineItems, line)
	return nil
}

// =============================================================================
// ROUNDS - Snapshot/rollback of one selection round
// =============================================================================

// BeginRound marks the start of a selection round. A new round replaces any
// previous mark.
func (s *Session) BeginRound() {
	s.round = &roundMark{ledger: s.Ledger.Snapshot(), lineItems: len(s.Bundle.LineItems)}
}

// RollbackRound discards every debit and line item added since BeginRound.
// Without an active round it is a no-op.
func (s *Session) RollbackRound() {
	if s.round == nil {
		return
	}
	s.Ledger = s.Ledger.Restore(s.round.ledger)
	s.Bundle.LineItems = s.Bundle.LineItems[:s.round.lineItems]
	s.round = nil
}

// EndRound accepts the round's selections and clears the mark.
func (s *Session) EndRound() {
	s.round = nil
}

// =============================================================================
// FINALIZATION
// =============================================================================

// Validate runs the rule engine over the full candidate bundle.
func (s *Session) Validate() error {
	return s.Rules.Validate(&s.Bundle)
}

// BuildQuote validates the bundle and prices it. The returned quote is
// Pending; nothing is committed until Approve. A session carries at most one
// pending quote: rebuilding supersedes the prior quote, which is rejected so
// it can never be approved alongside its replacement.
func (s *Session) BuildQuote() (*Quote, error) {
	if err := s.Validate(); err != nil {
		return nil, err
	}
	quote, err := BuildQuote(&s.Bundle, s.CommissionRate)
	if err != nil {
		return nil, err
	}
	if s.issued != nil && s.issued.Status == StatusPending {
		_ = Reject(s.issued)
	}
	s.issued = quote
	return quote, nil
}

// IssuedQuote returns the quote most recently built by this session, or nil.
func (s *Session) IssuedQuote() *Quote {
	return s.issued
}

/*
quote.go - Pricing and the quote record

PURPOSE:
  Aggregates venue cost, staff wages, and line-item subtotals into an
  immutable quote with a flat agency commission. A quote starts Pending and
  transitions exactly once, to Approved or Rejected (see commit.go).

PRICING:
  subtotal   = venue.Price + sum(staff.Wage) + sum(lineItem.Subtotal)
  commission = subtotal x commission rate
  total      = subtotal + commission

  All arithmetic is decimal: repeated additions never accumulate cent-level
  binary-float drift. The commission rate is a configurable constant; the
  agency default is 10%.
*/
package planner

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// DefaultCommissionRate is the agency's flat commission on the subtotal.
var DefaultCommissionRate = decimal.RequireFromString("0.10")

// QuoteStatus is the quote state machine: Pending -> Approved | Rejected.
type QuoteStatus string

const (
	StatusPending  QuoteStatus = "Pending"
	StatusApproved QuoteStatus = "Approved"
	StatusRejected QuoteStatus = "Rejected"
)

// Quote is the priced record of one finalized bundle. Immutable except for
// the one-time status transition.
type Quote struct {
	ID         string
	Venue      *Venue
	Staff      []*StaffMember
	LineItems  []LineItem
	GuestCount int
	Window     TimeWindow

	Subtotal   decimal.Decimal
	Commission decimal.Decimal
	Total      decimal.Decimal
	Status     QuoteStatus
}

// BuildQuote prices the bundle. Pure and deterministic apart from the
// generated quote ID. The bundle must have a venue.
func BuildQuote(b *Bundle, commissionRate decimal.Decimal) (*Quote, error) {
	if b.Venue == nil {
		return nil, ErrNoVenueSelected
	}

	subtotal := b.Venue.Price.Add(b.StaffCost()).Add(b.LineItemCost())
	commission := subtotal.Mul(commissionRate)

	staff := make([]*StaffMember, len(b.Staff))
	copy(staff, b.Staff)
	items := make([]LineItem, len(b.LineItems))
	copy(items, b.LineItems)

	return &Quote{
		ID:         uuid.NewString(),
		Venue:      b.Venue,
		Staff:      staff,
		LineItems:  items,
		GuestCount: b.GuestCount,
		Window:     b.Window,
		Subtotal:   subtotal,
		Commission: commission,
		Total:      subtotal.Add(commission),
		Status:     StatusPending,
	}, nil
}

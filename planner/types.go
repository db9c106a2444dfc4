/*
Package planner provides the core resource allocation engine.

PURPOSE:
  This package contains the types and algorithms for allocating scarce,
  time-bound event resources (venues, staff, inventory) to a single event
  request: availability queries, alternative-date suggestions, budget
  bookkeeping with rollback, cross-resource rule validation, quote pricing,
  and the commit/release protocol against the master catalogs.

KEY CONCEPTS IN THIS FILE (types.go):
  - Venue/StaffMember/InventoryItem: Master catalog entries
  - OccupancyRecord: A committed booking attached to a venue or staff member
  - LineItem: A quantity reservation of an inventory item
  - Bundle: The in-progress selection for one event request

DESIGN PRINCIPLES:
  1. Precision: Uses decimal.Decimal for all money to avoid floating-point drift
  2. Type Safety: Strong typing for IDs prevents mixing venue/staff/item IDs
  3. Ownership: Catalog entries are referenced, never copied; only the
     commit/release protocol mutates them

USAGE:
  free, err := planner.AvailableVenues(catalog.Venues, window, guests)
  ledger := planner.NewBudgetLedger(decimal.NewFromInt(20000))
  ledger, err = ledger.TryDebit(free[0].Price)

SEE ALSO:
  - window.go: Time windows and the overlap predicate
  - ledger.go: Budget bookkeeping with snapshot/restore
  - rules.go: The constraint rule engine
  - commit.go: Commit/release against the master catalogs
*/
package planner

import (
	"github.com/shopspring/decimal"
)

// =============================================================================
// IDENTIFIERS
// =============================================================================

type VenueID string
type StaffID string
type ItemID string

// =============================================================================
// OCCUPANCY - Committed bookings on a venue or staff member
// =============================================================================

// OccupancyRecord is a committed booking. Records are append-only: created by
// Approve, removed by Release on an exact date match, never mutated in place.
type OccupancyRecord struct {
	Window TimeWindow
}

// =============================================================================
// MASTER CATALOG ENTRIES
// =============================================================================

// Venue is a bookable event space. Owned by the master catalog; allocation
// sessions hold references and only the commit protocol mutates Occupancy.
type Venue struct {
	ID               VenueID
	Name             string
	Capacity         int
	Price            decimal.Decimal
	IncludedServices []string
	Occupancy        []OccupancyRecord
}

// HasConflict reports whether any committed booking overlaps the window.
func (v *Venue) HasConflict(w TimeWindow) bool {
	return hasConflict(v.Occupancy, w)
}

// StaffMember is a hireable worker (photography, security, catering-bar,
// florist, lighting, DJ, ...). Same ownership pattern as Venue.
type StaffMember struct {
	ID        StaffID
	Name      string
	Trade     string
	Wage      decimal.Decimal
	Occupancy []OccupancyRecord
}

// HasConflict reports whether any committed booking overlaps the window.
func (s *StaffMember) HasConflict(w TimeWindow) bool {
	return hasConflict(s.Occupancy, w)
}

func hasConflict(records []OccupancyRecord, w TimeWindow) bool {
	for _, r := range records {
		if overlaps(r.Window, w) {
			return true
		}
	}
	return false
}

// Category classifies inventory items.
type Category string

const (
	CategoryCatering   Category = "catering"
	CategoryBeverage   Category = "beverage"
	CategoryDessert    Category = "dessert"
	CategoryFurniture  Category = "furniture"
	CategoryTechnology Category = "technology"
	CategoryDecoration Category = "decoration"
)

// InventoryItem is a stocked product in the master inventory. Stock is
// decremented on commit and re-incremented on release.
type InventoryItem struct {
	ID        ItemID
	Name      string
	UnitPrice decimal.Decimal
	Stock     int
	Category  Category
}

// =============================================================================
// LINE ITEM - A reservation of an inventory item within one bundle
// =============================================================================

// LineItem reserves a quantity of an inventory item. Immutable once added to
// a bundle; removed only by rolling back the whole selection round.
type LineItem struct {
	ItemID    ItemID
	Name      string
	UnitPrice decimal.Decimal
	Quantity  int
}

// Subtotal is unit price times quantity.
func (li LineItem) Subtotal() decimal.Decimal {
	return li.UnitPrice.Mul(decimal.NewFromInt(int64(li.Quantity)))
}

// =============================================================================
// BUNDLE - The in-progress selection for one event request
// =============================================================================

// Bundle is the candidate selection built incrementally during one allocation
// session. Owned exclusively by that session; never shared.
type Bundle struct {
	Venue      *Venue
	Staff      []*StaffMember
	LineItems  []LineItem
	GuestCount int
	Window     TimeWindow
}

// HasStaff reports whether the staff member is already part of the bundle.
func (b *Bundle) HasStaff(id StaffID) bool {
	for _, s := range b.Staff {
		if s.ID == id {
			return true
		}
	}
	return false
}

// ReservedQuantity returns how many units of an item the bundle already holds.
func (b *Bundle) ReservedQuantity(id ItemID) int {
	total := 0
	for _, li := range b.LineItems {
		if li.ItemID == id {
			total += li.Quantity
		}
	}
	return total
}

// StaffCost sums the wages of all hired staff.
func (b *Bundle) StaffCost() decimal.Decimal {
	total := decimal.Zero
	for _, s := range b.Staff {
		total = total.Add(s.Wage)
	}
	return total
}

// LineItemCost sums the subtotals of all reserved line items.
func (b *Bundle) LineItemCost() decimal.Decimal {
	total := decimal.Zero
	for _, li := range b.LineItems {
		total = total.Add(li.Subtotal())
	}
	return total
}

/*
commit.go - The commit/release protocol against the master catalogs

PURPOSE:
  The only code in the engine that mutates the master catalogs. On approval
  it writes the bundle's occupancy and stock effects; on rejection it
  touches nothing (nothing was ever written outside the ephemeral session).
  Release is the inverse of approval for quotes cancelled later.

STATE MACHINE:
  Pending --Approve--> Approved   (terminal)
  Pending --Reject---> Rejected   (terminal)

ATOMICITY:
  Approve validates every stock decrement before applying any mutation. A
  decrement that would go negative means the original availability check
  went stale; the whole commit aborts with StockInconsistency and the
  catalogs are untouched.

IDEMPOTENT RELEASE:
  Release keys off the venue's occupancy record for the quote's date. If the
  record is already gone, the quote was already released: the call is a
  no-op success, and staff occupancy and stock are not touched again.
*/
package planner

// Approve commits a pending quote: appends the occupancy record to the venue
// and each hired staff member, and decrements stock for each line item. All
// decrements are validated before any mutation is applied.
func Approve(c *Catalog, q *Quote) error {
	if q.Status != StatusPending {
		return ErrQuoteFinalized
	}

	venue, err := c.VenueByID(q.Venue.ID)
	if err != nil {
		return err
	}
	staff := make([]*StaffMember, 0, len(q.Staff))
	for _, hired := range q.Staff {
		s, err := c.StaffByID(hired.ID)
		if err != nil {
			return err
		}
		staff = append(staff, s)
	}

	// Validate every decrement first. Multiple line items may draw from the
	// same inventory item, so demand is aggregated per item.
	demand := map[ItemID]int{}
	for _, li := range q.LineItems {
		demand[li.ItemID] += li.Quantity
	}
	decrements := make(map[*InventoryItem]int, len(demand))
	for id, qty := range demand {
		item, err := c.ItemByID(id)
		if err != nil {
			return err
		}
		if item.Stock < qty {
			return &StockInconsistencyError{
				ItemID:    item.ID,
				Name:      item.Name,
				Requested: qty,
				Available: item.Stock,
			}
		}
		decrements[item] = qty
	}

	// Apply. Nothing below can fail.
	record := OccupancyRecord{Window: q.Window}
	venue.Occupancy = append(venue.Occupancy, record)
	for _, s := range staff {
		s.Occupancy = append(s.Occupancy, record)
	}
	for item, qty := range decrements {
		item.Stock -= qty
	}

	q.Status = StatusApproved
	return nil
}

// Reject marks a pending quote rejected. Nothing in the master catalogs is
// touched: the session's debits lived only in its ephemeral ledger.
func Reject(q *Quote) error {
	if q.Status != StatusPending {
		return ErrQuoteFinalized
	}
	q.Status = StatusRejected
	return nil
}

// Release frees the resources of an already-approved quote that was later
// cancelled: removes the occupancy record (exact date match) from the venue
// and each staff member, and re-increments stock. Idempotent: a second call
// finds no venue record for the date and returns without touching anything.
func Release(c *Catalog, q *Quote) error {
	if q.Status != StatusApproved {
		return ErrQuoteNotApproved
	}

	venue, err := c.VenueByID(q.Venue.ID)
	if err != nil {
		return err
	}

	kept, removed := removeOccupancyByDate(venue.Occupancy, q.Window.Date)
	if !removed {
		// Already released.
		return nil
	}
	venue.Occupancy = kept

	for _, hired := range q.Staff {
		s, err := c.StaffByID(hired.ID)
		if err != nil {
			return err
		}
		s.Occupancy, _ = removeOccupancyByDate(s.Occupancy, q.Window.Date)
	}

	for _, li := range q.LineItems {
		item, err := c.ItemByID(li.ItemID)
		if err != nil {
			return err
		}
		item.Stock += li.Quantity
	}
	return nil
}

func removeOccupancyByDate(records []OccupancyRecord, date Date) ([]OccupancyRecord, bool) {
	kept := records[:0]
	removed := false
	for _, r := range records {
		if r.Window.Date.Equal(date) {
			removed = true
			continue
		}
		kept = append(kept, r)
	}
	return kept, removed
}

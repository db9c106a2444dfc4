package planner

// =============================================================================
// CATALOG - The three master catalogs, loaded in memory for one session run
// =============================================================================

// Catalog holds the master venue, staff, and inventory records. Sessions
// borrow read-only references for availability queries; only the commit and
// release protocol mutates entries, and only for the single active session.
type Catalog struct {
	Venues    []*Venue
	Staff     []*StaffMember
	Inventory []*InventoryItem
}

// VenueByID returns the venue or ErrVenueNotFound.
func (c *Catalog) VenueByID(id VenueID) (*Venue, error) {
	for _, v := range c.Venues {
		if v.ID == id {
			return v, nil
		}
	}
	return nil, ErrVenueNotFound
}

// StaffByID returns the staff member or ErrStaffNotFound.
func (c *Catalog) StaffByID(id StaffID) (*StaffMember, error) {
	for _, s := range c.Staff {
		if s.ID == id {
			return s, nil
		}
	}
	return nil, ErrStaffNotFound
}

// ItemByID returns the inventory item or ErrItemNotFound.
func (c *Catalog) ItemByID(id ItemID) (*InventoryItem, error) {
	for _, i := range c.Inventory {
		if i.ID == id {
			return i, nil
		}
	}
	return nil, ErrItemNotFound
}

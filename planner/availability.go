/*
availability.go - The availability index over the master catalogs

PURPOSE:
  Answers "which venues and which staff are free for this window?" by
  scanning catalog occupancy with the overlap predicate. Side-effect-free:
  nothing here mutates the catalogs.

ORDERING:
  Results preserve catalog order. Callers needing a specific order sort
  explicitly.

EDGE CASES:
  - An empty catalog yields an empty list, not an error.
  - minCapacity of 0 matches every venue.
  - An unknown trade yields an empty list, not an error. The rule engine
    relies on this permissiveness: a missing trade shows up as a rule
    violation at validation time, not as a query failure.
*/
package planner

// AvailableVenues returns the venues with capacity for minCapacity guests and
// no booking overlapping the window.
func AvailableVenues(venues []*Venue, window TimeWindow, minCapacity int) ([]*Venue, error) {
	if err := window.Validate(); err != nil {
		return nil, err
	}

	var free []*Venue
	for _, v := range venues {
		if v.Capacity < minCapacity {
			continue
		}
		if v.HasConflict(window) {
			continue
		}
		free = append(free, v)
	}
	return free, nil
}

// AvailableStaff returns staff whose trade matches (folded substring match)
// and who have no booking overlapping the window.
func AvailableStaff(staff []*StaffMember, trade string, window TimeWindow) ([]*StaffMember, error) {
	if err := window.Validate(); err != nil {
		return nil, err
	}

	var free []*StaffMember
	for _, s := range staff {
		if !containsFold(s.Trade, trade) {
			continue
		}
		if s.HasConflict(window) {
			continue
		}
		free = append(free, s)
	}
	return free, nil
}

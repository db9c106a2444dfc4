package planner_test

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/nathfher/planificador-evento/planner"
)

// =============================================================================
// TEST HELPERS
// =============================================================================

func money(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func june14() planner.Date {
	return planner.NewDate(2026, time.June, 14)
}

func window(date planner.Date, startHour, startMin, endHour, endMin int) planner.TimeWindow {
	return planner.NewTimeWindow(date,
		planner.NewClockTime(startHour, startMin),
		planner.NewClockTime(endHour, endMin))
}

func booked(w planner.TimeWindow) []planner.OccupancyRecord {
	return []planner.OccupancyRecord{{Window: w}}
}

// testCatalog builds a small catalog exercising capacity, occupancy, and
// stock edge cases.
func testCatalog() *planner.Catalog {
	return &planner.Catalog{
		Venues: []*planner.Venue{
			{ID: "v-grand", Name: "Grand Garden", Capacity: 200, Price: money("1000")},
			{ID: "v-small", Name: "Old Cellar", Capacity: 60, Price: money("500")},
			{ID: "v-busy", Name: "Sun Terrace", Capacity: 150, Price: money("800"),
				Occupancy: booked(window(june14(), 10, 0, 22, 0))},
		},
		Staff: []*planner.StaffMember{
			{ID: "st-photo", Name: "Lucía Fernández", Trade: "Fotografía", Wage: money("200")},
			{ID: "st-sec", Name: "Marco Duarte", Trade: "Seguridad", Wage: money("150")},
			{ID: "st-dj", Name: "Iván Castro", Trade: "DJ", Wage: money("300"),
				Occupancy: booked(window(june14(), 18, 0, 23, 0))},
		},
		Inventory: []*planner.InventoryItem{
			{ID: "it-chair", Name: "Banquet Chair", UnitPrice: money("2"), Stock: 300, Category: planner.CategoryFurniture},
			{ID: "it-table", Name: "Round Table", UnitPrice: money("10"), Stock: 30, Category: planner.CategoryFurniture},
			{ID: "it-cake", Name: "Wedding Cake", UnitPrice: money("150"), Stock: 1, Category: planner.CategoryDessert},
		},
	}
}

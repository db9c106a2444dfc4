/*
seed.go - Demo catalog for development and first runs

PURPOSE:
  Provides a small but complete master catalog so a fresh server is usable
  immediately: venues that exercise the hazard and acoustics rules, staff
  covering every trade the rule set references, and inventory across all
  six categories.
*/
package api

import (
	"github.com/shopspring/decimal"

	"github.com/nathfher/planificador-evento/planner"
)

func money(s string) decimal.Decimal { return decimal.RequireFromString(s) }

// SeedCatalog returns the demo catalog.
func SeedCatalog() *planner.Catalog {
	return &planner.Catalog{
		Venues: []*planner.Venue{
			{
				ID: "v-001", Name: "Crystal Palace Hall", Capacity: 250, Price: money("4500"),
				IncludedServices: []string{"air conditioning", "wifi", "glass dome"},
			},
			{
				ID: "v-002", Name: "Sun Terrace", Capacity: 120, Price: money("2800"),
				IncludedServices: []string{"pool", "garden", "parking"},
			},
			{
				ID: "v-003", Name: "Old Cellar", Capacity: 80, Price: money("1500"),
				IncludedServices: []string{"wine cellar", "heating"},
			},
			{
				ID: "v-004", Name: "Grand Garden", Capacity: 350, Price: money("6000"),
				IncludedServices: []string{"garden", "gazebo", "parking"},
			},
		},
		Staff: []*planner.StaffMember{
			{ID: "s-001", Name: "Lucía Fernández", Trade: "Fotografía", Wage: money("600")},
			{ID: "s-002", Name: "Marco Duarte", Trade: "Seguridad", Wage: money("350")},
			{ID: "s-003", Name: "Renata Solís", Trade: "Sommelier / Bartender", Wage: money("400")},
			{ID: "s-004", Name: "Iván Castro", Trade: "DJ", Wage: money("800")},
			{ID: "s-005", Name: "Paula Méndez", Trade: "Florist", Wage: money("300")},
			{ID: "s-006", Name: "Diego Ríos", Trade: "Iluminación", Wage: money("450")},
			{ID: "s-007", Name: "Carmen Vega", Trade: "Master of Ceremonies", Wage: money("500")},
			{ID: "s-008", Name: "Tomás Aguilar", Trade: "Catering-Bar", Wage: money("380")},
		},
		Inventory: []*planner.InventoryItem{
			{ID: "i-001", Name: "Gala Dinner Plate", UnitPrice: money("35"), Stock: 400, Category: planner.CategoryCatering},
			{ID: "i-002", Name: "Open Bar Package", UnitPrice: money("900"), Stock: 5, Category: planner.CategoryBeverage},
			{ID: "i-003", Name: "Wedding Cake (3 tiers)", UnitPrice: money("450"), Stock: 3, Category: planner.CategoryDessert},
			{ID: "i-004", Name: "Banquet Chair", UnitPrice: money("4"), Stock: 500, Category: planner.CategoryFurniture},
			{ID: "i-005", Name: "Round Table (10 seats)", UnitPrice: money("12"), Stock: 60, Category: planner.CategoryFurniture},
			{ID: "i-006", Name: "Professional Sound Equipment", UnitPrice: money("700"), Stock: 4, Category: planner.CategoryTechnology},
			{ID: "i-007", Name: "LED Dance Floor Lights", UnitPrice: money("350"), Stock: 6, Category: planner.CategoryTechnology},
			{ID: "i-008", Name: "Gold Mariachi Band", UnitPrice: money("1200"), Stock: 2, Category: planner.CategoryDecoration},
			{ID: "i-009", Name: "Rock Band (live set)", UnitPrice: money("1500"), Stock: 2, Category: planner.CategoryDecoration},
			{ID: "i-010", Name: "Fresh Flower Centerpiece", UnitPrice: money("25"), Stock: 80, Category: planner.CategoryDecoration},
			{ID: "i-011", Name: "Violin Solo (ceremony)", UnitPrice: money("400"), Stock: 3, Category: planner.CategoryDecoration},
		},
	}
}

package factory_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nathfher/planificador-evento/factory"
	"github.com/nathfher/planificador-evento/planner"
)

// =============================================================================
// STANDARD RULE SET TESTS
// =============================================================================

// compliantBundle satisfies every standard rule: enough chairs and tables, no
// exclusion triggers, no unmet co-requisites.
func compliantBundle(guests int) *planner.Bundle {
	return &planner.Bundle{
		Venue:      &planner.Venue{Name: "Grand Garden"},
		GuestCount: guests,
		LineItems: []planner.LineItem{
			{Name: "Banquet Chair", Quantity: guests},
			{Name: "Round Table", Quantity: guests/10 + 1},
		},
	}
}

func validate(b *planner.Bundle) *planner.Violation {
	err := factory.StandardRules().Validate(b)
	if err == nil {
		return nil
	}
	return err.(*planner.Violation)
}

func TestStandardRules_CompliantBundlePasses(t *testing.T) {
	assert.Nil(t, validate(compliantBundle(100)))
}

func TestStandardRules_CrystalHallRejectsMariachi(t *testing.T) {
	// GIVEN: The crystal hall with a mariachi band reserved
	// THEN: The acoustics rule fires with its glass-echo reason

	b := compliantBundle(100)
	b.Venue = &planner.Venue{Name: "Crystal Palace Hall"}
	b.LineItems = append(b.LineItems,
		planner.LineItem{Name: "Gold Mariachi Band", Quantity: 1},
		planner.LineItem{Name: "Professional Sound Equipment", Quantity: 1})

	violation := validate(b)
	require.NotNil(t, violation)
	assert.Equal(t, "crystal-acoustics", violation.RuleID)
	assert.Contains(t, violation.Reason, "acoustics")

	// Same lineup in a different hall is fine.
	b.Venue = &planner.Venue{Name: "Grand Garden"}
	assert.Nil(t, validate(b))
}

func TestStandardRules_ChairsMinimumBoundary(t *testing.T) {
	// 100 guests need 80 chairs: 70 fails, 80 passes.

	b := compliantBundle(100)
	b.LineItems[0].Quantity = 70

	violation := validate(b)
	require.NotNil(t, violation)
	assert.Equal(t, "chairs-minimum", violation.RuleID)

	b.LineItems[0].Quantity = 80
	assert.Nil(t, validate(b))
}

func TestStandardRules_TablesMinimum(t *testing.T) {
	b := compliantBundle(100)
	b.LineItems[1].Quantity = 9

	violation := validate(b)
	require.NotNil(t, violation)
	assert.Equal(t, "tables-minimum", violation.RuleID)

	b.LineItems[1].Quantity = 10
	assert.Nil(t, validate(b))
}

func TestStandardRules_SpanishFurnitureNamesCount(t *testing.T) {
	// Catalog items named in Spanish satisfy the furniture minimums the same
	// way the bilingual venue and safety needles do.

	b := &planner.Bundle{
		Venue:      &planner.Venue{Name: "Grand Garden"},
		GuestCount: 100,
		LineItems: []planner.LineItem{
			{Name: "Silla plegable", Quantity: 80},
			{Name: "Mesa redonda", Quantity: 10},
		},
	}
	assert.Nil(t, validate(b))

	b.LineItems[0].Quantity = 70
	violation := validate(b)
	require.NotNil(t, violation)
	assert.Equal(t, "chairs-minimum", violation.RuleID)

	b.LineItems[0].Quantity = 80
	b.LineItems[1].Quantity = 9
	violation = validate(b)
	require.NotNil(t, violation)
	assert.Equal(t, "tables-minimum", violation.RuleID)
}

func TestStandardRules_PoolVenueNeedsSecurity(t *testing.T) {
	b := compliantBundle(50)
	b.Venue = &planner.Venue{Name: "Sun Terrace", IncludedServices: []string{"Heated pool"}}

	violation := validate(b)
	require.NotNil(t, violation)
	assert.Equal(t, "pool-security", violation.RuleID)

	// The Spanish trade name satisfies the rule too.
	b.Staff = []*planner.StaffMember{{Trade: "Seguridad"}}
	assert.Nil(t, validate(b))
}

func TestStandardRules_DJExcludesRockBand(t *testing.T) {
	b := compliantBundle(50)
	b.Staff = []*planner.StaffMember{{Trade: "DJ"}}
	b.LineItems = append(b.LineItems,
		planner.LineItem{Name: "Rock Band", Quantity: 1},
		planner.LineItem{Name: "Professional Sound Equipment", Quantity: 1})

	violation := validate(b)
	require.NotNil(t, violation)
	assert.Equal(t, "dj-vs-band", violation.RuleID)
}

func TestStandardRules_OpenBarNeedsBartender(t *testing.T) {
	b := compliantBundle(50)
	b.LineItems = append(b.LineItems, planner.LineItem{Name: "Premium Open Bar", Quantity: 1})

	violation := validate(b)
	require.NotNil(t, violation)
	assert.Equal(t, "open-bar-bartender", violation.RuleID)

	b.Staff = []*planner.StaffMember{{Trade: "Sommelier y Bartender"}}
	assert.Nil(t, validate(b))
}

func TestStandardRules_ViolinNeedsMasterOfCeremonies(t *testing.T) {
	b := compliantBundle(50)
	b.LineItems = append(b.LineItems, planner.LineItem{Name: "Violin Solo", Quantity: 1})

	violation := validate(b)
	require.NotNil(t, violation)
	assert.Equal(t, "violin-ceremony", violation.RuleID)

	b.Staff = []*planner.StaffMember{{Trade: "Master of Ceremonies"}}
	assert.Nil(t, validate(b))
}

func TestStandardRules_AmplifiedMusicNeedsSoundEquipment(t *testing.T) {
	b := compliantBundle(50)
	b.LineItems = append(b.LineItems, planner.LineItem{Name: "Gold Mariachi Band", Quantity: 1})

	violation := validate(b)
	require.NotNil(t, violation)
	assert.Equal(t, "amplified-audio", violation.RuleID)

	b.LineItems = append(b.LineItems, planner.LineItem{Name: "Professional Sound Equipment", Quantity: 1})
	assert.Nil(t, validate(b))
}

func TestStandardRules_FirstFailureWinsAcrossTheTable(t *testing.T) {
	// A bundle violating both the acoustics rule and the chair minimum
	// reports the acoustics rule: it sits earlier in the table.

	b := &planner.Bundle{
		Venue:      &planner.Venue{Name: "Crystal Palace Hall"},
		GuestCount: 100,
		LineItems: []planner.LineItem{
			{Name: "Gold Mariachi Band", Quantity: 1},
			{Name: "Professional Sound Equipment", Quantity: 1},
		},
	}

	violation := validate(b)
	require.NotNil(t, violation)
	assert.Equal(t, "crystal-acoustics", violation.RuleID)
}

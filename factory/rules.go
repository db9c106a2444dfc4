/*
Package factory assembles the agency's standard rule table.

PURPOSE:
  The rule engine in planner/rules.go evaluates any ordered rule table; this
  package defines the house rules themselves as data. Adding a rule means
  appending an entry here - the evaluation loop never changes.

RULE ORDER:
  Rules are evaluated top to bottom and the first failure wins, so the table
  is ordered the way the agency wants violations reported: co-requisites,
  exclusions, safety, furniture minimums, equipment dependencies.
*/
package factory

import (
	"github.com/shopspring/decimal"

	"github.com/nathfher/planificador-evento/planner"
)

// ChairsPerGuest is the minimum chair-to-guest ratio.
var ChairsPerGuest = decimal.RequireFromString("0.8")

// GuestsPerTable is how many guests one table seats.
const GuestsPerTable = 10

// StandardRules returns the agency's cross-resource rule set in its fixed
// evaluation order.
func StandardRules() planner.RuleSet {
	return planner.RuleSet{
		planner.CoRequisite(
			"open-bar-bartender", "open bar staffing",
			[]string{"open bar", "cocktail"},
			[]string{"bartender", "sommelier"},
			"an open bar service", "a bartender or sommelier",
		),
		planner.CoRequisite(
			"violin-ceremony", "violin ceremony staffing",
			[]string{"violin"},
			[]string{"master of ceremonies"},
			"a violin solo", "a master of ceremonies",
		),
		planner.VenueExcludesItem(
			"crystal-acoustics", "crystal hall acoustics",
			[]string{"crystal", "cristal"},
			[]string{"mariachi"},
			"the crystal hall cannot host a mariachi band: the acoustics amplify echo against the glass",
		),
		planner.TradeExcludesItem(
			"dj-vs-band", "audio lineup conflict",
			[]string{"dj"},
			[]string{"rock band"},
			"a DJ and a rock band cannot share the audio setup",
		),
		planner.VenueRequiresTrade(
			"pool-security", "pool safety",
			[]string{"pool", "piscina"},
			[]string{"security", "seguridad"},
			"a venue with a pool requires hiring security staff",
		),
		planner.MinimumGuestRatio(
			"chairs-minimum", "chair seating minimum",
			[]string{"chair", "silla"}, ChairsPerGuest, "chairs",
		),
		planner.MinimumPerGuests(
			"tables-minimum", "table seating minimum",
			[]string{"table", "mesa"}, GuestsPerTable, "tables",
		),
		planner.EquipmentDependency(
			"amplified-audio", "amplified audio equipment",
			[]string{"dj", "band", "rock", "mariachi"},
			[]string{"sound equipment", "speaker"},
			"live or amplified music requires reserving professional sound equipment",
		),
	}
}

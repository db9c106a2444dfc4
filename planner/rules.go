/*
rules.go - The constraint rule engine

PURPOSE:
  Validates the full candidate bundle (venue + staff + line items + guest
  count) against an ordered table of business rules before any quote can be
  approved. First failure wins: the engine short-circuits and returns the
  violated rule's reason, matching the "stop and ask the user to fix it"
  workflow of the agency.

THE RULE TABLE IS DATA:
  A RuleSet is an ordered list of (id, name, check) entries evaluated
  uniformly. New house rules are added by appending to the table - the
  evaluation loop never changes. See factory.StandardRules for the standard
  agency rule set.

MATCHING:
  All checks run over folded strings (lower-case, diacritics stripped) so
  "Fotografía" and "fotografia" are the same trade. Checks receive a
  RuleInput with pre-folded trade names, item names, and venue identity.

RULE CLASSES:
  CoRequisite           item in set S requires a trade in set T
  MutualExclusion       item/trade A forbids item/trade B
  VenueRequiresTrade    a hazard-marked venue requires a trade (e.g. security)
  MinimumGuestRatio     item quantity >= ratio x guest count
  MinimumPerGuests      item quantity >= guest_count / N (integer floor)
  EquipmentDependency   items needing support require a support item
*/
package planner

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// =============================================================================
// RULE EVALUATION
// =============================================================================

// Rule is one named predicate over the finished bundle. Check returns false
// plus a human-readable reason when the rule is violated.
type Rule struct {
	ID    string
	Name  string
	Check func(in *RuleInput) (ok bool, reason string)
}

// RuleSet is an ordered rule table. Evaluation order is the slice order.
type RuleSet []Rule

// Validate evaluates the rules in order and returns a Violation for the
// first failing rule, or nil if the bundle satisfies every rule.
func (rs RuleSet) Validate(b *Bundle) error {
	in := NewRuleInput(b)
	for _, r := range rs {
		ok, reason := r.Check(in)
		if !ok {
			return &Violation{RuleID: r.ID, Rule: r.Name, Reason: reason}
		}
	}
	return nil
}

// =============================================================================
// RULE INPUT - The bundle, pre-folded for matching
// =============================================================================

// RuleInput carries the bundle plus folded views of its strings so each rule
// doesn't re-normalize.
type RuleInput struct {
	Bundle *Bundle

	trades    []string // folded staff trades
	itemNames []string // folded line-item names
	venueText []string // folded venue name plus included-service tags
}

// NewRuleInput folds the bundle's matchable strings once.
func NewRuleInput(b *Bundle) *RuleInput {
	in := &RuleInput{Bundle: b}
	for _, s := range b.Staff {
		in.trades = append(in.trades, Fold(s.Trade))
	}
	for _, li := range b.LineItems {
		in.itemNames = append(in.itemNames, Fold(li.Name))
	}
	if b.Venue != nil {
		in.venueText = append(in.venueText, Fold(b.Venue.Name))
		for _, tag := range b.Venue.IncludedServices {
			in.venueText = append(in.venueText, Fold(tag))
		}
	}
	return in
}

// HasTrade reports whether any hired trade contains any of the needles.
func (in *RuleInput) HasTrade(needles ...string) bool {
	return anyContainsFold(in.trades, needles...)
}

// HasItem reports whether any line-item name contains any of the needles.
func (in *RuleInput) HasItem(needles ...string) bool {
	return anyContainsFold(in.itemNames, needles...)
}

// VenueMatches reports whether the venue name or a service tag contains any
// of the needles. A bundle without a venue matches nothing.
func (in *RuleInput) VenueMatches(needles ...string) bool {
	return anyContainsFold(in.venueText, needles...)
}

// ItemQuantity sums the quantities of line items whose name contains any of
// the needles. Each line item is counted once even when several needles match.
func (in *RuleInput) ItemQuantity(needles ...string) int {
	total := 0
	for _, li := range in.Bundle.LineItems {
		for _, n := range needles {
			if containsFold(li.Name, n) {
				total += li.Quantity
				break
			}
		}
	}
	return total
}

// =============================================================================
// RULE CONSTRUCTORS - Parameterized rule classes
// =============================================================================

// CoRequisite: any line item matching itemNeedles requires a staff trade
// matching tradeNeedles. The violation names both the triggering item kind
// and the missing trade.
func CoRequisite(id, name string, itemNeedles, tradeNeedles []string, itemLabel, tradeLabel string) Rule {
	return Rule{ID: id, Name: name, Check: func(in *RuleInput) (bool, string) {
		if !in.HasItem(itemNeedles...) {
			return true, ""
		}
		if in.HasTrade(tradeNeedles...) {
			return true, ""
		}
		return false, fmt.Sprintf("%s requires hiring %s", itemLabel, tradeLabel)
	}}
}

// TradeExcludesItem: hiring a trade matching tradeNeedles forbids line items
// matching itemNeedles.
func TradeExcludesItem(id, name string, tradeNeedles, itemNeedles []string, reason string) Rule {
	return Rule{ID: id, Name: name, Check: func(in *RuleInput) (bool, string) {
		if in.HasTrade(tradeNeedles...) && in.HasItem(itemNeedles...) {
			return false, reason
		}
		return true, ""
	}}
}

// VenueExcludesItem: a venue matching venueNeedles forbids line items
// matching itemNeedles.
func VenueExcludesItem(id, name string, venueNeedles, itemNeedles []string, reason string) Rule {
	return Rule{ID: id, Name: name, Check: func(in *RuleInput) (bool, string) {
		if in.VenueMatches(venueNeedles...) && in.HasItem(itemNeedles...) {
			return false, reason
		}
		return true, ""
	}}
}

// VenueRequiresTrade: a venue carrying a hazard marker requires a staff trade.
func VenueRequiresTrade(id, name string, venueNeedles, tradeNeedles []string, reason string) Rule {
	return Rule{ID: id, Name: name, Check: func(in *RuleInput) (bool, string) {
		if in.VenueMatches(venueNeedles...) && !in.HasTrade(tradeNeedles...) {
			return false, reason
		}
		return true, ""
	}}
}

// MinimumGuestRatio: total quantity of items matching itemNeedles must be at
// least ratio x guest count. Skipped when the guest count is zero.
func MinimumGuestRatio(id, name string, itemNeedles []string, ratio decimal.Decimal, itemLabel string) Rule {
	return Rule{ID: id, Name: name, Check: func(in *RuleInput) (bool, string) {
		guests := in.Bundle.GuestCount
		if guests <= 0 {
			return true, ""
		}
		have := in.ItemQuantity(itemNeedles...)
		need := ratio.Mul(decimal.NewFromInt(int64(guests)))
		if decimal.NewFromInt(int64(have)).LessThan(need) {
			return false, fmt.Sprintf("%d %s for %d guests (minimum %s)",
				have, itemLabel, guests, need.String())
		}
		return true, ""
	}}
}

// MinimumPerGuests: total quantity of items matching itemNeedles must be at
// least guest_count / perGuests, integer floor. Skipped when the guest count
// is zero.
func MinimumPerGuests(id, name string, itemNeedles []string, perGuests int, itemLabel string) Rule {
	return Rule{ID: id, Name: name, Check: func(in *RuleInput) (bool, string) {
		guests := in.Bundle.GuestCount
		if guests <= 0 {
			return true, ""
		}
		have := in.ItemQuantity(itemNeedles...)
		need := guests / perGuests
		if have < need {
			return false, fmt.Sprintf("%d %s for %d guests (minimum %d)",
				have, itemLabel, guests, need)
		}
		return true, ""
	}}
}

// EquipmentDependency: any line item matching triggerNeedles requires a line
// item matching equipmentNeedles.
func EquipmentDependency(id, name string, triggerNeedles, equipmentNeedles []string, reason string) Rule {
	return Rule{ID: id, Name: name, Check: func(in *RuleInput) (bool, string) {
		if in.HasItem(triggerNeedles...) && !in.HasItem(equipmentNeedles...) {
			return false, reason
		}
		return true, ""
	}}
}

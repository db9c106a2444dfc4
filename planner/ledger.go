/*
ledger.go - Budget bookkeeping for one allocation session

PURPOSE:
  Tracks the shrinking budget as resources are tentatively selected. Pure
  bookkeeping over the candidate bundle's running cost: the ledger never
  reads or writes the master catalogs.

CRITICAL INVARIANTS:
  1. Remaining never exceeds Ceiling
  2. Remaining never goes negative - a debit that would violate this is
     rejected before any state changes
  3. Debits are reversible only via Snapshot/Restore, which discards an
     entire round of tentative debits at once

VALUE SEMANTICS:
  BudgetLedger is a small immutable value. TryDebit returns the updated
  ledger; on failure the caller keeps the old one, so a failed debit can
  never corrupt the balance.

EXAMPLE:
  ledger := NewBudgetLedger(decimal.NewFromInt(5000))
  mark := ledger.Snapshot()
  ledger, err = ledger.TryDebit(item.Subtotal())   // tentative
  ...
  ledger = ledger.Restore(mark)                    // round rejected

SEE ALSO:
  - session.go: Drives the ledger through a full allocation session
*/
package planner

import (
	"github.com/shopspring/decimal"
)

// =============================================================================
// BUDGET LEDGER
// =============================================================================

// BudgetLedger tracks the running balance of one allocation session.
type BudgetLedger struct {
	Ceiling   decimal.Decimal
	Remaining decimal.Decimal
}

// NewBudgetLedger creates a ledger with the full budget available.
func NewBudgetLedger(ceiling decimal.Decimal) BudgetLedger {
	return BudgetLedger{Ceiling: ceiling, Remaining: ceiling}
}

// TryDebit returns a ledger with the amount subtracted. Negative amounts are
// rejected with ErrInvalidAmount; amounts exceeding the remaining balance are
// rejected with an InsufficientFundsError. The receiver is never mutated.
func (l BudgetLedger) TryDebit(amount decimal.Decimal) (BudgetLedger, error) {
	if amount.IsNegative() {
		return l, ErrInvalidAmount
	}
	if amount.GreaterThan(l.Remaining) {
		return l, &InsufficientFundsError{
			Remaining: l.Remaining,
			Requested: amount,
			Shortfall: amount.Sub(l.Remaining),
		}
	}
	return BudgetLedger{Ceiling: l.Ceiling, Remaining: l.Remaining.Sub(amount)}, nil
}

// Spent is the total of all non-rolled-back debits.
func (l BudgetLedger) Spent() decimal.Decimal {
	return l.Ceiling.Sub(l.Remaining)
}

// =============================================================================
// SNAPSHOT / RESTORE - Round rollback
// =============================================================================

// LedgerSnapshot captures the balance before a selection round began.
type LedgerSnapshot struct {
	remaining decimal.Decimal
}

// Snapshot captures the current remaining balance.
func (l BudgetLedger) Snapshot() LedgerSnapshot {
	return LedgerSnapshot{remaining: l.Remaining}
}

// Restore resets the remaining balance to a previously captured snapshot,
// discarding every debit made since.
func (l BudgetLedger) Restore(s LedgerSnapshot) BudgetLedger {
	return BudgetLedger{Ceiling: l.Ceiling, Remaining: s.remaining}
}

/*
errors.go - Centralized error types for the allocation engine

PURPOSE:
  All error types in one place for consistency and discoverability.
  Callers match on sentinels with errors.Is() and extract detail from the
  structured types with errors.As().

ERROR CATEGORIES:
  1. Input errors    - Malformed windows and amounts, rejected locally
  2. Selection errors - Recoverable failures while building a bundle
  3. Commit errors   - Fatal inconsistencies detected at commit time

RECOVERABLE VS FATAL:
  InsufficientFunds, StockInsufficient, and ConstraintViolation are
  recoverable: the caller alters the bundle and retries. StockInconsistency
  means the availability check went stale before commit; the whole commit
  aborts with no partial mutation.

  "No results" is never an error: empty availability and empty suggestion
  lists are valid negative results.
*/
package planner

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

// =============================================================================
// SENTINEL ERRORS - Use with errors.Is()
// =============================================================================

var (
	// ErrInvalidWindow is returned for a malformed or zero-length time window.
	// Such a window never reaches an availability check.
	ErrInvalidWindow = errors.New("invalid time window")

	// ErrInvalidAmount is returned for a negative debit or quantity.
	ErrInvalidAmount = errors.New("invalid amount")

	// ErrInsufficientFunds is returned when a debit exceeds the remaining
	// budget. Recoverable: drop the candidate or roll back the round.
	ErrInsufficientFunds = errors.New("insufficient funds")

	// ErrStockInsufficient is returned when a requested quantity exceeds the
	// stock available at selection time. Recoverable.
	ErrStockInsufficient = errors.New("insufficient stock")

	// ErrConstraintViolation is returned by the rule engine for the first
	// failing business rule. Recoverable by altering the bundle.
	ErrConstraintViolation = errors.New("constraint violation")

	// ErrStockInconsistency is returned when a commit would drive stock
	// negative, implying a stale availability read. Fatal to the commit.
	ErrStockInconsistency = errors.New("stock inconsistency at commit")

	// ErrQuoteFinalized is returned when approving or rejecting a quote that
	// already left the Pending state.
	ErrQuoteFinalized = errors.New("quote already finalized")

	// ErrQuoteNotApproved is returned when releasing a quote that was never
	// approved.
	ErrQuoteNotApproved = errors.New("quote not approved")

	// ErrVenueNotFound is returned when a referenced venue doesn't exist.
	ErrVenueNotFound = errors.New("venue not found")

	// ErrStaffNotFound is returned when a referenced staff member doesn't exist.
	ErrStaffNotFound = errors.New("staff member not found")

	// ErrItemNotFound is returned when a referenced inventory item doesn't exist.
	ErrItemNotFound = errors.New("inventory item not found")

	// ErrVenueUnavailable is returned when selecting a venue that conflicts
	// with the requested window or lacks capacity.
	ErrVenueUnavailable = errors.New("venue unavailable")

	// ErrStaffUnavailable is returned when hiring a staff member with a
	// conflicting booking.
	ErrStaffUnavailable = errors.New("staff member unavailable")

	// ErrStaffAlreadyHired is returned when hiring the same staff member twice.
	ErrStaffAlreadyHired = errors.New("staff member already hired")

	// ErrVenueAlreadySelected is returned when a session selects a second venue.
	ErrVenueAlreadySelected = errors.New("venue already selected")

	// ErrNoVenueSelected is returned when quoting a bundle without a venue.
	ErrNoVenueSelected = errors.New("no venue selected")
)

// =============================================================================
// STRUCTURED ERRORS - Carry additional context
// =============================================================================

// InvalidWindowError reports a malformed window.
type InvalidWindowError struct {
	Window TimeWindow
}

func (e *InvalidWindowError) Error() string {
	return fmt.Sprintf("invalid time window %s: start must differ from end", e.Window)
}

func (e *InvalidWindowError) Unwrap() error { return ErrInvalidWindow }

// InsufficientFundsError provides details about a budget shortfall.
type InsufficientFundsError struct {
	Remaining decimal.Decimal
	Requested decimal.Decimal
	Shortfall decimal.Decimal
}

func (e *InsufficientFundsError) Error() string {
	return fmt.Sprintf("insufficient funds: remaining %v, requested %v, shortfall %v",
		e.Remaining, e.Requested, e.Shortfall)
}

func (e *InsufficientFundsError) Unwrap() error { return ErrInsufficientFunds }

// StockInsufficientError reports a selection-time stock shortage.
type StockInsufficientError struct {
	ItemID    ItemID
	Name      string
	Requested int
	Available int
}

func (e *StockInsufficientError) Error() string {
	return fmt.Sprintf("insufficient stock of %q: requested %d, available %d",
		e.Name, e.Requested, e.Available)
}

func (e *StockInsufficientError) Unwrap() error { return ErrStockInsufficient }

// StockInconsistencyError reports a commit-time stock shortage: the stock
// moved between the availability check and the commit.
type StockInconsistencyError struct {
	ItemID    ItemID
	Name      string
	Requested int
	Available int
}

func (e *StockInconsistencyError) Error() string {
	return fmt.Sprintf("stock inconsistency for %q: commit needs %d, only %d left",
		e.Name, e.Requested, e.Available)
}

func (e *StockInconsistencyError) Unwrap() error { return ErrStockInconsistency }

// Violation is the first failing business rule, with a human-readable reason.
type Violation struct {
	RuleID string
	Rule   string
	Reason string
}

func (e *Violation) Error() string {
	return fmt.Sprintf("%s: %s", e.Rule, e.Reason)
}

func (e *Violation) Unwrap() error { return ErrConstraintViolation }

// =============================================================================
// ERROR HELPERS
// =============================================================================

// IsClientError returns true if the error is due to invalid or unaffordable
// client input and the caller can recover by changing the request.
func IsClientError(err error) bool {
	return errors.Is(err, ErrInvalidWindow) ||
		errors.Is(err, ErrInvalidAmount) ||
		errors.Is(err, ErrInsufficientFunds) ||
		errors.Is(err, ErrStockInsufficient) ||
		errors.Is(err, ErrConstraintViolation) ||
		errors.Is(err, ErrVenueUnavailable) ||
		errors.Is(err, ErrStaffUnavailable) ||
		errors.Is(err, ErrStaffAlreadyHired) ||
		errors.Is(err, ErrVenueAlreadySelected) ||
		errors.Is(err, ErrNoVenueSelected) ||
		errors.Is(err, ErrQuoteFinalized) ||
		errors.Is(err, ErrQuoteNotApproved)
}

// IsNotFound returns true if the error indicates a missing catalog entry.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrVenueNotFound) ||
		errors.Is(err, ErrStaffNotFound) ||
		errors.Is(err, ErrItemNotFound)
}

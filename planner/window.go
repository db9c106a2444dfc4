/*
window.go - Calendar dates, clock times, and the overlap predicate

PURPOSE:
  One normalized, comparable time representation used by every overlap
  check in the engine: a calendar date plus minutes-since-midnight clock
  times. Every availability decision reduces to the Overlaps predicate
  defined here.

OVERLAP SEMANTICS:
  Two windows on the same date overlap iff start_a < end_b AND end_a > start_b,
  with strict inequalities: a window ending exactly when another begins does
  not conflict. A window whose end is at or before its start is treated as
  crossing midnight - the end belongs to the next day for comparison only.

SEE ALSO:
  - availability.go: Uses Overlaps for every venue/staff check
*/
package planner

import (
	"fmt"
	"time"
)

// minutesPerDay is the normalization offset for midnight-crossing windows.
const minutesPerDay = 24 * 60

// =============================================================================
// CLOCK TIME - Minutes since midnight
// =============================================================================

// ClockTime is a time of day in minutes since midnight.
type ClockTime int

// NewClockTime builds a ClockTime from an hour and minute.
func NewClockTime(hour, minute int) ClockTime {
	return ClockTime(hour*60 + minute)
}

// Valid reports whether the clock time fits within one day.
func (t ClockTime) Valid() bool { return t >= 0 && t < minutesPerDay }

func (t ClockTime) String() string {
	return fmt.Sprintf("%02d:%02d", int(t)/60, int(t)%60)
}

// =============================================================================
// DATE - Calendar day, UTC
// =============================================================================

// Date is a calendar day. The zero value is the zero date.
type Date struct {
	Time time.Time
}

// NewDate builds a Date for the given calendar day.
func NewDate(year int, month time.Month, day int) Date {
	return Date{Time: time.Date(year, month, day, 0, 0, 0, 0, time.UTC)}
}

func (d Date) normalize() time.Time {
	return time.Date(d.Time.Year(), d.Time.Month(), d.Time.Day(), 0, 0, 0, 0, time.UTC)
}

// Equal reports whether two dates name the same calendar day.
func (d Date) Equal(other Date) bool { return d.normalize().Equal(other.normalize()) }

// Before reports whether d is an earlier calendar day than other.
func (d Date) Before(other Date) bool { return d.normalize().Before(other.normalize()) }

// AddDays returns the date n days later.
func (d Date) AddDays(n int) Date { return Date{Time: d.Time.AddDate(0, 0, n)} }

// IsZero reports whether the date is unset.
func (d Date) IsZero() bool { return d.Time.IsZero() }

func (d Date) String() string { return d.Time.Format("02/01/2006") }

// =============================================================================
// TIME WINDOW - A date plus a start/end time of day
// =============================================================================

// TimeWindow is a request or occupancy span on a single calendar day.
// A window whose End is at or before its Start crosses midnight.
type TimeWindow struct {
	Date  Date
	Start ClockTime
	End   ClockTime
}

// NewTimeWindow builds a window on the given date.
func NewTimeWindow(date Date, start, end ClockTime) TimeWindow {
	return TimeWindow{Date: date, Start: start, End: end}
}

// Validate rejects zero-length and out-of-range windows. Start == End is
// ambiguous (zero length or full day) and is rejected rather than guessed.
func (w TimeWindow) Validate() error {
	if !w.Start.Valid() || !w.End.Valid() || w.Start == w.End {
		return &InvalidWindowError{Window: w}
	}
	return nil
}

// normalizedEnd treats a midnight-crossing end as belonging to the next day.
func (w TimeWindow) normalizedEnd() ClockTime {
	if w.End <= w.Start {
		return w.End + minutesPerDay
	}
	return w.End
}

func (w TimeWindow) String() string {
	return fmt.Sprintf("%s %s-%s", w.Date, w.Start, w.End)
}

// Overlaps reports whether two windows conflict. Windows on different dates
// never conflict; on the same date the comparison uses strict inequalities
// after midnight-crossing normalization.
func Overlaps(a, b TimeWindow) (bool, error) {
	if err := a.Validate(); err != nil {
		return false, err
	}
	if err := b.Validate(); err != nil {
		return false, err
	}
	return overlaps(a, b), nil
}

// overlaps assumes both windows already validated. Used on the hot path by
// the availability index, which validates the request window once up front.
func overlaps(a, b TimeWindow) bool {
	if !a.Date.Equal(b.Date) {
		return false
	}
	return a.Start < b.normalizedEnd() && a.normalizedEnd() > b.Start
}

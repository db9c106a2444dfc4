/*
suggest.go - Alternative-date suggestions when a request cannot be met

PURPOSE:
  When no venue is free on the requested date, probe a bounded horizon of
  subsequent dates with the same time-of-day window and collect every
  (venue, date) pair that would qualify. An empty result is a valid negative
  answer for the caller to surface, never an error.
*/
package planner

// DefaultSuggestionHorizon is how many days past the requested date the
// search probes when the caller doesn't say otherwise.
const DefaultSuggestionHorizon = 3

// Suggestion is a venue that would be free on an alternative date.
type Suggestion struct {
	VenueID   VenueID
	VenueName string
	Date      Date
}

// SuggestAlternativeDates re-runs the venue availability check on each of the
// horizonDays dates following the requested one, keeping the time-of-day
// window fixed. The search never recurses beyond the horizon.
func SuggestAlternativeDates(venues []*Venue, window TimeWindow, minCapacity, horizonDays int) ([]Suggestion, error) {
	if err := window.Validate(); err != nil {
		return nil, err
	}
	if horizonDays <= 0 {
		horizonDays = DefaultSuggestionHorizon
	}

	var suggestions []Suggestion
	for offset := 1; offset <= horizonDays; offset++ {
		probe := window
		probe.Date = window.Date.AddDays(offset)

		free, err := AvailableVenues(venues, probe, minCapacity)
		if err != nil {
			return nil, err
		}
		for _, v := range free {
			suggestions = append(suggestions, Suggestion{
				VenueID:   v.ID,
				VenueName: v.Name,
				Date:      probe.Date,
			})
		}
	}
	return suggestions, nil
}

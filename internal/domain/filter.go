package domain

import (
	"strings"
)

// SortOption defines the available sorting options for flight results.
type SortOption string

// Available sort options.
const (
	// SortByBestValue sorts by the calculated ranking score (default)
	SortByBestValue SortOption = "best"

	// SortByPrice sorts by price ascending (cheapest first)
	SortByPrice SortOption = "price"

	// SortByDuration sorts by flight duration ascending (shortest first)
	SortByDuration SortOption = "duration"

	// SortByDeparture sorts by departure time ascending (earliest first)
	SortByDeparture SortOption = "departure"
)

// IsValid checks if the sort option is a valid value.
func (s SortOption) IsValid() bool {
	switch s {
	case SortByBestValue, SortByPrice, SortByDuration, SortByDeparture:
		return true
	default:
		return false
	}
}

// ParseSortOption converts a string to a SortOption.
// Returns SortByBestValue if the string is empty or invalid.
func ParseSortOption(s string) SortOption {
	option := SortOption(strings.ToLower(s))
	if option.IsValid() {
		return option
	}
	return SortByBestValue
}

// TimeOfDayRange is a departure time-of-day window used for filtering.
// The label (e.g., "morning", "red-eye") doubles as the range identifier sent
// to the preference tracker when the user applies the filter.
type TimeOfDayRange struct {
	// Label is the human-readable range name (e.g., "morning")
	Label string `json:"label"`

	// StartMinute is minutes since midnight, inclusive
	StartMinute int `json:"startMinute"`

	// EndMinute is minutes since midnight, inclusive
	EndMinute int `json:"endMinute"`
}

// Contains reports whether the given minutes-since-midnight value falls
// within the window.
func (r *TimeOfDayRange) Contains(minuteOfDay int) bool {
	if r == nil {
		return true
	}
	return minuteOfDay >= r.StartMinute && minuteOfDay <= r.EndMinute
}

// Named time-of-day windows matching the search UI's quick filters.
var (
	TimeOfDayMorning   = TimeOfDayRange{Label: "morning", StartMinute: 5 * 60, EndMinute: 12*60 - 1}
	TimeOfDayAfternoon = TimeOfDayRange{Label: "afternoon", StartMinute: 12 * 60, EndMinute: 18*60 - 1}
	TimeOfDayEvening   = TimeOfDayRange{Label: "evening", StartMinute: 18 * 60, EndMinute: 24*60 - 1}
)

// TimeOfDayByLabel resolves a named window. Unknown labels return nil,
// meaning no time filtering.
func TimeOfDayByLabel(label string) *TimeOfDayRange {
	switch strings.ToLower(label) {
	case "morning":
		r := TimeOfDayMorning
		return &r
	case "afternoon":
		r := TimeOfDayAfternoon
		return &r
	case "evening":
		r := TimeOfDayEvening
		return &r
	default:
		return nil
	}
}

// FilterOptions defines optional filters to apply to flight results.
type FilterOptions struct {
	// MaxPrice filters out flights with price above this amount
	MaxPrice *float64 `json:"maxPrice,omitempty"`

	// MaxStops filters out flights with more stops than this value
	// 0 = direct flights only, 1 = max 1 stop, etc.
	MaxStops *int `json:"maxStops,omitempty"`

	// Airlines filters to only include flights from these airline codes
	Airlines []string `json:"airlines,omitempty"`

	// Departure filters flights departing within a time-of-day window
	Departure *TimeOfDayRange `json:"departure,omitempty"`
}

// MatchesFlight checks if a flight matches all the filter criteria.
func (f *FilterOptions) MatchesFlight(flight Flight) bool {
	if f == nil {
		return true
	}

	if f.MaxPrice != nil && flight.Price.Amount > *f.MaxPrice {
		return false
	}

	if f.MaxStops != nil && flight.Stops > *f.MaxStops {
		return false
	}

	// Airline filter matches case-insensitively on the IATA code
	if len(f.Airlines) > 0 {
		found := false
		code := strings.ToUpper(flight.Airline.Code)
		for _, want := range f.Airlines {
			if strings.ToUpper(want) == code {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}

	if f.Departure != nil {
		dep := flight.Departure.DateTime
		minuteOfDay := dep.Hour()*60 + dep.Minute()
		if !f.Departure.Contains(minuteOfDay) {
			return false
		}
	}

	return true
}

package domain

import (
	"fmt"
	"regexp"
	"time"
)

// SearchLeg defines a single origin/destination/date leg of a search.
type SearchLeg struct {
	// Origin is the IATA code of the departure city/airport (e.g., "PVG")
	Origin string `json:"origin"`

	// Destination is the IATA code of the arrival city/airport (e.g., "PEK")
	Destination string `json:"destination"`

	// DepartureDate is the desired departure date in YYYY-MM-DD format
	DepartureDate string `json:"departureDate"`
}

// SearchCriteria defines the parameters for a flight search request. A
// one-way search has a single leg; multi-city searches carry one leg per
// segment and are queried concurrently, all-or-nothing.
type SearchCriteria struct {
	// Legs are the journey legs, in travel order (1..3)
	Legs []SearchLeg `json:"legs"`

	// Passengers is the number of passengers (default: 1)
	Passengers int `json:"passengers"`

	// CabinClass is the travel class: economy, business, or first (default: economy)
	CabinClass string `json:"cabinClass,omitempty"`
}

// SearchParams is the fully-specified output of the natural-language parse
// boundary. Every field the AI resolves is carried here; optional constraints
// stay nil/zero when the query did not mention them.
type SearchParams struct {
	// Origin is the resolved departure IATA code
	Origin string `json:"origin"`

	// Destination is the resolved arrival IATA code
	Destination string `json:"destination"`

	// DepartureDate is the resolved date in YYYY-MM-DD format
	DepartureDate string `json:"departureDate"`

	// TimePreference is the preferred time of day: morning, afternoon,
	// evening, or empty for no preference
	TimePreference string `json:"timePreference,omitempty"`

	// Passengers is the number of passengers
	Passengers int `json:"passengers"`

	// CabinClass is the requested travel class
	CabinClass string `json:"cabinClass,omitempty"`

	// SortBy is the requested result ordering
	SortBy SortOption `json:"sortBy,omitempty"`

	// Stops constrains the maximum number of stops, when mentioned
	Stops *int `json:"stops,omitempty"`

	// AircraftType constrains the aircraft model, when mentioned
	AircraftType string `json:"aircraftType,omitempty"`

	// Alliance constrains the airline alliance, when mentioned
	Alliance string `json:"alliance,omitempty"`

	// MaxPrice constrains the fare, when mentioned
	MaxPrice *float64 `json:"maxPrice,omitempty"`

	// PreferredAirlines lists requested airline codes, when mentioned
	PreferredAirlines []string `json:"preferredAirlines,omitempty"`
}

// GeoPoint is an optional client geolocation used to resolve a missing origin.
type GeoPoint struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

// Search limits.
const (
	MaxSearchLegs = 3
	MaxPassengers = 9
)

// airportCodeRegex matches valid IATA codes (3 uppercase letters).
var airportCodeRegex = regexp.MustCompile(`^[A-Z]{3}$`)

// dateRegex matches dates in YYYY-MM-DD format.
var dateRegex = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)

// validCabinClasses defines the allowed travel classes.
var validCabinClasses = map[string]bool{
	"economy":  true,
	"business": true,
	"first":    true,
}

// Validate checks a single leg for correctness.
func (l *SearchLeg) Validate() error {
	if l.Origin == "" {
		return WrapInvalidRequest("origin is required")
	}
	if !airportCodeRegex.MatchString(l.Origin) {
		return WrapInvalidRequest("origin must be a valid 3-letter IATA code, got %q", l.Origin)
	}
	if l.Destination == "" {
		return WrapInvalidRequest("destination is required")
	}
	if !airportCodeRegex.MatchString(l.Destination) {
		return WrapInvalidRequest("destination must be a valid 3-letter IATA code, got %q", l.Destination)
	}
	if l.Origin == l.Destination {
		return WrapInvalidRequest("origin and destination must be different")
	}
	if l.DepartureDate == "" {
		return WrapInvalidRequest("departureDate is required")
	}
	if !dateRegex.MatchString(l.DepartureDate) {
		return WrapInvalidRequest("departureDate must be in YYYY-MM-DD format, got %q", l.DepartureDate)
	}
	if _, err := time.Parse("2006-01-02", l.DepartureDate); err != nil {
		return WrapInvalidRequest("departureDate is not a valid date: %s", l.DepartureDate)
	}
	return nil
}

// Validate checks if the search criteria is valid.
// Returns a wrapped ErrInvalidRequest error if validation fails.
func (s *SearchCriteria) Validate() error {
	if len(s.Legs) == 0 {
		return WrapInvalidRequest("at least one leg is required")
	}
	if len(s.Legs) > MaxSearchLegs {
		return WrapInvalidRequest("at most %d legs are supported, got %d", MaxSearchLegs, len(s.Legs))
	}
	for i := range s.Legs {
		if err := s.Legs[i].Validate(); err != nil {
			return fmt.Errorf("leg %d: %w", i+1, err)
		}
	}
	if s.Passengers < 1 {
		return WrapInvalidRequest("passengers must be at least 1")
	}
	if s.Passengers > MaxPassengers {
		return WrapInvalidRequest("passengers cannot exceed %d", MaxPassengers)
	}
	if s.CabinClass != "" && !validCabinClasses[s.CabinClass] {
		return WrapInvalidRequest("cabinClass must be one of: economy, business, first; got %q", s.CabinClass)
	}
	return nil
}

// SetDefaults applies default values to empty optional fields.
func (s *SearchCriteria) SetDefaults() {
	if s.Passengers == 0 {
		s.Passengers = 1
	}
	if s.CabinClass == "" {
		s.CabinClass = "economy"
	}
}

// Criteria converts fully-specified parse output into search criteria.
func (p *SearchParams) Criteria() SearchCriteria {
	c := SearchCriteria{
		Legs: []SearchLeg{{
			Origin:        p.Origin,
			Destination:   p.Destination,
			DepartureDate: p.DepartureDate,
		}},
		Passengers: p.Passengers,
		CabinClass: p.CabinClass,
	}
	c.SetDefaults()
	return c
}

// SearchResponse represents the aggregated response from a flight search.
type SearchResponse struct {
	// Criteria echoes the search parameters
	Criteria SearchCriteria `json:"criteria"`

	// Metadata contains information about the search execution
	Metadata SearchMetadata `json:"metadata"`

	// Flights contains the flight results after filtering and sorting
	Flights []Flight `json:"flights"`
}

// SearchMetadata contains metadata about the search execution.
type SearchMetadata struct {
	// TotalResults is the total number of flights returned
	TotalResults int `json:"total_results"`

	// Legs is the number of legs queried
	Legs int `json:"legs"`

	// SearchTimeMs is the total search duration in milliseconds
	SearchTimeMs int64 `json:"search_time_ms"`

	// CacheHit indicates whether the results came from cache
	CacheHit bool `json:"cache_hit"`
}

// Package http provides the HTTP handler layer for the flight search API.
// It handles request parsing, validation, response formatting, and error mapping.
package http

import (
	"fmt"
	"regexp"
	"strings"
	"time"
)

// SearchFlightsRequest represents the request body for flight search.
// One leg is a one-way search; two or three legs form a multi-city search.
type SearchFlightsRequest struct {
	// Legs are the flight legs to search, in travel order (1-3)
	Legs []SearchLegDTO `json:"legs"`

	// Passengers is the number of passengers (1-9)
	Passengers int `json:"passengers"`

	// CabinClass is the travel class: economy, business, or first (optional)
	CabinClass string `json:"cabinClass,omitempty"`

	// Filters contains optional filtering criteria
	Filters *FilterDTO `json:"filters,omitempty"`

	// SortBy specifies how to sort results: best, price, duration, departure
	SortBy string `json:"sortBy,omitempty"`
}

// SearchLegDTO represents a single leg of a search.
type SearchLegDTO struct {
	// Origin is the IATA code of the departure airport (e.g., "PVG")
	Origin string `json:"origin"`

	// Destination is the IATA code of the arrival airport (e.g., "PEK")
	Destination string `json:"destination"`

	// DepartureDate is the desired departure date in YYYY-MM-DD format
	DepartureDate string `json:"departureDate"`
}

// FilterDTO represents optional filters for flight search.
// Example: {"maxPrice": 1200, "maxStops": 0, "timeOfDay": "morning"}
type FilterDTO struct {
	// MaxPrice filters flights with price above this amount
	MaxPrice *float64 `json:"maxPrice,omitempty" example:"1200"`

	// MaxStops filters flights with more stops than this value (0 = direct only)
	MaxStops *int `json:"maxStops,omitempty" example:"0"`

	// Airlines filters to only include flights from these airline codes
	Airlines []string `json:"airlines,omitempty" example:"MU,CA"`

	// TimeOfDay filters flights departing within a named window:
	// morning, afternoon, or evening
	TimeOfDay string `json:"timeOfDay,omitempty" example:"morning"`
}

// Validation regex patterns.
var (
	airportCodePattern = regexp.MustCompile(`^[A-Z]{3}$`)
	datePattern        = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)
)

// Valid cabin classes.
var validClasses = map[string]bool{
	"economy":  true,
	"business": true,
	"first":    true,
	"":         true, // Empty is valid (defaults to economy)
}

// Valid sort options.
var validSortOptions = map[string]bool{
	"best":      true,
	"price":     true,
	"duration":  true,
	"departure": true,
	"":          true, // Empty is valid (defaults to best)
}

// Valid time-of-day filter windows.
var validTimeOfDay = map[string]bool{
	"morning":   true,
	"afternoon": true,
	"evening":   true,
	"":          true, // Empty is valid (no time filtering)
}

// MaxSearchLegs is the maximum number of legs in a multi-city search.
const MaxSearchLegs = 3

// ValidationError represents a field-level validation error.
type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationErrors holds multiple validation errors.
type ValidationErrors struct {
	Errors []ValidationError `json:"errors"`
}

// Error implements the error interface.
func (v *ValidationErrors) Error() string {
	if len(v.Errors) == 0 {
		return "validation failed"
	}
	return v.Errors[0].Message
}

// Add adds a validation error.
func (v *ValidationErrors) Add(field, message string) {
	v.Errors = append(v.Errors, ValidationError{
		Field:   field,
		Message: message,
	})
}

// HasErrors returns true if there are validation errors.
func (v *ValidationErrors) HasErrors() bool {
	return len(v.Errors) > 0
}

// ToMap converts validation errors to a map for API response.
func (v *ValidationErrors) ToMap() map[string]string {
	result := make(map[string]string, len(v.Errors))
	for _, e := range v.Errors {
		result[e.Field] = e.Message
	}
	return result
}

// Validate validates the search request and returns any validation errors.
// Airline and airport codes are normalized to uppercase in place.
func (r *SearchFlightsRequest) Validate() error {
	errs := &ValidationErrors{}

	r.validateLegs(errs)
	r.validatePassengers(errs)
	r.validateCabinClass(errs)
	r.validateSortBy(errs)
	r.validateFilters(errs)

	if errs.HasErrors() {
		return errs
	}
	return nil
}

func (r *SearchFlightsRequest) validateLegs(errs *ValidationErrors) {
	if len(r.Legs) == 0 {
		errs.Add("legs", "at least one leg is required")
		return
	}
	if len(r.Legs) > MaxSearchLegs {
		errs.Add("legs", fmt.Sprintf("at most %d legs are supported", MaxSearchLegs))
		return
	}

	for i := range r.Legs {
		r.Legs[i].validate(errs, fmt.Sprintf("legs[%d]", i))
	}
}

func (l *SearchLegDTO) validate(errs *ValidationErrors, prefix string) {
	if l.Origin == "" {
		errs.Add(prefix+".origin", "origin is required")
	} else {
		origin := strings.ToUpper(l.Origin)
		if !airportCodePattern.MatchString(origin) {
			errs.Add(prefix+".origin", "origin must be a valid 3-letter IATA airport code")
		}
		l.Origin = origin
	}

	if l.Destination == "" {
		errs.Add(prefix+".destination", "destination is required")
	} else {
		dest := strings.ToUpper(l.Destination)
		if !airportCodePattern.MatchString(dest) {
			errs.Add(prefix+".destination", "destination must be a valid 3-letter IATA airport code")
		}
		l.Destination = dest
	}

	if l.Origin != "" && l.Origin == l.Destination {
		errs.Add(prefix+".destination", "origin and destination must be different")
	}

	switch {
	case l.DepartureDate == "":
		errs.Add(prefix+".departureDate", "departureDate is required")
	case !datePattern.MatchString(l.DepartureDate):
		errs.Add(prefix+".departureDate", "departureDate must be in YYYY-MM-DD format")
	default:
		if _, err := time.Parse("2006-01-02", l.DepartureDate); err != nil {
			errs.Add(prefix+".departureDate", "departureDate is not a valid date")
		}
	}
}

func (r *SearchFlightsRequest) validatePassengers(errs *ValidationErrors) {
	if r.Passengers < 1 {
		errs.Add("passengers", "passengers must be at least 1")
		return
	}
	if r.Passengers > 9 {
		errs.Add("passengers", "passengers cannot exceed 9")
	}
}

func (r *SearchFlightsRequest) validateCabinClass(errs *ValidationErrors) {
	if !validClasses[strings.ToLower(r.CabinClass)] {
		errs.Add("cabinClass", "cabinClass must be one of: economy, business, first")
	}
}

func (r *SearchFlightsRequest) validateSortBy(errs *ValidationErrors) {
	if !validSortOptions[strings.ToLower(r.SortBy)] {
		errs.Add("sortBy", "sortBy must be one of: best, price, duration, departure")
	}
}

func (r *SearchFlightsRequest) validateFilters(errs *ValidationErrors) {
	if r.Filters == nil {
		return
	}

	if r.Filters.MaxPrice != nil && *r.Filters.MaxPrice < 0 {
		errs.Add("filters.maxPrice", "maxPrice must be a positive number")
	}

	if r.Filters.MaxStops != nil && *r.Filters.MaxStops < 0 {
		errs.Add("filters.maxStops", "maxStops must be a non-negative number")
	}

	for i, airline := range r.Filters.Airlines {
		normalized := strings.ToUpper(airline)
		if len(normalized) < 2 || len(normalized) > 3 {
			errs.Add(fmt.Sprintf("filters.airlines[%d]", i),
				"airline code must be 2 or 3 characters")
		}
		r.Filters.Airlines[i] = normalized
	}

	if !validTimeOfDay[strings.ToLower(r.Filters.TimeOfDay)] {
		errs.Add("filters.timeOfDay", "timeOfDay must be one of: morning, afternoon, evening")
	}
}

// Package http provides the HTTP handler layer for the flight search API.
package http

import (
	"fmt"
	"strings"

	"github.com/stevenyi0526-glitch/AirEaseWeb-sub002/internal/domain"
)

// NaturalSearchRequest represents a free-form search query, optionally
// accompanied by the device location for origin inference.
type NaturalSearchRequest struct {
	// Query is the natural-language search text
	// Example: "cheap direct flight to Beijing next Friday morning"
	Query string `json:"query"`

	// Location is the device's coordinates, when the user shared them
	Location *GeoPointDTO `json:"location,omitempty"`
}

// GeoPointDTO represents geographic coordinates.
type GeoPointDTO struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

// Validate validates the natural search request.
func (r *NaturalSearchRequest) Validate() error {
	errs := &ValidationErrors{}

	if strings.TrimSpace(r.Query) == "" {
		errs.Add("query", "query is required")
	}
	if r.Location != nil {
		if r.Location.Lat < -90 || r.Location.Lat > 90 {
			errs.Add("location.lat", "lat must be between -90 and 90")
		}
		if r.Location.Lon < -180 || r.Location.Lon > 180 {
			errs.Add("location.lon", "lon must be between -180 and 180")
		}
	}

	if errs.HasErrors() {
		return errs
	}
	return nil
}

// CompareFlightsRequest represents the request body for flight comparison.
// The client posts the flight records from a prior search response; the
// server is stateless between search and compare.
type CompareFlightsRequest struct {
	// Flights are the flight records to compare (2-3)
	Flights []domain.Flight `json:"flights"`

	// Persona selects the weight profile: default, business, budget, family.
	// Empty selects the default profile.
	Persona string `json:"persona,omitempty"`
}

// Validate validates the comparison request. The 2-3 set size is also
// enforced by the comparison core; validating here produces a field-level
// message instead of a bare domain error.
func (r *CompareFlightsRequest) Validate() error {
	errs := &ValidationErrors{}

	if len(r.Flights) < 2 || len(r.Flights) > 3 {
		errs.Add("flights", "comparison requires 2 or 3 flights")
	}

	seen := make(map[string]bool, len(r.Flights))
	for i, f := range r.Flights {
		prefix := fmt.Sprintf("flights[%d]", i)
		if f.ID == "" {
			errs.Add(prefix+".id", "id is required")
			continue
		}
		if seen[f.ID] {
			errs.Add(prefix+".id", "flight ids must be unique")
		}
		seen[f.ID] = true

		if f.Price.Amount <= 0 {
			errs.Add(prefix+".price.amount", "price amount must be positive")
		}
		if f.Duration.TotalMinutes <= 0 {
			errs.Add(prefix+".duration.totalMinutes", "duration must be positive")
		}
	}

	if errs.HasErrors() {
		return errs
	}
	return nil
}

// ExportComparisonRequest represents the request body for comparison export.
type ExportComparisonRequest struct {
	CompareFlightsRequest

	// ChartImageRef is an optional reference to a pre-rendered radar chart
	// image to embed in the document
	ChartImageRef string `json:"chartImageRef,omitempty"`
}

// TrackSortRequest records that the user applied a sort order.
type TrackSortRequest struct {
	// Dimension is the sort dimension the user picked
	Dimension string `json:"dimension"`
}

// Validate validates the sort tracking request.
func (r *TrackSortRequest) Validate() error {
	errs := &ValidationErrors{}
	if strings.TrimSpace(r.Dimension) == "" {
		errs.Add("dimension", "dimension is required")
	}
	if errs.HasErrors() {
		return errs
	}
	return nil
}

// TrackTimeFilterRequest records that the user applied a departure window.
type TrackTimeFilterRequest struct {
	// Range is the window label (e.g., "morning")
	Range string `json:"range"`
}

// Validate validates the time filter tracking request.
func (r *TrackTimeFilterRequest) Validate() error {
	errs := &ValidationErrors{}
	if strings.TrimSpace(r.Range) == "" {
		errs.Add("range", "range is required")
	}
	if errs.HasErrors() {
		return errs
	}
	return nil
}

// TrackSelectionRequest records that the user opened or picked a flight.
type TrackSelectionRequest struct {
	// FlightID identifies the selected flight
	FlightID string `json:"flightId"`

	// Airline is the operating airline's name, when known
	Airline string `json:"airline,omitempty"`

	// Route is the flight's route (e.g., "PVG-PEK"), when known
	Route string `json:"route,omitempty"`

	// Price is the selected flight's price at selection time
	Price float64 `json:"price,omitempty"`

	// Currency is the price's currency code (e.g., "CNY")
	Currency string `json:"currency,omitempty"`

	// OverallScore is the persona-weighted score shown to the user, 0-10
	OverallScore float64 `json:"overallScore,omitempty"`
}

// Validate validates the selection tracking request.
func (r *TrackSelectionRequest) Validate() error {
	errs := &ValidationErrors{}
	if strings.TrimSpace(r.FlightID) == "" {
		errs.Add("flightId", "flightId is required")
	}
	if r.Price < 0 {
		errs.Add("price", "price must not be negative")
	}
	if r.OverallScore < 0 || r.OverallScore > 10 {
		errs.Add("overallScore", "overallScore must be between 0 and 10")
	}
	if errs.HasErrors() {
		return errs
	}
	return nil
}

// Selection converts the request into the tracker's selection record.
func (r *TrackSelectionRequest) Selection() domain.FlightSelection {
	return domain.FlightSelection{
		FlightID:     r.FlightID,
		Airline:      r.Airline,
		Route:        r.Route,
		Price:        r.Price,
		Currency:     r.Currency,
		OverallScore: r.OverallScore,
	}
}

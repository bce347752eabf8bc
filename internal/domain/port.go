package domain

import (
	"context"
	"time"
)

// Airport is a minimal airport lookup result.
type Airport struct {
	// Code is the IATA airport code
	Code string `json:"code"`

	// City is the city the airport serves
	City string `json:"city"`
}

// SearchHistoryEntry records one executed search for the backend history
// service. Saving history is best-effort: failures are logged and never block
// navigation to results.
type SearchHistoryEntry struct {
	// Criteria is the executed search
	Criteria SearchCriteria `json:"criteria"`

	// Results is the number of flights returned
	Results int `json:"results"`

	// SearchedAt is when the search executed
	SearchedAt time.Time `json:"searchedAt"`
}

// FlightSelection captures the flight a user opened or picked, shipped to
// the preferences service for later personalization.
type FlightSelection struct {
	// FlightID identifies the selected flight
	FlightID string `json:"flightId"`

	// Airline is the marketing carrier name
	Airline string `json:"airline,omitempty"`

	// Route is the selection's route (e.g., "PVG-PEK"), when known
	Route string `json:"route,omitempty"`

	// Price is the fare shown at selection time
	Price float64 `json:"price,omitempty"`

	// Currency is the fare currency
	Currency string `json:"currency,omitempty"`

	// OverallScore is the persona-weighted score shown at selection time
	OverallScore float64 `json:"overallScore,omitempty"`
}

// FlightAPI is the port to the backend REST API. The backend is an external
// collaborator: this interface is the whole of what the service knows about
// it. Implementations must honor context cancellation.
type FlightAPI interface {
	// SearchFlights queries one leg and returns normalized flights.
	SearchFlights(ctx context.Context, leg SearchLeg, passengers int, cabinClass string) ([]Flight, error)

	// GetSeatMap retrieves the cabin layout for a flight.
	GetSeatMap(ctx context.Context, flightID string) (SeatMap, error)

	// GetAirlineStats retrieves incident history and on-time performance for
	// an airline. A nil Safety or OnTimeRate inside the result means the
	// dataset is unavailable, which is not an error.
	GetAirlineStats(ctx context.Context, airlineCode string) (AirlineStats, error)

	// NearestAirport resolves a geolocation to the closest airport.
	NearestAirport(ctx context.Context, geo GeoPoint) (Airport, error)

	// SaveSearchHistory records an executed search.
	SaveSearchHistory(ctx context.Context, entry SearchHistoryEntry) error
}

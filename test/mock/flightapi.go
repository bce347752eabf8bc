// Package mock provides test doubles for the AirEase service.
// These mocks are designed for tests that need configurable behavior
// (delays, errors, specific responses).
package mock

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/stevenyi0526-glitch/AirEaseWeb-sub002/internal/domain"
)

// FlightAPI is a configurable mock implementation of domain.FlightAPI.
// It supports configurable delays, errors, and responses for testing
// various scenarios including timeouts and per-leg failures.
type FlightAPI struct {
	flights      map[string][]domain.Flight
	searchErr    map[string]error
	defaultErr   error
	delay        time.Duration
	seatMaps     map[string]domain.SeatMap
	stats        map[string]domain.AirlineStats
	statsErr     error
	airport      domain.Airport
	airportErr   error
	historyErr   error
	history      []domain.SearchHistoryEntry
	searchCalls  int
	statsCalls   int
	historyCalls int
	mu           sync.Mutex
}

// NewFlightAPI creates a mock backend configured via the builder methods.
func NewFlightAPI() *FlightAPI {
	return &FlightAPI{
		flights:   make(map[string][]domain.Flight),
		searchErr: make(map[string]error),
		seatMaps:  make(map[string]domain.SeatMap),
		stats:     make(map[string]domain.AirlineStats),
	}
}

// legKey identifies a leg for per-leg configuration.
func legKey(origin, destination string) string {
	return origin + "-" + destination
}

// WithFlights configures the flights returned for a leg.
func (m *FlightAPI) WithFlights(origin, destination string, flights []domain.Flight) *FlightAPI {
	m.flights[legKey(origin, destination)] = flights
	return m
}

// WithSearchError configures an error for a specific leg.
func (m *FlightAPI) WithSearchError(origin, destination string, err error) *FlightAPI {
	m.searchErr[legKey(origin, destination)] = err
	return m
}

// WithError configures an error for every search call.
func (m *FlightAPI) WithError(err error) *FlightAPI {
	m.defaultErr = err
	return m
}

// WithDelay configures a delay before every search response.
// This is useful for testing timeout behavior.
func (m *FlightAPI) WithDelay(d time.Duration) *FlightAPI {
	m.delay = d
	return m
}

// WithSeatMap configures the seat map returned for a flight ID.
func (m *FlightAPI) WithSeatMap(flightID string, sm domain.SeatMap) *FlightAPI {
	m.seatMaps[flightID] = sm
	return m
}

// WithAirlineStats configures the stats returned for an airline code.
func (m *FlightAPI) WithAirlineStats(code string, stats domain.AirlineStats) *FlightAPI {
	m.stats[code] = stats
	return m
}

// WithStatsError configures every stats call to fail.
func (m *FlightAPI) WithStatsError(err error) *FlightAPI {
	m.statsErr = err
	return m
}

// WithNearestAirport configures the nearest-airport response.
func (m *FlightAPI) WithNearestAirport(airport domain.Airport, err error) *FlightAPI {
	m.airport = airport
	m.airportErr = err
	return m
}

// WithHistoryError configures history saves to fail.
func (m *FlightAPI) WithHistoryError(err error) *FlightAPI {
	m.historyErr = err
	return m
}

// SearchFlights implements domain.FlightAPI.
func (m *FlightAPI) SearchFlights(ctx context.Context, leg domain.SearchLeg, passengers int, cabinClass string) ([]domain.Flight, error) {
	m.mu.Lock()
	m.searchCalls++
	m.mu.Unlock()

	if m.delay > 0 {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(m.delay):
		}
	}
	if ctx.Err() != nil {
		return nil, ctx.Err()
	}
	if m.defaultErr != nil {
		return nil, m.defaultErr
	}
	if err, ok := m.searchErr[legKey(leg.Origin, leg.Destination)]; ok {
		return nil, err
	}
	return m.flights[legKey(leg.Origin, leg.Destination)], nil
}

// GetSeatMap implements domain.FlightAPI.
func (m *FlightAPI) GetSeatMap(_ context.Context, flightID string) (domain.SeatMap, error) {
	sm, ok := m.seatMaps[flightID]
	if !ok {
		return domain.SeatMap{}, fmt.Errorf("no seat map for %s", flightID)
	}
	return sm, nil
}

// GetAirlineStats implements domain.FlightAPI.
func (m *FlightAPI) GetAirlineStats(_ context.Context, airlineCode string) (domain.AirlineStats, error) {
	m.mu.Lock()
	m.statsCalls++
	m.mu.Unlock()

	if m.statsErr != nil {
		return domain.AirlineStats{}, m.statsErr
	}
	stats, ok := m.stats[airlineCode]
	if !ok {
		return domain.AirlineStats{Airline: airlineCode}, nil
	}
	return stats, nil
}

// NearestAirport implements domain.FlightAPI.
func (m *FlightAPI) NearestAirport(_ context.Context, _ domain.GeoPoint) (domain.Airport, error) {
	if m.airportErr != nil {
		return domain.Airport{}, m.airportErr
	}
	return m.airport, nil
}

// SaveSearchHistory implements domain.FlightAPI.
func (m *FlightAPI) SaveSearchHistory(_ context.Context, entry domain.SearchHistoryEntry) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.historyCalls++
	if m.historyErr != nil {
		return m.historyErr
	}
	m.history = append(m.history, entry)
	return nil
}

// SearchCalls returns the number of SearchFlights invocations.
func (m *FlightAPI) SearchCalls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.searchCalls
}

// StatsCalls returns the number of GetAirlineStats invocations.
func (m *FlightAPI) StatsCalls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.statsCalls
}

// HistoryCalls returns the number of SaveSearchHistory invocations.
func (m *FlightAPI) HistoryCalls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.historyCalls
}

// History returns the recorded history entries.
func (m *FlightAPI) History() []domain.SearchHistoryEntry {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]domain.SearchHistoryEntry, len(m.history))
	copy(out, m.history)
	return out
}

// Ensure FlightAPI implements domain.FlightAPI at compile time.
var _ domain.FlightAPI = (*FlightAPI)(nil)

// SampleFlights returns count sample flights for a leg, with all required
// fields populated with realistic values. Prices and durations vary by index
// so the flights sort distinctly.
func SampleFlights(origin, destination string, count int) []domain.Flight {
	flights := make([]domain.Flight, count)
	baseTime := time.Date(2026, 9, 15, 8, 0, 0, 0, time.UTC)

	airlines := []domain.AirlineInfo{
		{Code: "MU", Name: "China Eastern"},
		{Code: "CA", Name: "Air China"},
		{Code: "CZ", Name: "China Southern"},
	}

	for i := 0; i < count; i++ {
		airline := airlines[i%len(airlines)]
		departure := baseTime.Add(time.Duration(i*2) * time.Hour)
		minutes := 140 + i*25

		flights[i] = domain.Flight{
			ID:           fmt.Sprintf("%s-%s-%03d", origin, destination, i+1),
			FlightNumber: fmt.Sprintf("%s%d", airline.Code, 5100+i),
			Airline:      airline,
			Departure: domain.FlightPoint{
				City:     origin,
				CityCode: origin,
				DateTime: departure,
			},
			Arrival: domain.FlightPoint{
				City:     destination,
				CityCode: destination,
				DateTime: departure.Add(time.Duration(minutes) * time.Minute),
			},
			Duration: domain.NewDurationInfo(minutes),
			Stops:    i % 3,
			Price: domain.PriceInfo{
				Amount:   850 + float64(i)*150,
				Currency: "CNY",
			},
			Aircraft: "Airbus A330-300",
		}
	}

	return flights
}

package flightapi

import (
	"fmt"
	"time"

	"github.com/stevenyi0526-glitch/AirEaseWeb-sub002/internal/domain"
	"github.com/stevenyi0526-glitch/AirEaseWeb-sub002/internal/infrastructure/logger"
)

// normalize converts backend flight rows to domain Flight entities.
// Rows that cannot be normalized are skipped and logged rather than failing
// the whole result set.
func normalize(rows []wireFlight) []domain.Flight {
	result := make([]domain.Flight, 0, len(rows))

	for _, row := range rows {
		flight, err := normalizeFlight(row)
		if err != nil {
			logger.Warn().
				Str("flight_id", row.FlightID).
				Err(err).
				Msg("Skipping unparseable flight row")
			continue
		}
		result = append(result, flight)
	}

	return result
}

// normalizeFlight converts a single backend row to a domain Flight entity.
func normalizeFlight(row wireFlight) (domain.Flight, error) {
	departureTime, err := parseDateTime(row.Departure.Time)
	if err != nil {
		return domain.Flight{}, fmt.Errorf("failed to parse departure time: %w", err)
	}

	arrivalTime, err := parseDateTime(row.Arrival.Time)
	if err != nil {
		return domain.Flight{}, fmt.Errorf("failed to parse arrival time: %w", err)
	}

	// Derive stops from segments if present, otherwise trust the stops field
	stops := row.Stops
	if len(row.Segments) > 1 {
		stops = len(row.Segments) - 1
	}

	return domain.Flight{
		ID:           row.FlightID,
		FlightNumber: row.FlightNumber,
		Airline: domain.AirlineInfo{
			Code: row.AirlineCode,
			Name: row.AirlineName,
		},
		Departure: domain.FlightPoint{
			City:     row.Departure.City,
			CityCode: row.Departure.CityCode,
			DateTime: departureTime,
		},
		Arrival: domain.FlightPoint{
			City:     row.Arrival.City,
			CityCode: row.Arrival.CityCode,
			DateTime: arrivalTime,
		},
		Duration: domain.NewDurationInfo(row.DurationMins),
		Stops:    stops,
		Price: domain.PriceInfo{
			Amount:   row.Price.Amount,
			Currency: row.Price.Currency,
		},
		Aircraft:   row.Aircraft,
		Facilities: normalizeFacilities(row.Facilities),
	}, nil
}

// normalizeFacilities maps the wire facility flags onto the domain shape.
// A nil input means the backend sent no facility data at all.
func normalizeFacilities(w *wireFacility) *domain.Facilities {
	if w == nil {
		return nil
	}
	return &domain.Facilities{
		HasWifi:         w.Wifi,
		HasPower:        w.Power,
		HasIFE:          w.IFE,
		IFEType:         w.IFEType,
		MealIncluded:    w.Meal,
		MealType:        w.MealType,
		SeatPitchInches: w.SeatPitchIn,
	}
}

// normalizeStats maps backend airline statistics onto the domain shape.
func normalizeStats(w wireAirlineStats) domain.AirlineStats {
	stats := domain.AirlineStats{
		Airline:       w.Airline,
		OnTimeRate:    w.OnTimeRate,
		FleetAgeYears: w.FleetAgeYears,
	}
	if w.Safety != nil {
		stats.Safety = &domain.SafetyRecord{
			ModelIncidents:   w.Safety.ModelIncidents,
			AirlineIncidents: w.Safety.AirlineIncidents,
			TypeIncidents:    w.Safety.TypeIncidents,
		}
	}
	if w.Ratings != nil {
		stats.Ratings = &domain.ServiceRatings{
			Overall: w.Ratings.Overall,
			Food:    w.Ratings.Food,
			Crew:    w.Ratings.Crew,
		}
	}
	return stats
}

// parseDateTime parses an ISO 8601 datetime string to time.Time.
// Supports formats: "2006-01-02T15:04:05Z07:00" and "2006-01-02T15:04:05"
func parseDateTime(dateTime string) (time.Time, error) {
	// Try RFC3339 format first (with timezone)
	t, err := time.Parse(time.RFC3339, dateTime)
	if err == nil {
		return t, nil
	}

	// Try without timezone
	t, err = time.Parse("2006-01-02T15:04:05", dateTime)
	if err == nil {
		return t, nil
	}

	return time.Time{}, fmt.Errorf("unable to parse datetime %q", dateTime)
}

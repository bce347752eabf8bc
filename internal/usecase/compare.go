package usecase

import (
	"context"

	"github.com/stevenyi0526-glitch/AirEaseWeb-sub002/internal/config"
	"github.com/stevenyi0526-glitch/AirEaseWeb-sub002/internal/domain"
	"github.com/stevenyi0526-glitch/AirEaseWeb-sub002/internal/infrastructure/logger"
	"github.com/stevenyi0526-glitch/AirEaseWeb-sub002/internal/scoring"
)

// CompareUseCase defines the side-by-side comparison operation.
type CompareUseCase interface {
	// Compare scores 2-3 flights under the persona's weight profile and
	// computes best-of flags across the set.
	Compare(ctx context.Context, flights []domain.Flight, persona string) (*scoring.ComparisonResult, error)
}

// compareUseCase implements CompareUseCase.
type compareUseCase struct {
	api   domain.FlightAPI
	cache Cache
	norm  *scoring.Normalizer
	agg   *scoring.Aggregator
}

// NewCompareUseCase creates a CompareUseCase. cache may be nil to disable
// airline statistics caching.
func NewCompareUseCase(api domain.FlightAPI, cache Cache, norm *scoring.Normalizer) CompareUseCase {
	return &compareUseCase{
		api:   api,
		cache: cache,
		norm:  norm,
		agg:   scoring.NewAggregator(norm),
	}
}

// Compare implements CompareUseCase.Compare. Airline statistics that cannot
// be fetched degrade to neutral defaults instead of failing the comparison;
// the provenance report marks the affected dimensions.
func (uc *compareUseCase) Compare(ctx context.Context, flights []domain.Flight, persona string) (*scoring.ComparisonResult, error) {
	if len(flights) < scoring.MinComparisonSize || len(flights) > scoring.MaxComparisonSize {
		return nil, domain.ErrInvalidComparisonSet
	}

	weights, err := config.PersonaWeights(persona)
	if err != nil {
		return nil, err
	}

	// The route average anchors the value dimension; within a comparison the
	// set itself is the route sample.
	routeAverage := 0.0
	for _, f := range flights {
		routeAverage += f.Price.Amount
	}
	routeAverage /= float64(len(flights))

	scored := make([]scoring.ScoredFlight, 0, len(flights))
	for _, flight := range flights {
		stats := uc.airlineStats(ctx, flight.Airline.Code)

		dims, prov, err := uc.norm.ScoreFlight(flight, stats, &routeAverage, weights)
		if err != nil {
			return nil, err
		}

		scored = append(scored, scoring.ScoredFlight{
			Flight:         flight,
			Dimensions:     dims,
			AmenitiesScore: uc.norm.AmenitiesScore(flight.Facilities),
			Provenance:     prov,
		})
	}

	return uc.agg.Compare(scored)
}

// airlineStats fetches airline statistics with cache-aside. A fetch failure
// returns nil, which scores as neutral.
func (uc *compareUseCase) airlineStats(ctx context.Context, airlineCode string) *domain.AirlineStats {
	key := "stats:" + airlineCode

	if uc.cache != nil {
		var cached domain.AirlineStats
		if found, err := uc.cache.Get(ctx, key, &cached); err == nil && found {
			return &cached
		}
	}

	stats, err := uc.api.GetAirlineStats(ctx, airlineCode)
	if err != nil {
		logger.Warn().Err(err).Str("airline", airlineCode).Msg("Airline stats unavailable, scoring with neutral defaults")
		return nil
	}

	if uc.cache != nil {
		if err := uc.cache.Set(ctx, key, stats); err != nil {
			logger.Warn().Err(err).Msg("Airline stats cache store failed")
		}
	}
	return &stats
}

// Ensure compareUseCase implements CompareUseCase at compile time.
var _ CompareUseCase = (*compareUseCase)(nil)

package usecase

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/stevenyi0526-glitch/AirEaseWeb-sub002/internal/domain"
	"github.com/stevenyi0526-glitch/AirEaseWeb-sub002/internal/infrastructure/logger"
	"github.com/stevenyi0526-glitch/AirEaseWeb-sub002/internal/scoring"
)

// DefaultSearchTimeout bounds a whole multi-leg search.
const DefaultSearchTimeout = 15 * time.Second

// Cache is the subset of cache behavior the use cases need. A nil Cache
// disables caching entirely.
type Cache interface {
	Get(ctx context.Context, key string, dst any) (bool, error)
	Set(ctx context.Context, key string, v any) error
	Del(ctx context.Context, key string) error
}

// QueryParser turns a free-form query into fully-specified search parameters.
type QueryParser interface {
	Parse(ctx context.Context, query string, geo *domain.GeoPoint) (domain.SearchParams, error)
}

// SearchUseCase defines flight search operations.
type SearchUseCase interface {
	// Search runs a one-way or multi-city search, then filters and sorts
	// the combined results.
	Search(ctx context.Context, criteria domain.SearchCriteria, opts SearchOptions) (*domain.SearchResponse, error)

	// SearchNatural parses a free-form query and runs the resulting search.
	// The returned params echo what the parser understood.
	SearchNatural(ctx context.Context, query string, geo *domain.GeoPoint) (*domain.SearchResponse, domain.SearchParams, error)

	// GetSeatMap fetches the seat map for a flight, cached.
	GetSeatMap(ctx context.Context, flightID string) (domain.SeatMap, error)
}

// searchUseCase implements SearchUseCase.
type searchUseCase struct {
	api     domain.FlightAPI
	parser  QueryParser
	cache   Cache
	norm    *scoring.Normalizer
	timeout time.Duration
}

// SearchConfig contains configuration options for the search use case.
type SearchConfig struct {
	Timeout time.Duration
}

// NewSearchUseCase creates a SearchUseCase. parser may be nil when the
// natural-language endpoint is disabled; cache may be nil to disable caching.
func NewSearchUseCase(api domain.FlightAPI, parser QueryParser, cache Cache, norm *scoring.Normalizer, cfg *SearchConfig) SearchUseCase {
	timeout := DefaultSearchTimeout
	if cfg != nil && cfg.Timeout > 0 {
		timeout = cfg.Timeout
	}
	return &searchUseCase{
		api:     api,
		parser:  parser,
		cache:   cache,
		norm:    norm,
		timeout: timeout,
	}
}

// Search implements SearchUseCase.Search. Multi-city criteria fan out one
// backend request per leg; any leg failure fails the whole search, so the
// user never sees a partial journey.
func (uc *searchUseCase) Search(ctx context.Context, criteria domain.SearchCriteria, opts SearchOptions) (*domain.SearchResponse, error) {
	startTime := time.Now()

	criteria.SetDefaults()
	if err := criteria.Validate(); err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, uc.timeout)
	defer cancel()

	key := searchCacheKey(criteria)
	var flights []domain.Flight
	cacheHit := false

	if uc.cache != nil {
		if found, err := uc.cache.Get(ctx, key, &flights); err != nil {
			logger.Warn().Err(err).Msg("Search cache lookup failed, evicting entry")
			if delErr := uc.cache.Del(ctx, key); delErr != nil {
				logger.Warn().Err(delErr).Msg("Search cache eviction failed")
			}
		} else if found {
			cacheHit = true
		}
	}

	if !cacheHit {
		fetched, err := uc.fetchLegs(ctx, criteria)
		if err != nil {
			return nil, err
		}
		flights = fetched

		if uc.cache != nil {
			if err := uc.cache.Set(ctx, key, flights); err != nil {
				logger.Warn().Err(err).Msg("Search cache store failed")
			}
		}

		uc.saveHistoryAsync(criteria, len(flights))
	}

	filtered := applyFilters(flights, opts.Filters)
	sorted := uc.sortFlights(filtered, opts.SortBy)

	return &domain.SearchResponse{
		Criteria: criteria,
		Metadata: domain.SearchMetadata{
			TotalResults: len(sorted),
			Legs:         len(criteria.Legs),
			SearchTimeMs: time.Since(startTime).Milliseconds(),
			CacheHit:     cacheHit,
		},
		Flights: sorted,
	}, nil
}

// fetchLegs queries all legs concurrently, all-or-nothing.
func (uc *searchUseCase) fetchLegs(ctx context.Context, criteria domain.SearchCriteria) ([]domain.Flight, error) {
	g, gctx := errgroup.WithContext(ctx)
	perLeg := make([][]domain.Flight, len(criteria.Legs))

	for i, leg := range criteria.Legs {
		g.Go(func() error {
			flights, err := uc.api.SearchFlights(gctx, leg, criteria.Passengers, criteria.CabinClass)
			if err != nil {
				return fmt.Errorf("leg %d (%s-%s): %w", i+1, leg.Origin, leg.Destination, err)
			}
			perLeg[i] = flights
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		if !domain.IsInvalidRequest(err) {
			err = fmt.Errorf("%w: %v", domain.ErrSearchFailed, err)
		}
		return nil, err
	}

	var all []domain.Flight
	for _, flights := range perLeg {
		all = append(all, flights...)
	}
	return all, nil
}

// SearchNatural implements SearchUseCase.SearchNatural.
func (uc *searchUseCase) SearchNatural(ctx context.Context, query string, geo *domain.GeoPoint) (*domain.SearchResponse, domain.SearchParams, error) {
	if uc.parser == nil {
		return nil, domain.SearchParams{}, domain.WrapInvalidRequest("natural-language search is not configured")
	}

	params, err := uc.parser.Parse(ctx, query, geo)
	if err != nil {
		return nil, domain.SearchParams{}, err
	}

	opts := SearchOptions{
		SortBy:  params.SortBy,
		Filters: filtersFromParams(params),
	}

	response, err := uc.Search(ctx, params.Criteria(), opts)
	if err != nil {
		return nil, params, err
	}
	return response, params, nil
}

// filtersFromParams derives filter options from parsed query constraints.
func filtersFromParams(params domain.SearchParams) *domain.FilterOptions {
	filters := &domain.FilterOptions{
		MaxPrice:  params.MaxPrice,
		MaxStops:  params.Stops,
		Airlines:  params.PreferredAirlines,
		Departure: domain.TimeOfDayByLabel(params.TimePreference),
	}
	if filters.MaxPrice == nil && filters.MaxStops == nil &&
		len(filters.Airlines) == 0 && filters.Departure == nil {
		return nil
	}
	return filters
}

// GetSeatMap implements SearchUseCase.GetSeatMap with cache-aside.
func (uc *searchUseCase) GetSeatMap(ctx context.Context, flightID string) (domain.SeatMap, error) {
	key := "seatmap:" + flightID

	if uc.cache != nil {
		var cached domain.SeatMap
		if found, err := uc.cache.Get(ctx, key, &cached); err == nil && found {
			return cached, nil
		}
	}

	seatMap, err := uc.api.GetSeatMap(ctx, flightID)
	if err != nil {
		return domain.SeatMap{}, err
	}

	if uc.cache != nil {
		if err := uc.cache.Set(ctx, key, seatMap); err != nil {
			logger.Warn().Err(err).Msg("Seat map cache store failed")
		}
	}
	return seatMap, nil
}

// saveHistoryAsync records the search without blocking or failing the
// response. The write runs on a detached context so response cancellation
// does not abort it.
func (uc *searchUseCase) saveHistoryAsync(criteria domain.SearchCriteria, results int) {
	entry := domain.SearchHistoryEntry{
		Criteria:   criteria,
		Results:    results,
		SearchedAt: time.Now(),
	}

	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		if err := uc.api.SaveSearchHistory(ctx, entry); err != nil {
			logger.Debug().Err(err).Msg("Search history save failed")
		}
	}()
}

// searchCacheKey builds a deterministic cache key for the criteria.
func searchCacheKey(criteria domain.SearchCriteria) string {
	var b strings.Builder
	b.WriteString("search:")
	for i, leg := range criteria.Legs {
		if i > 0 {
			b.WriteByte('|')
		}
		fmt.Fprintf(&b, "%s-%s@%s", leg.Origin, leg.Destination, leg.DepartureDate)
	}
	fmt.Fprintf(&b, ":p%d:%s", criteria.Passengers, criteria.CabinClass)
	return b.String()
}

// applyFilters applies filter options to the flight list.
func applyFilters(flights []domain.Flight, opts *domain.FilterOptions) []domain.Flight {
	if opts == nil {
		return flights
	}

	result := make([]domain.Flight, 0, len(flights))
	for _, f := range flights {
		if opts.MatchesFlight(f) {
			result = append(result, f)
		}
	}
	return result
}

// sortFlights sorts flights according to the specified sort option. The
// "best" ordering ranks by the same relative score functions the comparison
// view uses.
func (uc *searchUseCase) sortFlights(flights []domain.Flight, sortBy domain.SortOption) []domain.Flight {
	if len(flights) <= 1 {
		return flights
	}

	result := make([]domain.Flight, len(flights))
	copy(result, flights)

	switch sortBy {
	case domain.SortByPrice:
		sort.SliceStable(result, func(i, j int) bool {
			return result[i].Price.Amount < result[j].Price.Amount
		})
	case domain.SortByDuration:
		sort.SliceStable(result, func(i, j int) bool {
			return result[i].Duration.TotalMinutes < result[j].Duration.TotalMinutes
		})
	case domain.SortByDeparture:
		sort.SliceStable(result, func(i, j int) bool {
			return result[i].Departure.DateTime.Before(result[j].Departure.DateTime)
		})
	case domain.SortByBestValue:
		fallthrough
	default:
		setPrices := make([]float64, len(result))
		setMinutes := make([]int, len(result))
		for i, f := range result {
			setPrices[i] = f.Price.Amount
			setMinutes[i] = f.Duration.TotalMinutes
		}
		scores := make(map[string]float64, len(result))
		for _, f := range result {
			scores[f.ID] = uc.norm.RankScore(f, setPrices, setMinutes)
		}
		sort.SliceStable(result, func(i, j int) bool {
			return scores[result[i].ID] > scores[result[j].ID]
		})
	}

	return result
}

// Ensure searchUseCase implements SearchUseCase at compile time.
var _ SearchUseCase = (*searchUseCase)(nil)

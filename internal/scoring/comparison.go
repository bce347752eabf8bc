package scoring

import (
	"github.com/stevenyi0526-glitch/AirEaseWeb-sub002/internal/domain"
)

// Metric identifies a displayed comparison metric for best-of highlighting.
type Metric string

// Comparable metrics. Numeric metrics always have at least one winner;
// facility metrics have winners only among flights with the amenity known
// present.
const (
	MetricPrice    Metric = "price"
	MetricDuration Metric = "duration"
	MetricStops    Metric = "stops"
	MetricOverall  Metric = "overall"
	MetricWifi     Metric = "wifi"
	MetricPower    Metric = "power"
	MetricIFE      Metric = "ife"
	MetricMeal     Metric = "meal"
)

// AllMetrics lists every metric the comparison view highlights.
var AllMetrics = []Metric{
	MetricPrice, MetricDuration, MetricStops, MetricOverall,
	MetricWifi, MetricPower, MetricIFE, MetricMeal,
}

// Comparison set size limits. The product caps side-by-side comparison at 3
// flights; below 2 a comparison is undefined.
const (
	MinComparisonSize = 2
	MaxComparisonSize = 3
)

// ScoredFlight is a flight with its absolute dimension scores attached.
type ScoredFlight struct {
	// Flight is the underlying read-only flight record
	Flight domain.Flight `json:"flight"`

	// Dimensions are the absolute quality dimensions incl. the overall score
	Dimensions domain.ScoreDimensions `json:"dimensions"`

	// AmenitiesScore is the additive amenities score in [0,10]
	AmenitiesScore float64 `json:"amenitiesScore"`

	// Provenance documents which data sources fed the composite dimensions
	Provenance DimensionProvenance `json:"provenance"`
}

// ComparedFlight extends a scored flight with the comparison-relative scores.
// These depend on the membership of the comparison set and are recomputed on
// every Compare call; they are never cached on the flight.
type ComparedFlight struct {
	ScoredFlight

	// PriceScore is relative to the set's price range, in [2,10]
	PriceScore float64 `json:"priceScore"`

	// DurationScore is relative to the set's shortest flight, in [1,10]
	DurationScore float64 `json:"durationScore"`

	// StopsScore is the absolute stops tier score
	StopsScore float64 `json:"stopsScore"`
}

// ComparisonResult is the aggregate output for a 2-3 flight comparison set.
type ComparisonResult struct {
	// Flights are the compared flights in input order
	Flights []ComparedFlight `json:"flights"`

	// Best maps each metric to the flight IDs tied for best. Ties are all
	// flagged, never arbitrarily broken. Facility metrics may map to an
	// empty set when no flight has the amenity known present.
	Best map[Metric][]string `json:"best"`

	// BestOverall holds the IDs satisfying the compound badge condition:
	// lowest price AND highest overall score simultaneously. Empty when no
	// flight satisfies both.
	BestOverall []string `json:"bestOverall"`
}

// Aggregator computes comparison results from scored flights.
type Aggregator struct {
	norm *Normalizer
}

// NewAggregator creates an Aggregator backed by the given Normalizer.
func NewAggregator(norm *Normalizer) *Aggregator {
	return &Aggregator{norm: norm}
}

// Compare computes relative scores and best-of flags for a comparison set of
// exactly 2 or 3 flights. Any other size returns ErrInvalidComparisonSet:
// the UI gating layer is responsible for preventing singleton comparisons
// upstream. The input slice is not mutated.
func (a *Aggregator) Compare(flights []ScoredFlight) (*ComparisonResult, error) {
	if len(flights) < MinComparisonSize || len(flights) > MaxComparisonSize {
		return nil, domain.ErrInvalidComparisonSet
	}

	setPrices := make([]float64, len(flights))
	setMinutes := make([]int, len(flights))
	for i, f := range flights {
		setPrices[i] = f.Flight.Price.Amount
		setMinutes[i] = f.Flight.Duration.TotalMinutes
	}

	compared := make([]ComparedFlight, len(flights))
	for i, f := range flights {
		compared[i] = ComparedFlight{
			ScoredFlight:  f,
			PriceScore:    a.norm.PriceScore(f.Flight.Price.Amount, setPrices),
			DurationScore: a.norm.DurationScore(f.Flight.Duration.TotalMinutes, setMinutes),
			StopsScore:    a.norm.StopsScore(f.Flight.Stops),
		}
	}

	best := make(map[Metric][]string, len(AllMetrics))
	for _, m := range AllMetrics {
		best[m] = BestOf(m, compared)
	}

	return &ComparisonResult{
		Flights:     compared,
		Best:        best,
		BestOverall: bestOverall(compared),
	}, nil
}

// BestOf returns the IDs of all flights tied for the best value of a metric.
// Numeric metrics always return at least one ID; facility metrics return the
// flights with the amenity known present, which may be none.
func BestOf(metric Metric, flights []ComparedFlight) []string {
	if len(flights) == 0 {
		return nil
	}

	switch metric {
	case MetricPrice:
		return bestNumeric(flights, func(f ComparedFlight) float64 { return f.Flight.Price.Amount }, false)
	case MetricDuration:
		return bestNumeric(flights, func(f ComparedFlight) float64 { return float64(f.Flight.Duration.TotalMinutes) }, false)
	case MetricStops:
		return bestNumeric(flights, func(f ComparedFlight) float64 { return float64(f.Flight.Stops) }, false)
	case MetricOverall:
		return bestNumeric(flights, func(f ComparedFlight) float64 { return f.Dimensions.Overall }, true)
	case MetricWifi:
		return bestBoolean(flights, func(fac *domain.Facilities) *bool { return fac.HasWifi })
	case MetricPower:
		return bestBoolean(flights, func(fac *domain.Facilities) *bool { return fac.HasPower })
	case MetricIFE:
		return bestBoolean(flights, func(fac *domain.Facilities) *bool { return fac.HasIFE })
	case MetricMeal:
		return bestBoolean(flights, func(fac *domain.Facilities) *bool { return fac.MealIncluded })
	default:
		return nil
	}
}

// bestNumeric finds every flight tied for the extreme of value(f).
// higherIsBetter selects max instead of min.
func bestNumeric(flights []ComparedFlight, value func(ComparedFlight) float64, higherIsBetter bool) []string {
	extreme := value(flights[0])
	for _, f := range flights[1:] {
		v := value(f)
		if (higherIsBetter && v > extreme) || (!higherIsBetter && v < extreme) {
			extreme = v
		}
	}

	var ids []string
	for _, f := range flights {
		if value(f) == extreme {
			ids = append(ids, f.Flight.ID)
		}
	}
	return ids
}

// bestBoolean flags every flight whose facility is known present. Unknown
// never wins: "no data" must stay distinguishable from "not available".
func bestBoolean(flights []ComparedFlight, field func(*domain.Facilities) *bool) []string {
	var ids []string
	for _, f := range flights {
		if f.Flight.Facilities == nil {
			continue
		}
		if domain.KnownTrue(field(f.Flight.Facilities)) {
			ids = append(ids, f.Flight.ID)
		}
	}
	return ids
}

// bestOverall applies the compound badge condition: a flight must hold the
// lowest price and the highest overall score at the same time.
func bestOverall(flights []ComparedFlight) []string {
	cheapest := map[string]bool{}
	for _, id := range BestOf(MetricPrice, flights) {
		cheapest[id] = true
	}

	var ids []string
	for _, id := range BestOf(MetricOverall, flights) {
		if cheapest[id] {
			ids = append(ids, id)
		}
	}
	return ids
}

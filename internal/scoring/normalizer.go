package scoring

import (
	"math"

	"github.com/stevenyi0526-glitch/AirEaseWeb-sub002/internal/domain"
)

// Normalizer converts raw flight attributes into dimension scores. All
// methods are pure: same inputs, bit-identical outputs.
type Normalizer struct {
	cfg Config
}

// NewNormalizer creates a Normalizer with the given policy configuration.
func NewNormalizer(cfg Config) *Normalizer {
	return &Normalizer{cfg: cfg}
}

// FactorReport documents which sub-factors of a composite score carried data.
// Downstream UI uses it to show "insufficient data" distinctly from "score is
// zero": a composite with an empty Used list has no basis, not a bad one.
type FactorReport struct {
	// Used lists sub-factors that contributed to the score
	Used []string `json:"used"`

	// Missing lists sub-factors with no data (contributed zero)
	Missing []string `json:"missing"`
}

// HasData reports whether any sub-factor contributed.
func (r FactorReport) HasData() bool {
	return len(r.Used) > 0
}

// CompositeScore pairs a weighted-sum score with the provenance of its
// sub-factors.
type CompositeScore struct {
	Score  float64      `json:"score"`
	Report FactorReport `json:"report"`
}

// PriceScore scores a price against the other prices in the current
// comparison set. The cheapest flight scores 10, the most expensive scores
// the configured floor (2), linear in between. When all compared prices are
// equal (including a singleton set) every flight scores 10: there is no basis
// to penalize, and min==max must not divide by zero.
//
// Relative score: recompute whenever the comparison set's membership changes.
func (n *Normalizer) PriceScore(price float64, setPrices []float64) float64 {
	if len(setPrices) == 0 {
		return domain.ScoreMax
	}
	min, max := setPrices[0], setPrices[0]
	for _, p := range setPrices[1:] {
		if p < min {
			min = p
		}
		if p > max {
			max = p
		}
	}
	if max == min {
		return domain.ScoreMax
	}
	score := n.cfg.PriceFloor + (1-(price-min)/(max-min))*n.cfg.PriceSpan
	return domain.ClampScore(score)
}

// DurationScore scores a duration against the other durations in the current
// comparison set. The shortest flight scores 10; every additional
// DurationStepMinutes above it subtracts one point, floored at the configured
// minimum (1).
//
// Relative score: recompute whenever the comparison set's membership changes.
func (n *Normalizer) DurationScore(minutes int, setMinutes []int) float64 {
	if len(setMinutes) == 0 {
		return domain.ScoreMax
	}
	shortest := setMinutes[0]
	for _, m := range setMinutes[1:] {
		if m < shortest {
			shortest = m
		}
	}
	score := domain.ScoreMax - float64(minutes-shortest)/n.cfg.DurationStepMinutes
	if score < n.cfg.DurationFloor {
		return n.cfg.DurationFloor
	}
	return domain.ClampScore(score)
}

// StopsScore maps stop count to a fixed tier. Unlike price and duration this
// is an absolute score, independent of the comparison set.
func (n *Normalizer) StopsScore(stops int) float64 {
	switch stops {
	case 0:
		return 10
	case 1:
		return 8
	case 2:
		return 6
	default:
		return 4
	}
}

// SafetyScore starts at 10 and subtracts the configured penalty per incident,
// weighted by how specifically the incident matches the flight, floored at 0.
// A nil record (no incident data at all) yields exactly 10: absence of
// negative evidence is a perfect score by policy.
func (n *Normalizer) SafetyScore(rec *domain.SafetyRecord) float64 {
	if rec == nil {
		return domain.ScoreMax
	}
	score := domain.ScoreMax -
		float64(rec.ModelIncidents)*n.cfg.ModelIncidentPenalty -
		float64(rec.AirlineIncidents)*n.cfg.AirlineIncidentPenalty -
		float64(rec.TypeIncidents)*n.cfg.TypeIncidentPenalty
	return domain.ClampScore(score)
}

// ReliabilityScore maps an on-time performance rate onto [0,10] through three
// monotonic linear bands:
//
//	rate >= 0.90        -> [8,10]
//	0.75 <= rate < 0.90 -> [5,8)
//	rate < 0.75         -> [0,5)
//
// A nil rate (no on-time data) yields the configured neutral default.
func (n *Normalizer) ReliabilityScore(rate *float64) float64 {
	if rate == nil {
		return n.cfg.ReliabilityUnknown
	}
	r := *rate
	if r < 0 {
		r = 0
	}
	if r > 1 {
		r = 1
	}

	var score float64
	switch {
	case r >= 0.90:
		score = 8 + (r-0.90)/0.10*2
	case r >= 0.75:
		score = 5 + (r-0.75)/0.15*3
	default:
		score = r / 0.75 * 5
	}
	return domain.ClampScore(score)
}

// ComfortInput holds the optional sub-factors of the comfort dimension.
type ComfortInput struct {
	SeatPitchInches  *float64
	SeatWidthInches  *float64
	ReclineDegrees   *float64
	AircraftAgeYears *float64
}

// ComfortScore computes the weighted comfort score. Missing sub-factors
// contribute zero rather than failing; the report says which were available.
func (n *Normalizer) ComfortScore(in ComfortInput) CompositeScore {
	cw := n.cfg.Comfort
	acc := newCompositeAccumulator()

	acc.add("seatPitch", in.SeatPitchInches, cw.SeatPitch, func(v float64) float64 {
		return normalize01(v, cw.PitchMinInches, cw.PitchMaxInches)
	})
	acc.add("seatWidth", in.SeatWidthInches, cw.SeatWidth, func(v float64) float64 {
		return normalize01(v, cw.WidthMinInches, cw.WidthMaxInches)
	})
	acc.add("recline", in.ReclineDegrees, cw.Recline, func(v float64) float64 {
		return normalize01(v, 0, cw.ReclineMaxDegrees)
	})
	acc.add("aircraftAge", in.AircraftAgeYears, cw.AircraftAge, func(v float64) float64 {
		// Younger aircraft score higher.
		return 1 - normalize01(v, 0, cw.AgeMaxYears)
	})

	return acc.result()
}

// ServiceInput holds the optional sub-factors of the service dimension, each
// a rating on a 0-5 scale.
type ServiceInput struct {
	Rating     *float64
	FoodRating *float64
	CrewRating *float64
}

// ServiceScore computes the weighted service score from 0-5 scale ratings.
// Missing ratings contribute zero rather than failing.
func (n *Normalizer) ServiceScore(in ServiceInput) CompositeScore {
	sw := n.cfg.Service
	acc := newCompositeAccumulator()

	fromRating := func(v float64) float64 { return normalize01(v, 0, 5) }
	acc.add("rating", in.Rating, sw.Overall, fromRating)
	acc.add("foodRating", in.FoodRating, sw.Food, fromRating)
	acc.add("crewRating", in.CrewRating, sw.Crew, fromRating)

	return acc.result()
}

// ValueInput holds the inputs of the value dimension. Price is always known;
// the route average and service level are optional.
type ValueInput struct {
	Price             float64
	ServiceLevel      *float64
	RouteAveragePrice *float64
}

// ValueScore relates the fare to the route's average price and the service
// level delivered for it. A fare at half the route average maxes the price
// factor; a fare at 1.5x the average zeroes it.
func (n *Normalizer) ValueScore(in ValueInput) CompositeScore {
	vw := n.cfg.Value
	acc := newCompositeAccumulator()

	if in.RouteAveragePrice != nil && *in.RouteAveragePrice > 0 && in.Price > 0 {
		ratio := 1.5 - in.Price / *in.RouteAveragePrice
		acc.addValue("priceVsRoute", clamp01(ratio), vw.PriceVsRoute)
	} else {
		acc.miss("priceVsRoute")
	}

	acc.add("serviceLevel", in.ServiceLevel, vw.ServiceLevel, func(v float64) float64 {
		return normalize01(v, domain.ScoreMin, domain.ScoreMax)
	})

	return acc.result()
}

// AmenitiesScore awards the configured points (2.5) for each amenity that is
// known present: wifi, power, in-flight entertainment, included meal. Unknown
// (nil) and known-absent both contribute zero. A nil Facilities or an empty
// one scores 0, not an error.
func (n *Normalizer) AmenitiesScore(f *domain.Facilities) float64 {
	if f == nil {
		return 0
	}
	var score float64
	if domain.KnownTrue(f.HasWifi) {
		score += n.cfg.AmenityPoints
	}
	if domain.KnownTrue(f.HasPower) {
		score += n.cfg.AmenityPoints
	}
	if domain.KnownTrue(f.HasIFE) {
		score += n.cfg.AmenityPoints
	}
	if domain.KnownTrue(f.MealIncluded) {
		score += n.cfg.AmenityPoints
	}
	return domain.ClampScore(score)
}

// Overall combines dimension scores with a persona weight vector. The vector
// must sum to 1 within domain.WeightTolerance; an invalid vector fails fast
// with ErrWeightVectorInvalid and is never silently renormalized.
func (n *Normalizer) Overall(d domain.ScoreDimensions, w domain.Weights) (float64, error) {
	if err := w.Validate(); err != nil {
		return 0, err
	}
	score := d.Safety*w.Safety +
		d.Reliability*w.Reliability +
		d.Comfort*w.Comfort +
		d.Service*w.Service +
		d.Value*w.Value
	return domain.ClampScore(score), nil
}

// DimensionProvenance documents data availability per composite dimension for
// one flight.
type DimensionProvenance struct {
	Comfort FactorReport `json:"comfort"`
	Service FactorReport `json:"service"`
	Value   FactorReport `json:"value"`

	// SafetyDataPresent is false when the 10 came from the no-data policy
	SafetyDataPresent bool `json:"safetyDataPresent"`

	// OnTimeDataPresent is false when the neutral default was used
	OnTimeDataPresent bool `json:"onTimeDataPresent"`
}

// ScoreFlight computes all absolute dimensions for one flight from its
// record, optional facilities, optional airline stats, and an optional route
// average price. Relative dimensions (price, duration vs the comparison set)
// are computed by the Aggregator instead.
func (n *Normalizer) ScoreFlight(
	flight domain.Flight,
	stats *domain.AirlineStats,
	routeAveragePrice *float64,
	weights domain.Weights,
) (domain.ScoreDimensions, DimensionProvenance, error) {
	var (
		safety  *domain.SafetyRecord
		onTime  *float64
		ratings domain.ServiceRatings
		age     *float64
	)
	if stats != nil {
		safety = stats.Safety
		onTime = stats.OnTimeRate
		age = stats.FleetAgeYears
		if stats.Ratings != nil {
			ratings = *stats.Ratings
		}
	}

	comfortIn := ComfortInput{AircraftAgeYears: age}
	if flight.Facilities != nil {
		comfortIn.SeatPitchInches = flight.Facilities.SeatPitchInches
	}
	comfort := n.ComfortScore(comfortIn)

	service := n.ServiceScore(ServiceInput{
		Rating:     ratings.Overall,
		FoodRating: ratings.Food,
		CrewRating: ratings.Crew,
	})

	var serviceLevel *float64
	if service.Report.HasData() {
		s := service.Score
		serviceLevel = &s
	}
	value := n.ValueScore(ValueInput{
		Price:             flight.Price.Amount,
		ServiceLevel:      serviceLevel,
		RouteAveragePrice: routeAveragePrice,
	})

	dims := domain.ScoreDimensions{
		Safety:      n.SafetyScore(safety),
		Reliability: n.ReliabilityScore(onTime),
		Comfort:     comfort.Score,
		Service:     service.Score,
		Value:       value.Score,
	}

	overall, err := n.Overall(dims, weights)
	if err != nil {
		return domain.ScoreDimensions{}, DimensionProvenance{}, err
	}
	dims.Overall = overall

	prov := DimensionProvenance{
		Comfort:           comfort.Report,
		Service:           service.Report,
		Value:             value.Report,
		SafetyDataPresent: safety != nil,
		OnTimeDataPresent: onTime != nil,
	}
	return dims, prov, nil
}

// RankScore blends comparison-relative price and duration scores with the
// absolute stops score using the configured rank weights, for ordering full
// result lists by "best value". It reuses the same normalization functions as
// the comparison view; there is exactly one source of truth per formula.
func (n *Normalizer) RankScore(flight domain.Flight, setPrices []float64, setMinutes []int) float64 {
	rw := n.cfg.Rank
	score := rw.Price*n.PriceScore(flight.Price.Amount, setPrices) +
		rw.Duration*n.DurationScore(flight.Duration.TotalMinutes, setMinutes) +
		rw.Stops*n.StopsScore(flight.Stops)
	return domain.ClampScore(score)
}

// compositeAccumulator builds a weighted sum of normalized sub-factors while
// tracking provenance.
type compositeAccumulator struct {
	weighted float64
	used     []string
	missing  []string
}

func newCompositeAccumulator() *compositeAccumulator {
	return &compositeAccumulator{}
}

// add applies norm to an optional raw value and accumulates weight*norm(v),
// recording the factor as used or missing.
func (a *compositeAccumulator) add(name string, v *float64, weight float64, norm func(float64) float64) {
	if v == nil {
		a.miss(name)
		return
	}
	a.addValue(name, norm(*v), weight)
}

// addValue accumulates an already-normalized [0,1] factor.
func (a *compositeAccumulator) addValue(name string, normalized, weight float64) {
	a.weighted += clamp01(normalized) * weight
	a.used = append(a.used, name)
}

func (a *compositeAccumulator) miss(name string) {
	a.missing = append(a.missing, name)
}

// result scales the weighted [0,1] sum onto [0,10] and clamps.
func (a *compositeAccumulator) result() CompositeScore {
	return CompositeScore{
		Score: domain.ClampScore(a.weighted * domain.ScoreMax),
		Report: FactorReport{
			Used:    a.used,
			Missing: a.missing,
		},
	}
}

// normalize01 maps v linearly from [min,max] onto [0,1], clamped.
func normalize01(v, min, max float64) float64 {
	if max == min {
		return 0
	}
	return clamp01((v - min) / (max - min))
}

// clamp01 clamps a value into [0,1].
func clamp01(v float64) float64 {
	return math.Min(1, math.Max(0, v))
}

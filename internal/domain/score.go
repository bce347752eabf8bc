package domain

import (
	"fmt"
	"math"
)

// Score bounds. Every dimension and overall score lies in [ScoreMin, ScoreMax];
// no formula may produce a value outside this range.
const (
	ScoreMin = 0.0
	ScoreMax = 10.0
)

// WeightTolerance is the permitted deviation of a weight vector's sum from 1.
// Vectors outside the tolerance are rejected, never silently renormalized,
// since renormalizing would mask a configuration bug.
const WeightTolerance = 0.001

// ScoreDimensions holds the absolute quality dimensions for a single flight.
// All values are in [0,10]. These are computed once per flight at fetch time;
// comparison-relative scores (price, duration) live on the comparison result
// instead, because they change with the membership of the comparison set.
type ScoreDimensions struct {
	// Safety starts at 10 and decreases with incident history. Absence of
	// incident data is a perfect 10 by policy, not a data gap.
	Safety float64 `json:"safety"`

	// Reliability is derived from on-time performance
	Reliability float64 `json:"reliability"`

	// Comfort is derived from seat pitch, width, recline, and aircraft age
	Comfort float64 `json:"comfort"`

	// Service is derived from passenger, food, and crew ratings
	Service float64 `json:"service"`

	// Value relates price to service level and the route's average price
	Value float64 `json:"value"`

	// Overall is the persona-weighted combination of the dimensions above
	Overall float64 `json:"overall"`
}

// Weights is a persona weight vector for combining dimension scores into an
// overall score. The weights must sum to 1 within WeightTolerance.
type Weights struct {
	Safety      float64 `json:"safety"`
	Reliability float64 `json:"reliability"`
	Comfort     float64 `json:"comfort"`
	Service     float64 `json:"service"`
	Value       float64 `json:"value"`
}

// Sum returns the total of all weights.
func (w Weights) Sum() float64 {
	return w.Safety + w.Reliability + w.Comfort + w.Service + w.Value
}

// Validate checks the sum-to-1 invariant. It returns a wrapped
// ErrWeightVectorInvalid describing the actual sum when the vector is out of
// tolerance, and also rejects negative weights.
func (w Weights) Validate() error {
	if w.Safety < 0 || w.Reliability < 0 || w.Comfort < 0 || w.Service < 0 || w.Value < 0 {
		return fmt.Errorf("%w: weights must be non-negative", ErrWeightVectorInvalid)
	}
	if sum := w.Sum(); math.Abs(sum-1.0) > WeightTolerance {
		return fmt.Errorf("%w: weights sum to %.4f, want 1.0", ErrWeightVectorInvalid, sum)
	}
	return nil
}

// ClampScore clamps a score into [ScoreMin, ScoreMax].
func ClampScore(s float64) float64 {
	if s < ScoreMin {
		return ScoreMin
	}
	if s > ScoreMax {
		return ScoreMax
	}
	return s
}

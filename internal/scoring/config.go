// Package scoring implements the flight scoring and comparison engine: pure
// functions that convert raw flight attributes into dimension scores in
// [0,10] and aggregate scored flights into side-by-side comparison results.
//
// Every renderer (radar chart, badges, share poster, document export) reads
// these outputs; none reimplements a formula. All functions are deterministic,
// perform no I/O, and never mutate their inputs.
package scoring

// Score policy constants. These are policy choices, not derived values; they
// are surfaced as configuration so multiple profiles can coexist in one
// process and tests stay deterministic.
const (
	// defaultPriceFloor is the lowest price score: the most expensive flight
	// in a comparison set still scores 2, not 0.
	defaultPriceFloor = 2.0

	// defaultPriceSpan is the scoring range above the floor.
	defaultPriceSpan = 8.0

	// defaultDurationStepMinutes is the extra flight time that costs one
	// duration point relative to the shortest flight in the set.
	defaultDurationStepMinutes = 30.0

	// defaultDurationFloor is the lowest duration score.
	defaultDurationFloor = 1.0

	// Safety incident penalties, by how specifically the incident matches
	// the scored flight.
	defaultModelIncidentPenalty   = 1.0
	defaultAirlineIncidentPenalty = 0.3
	defaultTypeIncidentPenalty    = 0.15

	// defaultAmenityPoints is awarded per present amenity (wifi, power,
	// in-flight entertainment, included meal). Four amenities reach 10.
	defaultAmenityPoints = 2.5

	// defaultReliabilityUnknown is the neutral score used when no on-time
	// data exists for an airline.
	defaultReliabilityUnknown = 5.0
)

// ComfortWeights are the sub-factor weights and normalization anchors for the
// comfort dimension.
type ComfortWeights struct {
	// SeatPitch is the weight of seat pitch
	SeatPitch float64

	// SeatWidth is the weight of seat width
	SeatWidth float64

	// Recline is the weight of seat recline
	Recline float64

	// AircraftAge is the weight of (inverted) aircraft age
	AircraftAge float64

	// PitchMinInches..PitchMaxInches anchor pitch normalization
	PitchMinInches float64
	PitchMaxInches float64

	// WidthMinInches..WidthMaxInches anchor width normalization
	WidthMinInches float64
	WidthMaxInches float64

	// ReclineMaxDegrees anchors recline normalization
	ReclineMaxDegrees float64

	// AgeMaxYears anchors age normalization; a brand-new aircraft scores
	// full marks, one at AgeMaxYears or older scores zero for this factor
	AgeMaxYears float64
}

// ServiceWeights are the sub-factor weights for the service dimension. Each
// rating is on a 0-5 scale.
type ServiceWeights struct {
	Overall float64
	Food    float64
	Crew    float64
}

// ValueWeights are the sub-factor weights for the value dimension.
type ValueWeights struct {
	// PriceVsRoute is the weight of the fare relative to the route average
	PriceVsRoute float64

	// ServiceLevel is the weight of the service level factor
	ServiceLevel float64
}

// RankWeights order full search-result lists by blended value. They are
// distinct from persona weights, which combine quality dimensions for the
// comparison view.
type RankWeights struct {
	Price    float64
	Duration float64
	Stops    float64
}

// Config holds every scoring policy constant. Inject it into the Normalizer;
// never reach for module-level mutable state.
type Config struct {
	PriceFloor          float64
	PriceSpan           float64
	DurationStepMinutes float64
	DurationFloor       float64

	ModelIncidentPenalty   float64
	AirlineIncidentPenalty float64
	TypeIncidentPenalty    float64

	AmenityPoints      float64
	ReliabilityUnknown float64

	Comfort ComfortWeights
	Service ServiceWeights
	Value   ValueWeights
	Rank    RankWeights
}

// DefaultConfig returns the production scoring policy.
func DefaultConfig() Config {
	return Config{
		PriceFloor:          defaultPriceFloor,
		PriceSpan:           defaultPriceSpan,
		DurationStepMinutes: defaultDurationStepMinutes,
		DurationFloor:       defaultDurationFloor,

		ModelIncidentPenalty:   defaultModelIncidentPenalty,
		AirlineIncidentPenalty: defaultAirlineIncidentPenalty,
		TypeIncidentPenalty:    defaultTypeIncidentPenalty,

		AmenityPoints:      defaultAmenityPoints,
		ReliabilityUnknown: defaultReliabilityUnknown,

		Comfort: ComfortWeights{
			SeatPitch:         0.4,
			SeatWidth:         0.2,
			Recline:           0.2,
			AircraftAge:       0.2,
			PitchMinInches:    28,
			PitchMaxInches:    34,
			WidthMinInches:    16,
			WidthMaxInches:    19,
			ReclineMaxDegrees: 40,
			AgeMaxYears:       20,
		},
		Service: ServiceWeights{
			Overall: 0.5,
			Food:    0.25,
			Crew:    0.25,
		},
		Value: ValueWeights{
			PriceVsRoute: 0.6,
			ServiceLevel: 0.4,
		},
		Rank: RankWeights{
			Price:    0.5,
			Duration: 0.3,
			Stops:    0.2,
		},
	}
}

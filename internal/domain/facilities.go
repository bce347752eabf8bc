package domain

// Facilities contains onboard facility information for a flight.
//
// Boolean fields use pointers so that "unknown" (nil) stays distinguishable
// from "known false" through the whole pipeline. An unknown facility
// contributes zero to the amenities score and is rendered as "no data" by the
// UI, never as "not available".
type Facilities struct {
	// HasWifi reports whether onboard wifi is available (nil = unknown)
	HasWifi *bool `json:"hasWifi,omitempty"`

	// HasPower reports whether in-seat power is available (nil = unknown)
	HasPower *bool `json:"hasPower,omitempty"`

	// HasIFE reports whether in-flight entertainment is available (nil = unknown)
	HasIFE *bool `json:"hasIFE,omitempty"`

	// IFEType describes the entertainment system (e.g., "seatback screen")
	IFEType string `json:"ifeType,omitempty"`

	// MealType describes the meal service (e.g., "hot meal")
	MealType string `json:"mealType,omitempty"`

	// MealIncluded reports whether a meal is included in the fare (nil = unknown)
	MealIncluded *bool `json:"mealIncluded,omitempty"`

	// SeatPitchInches is the seat pitch in inches, when known
	SeatPitchInches *float64 `json:"seatPitchInches,omitempty"`
}

// KnownTrue reports whether an optional boolean is present and true.
func KnownTrue(b *bool) bool {
	return b != nil && *b
}

// Known reports whether an optional boolean carries any data at all.
func Known(b *bool) bool {
	return b != nil
}

// SafetyRecord holds incident counts for an airline, broken down by how
// specifically the incident matches the flight being scored.
type SafetyRecord struct {
	// ModelIncidents counts incidents involving the exact aircraft model
	ModelIncidents int `json:"modelIncidents"`

	// AirlineIncidents counts incidents at the airline level
	AirlineIncidents int `json:"airlineIncidents"`

	// TypeIncidents counts incidents involving the broader aircraft type
	TypeIncidents int `json:"typeIncidents"`
}

// ServiceRatings holds passenger review ratings on a 0-5 scale. Each field is
// optional; missing ratings contribute zero to the service score rather than
// failing the computation.
type ServiceRatings struct {
	// Overall is the overall passenger rating
	Overall *float64 `json:"overall,omitempty"`

	// Food is the food and beverage rating
	Food *float64 `json:"food,omitempty"`

	// Crew is the cabin crew rating
	Crew *float64 `json:"crew,omitempty"`
}

// AirlineStats bundles the optional reliability/safety datasets for an
// airline. A nil field means the dataset is unavailable, which is not an
// error: absent safety data scores a perfect 10 by policy.
type AirlineStats struct {
	// Airline is the IATA airline code these stats belong to
	Airline string `json:"airline"`

	// Safety is the incident history, when available
	Safety *SafetyRecord `json:"safety,omitempty"`

	// OnTimeRate is the on-time performance rate in [0,1], when available
	OnTimeRate *float64 `json:"onTimeRate,omitempty"`

	// Ratings are passenger review ratings, when available
	Ratings *ServiceRatings `json:"ratings,omitempty"`

	// FleetAgeYears is the average fleet age in years, when available
	FleetAgeYears *float64 `json:"fleetAgeYears,omitempty"`
}

// SeatMap describes the cabin layout for a flight, retrieved from the backend
// seatmap endpoint. It is passed through to the client untouched apart from
// normalization.
type SeatMap struct {
	// FlightID identifies the flight this seatmap belongs to
	FlightID string `json:"flightId"`

	// Aircraft is the aircraft model the layout applies to
	Aircraft string `json:"aircraft"`

	// Layout is the seat layout code (e.g., "3-3")
	Layout string `json:"layout"`

	// Rows is the number of seat rows
	Rows int `json:"rows"`

	// ExitRows lists row numbers with exit-row seating
	ExitRows []int `json:"exitRows,omitempty"`
}

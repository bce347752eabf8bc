package flightapi

// Wire-level DTOs for the flight data backend. The backend's JSON shapes are
// normalized into domain entities before anything else sees them.

// wireFlight is a single flight row as returned by the backend search endpoint.
type wireFlight struct {
	FlightID     string        `json:"flight_id"`
	FlightNumber string        `json:"flight_number"`
	AirlineCode  string        `json:"airline_code"`
	AirlineName  string        `json:"airline_name"`
	Departure    wirePoint     `json:"departure"`
	Arrival      wirePoint     `json:"arrival"`
	DurationMins int           `json:"duration_minutes"`
	Stops        int           `json:"stops"`
	Price        wirePrice     `json:"price"`
	Aircraft     string        `json:"aircraft,omitempty"`
	Facilities   *wireFacility `json:"facilities,omitempty"`
	Segments     []wireSegment `json:"segments,omitempty"`
}

// wirePoint is one end of a flight.
type wirePoint struct {
	City     string `json:"city"`
	CityCode string `json:"city_code"`
	Time     string `json:"time"`
}

// wirePrice is the backend price shape.
type wirePrice struct {
	Amount   float64 `json:"amount"`
	Currency string  `json:"currency"`
}

// wireFacility carries onboard facility flags. The backend omits fields it
// has no data for, so every flag is a pointer.
type wireFacility struct {
	Wifi        *bool    `json:"wifi,omitempty"`
	Power       *bool    `json:"power,omitempty"`
	IFE         *bool    `json:"ife,omitempty"`
	IFEType     string   `json:"ife_type,omitempty"`
	Meal        *bool    `json:"meal,omitempty"`
	MealType    string   `json:"meal_type,omitempty"`
	SeatPitchIn *float64 `json:"seat_pitch_inches,omitempty"`
}

// wireSegment is a leg of a connecting flight.
type wireSegment struct {
	FlightNumber string `json:"flight_number"`
	Origin       string `json:"origin"`
	Destination  string `json:"destination"`
}

// wireSearchResponse is the backend search envelope.
type wireSearchResponse struct {
	Flights []wireFlight `json:"flights"`
}

// wireAirlineStats is the backend airline statistics shape.
type wireAirlineStats struct {
	Airline       string       `json:"airline"`
	Safety        *wireSafety  `json:"safety,omitempty"`
	OnTimeRate    *float64     `json:"on_time_rate,omitempty"`
	Ratings       *wireRatings `json:"ratings,omitempty"`
	FleetAgeYears *float64     `json:"fleet_age_years,omitempty"`
}

// wireSafety carries incident counts used by the safety score.
type wireSafety struct {
	ModelIncidents   int `json:"model_incidents"`
	AirlineIncidents int `json:"airline_incidents"`
	TypeIncidents    int `json:"type_incidents"`
}

// wireRatings carries passenger review averages on a 0-5 scale.
type wireRatings struct {
	Overall *float64 `json:"overall,omitempty"`
	Food    *float64 `json:"food,omitempty"`
	Crew    *float64 `json:"crew,omitempty"`
}

// wireSeatMap is the backend seat map shape.
type wireSeatMap struct {
	FlightID string `json:"flight_id"`
	Aircraft string `json:"aircraft"`
	Layout   string `json:"layout"`
	Rows     int    `json:"rows"`
	ExitRows []int  `json:"exit_rows,omitempty"`
}

// wireAirport is the backend nearest-airport shape.
type wireAirport struct {
	Code string `json:"code"`
	City string `json:"city"`
}

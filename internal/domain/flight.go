// Package domain contains the core business entities and rules for the AirEase
// flight comparison service. These entities are backend-agnostic and form the
// foundation upon which the scoring, comparison, and export layers are built.
package domain

import (
	"fmt"
	"time"
)

// Flight represents a single flight result fetched from the backend flight API.
// It is treated as read-only once fetched; scores are derived from it but never
// written back onto it.
type Flight struct {
	// ID is a unique identifier for this flight result
	ID string `json:"id"`

	// FlightNumber is the airline's flight number (e.g., "CA1831")
	FlightNumber string `json:"flightNumber"`

	// Airline contains information about the operating airline
	Airline AirlineInfo `json:"airline"`

	// Departure contains departure city and time information
	Departure FlightPoint `json:"departure"`

	// Arrival contains arrival city and time information
	Arrival FlightPoint `json:"arrival"`

	// Duration contains the total flight duration
	Duration DurationInfo `json:"duration"`

	// Stops is the number of stops (0 = direct flight)
	Stops int `json:"stops"`

	// Price contains pricing information
	Price PriceInfo `json:"price"`

	// Aircraft is the aircraft model (e.g., "Boeing 737-800"), when known
	Aircraft string `json:"aircraft,omitempty"`

	// Facilities contains onboard facility information when the backend
	// provides it. Nil means no facility data at all.
	Facilities *Facilities `json:"facilities,omitempty"`
}

// AirlineInfo contains information about an airline.
type AirlineInfo struct {
	// Code is the IATA airline code (e.g., "CA")
	Code string `json:"code"`

	// Name is the full airline name (e.g., "Air China")
	Name string `json:"name"`
}

// FlightPoint represents one end of a flight journey (departure or arrival).
type FlightPoint struct {
	// City is the city name (e.g., "Shanghai")
	City string `json:"city"`

	// CityCode is the IATA city/airport code (e.g., "PVG")
	CityCode string `json:"cityCode"`

	// DateTime is the scheduled departure or arrival instant
	DateTime time.Time `json:"dateTime"`
}

// DurationInfo contains flight duration information.
type DurationInfo struct {
	// TotalMinutes is the total flight duration in minutes
	TotalMinutes int `json:"totalMinutes"`

	// Formatted is a human-readable duration string (e.g., "2h 30m")
	Formatted string `json:"formatted"`
}

// PriceInfo contains pricing information for a flight.
type PriceInfo struct {
	// Amount is the numeric price value
	Amount float64 `json:"amount"`

	// Currency is the ISO 4217 currency code (e.g., "CNY", "USD")
	Currency string `json:"currency"`
}

// Route returns a human-readable route string (e.g., "PVG-PEK").
func (f *Flight) Route() string {
	return f.Departure.CityCode + "-" + f.Arrival.CityCode
}

// NewDurationInfo creates a DurationInfo from total minutes and formats it.
func NewDurationInfo(totalMinutes int) DurationInfo {
	hours := totalMinutes / 60
	mins := totalMinutes % 60

	var formatted string
	switch {
	case hours > 0 && mins > 0:
		formatted = fmt.Sprintf("%dh %dm", hours, mins)
	case hours > 0:
		formatted = fmt.Sprintf("%dh", hours)
	default:
		formatted = fmt.Sprintf("%dm", mins)
	}

	return DurationInfo{
		TotalMinutes: totalMinutes,
		Formatted:    formatted,
	}
}

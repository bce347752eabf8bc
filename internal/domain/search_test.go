package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSearchLegValidate(t *testing.T) {
	tests := []struct {
		name    string
		leg     SearchLeg
		wantErr string
	}{
		{
			name: "valid leg",
			leg:  SearchLeg{Origin: "PVG", Destination: "PEK", DepartureDate: "2026-09-15"},
		},
		{
			name:    "missing origin",
			leg:     SearchLeg{Destination: "PEK", DepartureDate: "2026-09-15"},
			wantErr: "origin is required",
		},
		{
			name:    "lowercase origin code",
			leg:     SearchLeg{Origin: "pvg", Destination: "PEK", DepartureDate: "2026-09-15"},
			wantErr: "origin must be a valid 3-letter IATA code",
		},
		{
			name:    "missing destination",
			leg:     SearchLeg{Origin: "PVG", DepartureDate: "2026-09-15"},
			wantErr: "destination is required",
		},
		{
			name:    "same origin and destination",
			leg:     SearchLeg{Origin: "PVG", Destination: "PVG", DepartureDate: "2026-09-15"},
			wantErr: "origin and destination must be different",
		},
		{
			name:    "missing date",
			leg:     SearchLeg{Origin: "PVG", Destination: "PEK"},
			wantErr: "departureDate is required",
		},
		{
			name:    "wrong date format",
			leg:     SearchLeg{Origin: "PVG", Destination: "PEK", DepartureDate: "15-09-2026"},
			wantErr: "departureDate must be in YYYY-MM-DD format",
		},
		{
			name:    "impossible date",
			leg:     SearchLeg{Origin: "PVG", Destination: "PEK", DepartureDate: "2026-02-30"},
			wantErr: "departureDate is not a valid date",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.leg.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			assert.True(t, IsInvalidRequest(err))
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestSearchCriteriaValidate(t *testing.T) {
	validLeg := SearchLeg{Origin: "PVG", Destination: "PEK", DepartureDate: "2026-09-15"}

	tests := []struct {
		name     string
		criteria SearchCriteria
		wantErr  string
	}{
		{
			name:     "valid one-way",
			criteria: SearchCriteria{Legs: []SearchLeg{validLeg}, Passengers: 1},
		},
		{
			name: "valid multi-city",
			criteria: SearchCriteria{
				Legs: []SearchLeg{
					validLeg,
					{Origin: "PEK", Destination: "CAN", DepartureDate: "2026-09-18"},
					{Origin: "CAN", Destination: "PVG", DepartureDate: "2026-09-20"},
				},
				Passengers: 2,
				CabinClass: "business",
			},
		},
		{
			name:     "no legs",
			criteria: SearchCriteria{Passengers: 1},
			wantErr:  "at least one leg is required",
		},
		{
			name: "too many legs",
			criteria: SearchCriteria{
				Legs:       []SearchLeg{validLeg, validLeg, validLeg, validLeg},
				Passengers: 1,
			},
			wantErr: "at most 3 legs are supported",
		},
		{
			name: "invalid leg reported with index",
			criteria: SearchCriteria{
				Legs:       []SearchLeg{validLeg, {Origin: "PEK", Destination: "PEK", DepartureDate: "2026-09-18"}},
				Passengers: 1,
			},
			wantErr: "leg 2:",
		},
		{
			name:     "zero passengers",
			criteria: SearchCriteria{Legs: []SearchLeg{validLeg}, Passengers: 0},
			wantErr:  "passengers must be at least 1",
		},
		{
			name:     "too many passengers",
			criteria: SearchCriteria{Legs: []SearchLeg{validLeg}, Passengers: 10},
			wantErr:  "passengers cannot exceed 9",
		},
		{
			name:     "unknown cabin class",
			criteria: SearchCriteria{Legs: []SearchLeg{validLeg}, Passengers: 1, CabinClass: "premium"},
			wantErr:  "cabinClass must be one of",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.criteria.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			assert.True(t, IsInvalidRequest(err))
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestSearchCriteriaSetDefaults(t *testing.T) {
	c := SearchCriteria{Legs: []SearchLeg{{Origin: "PVG", Destination: "PEK", DepartureDate: "2026-09-15"}}}
	c.SetDefaults()

	assert.Equal(t, 1, c.Passengers)
	assert.Equal(t, "economy", c.CabinClass)

	// Explicit values survive.
	c2 := SearchCriteria{Passengers: 3, CabinClass: "first"}
	c2.SetDefaults()
	assert.Equal(t, 3, c2.Passengers)
	assert.Equal(t, "first", c2.CabinClass)
}

func TestSearchParamsCriteria(t *testing.T) {
	p := SearchParams{
		Origin:        "SHA",
		Destination:   "PEK",
		DepartureDate: "2026-10-01",
		Passengers:    2,
		CabinClass:    "business",
	}

	c := p.Criteria()

	assert.Len(t, c.Legs, 1)
	assert.Equal(t, "SHA", c.Legs[0].Origin)
	assert.Equal(t, "PEK", c.Legs[0].Destination)
	assert.Equal(t, "2026-10-01", c.Legs[0].DepartureDate)
	assert.Equal(t, 2, c.Passengers)
	assert.Equal(t, "business", c.CabinClass)
	assert.NoError(t, c.Validate())

	// Defaults fill in when the parser left them empty.
	minimal := SearchParams{Origin: "SHA", Destination: "PEK", DepartureDate: "2026-10-01"}
	mc := minimal.Criteria()
	assert.Equal(t, 1, mc.Passengers)
	assert.Equal(t, "economy", mc.CabinClass)
}

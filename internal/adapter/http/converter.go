// Package http provides the HTTP handler layer for the flight search API.
package http

import (
	"strings"

	"github.com/stevenyi0526-glitch/AirEaseWeb-sub002/internal/domain"
	"github.com/stevenyi0526-glitch/AirEaseWeb-sub002/internal/usecase"
)

// ToDomainCriteria converts a SearchFlightsRequest to domain.SearchCriteria.
// It assumes the request has already been validated and normalized.
func ToDomainCriteria(req *SearchFlightsRequest) domain.SearchCriteria {
	legs := make([]domain.SearchLeg, len(req.Legs))
	for i, leg := range req.Legs {
		legs[i] = domain.SearchLeg{
			Origin:        leg.Origin,
			Destination:   leg.Destination,
			DepartureDate: leg.DepartureDate,
		}
	}

	return domain.SearchCriteria{
		Legs:       legs,
		Passengers: req.Passengers,
		CabinClass: strings.ToLower(req.CabinClass),
	}
}

// ToSearchOptions converts the request's filter and sort fields to
// usecase.SearchOptions.
func ToSearchOptions(req *SearchFlightsRequest) usecase.SearchOptions {
	return usecase.SearchOptions{
		Filters: ToDomainFilters(req.Filters),
		SortBy:  domain.ParseSortOption(req.SortBy),
	}
}

// ToDomainFilters converts a FilterDTO to domain.FilterOptions.
func ToDomainFilters(dto *FilterDTO) *domain.FilterOptions {
	if dto == nil {
		return nil
	}

	return &domain.FilterOptions{
		MaxPrice:  dto.MaxPrice,
		MaxStops:  dto.MaxStops,
		Airlines:  dto.Airlines,
		Departure: domain.TimeOfDayByLabel(dto.TimeOfDay),
	}
}

// ToDomainGeoPoint converts an optional GeoPointDTO to a domain.GeoPoint.
func ToDomainGeoPoint(dto *GeoPointDTO) *domain.GeoPoint {
	if dto == nil {
		return nil
	}
	return &domain.GeoPoint{Lat: dto.Lat, Lon: dto.Lon}
}

// Package usecase contains the business logic for flight search, scoring,
// and comparison. It orchestrates the backend client, cache, and scoring
// engine behind transport-agnostic interfaces.
package usecase

import "github.com/stevenyi0526-glitch/AirEaseWeb-sub002/internal/domain"

// SearchOptions contains optional parameters for a flight search.
type SearchOptions struct {
	// Filters contains optional filtering criteria to apply to results
	Filters *domain.FilterOptions

	// SortBy specifies how to sort the results (default: best value)
	SortBy domain.SortOption
}

// DefaultSearchOptions returns SearchOptions with sensible defaults.
func DefaultSearchOptions() SearchOptions {
	return SearchOptions{
		Filters: nil,
		SortBy:  domain.SortByBestValue,
	}
}

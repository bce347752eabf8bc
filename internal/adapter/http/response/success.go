// Package response provides standardized HTTP response builders for the flight search API.
package response

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/stevenyi0526-glitch/AirEaseWeb-sub002/internal/domain"
)

// HealthResponse represents the health check response.
type HealthResponse struct {
	Status string `json:"status"`
}

// Health writes a health check response.
func Health(c echo.Context) error {
	return c.JSON(http.StatusOK, &HealthResponse{
		Status: "ok",
	})
}

// SearchResults writes a 200 OK response with search results.
func SearchResults(c echo.Context, results interface{}) error {
	return c.JSON(http.StatusOK, results)
}

// NaturalSearchResult pairs search results with the parameters the
// natural-language parser understood, so the UI can echo its interpretation
// back to the user.
type NaturalSearchResult struct {
	// Interpreted are the structured parameters extracted from the query
	Interpreted domain.SearchParams `json:"interpreted"`

	// Results are the search results for those parameters
	Results *domain.SearchResponse `json:"results"`
}

// NaturalSearchResults writes a 200 OK response with search results and the
// interpreted query parameters.
func NaturalSearchResults(c echo.Context, results *domain.SearchResponse, params domain.SearchParams) error {
	return c.JSON(http.StatusOK, &NaturalSearchResult{
		Interpreted: params,
		Results:     results,
	})
}

// Accepted writes a 202 Accepted response with no body, used by the
// fire-and-forget tracking endpoints.
func Accepted(c echo.Context) error {
	return c.NoContent(http.StatusAccepted)
}

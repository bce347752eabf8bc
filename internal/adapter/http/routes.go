// Package http provides the HTTP handler layer for the flight search API.
package http

import (
	"github.com/labstack/echo/v4"
)

// RegisterRoutes registers all flight search API routes.
// It creates a versioned API group and attaches the handler methods.
func RegisterRoutes(e *echo.Echo, h *Handler) {
	// Health check endpoint (no version prefix)
	e.GET("/health", h.Health)

	// API v1 group
	api := e.Group("/api/v1")

	// Flights group
	flights := api.Group("/flights")
	flights.POST("/search", h.SearchFlights)
	flights.POST("/search/natural", h.SearchNatural)
	flights.POST("/compare", h.CompareFlights)
	flights.POST("/compare/export", h.ExportComparison)
	flights.GET("/:id/seatmap", h.GetSeatMap)

	// Preference tracking group
	track := api.Group("/track")
	track.POST("/sort", h.TrackSort)
	track.POST("/time-filter", h.TrackTimeFilter)
	track.POST("/selection", h.TrackSelection)
}

// RegisterRoutesWithMiddleware registers routes with custom middleware.
// This allows for endpoint-specific middleware configuration.
func RegisterRoutesWithMiddleware(e *echo.Echo, h *Handler, middleware ...echo.MiddlewareFunc) {
	// Health check endpoint (no version prefix, no middleware)
	e.GET("/health", h.Health)

	api := e.Group("/api/v1", middleware...)

	flights := api.Group("/flights")
	flights.POST("/search", h.SearchFlights)
	flights.POST("/search/natural", h.SearchNatural)
	flights.POST("/compare", h.CompareFlights)
	flights.POST("/compare/export", h.ExportComparison)
	flights.GET("/:id/seatmap", h.GetSeatMap)

	track := api.Group("/track")
	track.POST("/sort", h.TrackSort)
	track.POST("/time-filter", h.TrackTimeFilter)
	track.POST("/selection", h.TrackSelection)
}

// Package http provides the HTTP handler layer for the flight search API.
// It handles request parsing, validation, response formatting, and error mapping.
package http

import (
	"context"
	"errors"

	"github.com/labstack/echo/v4"

	"github.com/stevenyi0526-glitch/AirEaseWeb-sub002/internal/adapter/export"
	"github.com/stevenyi0526-glitch/AirEaseWeb-sub002/internal/adapter/http/response"
	"github.com/stevenyi0526-glitch/AirEaseWeb-sub002/internal/domain"
	"github.com/stevenyi0526-glitch/AirEaseWeb-sub002/internal/usecase"
)

// PreferenceTracker records user preference signals. Implementations must
// never block the request path.
type PreferenceTracker interface {
	RecordSortAction(dimension string)
	RecordTimeFilter(rangeLabel string)
	RecordFlightSelection(sel domain.FlightSelection)
}

// Handler handles HTTP requests for flight search, comparison, and tracking.
type Handler struct {
	search  usecase.SearchUseCase
	compare usecase.CompareUseCase
	tracker PreferenceTracker
}

// NewHandler creates a Handler wiring the use cases and the preference
// tracker.
func NewHandler(search usecase.SearchUseCase, compare usecase.CompareUseCase, tracker PreferenceTracker) *Handler {
	return &Handler{
		search:  search,
		compare: compare,
		tracker: tracker,
	}
}

// SearchFlights handles POST /api/v1/flights/search
//
// @Summary Search for flights
// @Description Search one-way or multi-city flights, with optional filters and sorting
// @Tags flights
// @Accept json
// @Produce json
// @Param request body SearchFlightsRequest true "Search criteria"
// @Success 200 {object} domain.SearchResponse
// @Failure 400 {object} response.ErrorDetail "Validation error"
// @Failure 503 {object} response.ErrorDetail "Backend unavailable"
// @Failure 504 {object} response.ErrorDetail "Gateway timeout"
// @Router /api/v1/flights/search [post]
func (h *Handler) SearchFlights(c echo.Context) error {
	var req SearchFlightsRequest
	if err := c.Bind(&req); err != nil {
		return response.InvalidRequestBody(c)
	}
	if err := req.Validate(); err != nil {
		return h.handleValidationError(c, err)
	}

	result, err := h.search.Search(c.Request().Context(), ToDomainCriteria(&req), ToSearchOptions(&req))
	if err != nil {
		return h.handleError(c, err)
	}
	return response.SearchResults(c, result)
}

// SearchNatural handles POST /api/v1/flights/search/natural
//
// @Summary Search flights from a natural-language query
// @Description Parse a free-form query into search parameters and run the search
// @Tags flights
// @Accept json
// @Produce json
// @Param request body NaturalSearchRequest true "Natural-language query"
// @Success 200 {object} response.NaturalSearchResult
// @Failure 400 {object} response.ErrorDetail "Validation error"
// @Failure 422 {object} response.ErrorDetail "Query could not be understood"
// @Router /api/v1/flights/search/natural [post]
func (h *Handler) SearchNatural(c echo.Context) error {
	var req NaturalSearchRequest
	if err := c.Bind(&req); err != nil {
		return response.InvalidRequestBody(c)
	}
	if err := req.Validate(); err != nil {
		return h.handleValidationError(c, err)
	}

	result, params, err := h.search.SearchNatural(c.Request().Context(), req.Query, ToDomainGeoPoint(req.Location))
	if err != nil {
		return h.handleError(c, err)
	}
	return response.NaturalSearchResults(c, result, params)
}

// CompareFlights handles POST /api/v1/flights/compare
//
// @Summary Compare flights side by side
// @Description Score 2-3 flights across quality dimensions under a persona weight profile
// @Tags comparison
// @Accept json
// @Produce json
// @Param request body CompareFlightsRequest true "Flights and persona"
// @Success 200 {object} scoring.ComparisonResult
// @Failure 400 {object} response.ErrorDetail "Validation error"
// @Router /api/v1/flights/compare [post]
func (h *Handler) CompareFlights(c echo.Context) error {
	var req CompareFlightsRequest
	if err := c.Bind(&req); err != nil {
		return response.InvalidRequestBody(c)
	}
	if err := req.Validate(); err != nil {
		return h.handleValidationError(c, err)
	}

	result, err := h.compare.Compare(c.Request().Context(), req.Flights, req.Persona)
	if err != nil {
		return h.handleError(c, err)
	}
	return response.OK(c, result)
}

// ExportComparison handles POST /api/v1/flights/compare/export
//
// @Summary Export a comparison as a shareable document
// @Description Run the comparison and lay out its scores as a document model
// @Tags comparison
// @Accept json
// @Produce json
// @Param request body ExportComparisonRequest true "Flights, persona, and chart reference"
// @Success 200 {object} export.Document
// @Failure 400 {object} response.ErrorDetail "Validation error"
// @Router /api/v1/flights/compare/export [post]
func (h *Handler) ExportComparison(c echo.Context) error {
	var req ExportComparisonRequest
	if err := c.Bind(&req); err != nil {
		return response.InvalidRequestBody(c)
	}
	if err := req.Validate(); err != nil {
		return h.handleValidationError(c, err)
	}

	result, err := h.compare.Compare(c.Request().Context(), req.Flights, req.Persona)
	if err != nil {
		return h.handleError(c, err)
	}
	return response.OK(c, export.BuildDocument(result, req.ChartImageRef))
}

// GetSeatMap handles GET /api/v1/flights/:id/seatmap
//
// @Summary Get the seat map for a flight
// @Tags flights
// @Produce json
// @Param id path string true "Flight ID"
// @Success 200 {object} domain.SeatMap
// @Failure 503 {object} response.ErrorDetail "Backend unavailable"
// @Router /api/v1/flights/{id}/seatmap [get]
func (h *Handler) GetSeatMap(c echo.Context) error {
	flightID := c.Param("id")
	if flightID == "" {
		return response.BadRequest(c, "flight id is required")
	}

	seatMap, err := h.search.GetSeatMap(c.Request().Context(), flightID)
	if err != nil {
		return h.handleError(c, err)
	}
	return response.OK(c, seatMap)
}

// TrackSort handles POST /api/v1/track/sort. Tracking endpoints accept the
// event and return 202 immediately; delivery is fire-and-forget.
func (h *Handler) TrackSort(c echo.Context) error {
	var req TrackSortRequest
	if err := c.Bind(&req); err != nil {
		return response.InvalidRequestBody(c)
	}
	if err := req.Validate(); err != nil {
		return h.handleValidationError(c, err)
	}

	h.tracker.RecordSortAction(req.Dimension)
	return response.Accepted(c)
}

// TrackTimeFilter handles POST /api/v1/track/time-filter.
func (h *Handler) TrackTimeFilter(c echo.Context) error {
	var req TrackTimeFilterRequest
	if err := c.Bind(&req); err != nil {
		return response.InvalidRequestBody(c)
	}
	if err := req.Validate(); err != nil {
		return h.handleValidationError(c, err)
	}

	h.tracker.RecordTimeFilter(req.Range)
	return response.Accepted(c)
}

// TrackSelection handles POST /api/v1/track/selection.
func (h *Handler) TrackSelection(c echo.Context) error {
	var req TrackSelectionRequest
	if err := c.Bind(&req); err != nil {
		return response.InvalidRequestBody(c)
	}
	if err := req.Validate(); err != nil {
		return h.handleValidationError(c, err)
	}

	h.tracker.RecordFlightSelection(req.Selection())
	return response.Accepted(c)
}

// Health handles GET /health
// Simple health check endpoint.
func (h *Handler) Health(c echo.Context) error {
	return response.Health(c)
}

// handleValidationError handles validation errors and returns a 400 response.
func (h *Handler) handleValidationError(c echo.Context, err error) error {
	var validationErrs *ValidationErrors
	if errors.As(err, &validationErrs) {
		return response.ValidationError(c, validationErrs.ToMap())
	}
	return response.ValidationErrorWithMessage(c, err.Error())
}

// handleError maps domain errors to appropriate HTTP responses.
func (h *Handler) handleError(c echo.Context, err error) error {
	switch {
	case domain.IsParseFailure(err):
		return response.ParseFailure(c, parseFailureMessage(err))

	case domain.IsInvalidComparisonSet(err):
		return response.ValidationErrorWithMessage(c, err.Error())

	case errors.Is(err, domain.ErrUnknownPersona):
		return response.ValidationErrorWithMessage(c, err.Error())

	case domain.IsInvalidRequest(err):
		return response.ValidationErrorWithMessage(c, err.Error())

	case errors.Is(err, context.DeadlineExceeded):
		return response.GatewayTimeout(c)

	case errors.Is(err, context.Canceled):
		return response.RequestCancelled(c)

	case errors.Is(err, domain.ErrSearchFailed):
		return response.ServiceUnavailable(c)

	case isBackendError(err):
		return response.ServiceUnavailable(c)

	default:
		return response.InternalServerError(c)
	}
}

func isBackendError(err error) bool {
	var be *domain.BackendError
	return errors.As(err, &be)
}

// parseFailureMessage maps a natural-language parse failure to the message
// the search box shows next to the retry affordance.
func parseFailureMessage(err error) string {
	switch {
	case errors.Is(err, domain.ErrMissingDestination):
		return "We couldn't find a destination in your query. Try naming a city or airport."
	case errors.Is(err, domain.ErrLocationUnavailable):
		return "We couldn't tell where you're flying from. Add an origin or enable location sharing."
	default:
		return "We couldn't understand that query. Try rephrasing it."
	}
}

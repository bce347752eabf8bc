package http

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stevenyi0526-glitch/AirEaseWeb-sub002/internal/adapter/http/response"
	"github.com/stevenyi0526-glitch/AirEaseWeb-sub002/internal/domain"
	"github.com/stevenyi0526-glitch/AirEaseWeb-sub002/internal/scoring"
	"github.com/stevenyi0526-glitch/AirEaseWeb-sub002/internal/usecase"
)

// stubSearchUseCase is a configurable stand-in for the search use case.
type stubSearchUseCase struct {
	searchResp  *domain.SearchResponse
	searchErr   error
	gotCriteria domain.SearchCriteria
	gotOpts     usecase.SearchOptions

	naturalResp   *domain.SearchResponse
	naturalParams domain.SearchParams
	naturalErr    error
	gotQuery      string
	gotGeo        *domain.GeoPoint

	seatMap    domain.SeatMap
	seatMapErr error
}

func (s *stubSearchUseCase) Search(_ context.Context, criteria domain.SearchCriteria, opts usecase.SearchOptions) (*domain.SearchResponse, error) {
	s.gotCriteria = criteria
	s.gotOpts = opts
	return s.searchResp, s.searchErr
}

func (s *stubSearchUseCase) SearchNatural(_ context.Context, query string, geo *domain.GeoPoint) (*domain.SearchResponse, domain.SearchParams, error) {
	s.gotQuery = query
	s.gotGeo = geo
	return s.naturalResp, s.naturalParams, s.naturalErr
}

func (s *stubSearchUseCase) GetSeatMap(_ context.Context, _ string) (domain.SeatMap, error) {
	return s.seatMap, s.seatMapErr
}

// stubCompareUseCase is a configurable stand-in for the compare use case.
type stubCompareUseCase struct {
	result     *scoring.ComparisonResult
	err        error
	gotPersona string
	gotCount   int
}

func (s *stubCompareUseCase) Compare(_ context.Context, flights []domain.Flight, persona string) (*scoring.ComparisonResult, error) {
	s.gotCount = len(flights)
	s.gotPersona = persona
	return s.result, s.err
}

// spyTracker records which tracker methods were called.
type spyTracker struct {
	sorts      []string
	filters    []string
	selections []domain.FlightSelection
}

func (s *spyTracker) RecordSortAction(dimension string) { s.sorts = append(s.sorts, dimension) }
func (s *spyTracker) RecordTimeFilter(rangeLabel string) { s.filters = append(s.filters, rangeLabel) }

func (s *spyTracker) RecordFlightSelection(sel domain.FlightSelection) {
	s.selections = append(s.selections, sel)
}

func sampleCompareFlight(id string) domain.Flight {
	dep := time.Date(2026, 9, 15, 8, 0, 0, 0, time.UTC)
	return domain.Flight{
		ID:           id,
		FlightNumber: "MU5101",
		Airline:      domain.AirlineInfo{Code: "MU", Name: "China Eastern"},
		Departure:    domain.FlightPoint{City: "Shanghai", CityCode: "PVG", DateTime: dep},
		Arrival:      domain.FlightPoint{City: "Beijing", CityCode: "PEK", DateTime: dep.Add(140 * time.Minute)},
		Duration:     domain.NewDurationInfo(140),
		Price:        domain.PriceInfo{Amount: 850, Currency: "CNY"},
	}
}

func sampleSearchResponse() *domain.SearchResponse {
	return &domain.SearchResponse{
		Metadata: domain.SearchMetadata{TotalResults: 1, Legs: 1},
		Flights:  []domain.Flight{sampleCompareFlight("f-1")},
	}
}

func sampleComparisonResult(t *testing.T) *scoring.ComparisonResult {
	t.Helper()

	norm := scoring.NewNormalizer(scoring.DefaultConfig())
	agg := scoring.NewAggregator(norm)

	scored := make([]scoring.ScoredFlight, 0, 2)
	for i, id := range []string{"f-1", "f-2"} {
		f := sampleCompareFlight(id)
		f.Price.Amount += float64(i) * 200

		dims, prov, err := norm.ScoreFlight(f, nil, nil, domain.Weights{
			Safety: 0.2, Reliability: 0.2, Comfort: 0.2, Service: 0.2, Value: 0.2,
		})
		require.NoError(t, err)
		scored = append(scored, scoring.ScoredFlight{Flight: f, Dimensions: dims, Provenance: prov})
	}

	result, err := agg.Compare(scored)
	require.NoError(t, err)
	return result
}

// doRequest runs a request through a fresh echo instance with all routes
// registered and returns the recorder.
func doRequest(h *Handler, method, target, body string) *httptest.ResponseRecorder {
	e := echo.New()
	RegisterRoutes(e, h)

	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, target, nil)
	} else {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func searchBody() string {
	return `{
		"legs": [{"origin": "PVG", "destination": "PEK", "departureDate": "2026-09-15"}],
		"passengers": 2,
		"cabinClass": "economy",
		"sortBy": "price",
		"filters": {"maxStops": 0, "timeOfDay": "morning"}
	}`
}

func TestSearchFlights_Success(t *testing.T) {
	search := &stubSearchUseCase{searchResp: sampleSearchResponse()}
	h := NewHandler(search, &stubCompareUseCase{}, &spyTracker{})

	rec := doRequest(h, http.MethodPost, "/api/v1/flights/search", searchBody())

	assert.Equal(t, http.StatusOK, rec.Code)

	var resp domain.SearchResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, 1, resp.Metadata.TotalResults)

	// The handler converted the request into domain criteria and options
	require.Len(t, search.gotCriteria.Legs, 1)
	assert.Equal(t, "PVG", search.gotCriteria.Legs[0].Origin)
	assert.Equal(t, 2, search.gotCriteria.Passengers)
	assert.Equal(t, domain.SortByPrice, search.gotOpts.SortBy)
	require.NotNil(t, search.gotOpts.Filters)
	assert.Equal(t, "morning", search.gotOpts.Filters.Departure.Label)
}

func TestSearchFlights_MalformedBody(t *testing.T) {
	h := NewHandler(&stubSearchUseCase{}, &stubCompareUseCase{}, &spyTracker{})

	rec := doRequest(h, http.MethodPost, "/api/v1/flights/search", "{not json")

	assert.Equal(t, http.StatusBadRequest, rec.Code)

	var detail response.ErrorDetail
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &detail))
	assert.Equal(t, response.CodeInvalidRequest, detail.Code)
}

func TestSearchFlights_ValidationError(t *testing.T) {
	h := NewHandler(&stubSearchUseCase{}, &stubCompareUseCase{}, &spyTracker{})

	body := `{"legs": [{"origin": "PVG", "destination": "PVG", "departureDate": "2026-09-15"}], "passengers": 0}`
	rec := doRequest(h, http.MethodPost, "/api/v1/flights/search", body)

	assert.Equal(t, http.StatusBadRequest, rec.Code)

	var detail response.ErrorDetail
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &detail))
	assert.Equal(t, response.CodeValidationError, detail.Code)
	assert.Contains(t, detail.Details, "legs[0].destination")
	assert.Contains(t, detail.Details, "passengers")
}

func TestSearchFlights_BackendUnavailable(t *testing.T) {
	search := &stubSearchUseCase{searchErr: domain.ErrSearchFailed}
	h := NewHandler(search, &stubCompareUseCase{}, &spyTracker{})

	rec := doRequest(h, http.MethodPost, "/api/v1/flights/search", searchBody())

	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)

	var detail response.ErrorDetail
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &detail))
	assert.Equal(t, response.CodeServiceUnavailable, detail.Code)
}

func TestSearchFlights_Timeout(t *testing.T) {
	search := &stubSearchUseCase{searchErr: context.DeadlineExceeded}
	h := NewHandler(search, &stubCompareUseCase{}, &spyTracker{})

	rec := doRequest(h, http.MethodPost, "/api/v1/flights/search", searchBody())

	assert.Equal(t, http.StatusGatewayTimeout, rec.Code)
}

func TestSearchNatural_Success(t *testing.T) {
	search := &stubSearchUseCase{
		naturalResp: sampleSearchResponse(),
		naturalParams: domain.SearchParams{
			Origin:      "PVG",
			Destination: "PEK",
		},
	}
	h := NewHandler(search, &stubCompareUseCase{}, &spyTracker{})

	body := `{"query": "cheap flight to Beijing", "location": {"lat": 31.22, "lon": 121.48}}`
	rec := doRequest(h, http.MethodPost, "/api/v1/flights/search/natural", body)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "cheap flight to Beijing", search.gotQuery)
	require.NotNil(t, search.gotGeo)
	assert.InDelta(t, 31.22, search.gotGeo.Lat, 1e-9)

	var result response.NaturalSearchResult
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &result))
	assert.Equal(t, "PEK", result.Interpreted.Destination)
	require.NotNil(t, result.Results)
	assert.Equal(t, 1, result.Results.Metadata.TotalResults)
}

func TestSearchNatural_EmptyQuery(t *testing.T) {
	h := NewHandler(&stubSearchUseCase{}, &stubCompareUseCase{}, &spyTracker{})

	rec := doRequest(h, http.MethodPost, "/api/v1/flights/search/natural", `{"query": ""}`)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestSearchNatural_ParseFailures(t *testing.T) {
	tests := []struct {
		name        string
		err         error
		wantMessage string
	}{
		{
			name:        "missing destination",
			err:         domain.ErrMissingDestination,
			wantMessage: "destination",
		},
		{
			name:        "location unavailable",
			err:         domain.ErrLocationUnavailable,
			wantMessage: "origin",
		},
		{
			name:        "unparseable response",
			err:         domain.ErrUnparseableResponse,
			wantMessage: "rephrasing",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			search := &stubSearchUseCase{naturalErr: tt.err}
			h := NewHandler(search, &stubCompareUseCase{}, &spyTracker{})

			rec := doRequest(h, http.MethodPost, "/api/v1/flights/search/natural", `{"query": "somewhere warm"}`)

			assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)

			var detail response.ErrorDetail
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &detail))
			assert.Equal(t, response.CodeQueryNotUnderstood, detail.Code)
			assert.Contains(t, detail.Message, tt.wantMessage)
		})
	}
}

func TestCompareFlights_Success(t *testing.T) {
	compare := &stubCompareUseCase{result: sampleComparisonResult(t)}
	h := NewHandler(&stubSearchUseCase{}, compare, &spyTracker{})

	body, err := json.Marshal(CompareFlightsRequest{
		Flights: []domain.Flight{sampleCompareFlight("f-1"), sampleCompareFlight("f-2")},
		Persona: "business",
	})
	require.NoError(t, err)

	rec := doRequest(h, http.MethodPost, "/api/v1/flights/compare", string(body))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 2, compare.gotCount)
	assert.Equal(t, "business", compare.gotPersona)

	var result scoring.ComparisonResult
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &result))
	assert.Len(t, result.Flights, 2)
}

func TestCompareFlights_SingletonRejected(t *testing.T) {
	h := NewHandler(&stubSearchUseCase{}, &stubCompareUseCase{}, &spyTracker{})

	body, err := json.Marshal(CompareFlightsRequest{
		Flights: []domain.Flight{sampleCompareFlight("f-1")},
	})
	require.NoError(t, err)

	rec := doRequest(h, http.MethodPost, "/api/v1/flights/compare", string(body))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestCompareFlights_UnknownPersona(t *testing.T) {
	compare := &stubCompareUseCase{err: domain.ErrUnknownPersona}
	h := NewHandler(&stubSearchUseCase{}, compare, &spyTracker{})

	body, err := json.Marshal(CompareFlightsRequest{
		Flights: []domain.Flight{sampleCompareFlight("f-1"), sampleCompareFlight("f-2")},
		Persona: "astronaut",
	})
	require.NoError(t, err)

	rec := doRequest(h, http.MethodPost, "/api/v1/flights/compare", string(body))

	assert.Equal(t, http.StatusBadRequest, rec.Code)

	var detail response.ErrorDetail
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &detail))
	assert.Equal(t, response.CodeValidationError, detail.Code)
}

func TestExportComparison_Success(t *testing.T) {
	compare := &stubCompareUseCase{result: sampleComparisonResult(t)}
	h := NewHandler(&stubSearchUseCase{}, compare, &spyTracker{})

	body, err := json.Marshal(ExportComparisonRequest{
		CompareFlightsRequest: CompareFlightsRequest{
			Flights: []domain.Flight{sampleCompareFlight("f-1"), sampleCompareFlight("f-2")},
		},
		ChartImageRef: "charts/radar-123.png",
	})
	require.NoError(t, err)

	rec := doRequest(h, http.MethodPost, "/api/v1/flights/compare/export", string(body))

	assert.Equal(t, http.StatusOK, rec.Code)

	var doc struct {
		Cards         []json.RawMessage `json:"cards"`
		ChartImageRef string            `json:"chartImageRef"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &doc))
	assert.Len(t, doc.Cards, 2)
	assert.Equal(t, "charts/radar-123.png", doc.ChartImageRef)
}

func TestGetSeatMap_Success(t *testing.T) {
	search := &stubSearchUseCase{
		seatMap: domain.SeatMap{FlightID: "f-1", Aircraft: "Airbus A330-300", Layout: "2-4-2", Rows: 42},
	}
	h := NewHandler(search, &stubCompareUseCase{}, &spyTracker{})

	rec := doRequest(h, http.MethodGet, "/api/v1/flights/f-1/seatmap", "")

	assert.Equal(t, http.StatusOK, rec.Code)

	var sm domain.SeatMap
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &sm))
	assert.Equal(t, "2-4-2", sm.Layout)
}

func TestGetSeatMap_BackendError(t *testing.T) {
	search := &stubSearchUseCase{
		seatMapErr: domain.NewBackendError("seatmap", errors.New("boom")),
	}
	h := NewHandler(search, &stubCompareUseCase{}, &spyTracker{})

	rec := doRequest(h, http.MethodGet, "/api/v1/flights/f-1/seatmap", "")

	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}

func TestTrackEndpoints(t *testing.T) {
	tracker := &spyTracker{}
	h := NewHandler(&stubSearchUseCase{}, &stubCompareUseCase{}, tracker)

	rec := doRequest(h, http.MethodPost, "/api/v1/track/sort", `{"dimension": "price"}`)
	assert.Equal(t, http.StatusAccepted, rec.Code)

	rec = doRequest(h, http.MethodPost, "/api/v1/track/time-filter", `{"range": "morning"}`)
	assert.Equal(t, http.StatusAccepted, rec.Code)

	rec = doRequest(h, http.MethodPost, "/api/v1/track/selection",
		`{"flightId": "f-1", "airline": "Air China", "route": "PVG-PEK", "price": 850, "currency": "CNY", "overallScore": 8.4}`)
	assert.Equal(t, http.StatusAccepted, rec.Code)

	assert.Equal(t, []string{"price"}, tracker.sorts)
	assert.Equal(t, []string{"morning"}, tracker.filters)
	require.Len(t, tracker.selections, 1)
	assert.Equal(t, domain.FlightSelection{
		FlightID:     "f-1",
		Airline:      "Air China",
		Route:        "PVG-PEK",
		Price:        850,
		Currency:     "CNY",
		OverallScore: 8.4,
	}, tracker.selections[0])
}

func TestTrackSort_MissingDimension(t *testing.T) {
	tracker := &spyTracker{}
	h := NewHandler(&stubSearchUseCase{}, &stubCompareUseCase{}, tracker)

	rec := doRequest(h, http.MethodPost, "/api/v1/track/sort", `{}`)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Empty(t, tracker.sorts)
}

func TestHealth(t *testing.T) {
	h := NewHandler(&stubSearchUseCase{}, &stubCompareUseCase{}, &spyTracker{})

	rec := doRequest(h, http.MethodGet, "/health", "")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"status":"ok"`)
}

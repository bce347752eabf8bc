package aiparse

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	promtestutil "github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stevenyi0526-glitch/AirEaseWeb-sub002/internal/adapter/observability"
	"github.com/stevenyi0526-glitch/AirEaseWeb-sub002/internal/domain"
	"github.com/stevenyi0526-glitch/AirEaseWeb-sub002/internal/infrastructure/retry"
)

// stubResolver returns a fixed airport or error.
type stubResolver struct {
	airport domain.Airport
	err     error
	calls   int
}

func (s *stubResolver) NearestAirport(_ context.Context, _ domain.GeoPoint) (domain.Airport, error) {
	s.calls++
	return s.airport, s.err
}

// completionResponse builds a chat completion payload with the given content.
func completionResponse(content, finishReason string) string {
	payload := map[string]any{
		"id":     "chatcmpl-test",
		"object": "chat.completion",
		"model":  "gpt-4o-mini",
		"choices": []map[string]any{
			{
				"index":         0,
				"message":       map[string]any{"role": "assistant", "content": content},
				"finish_reason": finishReason,
			},
		},
	}
	b, _ := json.Marshal(payload)
	return string(b)
}

func newTestParser(t *testing.T, handler http.Handler, resolver OriginResolver) *Parser {
	t.Helper()
	// The completion client refuses bodies without a JSON content type, so
	// stamp it before each stub handler writes.
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		handler.ServeHTTP(w, r)
	}))
	t.Cleanup(srv.Close)

	p := NewParser(Config{
		APIKey:        "test-key",
		BaseURL:       srv.URL,
		Model:         "gpt-4o-mini",
		RatePerSecond: 1000,
	}, resolver)
	// fast retries for tests
	p.retryCfg = retry.Config{
		MaxAttempts:  4,
		InitialDelay: time.Millisecond,
		MaxDelay:     5 * time.Millisecond,
		Multiplier:   2.0,
		RetryIf:      isRetryable,
	}
	p.now = func() time.Time { return time.Date(2026, 9, 1, 12, 0, 0, 0, time.UTC) }
	return p
}

func TestParser_Parse(t *testing.T) {
	const content = `{"origin": "pvg", "destination": "pek", "departureDate": "2026-09-15", "timePreference": "Morning", "passengers": 2, "cabinClass": "Business", "sortBy": "price", "maxPrice": 2000, "preferredAirlines": ["MU"]}`

	parser := newTestParser(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, completionResponse(content, "stop"))
	}), nil)

	params, err := parser.Parse(context.Background(), "morning business flight Shanghai to Beijing under 2000 on China Eastern", nil)
	require.NoError(t, err)

	assert.Equal(t, "PVG", params.Origin)
	assert.Equal(t, "PEK", params.Destination)
	assert.Equal(t, "2026-09-15", params.DepartureDate)
	assert.Equal(t, "morning", params.TimePreference)
	assert.Equal(t, 2, params.Passengers)
	assert.Equal(t, "business", params.CabinClass)
	assert.Equal(t, domain.SortByPrice, params.SortBy)
	require.NotNil(t, params.MaxPrice)
	assert.Equal(t, 2000.0, *params.MaxPrice)
	assert.Equal(t, []string{"MU"}, params.PreferredAirlines)
}

func TestParser_Parse_RecordsCompletionMetrics(t *testing.T) {
	before := promtestutil.ToFloat64(
		observability.ExternalRequests.WithLabelValues("openai", "chat_completion", "200"))

	parser := newTestParser(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, completionResponse(`{"origin": "PVG", "destination": "PEK"}`, "stop"))
	}), nil)

	_, err := parser.Parse(context.Background(), "shanghai to beijing", nil)
	require.NoError(t, err)

	after := promtestutil.ToFloat64(
		observability.ExternalRequests.WithLabelValues("openai", "chat_completion", "200"))
	assert.Equal(t, before+1, after)
}

func TestParser_Parse_MarkdownFencedJSON(t *testing.T) {
	content := "```json\n{\"origin\": \"PVG\", \"destination\": \"PEK\"}\n```"

	parser := newTestParser(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, completionResponse(content, "stop"))
	}), nil)

	params, err := parser.Parse(context.Background(), "flight to beijing", nil)
	require.NoError(t, err)
	assert.Equal(t, "PEK", params.Destination)
	// Unmentioned fields default: tomorrow, one passenger
	assert.Equal(t, "2026-09-02", params.DepartureDate)
	assert.Equal(t, 1, params.Passengers)
	assert.Equal(t, domain.SortByBestValue, params.SortBy)
}

func TestParser_Parse_MissingDestination(t *testing.T) {
	parser := newTestParser(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, completionResponse(`{"origin": "PVG"}`, "stop"))
	}), nil)

	_, err := parser.Parse(context.Background(), "get me out of here", nil)
	assert.ErrorIs(t, err, domain.ErrMissingDestination)
}

func TestParser_Parse_OriginFromGeolocation(t *testing.T) {
	resolver := &stubResolver{airport: domain.Airport{Code: "SHA", City: "Shanghai"}}
	parser := newTestParser(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, completionResponse(`{"destination": "PEK", "departureDate": "2026-09-15"}`, "stop"))
	}), resolver)

	geo := &domain.GeoPoint{Lat: 31.19, Lon: 121.33}
	params, err := parser.Parse(context.Background(), "flight to beijing", geo)
	require.NoError(t, err)
	assert.Equal(t, "SHA", params.Origin)
	assert.Equal(t, 1, resolver.calls)
}

func TestParser_Parse_NoOriginNoGeolocation(t *testing.T) {
	parser := newTestParser(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, completionResponse(`{"destination": "PEK"}`, "stop"))
	}), &stubResolver{})

	_, err := parser.Parse(context.Background(), "flight to beijing", nil)
	assert.ErrorIs(t, err, domain.ErrLocationUnavailable)
}

func TestParser_Parse_ResolverFailure(t *testing.T) {
	resolver := &stubResolver{err: fmt.Errorf("geo service down")}
	parser := newTestParser(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, completionResponse(`{"destination": "PEK"}`, "stop"))
	}), resolver)

	_, err := parser.Parse(context.Background(), "flight to beijing", &domain.GeoPoint{})
	assert.ErrorIs(t, err, domain.ErrLocationUnavailable)
}

func TestParser_Parse_UnparseableContent(t *testing.T) {
	parser := newTestParser(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, completionResponse("I'd be happy to help you find a flight!", "stop"))
	}), nil)

	_, err := parser.Parse(context.Background(), "flight to beijing", nil)
	assert.ErrorIs(t, err, domain.ErrUnparseableResponse)
}

func TestParser_Parse_RetriesRateLimit(t *testing.T) {
	var calls int32
	parser := newTestParser(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if atomic.AddInt32(&calls, 1) < 3 {
			w.WriteHeader(http.StatusTooManyRequests)
			fmt.Fprint(w, `{"error": {"message": "rate limited", "type": "rate_limit_error"}}`)
			return
		}
		fmt.Fprint(w, completionResponse(`{"origin": "PVG", "destination": "PEK"}`, "stop"))
	}), nil)

	params, err := parser.Parse(context.Background(), "flight to beijing", nil)
	require.NoError(t, err)
	assert.Equal(t, "PEK", params.Destination)
	assert.Equal(t, int32(3), atomic.LoadInt32(&calls))
}

func TestParser_Parse_DoesNotRetryAuthFailure(t *testing.T) {
	var calls int32
	parser := newTestParser(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		w.WriteHeader(http.StatusUnauthorized)
		fmt.Fprint(w, `{"error": {"message": "invalid key", "type": "invalid_request_error"}}`)
	}), nil)

	_, err := parser.Parse(context.Background(), "flight to beijing", nil)
	require.Error(t, err)
	assert.Equal(t, int32(1), atomic.LoadInt32(&calls))
}

func TestParser_Parse_TruncationRetriedWithLargerBudget(t *testing.T) {
	var budgets []int64
	parser := newTestParser(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			MaxTokens int64 `json:"max_tokens"`
		}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		budgets = append(budgets, req.MaxTokens)

		if len(budgets) == 1 {
			fmt.Fprint(w, completionResponse(`{"origin": "PVG", "dest`, "length"))
			return
		}
		fmt.Fprint(w, completionResponse(`{"origin": "PVG", "destination": "PEK"}`, "stop"))
	}), nil)

	params, err := parser.Parse(context.Background(), "flight to beijing", nil)
	require.NoError(t, err)
	assert.Equal(t, "PEK", params.Destination)
	require.Len(t, budgets, 2)
	assert.Equal(t, int64(defaultMaxTokens), budgets[0])
	assert.Equal(t, int64(2*defaultMaxTokens), budgets[1])
}

func TestParser_Parse_EmptyQuery(t *testing.T) {
	parser := newTestParser(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("no API call expected for an empty query")
	}), nil)

	_, err := parser.Parse(context.Background(), "   ", nil)
	assert.True(t, domain.IsInvalidRequest(err))
}

func TestDecodeParams(t *testing.T) {
	tests := []struct {
		name    string
		content string
		wantErr bool
	}{
		{name: "bare json", content: `{"destination": "PEK"}`},
		{name: "fenced json", content: "```json\n{\"destination\": \"PEK\"}\n```"},
		{name: "fenced without language", content: "```\n{\"destination\": \"PEK\"}\n```"},
		{name: "prose", content: "Sure, here are your flights", wantErr: true},
		{name: "empty", content: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			raw, err := decodeParams(tt.content)
			if tt.wantErr {
				assert.ErrorIs(t, err, domain.ErrUnparseableResponse)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, "PEK", raw.Destination)
		})
	}
}

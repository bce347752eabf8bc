// Package flightapi implements the domain.FlightAPI port against the AirEase
// flight data backend over HTTP. Wire shapes are normalized into domain
// entities at this boundary; nothing above it sees backend JSON.
package flightapi

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/stevenyi0526-glitch/AirEaseWeb-sub002/internal/adapter/observability"
	"github.com/stevenyi0526-glitch/AirEaseWeb-sub002/internal/domain"
	"github.com/stevenyi0526-glitch/AirEaseWeb-sub002/internal/infrastructure/retry"
)

// Client talks to the flight data backend.
type Client struct {
	baseURL  string
	hc       *http.Client
	retryCfg retry.Config
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient overrides the underlying HTTP client, mainly for tests.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.hc = hc
	}
}

// WithRetryConfig overrides the retry policy for backend calls.
func WithRetryConfig(cfg retry.Config) Option {
	return func(c *Client) {
		c.retryCfg = cfg
	}
}

// NewClient creates a backend client with the given base URL and per-call timeout.
func NewClient(baseURL string, timeout time.Duration, opts ...Option) *Client {
	c := &Client{
		baseURL:  strings.TrimRight(baseURL, "/"),
		hc:       &http.Client{Timeout: timeout},
		retryCfg: retry.BackendConfig.WithRetryIf(isRetryable),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// isRetryable reports whether a backend call is worth retrying.
func isRetryable(err error) bool {
	var be *domain.BackendError
	if errors.As(err, &be) {
		return be.Retryable
	}
	// Context cancellation is surfaced as-is and never retried
	return !errors.Is(err, context.Canceled) && !errors.Is(err, context.DeadlineExceeded)
}

// SearchFlights queries the backend for flights matching a single leg.
func (c *Client) SearchFlights(ctx context.Context, leg domain.SearchLeg, passengers int, cabinClass string) ([]domain.Flight, error) {
	q := url.Values{}
	q.Set("origin", leg.Origin)
	q.Set("destination", leg.Destination)
	q.Set("date", leg.DepartureDate)
	q.Set("passengers", strconv.Itoa(passengers))
	if cabinClass != "" {
		q.Set("cabin_class", cabinClass)
	}

	endpoint := c.baseURL + "/flights/search?" + q.Encode()

	resp, err := retry.DoWithResult(ctx, func() (wireSearchResponse, error) {
		var out wireSearchResponse
		return out, c.getJSON(ctx, "search", endpoint, &out)
	}, c.retryCfg)
	if err != nil {
		return nil, fmt.Errorf("%w: %s %s: %v", domain.ErrSearchFailed, leg.Origin, leg.Destination, err)
	}

	return normalize(resp.Flights), nil
}

// GetSeatMap fetches the seat map for a flight.
func (c *Client) GetSeatMap(ctx context.Context, flightID string) (domain.SeatMap, error) {
	endpoint := c.baseURL + "/flights/" + url.PathEscape(flightID) + "/seatmap"

	out, err := retry.DoWithResult(ctx, func() (wireSeatMap, error) {
		var w wireSeatMap
		return w, c.getJSON(ctx, "seatmap", endpoint, &w)
	}, c.retryCfg)
	if err != nil {
		return domain.SeatMap{}, err
	}

	return domain.SeatMap{
		FlightID: out.FlightID,
		Aircraft: out.Aircraft,
		Layout:   out.Layout,
		Rows:     out.Rows,
		ExitRows: out.ExitRows,
	}, nil
}

// GetAirlineStats fetches safety, punctuality, and review statistics for an airline.
func (c *Client) GetAirlineStats(ctx context.Context, airlineCode string) (domain.AirlineStats, error) {
	endpoint := c.baseURL + "/airlines/" + url.PathEscape(airlineCode) + "/stats"

	out, err := retry.DoWithResult(ctx, func() (wireAirlineStats, error) {
		var w wireAirlineStats
		return w, c.getJSON(ctx, "airline_stats", endpoint, &w)
	}, c.retryCfg)
	if err != nil {
		return domain.AirlineStats{}, err
	}

	return normalizeStats(out), nil
}

// NearestAirport resolves a geolocation to the closest served airport.
func (c *Client) NearestAirport(ctx context.Context, geo domain.GeoPoint) (domain.Airport, error) {
	q := url.Values{}
	q.Set("lat", strconv.FormatFloat(geo.Lat, 'f', -1, 64))
	q.Set("lon", strconv.FormatFloat(geo.Lon, 'f', -1, 64))
	endpoint := c.baseURL + "/airports/nearest?" + q.Encode()

	out, err := retry.DoWithResult(ctx, func() (wireAirport, error) {
		var w wireAirport
		return w, c.getJSON(ctx, "nearest_airport", endpoint, &w)
	}, c.retryCfg)
	if err != nil {
		return domain.Airport{}, fmt.Errorf("%w: %v", domain.ErrLocationUnavailable, err)
	}
	if out.Code == "" {
		return domain.Airport{}, domain.ErrLocationUnavailable
	}

	return domain.Airport{Code: out.Code, City: out.City}, nil
}

// SaveSearchHistory records a completed search on the backend. Failures are
// returned so the caller can decide whether to log or ignore them.
func (c *Client) SaveSearchHistory(ctx context.Context, entry domain.SearchHistoryEntry) error {
	endpoint := c.baseURL + "/history/searches"
	return c.postJSON(ctx, "save_history", endpoint, entry)
}

// getJSON performs a GET and decodes the JSON response into out. op is the
// low-cardinality operation name used as the metric endpoint label.
func (c *Client) getJSON(ctx context.Context, op, endpoint string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return domain.NewBackendError(endpoint, err)
	}
	req.Header.Set("Accept", "application/json")

	return c.do(req, op, endpoint, out)
}

// postJSON performs a POST with a JSON body and discards the response body.
func (c *Client) postJSON(ctx context.Context, op, endpoint string, body any) error {
	payload, err := json.Marshal(body)
	if err != nil {
		return domain.NewBackendError(endpoint, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(payload))
	if err != nil {
		return domain.NewBackendError(endpoint, err)
	}
	req.Header.Set("Content-Type", "application/json")

	return c.do(req, op, endpoint, nil)
}

// do executes the request and maps HTTP status codes onto backend errors.
// 429 and 5xx responses are marked retryable; everything else is permanent.
func (c *Client) do(req *http.Request, op, endpoint string, out any) error {
	start := time.Now()
	resp, err := c.hc.Do(req)
	if err != nil {
		observability.ObserveExternal("backend", op, 0, time.Since(start))
		if req.Context().Err() != nil {
			return req.Context().Err()
		}
		return domain.NewRetryableBackendError(endpoint, err)
	}
	defer resp.Body.Close()
	observability.ObserveExternal("backend", op, resp.StatusCode, time.Since(start))

	switch {
	case resp.StatusCode >= 200 && resp.StatusCode < 300:
		if out == nil {
			io.Copy(io.Discard, resp.Body)
			return nil
		}
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return domain.NewBackendError(endpoint, fmt.Errorf("decode response: %w", err))
		}
		return nil

	case resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode >= 500:
		io.Copy(io.Discard, resp.Body)
		return domain.NewRetryableBackendError(endpoint, fmt.Errorf("backend returned %d", resp.StatusCode))

	default:
		// read a small error body for diagnostics
		b, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return domain.NewBackendError(endpoint, fmt.Errorf("backend returned %d: %s", resp.StatusCode, strings.TrimSpace(string(b))))
	}
}

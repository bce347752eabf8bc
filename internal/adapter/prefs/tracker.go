// Package prefs records user preference signals (filter clicks, comparison
// views, persona selections) to an analytics sink. Tracking is strictly
// fire-and-forget: a slow or dead sink never blocks or fails a user request.
package prefs

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"github.com/stevenyi0526-glitch/AirEaseWeb-sub002/internal/adapter/observability"
	"github.com/stevenyi0526-glitch/AirEaseWeb-sub002/internal/domain"
	"github.com/stevenyi0526-glitch/AirEaseWeb-sub002/internal/infrastructure/logger"
	"github.com/stevenyi0526-glitch/AirEaseWeb-sub002/internal/infrastructure/timeutil"
)

// Event is a single preference signal.
type Event struct {
	// Type is the signal kind (e.g., "filter_applied", "comparison_viewed")
	Type string `json:"type"`

	// UserID identifies the user session, when known
	UserID string `json:"userId,omitempty"`

	// Payload carries signal-specific fields
	Payload map[string]any `json:"payload,omitempty"`

	// OccurredAt is when the signal fired
	OccurredAt time.Time `json:"occurredAt"`
}

// Tracker buffers events and ships them to the sink from a background worker.
// When the buffer is full, new events are dropped and counted, never queued
// synchronously.
type Tracker struct {
	url    string
	hc     *http.Client
	clock  timeutil.Clock
	events chan Event

	closeOnce sync.Once
	done      chan struct{}
}

// NewTracker starts a tracker with the given sink URL and buffer size.
// An empty URL yields a tracker that counts events as sent without shipping
// them, which keeps call sites unconditional.
func NewTracker(url string, bufferSize int, timeout time.Duration) *Tracker {
	if bufferSize < 1 {
		bufferSize = 1
	}
	t := &Tracker{
		url:    url,
		hc:     &http.Client{Timeout: timeout},
		clock:  timeutil.NewRealClock(),
		events: make(chan Event, bufferSize),
		done:   make(chan struct{}),
	}
	go t.run()
	return t
}

// Track enqueues an event. It never blocks; when the buffer is full the event
// is dropped and the drop is counted.
func (t *Tracker) Track(event Event) {
	if event.OccurredAt.IsZero() {
		event.OccurredAt = t.clock.Now().UTC()
	}

	select {
	case t.events <- event:
	default:
		observability.ObserveTracker("dropped")
		logger.Debug().Str("type", event.Type).Msg("Preference event dropped, buffer full")
	}
}

// RecordSortAction notes that the user sorted results by a dimension.
func (t *Tracker) RecordSortAction(dimension string) {
	t.Track(Event{Type: "sort", Payload: map[string]any{"sort_by": dimension}})
}

// RecordTimeFilter notes that the user filtered by a departure window.
func (t *Tracker) RecordTimeFilter(rangeLabel string) {
	t.Track(Event{Type: "time-filter", Payload: map[string]any{"time_range": rangeLabel}})
}

// RecordFlightSelection notes that the user opened or picked a flight. The
// payload carries the fields the preferences service keys personalization on.
func (t *Tracker) RecordFlightSelection(sel domain.FlightSelection) {
	payload := map[string]any{
		"flight_id":     sel.FlightID,
		"price":         sel.Price,
		"overall_score": sel.OverallScore,
	}
	if sel.Airline != "" {
		payload["airline"] = sel.Airline
	}
	if sel.Route != "" {
		payload["route"] = sel.Route
	}
	if sel.Currency != "" {
		payload["currency"] = sel.Currency
	}
	t.Track(Event{Type: "flight-selection", Payload: payload})
}

// run ships buffered events until Close drains the channel.
func (t *Tracker) run() {
	defer close(t.done)
	for event := range t.events {
		t.send(event)
	}
}

// send posts one event. Failures are logged at debug level and counted;
// they are invisible to users.
func (t *Tracker) send(event Event) {
	if t.url == "" {
		observability.ObserveTracker("sent")
		return
	}

	payload, err := json.Marshal(event)
	if err != nil {
		observability.ObserveTracker("failed")
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), t.hc.Timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, t.url, bytes.NewReader(payload))
	if err != nil {
		observability.ObserveTracker("failed")
		return
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := t.hc.Do(req)
	if err != nil {
		observability.ObserveTracker("failed")
		logger.Debug().Err(err).Str("type", event.Type).Msg("Preference event delivery failed")
		return
	}
	resp.Body.Close()

	if resp.StatusCode >= 300 {
		observability.ObserveTracker("failed")
		logger.Debug().Int("status", resp.StatusCode).Str("type", event.Type).Msg("Preference sink rejected event")
		return
	}
	observability.ObserveTracker("sent")
}

// Close stops accepting events and waits for the buffer to drain.
func (t *Tracker) Close() {
	t.closeOnce.Do(func() {
		close(t.events)
	})
	<-t.done
}

// Package retry runs operations against flaky upstreams with exponential
// backoff and jitter. Each outbound boundary carries its own profile.
package retry

import (
	"context"
	"math/rand"
	"time"
)

// Config describes one backoff profile.
type Config struct {
	// MaxAttempts counts the initial call plus retries.
	MaxAttempts int

	// InitialDelay is the wait before the first retry.
	InitialDelay time.Duration

	// MaxDelay caps the wait between attempts.
	MaxDelay time.Duration

	// Multiplier grows the delay after every failed attempt.
	Multiplier float64

	// JitterFactor adds up to this fraction of random extra delay, spreading
	// out retry storms from concurrent requests.
	JitterFactor float64

	// RetryIf decides whether an error is worth another attempt.
	// Nil retries everything.
	RetryIf func(error) bool
}

// BackendConfig is the profile for the flight data backend.
var BackendConfig = Config{
	MaxAttempts:  3,
	InitialDelay: 200 * time.Millisecond,
	MaxDelay:     5 * time.Second,
	Multiplier:   2.0,
	JitterFactor: 0.2,
}

// AIParseConfig is the profile for the natural-language parse boundary,
// where the model API rate-limits aggressively and transient 5xx responses
// deserve a longer backoff window.
var AIParseConfig = Config{
	MaxAttempts:  4,
	InitialDelay: 500 * time.Millisecond,
	MaxDelay:     8 * time.Second,
	Multiplier:   2.0,
	JitterFactor: 0.2,
}

// WithRetryIf returns a copy of the config with the given predicate.
func (c Config) WithRetryIf(fn func(error) bool) Config {
	c.RetryIf = fn
	return c
}

// DoWithResult calls fn until it succeeds, the attempts run out, the error is
// ruled non-retryable, or the context ends. It returns the last result and
// error observed.
func DoWithResult[T any](ctx context.Context, fn func() (T, error), cfg Config) (T, error) {
	if cfg.MaxAttempts < 1 {
		cfg.MaxAttempts = 1
	}

	var (
		result  T
		lastErr error
	)
	delay := cfg.InitialDelay

	for attempt := 1; ; attempt++ {
		if err := ctx.Err(); err != nil {
			return result, err
		}

		result, lastErr = fn()
		if lastErr == nil {
			return result, nil
		}
		if cfg.RetryIf != nil && !cfg.RetryIf(lastErr) {
			return result, lastErr
		}
		if attempt == cfg.MaxAttempts {
			return result, lastErr
		}

		select {
		case <-ctx.Done():
			return result, ctx.Err()
		case <-time.After(jittered(delay, cfg)):
		}
		delay = time.Duration(float64(delay) * cfg.Multiplier)
	}
}

// jittered pads the delay with random jitter and applies the cap.
func jittered(delay time.Duration, cfg Config) time.Duration {
	d := delay + time.Duration(rand.Float64()*float64(delay)*cfg.JitterFactor)
	if d > cfg.MaxDelay {
		d = cfg.MaxDelay
	}
	return d
}

package domain

import (
	"errors"
	"fmt"
)

// Sentinel errors for the comparison and scoring core.
var (
	// ErrInvalidRequest indicates a request failed validation.
	ErrInvalidRequest = errors.New("invalid request")

	// ErrInvalidComparisonSet indicates a comparison was attempted with fewer
	// than 2 or more than 3 flights. Comparison is undefined outside that
	// range; callers are expected to guard upstream.
	ErrInvalidComparisonSet = errors.New("comparison requires 2 or 3 flights")

	// ErrWeightVectorInvalid indicates a persona weight vector does not sum
	// to 1 within tolerance. The vector is rejected, never renormalized.
	ErrWeightVectorInvalid = errors.New("weight vector invalid")

	// ErrSearchFailed indicates the backend flight search could not be
	// completed (including any failed leg of a multi-city query).
	ErrSearchFailed = errors.New("flight search failed")

	// ErrUnknownPersona indicates a requested persona has no configured
	// weight profile.
	ErrUnknownPersona = errors.New("unknown persona")
)

// Structured failures for the natural-language search boundary. Each maps to a
// user-facing retry-or-clarify message rather than a generic 500.
var (
	// ErrMissingDestination indicates the query text contained no resolvable
	// destination.
	ErrMissingDestination = errors.New("missing destination")

	// ErrLocationUnavailable indicates the query omitted an origin and no
	// geolocation was supplied to infer one from.
	ErrLocationUnavailable = errors.New("location unavailable")

	// ErrUnparseableResponse indicates the AI completion could not be parsed
	// into search parameters. This is a genuine parse failure and is not
	// retried.
	ErrUnparseableResponse = errors.New("AI response unparseable")
)

// BackendError wraps an error from the backend flight API with the endpoint
// that produced it.
type BackendError struct {
	// Endpoint is the logical endpoint name (e.g., "search", "seatmap")
	Endpoint string

	// Err is the underlying error
	Err error

	// Retryable indicates whether the call may be retried
	Retryable bool
}

// Error implements the error interface.
func (e *BackendError) Error() string {
	return fmt.Sprintf("backend %s: %v", e.Endpoint, e.Err)
}

// Unwrap returns the underlying error for errors.Is/As support.
func (e *BackendError) Unwrap() error {
	return e.Err
}

// NewBackendError creates a non-retryable backend error.
func NewBackendError(endpoint string, err error) *BackendError {
	return &BackendError{Endpoint: endpoint, Err: err}
}

// NewRetryableBackendError creates a retryable backend error (timeouts,
// rate limits, transient upstream failures).
func NewRetryableBackendError(endpoint string, err error) *BackendError {
	return &BackendError{Endpoint: endpoint, Err: err, Retryable: true}
}

// ValidationError represents a single field-level validation failure.
type ValidationError struct {
	Field   string
	Message string
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	return e.Field + ": " + e.Message
}

// NewValidationError creates a field-level validation error.
func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{Field: field, Message: message}
}

// WrapInvalidRequest wraps a formatted message with ErrInvalidRequest so
// callers can match it with errors.Is.
func WrapInvalidRequest(format string, args ...interface{}) error {
	return fmt.Errorf("%w: %s", ErrInvalidRequest, fmt.Sprintf(format, args...))
}

// IsInvalidRequest reports whether err is or wraps ErrInvalidRequest.
func IsInvalidRequest(err error) bool {
	return errors.Is(err, ErrInvalidRequest)
}

// IsInvalidComparisonSet reports whether err is or wraps ErrInvalidComparisonSet.
func IsInvalidComparisonSet(err error) bool {
	return errors.Is(err, ErrInvalidComparisonSet)
}

// IsWeightVectorInvalid reports whether err is or wraps ErrWeightVectorInvalid.
func IsWeightVectorInvalid(err error) bool {
	return errors.Is(err, ErrWeightVectorInvalid)
}

// IsParseFailure reports whether err is one of the structured
// natural-language parse failures.
func IsParseFailure(err error) bool {
	return errors.Is(err, ErrMissingDestination) ||
		errors.Is(err, ErrLocationUnavailable) ||
		errors.Is(err, ErrUnparseableResponse)
}

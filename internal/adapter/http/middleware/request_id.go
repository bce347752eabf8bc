// Package middleware provides HTTP middleware for cross-cutting concerns.
package middleware

import (
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

// RequestIDHeader is the HTTP header carrying the request correlation ID.
const RequestIDHeader = "X-Request-ID"

// requestIDKey is the echo context key holding the request ID.
const requestIDKey = "request_id"

// RequestID returns middleware that assigns a correlation ID to every
// request. A well-formed UUID arriving in X-Request-ID is propagated so a
// request can be traced across the browser, this service, and the backend;
// anything else is replaced with a fresh UUID. The ID is stored on the
// context and echoed back in the response header.
func RequestID() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			id := c.Request().Header.Get(RequestIDHeader)
			if _, err := uuid.Parse(id); err != nil {
				id = uuid.New().String()
			}

			c.Set(requestIDKey, id)
			c.Response().Header().Set(RequestIDHeader, id)

			return next(c)
		}
	}
}

// GetRequestID retrieves the request ID from the echo context, or an empty
// string when the RequestID middleware has not run.
func GetRequestID(c echo.Context) string {
	if id, ok := c.Get(requestIDKey).(string); ok {
		return id
	}
	return ""
}

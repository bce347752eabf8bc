package middleware

import (
	"time"

	"github.com/labstack/echo/v4"

	"github.com/stevenyi0526-glitch/AirEaseWeb-sub002/internal/adapter/observability"
)

// Metrics returns middleware that records request count and latency per
// route. The route template (e.g., "/api/v1/flights/:id/seatmap") is used
// instead of the raw path to keep label cardinality bounded.
func Metrics() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()

			err := next(c)
			if err != nil {
				c.Error(err)
			}

			route := c.Path()
			if route == "" {
				route = c.Request().URL.Path
			}
			observability.ObserveHTTP(route, c.Request().Method, c.Response().Status, time.Since(start))

			return nil
		}
	}
}

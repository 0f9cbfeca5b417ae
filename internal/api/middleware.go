package api

import (
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/spacesedan/polarity/internal/monitoring"
)

// MetricsMiddleware records request counts and latency per route.
func MetricsMiddleware(m *monitoring.Metrics) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()
			err := next(c)

			path := c.Path()
			if path == "" {
				path = c.Request().URL.Path
			}

			m.HTTPRequestDuration.
				WithLabelValues(c.Request().Method, path).
				Observe(time.Since(start).Seconds())
			m.HTTPRequestsTotal.
				WithLabelValues(c.Request().Method, path, strconv.Itoa(c.Response().Status)).
				Inc()

			return err
		}
	}
}

package middleware

import (
	"time"

	"github.com/labstack/echo/v4"

	"github.com/fitquest/backend/internal/server"
)

type MetricsMiddleware struct {
	server *server.Server
}

func NewMetricsMiddleware(s *server.Server) *MetricsMiddleware {
	return &MetricsMiddleware{server: s}
}

// Observe records request count and latency per route template.
func (m *MetricsMiddleware) Observe() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()
			err := next(c)

			status := c.Response().Status
			if err != nil {
				status = StatusFromError(err)
			}

			route := c.Path()
			if route == "" {
				route = "unmatched"
			}

			m.server.Metrics.ObserveRequest(c.Request().Method, route, status, time.Since(start))

			return err
		}
	}
}

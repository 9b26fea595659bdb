package middleware

import (
	"github.com/labstack/echo/v4"
	"github.com/newrelic/go-agent/v3/integrations/nrecho-v4"
	"github.com/newrelic/go-agent/v3/integrations/nrpkgerrors"
	"github.com/newrelic/go-agent/v3/newrelic"

	"github.com/fitquest/backend/internal/server"
)

// TracingMiddleware starts and annotates New Relic transactions. Without
// an agent both middlewares pass requests straight through.
type TracingMiddleware struct {
	nrApp *newrelic.Application
}

func NewTracingMiddleware(s *server.Server) *TracingMiddleware {
	return &TracingMiddleware{nrApp: s.LoggerService.GetApplication()}
}

func passThrough(next echo.HandlerFunc) echo.HandlerFunc {
	return next
}

func (tm *TracingMiddleware) NewRelicMiddleware() echo.MiddlewareFunc {
	if tm.nrApp == nil {
		return passThrough
	}
	return nrecho.Middleware(tm.nrApp)
}

// EnhanceTracing tags the transaction with the route template, client and
// final status. Only server faults are noticed as errors; 4xx responses
// are expected outcomes for a CRUD API.
func (tm *TracingMiddleware) EnhanceTracing() echo.MiddlewareFunc {
	if tm.nrApp == nil {
		return passThrough
	}

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			txn := newrelic.FromContext(c.Request().Context())
			if txn == nil {
				return next(c)
			}

			attributes := map[string]interface{}{
				"http.route":      c.Path(),
				"http.real_ip":    c.RealIP(),
				"http.user_agent": c.Request().UserAgent(),
				"request.id":      GetRequestID(c),
			}

			err := next(c)

			status := c.Response().Status
			if err != nil {
				status = StatusFromError(err)
				if status >= 500 {
					txn.NoticeError(nrpkgerrors.Wrap(err))
				}
			}
			attributes["http.status_code"] = status

			if userID := GetUserID(c); userID != "" {
				attributes["user.id"] = userID
			}

			for key, value := range attributes {
				txn.AddAttribute(key, value)
			}

			return err
		}
	}
}

package handler

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/fitquest/backend/internal/middleware"
	"github.com/fitquest/backend/internal/server"
)

type HealthHandler struct {
	Handler
}

func NewHealthHandler(s *server.Server) *HealthHandler {
	return &HealthHandler{
		Handler: NewHandler(s),
	}
}

type checkResult struct {
	Status       string `json:"status"`
	ResponseTime string `json:"response_time"`
	Error        string `json:"error,omitempty"`
}

type healthResponse struct {
	Status      string                 `json:"status"`
	Timestamp   time.Time              `json:"timestamp"`
	Environment string                 `json:"environment"`
	Checks      map[string]checkResult `json:"checks"`
}

var errNotConfigured = errors.New("not configured")

// CheckHealth probes the configured dependencies. Any failing check turns
// the response into a 503.
func (h *HealthHandler) CheckHealth(c echo.Context) error {
	start := time.Now()
	cfg := h.server.Config.Observability.HealthChecks

	logger := middleware.GetLogger(c).With().
		Str("operation", "health_check").
		Logger()

	response := healthResponse{
		Status:      "healthy",
		Timestamp:   time.Now().UTC(),
		Environment: h.server.Config.Primary.Env,
		Checks:      map[string]checkResult{},
	}

	if cfg.Enabled {
		probes := map[string]func(context.Context) error{
			"database": h.pingDatabase,
			"redis":    h.pingRedis,
		}

		for _, name := range cfg.Checks {
			probe, ok := probes[name]
			if !ok {
				continue
			}

			ctx, cancel := context.WithTimeout(c.Request().Context(), cfg.Timeout)
			checkStart := time.Now()
			err := probe(ctx)
			cancel()

			result := checkResult{
				Status:       "healthy",
				ResponseTime: time.Since(checkStart).String(),
			}

			if err != nil {
				result.Status = "unhealthy"
				result.Error = err.Error()
				response.Status = "unhealthy"

				logger.Error().
					Err(err).
					Str("check", name).
					Dur("response_time", time.Since(checkStart)).
					Msg("health check failed")

				h.recordCheckError(name, err, time.Since(checkStart))
			}

			response.Checks[name] = result
		}
	}

	if response.Status != "healthy" {
		logger.Warn().
			Dur("total_duration", time.Since(start)).
			Msg("service unhealthy")

		return c.JSON(http.StatusServiceUnavailable, response)
	}

	logger.Debug().
		Dur("total_duration", time.Since(start)).
		Msg("health check passed")

	return c.JSON(http.StatusOK, response)
}

func (h *HealthHandler) pingDatabase(ctx context.Context) error {
	if h.server.DB == nil {
		return errNotConfigured
	}
	return h.server.DB.Ping(ctx)
}

func (h *HealthHandler) pingRedis(ctx context.Context) error {
	if h.server.Redis == nil {
		return errNotConfigured
	}
	return h.server.Redis.Ping(ctx).Err()
}

func (h *HealthHandler) recordCheckError(check string, err error, elapsed time.Duration) {
	app := h.server.LoggerService.GetApplication()
	if app == nil {
		return
	}

	app.RecordCustomEvent("HealthCheckError", map[string]interface{}{
		"check_type":       check,
		"operation":        "health_check",
		"error_type":       check + "_unhealthy",
		"response_time_ms": elapsed.Milliseconds(),
		"error_message":    err.Error(),
	})
}

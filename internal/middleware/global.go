package middleware

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/rs/zerolog"

	"github.com/fitquest/backend/internal/errs"
	"github.com/fitquest/backend/internal/server"
	"github.com/fitquest/backend/internal/sqlerr"
)

const panicStackKey = "panic_stack"

type GlobalMiddlewares struct {
	server *server.Server
}

func NewGlobalMiddlewares(s *server.Server) *GlobalMiddlewares {
	return &GlobalMiddlewares{
		server: s,
	}
}

func (global *GlobalMiddlewares) CORS() echo.MiddlewareFunc {
	return middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins: global.server.Config.Server.CORSAllowedOrigins,
	})
}

// RequestLogger writes one access log line per request. Errors are not
// attached; GlobalErrorHandler already logged them.
func (global *GlobalMiddlewares) RequestLogger() echo.MiddlewareFunc {
	return middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogURI:     true,
		LogStatus:  true,
		LogError:   true,
		LogLatency: true,
		LogHost:    true,
		LogMethod:  true,
		LogURIPath: true,

		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			statusCode := v.Status

			// The error handler runs after this middleware returns, so the
			// response status is not final yet when the handler failed.
			if v.Error != nil {
				statusCode = StatusFromError(v.Error)
			}

			logger := GetLogger(c)

			var e *zerolog.Event
			switch {
			case statusCode >= 500:
				e = logger.Error()
			case statusCode >= 400:
				e = logger.Warn()
			default:
				e = logger.Info()
			}

			if userID := GetUserID(c); userID != "" {
				e = e.Str("user_id", userID)
			}

			e.
				Dur("latency", v.Latency).
				Int("status", statusCode).
				Str("uri", v.URI).
				Str("host", v.Host).
				Str("user_agent", c.Request().UserAgent()).
				Msg("API")

			return nil
		},
	})
}

// Recover turns panics into errors for GlobalErrorHandler, keeping the stack.
func (global *GlobalMiddlewares) Recover() echo.MiddlewareFunc {
	return middleware.RecoverWithConfig(middleware.RecoverConfig{
		LogErrorFunc: func(c echo.Context, err error, stack []byte) error {
			c.Set(panicStackKey, string(stack))
			return err
		},
	})
}

func (global *GlobalMiddlewares) Secure() echo.MiddlewareFunc {
	return middleware.Secure()
}

// resolveHTTPError maps any handler error onto the HTTPError that will be
// written. Unknown routes keep a JSON body; everything else goes through
// sqlerr.
func resolveHTTPError(err error) *errs.HTTPError {
	var httpErr *errs.HTTPError
	if errors.As(err, &httpErr) {
		return httpErr
	}

	var echoErr *echo.HTTPError
	if errors.As(err, &echoErr) {
		if echoErr.Code == http.StatusNotFound {
			return errs.NewNotFoundError("Route not found", false, nil)
		}

		message, ok := echoErr.Message.(string)
		if !ok {
			message = http.StatusText(echoErr.Code)
		}
		return &errs.HTTPError{
			Code:    errs.MakeUpperCaseWithUnderscores(http.StatusText(echoErr.Code)),
			Message: message,
			Status:  echoErr.Code,
		}
	}

	if errors.As(sqlerr.HandleError(err), &httpErr) {
		return httpErr
	}
	return errs.NewInternalServerError()
}

// StatusFromError predicts the status GlobalErrorHandler will write for err.
func StatusFromError(err error) int {
	return resolveHTTPError(err).Status
}

// GlobalErrorHandler turns every error into a response and logs it once.
//
// Missing resources answer 404 with no body. Server faults answer with
// the localized generic message; their detail only reaches the log.
func (global *GlobalMiddlewares) GlobalErrorHandler(err error, c echo.Context) {
	response := resolveHTTPError(err)

	if response.Status >= http.StatusInternalServerError {
		response = &errs.HTTPError{
			Code:    errs.MakeUpperCaseWithUnderscores(http.StatusText(http.StatusInternalServerError)),
			Message: errs.ServerErrorMessage(global.server.Config.Primary.Locale),
			Status:  response.Status,
		}
	}

	global.logError(c, err, response)

	if c.Response().Committed {
		return
	}

	if response.Empty || c.Request().Method == http.MethodHead {
		_ = c.NoContent(response.Status)
		return
	}
	_ = c.JSON(response.Status, response)
}

// logError picks the level by status: server faults at error with any
// recovered panic stack, missing resources at info, other client errors
// at warn.
func (global *GlobalMiddlewares) logError(c echo.Context, err error, response *errs.HTTPError) {
	logger := GetLogger(c)

	var event *zerolog.Event
	switch {
	case response.Status >= http.StatusInternalServerError:
		event = logger.Error().Stack()
		if stack, ok := c.Get(panicStackKey).(string); ok {
			event = event.Str(panicStackKey, stack)
		}
	case response.Status == http.StatusNotFound:
		event = logger.Info()
	default:
		event = logger.Warn()
	}

	event.
		Err(err).
		Int("status", response.Status).
		Str("error_code", response.Code).
		Msg("request failed")
}

// Package handler maps HTTP requests onto service calls.
//
// Every endpoint runs through the same pipeline: bind and validate a fresh
// request DTO, call the typed handler, then write the result. Failures are
// returned untouched; the global error handler picks the status and logs
// them.
package handler

import (
	"reflect"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/newrelic/go-agent/v3/newrelic"

	"github.com/fitquest/backend/internal/middleware"
	"github.com/fitquest/backend/internal/server"
	"github.com/fitquest/backend/internal/validation"
)

type Handler struct {
	server *server.Server
}

func NewHandler(s *server.Server) Handler {
	return Handler{server: s}
}

// HandlerFunc is a typed endpoint. Req is normally a pointer so Bind can fill it.
type HandlerFunc[Req validation.Validatable, Res any] func(c echo.Context, req Req) (Res, error)

type HandlerFuncNoContent[Req validation.Validatable] func(c echo.Context, req Req) error

// responder writes a successful result.
type responder struct {
	operation string
	write     func(c echo.Context, result any) error
}

func jsonResponder(status int) responder {
	return responder{
		operation: "handler",
		write: func(c echo.Context, result any) error {
			return c.JSON(status, result)
		},
	}
}

func noContentResponder(status int) responder {
	return responder{
		operation: "handler_no_content",
		write: func(c echo.Context, _ any) error {
			return c.NoContent(status)
		},
	}
}

// txnAttributes records custom attributes on the request's New Relic
// transaction, if there is one.
type txnAttributes struct {
	txn *newrelic.Transaction
}

func (a txnAttributes) add(key string, value any) {
	if a.txn != nil {
		a.txn.AddAttribute(key, value)
	}
}

func (a txnAttributes) stage(name, status string, elapsed time.Duration) {
	a.add(name+".status", status)
	a.add(name+".duration_ms", elapsed.Milliseconds())
}

// newRequest returns a zero value of the type prototype points to, so
// concurrent requests never share a DTO.
func newRequest[Req any](prototype Req) Req {
	t := reflect.TypeOf(prototype)
	if t == nil || t.Kind() != reflect.Pointer {
		return prototype
	}
	return reflect.New(t.Elem()).Interface().(Req)
}

func runPipeline[Req validation.Validatable](
	c echo.Context,
	req Req,
	call func(c echo.Context, req Req) (any, error),
	out responder,
) error {
	start := time.Now()
	attrs := txnAttributes{txn: newrelic.FromContext(c.Request().Context())}
	attrs.add("handler.name", c.Path())

	logger := middleware.GetLogger(c).With().
		Str("operation", out.operation).
		Str("route", c.Path()).
		Logger()

	if err := validation.BindAndValidate(c, req); err != nil {
		attrs.stage("validation", "failed", time.Since(start))
		logger.Debug().Msg("request rejected")
		return err
	}
	validated := time.Now()
	attrs.stage("validation", "success", validated.Sub(start))

	result, err := call(c, req)
	handled := time.Since(validated)
	if err != nil {
		attrs.stage("handler", "error", handled)
		// Logged with full detail by the global error handler.
		logger.Debug().Dur("handler_duration", handled).Msg("handler returned an error")
		return err
	}

	attrs.stage("handler", "success", handled)
	attrs.add("total.duration_ms", time.Since(start).Milliseconds())

	logger.Debug().
		Dur("validation_duration", validated.Sub(start)).
		Dur("handler_duration", handled).
		Msg("request handled")

	return out.write(c, result)
}

// Handle wraps a typed handler that answers with JSON and the given status.
//
//	article.POST("", handler.Handle(h.Article.Handler, h.Article.CreateArticle, http.StatusCreated, &CreateArticleRequest{}))
//
// req is a prototype: a fresh copy is bound for every request.
func Handle[Req validation.Validatable, Res any](
	h Handler,
	handler HandlerFunc[Req, Res],
	status int,
	req Req,
) echo.HandlerFunc {
	return func(c echo.Context) error {
		return runPipeline(c, newRequest(req), func(c echo.Context, req Req) (any, error) {
			return handler(c, req)
		}, jsonResponder(status))
	}
}

// HandleNoContent wraps a handler whose success response has no body.
func HandleNoContent[Req validation.Validatable](
	h Handler,
	handler HandlerFuncNoContent[Req],
	status int,
	req Req,
) echo.HandlerFunc {
	return func(c echo.Context) error {
		return runPipeline(c, newRequest(req), func(c echo.Context, req Req) (any, error) {
			return nil, handler(c, req)
		}, noContentResponder(status))
	}
}

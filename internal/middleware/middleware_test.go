package middleware

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fitquest/backend/internal/errs"
	"github.com/fitquest/backend/internal/testutil"
)

func TestRequestIDGeneratesAndPropagates(t *testing.T) {
	e := echo.New()
	handler := RequestID()(func(c echo.Context) error {
		return c.String(http.StatusOK, GetRequestID(c))
	})

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	require.NoError(t, handler(e.NewContext(req, rec)))

	generated := rec.Header().Get(RequestIDHeader)
	assert.Len(t, generated, 36)
	assert.Equal(t, generated, rec.Body.String())

	req = httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(RequestIDHeader, "req-123")
	rec = httptest.NewRecorder()
	require.NoError(t, handler(e.NewContext(req, rec)))

	assert.Equal(t, "req-123", rec.Header().Get(RequestIDHeader))

	req = httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(RequestIDHeader, "bad id\nlevel=error")
	rec = httptest.NewRecorder()
	require.NoError(t, handler(e.NewContext(req, rec)))

	assert.Len(t, rec.Header().Get(RequestIDHeader), 36)
}

func TestStatusFromError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"http error", errs.NewUnauthorizedError("no", false), http.StatusUnauthorized},
		{"echo error", echo.ErrMethodNotAllowed, http.StatusMethodNotAllowed},
		{"wrapped not found", fmt.Errorf("article 3: %w", errs.ErrNotFound), http.StatusNotFound},
		{"unique violation", &pgconn.PgError{Code: "23505", TableName: "categories"}, http.StatusBadRequest},
		{"plain error", errors.New("boom"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, StatusFromError(tt.err))
		})
	}
}

func TestGlobalErrorHandlerHidesServerFaults(t *testing.T) {
	s, logs := testutil.NewTestServer(nil)
	global := NewGlobalMiddlewares(s)

	e := echo.New()
	rec := httptest.NewRecorder()
	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), rec)
	logger := s.Logger.With().Logger()
	c.Set(LoggerKey, &logger)

	global.GlobalErrorHandler(errors.New("connection reset by peer"), c)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.JSONEq(t, `{
		"code": "INTERNAL_SERVER_ERROR",
		"message": "Server error occurred",
		"status": 500,
		"override": false,
		"errors": null,
		"action": null
	}`, rec.Body.String())
	assert.Contains(t, logs.String(), `"level":"error"`)
	assert.Contains(t, logs.String(), "connection reset by peer")
}

func TestGlobalErrorHandlerEmptyNotFound(t *testing.T) {
	s, logs := testutil.NewTestServer(nil)
	global := NewGlobalMiddlewares(s)

	e := echo.New()
	rec := httptest.NewRecorder()
	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), rec)
	logger := s.Logger.With().Logger()
	c.Set(LoggerKey, &logger)

	global.GlobalErrorHandler(fmt.Errorf("category list: %w", errs.ErrNotFound), c)

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Empty(t, rec.Body.String())
	assert.Contains(t, logs.String(), `"level":"info"`)
}

func TestGlobalErrorHandlerKeepsClientErrors(t *testing.T) {
	s, _ := testutil.NewTestServer(nil)
	global := NewGlobalMiddlewares(s)

	e := echo.New()
	rec := httptest.NewRecorder()
	c := e.NewContext(httptest.NewRequest(http.MethodPost, "/", nil), rec)

	fieldErrors := []errs.FieldError{{Field: "title", Error: "is required"}}
	global.GlobalErrorHandler(errs.NewBadRequestError("Validation failed", true, nil, fieldErrors, nil), c)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), `"field":"title"`)
	assert.Contains(t, rec.Body.String(), `"override":true`)
}

func TestLoggerFromContext(t *testing.T) {
	fallback := zerolog.Nop()
	assert.Same(t, &fallback, LoggerFromContext(context.Background(), &fallback))

	scoped := zerolog.Nop()
	ctx := context.WithValue(context.Background(), loggerCtxKey{}, &scoped)
	assert.Same(t, &scoped, LoggerFromContext(ctx, &fallback))
}

func TestGetLoggerOutsideRequest(t *testing.T) {
	e := echo.New()
	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), httptest.NewRecorder())

	assert.NotNil(t, GetLogger(c))
}

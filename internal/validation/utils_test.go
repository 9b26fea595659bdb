package validation

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fitquest/backend/internal/errs"
)

type workoutRequest struct {
	UserID int    `param:"userId" validate:"required,min=1"`
	Title  string `json:"title" validate:"required,notblank,max=10"`
}

func (r *workoutRequest) Validate() error {
	return Validator().Struct(r)
}

type customRequest struct{}

func (r *customRequest) Validate() error {
	return CustomValidationErrors{{Field: "body", Message: "needs at least one field"}}
}

func newContext(body string, userID string) echo.Context {
	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	c := e.NewContext(req, httptest.NewRecorder())
	c.SetParamNames("userId")
	c.SetParamValues(userID)
	return c
}

func requireBadRequest(t *testing.T, err error) *errs.HTTPError {
	t.Helper()

	var httpErr *errs.HTTPError
	require.True(t, errors.As(err, &httpErr))
	assert.Equal(t, http.StatusBadRequest, httpErr.Status)
	return httpErr
}

func TestBindAndValidateOK(t *testing.T) {
	req := &workoutRequest{}
	require.NoError(t, BindAndValidate(newContext(`{"title":"Legs"}`, "42"), req))

	assert.Equal(t, 42, req.UserID)
	assert.Equal(t, "Legs", req.Title)
}

func TestBindAndValidateFieldErrors(t *testing.T) {
	httpErr := requireBadRequest(t, BindAndValidate(newContext(`{"title":"   "}`, "0"), &workoutRequest{}))

	fields := map[string]string{}
	for _, fe := range httpErr.Errors {
		fields[fe.Field] = fe.Error
	}
	assert.Equal(t, "is required", fields["userId"])
	assert.Equal(t, "must not be blank", fields["title"])
}

func TestBindAndValidateMaxLength(t *testing.T) {
	httpErr := requireBadRequest(t, BindAndValidate(newContext(`{"title":"a very long title"}`, "1"), &workoutRequest{}))

	require.Len(t, httpErr.Errors, 1)
	assert.Equal(t, "must not exceed 10 characters", httpErr.Errors[0].Error)
}

func TestBindAndValidateMalformedBody(t *testing.T) {
	requireBadRequest(t, BindAndValidate(newContext(`{"title":`, "1"), &workoutRequest{}))
}

func TestBindAndValidateNonNumericParam(t *testing.T) {
	requireBadRequest(t, BindAndValidate(newContext(`{"title":"Legs"}`, "abc"), &workoutRequest{}))
}

func TestBindAndValidateCustomErrors(t *testing.T) {
	httpErr := requireBadRequest(t, BindAndValidate(newContext(`{}`, "1"), &customRequest{}))

	require.Len(t, httpErr.Errors, 1)
	assert.Equal(t, "body", httpErr.Errors[0].Field)
}

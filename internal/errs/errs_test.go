package errs

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMakeUpperCaseWithUnderscores(t *testing.T) {
	assert.Equal(t, "BAD_REQUEST", MakeUpperCaseWithUnderscores("Bad Request"))
	assert.Equal(t, "INTERNAL_SERVER_ERROR", MakeUpperCaseWithUnderscores(http.StatusText(http.StatusInternalServerError)))
}

func TestHTTPErrorIsMatchesAnyHTTPError(t *testing.T) {
	err := fmt.Errorf("wrapped: %w", NewForbiddenError("nope", false))

	assert.True(t, errors.Is(err, &HTTPError{}))

	var httpErr *HTTPError
	assert.True(t, errors.As(err, &httpErr))
	assert.Equal(t, http.StatusForbidden, httpErr.Status)
	assert.Equal(t, "FORBIDDEN", httpErr.Code)
}

func TestNewBadRequestErrorCustomCode(t *testing.T) {
	code := "ARTICLE_INVALID"
	err := NewBadRequestError("bad", true, &code, []FieldError{{Field: "title", Error: "is required"}}, nil)

	assert.Equal(t, "ARTICLE_INVALID", err.Code)
	assert.Equal(t, http.StatusBadRequest, err.Status)
	assert.True(t, err.Override)
	assert.Len(t, err.Errors, 1)
}

func TestNewEmptyNotFoundError(t *testing.T) {
	err := NewEmptyNotFoundError()

	assert.Equal(t, http.StatusNotFound, err.Status)
	assert.True(t, err.Empty)
	assert.True(t, err.WithMessage("gone").Empty)
}

func TestServerErrorMessage(t *testing.T) {
	assert.Equal(t, "서버 오류 발생", ServerErrorMessage("ko"))
	assert.Equal(t, "Server error occurred", ServerErrorMessage("en"))
	assert.Equal(t, "Server error occurred", ServerErrorMessage("fr"))
}

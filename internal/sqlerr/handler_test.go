package sqlerr

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fitquest/backend/internal/errs"
)

func asHTTPError(t *testing.T, err error) *errs.HTTPError {
	t.Helper()

	var httpErr *errs.HTTPError
	require.True(t, errors.As(err, &httpErr), "expected *errs.HTTPError, got %T", err)
	return httpErr
}

func TestHandleErrorNotFound(t *testing.T) {
	for _, err := range []error{
		pgx.ErrNoRows,
		fmt.Errorf("get article 12: %w", errs.ErrNotFound),
		fmt.Errorf("scan: %w", pgx.ErrNoRows),
	} {
		httpErr := asHTTPError(t, HandleError(err))
		assert.Equal(t, http.StatusNotFound, httpErr.Status)
		assert.True(t, httpErr.Empty)
	}
}

func TestHandleErrorPassesHTTPErrorThrough(t *testing.T) {
	in := errs.NewUnauthorizedError("Unauthorized", false)
	assert.Same(t, in, HandleError(in))
}

func TestHandleErrorForeignKey(t *testing.T) {
	err := &pgconn.PgError{
		Code:       "23503",
		Severity:   "ERROR",
		TableName:  "articles",
		ColumnName: "user_id",
	}

	httpErr := asHTTPError(t, HandleError(fmt.Errorf("insert: %w", err)))
	assert.Equal(t, http.StatusBadRequest, httpErr.Status)
	assert.Equal(t, "USER_NOT_FOUND", httpErr.Code)
	assert.Equal(t, "The referenced User does not exist", httpErr.Message)
}

func TestHandleErrorForeignKeyFromConstraintName(t *testing.T) {
	err := &pgconn.PgError{
		Code:           "23503",
		Severity:       "ERROR",
		TableName:      "categories",
		ConstraintName: "categories_user_id_fkey",
		Detail:         `Key (user_id)=(4242) is not present in table "users".`,
	}

	httpErr := asHTTPError(t, HandleError(err))
	assert.Equal(t, "USER_NOT_FOUND", httpErr.Code)
	assert.Equal(t, "The referenced User does not exist", httpErr.Message)
}

func TestHandleErrorUniqueViolation(t *testing.T) {
	err := &pgconn.PgError{
		Code:           "23505",
		TableName:      "categories",
		ConstraintName: "categories_name_key",
	}

	httpErr := asHTTPError(t, HandleError(err))
	assert.Equal(t, http.StatusBadRequest, httpErr.Status)
	assert.Equal(t, "CATEGORY_ALREADY_EXISTS", httpErr.Code)
	assert.Equal(t, "A Category with this Name already exists", httpErr.Message)
	assert.True(t, httpErr.Override)
}

func TestHandleErrorNotNull(t *testing.T) {
	err := &pgconn.PgError{Code: "23502", TableName: "articles", ColumnName: "title"}

	httpErr := asHTTPError(t, HandleError(err))
	assert.Equal(t, http.StatusBadRequest, httpErr.Status)
	require.Len(t, httpErr.Errors, 1)
	assert.Equal(t, "title", httpErr.Errors[0].Field)
}

func TestHandleErrorTruncation(t *testing.T) {
	err := &pgconn.PgError{Code: "22001", TableName: "articles"}

	httpErr := asHTTPError(t, HandleError(err))
	assert.Equal(t, http.StatusBadRequest, httpErr.Status)
	assert.Equal(t, "ARTICLE_INVALID", httpErr.Code)
}

func TestHandleErrorUnknownIsInternal(t *testing.T) {
	httpErr := asHTTPError(t, HandleError(errors.New("connection reset")))
	assert.Equal(t, http.StatusInternalServerError, httpErr.Status)

	httpErr = asHTTPError(t, HandleError(&pgconn.PgError{Code: "57014"}))
	assert.Equal(t, http.StatusInternalServerError, httpErr.Status)
}

func TestConvertPgErrorUnwraps(t *testing.T) {
	src := &pgconn.PgError{Code: "23514", Severity: "ERROR", Message: "check failed"}
	converted := ConvertPgError(src)

	assert.Equal(t, CheckViolation, converted.Code)
	assert.Equal(t, SeverityError, converted.Severity)
	assert.Equal(t, CheckViolation, ErrCode(fmt.Errorf("wrap: %w", converted)))
	assert.Equal(t, Other, ErrCode(errors.New("plain")))

	var pgErr *pgconn.PgError
	assert.True(t, errors.As(converted, &pgErr))
}

func TestExtractColumnForUniqueViolation(t *testing.T) {
	assert.Equal(t, "email", extractColumnForUniqueViolation("unique_users_email"))
	assert.Equal(t, "email", extractColumnForUniqueViolation("users_email_key"))
	assert.Equal(t, "", extractColumnForUniqueViolation("articles_pkey"))
}

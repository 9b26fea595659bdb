package sqlerr

import (
	"database/sql"
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/fitquest/backend/internal/errs"
)

var uniqueKeyPattern = regexp.MustCompile(`_([^_]+)_(?:key|ukey)$`)

// violation describes how one Code is reported to clients.
type violation struct {
	// suffix completes the error code, e.g. ALREADY_EXISTS.
	suffix string
	// override marks messages safe to show to end users verbatim.
	override bool
	message  func(e *Error) string
}

var violations = map[Code]violation{
	ForeignKeyViolation: {
		suffix: "NOT_FOUND",
		message: func(e *Error) string {
			return fmt.Sprintf("The referenced %s does not exist", entityName(e))
		},
	},
	UniqueViolation: {
		suffix:   "ALREADY_EXISTS",
		override: true,
		message: func(e *Error) string {
			what := "identifier"
			if column := extractColumnForUniqueViolation(e.ConstraintName); column != "" {
				what = humanize(column)
			}
			return fmt.Sprintf("A %s with this %s already exists", entityName(e), what)
		},
	},
	NotNullViolation: {
		suffix:   "REQUIRED",
		override: true,
		message: func(e *Error) string {
			return fmt.Sprintf("The %s is required", orDefault(humanize(e.ColumnName), "field"))
		},
	},
	CheckViolation: {
		suffix:   "INVALID",
		override: true,
		message: func(e *Error) string {
			if field := humanize(e.ColumnName); field != "" {
				return fmt.Sprintf("The %s value does not meet required conditions", field)
			}
			return "One or more values do not meet required conditions"
		},
	},
	StringDataRightTruncation: {
		suffix:   "INVALID",
		override: true,
		message:  func(*Error) string { return "One or more values are too long" },
	},
	InvalidTextRepresentation: {
		suffix:   "INVALID",
		override: true,
		message:  func(*Error) string { return "One or more values have an invalid format" },
	},
	NumericValueOutOfRange: {
		suffix:   "INVALID",
		override: true,
		message:  func(*Error) string { return "One or more values have an invalid format" },
	},
}

// ErrCode returns the Code of the first *Error in err's chain, or Other.
func ErrCode(err error) Code {
	var pgerr *Error
	if errors.As(err, &pgerr) {
		return pgerr.Code
	}
	return Other
}

// ConvertPgError normalizes a raw pgconn.PgError. PostgreSQL leaves the
// column empty on foreign key violations, so it is recovered from the
// default <table>_<column>_fkey constraint name.
func ConvertPgError(src *pgconn.PgError) *Error {
	converted := &Error{
		Code:           MapCode(src.Code),
		Severity:       MapSeverity(src.Severity),
		DatabaseCode:   src.Code,
		Message:        src.Message,
		SchemaName:     src.SchemaName,
		TableName:      src.TableName,
		ColumnName:     src.ColumnName,
		DataTypeName:   src.DataTypeName,
		ConstraintName: src.ConstraintName,
		driverErr:      src,
	}

	if converted.Code == ForeignKeyViolation && converted.ColumnName == "" {
		converted.ColumnName = extractColumnForForeignKey(src.TableName, src.ConstraintName)
	}

	return converted
}

// HandleError converts err into an *errs.HTTPError.
//
// HTTP errors pass through unchanged. Missing rows and errs.ErrNotFound
// become a 404 without a body. Constraint and data violations become 400s
// and anything else is a 500.
func HandleError(err error) error {
	var httpErr *errs.HTTPError
	if errors.As(err, &httpErr) {
		return err
	}

	if errors.Is(err, errs.ErrNotFound) || errors.Is(err, pgx.ErrNoRows) || errors.Is(err, sql.ErrNoRows) {
		return errs.NewEmptyNotFoundError()
	}

	var pgerr *pgconn.PgError
	if !errors.As(err, &pgerr) {
		return errs.NewInternalServerError()
	}

	sqlErr := ConvertPgError(pgerr)
	v, ok := violations[sqlErr.Code]
	if !ok {
		return errs.NewInternalServerError()
	}

	code := errorDomain(sqlErr) + "_" + v.suffix

	var fieldErrors []errs.FieldError
	if sqlErr.Code == NotNullViolation && sqlErr.ColumnName != "" {
		fieldErrors = []errs.FieldError{{Field: strings.ToLower(sqlErr.ColumnName), Error: "is required"}}
	}

	return errs.NewBadRequestError(v.message(sqlErr), v.override, &code, fieldErrors, nil)
}

// errorDomain is the upper-case entity an error code starts with: the
// referenced entity for foreign keys, the table otherwise.
func errorDomain(e *Error) string {
	if e.Code == ForeignKeyViolation {
		if entity, ok := referencedEntity(e.ColumnName); ok {
			return strings.ToUpper(entity)
		}
	}
	return strings.ToUpper(singular(orDefault(e.TableName, "record")))
}

// entityName prefers the "<entity>_id" column, then the singular table name.
func entityName(e *Error) string {
	if entity, ok := referencedEntity(e.ColumnName); ok {
		return humanize(entity)
	}
	if e.TableName != "" {
		return humanize(singular(e.TableName))
	}
	return "record"
}

func referencedEntity(column string) (string, bool) {
	column = strings.ToLower(column)
	if !strings.HasSuffix(column, "_id") {
		return "", false
	}
	return strings.TrimSuffix(column, "_id"), true
}

func singular(name string) string {
	lower := strings.ToLower(name)
	switch {
	case len(name) <= 1:
		return name
	case strings.HasSuffix(lower, "ies"):
		return name[:len(name)-3] + "y"
	case strings.HasSuffix(lower, "s"):
		return name[:len(name)-1]
	}
	return name
}

func humanize(text string) string {
	if text == "" {
		return ""
	}
	return cases.Title(language.English).String(strings.ReplaceAll(text, "_", " "))
}

func orDefault(value, fallback string) string {
	if value == "" {
		return fallback
	}
	return value
}

func extractColumnForForeignKey(tableName, constraintName string) string {
	prefix := tableName + "_"
	if tableName == "" || !strings.HasPrefix(constraintName, prefix) || !strings.HasSuffix(constraintName, "_fkey") {
		return ""
	}
	return strings.TrimSuffix(strings.TrimPrefix(constraintName, prefix), "_fkey")
}

// extractColumnForUniqueViolation reads the column out of constraint
// names shaped like unique_<table>_<column> or <table>_<column>_key.
func extractColumnForUniqueViolation(constraintName string) string {
	if strings.HasPrefix(constraintName, "unique_") {
		if parts := strings.Split(constraintName, "_"); len(parts) >= 3 {
			return parts[len(parts)-1]
		}
	}

	if matches := uniqueKeyPattern.FindStringSubmatch(constraintName); len(matches) > 1 {
		return matches[1]
	}

	return ""
}

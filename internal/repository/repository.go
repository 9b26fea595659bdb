// Package repository holds the SQL behind every persisted record.
//
// Repositories return errs.ErrNotFound (wrapped) for missing rows and
// leave driver errors untouched so sqlerr can map constraint violations.
package repository

import (
	"fmt"

	"github.com/fitquest/backend/internal/errs"
)

func notFound(entity string, id int) error {
	return fmt.Errorf("%s %d: %w", entity, id, errs.ErrNotFound)
}

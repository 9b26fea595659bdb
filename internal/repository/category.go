package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/fitquest/backend/internal/model"
	"github.com/fitquest/backend/internal/server"
)

type CategoryRepository struct {
	server *server.Server
}

func NewCategoryRepository(s *server.Server) *CategoryRepository {
	return &CategoryRepository{server: s}
}

// FindCategoriesByUser returns the user's categories ordered by id. An
// unknown user yields an empty slice.
func (r *CategoryRepository) FindCategoriesByUser(ctx context.Context, userID int) ([]model.Category, error) {
	stmt := `
		SELECT
			id,
			user_id,
			name,
			created_at,
			updated_at
		FROM
			categories
		WHERE
			user_id = @user_id
		ORDER BY
			id ASC
	`

	rows, err := r.server.DB.Pool.Query(ctx, stmt, pgx.NamedArgs{
		"user_id": userID,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to query categories for user %d: %w", userID, err)
	}

	categories, err := pgx.CollectRows(rows, pgx.RowToStructByName[model.Category])
	if err != nil {
		return nil, fmt.Errorf("failed to collect categories for user %d: %w", userID, err)
	}

	return categories, nil
}

package service

import (
	"context"
	"fmt"

	"github.com/fitquest/backend/internal/lib/optional"
	"github.com/fitquest/backend/internal/middleware"
	"github.com/fitquest/backend/internal/model"
	"github.com/fitquest/backend/internal/server"
)

type CategoryRepository interface {
	FindCategoriesByUser(ctx context.Context, userID int) ([]model.Category, error)
}

type CategoryService struct {
	server       *server.Server
	categoryRepo CategoryRepository
}

func NewCategoryService(s *server.Server, categoryRepo CategoryRepository) *CategoryService {
	return &CategoryService{
		server:       s,
		categoryRepo: categoryRepo,
	}
}

// GetCategoryList returns the user's categories, or None when the user has
// none. Records owned by another user are never returned.
func (s *CategoryService) GetCategoryList(ctx context.Context, userID int) (optional.Optional[[]model.Category], error) {
	categories, err := s.categoryRepo.FindCategoriesByUser(ctx, userID)
	if err != nil {
		return optional.None[[]model.Category](), fmt.Errorf("failed to get categories for user %d: %w", userID, err)
	}

	owned := make([]model.Category, 0, len(categories))
	for _, category := range categories {
		if category.UserID != userID {
			middleware.LoggerFromContext(ctx, s.server.Logger).Warn().
				Int("user_id", userID).
				Int("category_id", category.ID).
				Int("owner_id", category.UserID).
				Msg("dropping category owned by another user")
			continue
		}
		owned = append(owned, category)
	}

	if len(owned) == 0 {
		return optional.None[[]model.Category](), nil
	}

	return optional.Some(owned), nil
}

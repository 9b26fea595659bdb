package repository

import (
	"github.com/fitquest/backend/internal/server"
)

type Repositories struct {
	Category *CategoryRepository
	Article  *ArticleRepository
}

func NewRepositories(s *server.Server) *Repositories {
	return &Repositories{
		Category: NewCategoryRepository(s),
		Article:  NewArticleRepository(s),
	}
}

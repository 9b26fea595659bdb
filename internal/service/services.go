// Package service holds the business rules between handlers and
// repositories. Services never choose HTTP statuses; they return
// sentinel-wrapped or raw errors.
package service

import (
	"github.com/fitquest/backend/internal/lib/job"
	"github.com/fitquest/backend/internal/repository"
	"github.com/fitquest/backend/internal/server"
)

type Services struct {
	Auth     *AuthService
	Job      *job.JobService
	Category *CategoryService
	Article  *ArticleService
}

func NewServices(s *server.Server, repos *repository.Repositories) (*Services, error) {
	authService := NewAuthService(s)

	var notifier ArticleNotifier
	if s.Job != nil {
		notifier = s.Job
	}

	return &Services{
		Job:      s.Job,
		Auth:     authService,
		Category: NewCategoryService(s, repos.Category),
		Article:  NewArticleService(s, repos.Article, notifier),
	}, nil
}

package service

import (
	"context"
	"fmt"

	"github.com/fitquest/backend/internal/middleware"
	"github.com/fitquest/backend/internal/model"
	"github.com/fitquest/backend/internal/server"
)

type ArticleRepository interface {
	CreateArticle(ctx context.Context, userID int, title, content string) (*model.Article, error)
	GetArticleByID(ctx context.Context, id int) (*model.Article, error)
	ListArticles(ctx context.Context, filter model.ArticleFilter) ([]model.Article, int, error)
	UpdateArticle(ctx context.Context, id int, update model.ArticleUpdate) (*model.Article, error)
	DeleteArticle(ctx context.Context, id int) error
}

// ArticleNotifier schedules side effects of a new article.
type ArticleNotifier interface {
	EnqueueArticleCreated(ctx context.Context, articleID, userID int, title string) error
}

type ArticleService struct {
	server      *server.Server
	articleRepo ArticleRepository
	notifier    ArticleNotifier
}

// NewArticleService builds the service. notifier may be nil.
func NewArticleService(s *server.Server, articleRepo ArticleRepository, notifier ArticleNotifier) *ArticleService {
	return &ArticleService{
		server:      s,
		articleRepo: articleRepo,
		notifier:    notifier,
	}
}

// CreateArticle stores the article and queues its notification. A failed
// enqueue is logged and does not fail the create.
func (s *ArticleService) CreateArticle(ctx context.Context, userID int, title, content string) (*model.Article, error) {
	article, err := s.articleRepo.CreateArticle(ctx, userID, title, content)
	if err != nil {
		return nil, fmt.Errorf("failed to create article: %w", err)
	}

	if s.notifier != nil {
		if err := s.notifier.EnqueueArticleCreated(ctx, article.ID, article.UserID, article.Title); err != nil {
			s.server.Metrics.EnqueueFailed()
			middleware.LoggerFromContext(ctx, s.server.Logger).Warn().
				Err(err).
				Int("article_id", article.ID).
				Msg("failed to enqueue article notification")
		}
	}

	return article, nil
}

func (s *ArticleService) GetArticle(ctx context.Context, id int) (*model.Article, error) {
	article, err := s.articleRepo.GetArticleByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get article: %w", err)
	}

	return article, nil
}

func (s *ArticleService) ListArticles(ctx context.Context, filter model.ArticleFilter) (*model.PaginatedResponse[model.Article], error) {
	articles, total, err := s.articleRepo.ListArticles(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list articles: %w", err)
	}

	return model.NewPaginatedResponse(articles, filter.Page, filter.Limit, total), nil
}

func (s *ArticleService) UpdateArticle(ctx context.Context, id int, update model.ArticleUpdate) (*model.Article, error) {
	article, err := s.articleRepo.UpdateArticle(ctx, id, update)
	if err != nil {
		return nil, fmt.Errorf("failed to update article: %w", err)
	}

	return article, nil
}

func (s *ArticleService) DeleteArticle(ctx context.Context, id int) error {
	if err := s.articleRepo.DeleteArticle(ctx, id); err != nil {
		return fmt.Errorf("failed to delete article: %w", err)
	}

	return nil
}

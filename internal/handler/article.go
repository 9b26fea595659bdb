package handler

import (
	"github.com/labstack/echo/v4"

	"github.com/fitquest/backend/internal/model"
	"github.com/fitquest/backend/internal/server"
	"github.com/fitquest/backend/internal/service"
	"github.com/fitquest/backend/internal/validation"
)

const (
	defaultPage  = 1
	defaultLimit = 20
)

type CreateArticleRequest struct {
	UserID  int    `json:"userId" validate:"required,min=1,max=2147483647"`
	Title   string `json:"title" validate:"required,notblank,max=255"`
	Content string `json:"content" validate:"required,notblank"`
}

func (r *CreateArticleRequest) Validate() error {
	return validation.Validator().Struct(r)
}

type ListArticlesRequest struct {
	Page   int `query:"page" json:"-" validate:"omitempty,min=1,max=1000000"`
	Limit  int `query:"limit" json:"-" validate:"omitempty,min=1,max=100"`
	UserID int `query:"user_id" json:"-" validate:"omitempty,min=1,max=2147483647"`
}

func (r *ListArticlesRequest) Validate() error {
	return validation.Validator().Struct(r)
}

func (r *ListArticlesRequest) filter() model.ArticleFilter {
	filter := model.ArticleFilter{Page: r.Page, Limit: r.Limit}
	if filter.Page == 0 {
		filter.Page = defaultPage
	}
	if filter.Limit == 0 {
		filter.Limit = defaultLimit
	}
	if r.UserID != 0 {
		userID := r.UserID
		filter.UserID = &userID
	}
	return filter
}

type ArticleIDRequest struct {
	ID int `param:"id" json:"-" validate:"required,min=1,max=2147483647"`
}

func (r *ArticleIDRequest) Validate() error {
	return validation.Validator().Struct(r)
}

type UpdateArticleRequest struct {
	ID      int     `param:"id" json:"-" validate:"required,min=1,max=2147483647"`
	Title   *string `json:"title" validate:"omitempty,notblank,max=255"`
	Content *string `json:"content" validate:"omitempty,notblank"`
}

func (r *UpdateArticleRequest) Validate() error {
	if err := validation.Validator().Struct(r); err != nil {
		return err
	}

	if r.Title == nil && r.Content == nil {
		return validation.CustomValidationErrors{
			{Field: "body", Message: "at least one of title or content is required"},
		}
	}

	return nil
}

type ArticleHandler struct {
	Handler
	articleService *service.ArticleService
}

func NewArticleHandler(s *server.Server, articleService *service.ArticleService) *ArticleHandler {
	return &ArticleHandler{
		Handler:        NewHandler(s),
		articleService: articleService,
	}
}

func (h *ArticleHandler) CreateArticle(c echo.Context, req *CreateArticleRequest) (*model.Article, error) {
	return h.articleService.CreateArticle(c.Request().Context(), req.UserID, req.Title, req.Content)
}

func (h *ArticleHandler) ListArticles(c echo.Context, req *ListArticlesRequest) (*model.PaginatedResponse[model.Article], error) {
	return h.articleService.ListArticles(c.Request().Context(), req.filter())
}

func (h *ArticleHandler) GetArticle(c echo.Context, req *ArticleIDRequest) (*model.Article, error) {
	return h.articleService.GetArticle(c.Request().Context(), req.ID)
}

func (h *ArticleHandler) UpdateArticle(c echo.Context, req *UpdateArticleRequest) (*model.Article, error) {
	return h.articleService.UpdateArticle(c.Request().Context(), req.ID, model.ArticleUpdate{
		Title:   req.Title,
		Content: req.Content,
	})
}

func (h *ArticleHandler) DeleteArticle(c echo.Context, req *ArticleIDRequest) error {
	return h.articleService.DeleteArticle(c.Request().Context(), req.ID)
}

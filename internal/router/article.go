package router

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/fitquest/backend/internal/handler"
)

// registerArticleRoutes mounts the article CRUD. guards apply to the
// routes that modify articles.
func registerArticleRoutes(api *echo.Group, h *handler.Handlers, guards ...echo.MiddlewareFunc) {
	article := api.Group("/article")

	article.GET("", handler.Handle(
		h.Article.Handler,
		h.Article.ListArticles,
		http.StatusOK,
		&handler.ListArticlesRequest{},
	))

	article.GET("/:id", handler.Handle(
		h.Article.Handler,
		h.Article.GetArticle,
		http.StatusOK,
		&handler.ArticleIDRequest{},
	))

	article.POST("", handler.Handle(
		h.Article.Handler,
		h.Article.CreateArticle,
		http.StatusCreated,
		&handler.CreateArticleRequest{},
	), guards...)

	article.PUT("/:id", handler.Handle(
		h.Article.Handler,
		h.Article.UpdateArticle,
		http.StatusOK,
		&handler.UpdateArticleRequest{},
	), guards...)

	article.DELETE("/:id", handler.HandleNoContent(
		h.Article.Handler,
		h.Article.DeleteArticle,
		http.StatusNoContent,
		&handler.ArticleIDRequest{},
	), guards...)
}

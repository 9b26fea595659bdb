package handler

import (
	"github.com/fitquest/backend/internal/server"
	"github.com/fitquest/backend/internal/service"
)

type Handlers struct {
	Health   *HealthHandler
	OpenAPI  *OpenAPIHandler
	Category *CategoryHandler
	Article  *ArticleHandler
}

func NewHandlers(s *server.Server, services *service.Services) *Handlers {
	return &Handlers{
		Health:   NewHealthHandler(s),
		OpenAPI:  NewOpenAPIHandler(s),
		Category: NewCategoryHandler(s, services.Category),
		Article:  NewArticleHandler(s, services.Article),
	}
}

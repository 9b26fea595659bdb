// Package router builds the echo instance: middleware order, error
// handler and every route group.
package router

import (
	"github.com/labstack/echo/v4"

	"github.com/fitquest/backend/internal/handler"
	"github.com/fitquest/backend/internal/middleware"
	"github.com/fitquest/backend/internal/server"
	"github.com/fitquest/backend/internal/service"
)

func NewRouter(s *server.Server, h *handler.Handlers, services *service.Services) *echo.Echo {
	middlewares := middleware.NewMiddlewares(s)

	router := echo.New()
	router.HideBanner = true
	router.HidePort = true

	router.HTTPErrorHandler = middlewares.Global.GlobalErrorHandler

	router.Use(
		middlewares.Global.CORS(),
		middlewares.Global.Secure(),
		middleware.RequestID(),
		middlewares.Tracing.NewRelicMiddleware(),
		middlewares.Tracing.EnhanceTracing(),
		middlewares.ContextEnhancer.EnhanceContext(),
		middlewares.Global.RequestLogger(),
		middlewares.Metrics.Observe(),
		middlewares.RateLimit.Limit(),
		middlewares.Global.Recover(),
	)

	registerSystemRoutes(router, h, s)

	api := router.Group("/api")
	registerCategoryRoutes(api, h)

	var writeGuards []echo.MiddlewareFunc
	if services.Auth.Enabled() {
		writeGuards = append(writeGuards, middlewares.Auth.RequireAuth)
	}
	registerArticleRoutes(api, h, writeGuards...)

	return router
}

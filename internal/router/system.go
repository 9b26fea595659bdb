package router

import (
	"github.com/labstack/echo/v4"

	"github.com/fitquest/backend/internal/handler"
	"github.com/fitquest/backend/internal/server"
	"github.com/fitquest/backend/static"
)

func registerSystemRoutes(r *echo.Echo, h *handler.Handlers, s *server.Server) {
	r.GET("/status", h.Health.CheckHealth)
	r.GET("/metrics", echo.WrapHandler(s.Metrics.Handler()))
	r.StaticFS("/static", static.FS)
	r.GET("/docs", h.OpenAPI.ServeOpenAPIUI)
}

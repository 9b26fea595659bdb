package router

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/fitquest/backend/internal/handler"
)

func registerCategoryRoutes(api *echo.Group, h *handler.Handlers) {
	category := api.Group("/category")

	category.GET("/:userId", handler.Handle(
		h.Category.Handler,
		h.Category.GetCategoryList,
		http.StatusOK,
		&handler.GetCategoryListRequest{},
	))
}

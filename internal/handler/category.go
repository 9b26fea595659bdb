package handler

import (
	"github.com/labstack/echo/v4"

	"github.com/fitquest/backend/internal/errs"
	"github.com/fitquest/backend/internal/model"
	"github.com/fitquest/backend/internal/server"
	"github.com/fitquest/backend/internal/service"
	"github.com/fitquest/backend/internal/validation"
)

type GetCategoryListRequest struct {
	UserID int `param:"userId" json:"-" validate:"required,min=1,max=2147483647"`
}

func (r *GetCategoryListRequest) Validate() error {
	return validation.Validator().Struct(r)
}

type CategoryHandler struct {
	Handler
	categoryService *service.CategoryService
}

func NewCategoryHandler(s *server.Server, categoryService *service.CategoryService) *CategoryHandler {
	return &CategoryHandler{
		Handler:         NewHandler(s),
		categoryService: categoryService,
	}
}

// GetCategoryList answers 200 with the user's categories, or 404 with an
// empty body when the user has none.
func (h *CategoryHandler) GetCategoryList(c echo.Context, req *GetCategoryListRequest) ([]model.Category, error) {
	result, err := h.categoryService.GetCategoryList(c.Request().Context(), req.UserID)
	if err != nil {
		return nil, err
	}

	categories, ok := result.Get()
	if !ok {
		return nil, errs.NewEmptyNotFoundError()
	}

	return categories, nil
}

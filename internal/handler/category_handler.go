package handler

import (
	"errors"
	"net/http"

	"github.com/centavo/centavo-backend/internal/domain"
	"github.com/centavo/centavo-backend/internal/middleware"
	"github.com/centavo/centavo-backend/internal/service"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog/log"
)

// CategoryHandler handles category-related HTTP requests
type CategoryHandler struct {
	categoryService *service.CategoryService
}

// NewCategoryHandler creates a new CategoryHandler
func NewCategoryHandler(categoryService *service.CategoryService) *CategoryHandler {
	return &CategoryHandler{categoryService: categoryService}
}

// CreateCategoryRequest represents the create category request body
type CreateCategoryRequest struct {
	Name  string `json:"name"`
	Icon  string `json:"icon"`
	Color string `json:"color"`
	Type  string `json:"type"`
}

// CategoryResponse represents a category in API responses
type CategoryResponse struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Icon   string `json:"icon"`
	Color  string `json:"color"`
	Type   string `json:"type"`
	Global bool   `json:"global"`
}

func toCategoryResponse(c *domain.Category) CategoryResponse {
	return CategoryResponse{
		ID:     c.ID.String(),
		Name:   c.Name,
		Icon:   domain.ResolveIcon(c.Icon),
		Color:  c.Color,
		Type:   string(c.Type),
		Global: false,
	}
}

func toGlobalCategoryResponse(c *domain.GlobalCategory) CategoryResponse {
	return CategoryResponse{
		ID:     c.ID.String(),
		Name:   c.Name,
		Icon:   domain.ResolveIcon(c.Icon),
		Color:  c.Color,
		Type:   string(c.Type),
		Global: true,
	}
}

// CreateCategory godoc
// @Summary Create a category
// @Description Create a new personal category with an icon and palette color
// @Tags categories
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body CreateCategoryRequest true "Category creation request"
// @Success 201 {object} CategoryResponse
// @Failure 400 {object} ProblemDetails
// @Failure 401 {object} ProblemDetails
// @Router /categories [post]
func (h *CategoryHandler) CreateCategory(c echo.Context) error {
	userID := middleware.GetUserID(c)
	if userID == uuid.Nil {
		return NewUnauthorizedError(c, "Authentication required")
	}

	var req CreateCategoryRequest
	if err := c.Bind(&req); err != nil {
		return NewValidationError(c, "Invalid request body", nil)
	}

	created, err := h.categoryService.CreateCategory(userID, service.CreateCategoryInput{
		Name:  req.Name,
		Icon:  req.Icon,
		Color: req.Color,
		Type:  domain.TransactionType(req.Type),
	})
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrNameRequired):
			return NewValidationError(c, "Validation failed", []ValidationError{
				{Field: "name", Message: "Name is required"},
			})
		case errors.Is(err, domain.ErrNameTooLong):
			return NewValidationError(c, "Validation failed", []ValidationError{
				{Field: "name", Message: "Name is too long"},
			})
		case errors.Is(err, domain.ErrInvalidType):
			return NewValidationError(c, "Validation failed", []ValidationError{
				{Field: "type", Message: "Type must be income or expense"},
			})
		case errors.Is(err, domain.ErrInvalidIcon):
			return NewValidationError(c, "Validation failed", []ValidationError{
				{Field: "icon", Message: "Icon is not a known identifier"},
			})
		case errors.Is(err, domain.ErrInvalidColor):
			return NewValidationError(c, "Validation failed", []ValidationError{
				{Field: "color", Message: "Color is not in the palette"},
			})
		}
		log.Error().Err(err).Str("user_id", userID.String()).Msg("Failed to create category")
		return NewInternalError(c, "Failed to create category")
	}

	return c.JSON(http.StatusCreated, toCategoryResponse(created))
}

// GetCategories godoc
// @Summary List the user's categories
// @Tags categories
// @Produce json
// @Security BearerAuth
// @Success 200 {array} CategoryResponse
// @Failure 401 {object} ProblemDetails
// @Router /categories [get]
func (h *CategoryHandler) GetCategories(c echo.Context) error {
	userID := middleware.GetUserID(c)
	if userID == uuid.Nil {
		return NewUnauthorizedError(c, "Authentication required")
	}

	categories, err := h.categoryService.GetCategories(userID)
	if err != nil {
		log.Error().Err(err).Str("user_id", userID.String()).Msg("Failed to list categories")
		return NewInternalError(c, "Failed to list categories")
	}

	response := make([]CategoryResponse, 0, len(categories))
	for _, category := range categories {
		response = append(response, toCategoryResponse(category))
	}
	return c.JSON(http.StatusOK, response)
}

// GetGlobalCategories godoc
// @Summary List the shared categories available to everyone
// @Tags categories
// @Produce json
// @Security BearerAuth
// @Success 200 {array} CategoryResponse
// @Router /categories/global [get]
func (h *CategoryHandler) GetGlobalCategories(c echo.Context) error {
	categories, err := h.categoryService.GetGlobalCategories()
	if err != nil {
		log.Error().Err(err).Msg("Failed to list global categories")
		return NewInternalError(c, "Failed to list global categories")
	}

	response := make([]CategoryResponse, 0, len(categories))
	for _, category := range categories {
		response = append(response, toGlobalCategoryResponse(category))
	}
	return c.JSON(http.StatusOK, response)
}

// DeleteCategory godoc
// @Summary Delete a category
// @Description Delete one of the user's categories. Fails with 409 if transactions still reference it.
// @Tags categories
// @Produce json
// @Security BearerAuth
// @Param id path string true "Category ID"
// @Success 204
// @Failure 401 {object} ProblemDetails
// @Failure 404 {object} ProblemDetails
// @Failure 409 {object} ProblemDetails
// @Router /categories/{id} [delete]
func (h *CategoryHandler) DeleteCategory(c echo.Context) error {
	userID := middleware.GetUserID(c)
	if userID == uuid.Nil {
		return NewUnauthorizedError(c, "Authentication required")
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return NewValidationError(c, "Invalid category ID", nil)
	}

	if err := h.categoryService.DeleteCategory(userID, id); err != nil {
		switch {
		case errors.Is(err, domain.ErrCategoryNotFound):
			return NewNotFoundError(c, "Category not found")
		case errors.Is(err, domain.ErrCategoryInUse):
			return NewConflictError(c, "No se puede eliminar la categoría porque tiene transacciones asociadas")
		}
		log.Error().Err(err).Str("user_id", userID.String()).Str("category_id", id.String()).Msg("Failed to delete category")
		return NewInternalError(c, "Failed to delete category")
	}

	return c.NoContent(http.StatusNoContent)
}

package handler

import (
	"errors"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog/log"

	"github.com/oatside/gala/gala-backend/internal/domain"
	"github.com/oatside/gala/gala-backend/internal/service"
)

// CategoryHandler handles category-related HTTP requests
type CategoryHandler struct {
	categoryService *service.CategoryService
}

// NewCategoryHandler creates a new CategoryHandler
func NewCategoryHandler(categoryService *service.CategoryService) *CategoryHandler {
	return &CategoryHandler{categoryService: categoryService}
}

// CreateCategoriesRequest is a batch of categories to create under an event.
// The event creation form submits its category rows in one call.
type CreateCategoriesRequest struct {
	Categories []CategoryRequest `json:"categories"`
}

// CategoryRequest represents a single category in the batch
type CategoryRequest struct {
	Name string `json:"name"`
	Type string `json:"type"`
}

// CategoryResponse represents a category in API responses
type CategoryResponse struct {
	ID        string `json:"id"`
	EventID   string `json:"eventId"`
	Name      string `json:"name"`
	Type      string `json:"type"`
	CreatedAt string `json:"createdAt"`
}

// CreateCategories handles POST /api/v1/events/:id/categories
func (h *CategoryHandler) CreateCategories(c echo.Context) error {
	eventID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return NewValidationError(c, "Invalid event ID", nil)
	}

	var req CreateCategoriesRequest
	if err := c.Bind(&req); err != nil {
		return NewValidationError(c, "Invalid request body", nil)
	}
	if len(req.Categories) == 0 {
		return NewValidationError(c, "At least one category is required", nil)
	}

	inputs := make([]service.CategoryInput, len(req.Categories))
	for i, cat := range req.Categories {
		inputs[i] = service.CategoryInput{
			Name: cat.Name,
			Type: domain.CategoryType(cat.Type),
		}
	}

	categories, err := h.categoryService.CreateCategories(eventID, inputs)
	if err != nil {
		if errors.Is(err, domain.ErrEventNotFound) {
			return NewNotFoundError(c, "Event not found")
		}
		if errors.Is(err, domain.ErrNameRequired) {
			return NewValidationError(c, "Validation failed", []ValidationError{
				{Field: "name", Message: "Name is required"},
			})
		}
		if errors.Is(err, domain.ErrNameTooLong) {
			return NewValidationError(c, "Validation failed", []ValidationError{
				{Field: "name", Message: "Name must be 255 characters or less"},
			})
		}
		if errors.Is(err, domain.ErrInvalidCategoryType) {
			return NewValidationError(c, "Validation failed", []ValidationError{
				{Field: "type", Message: "Type must be Income or Expense"},
			})
		}
		log.Error().Err(err).Str("event_id", eventID.String()).Msg("Failed to create categories")
		return NewInternalError(c, "Failed to create categories")
	}

	log.Info().Str("event_id", eventID.String()).Int("count", len(categories)).Msg("Categories created")

	response := make([]CategoryResponse, len(categories))
	for i, cat := range categories {
		response[i] = toCategoryResponse(cat)
	}
	return c.JSON(http.StatusCreated, response)
}

// GetCategories handles GET /api/v1/events/:id/categories
func (h *CategoryHandler) GetCategories(c echo.Context) error {
	eventID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return NewValidationError(c, "Invalid event ID", nil)
	}

	categories, err := h.categoryService.GetCategories(eventID)
	if err != nil {
		if errors.Is(err, domain.ErrEventNotFound) {
			return NewNotFoundError(c, "Event not found")
		}
		log.Error().Err(err).Str("event_id", eventID.String()).Msg("Failed to get categories")
		return NewInternalError(c, "Failed to get categories")
	}

	response := make([]CategoryResponse, len(categories))
	for i, cat := range categories {
		response[i] = toCategoryResponse(cat)
	}
	return c.JSON(http.StatusOK, response)
}

// DeleteCategory handles DELETE /api/v1/categories/:id. Entries assigned to
// the category are kept and become unclassified.
func (h *CategoryHandler) DeleteCategory(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return NewValidationError(c, "Invalid category ID", nil)
	}

	if err := h.categoryService.DeleteCategory(id); err != nil {
		if errors.Is(err, domain.ErrCategoryNotFound) {
			return NewNotFoundError(c, "Category not found")
		}
		log.Error().Err(err).Str("category_id", id.String()).Msg("Failed to delete category")
		return NewInternalError(c, "Failed to delete category")
	}

	log.Info().Str("category_id", id.String()).Msg("Category deleted")
	return c.NoContent(http.StatusNoContent)
}

// Helper function to convert domain.Category to CategoryResponse
func toCategoryResponse(category *domain.Category) CategoryResponse {
	return CategoryResponse{
		ID:        category.ID.String(),
		EventID:   category.EventID.String(),
		Name:      category.Name,
		Type:      string(category.Type),
		CreatedAt: category.CreatedAt.Format(time.RFC3339),
	}
}

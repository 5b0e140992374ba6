package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/eftah/restaurant-service/internal/api/dto"
	"github.com/eftah/restaurant-service/internal/domain"
	"github.com/eftah/restaurant-service/internal/service"
	apperrors "github.com/eftah/restaurant-service/pkg/util"
)

// CategoryHandler exposes category reads and admin mutations.
type CategoryHandler struct {
	content *service.ContentService
}

// NewCategoryHandler constructs handler.
func NewCategoryHandler(content *service.ContentService) *CategoryHandler {
	return &CategoryHandler{content: content}
}

// List handles GET /api/categories.
func (h *CategoryHandler) List(c *fiber.Ctx) error {
	categories, err := h.content.ListCategories(c.UserContext())
	if err != nil {
		return err
	}

	result := make([]dto.CategoryResponse, 0, len(categories))
	for i := range categories {
		result = append(result, dto.NewCategoryResponse(&categories[i]))
	}
	return c.JSON(result)
}

// Create handles POST /api/categories.
func (h *CategoryHandler) Create(c *fiber.Ctx) error {
	var req dto.CategoryRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	category := &domain.Category{
		Name:        req.Name,
		Slug:        req.Slug,
		Description: req.Description,
	}
	if err := h.content.CreateCategory(c.UserContext(), category); err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(dto.NewCategoryResponse(category))
}

// Update handles PUT /api/categories/:id.
func (h *CategoryHandler) Update(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}

	var req dto.CategoryRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	category := &domain.Category{
		ID:          id,
		Name:        req.Name,
		Slug:        req.Slug,
		Description: req.Description,
	}
	if err := h.content.UpdateCategory(c.UserContext(), category); err != nil {
		return err
	}
	return c.JSON(dto.NewCategoryResponse(category))
}

// Delete handles DELETE /api/categories/:id.
func (h *CategoryHandler) Delete(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}
	if err := h.content.DeleteCategory(c.UserContext(), id); err != nil {
		return err
	}
	return c.SendStatus(http.StatusNoContent)
}

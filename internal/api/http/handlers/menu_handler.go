package handlers

import (
	"net/http"
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/eftah/restaurant-service/internal/api/dto"
	"github.com/eftah/restaurant-service/internal/domain"
	"github.com/eftah/restaurant-service/internal/service"
	apperrors "github.com/eftah/restaurant-service/pkg/util"
)

// MenuHandler exposes public menu reads and admin menu mutations.
type MenuHandler struct {
	content *service.ContentService
}

// NewMenuHandler constructs handler.
func NewMenuHandler(content *service.ContentService) *MenuHandler {
	return &MenuHandler{content: content}
}

// List handles GET /api/menu?category=slug.
func (h *MenuHandler) List(c *fiber.Ctx) error {
	items, err := h.content.ListMenu(c.UserContext(), c.Query("category"))
	if err != nil {
		return err
	}
	return c.JSON(dto.NewMenuItemResponses(items))
}

// Get handles GET /api/menu/:id.
func (h *MenuHandler) Get(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}
	item, err := h.content.GetMenuItem(c.UserContext(), id)
	if err != nil {
		return err
	}
	return c.JSON(dto.NewMenuItemResponse(item))
}

// Create handles POST /api/menu.
func (h *MenuHandler) Create(c *fiber.Ctx) error {
	var req dto.MenuItemRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	item := menuItemFromRequest(req)
	if err := h.content.CreateMenuItem(c.UserContext(), item); err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(dto.NewMenuItemResponse(item))
}

// Update handles PUT /api/menu/:id.
func (h *MenuHandler) Update(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}

	var req dto.MenuItemRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	item := menuItemFromRequest(req)
	item.ID = id
	if err := h.content.UpdateMenuItem(c.UserContext(), item); err != nil {
		return err
	}
	return c.JSON(dto.NewMenuItemResponse(item))
}

// Delete handles DELETE /api/menu/:id.
func (h *MenuHandler) Delete(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}
	if err := h.content.DeleteMenuItem(c.UserContext(), id); err != nil {
		return err
	}
	return c.SendStatus(http.StatusNoContent)
}

func menuItemFromRequest(req dto.MenuItemRequest) *domain.MenuItem {
	return &domain.MenuItem{
		Name:        req.Name,
		Slug:        req.Slug,
		Price:       req.Price,
		Description: req.Description,
		Image:       req.Image,
		IsPopular:   req.IsPopular,
		IsAvailable: req.IsAvailable,
		CategoryID:  req.CategoryID,
	}
}

func parseID(c *fiber.Ctx) (int64, error) {
	id, err := strconv.ParseInt(c.Params("id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, apperrors.NewValidationError("invalid id", nil)
	}
	return id, nil
}

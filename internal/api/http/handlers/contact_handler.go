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

// ContactHandler exposes the public contact form and the admin inbox.
type ContactHandler struct {
	messages *service.MessageService
}

// NewContactHandler constructs handler.
func NewContactHandler(messages *service.MessageService) *ContactHandler {
	return &ContactHandler{messages: messages}
}

// Submit handles POST /api/contact. Rate limited per client IP.
func (h *ContactHandler) Submit(c *fiber.Ctx) error {
	var req dto.ContactRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	message := &domain.Message{
		Name:  req.Name,
		Email: req.Email,
		Phone: req.Phone,
		Body:  req.Message,
	}
	if err := h.messages.Submit(c.UserContext(), message, c.IP()); err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(dto.NewMessageResponse(message))
}

// List handles GET /api/contact?page=&limit= for the admin inbox.
func (h *ContactHandler) List(c *fiber.Ctx) error {
	page, _ := strconv.Atoi(c.Query("page", "1"))
	limit, _ := strconv.Atoi(c.Query("limit", "10"))

	messages, total, err := h.messages.List(c.UserContext(), page, limit)
	if err != nil {
		return err
	}

	result := dto.MessageListResponse{
		Messages: make([]dto.MessageResponse, 0, len(messages)),
		Total:    total,
	}
	for i := range messages {
		result.Messages = append(result.Messages, dto.NewMessageResponse(&messages[i]))
	}
	return c.JSON(result)
}

// Delete handles DELETE /api/contact/:id.
func (h *ContactHandler) Delete(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}
	if err := h.messages.Delete(c.UserContext(), id); err != nil {
		return err
	}
	return c.SendStatus(http.StatusNoContent)
}

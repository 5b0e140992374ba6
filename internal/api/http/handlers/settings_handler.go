package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/eftah/restaurant-service/internal/api/dto"
	"github.com/eftah/restaurant-service/internal/domain"
	"github.com/eftah/restaurant-service/internal/service"
	apperrors "github.com/eftah/restaurant-service/pkg/util"
)

// SettingsHandler exposes hero, business hours, contact info and social
// links. Reads are public; mutations sit behind the admin gate.
type SettingsHandler struct {
	content *service.ContentService
}

// NewSettingsHandler constructs handler.
func NewSettingsHandler(content *service.ContentService) *SettingsHandler {
	return &SettingsHandler{content: content}
}

// GetHero handles GET /api/hero.
func (h *SettingsHandler) GetHero(c *fiber.Ctx) error {
	hero, err := h.content.GetHero(c.UserContext())
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{
		"title":    hero.Title,
		"subtitle": hero.Subtitle,
		"image":    hero.Image,
	})
}

// UpdateHero handles PUT /api/hero.
func (h *SettingsHandler) UpdateHero(c *fiber.Ctx) error {
	var req dto.HeroRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	hero := &domain.HeroContent{
		Title:    req.Title,
		Subtitle: req.Subtitle,
		Image:    req.Image,
	}
	if err := h.content.UpdateHero(c.UserContext(), hero); err != nil {
		return err
	}
	return c.JSON(fiber.Map{
		"title":    hero.Title,
		"subtitle": hero.Subtitle,
		"image":    hero.Image,
	})
}

// GetHours handles GET /api/business-hours.
func (h *SettingsHandler) GetHours(c *fiber.Ctx) error {
	hours, err := h.content.ListHours(c.UserContext())
	if err != nil {
		return err
	}

	result := make([]dto.BusinessHoursEntry, 0, len(hours))
	for _, hour := range hours {
		result = append(result, dto.BusinessHoursEntry{
			Weekday:  hour.Weekday,
			Open:     hour.Open,
			Close:    hour.Close,
			IsClosed: hour.IsClosed,
		})
	}
	return c.JSON(result)
}

// UpdateHours handles PUT /api/settings/hours.
func (h *SettingsHandler) UpdateHours(c *fiber.Ctx) error {
	var req []dto.BusinessHoursEntry
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	hours := make([]domain.BusinessHours, 0, len(req))
	for _, entry := range req {
		hours = append(hours, domain.BusinessHours{
			Weekday:  entry.Weekday,
			Open:     entry.Open,
			Close:    entry.Close,
			IsClosed: entry.IsClosed,
		})
	}
	if err := h.content.UpdateHours(c.UserContext(), hours); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"message": "hours updated"})
}

// GetContactInfo handles GET /api/contact-info.
func (h *SettingsHandler) GetContactInfo(c *fiber.Ctx) error {
	info, err := h.content.GetContactInfo(c.UserContext())
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{
		"name":        info.Name,
		"description": info.Description,
		"address":     info.Address,
		"phone1":      info.Phone1,
		"phone2":      info.Phone2,
		"email":       info.Email,
	})
}

// UpdateContactInfo handles PUT /api/settings/contact.
func (h *SettingsHandler) UpdateContactInfo(c *fiber.Ctx) error {
	var req dto.ContactInfoRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	info := &domain.ContactInfo{
		Name:        req.Name,
		Description: req.Description,
		Address:     req.Address,
		Phone1:      req.Phone1,
		Phone2:      req.Phone2,
		Email:       req.Email,
	}
	if err := h.content.UpdateContactInfo(c.UserContext(), info); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"message": "contact info updated"})
}

// GetSocialLinks handles GET /api/social.
func (h *SettingsHandler) GetSocialLinks(c *fiber.Ctx) error {
	links, err := h.content.GetSocialLinks(c.UserContext())
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{
		"facebook":  links.Facebook,
		"instagram": links.Instagram,
		"twitter":   links.Twitter,
	})
}

// UpdateSocialLinks handles PUT /api/settings/social.
func (h *SettingsHandler) UpdateSocialLinks(c *fiber.Ctx) error {
	var req dto.SocialLinksRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	links := &domain.SocialLinks{
		Facebook:  req.Facebook,
		Instagram: req.Instagram,
		Twitter:   req.Twitter,
	}
	if err := h.content.UpdateSocialLinks(c.UserContext(), links); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"message": "social links updated"})
}

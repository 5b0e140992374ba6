package dto

import (
	"time"

	"github.com/eftah/restaurant-service/internal/domain"
)

// CategoryRequest payload for category create/update.
type CategoryRequest struct {
	Name        string  `json:"name"`
	Slug        string  `json:"slug"`
	Description *string `json:"description"`
}

// CategoryResponse mirrors a category for API consumers.
type CategoryResponse struct {
	ID          int64   `json:"id"`
	Name        string  `json:"name"`
	Slug        string  `json:"slug"`
	Description *string `json:"description,omitempty"`
}

// MenuItemRequest payload for menu item create/update.
type MenuItemRequest struct {
	Name        string  `json:"name"`
	Slug        string  `json:"slug"`
	Price       float64 `json:"price"`
	Description *string `json:"description"`
	Image       string  `json:"image"`
	IsPopular   bool    `json:"isPopular"`
	IsAvailable bool    `json:"isAvailable"`
	CategoryID  int64   `json:"categoryId"`
}

// MenuItemResponse mirrors a menu item, embedding its category.
type MenuItemResponse struct {
	ID          int64             `json:"id"`
	Name        string            `json:"name"`
	Slug        string            `json:"slug"`
	Price       float64           `json:"price"`
	Description *string           `json:"description,omitempty"`
	Image       string            `json:"image"`
	IsPopular   bool              `json:"isPopular"`
	IsAvailable bool              `json:"isAvailable"`
	CategoryID  int64             `json:"categoryId"`
	Category    *CategoryResponse `json:"category,omitempty"`
	CreatedAt   time.Time         `json:"createdAt"`
}

// HeroRequest payload for the hero section.
type HeroRequest struct {
	Title    string  `json:"title"`
	Subtitle *string `json:"subtitle"`
	Image    string  `json:"image"`
}

// BusinessHoursEntry one weekday of opening hours.
type BusinessHoursEntry struct {
	Weekday  int    `json:"weekday"`
	Open     string `json:"open"`
	Close    string `json:"close"`
	IsClosed bool   `json:"isClosed"`
}

// ContactInfoRequest payload for the business profile.
type ContactInfoRequest struct {
	Name        string  `json:"name"`
	Description *string `json:"description"`
	Address     string  `json:"address"`
	Phone1      string  `json:"phone1"`
	Phone2      *string `json:"phone2"`
	Email       string  `json:"email"`
}

// SocialLinksRequest payload for footer social profiles.
type SocialLinksRequest struct {
	Facebook  *string `json:"facebook"`
	Instagram *string `json:"instagram"`
	Twitter   *string `json:"twitter"`
}

// NewCategoryResponse maps a domain category.
func NewCategoryResponse(c *domain.Category) CategoryResponse {
	return CategoryResponse{
		ID:          c.ID,
		Name:        c.Name,
		Slug:        c.Slug,
		Description: c.Description,
	}
}

// NewMenuItemResponse maps a domain menu item.
func NewMenuItemResponse(item *domain.MenuItem) MenuItemResponse {
	resp := MenuItemResponse{
		ID:          item.ID,
		Name:        item.Name,
		Slug:        item.Slug,
		Price:       item.Price,
		Description: item.Description,
		Image:       item.Image,
		IsPopular:   item.IsPopular,
		IsAvailable: item.IsAvailable,
		CategoryID:  item.CategoryID,
		CreatedAt:   item.CreatedAt,
	}
	if item.Category != nil {
		category := NewCategoryResponse(item.Category)
		resp.Category = &category
	}
	return resp
}

// NewMenuItemResponses maps a listing.
func NewMenuItemResponses(items []domain.MenuItem) []MenuItemResponse {
	result := make([]MenuItemResponse, 0, len(items))
	for i := range items {
		result = append(result, NewMenuItemResponse(&items[i]))
	}
	return result
}

package service

import (
	"context"
	"errors"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/eftah/restaurant-service/internal/cache"
	"github.com/eftah/restaurant-service/internal/domain"
	"github.com/eftah/restaurant-service/internal/events"
	"github.com/eftah/restaurant-service/internal/repository"
	apperrors "github.com/eftah/restaurant-service/pkg/util"
)

// ContentService orchestrates all content entities: categories, menu items,
// hero copy, business hours, contact info and social links.
type ContentService struct {
	categories repository.CategoryRepository
	menu       repository.MenuItemRepository
	hero       repository.HeroRepository
	settings   repository.SettingsRepository
	menuCache  *cache.MenuCache
	dispatcher events.Dispatcher
}

// ContentDependencies encapsulates repo requirements for the content service.
type ContentDependencies struct {
	CategoryRepo repository.CategoryRepository
	MenuRepo     repository.MenuItemRepository
	HeroRepo     repository.HeroRepository
	SettingsRepo repository.SettingsRepository
	MenuCache    *cache.MenuCache
	Dispatcher   events.Dispatcher
}

// NewContentService builds the service.
func NewContentService(deps ContentDependencies) *ContentService {
	return &ContentService{
		categories: deps.CategoryRepo,
		menu:       deps.MenuRepo,
		hero:       deps.HeroRepo,
		settings:   deps.SettingsRepo,
		menuCache:  deps.MenuCache,
		dispatcher: deps.Dispatcher,
	}
}

// ListMenu returns menu items, optionally filtered by category slug, serving
// from cache when possible.
func (s *ContentService) ListMenu(ctx context.Context, categorySlug string) ([]domain.MenuItem, error) {
	var cached []domain.MenuItem
	if s.menuCache.Get(ctx, categorySlug, &cached) {
		return cached, nil
	}

	items, err := s.menu.List(ctx, repository.MenuItemFilter{CategorySlug: categorySlug})
	if err != nil {
		return nil, err
	}
	s.menuCache.Set(ctx, categorySlug, items)
	return items, nil
}

// GetMenuItem fetches one item.
func (s *ContentService) GetMenuItem(ctx context.Context, id int64) (*domain.MenuItem, error) {
	item, err := s.menu.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("menu item", nil)
		}
		return nil, err
	}
	return item, nil
}

// CreateMenuItem validates and persists a new item.
func (s *ContentService) CreateMenuItem(ctx context.Context, item *domain.MenuItem) error {
	if item.Name == "" {
		return apperrors.NewValidationError("name is required", nil)
	}
	if item.Price < 0 {
		return apperrors.NewValidationError("price must not be negative", nil)
	}
	if item.CategoryID == 0 {
		return apperrors.NewValidationError("category is required", nil)
	}
	if _, err := s.categories.GetByID(ctx, item.CategoryID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.NewValidationError("unknown category", nil)
		}
		return err
	}
	if item.Slug == "" {
		item.Slug = Slugify(item.Name)
	}

	if err := s.menu.Create(ctx, item); err != nil {
		return err
	}

	s.menuCache.Invalidate(ctx)
	_ = s.dispatcher.Publish(ctx, events.Event{
		ID:        uuid.NewString(),
		Type:      events.EventMenuItemCreated,
		Timestamp: time.Now(),
		Payload: events.MenuItemPayload{
			MenuItemID: item.ID,
			Name:       item.Name,
			CategoryID: item.CategoryID,
		},
	})
	return nil
}

// UpdateMenuItem persists changes to an existing item.
func (s *ContentService) UpdateMenuItem(ctx context.Context, item *domain.MenuItem) error {
	if item.Name == "" {
		return apperrors.NewValidationError("name is required", nil)
	}
	if item.Price < 0 {
		return apperrors.NewValidationError("price must not be negative", nil)
	}
	if item.Slug == "" {
		item.Slug = Slugify(item.Name)
	}

	if err := s.menu.Update(ctx, item); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.NewNotFound("menu item", nil)
		}
		return err
	}
	s.menuCache.Invalidate(ctx)
	return nil
}

// DeleteMenuItem removes an item. Any image it referenced stays in remote
// storage; cleanup is an explicit delete-by-URL call.
func (s *ContentService) DeleteMenuItem(ctx context.Context, id int64) error {
	item, err := s.menu.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.NewNotFound("menu item", nil)
		}
		return err
	}

	if err := s.menu.Delete(ctx, id); err != nil {
		return err
	}

	s.menuCache.Invalidate(ctx)
	_ = s.dispatcher.Publish(ctx, events.Event{
		ID:        uuid.NewString(),
		Type:      events.EventMenuItemDeleted,
		Timestamp: time.Now(),
		Payload: events.MenuItemPayload{
			MenuItemID: item.ID,
			Name:       item.Name,
			CategoryID: item.CategoryID,
		},
	})
	return nil
}

// ListCategories returns all categories.
func (s *ContentService) ListCategories(ctx context.Context) ([]domain.Category, error) {
	return s.categories.List(ctx)
}

// CreateCategory validates and persists a new category.
func (s *ContentService) CreateCategory(ctx context.Context, category *domain.Category) error {
	if category.Name == "" {
		return apperrors.NewValidationError("name is required", nil)
	}
	if category.Slug == "" {
		category.Slug = Slugify(category.Name)
	}
	if err := s.categories.Create(ctx, category); err != nil {
		return err
	}
	s.menuCache.Invalidate(ctx)
	return nil
}

// UpdateCategory persists changes to a category.
func (s *ContentService) UpdateCategory(ctx context.Context, category *domain.Category) error {
	if category.Name == "" {
		return apperrors.NewValidationError("name is required", nil)
	}
	if category.Slug == "" {
		category.Slug = Slugify(category.Name)
	}
	if err := s.categories.Update(ctx, category); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.NewNotFound("category", nil)
		}
		return err
	}
	s.menuCache.Invalidate(ctx)
	return nil
}

// DeleteCategory removes a category. Items referencing it are removed by the
// database cascade.
func (s *ContentService) DeleteCategory(ctx context.Context, id int64) error {
	if err := s.categories.Delete(ctx, id); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.NewNotFound("category", nil)
		}
		return err
	}
	s.menuCache.Invalidate(ctx)
	return nil
}

// GetHero returns the hero section, or NotFound when never configured.
func (s *ContentService) GetHero(ctx context.Context) (*domain.HeroContent, error) {
	hero, err := s.hero.Get(ctx)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("hero content", nil)
		}
		return nil, err
	}
	return hero, nil
}

// UpdateHero upserts the singleton hero row.
func (s *ContentService) UpdateHero(ctx context.Context, hero *domain.HeroContent) error {
	if hero.Title == "" {
		return apperrors.NewValidationError("title is required", nil)
	}
	return s.hero.Upsert(ctx, hero)
}

// ListHours returns the weekly opening hours.
func (s *ContentService) ListHours(ctx context.Context) ([]domain.BusinessHours, error) {
	return s.settings.ListHours(ctx)
}

// UpdateHours upserts opening hours rows.
func (s *ContentService) UpdateHours(ctx context.Context, hours []domain.BusinessHours) error {
	for _, h := range hours {
		if h.Weekday < 0 || h.Weekday > 6 {
			return apperrors.NewValidationError("weekday must be 0..6", map[string]any{"weekday": h.Weekday})
		}
	}
	return s.settings.UpsertHours(ctx, hours)
}

// GetContactInfo returns the business profile.
func (s *ContentService) GetContactInfo(ctx context.Context) (*domain.ContactInfo, error) {
	info, err := s.settings.GetContactInfo(ctx)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("contact info", nil)
		}
		return nil, err
	}
	return info, nil
}

// UpdateContactInfo upserts the business profile.
func (s *ContentService) UpdateContactInfo(ctx context.Context, info *domain.ContactInfo) error {
	if info.Name == "" || info.Address == "" || info.Phone1 == "" || info.Email == "" {
		return apperrors.NewValidationError("name, address, phone1 and email are required", nil)
	}
	return s.settings.UpsertContactInfo(ctx, info)
}

// GetSocialLinks returns the social profile links.
func (s *ContentService) GetSocialLinks(ctx context.Context) (*domain.SocialLinks, error) {
	links, err := s.settings.GetSocialLinks(ctx)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("social links", nil)
		}
		return nil, err
	}
	return links, nil
}

// UpdateSocialLinks upserts the social profile links.
func (s *ContentService) UpdateSocialLinks(ctx context.Context, links *domain.SocialLinks) error {
	return s.settings.UpsertSocialLinks(ctx, links)
}

var slugStrip = regexp.MustCompile(`[^a-z0-9-]+`)

// Slugify lowercases, hyphenates and strips a name into a URL slug.
func Slugify(name string) string {
	slug := strings.ToLower(strings.TrimSpace(name))
	slug = strings.ReplaceAll(slug, " ", "-")
	slug = slugStrip.ReplaceAllString(slug, "")
	return strings.Trim(slug, "-")
}

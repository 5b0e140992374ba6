package service

import (
	"context"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/eftah/restaurant-service/internal/cache"
	"github.com/eftah/restaurant-service/internal/domain"
	"github.com/eftah/restaurant-service/internal/events"
	"github.com/eftah/restaurant-service/internal/repository"
	apperrors "github.com/eftah/restaurant-service/pkg/util"
)

type memoryCategoryRepo struct {
	categories map[int64]*domain.Category
	seq        int64
}

func newMemoryCategoryRepo() *memoryCategoryRepo {
	return &memoryCategoryRepo{categories: map[int64]*domain.Category{}}
}

func (r *memoryCategoryRepo) List(_ context.Context) ([]domain.Category, error) {
	out := make([]domain.Category, 0, len(r.categories))
	for _, c := range r.categories {
		out = append(out, *c)
	}
	return out, nil
}

func (r *memoryCategoryRepo) GetByID(_ context.Context, id int64) (*domain.Category, error) {
	if c, ok := r.categories[id]; ok {
		return c, nil
	}
	return nil, pgx.ErrNoRows
}

func (r *memoryCategoryRepo) Create(_ context.Context, category *domain.Category) error {
	r.seq++
	category.ID = r.seq
	r.categories[category.ID] = category
	return nil
}

func (r *memoryCategoryRepo) Update(_ context.Context, category *domain.Category) error {
	if _, ok := r.categories[category.ID]; !ok {
		return pgx.ErrNoRows
	}
	r.categories[category.ID] = category
	return nil
}

func (r *memoryCategoryRepo) Delete(_ context.Context, id int64) error {
	if _, ok := r.categories[id]; !ok {
		return pgx.ErrNoRows
	}
	delete(r.categories, id)
	return nil
}

type memoryMenuRepo struct {
	items     map[int64]*domain.MenuItem
	seq       int64
	listCalls int
}

func newMemoryMenuRepo() *memoryMenuRepo {
	return &memoryMenuRepo{items: map[int64]*domain.MenuItem{}}
}

func (r *memoryMenuRepo) List(_ context.Context, filter repository.MenuItemFilter) ([]domain.MenuItem, error) {
	r.listCalls++
	out := make([]domain.MenuItem, 0, len(r.items))
	for _, item := range r.items {
		if filter.CategorySlug != "" && (item.Category == nil || item.Category.Slug != filter.CategorySlug) {
			continue
		}
		out = append(out, *item)
	}
	return out, nil
}

func (r *memoryMenuRepo) GetByID(_ context.Context, id int64) (*domain.MenuItem, error) {
	if item, ok := r.items[id]; ok {
		return item, nil
	}
	return nil, pgx.ErrNoRows
}

func (r *memoryMenuRepo) Create(_ context.Context, item *domain.MenuItem) error {
	r.seq++
	item.ID = r.seq
	r.items[item.ID] = item
	return nil
}

func (r *memoryMenuRepo) Update(_ context.Context, item *domain.MenuItem) error {
	if _, ok := r.items[item.ID]; !ok {
		return pgx.ErrNoRows
	}
	r.items[item.ID] = item
	return nil
}

func (r *memoryMenuRepo) Delete(_ context.Context, id int64) error {
	if _, ok := r.items[id]; !ok {
		return pgx.ErrNoRows
	}
	delete(r.items, id)
	return nil
}

func testContentService(t *testing.T) (*ContentService, *memoryCategoryRepo, *memoryMenuRepo, events.Dispatcher) {
	t.Helper()
	categories := newMemoryCategoryRepo()
	menu := newMemoryMenuRepo()
	dispatcher := events.NewInMemoryDispatcher()
	svc := NewContentService(ContentDependencies{
		CategoryRepo: categories,
		MenuRepo:     menu,
		MenuCache:    cache.NewMenuCache(nil, time.Minute, zap.NewNop()),
		Dispatcher:   dispatcher,
	})
	return svc, categories, menu, dispatcher
}

func TestCreateMenuItemValidation(t *testing.T) {
	svc, categories, menu, _ := testContentService(t)
	require.NoError(t, categories.Create(context.Background(), &domain.Category{Name: "Mains", Slug: "mains"}))

	cases := map[string]domain.MenuItem{
		"missing name":     {Price: 5, CategoryID: 1},
		"negative price":   {Name: "Koshari", Price: -1, CategoryID: 1},
		"missing category": {Name: "Koshari", Price: 5},
		"unknown category": {Name: "Koshari", Price: 5, CategoryID: 42},
	}
	for name, item := range cases {
		err := svc.CreateMenuItem(context.Background(), &item)
		require.Error(t, err, name)
		assert.True(t, apperrors.IsCode(err, apperrors.CodeValidationFailed), name)
	}
	assert.Empty(t, menu.items)
}

func TestCreateMenuItemDerivesSlugAndPublishes(t *testing.T) {
	svc, categories, _, dispatcher := testContentService(t)
	require.NoError(t, categories.Create(context.Background(), &domain.Category{Name: "Mains", Slug: "mains"}))

	var published []events.Event
	dispatcher.Subscribe(events.EventMenuItemCreated, func(_ context.Context, e events.Event) error {
		published = append(published, e)
		return nil
	})

	item := &domain.MenuItem{Name: "Grilled Sea Bass!", Price: 18.5, CategoryID: 1, IsAvailable: true}
	require.NoError(t, svc.CreateMenuItem(context.Background(), item))

	assert.Equal(t, "grilled-sea-bass", item.Slug)
	require.Len(t, published, 1)
	payload, ok := published[0].Payload.(events.MenuItemPayload)
	require.True(t, ok)
	assert.Equal(t, item.ID, payload.MenuItemID)
}

func TestDeleteMenuItemNotFound(t *testing.T) {
	svc, _, _, _ := testContentService(t)

	err := svc.DeleteMenuItem(context.Background(), 99)
	require.Error(t, err)
	assert.True(t, apperrors.IsCode(err, apperrors.CodeNotFound))
}

func TestListMenuHitsRepositoryWithoutRedis(t *testing.T) {
	svc, categories, menu, _ := testContentService(t)
	require.NoError(t, categories.Create(context.Background(), &domain.Category{Name: "Mains", Slug: "mains"}))
	require.NoError(t, svc.CreateMenuItem(context.Background(), &domain.MenuItem{
		Name: "Koshari", Price: 7, CategoryID: 1,
	}))

	items, err := svc.ListMenu(context.Background(), "")
	require.NoError(t, err)
	assert.Len(t, items, 1)
	assert.Equal(t, 1, menu.listCalls)
}

func TestSlugify(t *testing.T) {
	cases := map[string]string{
		"Grilled Sea Bass": "grilled-sea-bass",
		"  Café Crème!  ":  "caf-crme",
		"Already-Sluggy":   "already-sluggy",
		"---":              "",
	}
	for input, want := range cases {
		assert.Equal(t, want, Slugify(input), input)
	}
}

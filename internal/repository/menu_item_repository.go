package repository

import (
	"context"

	"github.com/jackc/pgx/v5"

	"github.com/eftah/restaurant-service/internal/domain"
)

// MenuItemFilter narrows menu listings.
type MenuItemFilter struct {
	CategorySlug string
}

// MenuItemRepository persists menu items.
type MenuItemRepository interface {
	List(ctx context.Context, filter MenuItemFilter) ([]domain.MenuItem, error)
	GetByID(ctx context.Context, id int64) (*domain.MenuItem, error)
	Create(ctx context.Context, item *domain.MenuItem) error
	Update(ctx context.Context, item *domain.MenuItem) error
	Delete(ctx context.Context, id int64) error
}

type menuItemRepository struct {
	pool DB
}

// NewMenuItemRepository returns a Postgres-backed implementation.
func NewMenuItemRepository(pool DB) MenuItemRepository {
	return &menuItemRepository{pool: pool}
}

const menuSelect = `
        SELECT m.id, m.name, m.slug, m.price, m.description, m.image,
               m.is_popular, m.is_available, m.category_id, m.created_at, m.updated_at,
               c.id, c.name, c.slug, c.description, c.created_at, c.updated_at
        FROM menu_items m
        JOIN categories c ON c.id = m.category_id`

func (r *menuItemRepository) List(ctx context.Context, filter MenuItemFilter) ([]domain.MenuItem, error) {
	query := menuSelect + ` ORDER BY m.created_at DESC`
	args := []any{}
	if filter.CategorySlug != "" && filter.CategorySlug != "all" {
		query = menuSelect + ` WHERE c.slug=$1 ORDER BY m.created_at DESC`
		args = append(args, filter.CategorySlug)
	}

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.MenuItem
	for rows.Next() {
		item, err := scanMenuItem(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, *item)
	}
	return result, rows.Err()
}

func (r *menuItemRepository) GetByID(ctx context.Context, id int64) (*domain.MenuItem, error) {
	return scanMenuItem(r.pool.QueryRow(ctx, menuSelect+` WHERE m.id=$1`, id))
}

func (r *menuItemRepository) Create(ctx context.Context, item *domain.MenuItem) error {
	const query = `
        INSERT INTO menu_items (name, slug, price, description, image, is_popular, is_available, category_id)
        VALUES ($1,$2,$3,$4,$5,$6,$7,$8)
        RETURNING id, created_at, updated_at`

	return r.pool.QueryRow(ctx, query,
		item.Name,
		item.Slug,
		item.Price,
		item.Description,
		item.Image,
		item.IsPopular,
		item.IsAvailable,
		item.CategoryID,
	).Scan(&item.ID, &item.CreatedAt, &item.UpdatedAt)
}

func (r *menuItemRepository) Update(ctx context.Context, item *domain.MenuItem) error {
	const query = `
        UPDATE menu_items
        SET name=$1, slug=$2, price=$3, description=$4, image=$5,
            is_popular=$6, is_available=$7, category_id=$8, updated_at=NOW()
        WHERE id=$9`

	cmd, err := r.pool.Exec(ctx, query,
		item.Name,
		item.Slug,
		item.Price,
		item.Description,
		item.Image,
		item.IsPopular,
		item.IsAvailable,
		item.CategoryID,
		item.ID,
	)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *menuItemRepository) Delete(ctx context.Context, id int64) error {
	cmd, err := r.pool.Exec(ctx, `DELETE FROM menu_items WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func scanMenuItem(row pgx.Row) (*domain.MenuItem, error) {
	var item domain.MenuItem
	var category domain.Category
	if err := row.Scan(
		&item.ID,
		&item.Name,
		&item.Slug,
		&item.Price,
		&item.Description,
		&item.Image,
		&item.IsPopular,
		&item.IsAvailable,
		&item.CategoryID,
		&item.CreatedAt,
		&item.UpdatedAt,
		&category.ID,
		&category.Name,
		&category.Slug,
		&category.Description,
		&category.CreatedAt,
		&category.UpdatedAt,
	); err != nil {
		return nil, err
	}
	item.Category = &category
	return &item, nil
}

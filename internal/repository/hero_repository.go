package repository

import (
	"context"

	"github.com/eftah/restaurant-service/internal/domain"
)

// HeroRepository persists the singleton hero section.
type HeroRepository interface {
	Get(ctx context.Context) (*domain.HeroContent, error)
	Upsert(ctx context.Context, hero *domain.HeroContent) error
}

type heroRepository struct {
	pool DB
}

// NewHeroRepository returns a Postgres-backed implementation.
func NewHeroRepository(pool DB) HeroRepository {
	return &heroRepository{pool: pool}
}

func (r *heroRepository) Get(ctx context.Context) (*domain.HeroContent, error) {
	const query = `SELECT id, title, subtitle, image, updated_at FROM hero_content WHERE id=1`

	var hero domain.HeroContent
	if err := r.pool.QueryRow(ctx, query).Scan(
		&hero.ID,
		&hero.Title,
		&hero.Subtitle,
		&hero.Image,
		&hero.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &hero, nil
}

func (r *heroRepository) Upsert(ctx context.Context, hero *domain.HeroContent) error {
	const query = `
        INSERT INTO hero_content (id, title, subtitle, image)
        VALUES (1, $1, $2, $3)
        ON CONFLICT (id) DO UPDATE
        SET title=EXCLUDED.title, subtitle=EXCLUDED.subtitle, image=EXCLUDED.image, updated_at=NOW()
        RETURNING id, updated_at`

	return r.pool.QueryRow(ctx, query,
		hero.Title,
		hero.Subtitle,
		hero.Image,
	).Scan(&hero.ID, &hero.UpdatedAt)
}

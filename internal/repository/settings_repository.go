package repository

import (
	"context"

	"github.com/eftah/restaurant-service/internal/domain"
)

// SettingsRepository persists business hours, contact info and social links.
type SettingsRepository interface {
	ListHours(ctx context.Context) ([]domain.BusinessHours, error)
	UpsertHours(ctx context.Context, hours []domain.BusinessHours) error
	GetContactInfo(ctx context.Context) (*domain.ContactInfo, error)
	UpsertContactInfo(ctx context.Context, info *domain.ContactInfo) error
	GetSocialLinks(ctx context.Context) (*domain.SocialLinks, error)
	UpsertSocialLinks(ctx context.Context, links *domain.SocialLinks) error
}

type settingsRepository struct {
	pool DB
}

// NewSettingsRepository returns a Postgres-backed implementation.
func NewSettingsRepository(pool DB) SettingsRepository {
	return &settingsRepository{pool: pool}
}

func (r *settingsRepository) ListHours(ctx context.Context) ([]domain.BusinessHours, error) {
	const query = `
        SELECT weekday, open_time, close_time, is_closed
        FROM business_hours ORDER BY weekday`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.BusinessHours
	for rows.Next() {
		var h domain.BusinessHours
		if err := rows.Scan(&h.Weekday, &h.Open, &h.Close, &h.IsClosed); err != nil {
			return nil, err
		}
		result = append(result, h)
	}
	return result, rows.Err()
}

// UpsertHours rewrites the submitted weekdays in one transaction so a failure
// cannot leave a partially updated week.
func (r *settingsRepository) UpsertHours(ctx context.Context, hours []domain.BusinessHours) error {
	const query = `
        INSERT INTO business_hours (weekday, open_time, close_time, is_closed)
        VALUES ($1,$2,$3,$4)
        ON CONFLICT (weekday) DO UPDATE
        SET open_time=EXCLUDED.open_time, close_time=EXCLUDED.close_time, is_closed=EXCLUDED.is_closed`

	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx) //nolint:errcheck

	for _, h := range hours {
		if _, err := tx.Exec(ctx, query, h.Weekday, h.Open, h.Close, h.IsClosed); err != nil {
			return err
		}
	}
	return tx.Commit(ctx)
}

func (r *settingsRepository) GetContactInfo(ctx context.Context) (*domain.ContactInfo, error) {
	const query = `
        SELECT id, name, description, address, phone1, phone2, email, updated_at
        FROM contact_info WHERE id=1`

	var info domain.ContactInfo
	if err := r.pool.QueryRow(ctx, query).Scan(
		&info.ID,
		&info.Name,
		&info.Description,
		&info.Address,
		&info.Phone1,
		&info.Phone2,
		&info.Email,
		&info.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &info, nil
}

func (r *settingsRepository) UpsertContactInfo(ctx context.Context, info *domain.ContactInfo) error {
	const query = `
        INSERT INTO contact_info (id, name, description, address, phone1, phone2, email)
        VALUES (1, $1, $2, $3, $4, $5, $6)
        ON CONFLICT (id) DO UPDATE
        SET name=EXCLUDED.name, description=EXCLUDED.description, address=EXCLUDED.address,
            phone1=EXCLUDED.phone1, phone2=EXCLUDED.phone2, email=EXCLUDED.email, updated_at=NOW()
        RETURNING id, updated_at`

	return r.pool.QueryRow(ctx, query,
		info.Name,
		info.Description,
		info.Address,
		info.Phone1,
		info.Phone2,
		info.Email,
	).Scan(&info.ID, &info.UpdatedAt)
}

func (r *settingsRepository) GetSocialLinks(ctx context.Context) (*domain.SocialLinks, error) {
	const query = `SELECT id, facebook, instagram, twitter, updated_at FROM social_links WHERE id=1`

	var links domain.SocialLinks
	if err := r.pool.QueryRow(ctx, query).Scan(
		&links.ID,
		&links.Facebook,
		&links.Instagram,
		&links.Twitter,
		&links.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &links, nil
}

func (r *settingsRepository) UpsertSocialLinks(ctx context.Context, links *domain.SocialLinks) error {
	const query = `
        INSERT INTO social_links (id, facebook, instagram, twitter)
        VALUES (1, $1, $2, $3)
        ON CONFLICT (id) DO UPDATE
        SET facebook=EXCLUDED.facebook, instagram=EXCLUDED.instagram, twitter=EXCLUDED.twitter, updated_at=NOW()
        RETURNING id, updated_at`

	return r.pool.QueryRow(ctx, query,
		links.Facebook,
		links.Instagram,
		links.Twitter,
	).Scan(&links.ID, &links.UpdatedAt)
}

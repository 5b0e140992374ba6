package repository

import (
	"context"

	"github.com/jackc/pgx/v5"

	"github.com/eftah/restaurant-service/internal/domain"
)

// MessageRepository persists contact-form submissions.
type MessageRepository interface {
	Create(ctx context.Context, message *domain.Message) error
	List(ctx context.Context, limit, offset int) ([]domain.Message, error)
	Count(ctx context.Context) (int64, error)
	Delete(ctx context.Context, id int64) error
}

type messageRepository struct {
	pool DB
}

// NewMessageRepository returns a Postgres-backed implementation.
func NewMessageRepository(pool DB) MessageRepository {
	return &messageRepository{pool: pool}
}

func (r *messageRepository) Create(ctx context.Context, message *domain.Message) error {
	const query = `
        INSERT INTO messages (name, email, phone, body)
        VALUES ($1,$2,$3,$4)
        RETURNING id, created_at`

	return r.pool.QueryRow(ctx, query,
		message.Name,
		message.Email,
		message.Phone,
		message.Body,
	).Scan(&message.ID, &message.CreatedAt)
}

func (r *messageRepository) List(ctx context.Context, limit, offset int) ([]domain.Message, error) {
	const query = `
        SELECT id, name, email, phone, body, created_at
        FROM messages ORDER BY created_at DESC
        LIMIT $1 OFFSET $2`

	rows, err := r.pool.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.Message
	for rows.Next() {
		var message domain.Message
		if err := rows.Scan(
			&message.ID,
			&message.Name,
			&message.Email,
			&message.Phone,
			&message.Body,
			&message.CreatedAt,
		); err != nil {
			return nil, err
		}
		result = append(result, message)
	}
	return result, rows.Err()
}

func (r *messageRepository) Count(ctx context.Context) (int64, error) {
	var total int64
	err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM messages`).Scan(&total)
	return total, err
}

func (r *messageRepository) Delete(ctx context.Context, id int64) error {
	cmd, err := r.pool.Exec(ctx, `DELETE FROM messages WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/eftah/restaurant-service/internal/cache"
	"github.com/eftah/restaurant-service/internal/domain"
	"github.com/eftah/restaurant-service/internal/events"
	"github.com/eftah/restaurant-service/internal/repository"
	apperrors "github.com/eftah/restaurant-service/pkg/util"
)

const messagePreviewLen = 120

// MessageService handles contact-form submissions and their back-office view.
type MessageService struct {
	messages   repository.MessageRepository
	limiter    *cache.RateLimiter
	dispatcher events.Dispatcher
}

// NewMessageService builds the service.
func NewMessageService(messages repository.MessageRepository, limiter *cache.RateLimiter, dispatcher events.Dispatcher) *MessageService {
	return &MessageService{messages: messages, limiter: limiter, dispatcher: dispatcher}
}

// Submit validates a visitor message, applies the per-client rate limit and
// persists it.
func (s *MessageService) Submit(ctx context.Context, message *domain.Message, clientToken string) error {
	if message.Name == "" || message.Email == "" || message.Body == "" {
		return apperrors.NewValidationError("name, email and message are required", nil)
	}

	if !s.limiter.Allow(ctx, clientToken) {
		return apperrors.NewRateLimited()
	}

	if err := s.messages.Create(ctx, message); err != nil {
		return err
	}

	// Truncate on a rune boundary so a multibyte character straddling the
	// cutoff cannot produce an invalid-UTF-8 preview.
	preview := message.Body
	if runes := []rune(preview); len(runes) > messagePreviewLen {
		preview = string(runes[:messagePreviewLen])
	}
	_ = s.dispatcher.Publish(ctx, events.Event{
		ID:        uuid.NewString(),
		Type:      events.EventMessageReceived,
		Timestamp: time.Now(),
		Payload: events.MessageReceivedPayload{
			MessageID: message.ID,
			Name:      message.Name,
			Email:     message.Email,
			Preview:   preview,
		},
	})
	return nil
}

// List returns one page of messages, newest first, plus the total count.
func (s *MessageService) List(ctx context.Context, page, limit int) ([]domain.Message, int64, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 10
	}

	messages, err := s.messages.List(ctx, limit, (page-1)*limit)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.messages.Count(ctx)
	if err != nil {
		return nil, 0, err
	}
	return messages, total, nil
}

// Delete removes a message.
func (s *MessageService) Delete(ctx context.Context, id int64) error {
	if err := s.messages.Delete(ctx, id); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.NewNotFound("message", nil)
		}
		return err
	}
	return nil
}

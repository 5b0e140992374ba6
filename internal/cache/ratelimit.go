package cache

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// RateLimiter is a fixed-window counter on Redis, keyed per client token.
// Fails open: if Redis is unreachable the request is allowed and the error
// logged, so a cache outage cannot take the contact form down.
type RateLimiter struct {
	client *redis.Client
	limit  int
	window time.Duration
	logger *zap.Logger
}

// NewRateLimiter builds a limiter allowing limit requests per window.
func NewRateLimiter(client *redis.Client, limit int, window time.Duration, logger *zap.Logger) *RateLimiter {
	return &RateLimiter{client: client, limit: limit, window: window, logger: logger}
}

// Allow reports whether the client identified by token may proceed.
func (l *RateLimiter) Allow(ctx context.Context, token string) bool {
	if l.client == nil {
		return true
	}

	key := "ratelimit:" + token
	count, err := l.client.Incr(ctx, key).Result()
	if err != nil {
		l.logger.Warn("rate limiter unavailable", zap.Error(err))
		return true
	}
	if count == 1 {
		if err := l.client.Expire(ctx, key, l.window).Err(); err != nil {
			l.logger.Warn("rate limiter expire failed", zap.Error(err))
		}
	}
	return count <= int64(l.limit)
}

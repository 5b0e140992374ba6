package cache

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const menuKeyPrefix = "menu:list:"

// MenuCache caches public menu listings in Redis. Misses and Redis errors
// both fall through to the database.
type MenuCache struct {
	client *redis.Client
	ttl    time.Duration
	logger *zap.Logger
}

// NewMenuCache builds the cache.
func NewMenuCache(client *redis.Client, ttl time.Duration, logger *zap.Logger) *MenuCache {
	return &MenuCache{client: client, ttl: ttl, logger: logger}
}

// Get unmarshals a cached listing into dest; ok is false on miss.
func (c *MenuCache) Get(ctx context.Context, categorySlug string, dest any) bool {
	if c.client == nil {
		return false
	}
	raw, err := c.client.Get(ctx, menuKey(categorySlug)).Bytes()
	if err != nil {
		return false
	}
	if err := json.Unmarshal(raw, dest); err != nil {
		c.logger.Warn("menu cache decode failed", zap.Error(err))
		return false
	}
	return true
}

// Set stores a listing under the category key.
func (c *MenuCache) Set(ctx context.Context, categorySlug string, value any) {
	if c.client == nil {
		return
	}
	raw, err := json.Marshal(value)
	if err != nil {
		return
	}
	if err := c.client.Set(ctx, menuKey(categorySlug), raw, c.ttl).Err(); err != nil {
		c.logger.Warn("menu cache set failed", zap.Error(err))
	}
}

// Invalidate drops every cached menu listing. Called after any menu or
// category mutation.
func (c *MenuCache) Invalidate(ctx context.Context) {
	if c.client == nil {
		return
	}
	iter := c.client.Scan(ctx, 0, menuKeyPrefix+"*", 0).Iterator()
	for iter.Next(ctx) {
		if err := c.client.Del(ctx, iter.Val()).Err(); err != nil {
			c.logger.Warn("menu cache invalidate failed", zap.Error(err))
		}
	}
	if err := iter.Err(); err != nil {
		c.logger.Warn("menu cache scan failed", zap.Error(err))
	}
}

func menuKey(categorySlug string) string {
	if categorySlug == "" {
		categorySlug = "all"
	}
	return menuKeyPrefix + categorySlug
}

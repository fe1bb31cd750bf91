package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/simplesdental/product-api/internal/core/ports"
)

const contextTTL = 10 * time.Minute

// ContextCache caches principal snapshots for the context endpoint.
// Key format: userctx:<email>
type ContextCache struct {
	client *redis.Client
}

// NewContextCache creates a ContextCache wrapping the given Redis client.
func NewContextCache(client *redis.Client) *ContextCache {
	return &ContextCache{client: client}
}

// Get returns the cached snapshot for email, or (nil, nil) on a miss.
func (c *ContextCache) Get(ctx context.Context, email string) (*ports.UserContext, error) {
	raw, err := c.client.Get(ctx, c.key(email)).Bytes()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("context cache get: %w", err)
	}

	var uc ports.UserContext
	if err := json.Unmarshal(raw, &uc); err != nil {
		return nil, fmt.Errorf("context cache decode: %w", err)
	}
	return &uc, nil
}

// Set stores the snapshot (expires after contextTTL).
func (c *ContextCache) Set(ctx context.Context, email string, uc *ports.UserContext) error {
	raw, err := json.Marshal(uc)
	if err != nil {
		return fmt.Errorf("context cache encode: %w", err)
	}
	return c.client.Set(ctx, c.key(email), raw, contextTTL).Err()
}

// Invalidate drops the entry after a user mutation.
func (c *ContextCache) Invalidate(ctx context.Context, email string) error {
	return c.client.Del(ctx, c.key(email)).Err()
}

func (c *ContextCache) key(email string) string {
	return "userctx:" + email
}

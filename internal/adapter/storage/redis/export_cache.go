package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	goredis "github.com/redis/go-redis/v9"
)

// ExportCache implements ports.ExportCache using Redis. Keys already carry the
// ledger version, so entries never need explicit invalidation.
type ExportCache struct {
	client *goredis.Client
	prefix string
}

// NewExportCache creates a new Redis-backed export cache.
func NewExportCache(client *goredis.Client) *ExportCache {
	return &ExportCache{
		client: client,
		prefix: keyPrefix + "export:",
	}
}

// Get returns a cached export payload, or nil, nil on a miss.
func (c *ExportCache) Get(ctx context.Context, key string) ([]byte, error) {
	val, err := c.client.Get(ctx, c.prefix+key).Bytes()
	if err != nil {
		if errors.Is(err, goredis.Nil) {
			return nil, nil
		}
		return nil, fmt.Errorf("redis export cache get: %w", err)
	}
	return val, nil
}

// Set stores an export payload with TTL.
func (c *ExportCache) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	if err := c.client.Set(ctx, c.prefix+key, value, ttl).Err(); err != nil {
		return fmt.Errorf("redis export cache set: %w", err)
	}
	return nil
}

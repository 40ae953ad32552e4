package redis

import (
	"context"
	"fmt"
	"time"

	"merchant-pulse/config"

	goredis "github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
)

// keyPrefix namespaces every key this service writes.
const keyPrefix = "mpulse:"

// connectTimeout bounds the startup ping. Redis is optional, so a dead
// server must not hold up boot.
const connectTimeout = 5 * time.Second

// NewClient opens the client shared by the export cache and the rate limiter
// and pings it once. The client is closed again when the ping fails.
func NewClient(ctx context.Context, cfg config.RedisConfig, log zerolog.Logger) (*goredis.Client, error) {
	client := goredis.NewClient(&goredis.Options{
		Addr:        cfg.Addr(),
		Password:    cfg.Password,
		DB:          cfg.DB,
		DialTimeout: connectTimeout,
	})

	pingCtx, cancel := context.WithTimeout(ctx, connectTimeout)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("pinging redis at %s: %w", cfg.Addr(), err)
	}

	log.Info().
		Str("addr", cfg.Addr()).
		Int("db", cfg.DB).
		Dur("export_ttl", cfg.ExportTTL).
		Msg("Redis ready for export cache and rate limiting")

	return client, nil
}

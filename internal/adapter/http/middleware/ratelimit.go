package middleware

import (
	"strconv"
	"time"

	"merchant-pulse/config"
	redisStore "merchant-pulse/internal/adapter/storage/redis"
	"merchant-pulse/pkg/apperror"
	"merchant-pulse/pkg/response"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

// Endpoint groups sharing a rate limit budget.
const (
	GroupExport = "export"
	GroupFeed   = "feed"
)

// RateLimitRule defines a rate limit for an endpoint group.
type RateLimitRule struct {
	Limit  int64
	Window time.Duration
}

// RateLimitRules builds the per-minute rules for each group from cfg.
// Non-positive limits disable the group.
func RateLimitRules(cfg config.RateLimitConfig) map[string]RateLimitRule {
	rules := make(map[string]RateLimitRule, 2)
	if cfg.Export > 0 {
		rules[GroupExport] = RateLimitRule{Limit: cfg.Export, Window: time.Minute}
	}
	if cfg.Feed > 0 {
		rules[GroupFeed] = RateLimitRule{Limit: cfg.Feed, Window: time.Minute}
	}
	return rules
}

// RateLimiter creates a rate-limiting middleware for a given endpoint group,
// keyed by client IP.
func RateLimiter(store *redisStore.RateLimitStore, group string, rule RateLimitRule, log zerolog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		key := group + ":" + c.ClientIP()

		result, err := store.Allow(c.Request.Context(), key, rule.Limit, rule.Window)
		if err != nil {
			log.Warn().Err(err).Str("group", group).Msg("rate limit check failed, allowing request (degraded mode)")
			c.Next()
			return
		}

		c.Header("X-RateLimit-Limit", strconv.FormatInt(result.Limit, 10))
		c.Header("X-RateLimit-Remaining", strconv.FormatInt(result.Remaining, 10))
		c.Header("X-RateLimit-Reset", strconv.FormatInt(result.ResetAt, 10))

		if !result.Allowed {
			retryAfter := result.ResetAt - time.Now().Unix()
			if retryAfter < 1 {
				retryAfter = 1
			}
			c.Header("Retry-After", strconv.FormatInt(retryAfter, 10))
			response.Error(c, apperror.ErrRateLimitExceeded())
			c.Abort()
			return
		}

		c.Next()
	}
}

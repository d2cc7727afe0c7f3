package di

import (
	"github.com/redis/go-redis/v9"

	"idea_backend/internal/platform/config"
	"idea_backend/internal/platform/ratelimit"
)

// NewLoginLimiter creates a Limiter implementation for the auth endpoints.
// If Redis is available, it returns a Redis-backed fixed-window limiter.
// Otherwise, it falls back to an unlimited no-op.
func NewLoginLimiter(rdb *redis.Client, cfg config.Config) ratelimit.Limiter {
	if rdb != nil {
		return ratelimit.NewRedisLimiter(rdb, "ratelimit", cfg.RateLimit, cfg.RateWindow)
	}
	return ratelimit.Unlimited{}
}

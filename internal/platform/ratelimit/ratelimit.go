// Package ratelimit throttles credential endpoints to slow brute-force
// attempts. Counters live in Redis so the limit holds across instances.
package ratelimit

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	"idea_backend/internal/api"
)

// Limiter decides whether one more request from the given key may proceed.
type Limiter interface {
	Allow(ctx context.Context, key string) (bool, error)
}

// RedisLimiter is a fixed-window counter per key.
type RedisLimiter struct {
	client *redis.Client
	prefix string
	limit  int
	window time.Duration
}

var _ Limiter = (*RedisLimiter)(nil)

// NewRedisLimiter creates a limiter allowing limit requests per key per
// window.
func NewRedisLimiter(client *redis.Client, prefix string, limit int, window time.Duration) *RedisLimiter {
	return &RedisLimiter{
		client: client,
		prefix: prefix,
		limit:  limit,
		window: window,
	}
}

// Allow increments the key's window counter and reports whether the count
// is still within the limit. The first hit in a window sets the TTL.
func (l *RedisLimiter) Allow(ctx context.Context, key string) (bool, error) {
	redisKey := fmt.Sprintf("%s:%s", l.prefix, key)

	count, err := l.client.Incr(ctx, redisKey).Result()
	if err != nil {
		return false, err
	}
	if count == 1 {
		if err := l.client.Expire(ctx, redisKey, l.window).Err(); err != nil {
			return false, err
		}
	}

	return count <= int64(l.limit), nil
}

// Unlimited is a Limiter that always allows. Used when Redis is not
// available so the service keeps running without throttling.
type Unlimited struct{}

var _ Limiter = Unlimited{}

// Allow always permits the request.
func (Unlimited) Allow(context.Context, string) (bool, error) { return true, nil }

// Middleware returns a Gin middleware applying the limiter per client IP
// and route. A limiter error fails open: the request proceeds and the
// error is logged.
func Middleware(limiter Limiter) gin.HandlerFunc {
	return func(c *gin.Context) {
		key := fmt.Sprintf("%s:%s", c.FullPath(), c.ClientIP())

		allowed, err := limiter.Allow(c.Request.Context(), key)
		if err != nil {
			slog.Warn("rate limiter unavailable", "error", err, "key", key)
			c.Next()
			return
		}
		if !allowed {
			slog.Warn("rate limit exceeded", "remote_addr", c.ClientIP(), "path", c.FullPath())
			c.AbortWithStatusJSON(http.StatusTooManyRequests, api.Fail("too many attempts, try again later"))
			return
		}

		c.Next()
	}
}

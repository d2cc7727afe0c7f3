// Package redis connects the shared Redis client used by the rate limiter.
package redis

import (
	"context"
	"log/slog"

	"github.com/redis/go-redis/v9"

	"idea_backend/internal/platform/config"
)

// NewClient opens a Redis connection from the configuration and verifies
// it with a ping. Callers treat an error as "run without Redis".
func NewClient(cfg config.Config) (*redis.Client, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       0,
	})

	if err := rdb.Ping(context.Background()).Err(); err != nil {
		slog.Error("Redis connection failed", "address", cfg.RedisAddr, "error", err)
		return nil, err
	}

	slog.Info("Redis connection successful", "address", cfg.RedisAddr)
	return rdb, nil
}

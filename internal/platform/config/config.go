// Package config loads the process-wide configuration once at startup.
// Everything is read from the environment; nothing is hot-reloaded.
package config

import (
	"log/slog"
	"os"
	"strconv"
	"time"
)

// Config carries every runtime setting. It is built once in main and
// passed explicitly to the components that need it — no ambient globals.
type Config struct {
	Port string

	DBUser        string
	DBPassword    string
	DBHost        string
	DBPort        string
	DBName        string
	RunMigrations bool

	RedisAddr     string
	RedisPassword string

	JWTSecret     string
	TokenValidity time.Duration
	BcryptCost    int
	CookieSecure  bool

	CORSOrigin string

	RateLimit  int
	RateWindow time.Duration
}

// Load reads the configuration from the environment, filling defaults for
// anything unset. It warns about a missing JWT secret instead of failing
// so local development stays frictionless.
func Load() Config {
	cfg := Config{
		Port:          getEnv("PORT", "5000"),
		DBUser:        getEnv("DB_USER", "root"),
		DBPassword:    getEnv("DB_PASSWORD", ""),
		DBHost:        getEnv("DB_HOST", "127.0.0.1"),
		DBPort:        getEnv("DB_PORT", "3306"),
		DBName:        getEnv("DB_NAME", "ideas"),
		RunMigrations: getEnv("RUN_MIGRATIONS", "") == "true",
		RedisAddr:     getEnv("REDIS_HOST", "") + ":" + getEnv("REDIS_PORT", "6379"),
		RedisPassword: getEnv("REDIS_PASSWORD", ""),
		JWTSecret:     getEnv("JWT_SECRET", ""),
		TokenValidity: getDuration("TOKEN_TTL", 72*time.Hour),
		BcryptCost:    getInt("BCRYPT_COST", 10),
		CookieSecure:  getEnv("COOKIE_SECURE", "") == "true",
		CORSOrigin:    getEnv("CORS_ORIGIN", "http://localhost:3000"),
		RateLimit:     getInt("RATE_LIMIT", 10),
		RateWindow:    getDuration("RATE_WINDOW", time.Minute),
	}

	if getEnv("REDIS_HOST", "") == "" {
		cfg.RedisAddr = ""
	}
	if cfg.JWTSecret == "" {
		slog.Warn("JWT_SECRET is not set. Set a strong secret in production.")
	}

	return cfg
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		slog.Warn("ignoring invalid integer in environment", "key", key, "value", v)
		return fallback
	}
	return n
}

func getDuration(key string, fallback time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		slog.Warn("ignoring invalid duration in environment", "key", key, "value", v)
		return fallback
	}
	return d
}

package main

import (
	"log"
	"log/slog"

	"github.com/joho/godotenv"
	redisv9 "github.com/redis/go-redis/v9"

	"idea_backend/internal/app/di"
	"idea_backend/internal/app/router"
	authadapters "idea_backend/internal/feature/auth/adapters"
	authhandler "idea_backend/internal/feature/auth/transport/handler"
	authusecase "idea_backend/internal/feature/auth/usecase"
	usershandler "idea_backend/internal/feature/users/transport/handler"
	usersusecase "idea_backend/internal/feature/users/usecase"
	"idea_backend/internal/platform/config"
	platformdb "idea_backend/internal/platform/db"
	jwtmw "idea_backend/internal/platform/jwt"
	"idea_backend/internal/platform/password"
	platformredis "idea_backend/internal/platform/redis"
	"idea_backend/internal/platform/session"
)

func main() {
	// .envは開発時のみ。存在しなくてもエラーにしない
	_ = godotenv.Load()

	cfg := config.Load()

	// db
	db := platformdb.Open(cfg)

	// Redis（レート制限用。未設定でも起動はできる）
	var rdb *redisv9.Client
	if cfg.RedisAddr == "" {
		slog.Warn("redis not configured, auth endpoints will not be rate limited")
	} else if tmp, err := platformredis.NewClient(cfg); err != nil {
		slog.Warn("redis unavailable, auth endpoints will not be rate limited", "error", err)
	} else {
		rdb = tmp
		defer func() {
			if err := rdb.Close(); err != nil {
				slog.Error("failed to close redis client", "error", err)
			}
		}()
	}

	// Repository
	userRepo := authadapters.NewUserMySQL(db)

	// Platform services
	hasher := password.NewHasher(cfg.BcryptCost)
	tokens := jwtmw.NewService(cfg.JWTSecret, cfg.TokenValidity)
	cookies := session.CookieOptions{MaxAge: cfg.TokenValidity, Secure: cfg.CookieSecure}
	limiter := di.NewLoginLimiter(rdb, cfg)

	// Usecase
	authUC := authusecase.NewAuthUsecase(userRepo, hasher, tokens)
	usersUC := usersusecase.NewUsersUsecase(userRepo)

	// Handler
	authH := authhandler.NewAuthHandler(authUC, cookies)
	usersH := usershandler.NewUsersHandler(usersUC)

	// ルータ生成
	r := router.NewRouter(cfg, authH, usersH, tokens, userRepo, limiter)

	slog.Info("server starting", "port", cfg.Port)
	if err := r.Run(":" + cfg.Port); err != nil {
		log.Fatal(err)
	}
}

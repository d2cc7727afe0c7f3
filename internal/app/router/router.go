package router

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	authhandler "idea_backend/internal/feature/auth/transport/handler"
	usershandler "idea_backend/internal/feature/users/transport/handler"
	"idea_backend/internal/platform/config"
	"idea_backend/internal/platform/http/handler"
	"idea_backend/internal/platform/http/middleware"
	jwtmw "idea_backend/internal/platform/jwt"
	"idea_backend/internal/platform/ratelimit"
)

func NewRouter(cfg config.Config, auth *authhandler.AuthHandler, users *usershandler.UsersHandler,
	verifier jwtmw.Verifier, callers usershandler.CallerLookup, limiter ratelimit.Limiter) *gin.Engine {
	r := gin.Default()

	r.Use(middleware.RequestID())
	// クッキー認証のため、ワイルドカードではなく固定オリジン＋credentialsを許可する
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{cfg.CORSOrigin},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	// 認証不要
	// 導通確認用
	r.GET("/healthz", handler.Health)
	r.HEAD("/healthz", handler.Health)

	api := r.Group("/api")

	// 認証エンドポイント
	authGroup := api.Group("/auth")
	{
		// 新規ユーザー登録とログインはブルートフォース対策としてレート制限を適用
		authGroup.POST("/signup", ratelimit.Middleware(limiter), auth.Signup)
		authGroup.POST("/login", ratelimit.Middleware(limiter), auth.Login)
		// ログアウトはクッキーの有無にかかわらず成功する
		authGroup.POST("/logout", auth.Logout)

		// 認証必須のルート
		protected := authGroup.Group("")
		protected.Use(jwtmw.AuthRequired(verifier))
		{
			protected.PUT("/update-profile", auth.UpdateProfile)
			protected.PUT("/change-password", auth.ChangePassword)
		}
	}

	// 管理者専用のユーザー管理エンドポイント
	usersGroup := api.Group("/users")
	usersGroup.Use(jwtmw.AuthRequired(verifier), usershandler.RequireAdmin(callers))
	{
		usersGroup.GET("", users.List)
		usersGroup.PUT("/:id", users.Update)
		usersGroup.DELETE("/:id", users.Delete)
	}

	return r
}

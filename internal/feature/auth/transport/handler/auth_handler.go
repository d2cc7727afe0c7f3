// Package handler はauthフィーチャーのHTTPハンドラーを提供します。
package handler

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"idea_backend/internal/api"
	"idea_backend/internal/feature/auth/domain/entity"
	"idea_backend/internal/feature/auth/transport/http/dto"
	"idea_backend/internal/feature/auth/usecase"
	jwtmw "idea_backend/internal/platform/jwt"
	"idea_backend/internal/platform/session"
)

// AuthUsecase は認証操作のユースケースを定義します。
// Goの慣例に従い、インターフェースはプロバイダー（usecase）ではなくコンシューマー（handler）が定義します。
type AuthUsecase interface {
	// Signup は新規ユーザーを登録し、ユーザーとセッショントークンを返します。
	Signup(ctx context.Context, in usecase.SignupInput) (*entity.User, string, error)
	// Login はユーザーを認証し、成功時にユーザーとセッショントークンを返します。
	Login(ctx context.Context, email, password string) (*entity.User, string, error)
	// UpdateProfile は認証済みユーザーのプロフィールを更新します。
	UpdateProfile(ctx context.Context, userID uint, in usecase.UpdateProfileInput) (*entity.User, error)
	// ChangePassword は本人確認のうえパスワードを更新します。
	ChangePassword(ctx context.Context, userID uint, oldPassword, newPassword string) error
}

// AuthHandler は認証操作のHTTPリクエストを処理します。
// AuthUsecaseインターフェースに依存し、JSONリクエスト/レスポンスを処理します。
type AuthHandler struct {
	auth    AuthUsecase
	cookies session.CookieOptions
}

// NewAuthHandler はAuthHandlerの新しいインスタンスを生成します。
// 依存性注入用のコンストラクタで、外部からAuthUsecaseを注入します。
func NewAuthHandler(auth AuthUsecase, cookies session.CookieOptions) *AuthHandler {
	return &AuthHandler{auth: auth, cookies: cookies}
}

// Signup はユーザー登録APIエンドポイントを処理します。
// - リクエストJSONをSignupReqにバインド
// - バリデーション・重複エラー時は400を返却
// - 成功時はセッションクッキーを設定して201を返却
func (h *AuthHandler) Signup(c *gin.Context) {
	var req dto.SignupReq
	if err := c.ShouldBindJSON(&req); err != nil {
		slog.Warn("signup bind failed", "error", err, "remote_addr", c.ClientIP())
		c.JSON(http.StatusBadRequest, api.Fail("all fields are required"))
		return
	}

	user, token, err := h.auth.Signup(c.Request.Context(), usecase.SignupInput{
		Name:            req.Name,
		Alias:           req.Alias,
		Email:           req.Email,
		DateOfBirth:     req.DateOfBirth,
		Address:         req.Address,
		Password:        req.Password,
		ConfirmPassword: req.ConfirmPassword,
	})
	if err != nil {
		slog.Warn("signup failed", "error", err, "remote_addr", c.ClientIP())
		status, body := api.FromError(err)
		c.JSON(status, body)
		return
	}

	h.cookies.Set(c, token)
	slog.Info("user signup successful", "user_id", user.ID, "remote_addr", c.ClientIP())
	c.JSON(http.StatusCreated, api.UserOK("user created successfully", user))
}

// Login はユーザーログインAPIエンドポイントを処理します。
// - リクエストJSONをLoginReqにバインド
// - 未検出時は404、認証失敗時は401を返却
// - 成功時はセッションクッキーを設定して200を返却
func (h *AuthHandler) Login(c *gin.Context) {
	var req dto.LoginReq
	if err := c.ShouldBindJSON(&req); err != nil {
		slog.Warn("login bind failed", "error", err, "remote_addr", c.ClientIP())
		c.JSON(http.StatusBadRequest, api.Fail("all fields are required"))
		return
	}

	user, token, err := h.auth.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		slog.Warn("login failed", "error", err, "remote_addr", c.ClientIP())
		status, body := api.FromError(err)
		c.JSON(status, body)
		return
	}

	h.cookies.Set(c, token)
	slog.Info("user login successful", "user_id", user.ID, "remote_addr", c.ClientIP())
	c.JSON(http.StatusOK, api.UserOK("logged in successfully", user))
}

// Logout はセッションクッキーを削除します。
// クッキーの有無にかかわらず常に成功を返します（冪等）。
func (h *AuthHandler) Logout(c *gin.Context) {
	h.cookies.Clear(c)
	c.JSON(http.StatusOK, api.OK("logged out successfully"))
}

// UpdateProfile はプロフィール更新APIエンドポイントを処理します。
// 認証ミドルウェアを通過したリクエストのみが到達します。
func (h *AuthHandler) UpdateProfile(c *gin.Context) {
	userID, ok := jwtmw.UserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, api.Fail("authentication required"))
		return
	}

	var req dto.UpdateProfileReq
	if err := c.ShouldBindJSON(&req); err != nil {
		slog.Warn("update profile bind failed", "error", err, "remote_addr", c.ClientIP())
		c.JSON(http.StatusBadRequest, api.Fail("all fields are required"))
		return
	}

	user, err := h.auth.UpdateProfile(c.Request.Context(), userID, usecase.UpdateProfileInput{
		Name:         req.Name,
		Alias:        req.Alias,
		Email:        req.Email,
		DateOfBirth:  req.DateOfBirth,
		Address:      req.Address,
		ProfilePhoto: req.ProfilePhoto,
	})
	if err != nil {
		slog.Warn("update profile failed", "error", err, "user_id", userID, "remote_addr", c.ClientIP())
		status, body := api.FromError(err)
		c.JSON(status, body)
		return
	}

	slog.Info("profile updated", "user_id", userID)
	c.JSON(http.StatusOK, api.UserOK("profile updated successfully", user))
}

// ChangePassword はパスワード変更APIエンドポイントを処理します。
func (h *AuthHandler) ChangePassword(c *gin.Context) {
	userID, ok := jwtmw.UserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, api.Fail("authentication required"))
		return
	}

	var req dto.ChangePasswordReq
	if err := c.ShouldBindJSON(&req); err != nil {
		slog.Warn("change password bind failed", "error", err, "remote_addr", c.ClientIP())
		c.JSON(http.StatusBadRequest, api.Fail("old and new passwords are required"))
		return
	}

	if err := h.auth.ChangePassword(c.Request.Context(), userID, req.OldPassword, req.NewPassword); err != nil {
		slog.Warn("change password failed", "error", err, "user_id", userID, "remote_addr", c.ClientIP())
		status, body := api.FromError(err)
		c.JSON(status, body)
		return
	}

	slog.Info("password changed", "user_id", userID)
	c.JSON(http.StatusOK, api.OK("password changed successfully"))
}

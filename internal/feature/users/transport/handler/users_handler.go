// Package handler はusersフィーチャー（管理者向けユーザー管理）のHTTPハンドラーを提供します。
package handler

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"idea_backend/internal/api"
	"idea_backend/internal/feature/auth/domain/entity"
	"idea_backend/internal/feature/users/transport/http/dto"
	"idea_backend/internal/feature/users/usecase"
	jwtmw "idea_backend/internal/platform/jwt"
)

// UsersUsecase はユーザー管理操作のユースケースを定義します。
type UsersUsecase interface {
	// List は全ユーザーを取得します。
	List(ctx context.Context) ([]entity.User, error)
	// Update は指定ユーザーのプロフィールとロールを更新します。
	Update(ctx context.Context, id uint, in usecase.UpdateUserInput) (*entity.User, error)
	// Delete は指定ユーザーを削除します。呼び出し者自身は削除できません。
	Delete(ctx context.Context, callerID, id uint) error
}

// CallerLookup は認可判定のために呼び出し者のレコードを取得します。
// ロールはトークンではなく常にストアの最新レコードから読みます。
type CallerLookup interface {
	FindByID(ctx context.Context, id uint) (*entity.User, error)
}

// UsersHandler はユーザー管理操作のHTTPリクエストを処理します。
type UsersHandler struct {
	users UsersUsecase
}

// NewUsersHandler はUsersHandlerの新しいインスタンスを生成します。
func NewUsersHandler(users UsersUsecase) *UsersHandler {
	return &UsersHandler{users: users}
}

// RequireAdmin は呼び出し者が管理者であることを検証するミドルウェアです。
// 認証ミドルウェアの後段に配置し、ストアの最新レコードでロールを確認します。
func RequireAdmin(lookup CallerLookup) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := jwtmw.UserIDFromContext(c)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, api.Fail("authentication required"))
			return
		}
		caller, err := lookup.FindByID(c.Request.Context(), userID)
		if err != nil {
			slog.Warn("admin check failed", "error", err, "user_id", userID)
			c.AbortWithStatusJSON(http.StatusUnauthorized, api.Fail("invalid or expired token"))
			return
		}
		if !caller.IsAdmin() {
			c.AbortWithStatusJSON(http.StatusForbidden, api.Fail("admin access required"))
			return
		}
		c.Next()
	}
}

// List は全ユーザーの一覧APIエンドポイントを処理します。
func (h *UsersHandler) List(c *gin.Context) {
	users, err := h.users.List(c.Request.Context())
	if err != nil {
		slog.Error("user listing failed", "error", err)
		status, body := api.FromError(err)
		c.JSON(status, body)
		return
	}
	c.JSON(http.StatusOK, api.UsersOK("users fetched successfully", users))
}

// Update はユーザー更新APIエンドポイントを処理します。
func (h *UsersHandler) Update(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	var req dto.UpdateUserReq
	if err := c.ShouldBindJSON(&req); err != nil {
		slog.Warn("user update bind failed", "error", err, "remote_addr", c.ClientIP())
		c.JSON(http.StatusBadRequest, api.Fail("all fields are required"))
		return
	}

	user, err := h.users.Update(c.Request.Context(), id, usecase.UpdateUserInput{
		Name:        req.Name,
		Alias:       req.Alias,
		Email:       req.Email,
		DateOfBirth: req.DateOfBirth,
		Address:     req.Address,
		Role:        req.Role,
	})
	if err != nil {
		slog.Warn("user update failed", "error", err, "target_id", id)
		status, body := api.FromError(err)
		c.JSON(status, body)
		return
	}

	slog.Info("user updated by admin", "target_id", id)
	c.JSON(http.StatusOK, api.UserOK("user updated successfully", user))
}

// Delete はユーザー削除APIエンドポイントを処理します。
func (h *UsersHandler) Delete(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	callerID, ok := jwtmw.UserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, api.Fail("authentication required"))
		return
	}

	if err := h.users.Delete(c.Request.Context(), callerID, id); err != nil {
		slog.Warn("user delete failed", "error", err, "target_id", id)
		status, body := api.FromError(err)
		c.JSON(status, body)
		return
	}

	slog.Info("user deleted by admin", "target_id", id, "caller_id", callerID)
	c.JSON(http.StatusOK, api.OK("user deleted successfully"))
}

// pathID は:idパスパラメータを解析します。不正な値は400を返します。
func pathID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, api.Fail("invalid user id"))
		return 0, false
	}
	return uint(id), true
}

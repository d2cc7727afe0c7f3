package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"idea_backend/internal/feature/auth/domain"
	"idea_backend/internal/feature/auth/domain/entity"
	"idea_backend/internal/feature/auth/usecase"
	jwtmw "idea_backend/internal/platform/jwt"
	"idea_backend/internal/platform/session"
)

// mockAuthUsecase is a mock implementation of the AuthUsecase interface.
type mockAuthUsecase struct {
	SignupFunc         func(ctx context.Context, in usecase.SignupInput) (*entity.User, string, error)
	LoginFunc          func(ctx context.Context, email, password string) (*entity.User, string, error)
	UpdateProfileFunc  func(ctx context.Context, userID uint, in usecase.UpdateProfileInput) (*entity.User, error)
	ChangePasswordFunc func(ctx context.Context, userID uint, oldPassword, newPassword string) error
}

func (m *mockAuthUsecase) Signup(ctx context.Context, in usecase.SignupInput) (*entity.User, string, error) {
	return m.SignupFunc(ctx, in)
}

func (m *mockAuthUsecase) Login(ctx context.Context, email, password string) (*entity.User, string, error) {
	return m.LoginFunc(ctx, email, password)
}

func (m *mockAuthUsecase) UpdateProfile(ctx context.Context, userID uint, in usecase.UpdateProfileInput) (*entity.User, error) {
	return m.UpdateProfileFunc(ctx, userID, in)
}

func (m *mockAuthUsecase) ChangePassword(ctx context.Context, userID uint, oldPassword, newPassword string) error {
	return m.ChangePasswordFunc(ctx, userID, oldPassword, newPassword)
}

func testUser() *entity.User {
	dob := time.Date(1990, 12, 31, 0, 0, 0, 0, time.UTC)
	return &entity.User{
		ID:          1,
		Name:        "Alice",
		Alias:       "alice1",
		Email:       "a@x.com",
		Password:    "$2a$10$secret-hash",
		DateOfBirth: &dob,
		Role:        entity.RoleUser,
		LastLogin:   time.Now(),
		CreatedAt:   time.Now(),
	}
}

func newTestRouter(h *AuthHandler) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	auth := r.Group("/api/auth")
	auth.POST("/signup", h.Signup)
	auth.POST("/login", h.Login)
	auth.POST("/logout", h.Logout)
	auth.PUT("/update-profile", withUserID(1), h.UpdateProfile)
	auth.PUT("/change-password", withUserID(1), h.ChangePassword)
	return r
}

// withUserID simulates a request that passed the authentication middleware.
func withUserID(id uint) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(jwtmw.ContextUserID, id)
		c.Next()
	}
}

func doJSON(t *testing.T, r *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var body map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body), "response is not valid JSON")
	return body
}

func TestAuthHandler_Signup(t *testing.T) {
	t.Run("successful signup sets cookie and returns 201", func(t *testing.T) {
		mock := &mockAuthUsecase{
			SignupFunc: func(ctx context.Context, in usecase.SignupInput) (*entity.User, string, error) {
				assert.Equal(t, "Alice", in.Name)
				return testUser(), "issued-token", nil
			},
		}
		h := NewAuthHandler(mock, session.CookieOptions{MaxAge: time.Hour})
		r := newTestRouter(h)

		w := doJSON(t, r, http.MethodPost, "/api/auth/signup",
			`{"name":"Alice","alias":"alice1","email":"a@x.com","password":"longenough1","confirmPassword":"longenough1"}`)

		assert.Equal(t, http.StatusCreated, w.Code)

		body := decodeBody(t, w)
		assert.Equal(t, true, body["success"])
		assert.Equal(t, "user created successfully", body["message"])

		user, ok := body["user"].(map[string]any)
		require.True(t, ok, "response should carry a user object")
		assert.Equal(t, "alice1", user["alias"])
		assert.Equal(t, "user", user["role"])
		assert.NotContains(t, user, "password", "password must never leave the API")
		assert.Equal(t, "1990-12-31", user["dateOfBirth"])

		cookies := w.Result().Cookies()
		require.Len(t, cookies, 1, "session cookie should be set")
		assert.Equal(t, session.CookieName, cookies[0].Name)
		assert.Equal(t, "issued-token", cookies[0].Value)
		assert.True(t, cookies[0].HttpOnly, "cookie must be HTTP-only")
	})

	t.Run("validation error returns 400 envelope", func(t *testing.T) {
		mock := &mockAuthUsecase{
			SignupFunc: func(ctx context.Context, in usecase.SignupInput) (*entity.User, string, error) {
				return nil, "", domain.Validation("passwords do not match")
			},
		}
		h := NewAuthHandler(mock, session.CookieOptions{})
		r := newTestRouter(h)

		w := doJSON(t, r, http.MethodPost, "/api/auth/signup", `{"name":"Alice"}`)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		body := decodeBody(t, w)
		assert.Equal(t, false, body["success"])
		assert.Equal(t, "passwords do not match", body["message"])
		assert.Empty(t, w.Result().Cookies(), "no cookie on failure")
	})

	t.Run("conflict returns 400 envelope", func(t *testing.T) {
		mock := &mockAuthUsecase{
			SignupFunc: func(ctx context.Context, in usecase.SignupInput) (*entity.User, string, error) {
				return nil, "", domain.Conflict("this alias is already used")
			},
		}
		h := NewAuthHandler(mock, session.CookieOptions{})
		r := newTestRouter(h)

		w := doJSON(t, r, http.MethodPost, "/api/auth/signup", `{"alias":"taken"}`)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		body := decodeBody(t, w)
		assert.Equal(t, "this alias is already used", body["message"])
	})

	t.Run("malformed JSON returns 400", func(t *testing.T) {
		h := NewAuthHandler(&mockAuthUsecase{}, session.CookieOptions{})
		r := newTestRouter(h)

		w := doJSON(t, r, http.MethodPost, "/api/auth/signup", `{not json`)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		body := decodeBody(t, w)
		assert.Equal(t, false, body["success"])
	})

	t.Run("unexpected error returns generic 500", func(t *testing.T) {
		mock := &mockAuthUsecase{
			SignupFunc: func(ctx context.Context, in usecase.SignupInput) (*entity.User, string, error) {
				return nil, "", assert.AnError
			},
		}
		h := NewAuthHandler(mock, session.CookieOptions{})
		r := newTestRouter(h)

		w := doJSON(t, r, http.MethodPost, "/api/auth/signup", `{"name":"Alice"}`)

		assert.Equal(t, http.StatusInternalServerError, w.Code)
		body := decodeBody(t, w)
		assert.Equal(t, "something went wrong", body["message"], "internal detail must not leak")
	})
}

func TestAuthHandler_Login(t *testing.T) {
	t.Run("successful login sets cookie", func(t *testing.T) {
		mock := &mockAuthUsecase{
			LoginFunc: func(ctx context.Context, email, password string) (*entity.User, string, error) {
				assert.Equal(t, "a@x.com", email)
				return testUser(), "issued-token", nil
			},
		}
		h := NewAuthHandler(mock, session.CookieOptions{MaxAge: time.Hour})
		r := newTestRouter(h)

		w := doJSON(t, r, http.MethodPost, "/api/auth/login", `{"email":"a@x.com","password":"longenough1"}`)

		assert.Equal(t, http.StatusOK, w.Code)
		body := decodeBody(t, w)
		assert.Equal(t, true, body["success"])
		assert.Equal(t, "logged in successfully", body["message"])
		require.Contains(t, body, "user")

		cookies := w.Result().Cookies()
		require.Len(t, cookies, 1)
		assert.Equal(t, "issued-token", cookies[0].Value)
	})

	t.Run("unknown user returns 404", func(t *testing.T) {
		mock := &mockAuthUsecase{
			LoginFunc: func(ctx context.Context, email, password string) (*entity.User, string, error) {
				return nil, "", domain.NotFound("user not found")
			},
		}
		h := NewAuthHandler(mock, session.CookieOptions{})
		r := newTestRouter(h)

		w := doJSON(t, r, http.MethodPost, "/api/auth/login", `{"email":"x@x.com","password":"pw"}`)

		assert.Equal(t, http.StatusNotFound, w.Code)
		body := decodeBody(t, w)
		assert.Equal(t, "user not found", body["message"])
	})

	t.Run("bad credentials return 401", func(t *testing.T) {
		mock := &mockAuthUsecase{
			LoginFunc: func(ctx context.Context, email, password string) (*entity.User, string, error) {
				return nil, "", domain.Unauthorized("invalid credentials")
			},
		}
		h := NewAuthHandler(mock, session.CookieOptions{})
		r := newTestRouter(h)

		w := doJSON(t, r, http.MethodPost, "/api/auth/login", `{"email":"a@x.com","password":"wrong"}`)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
		body := decodeBody(t, w)
		assert.Equal(t, false, body["success"])
		assert.Equal(t, "invalid credentials", body["message"])
		assert.Empty(t, w.Result().Cookies(), "no cookie on failed login")
	})
}

func TestAuthHandler_Logout(t *testing.T) {
	h := NewAuthHandler(&mockAuthUsecase{}, session.CookieOptions{MaxAge: time.Hour})
	r := newTestRouter(h)

	// Logout succeeds with or without a session cookie.
	for i := 0; i < 2; i++ {
		w := doJSON(t, r, http.MethodPost, "/api/auth/logout", "")

		assert.Equal(t, http.StatusOK, w.Code)
		body := decodeBody(t, w)
		assert.Equal(t, true, body["success"])
		assert.Equal(t, "logged out successfully", body["message"])

		cookies := w.Result().Cookies()
		require.Len(t, cookies, 1, "an expired cookie should be sent")
		assert.Equal(t, session.CookieName, cookies[0].Name)
		assert.Less(t, cookies[0].MaxAge, 0, "cookie must be expired")
	}
}

func TestAuthHandler_UpdateProfile(t *testing.T) {
	t.Run("successful update returns the new projection", func(t *testing.T) {
		mock := &mockAuthUsecase{
			UpdateProfileFunc: func(ctx context.Context, userID uint, in usecase.UpdateProfileInput) (*entity.User, error) {
				assert.Equal(t, uint(1), userID, "user identity comes from the verified token")
				u := testUser()
				u.Name = in.Name
				return u, nil
			},
		}
		h := NewAuthHandler(mock, session.CookieOptions{})
		r := newTestRouter(h)

		w := doJSON(t, r, http.MethodPut, "/api/auth/update-profile",
			`{"name":"Renamed","alias":"alice1","email":"a@x.com","dateOfBirth":"1990-12-31","address":"12 Idea Street"}`)

		assert.Equal(t, http.StatusOK, w.Code)
		body := decodeBody(t, w)
		assert.Equal(t, "profile updated successfully", body["message"])
		user := body["user"].(map[string]any)
		assert.Equal(t, "Renamed", user["name"])
	})

	t.Run("conflict from another user returns 400", func(t *testing.T) {
		mock := &mockAuthUsecase{
			UpdateProfileFunc: func(ctx context.Context, userID uint, in usecase.UpdateProfileInput) (*entity.User, error) {
				return nil, domain.Conflict("a user with this email already exists")
			},
		}
		h := NewAuthHandler(mock, session.CookieOptions{})
		r := newTestRouter(h)

		w := doJSON(t, r, http.MethodPut, "/api/auth/update-profile", `{"email":"taken@x.com"}`)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		body := decodeBody(t, w)
		assert.Equal(t, "a user with this email already exists", body["message"])
	})
}

func TestAuthHandler_ChangePassword(t *testing.T) {
	t.Run("successful change", func(t *testing.T) {
		mock := &mockAuthUsecase{
			ChangePasswordFunc: func(ctx context.Context, userID uint, oldPassword, newPassword string) error {
				assert.Equal(t, uint(1), userID)
				assert.Equal(t, "oldpassword1", oldPassword)
				assert.Equal(t, "newpassword1", newPassword)
				return nil
			},
		}
		h := NewAuthHandler(mock, session.CookieOptions{})
		r := newTestRouter(h)

		w := doJSON(t, r, http.MethodPut, "/api/auth/change-password",
			`{"oldPassword":"oldpassword1","newPassword":"newpassword1"}`)

		assert.Equal(t, http.StatusOK, w.Code)
		body := decodeBody(t, w)
		assert.Equal(t, "password changed successfully", body["message"])
	})

	t.Run("wrong old password returns 401", func(t *testing.T) {
		mock := &mockAuthUsecase{
			ChangePasswordFunc: func(ctx context.Context, userID uint, oldPassword, newPassword string) error {
				return domain.Unauthorized("old password is incorrect")
			},
		}
		h := NewAuthHandler(mock, session.CookieOptions{})
		r := newTestRouter(h)

		w := doJSON(t, r, http.MethodPut, "/api/auth/change-password",
			`{"oldPassword":"wrong","newPassword":"newpassword1"}`)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
		body := decodeBody(t, w)
		assert.Equal(t, "old password is incorrect", body["message"])
	})
}

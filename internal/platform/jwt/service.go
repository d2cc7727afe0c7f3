// Package jwtmw issues and verifies the signed session tokens and provides
// the Gin middleware that gates protected routes.
package jwtmw

import (
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// ErrInvalidToken is the single failure callers see from Verify. The
// internal distinction between a bad signature, an expired token and a
// malformed one is logged but never exposed.
var ErrInvalidToken = errors.New("invalid or expired token")

// Service signs and verifies session tokens. The secret and validity
// window are fixed at construction and read concurrently without locking.
type Service struct {
	secret   []byte
	validity time.Duration
}

// NewService creates a token service with the given signing secret and
// validity window.
func NewService(secret string, validity time.Duration) *Service {
	return &Service{
		secret:   []byte(secret),
		validity: validity,
	}
}

// Validity returns the token validity window, which the session cookie's
// Max-Age mirrors.
func (s *Service) Validity() time.Duration {
	return s.validity
}

// Issue creates a signed token binding the user ID to an absolute expiry.
func (s *Service) Issue(userID uint) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"sub": userID,
		"iat": now.Unix(),
		"exp": now.Add(s.validity).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}

	return signed, nil
}

// Verify checks signature integrity and expiry and returns the embedded
// user ID. Every failure collapses to ErrInvalidToken.
func (s *Service) Verify(tokenStr string) (uint, error) {
	token, err := jwt.Parse(tokenStr, func(t *jwt.Token) (interface{}, error) {
		// Only HMAC signatures are accepted
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return s.secret, nil
	})
	if err != nil || !token.Valid {
		slog.Debug("token verification failed", "reason", rejectReason(err))
		return 0, ErrInvalidToken
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return 0, ErrInvalidToken
	}
	sub, ok := claims["sub"].(float64) // JWT numbers are decoded as float64
	if !ok || sub <= 0 {
		return 0, ErrInvalidToken
	}

	return uint(sub), nil
}

// rejectReason names the verification failure for the log line.
func rejectReason(err error) string {
	switch {
	case err == nil:
		return "token not valid"
	case errors.Is(err, jwt.ErrTokenExpired):
		return "expired"
	case errors.Is(err, jwt.ErrTokenSignatureInvalid):
		return "invalid signature"
	case errors.Is(err, jwt.ErrTokenMalformed):
		return "malformed"
	default:
		return "rejected"
	}
}

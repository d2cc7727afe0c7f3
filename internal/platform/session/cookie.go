// Package session carries the session token between client and server.
// The token travels in an HTTP-only cookie; a bearer Authorization header
// is accepted as a fallback for clients that cannot use cookies.
package session

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
)

// CookieName is the name of the session cookie.
const CookieName = "token"

// CookieOptions configures how the session cookie is written.
type CookieOptions struct {
	// MaxAge should match the token's validity window.
	MaxAge time.Duration
	// Secure restricts the cookie to HTTPS. Off in local development.
	Secure bool
}

// Set attaches the session token as an HTTP-only cookie.
// HTTP-only keeps the token out of reach of page scripts.
func (o CookieOptions) Set(c *gin.Context, token string) {
	http.SetCookie(c.Writer, &http.Cookie{
		Name:     CookieName,
		Value:    token,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
		Secure:   o.Secure,
		MaxAge:   int(o.MaxAge.Seconds()),
	})
}

// Clear expires the session cookie. Clearing an absent cookie is fine, so
// logout stays idempotent.
func (o CookieOptions) Clear(c *gin.Context) {
	http.SetCookie(c.Writer, &http.Cookie{
		Name:     CookieName,
		Value:    "",
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
		Secure:   o.Secure,
		MaxAge:   -1,
	})
}

// TokenFromRequest extracts the session token from an inbound request:
// cookie first, then `Authorization: Bearer`. The second return value is
// false when neither source carries a token.
func TokenFromRequest(r *http.Request) (string, bool) {
	if cookie, err := r.Cookie(CookieName); err == nil && cookie.Value != "" {
		return cookie.Value, true
	}
	auth := r.Header.Get("Authorization")
	if token, found := strings.CutPrefix(auth, "Bearer "); found && token != "" {
		return token, true
	}
	return "", false
}

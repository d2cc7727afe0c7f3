package jwtmw

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"idea_backend/internal/api"
	"idea_backend/internal/platform/session"
)

// ContextUserID is the Gin context key under which the middleware stores
// the authenticated caller's user ID.
const ContextUserID = "userID"

// Verifier decodes a session token into a user ID.
// Following Go convention: the interface is defined by the consumer
// (middleware), not the provider (Service).
type Verifier interface {
	Verify(token string) (uint, error)
}

// AuthRequired returns a Gin middleware that restricts access to requests
// carrying a valid session token. The token is read from the session
// cookie first, then from a bearer Authorization header. The middleware
// only resolves the caller's ID; looking up the full record is the
// downstream handler's job.
func AuthRequired(verifier Verifier) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, ok := session.TokenFromRequest(c.Request)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, api.Fail("authentication required - token missing"))
			return
		}

		userID, err := verifier.Verify(token)
		if err != nil {
			// The reason stays in the log; the caller sees a generic 401.
			slog.Warn("request with invalid token", "remote_addr", c.ClientIP(), "error", err)
			c.AbortWithStatusJSON(http.StatusUnauthorized, api.Fail("invalid or expired token"))
			return
		}

		c.Set(ContextUserID, userID)
		c.Next()
	}
}

// UserIDFromContext extracts the authenticated user ID the middleware
// stored on the context.
func UserIDFromContext(c *gin.Context) (uint, bool) {
	id, ok := c.Get(ContextUserID)
	if !ok {
		return 0, false
	}
	userID, ok := id.(uint)
	return userID, ok
}

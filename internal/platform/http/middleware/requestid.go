// Package middleware provides platform-level Gin middleware.
package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// HeaderXRequestID is the response header carrying the request ID.
const HeaderXRequestID = "X-Request-ID"

// ContextRequestID is the Gin context key for the request ID.
const ContextRequestID = "requestID"

// RequestID assigns every request a UUID, stores it on the context for log
// correlation and echoes it in the response header. An ID supplied by the
// client is kept so traces survive proxies.
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(HeaderXRequestID)
		if id == "" {
			id = uuid.NewString()
		}

		c.Set(ContextRequestID, id)
		c.Header(HeaderXRequestID, id)
		c.Next()
	}
}

// RequestIDFromContext returns the request ID assigned by RequestID, or an
// empty string when the middleware did not run.
func RequestIDFromContext(c *gin.Context) string {
	return c.GetString(ContextRequestID)
}

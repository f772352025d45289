package middleware

import (
	"github.com/factuur/backend/internal/infrastructure/logger"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	// RequestIDKey is the gin context key for the request ID
	RequestIDKey = "request_id"
	// RequestIDHeader is the header the ID is read from and echoed back on
	RequestIDHeader = "X-Request-ID"
)

// RequestID assigns every request an ID, honoring one supplied by the caller.
// The ID is placed in the gin context, the response header, and the request
// context so log lines correlate across layers.
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := c.GetHeader(RequestIDHeader)
		if requestID == "" {
			requestID = uuid.NewString()
		}

		c.Set(RequestIDKey, requestID)
		c.Writer.Header().Set(RequestIDHeader, requestID)

		ctx := c.Request.Context()
		log := logger.FromContext(ctx)
		ctx, _ = logger.WithRequestID(ctx, log, requestID)
		c.Request = c.Request.WithContext(ctx)

		c.Next()
	}
}

// GetRequestID returns the request's ID, or an empty string outside the
// middleware chain.
func GetRequestID(c *gin.Context) string {
	return c.GetString(RequestIDKey)
}

package middleware

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/yigit/trainerapi/internal/pkg/logger"
)

// RequestIDHeader is the HTTP header for request tracing.
const RequestIDHeader = "X-Request-ID"

const requestIDKey = "requestID"

// RequestLogger assigns every request an id, stores a logger tagged with it
// in the request context and writes one access log line per request.
func RequestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		rid := c.GetHeader(RequestIDHeader)
		if rid == "" {
			rid = uuid.NewString()
		}
		c.Set(requestIDKey, rid)
		c.Writer.Header().Set(RequestIDHeader, rid)

		reqLogger := logger.Get().With().Str("requestID", rid).Logger()
		c.Request = c.Request.WithContext(logger.WithContext(c.Request.Context(), reqLogger))

		c.Next()

		status := c.Writer.Status()
		event := reqLogger.Info()
		if status >= 500 {
			event = reqLogger.Error()
		} else if status >= 400 {
			event = reqLogger.Warn()
		}

		event.
			Str("method", c.Request.Method).
			Str("path", c.Request.URL.Path).
			Int("status", status).
			Dur("latency", time.Since(start)).
			Str("clientIP", c.ClientIP()).
			Msg("Request handled")
	}
}

// GetRequestID returns the id RequestLogger assigned to the request
func GetRequestID(c *gin.Context) string {
	return c.GetString(requestIDKey)
}

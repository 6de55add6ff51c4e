package middleware

import (
	"time"

	"social-realtime/pkg/response"

	"github.com/gin-gonic/gin"
)

// Recovery turns handler panics into a 500 envelope.
func (m Middleware) Recovery() gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if err := recover(); err != nil {
				ctx := c.Request.Context()
				m.logger.Errorf(ctx, "Panic recovered: %v | Method: %s | Path: %s",
					err, c.Request.Method, c.Request.URL.Path)

				response.PanicError(c, err, m.logger)
				c.Abort()
			}
		}()
		c.Next()
	}
}

// Logging writes one line per request.
func (m Middleware) Logging() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		m.logger.Debugf(c.Request.Context(), "%s %s | %d | %s",
			c.Request.Method, c.Request.URL.Path, c.Writer.Status(), time.Since(start))
	}
}

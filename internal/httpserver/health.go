package httpserver

import (
	"social-realtime/internal/session"
	"social-realtime/pkg/errors"
	"social-realtime/pkg/response"

	"github.com/gin-gonic/gin"
)

const (
	serviceName = "social-realtime"
	version     = "1.0.0"
)

// healthCheck reports the session and, when configured, the Redis mirror.
func (srv *HTTPServer) healthCheck(c *gin.Context) {
	stats := srv.session.Stats()

	redisStatus := "disabled"
	if srv.redis != nil {
		redisStatus = "connected"
		if _, err := srv.redis.Ping(c.Request.Context()); err != nil {
			redisStatus = "unreachable"
		}
	}

	response.OK(c, gin.H{
		"status":             "healthy",
		"service":            serviceName,
		"version":            version,
		"session":            stats.State,
		"reconnect_attempts": stats.ReconnectAttempts,
		"reconnect_halted":   stats.ReconnectHalted,
		"redis":              redisStatus,
	})
}

// readyCheck succeeds once the realtime session is connected.
func (srv *HTTPServer) readyCheck(c *gin.Context) {
	ctx := c.Request.Context()

	if state := srv.session.State(); state != session.StateConnected {
		response.HttpError(c, errors.NewHTTPError(503, "Realtime session is "+state.String()))
		return
	}
	if srv.redis != nil {
		if _, err := srv.redis.Ping(ctx); err != nil {
			response.HttpError(c, errors.NewHTTPError(503, "Redis connection not available"))
			return
		}
	}

	response.OK(c, gin.H{
		"status":  "ready",
		"service": serviceName,
		"version": version,
	})
}

func (srv *HTTPServer) liveCheck(c *gin.Context) {
	response.OK(c, gin.H{
		"status":  "alive",
		"service": serviceName,
		"version": version,
	})
}

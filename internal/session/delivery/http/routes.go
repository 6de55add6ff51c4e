package http

import (
	"github.com/gin-gonic/gin"
)

// RegisterRoutes registers the session routes.
func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	s := r.Group("/session")
	{
		s.GET("", h.GetSession)
		s.POST("/reconnect", h.Reconnect)
	}
	r.POST("/publish", h.Publish)
}

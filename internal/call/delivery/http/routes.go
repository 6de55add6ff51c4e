package http

import (
	"github.com/gin-gonic/gin"
)

// RegisterRoutes registers the call routes.
func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	c := r.Group("/call")
	{
		c.GET("", h.GetCall)
		c.POST("/accept", h.Accept)
		c.POST("/reject", h.Reject)
		c.POST("/end", h.End)
		c.POST("/start", h.Start)
		c.POST("/view", h.SetView)
		c.PUT("/watch/:chatId", h.Watch)
		c.DELETE("/watch/:chatId", h.Unwatch)
	}
}

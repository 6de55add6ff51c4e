package http

import (
	"github.com/gin-gonic/gin"
)

// RegisterRoutes registers the chat routes.
func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	c := r.Group("/chats/:chatId")
	{
		c.POST("/messages", h.SendMessage)
		c.POST("/messages/:messageId/resend", h.Resend)
		c.POST("/typing", h.Typing)
		c.DELETE("", h.Delete)
	}
}

package http

import (
	"social-realtime/pkg/errors"
	"social-realtime/pkg/response"

	"github.com/gin-gonic/gin"
)

// SendMessage posts a message to a chat.
func (h *Handler) SendMessage(c *gin.Context) {
	var uri chatURI
	if err := c.ShouldBindUri(&uri); err != nil {
		response.Error(c, errors.NewValidationError(400, "chatId", err.Error()), nil)
		return
	}
	var req sendReq
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, errors.NewValidationError(400, "content", err.Error()), nil)
		return
	}

	if err := h.uc.Send(c.Request.Context(), req.toInput(uri.ChatID)); err != nil {
		response.ErrorWithMap(c, err, errMap, h.logger)
		return
	}
	response.OK(c, ackResp{ChatID: uri.ChatID})
}

// Typing sends a typing indicator.
func (h *Handler) Typing(c *gin.Context) {
	var uri chatURI
	if err := c.ShouldBindUri(&uri); err != nil {
		response.Error(c, errors.NewValidationError(400, "chatId", err.Error()), nil)
		return
	}
	var req typingReq
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, errors.NewValidationError(400, "is_typing", err.Error()), nil)
		return
	}

	if err := h.uc.Typing(c.Request.Context(), uri.ChatID, *req.IsTyping); err != nil {
		response.ErrorWithMap(c, err, errMap, h.logger)
		return
	}
	response.OK(c, ackResp{ChatID: uri.ChatID})
}

// Resend asks the server to redeliver a message.
func (h *Handler) Resend(c *gin.Context) {
	var uri messageURI
	if err := c.ShouldBindUri(&uri); err != nil {
		response.Error(c, errors.NewValidationError(400, "messageId", err.Error()), nil)
		return
	}

	if err := h.uc.Resend(c.Request.Context(), uri.ChatID, uri.MessageID); err != nil {
		response.ErrorWithMap(c, err, errMap, h.logger)
		return
	}
	response.OK(c, ackResp{ChatID: uri.ChatID})
}

// Delete asks the server to delete a chat.
func (h *Handler) Delete(c *gin.Context) {
	var uri chatURI
	if err := c.ShouldBindUri(&uri); err != nil {
		response.Error(c, errors.NewValidationError(400, "chatId", err.Error()), nil)
		return
	}

	if err := h.uc.Delete(c.Request.Context(), uri.ChatID); err != nil {
		response.ErrorWithMap(c, err, errMap, h.logger)
		return
	}
	response.OK(c, ackResp{ChatID: uri.ChatID})
}

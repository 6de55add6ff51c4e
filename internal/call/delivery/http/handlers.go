package http

import (
	"social-realtime/pkg/errors"
	"social-realtime/pkg/response"

	"github.com/gin-gonic/gin"
)

// GetCall returns the coordinator state.
func (h *Handler) GetCall(c *gin.Context) {
	response.OK(c, snapshotResp{Snapshot: h.uc.Snapshot()})
}

// Accept takes the ringing call.
func (h *Handler) Accept(c *gin.Context) {
	in, err := h.uc.Accept(c.Request.Context())
	if err != nil {
		response.ErrorWithMap(c, err, errMap, h.logger)
		return
	}
	response.OK(c, in)
}

// Reject declines the ringing call.
func (h *Handler) Reject(c *gin.Context) {
	if err := h.uc.Reject(c.Request.Context()); err != nil {
		response.ErrorWithMap(c, err, errMap, h.logger)
		return
	}
	response.OK(c, snapshotResp{Snapshot: h.uc.Snapshot()})
}

// End hangs up the active call.
func (h *Handler) End(c *gin.Context) {
	if err := h.uc.EndCall(c.Request.Context()); err != nil {
		response.ErrorWithMap(c, err, errMap, h.logger)
		return
	}
	response.OK(c, snapshotResp{Snapshot: h.uc.Snapshot()})
}

// Start opens a call on a chat.
func (h *Handler) Start(c *gin.Context) {
	var req startReq
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, errors.NewValidationError(400, "chat_id", err.Error()), nil)
		return
	}

	sessionID, err := h.uc.StartCall(c.Request.Context(), req.ChatID)
	if err != nil {
		response.ErrorWithMap(c, err, errMap, h.logger)
		return
	}
	response.OK(c, startResp{ChatID: req.ChatID, SessionID: sessionID})
}

// SetView records whether the call view is open.
func (h *Handler) SetView(c *gin.Context) {
	var req viewReq
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, errors.NewValidationError(400, "open", err.Error()), nil)
		return
	}
	h.uc.SetCallViewOpen(*req.Open)
	response.OK(c, snapshotResp{Snapshot: h.uc.Snapshot()})
}

// Watch starts listening for call signals on a chat.
func (h *Handler) Watch(c *gin.Context) {
	var req watchReq
	if err := c.ShouldBindUri(&req); err != nil {
		response.Error(c, errors.NewValidationError(400, "chatId", err.Error()), nil)
		return
	}
	if err := h.uc.WatchChat(req.ChatID); err != nil {
		response.ErrorWithMap(c, err, errMap, h.logger)
		return
	}
	response.OK(c, snapshotResp{Snapshot: h.uc.Snapshot()})
}

// Unwatch stops listening for call signals on a chat.
func (h *Handler) Unwatch(c *gin.Context) {
	var req watchReq
	if err := c.ShouldBindUri(&req); err != nil {
		response.Error(c, errors.NewValidationError(400, "chatId", err.Error()), nil)
		return
	}
	h.uc.UnwatchChat(req.ChatID)
	response.OK(c, snapshotResp{Snapshot: h.uc.Snapshot()})
}

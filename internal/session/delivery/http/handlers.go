package http

import (
	"social-realtime/pkg/errors"
	"social-realtime/pkg/response"

	"github.com/gin-gonic/gin"
)

// GetSession reports connection state and counters.
func (h *Handler) GetSession(c *gin.Context) {
	response.OK(c, sessionResp{Stats: h.ctrl.Stats()})
}

// Reconnect clears the reconnect ceiling and activates a transport if none is running.
func (h *Handler) Reconnect(c *gin.Context) {
	ctx := c.Request.Context()
	h.ctrl.ResetReconnect()
	if err := h.ctrl.Connect(ctx); err != nil {
		h.logger.Warnf(ctx, "session.delivery.http.Reconnect: %v", err)
		response.ErrorWithMap(c, err, errMap, h.logger)
		return
	}
	response.OK(c, sessionResp{Stats: h.ctrl.Stats()})
}

// Publish sends a raw JSON payload to an application destination.
func (h *Handler) Publish(c *gin.Context) {
	var req publishReq
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, errors.NewValidationError(400, "body", err.Error()), nil)
		return
	}
	if err := req.validate(); err != nil {
		response.Error(c, err, nil)
		return
	}

	h.ctrl.Publish(req.Destination, req.Payload)

	response.OK(c, publishResp{
		Destination: req.Destination,
		State:       h.ctrl.State(),
	})
}

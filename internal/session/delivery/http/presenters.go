package http

import (
	"encoding/json"

	"social-realtime/internal/session"
	"social-realtime/internal/topic"
	"social-realtime/pkg/errors"
)

type publishReq struct {
	Destination string          `json:"destination" binding:"required"`
	Payload     json.RawMessage `json:"payload" binding:"required"`
}

func (r publishReq) validate() error {
	if !topic.IsDestination(r.Destination) {
		return errors.NewValidationError(400, "destination", "unknown application destination")
	}
	if !json.Valid(r.Payload) {
		return errors.NewValidationError(400, "payload", "must be valid JSON")
	}
	return nil
}

type publishResp struct {
	Destination string        `json:"destination"`
	State       session.State `json:"state"`
}

type sessionResp struct {
	session.Stats
}

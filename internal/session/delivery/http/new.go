package http

import (
	"social-realtime/internal/session"
	"social-realtime/pkg/log"
)

type Handler struct {
	ctrl   session.Controller
	logger log.Logger
}

func New(ctrl session.Controller, logger log.Logger) *Handler {
	return &Handler{ctrl: ctrl, logger: logger}
}

package http

import (
	"social-realtime/internal/chat"
	"social-realtime/pkg/log"
)

type Handler struct {
	uc     chat.UseCase
	logger log.Logger
}

func New(uc chat.UseCase, logger log.Logger) *Handler {
	return &Handler{uc: uc, logger: logger}
}

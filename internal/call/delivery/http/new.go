package http

import (
	"social-realtime/internal/call"
	"social-realtime/pkg/log"
)

type Handler struct {
	uc     call.UseCase
	logger log.Logger
}

func New(uc call.UseCase, logger log.Logger) *Handler {
	return &Handler{uc: uc, logger: logger}
}

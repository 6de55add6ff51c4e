package usecase

import (
	"social-realtime/internal/chat"
	"social-realtime/internal/eventbus"
	"social-realtime/internal/session"
	"social-realtime/pkg/log"
)

type usecase struct {
	logger    log.Logger
	messenger session.Messenger
	bus       eventbus.Bus
	names     chat.NameSink
	userID    int64
}

// New returns the chat use case for the local user. bus and names may be nil.
func New(logger log.Logger, messenger session.Messenger, bus eventbus.Bus, names chat.NameSink, userID int64) chat.UseCase {
	return &usecase{
		logger:    logger,
		messenger: messenger,
		bus:       bus,
		names:     names,
		userID:    userID,
	}
}

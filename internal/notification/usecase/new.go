package usecase

import (
	"sync"

	"social-realtime/internal/eventbus"
	"social-realtime/internal/notification"
	"social-realtime/internal/session"
	"social-realtime/pkg/log"
)

type usecase struct {
	logger    log.Logger
	messenger session.Messenger
	bus       eventbus.Bus

	mu       sync.Mutex
	handlers []notification.Handler
}

// New returns the notification use case. bus may be nil.
func New(logger log.Logger, messenger session.Messenger, bus eventbus.Bus) notification.UseCase {
	return &usecase{
		logger:    logger,
		messenger: messenger,
		bus:       bus,
	}
}

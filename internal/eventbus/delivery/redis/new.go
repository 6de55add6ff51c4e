package redis

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"social-realtime/internal/eventbus"
	"social-realtime/pkg/log"
	pkgRedis "social-realtime/pkg/redis"
)

const (
	channelPrefix     = "realtime:events:"
	defaultMaxRetries = 10
	defaultRetryDelay = 5 * time.Second
)

// Bridge mirrors local bus events to Redis and relays events published by
// other instances of the same user into the local bus.
type Bridge interface {
	Start(ctx context.Context) error
	Shutdown(ctx context.Context) error
}

type bridge struct {
	redis   pkgRedis.IRedis
	bus     eventbus.Bus
	logger  log.Logger
	channel string
	origin  string

	maxRetries int
	retryDelay time.Duration

	mu        sync.Mutex
	cancelTap func()
	cancelSub func() error
	wg        sync.WaitGroup
	quit      chan struct{}
}

// Channel returns the Redis channel carrying the events of userID.
func Channel(userID string) string {
	return channelPrefix + userID
}

func New(redis pkgRedis.IRedis, bus eventbus.Bus, logger log.Logger, userID string) Bridge {
	return &bridge{
		redis:      redis,
		bus:        bus,
		logger:     logger,
		channel:    Channel(userID),
		origin:     uuid.NewString(),
		maxRetries: defaultMaxRetries,
		retryDelay: defaultRetryDelay,
		quit:       make(chan struct{}),
	}
}

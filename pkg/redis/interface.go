package redis

import (
	"context"
	"time"
)

// IRedis is the slice of Redis used by the event mirror.
type IRedis interface {
	Publish(ctx context.Context, channel string, payload []byte) error
	// Subscribe blocks until the subscription is confirmed. The returned
	// channel is closed once cancel is called or the connection is lost.
	Subscribe(ctx context.Context, channels ...string) (<-chan Message, func() error, error)
	Ping(ctx context.Context) (time.Duration, error)
	Close() error
}

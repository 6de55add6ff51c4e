package redis

import "time"

const (
	// DefaultConnectTimeout bounds the initial ping.
	DefaultConnectTimeout = 5 * time.Second
	// channelBuffer is the size of the Go channel fed by a subscription.
	channelBuffer = 100
)

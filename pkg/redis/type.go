package redis

import (
	"time"

	goredis "github.com/redis/go-redis/v9"
)

// Config holds connection settings for a standalone Redis server.
type Config struct {
	Host     string
	Port     int
	Password string
	DB       int
	UseTLS   bool

	MaxRetries      int
	MinIdleConns    int
	PoolSize        int
	PoolTimeout     time.Duration
	ConnMaxIdleTime time.Duration
	ConnMaxLifetime time.Duration
}

// Message is one payload received on a subscribed channel.
type Message struct {
	Channel string
	Payload []byte
}

type redisImpl struct {
	client *goredis.Client
}

package config

import (
	"errors"
	"fmt"
	"net/url"
	"time"

	"github.com/caarlos0/env/v9"
)

type Config struct {
	Environment EnvironmentConfig
	Logger      LoggerConfig

	// Realtime session
	Realtime    RealtimeConfig
	Credentials CredentialsConfig

	// Collaborators
	API   APIConfig
	Redis RedisConfig

	// Local control surface
	Server ServerConfig
}

// EnvironmentConfig is the configuration for environment-aware features
type EnvironmentConfig struct {
	Name string `env:"ENV" envDefault:"production"`
}

// LoggerConfig is the configuration for the logger
type LoggerConfig struct {
	Level        string `env:"LOGGER_LEVEL" envDefault:"info"`
	Mode         string `env:"LOGGER_MODE" envDefault:"production"`
	Encoding     string `env:"LOGGER_ENCODING" envDefault:"json"`
	ColorEnabled bool   `env:"LOGGER_COLOR_ENABLED" envDefault:"true"`
}

// RealtimeConfig configures the STOMP-over-WebSocket session.
type RealtimeConfig struct {
	URL                  string        `env:"RT_URL" envDefault:"ws://localhost:8080/ws"`
	HeartbeatIncoming    time.Duration `env:"RT_HEARTBEAT_INCOMING" envDefault:"10s"`
	HeartbeatOutgoing    time.Duration `env:"RT_HEARTBEAT_OUTGOING" envDefault:"10s"`
	ReconnectDelay       time.Duration `env:"RT_RECONNECT_DELAY" envDefault:"5s"`
	MaxReconnectAttempts int           `env:"RT_MAX_RECONNECT_ATTEMPTS" envDefault:"10"`
	FlushRetryDelay      time.Duration `env:"RT_FLUSH_RETRY_DELAY" envDefault:"100ms"`
	HandshakeTimeout     time.Duration `env:"RT_HANDSHAKE_TIMEOUT" envDefault:"10s"`

	// Chats whose message and call topics are watched at startup.
	WatchChats []int64 `env:"RT_WATCH_CHATS" envSeparator:","`
	// Subscribe to /topic/admin/reports.
	AdminReports bool `env:"RT_ADMIN_REPORTS" envDefault:"false"`
}

// CredentialsConfig carries the authenticated principal. UserID and Username
// are derived from the token claims when left empty.
type CredentialsConfig struct {
	Token     string `env:"AUTH_TOKEN"`
	UserID    int64  `env:"AUTH_USER_ID"`
	Username  string `env:"AUTH_USERNAME"`
	JWTSecret string `env:"AUTH_JWT_SECRET"`
}

// APIConfig points at the REST collaborator used for display names.
type APIConfig struct {
	BaseURL       string        `env:"API_BASE_URL"`
	Timeout       time.Duration `env:"API_TIMEOUT" envDefault:"5s"`
	NameCacheSize int           `env:"API_NAME_CACHE_SIZE" envDefault:"512"`
}

// RedisConfig is the configuration for the optional Redis event mirror.
// Note: Only standalone mode is supported
type RedisConfig struct {
	Enabled  bool   `env:"REDIS_ENABLED" envDefault:"false"`
	Host     string `env:"REDIS_HOST" envDefault:"localhost"`
	Port     int    `env:"REDIS_PORT" envDefault:"6379"`
	Password string `env:"REDIS_PASSWORD"`
	DB       int    `env:"REDIS_DB" envDefault:"0"`
	UseTLS   bool   `env:"REDIS_USE_TLS" envDefault:"false"`

	MaxRetries      int           `env:"REDIS_MAX_RETRIES" envDefault:"3"`
	MinIdleConns    int           `env:"REDIS_MIN_IDLE_CONNS" envDefault:"2"`
	PoolSize        int           `env:"REDIS_POOL_SIZE" envDefault:"10"`
	PoolTimeout     time.Duration `env:"REDIS_POOL_TIMEOUT" envDefault:"4s"`
	ConnMaxIdleTime time.Duration `env:"REDIS_CONN_MAX_IDLE_TIME" envDefault:"5m"`
	ConnMaxLifetime time.Duration `env:"REDIS_CONN_MAX_LIFETIME" envDefault:"30m"`
}

// ServerConfig is the configuration for the local control API
type ServerConfig struct {
	Host string `env:"HTTP_HOST" envDefault:"127.0.0.1"`
	Port int    `env:"HTTP_PORT" envDefault:"8090"`
	Mode string `env:"HTTP_MODE" envDefault:"release"`
}

// Load loads the configuration from environment variables
func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}
	if err := validate(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func validate(cfg *Config) error {
	u, err := url.Parse(cfg.Realtime.URL)
	if err != nil {
		return fmt.Errorf("RT_URL: %w", err)
	}
	if u.Scheme != "ws" && u.Scheme != "wss" {
		return fmt.Errorf("RT_URL must use ws or wss, got %q", u.Scheme)
	}
	if cfg.Realtime.MaxReconnectAttempts <= 0 {
		return errors.New("RT_MAX_RECONNECT_ATTEMPTS must be positive")
	}
	if cfg.Realtime.FlushRetryDelay <= 0 {
		return errors.New("RT_FLUSH_RETRY_DELAY must be positive")
	}
	if cfg.Credentials.Token == "" {
		return errors.New("AUTH_TOKEN is required")
	}
	if cfg.API.NameCacheSize <= 0 {
		return errors.New("API_NAME_CACHE_SIZE must be positive")
	}
	if cfg.Redis.Enabled && cfg.Redis.Host == "" {
		return errors.New("REDIS_HOST is required when REDIS_ENABLED is set")
	}
	return nil
}

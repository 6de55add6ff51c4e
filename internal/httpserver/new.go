package httpserver

import (
	"errors"

	"social-realtime/internal/call"
	"social-realtime/internal/chat"
	eventbusRedis "social-realtime/internal/eventbus/delivery/redis"
	"social-realtime/internal/session"
	"social-realtime/pkg/log"
	pkgRedis "social-realtime/pkg/redis"

	"github.com/gin-gonic/gin"
)

// HTTPServer is the local control surface of the realtime client.
// New() only wires dependencies and validates them.
// Run() (in httpserver.go) starts background services and serves HTTP.
type HTTPServer struct {
	gin         *gin.Engine
	logger      log.Logger
	host        string
	port        int
	environment string

	session session.Controller
	callUC  call.UseCase
	chatUC  chat.UseCase

	// Optional
	bridge eventbusRedis.Bridge
	redis  pkgRedis.IRedis
}

// Config is the constructor input for HTTPServer.
type Config struct {
	Host        string
	Port        int
	Mode        string
	Environment string

	Session session.Controller
	Call    call.UseCase
	Chat    chat.UseCase

	// Bridge and Redis are nil when the event mirror is disabled.
	Bridge eventbusRedis.Bridge
	Redis  pkgRedis.IRedis
}

// New creates a new HTTPServer instance with the provided configuration.
// It does not start any goroutines.
func New(logger log.Logger, cfg Config) (*HTTPServer, error) {
	if cfg.Mode != "" {
		gin.SetMode(cfg.Mode)
	}

	srv := &HTTPServer{
		gin:         gin.New(),
		logger:      logger,
		host:        cfg.Host,
		port:        cfg.Port,
		environment: cfg.Environment,

		session: cfg.Session,
		callUC:  cfg.Call,
		chatUC:  cfg.Chat,

		bridge: cfg.Bridge,
		redis:  cfg.Redis,
	}

	if err := srv.validate(); err != nil {
		return nil, err
	}

	return srv, nil
}

func (s *HTTPServer) validate() error {
	if s.logger == nil {
		return errors.New("logger is required")
	}
	if s.port == 0 {
		return errors.New("port is required")
	}
	if s.session == nil {
		return errors.New("session is required")
	}
	if s.callUC == nil {
		return errors.New("call usecase is required")
	}
	if s.chatUC == nil {
		return errors.New("chat usecase is required")
	}
	return nil
}

package stomp

import (
	"context"
	"sync"
	"time"

	"github.com/benbjohnson/clock"
	gostomp "github.com/go-stomp/stomp/v3"
	"github.com/gorilla/websocket"

	"social-realtime/internal/session"
	"social-realtime/pkg/log"
)

const (
	defaultReconnectDelay   = 5 * time.Second
	defaultHandshakeTimeout = 10 * time.Second
	contentTypeJSON         = "application/json"
)

// Config describes the STOMP endpoint.
type Config struct {
	URL               string
	HeartbeatIncoming time.Duration
	HeartbeatOutgoing time.Duration
	ReconnectDelay    time.Duration
	HandshakeTimeout  time.Duration
}

// Factory creates STOMP-over-WebSocket transport clients.
type Factory struct {
	cfg    Config
	logger log.Logger
	clock  clock.Clock
	dialer *websocket.Dialer
}

var _ session.ClientFactory = (*Factory)(nil)

// NewFactory returns a Factory for cfg. clk may be nil.
func NewFactory(logger log.Logger, cfg Config, clk clock.Clock) *Factory {
	if clk == nil {
		clk = clock.New()
	}
	if cfg.ReconnectDelay <= 0 {
		cfg.ReconnectDelay = defaultReconnectDelay
	}
	if cfg.HandshakeTimeout <= 0 {
		cfg.HandshakeTimeout = defaultHandshakeTimeout
	}

	return &Factory{
		cfg:    cfg,
		logger: logger,
		clock:  clk,
		dialer: &websocket.Dialer{
			HandshakeTimeout: cfg.HandshakeTimeout,
			Subprotocols:     []string{"v12.stomp", "v11.stomp"},
		},
	}
}

// NewClient implements session.ClientFactory.
func (f *Factory) NewClient(creds session.Credentials, listener session.Listener) session.Client {
	ctx, cancel := context.WithCancel(context.Background())
	return &client{
		cfg:      f.cfg,
		logger:   f.logger,
		clock:    f.clock,
		dialer:   f.dialer,
		creds:    creds,
		listener: listener,
		ctx:      f.logger.With(ctx, "user_id", creds.UserID),
		cancel:   cancel,
	}
}

type client struct {
	cfg      Config
	logger   log.Logger
	clock    clock.Clock
	dialer   *websocket.Dialer
	creds    session.Credentials
	listener session.Listener

	ctx    context.Context
	cancel context.CancelFunc

	mu       sync.Mutex
	started  bool
	conn     *gostomp.Conn
	ws       *wsConn
	protoErr error
}

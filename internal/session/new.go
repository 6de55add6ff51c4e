package session

import (
	"context"
	"sync"
	"sync/atomic"

	"github.com/benbjohnson/clock"

	"social-realtime/pkg/log"
)

// Manager owns the single real-time session of the authenticated user.
// It is created on login and disposed with Disconnect on logout.
type Manager struct {
	logger  log.Logger
	factory ClientFactory
	clock   clock.Clock
	opts    Options

	// mu guards the fields below. It is never held across Client.Subscribe
	// or Client.Publish.
	mu         sync.Mutex
	ctx        context.Context // logging context carrying the user id
	creds      Credentials
	client     Client
	generation uint64 // bumped whenever the client is replaced or dropped
	conns      uint64 // bumped on every established connection
	epoch      uint64 // bumped on teardown; queued work from older epochs is dropped
	state      State
	attempts   int
	registry   *registry
	outbox     outbox
	flushTimer *clock.Timer
	flushing   bool
	flushAgain bool

	published      atomic.Int64
	delivered      atomic.Int64
	dropped        atomic.Int64
	decodeFailures atomic.Int64
}

var _ Messenger = (*Manager)(nil)

// New creates a Manager. clk may be nil, in which case the wall clock is used.
func New(logger log.Logger, factory ClientFactory, clk clock.Clock, opts Options) *Manager {
	if clk == nil {
		clk = clock.New()
	}
	if opts.MaxReconnectAttempts <= 0 {
		opts.MaxReconnectAttempts = DefaultMaxReconnectAttempts
	}
	if opts.FlushRetryDelay <= 0 {
		opts.FlushRetryDelay = DefaultFlushRetryDelay
	}

	return &Manager{
		logger:   logger,
		factory:  factory,
		clock:    clk,
		opts:     opts,
		ctx:      context.Background(),
		registry: newRegistry(),
	}
}

// listener binds transport callbacks to the client generation that produced them.
type listener struct {
	m   *Manager
	gen uint64
}

func (l listener) OnConnected() {
	l.m.dispatch(l.gen, Event{Kind: EventConnected})
}

func (l listener) OnDisconnected() {
	l.m.dispatch(l.gen, Event{Kind: EventDisconnected})
}

func (l listener) OnProtocolError(err error) {
	l.m.dispatch(l.gen, Event{Kind: EventProtocolError, Err: err})
}

func (l listener) OnTransportClosed(err error) {
	l.m.dispatch(l.gen, Event{Kind: EventTransportClosed, Err: err})
}

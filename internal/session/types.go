package session

import (
	"context"
	"encoding/json"
	"time"
)

// State is the connection state of a Session.
type State int

const (
	StateDisconnected State = iota
	StateConnecting
	StateConnected
)

func (s State) String() string {
	switch s {
	case StateConnecting:
		return "connecting"
	case StateConnected:
		return "connected"
	default:
		return "disconnected"
	}
}

// MarshalText renders the state by name in JSON output.
func (s State) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// Credentials identify the principal owning the session.
type Credentials struct {
	UserID string
	Token  string
}

// Complete reports whether both identity and token are present.
func (c Credentials) Complete() bool {
	return c.UserID != "" && c.Token != ""
}

// Frame is an inbound message as handed over by the transport.
type Frame struct {
	Destination string
	Headers     map[string]string
	Body        []byte
}

// Message is a validated inbound JSON message delivered to a Handler.
type Message struct {
	SubscriptionID string
	Topic          string
	Headers        map[string]string
	Body           json.RawMessage
}

// Decode unmarshals the message body into v.
func (m Message) Decode(v any) error {
	return json.Unmarshal(m.Body, v)
}

// Handler receives messages for one subscription. Handlers for the same
// subscription are invoked in transport delivery order.
type Handler func(ctx context.Context, msg Message)

// EventKind names a transport lifecycle event.
type EventKind int

const (
	EventConnected EventKind = iota
	EventDisconnected
	EventProtocolError
	EventTransportClosed
)

func (k EventKind) String() string {
	switch k {
	case EventConnected:
		return "connected"
	case EventDisconnected:
		return "disconnected"
	case EventProtocolError:
		return "protocol_error"
	case EventTransportClosed:
		return "transport_closed"
	default:
		return "unknown"
	}
}

// Event is a transport lifecycle notification.
type Event struct {
	Kind EventKind
	Err  error
}

// Options tune the Manager. Zero values fall back to the defaults.
type Options struct {
	MaxReconnectAttempts int
	FlushRetryDelay      time.Duration
}

const (
	DefaultMaxReconnectAttempts = 10
	DefaultFlushRetryDelay      = 100 * time.Millisecond
)

// Stats is a point-in-time snapshot of the Manager.
type Stats struct {
	State                State  `json:"state"`
	UserID               string `json:"user_id"`
	ReconnectAttempts    int    `json:"reconnect_attempts"`
	ReconnectHalted      bool   `json:"reconnect_halted"`
	LiveSubscriptions    int    `json:"live_subscriptions"`
	PendingSubscriptions int    `json:"pending_subscriptions"`
	QueuedMessages       int    `json:"queued_messages"`
	MessagesPublished    int64  `json:"messages_published"`
	MessagesDelivered    int64  `json:"messages_delivered"`
	MessagesDropped      int64  `json:"messages_dropped"`
	DecodeFailures       int64  `json:"decode_failures"`
}

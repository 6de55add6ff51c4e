package session

import "context"

// Messenger is the surface consumed by feed, messaging, notification and
// admin modules. None of its methods fail because the session is not
// connected: work is deferred instead.
type Messenger interface {
	Subscribe(topic string, handler Handler, id string) (Subscription, error)
	Unsubscribe(id string)
	Publish(destination string, payload any)
}

// Subscription is a live registration held by the transport.
type Subscription interface {
	ID() string
	Topic() string
	Unsubscribe() error
}

// Listener receives transport lifecycle callbacks.
type Listener interface {
	OnConnected()
	OnDisconnected()
	OnProtocolError(err error)
	OnTransportClosed(err error)
}

// Client is one transport connection, including its own reconnect loop.
//
// Implementations must not invoke Listener callbacks or deliver frames
// synchronously from Subscribe, Publish, Unsubscribe or Deactivate.
// Deactivate and Subscription.Unsubscribe must not block; Subscribe and
// Publish may block while the transport's write queue is full.
// Activate after Deactivate is a no-op.
type Client interface {
	Activate()
	Deactivate() error
	// Ready reports whether the transport accepts registrations and sends.
	Ready() bool
	Subscribe(topic string, deliver func(Frame)) (Subscription, error)
	Publish(destination string, body []byte) error
}

// ClientFactory creates transport clients bound to a listener.
type ClientFactory interface {
	NewClient(creds Credentials, listener Listener) Client
}

// ClientFactoryFunc adapts a function to ClientFactory.
type ClientFactoryFunc func(creds Credentials, listener Listener) Client

func (f ClientFactoryFunc) NewClient(creds Credentials, listener Listener) Client {
	return f(creds, listener)
}

// Controller is the operator surface of a Manager.
type Controller interface {
	Messenger
	Connect(ctx context.Context) error
	Disconnect(ctx context.Context)
	ResetReconnect()
	State() State
	Stats() Stats
}

var _ Controller = (*Manager)(nil)

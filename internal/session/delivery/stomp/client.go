package stomp

import (
	"errors"
	"fmt"

	gostomp "github.com/go-stomp/stomp/v3"

	"social-realtime/internal/session"
)

// Activate starts the connect loop. It returns immediately.
func (c *client) Activate() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.started || c.ctx.Err() != nil {
		return
	}
	c.started = true
	go c.run()
}

// Deactivate stops the connect loop and closes any open connection in the
// background. No listener callback is made afterwards.
func (c *client) Deactivate() error {
	c.cancel()
	return nil
}

func (c *client) Ready() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.readyLocked()
}

func (c *client) readyLocked() bool {
	return c.conn != nil && !c.ws.closed() && c.ctx.Err() == nil
}

// live returns the current connection. Callers must not hold c.mu while
// talking to it: a full write queue blocks until the broker drains it.
func (c *client) live() (*gostomp.Conn, *wsConn, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.readyLocked() {
		return nil, nil, false
	}
	return c.conn, c.ws, true
}

func (c *client) Subscribe(topic string, deliver func(session.Frame)) (session.Subscription, error) {
	conn, ws, ok := c.live()
	if !ok {
		return nil, fmt.Errorf("subscribe %s: %w", topic, session.ErrNotConnected)
	}
	sub, err := conn.Subscribe(topic, gostomp.AckAuto)
	if err != nil {
		if ws.closed() {
			return nil, fmt.Errorf("subscribe %s: %w", topic, session.ErrNotConnected)
		}
		return nil, fmt.Errorf("subscribe %s: %w", topic, err)
	}

	s := &subscription{sub: sub, topic: topic, client: c}
	go s.pump(ws, deliver)
	return s, nil
}

func (c *client) Publish(destination string, body []byte) error {
	conn, ws, ok := c.live()
	if !ok {
		return fmt.Errorf("send %s: %w", destination, session.ErrNotConnected)
	}
	if err := conn.Send(destination, contentTypeJSON, body); err != nil {
		if ws.closed() || errors.Is(err, gostomp.ErrAlreadyClosed) {
			return fmt.Errorf("send %s: %w", destination, session.ErrNotConnected)
		}
		return fmt.Errorf("send %s: %w", destination, err)
	}
	return nil
}

// noteProtocolError records a STOMP ERROR frame and drops the connection so
// the run loop reports it.
func (c *client) noteProtocolError(ws *wsConn, err error) {
	c.mu.Lock()
	if c.ws == ws && c.protoErr == nil {
		c.protoErr = err
	}
	c.mu.Unlock()
	_ = ws.Close()
}

package stomp

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"time"

	gostomp "github.com/go-stomp/stomp/v3"
)

// run keeps one STOMP session open until Deactivate, waiting
// ReconnectDelay between attempts.
func (c *client) run() {
	for {
		c.session()
		if c.ctx.Err() != nil {
			return
		}

		c.logger.Debugf(c.ctx, "reconnecting in %s", c.cfg.ReconnectDelay)
		timer := c.clock.Timer(c.cfg.ReconnectDelay)
		select {
		case <-timer.C:
		case <-c.ctx.Done():
			timer.Stop()
			return
		}
	}
}

// session dials, performs the STOMP handshake and blocks until the
// connection drops or the client is deactivated.
func (c *client) session() {
	ws, err := c.dial()
	if err != nil {
		if c.ctx.Err() == nil {
			c.listener.OnTransportClosed(err)
		}
		return
	}

	stop := context.AfterFunc(c.ctx, func() { _ = ws.Close() })
	defer stop()

	conn, err := c.handshake(ws)
	if err != nil {
		_ = ws.Close()
		if c.ctx.Err() == nil {
			c.listener.OnProtocolError(err)
		}
		return
	}

	c.mu.Lock()
	c.conn = conn
	c.ws = ws
	c.protoErr = nil
	c.mu.Unlock()

	if c.ctx.Err() == nil {
		c.logger.Infof(c.ctx, "stomp session established with %s", c.cfg.URL)
		c.listener.OnConnected()
	}

	select {
	case <-ws.Done():
	case <-c.ctx.Done():
	}

	c.mu.Lock()
	c.conn = nil
	protoErr := c.protoErr
	c.protoErr = nil
	c.mu.Unlock()

	if err := conn.MustDisconnect(); err != nil {
		c.logger.Debugf(c.ctx, "stomp disconnect: %v", err)
	}
	_ = ws.Close()
	if c.ctx.Err() != nil {
		return
	}

	switch {
	case protoErr != nil:
		c.listener.OnProtocolError(protoErr)
	case ws.normalClosure():
		c.listener.OnDisconnected()
	default:
		cause := ws.Err()
		if cause == nil {
			cause = ErrConnectionLost
		}
		c.logger.Warnf(c.ctx, "stomp transport closed: %v", cause)
		c.listener.OnTransportClosed(cause)
	}
}

func (c *client) dial() (*wsConn, error) {
	header := http.Header{}
	header.Set("Authorization", "Bearer "+c.creds.Token)

	ctx, cancel := context.WithTimeout(c.ctx, c.cfg.HandshakeTimeout)
	defer cancel()

	ws, resp, err := c.dialer.DialContext(ctx, c.cfg.URL, header)
	if resp != nil && resp.Body != nil {
		_ = resp.Body.Close()
	}
	if err != nil {
		if resp != nil {
			return nil, fmt.Errorf("dial %s: %s: %w", c.cfg.URL, resp.Status, err)
		}
		return nil, fmt.Errorf("dial %s: %w", c.cfg.URL, err)
	}
	return newWSConn(ws), nil
}

func (c *client) handshake(ws *wsConn) (*gostomp.Conn, error) {
	host := "/"
	if u, err := url.Parse(c.cfg.URL); err == nil && u.Hostname() != "" {
		host = u.Hostname()
	}

	if err := ws.SetReadDeadline(time.Now().Add(c.cfg.HandshakeTimeout)); err != nil {
		return nil, err
	}
	conn, err := gostomp.Connect(ws,
		gostomp.ConnOpt.Host(host),
		gostomp.ConnOpt.HeartBeat(c.cfg.HeartbeatOutgoing, c.cfg.HeartbeatIncoming),
		gostomp.ConnOpt.Header("Authorization", "Bearer "+c.creds.Token),
	)
	if err != nil {
		return nil, fmt.Errorf("stomp connect: %w", err)
	}
	if err := ws.SetReadDeadline(time.Time{}); err != nil {
		_ = conn.MustDisconnect()
		return nil, err
	}
	if c.ctx.Err() != nil {
		_ = conn.MustDisconnect()
		return nil, c.ctx.Err()
	}
	return conn, nil
}

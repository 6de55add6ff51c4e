package stomp

import (
	"errors"
	"io"
	"net"
	"sync"
	"time"

	"github.com/gorilla/websocket"
)

const closeGracePeriod = time.Second

// wsConn adapts a WebSocket to the byte stream STOMP expects. Each Write is
// sent as one text message; Read concatenates incoming messages.
type wsConn struct {
	ws *websocket.Conn

	rmu    sync.Mutex
	reader io.Reader

	wmu sync.Mutex

	once sync.Once
	done chan struct{}
	emu  sync.Mutex
	err  error
}

var _ net.Conn = (*wsConn)(nil)

func newWSConn(ws *websocket.Conn) *wsConn {
	return &wsConn{ws: ws, done: make(chan struct{})}
}

func (c *wsConn) Read(p []byte) (int, error) {
	c.rmu.Lock()
	defer c.rmu.Unlock()

	for {
		if c.reader == nil {
			mt, r, err := c.ws.NextReader()
			if err != nil {
				c.fail(err)
				return 0, err
			}
			if mt != websocket.TextMessage && mt != websocket.BinaryMessage {
				continue
			}
			c.reader = r
		}

		n, err := c.reader.Read(p)
		if errors.Is(err, io.EOF) {
			c.reader = nil
			if n > 0 {
				return n, nil
			}
			continue
		}
		if err != nil {
			c.fail(err)
		}
		return n, err
	}
}

func (c *wsConn) Write(p []byte) (int, error) {
	c.wmu.Lock()
	defer c.wmu.Unlock()

	if err := c.ws.WriteMessage(websocket.TextMessage, p); err != nil {
		c.fail(err)
		return 0, err
	}
	return len(p), nil
}

// Close sends a normal close frame and releases the socket.
func (c *wsConn) Close() error {
	var err error
	c.once.Do(func() {
		close(c.done)
		msg := websocket.FormatCloseMessage(websocket.CloseNormalClosure, "")
		_ = c.ws.WriteControl(websocket.CloseMessage, msg, time.Now().Add(closeGracePeriod))
		err = c.ws.Close()
	})
	return err
}

// fail records the first transport error and closes the connection.
func (c *wsConn) fail(err error) {
	c.emu.Lock()
	if c.err == nil {
		c.err = err
	}
	c.emu.Unlock()
	_ = c.Close()
}

// Done is closed once the connection is no longer usable.
func (c *wsConn) Done() <-chan struct{} {
	return c.done
}

// Err returns the error that closed the connection, nil for a local Close.
func (c *wsConn) Err() error {
	c.emu.Lock()
	defer c.emu.Unlock()
	return c.err
}

func (c *wsConn) closed() bool {
	select {
	case <-c.done:
		return true
	default:
		return false
	}
}

// normalClosure reports whether the peer closed the socket cleanly.
func (c *wsConn) normalClosure() bool {
	return websocket.IsCloseError(c.Err(), websocket.CloseNormalClosure, websocket.CloseGoingAway)
}

func (c *wsConn) LocalAddr() net.Addr  { return c.ws.LocalAddr() }
func (c *wsConn) RemoteAddr() net.Addr { return c.ws.RemoteAddr() }

func (c *wsConn) SetDeadline(t time.Time) error {
	if err := c.ws.SetReadDeadline(t); err != nil {
		return err
	}
	return c.ws.SetWriteDeadline(t)
}

func (c *wsConn) SetReadDeadline(t time.Time) error  { return c.ws.SetReadDeadline(t) }
func (c *wsConn) SetWriteDeadline(t time.Time) error { return c.ws.SetWriteDeadline(t) }

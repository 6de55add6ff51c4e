package stomp

import (
	"net"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/gorilla/websocket"

	"social-realtime/internal/session"
)

// wsListener is a net.Listener fed by WebSocket upgrades, so a STOMP
// broker can serve over the same adapter the client uses.
type wsListener struct {
	upgrader websocket.Upgrader
	conns    chan net.Conn
	done     chan struct{}
	once     sync.Once

	mu   sync.Mutex
	auth []string
}

func newWSListener() *wsListener {
	return &wsListener{conns: make(chan net.Conn), done: make(chan struct{})}
}

func (l *wsListener) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	l.mu.Lock()
	l.auth = append(l.auth, r.Header.Get("Authorization"))
	l.mu.Unlock()

	ws, err := l.upgrader.Upgrade(w, r, nil)
	if err != nil {
		return
	}
	select {
	case l.conns <- newWSConn(ws):
	case <-l.done:
		_ = ws.Close()
	}
}

func (l *wsListener) Accept() (net.Conn, error) {
	select {
	case c := <-l.conns:
		return c, nil
	case <-l.done:
		return nil, net.ErrClosed
	}
}

func (l *wsListener) Close() error {
	l.once.Do(func() { close(l.done) })
	return nil
}

func (l *wsListener) Addr() net.Addr { return &net.TCPAddr{IP: net.IPv4(127, 0, 0, 1)} }

func (l *wsListener) authHeaders() []string {
	l.mu.Lock()
	defer l.mu.Unlock()
	return append([]string(nil), l.auth...)
}

func wsURL(srv *httptest.Server) string {
	return "ws" + strings.TrimPrefix(srv.URL, "http")
}

type event struct {
	kind session.EventKind
	err  error
}

type recListener struct {
	mu     sync.Mutex
	events []event
}

func (l *recListener) add(kind session.EventKind, err error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.events = append(l.events, event{kind: kind, err: err})
}

func (l *recListener) OnConnected()                { l.add(session.EventConnected, nil) }
func (l *recListener) OnDisconnected()             { l.add(session.EventDisconnected, nil) }
func (l *recListener) OnProtocolError(err error)   { l.add(session.EventProtocolError, err) }
func (l *recListener) OnTransportClosed(err error) { l.add(session.EventTransportClosed, err) }

func (l *recListener) kinds() []session.EventKind {
	l.mu.Lock()
	defer l.mu.Unlock()
	out := make([]session.EventKind, 0, len(l.events))
	for _, e := range l.events {
		out = append(out, e.kind)
	}
	return out
}

func (l *recListener) count(kind session.EventKind) int {
	n := 0
	for _, k := range l.kinds() {
		if k == kind {
			n++
		}
	}
	return n
}

func (l *recListener) last() event {
	l.mu.Lock()
	defer l.mu.Unlock()
	if len(l.events) == 0 {
		return event{kind: -1}
	}
	return l.events[len(l.events)-1]
}

// rawBroker answers the STOMP handshake with reply and then runs after.
func rawBroker(t *testing.T, reply string, after func(ws *websocket.Conn)) *httptest.Server {
	t.Helper()
	up := websocket.Upgrader{}
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ws, err := up.Upgrade(w, r, nil)
		if err != nil {
			return
		}
		defer ws.Close()
		if _, _, err := ws.ReadMessage(); err != nil {
			return
		}
		if err := ws.WriteMessage(websocket.TextMessage, []byte(reply)); err != nil {
			return
		}
		if after != nil {
			after(ws)
		}
	}))
}

package stomp

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strconv"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	gostomp "github.com/go-stomp/stomp/v3"
	"github.com/go-stomp/stomp/v3/frame"
	"github.com/go-stomp/stomp/v3/server"
	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"social-realtime/internal/session"
	"social-realtime/pkg/log"
)

var creds = session.Credentials{UserID: "1", Token: "secret-token"}

func testConfig(url string) Config {
	return Config{
		URL:              url,
		ReconnectDelay:   20 * time.Millisecond,
		HandshakeTimeout: 2 * time.Second,
	}
}

func TestClientEndToEnd(t *testing.T) {
	l := newWSListener()
	go func() { _ = server.Serve(l) }()
	srv := httptest.NewServer(l)
	defer srv.Close()
	defer l.Close()

	rec := &recListener{}
	c := NewFactory(log.NewNop(), testConfig(wsURL(srv)), nil).NewClient(creds, rec)
	defer c.Deactivate()

	assert.False(t, c.Ready())
	c.Activate()
	require.Eventually(t, func() bool {
		return rec.count(session.EventConnected) == 1
	}, 3*time.Second, 10*time.Millisecond)
	require.True(t, c.Ready())
	assert.Equal(t, []string{"Bearer secret-token"}, l.authHeaders())

	frames := make(chan session.Frame, 4)
	sub, err := c.Subscribe("/topic/chat/7", func(f session.Frame) { frames <- f })
	require.NoError(t, err)
	assert.Equal(t, "/topic/chat/7", sub.Topic())
	assert.NotEmpty(t, sub.ID())

	require.NoError(t, c.Publish("/topic/chat/7", []byte(`{"id":1,"content":"hi"}`)))

	select {
	case f := <-frames:
		assert.Equal(t, "/topic/chat/7", f.Destination)
		assert.JSONEq(t, `{"id":1,"content":"hi"}`, string(f.Body))
		assert.Equal(t, "application/json", f.Headers["content-type"])
	case <-time.After(3 * time.Second):
		t.Fatal("message was not delivered")
	}

	require.NoError(t, sub.Unsubscribe())
	require.NoError(t, c.Deactivate())
	assert.Eventually(t, func() bool { return !c.Ready() }, time.Second, 10*time.Millisecond)
	assert.Equal(t, []session.EventKind{session.EventConnected}, rec.kinds())
}

func TestClientDialFailureRetries(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
	}))
	defer srv.Close()

	rec := &recListener{}
	c := NewFactory(log.NewNop(), testConfig(wsURL(srv)), nil).NewClient(creds, rec)
	c.Activate()

	require.Eventually(t, func() bool {
		return rec.count(session.EventTransportClosed) >= 2
	}, 3*time.Second, 10*time.Millisecond)
	assert.Zero(t, rec.count(session.EventConnected))
	assert.ErrorIs(t, rec.last().err, websocket.ErrBadHandshake)

	_, err := c.Subscribe("/topic/chat/7", func(session.Frame) {})
	assert.ErrorIs(t, err, session.ErrNotConnected)
	assert.ErrorIs(t, c.Publish("/app/sendMessage", []byte(`{}`)), session.ErrNotConnected)

	require.NoError(t, c.Deactivate())
	time.Sleep(50 * time.Millisecond)
	n := len(rec.kinds())
	time.Sleep(100 * time.Millisecond)
	assert.Equal(t, n, len(rec.kinds()))
}

func TestClientProtocolErrorOnRejectedConnect(t *testing.T) {
	srv := rawBroker(t, "ERROR\nmessage:invalid token\n\n\x00", nil)
	defer srv.Close()

	rec := &recListener{}
	c := NewFactory(log.NewNop(), testConfig(wsURL(srv)), nil).NewClient(creds, rec)
	c.Activate()
	defer c.Deactivate()

	require.Eventually(t, func() bool {
		return rec.count(session.EventProtocolError) >= 1
	}, 3*time.Second, 10*time.Millisecond)
	assert.Equal(t, session.EventProtocolError, rec.kinds()[0])
}

func TestClientReportsNormalClose(t *testing.T) {
	srv := rawBroker(t, "CONNECTED\nversion:1.2\n\n\x00", func(ws *websocket.Conn) {
		time.Sleep(50 * time.Millisecond)
		msg := websocket.FormatCloseMessage(websocket.CloseNormalClosure, "bye")
		_ = ws.WriteControl(websocket.CloseMessage, msg, time.Now().Add(time.Second))
		_, _, _ = ws.ReadMessage()
	})
	defer srv.Close()

	rec := &recListener{}
	c := NewFactory(log.NewNop(), testConfig(wsURL(srv)), nil).NewClient(creds, rec)
	c.Activate()
	defer c.Deactivate()

	require.Eventually(t, func() bool {
		return rec.count(session.EventDisconnected) >= 1
	}, 3*time.Second, 10*time.Millisecond)
	kinds := rec.kinds()
	assert.Equal(t, []session.EventKind{session.EventConnected, session.EventDisconnected}, kinds[:2])
}

func TestClientActivateAfterDeactivateIsNoop(t *testing.T) {
	rec := &recListener{}
	c := NewFactory(log.NewNop(), testConfig("ws://127.0.0.1:1/ws"), nil).NewClient(creds, rec)

	require.NoError(t, c.Deactivate())
	c.Activate()
	time.Sleep(50 * time.Millisecond)

	assert.Empty(t, rec.kinds())
	assert.False(t, c.Ready())
}

func TestToFrame(t *testing.T) {
	msg := &gostomp.Message{
		Body:   []byte(`{"unreadCount":3}`),
		Header: frame.NewHeader("destination", "/topic/unread-count/1", "message-id", "m-1", "message-id", "m-2"),
	}

	f := toFrame(msg, "/topic/unread-count/1")

	assert.Equal(t, "/topic/unread-count/1", f.Destination)
	assert.Equal(t, "m-1", f.Headers["message-id"])
	assert.Equal(t, `{"unreadCount":3}`, string(f.Body))
}

// burstBroker accepts the handshake, answers every SUBSCRIBE with n MESSAGE
// frames and counts the SEND frames it receives.
func burstBroker(t *testing.T, n int, sends *atomic.Int64) *httptest.Server {
	t.Helper()
	return rawBroker(t, "CONNECTED\nversion:1.2\n\n\x00", func(ws *websocket.Conn) {
		conn := newWSConn(ws)
		r := frame.NewReader(conn)
		w := frame.NewWriter(conn)
		var wg sync.WaitGroup
		defer wg.Wait()
		for {
			f, err := r.Read()
			if err != nil {
				return
			}
			if f == nil {
				continue
			}
			switch f.Command {
			case frame.SEND:
				sends.Add(1)
			case frame.SUBSCRIBE:
				id := f.Header.Get(frame.Id)
				dest := f.Header.Get(frame.Destination)
				wg.Add(1)
				go func() {
					defer wg.Done()
					for i := 0; i < n; i++ {
						msg := frame.New(frame.MESSAGE,
							frame.Destination, dest,
							frame.Subscription, id,
							frame.MessageId, strconv.Itoa(i),
							frame.ContentType, contentTypeJSON)
						msg.Body = []byte(fmt.Sprintf(`{"n":%d}`, i))
						if err := w.Write(msg); err != nil {
							return
						}
					}
				}()
			}
		}
	})
}

func TestManagerDrainsInboundBurstWhileFlushing(t *testing.T) {
	const inbound, outbound = 400, 200
	var sends atomic.Int64
	srv := burstBroker(t, inbound, &sends)
	defer srv.Close()

	m := session.New(log.NewNop(), NewFactory(log.NewNop(), testConfig(wsURL(srv)), nil), nil, session.Options{})
	defer m.Disconnect(context.Background())

	var received atomic.Int64
	_, err := m.Subscribe("/topic/chat/7", func(context.Context, session.Message) {
		received.Add(1)
	}, "chat-7")
	require.NoError(t, err)
	for i := 0; i < outbound; i++ {
		m.Publish("/app/sendMessage", map[string]int{"n": i})
	}

	require.NoError(t, m.SetCredentials(context.Background(), creds))

	assert.Eventually(t, func() bool {
		st := m.Stats()
		return received.Load() == inbound && sends.Load() == outbound && st.QueuedMessages == 0
	}, 5*time.Second, 10*time.Millisecond)
	st := m.Stats()
	assert.Equal(t, session.StateConnected, st.State)
	assert.Equal(t, 1, st.LiveSubscriptions)
	assert.Equal(t, int64(outbound), st.MessagesPublished)
}

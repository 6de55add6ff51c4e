package httpserver

import (
	"context"
	"errors"
	"net"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"social-realtime/internal/call"
	callUsecase "social-realtime/internal/call/usecase"
	chatUsecase "social-realtime/internal/chat/usecase"
	"social-realtime/internal/session"
	"social-realtime/pkg/log"
	pkgRedis "social-realtime/pkg/redis"

	"github.com/benbjohnson/clock"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeSession struct {
	mu           sync.Mutex
	state        session.State
	disconnected bool
}

func (f *fakeSession) Subscribe(string, session.Handler, string) (session.Subscription, error) {
	return nil, nil
}
func (f *fakeSession) Unsubscribe(string)            {}
func (f *fakeSession) Publish(string, any)           {}
func (f *fakeSession) Connect(context.Context) error { return nil }
func (f *fakeSession) ResetReconnect()               {}
func (f *fakeSession) Stats() session.Stats          { return session.Stats{State: f.State()} }
func (f *fakeSession) Disconnect(context.Context)    { f.mu.Lock(); f.disconnected = true; f.mu.Unlock() }
func (f *fakeSession) State() session.State          { f.mu.Lock(); defer f.mu.Unlock(); return f.state }
func (f *fakeSession) wasDisconnected() bool         { f.mu.Lock(); defer f.mu.Unlock(); return f.disconnected }

type fakeRedis struct {
	pingErr error
}

func (f fakeRedis) Publish(context.Context, string, []byte) error { return nil }
func (f fakeRedis) Subscribe(context.Context, ...string) (<-chan pkgRedis.Message, func() error, error) {
	return nil, nil, errors.New("not supported")
}
func (f fakeRedis) Ping(context.Context) (time.Duration, error) { return time.Millisecond, f.pingErr }
func (f fakeRedis) Close() error                                { return nil }

func newServer(t *testing.T, sess session.Controller, redis pkgRedis.IRedis, port int) *HTTPServer {
	t.Helper()
	logger := log.NewNop()
	callUC := callUsecase.New(logger, call.Identity{UserID: 1}, nil, nil, nil, clock.NewMock())
	t.Cleanup(callUC.Close)

	srv, err := New(logger, Config{
		Host:    "127.0.0.1",
		Port:    port,
		Mode:    gin.TestMode,
		Session: sess,
		Call:    callUC,
		Chat:    chatUsecase.New(logger, sess, nil, nil, 1),
		Redis:   redis,
	})
	require.NoError(t, err)
	return srv
}

func get(srv *HTTPServer, path string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	srv.gin.ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, nil))
	return w
}

func TestNewValidates(t *testing.T) {
	_, err := New(log.NewNop(), Config{Port: 8090})
	assert.Error(t, err)

	_, err = New(log.NewNop(), Config{Session: &fakeSession{}})
	assert.Error(t, err)
}

func TestHealthEndpoints(t *testing.T) {
	sess := &fakeSession{}
	srv := newServer(t, sess, nil, 8090)
	srv.mapHandlers()

	assert.Equal(t, http.StatusOK, get(srv, "/live").Code)

	w := get(srv, "/health")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"redis":"disabled"`)
	assert.Contains(t, w.Body.String(), `"session":"disconnected"`)

	assert.Equal(t, http.StatusServiceUnavailable, get(srv, "/ready").Code)

	sess.mu.Lock()
	sess.state = session.StateConnected
	sess.mu.Unlock()
	assert.Equal(t, http.StatusOK, get(srv, "/ready").Code)
}

func TestReadyRequiresRedisWhenConfigured(t *testing.T) {
	srv := newServer(t, &fakeSession{state: session.StateConnected}, fakeRedis{pingErr: errors.New("down")}, 8090)
	srv.mapHandlers()

	assert.Equal(t, http.StatusServiceUnavailable, get(srv, "/ready").Code)
	assert.Contains(t, get(srv, "/health").Body.String(), `"redis":"unreachable"`)
}

func TestRoutesMounted(t *testing.T) {
	srv := newServer(t, &fakeSession{}, nil, 8090)
	srv.mapHandlers()

	assert.Equal(t, http.StatusOK, get(srv, "/api/v1/session").Code)
	assert.Equal(t, http.StatusOK, get(srv, "/api/v1/call").Code)
}

func TestRunStopsOnCancel(t *testing.T) {
	l, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	port := l.Addr().(*net.TCPAddr).Port
	require.NoError(t, l.Close())

	sess := &fakeSession{}
	srv := newServer(t, sess, nil, port)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- srv.Run(ctx) }()

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("Run did not return after cancel")
	}
	assert.True(t, sess.wasDisconnected())
}

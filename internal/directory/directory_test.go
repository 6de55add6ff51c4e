package directory

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"social-realtime/pkg/log"
)

func TestPutAndLookup(t *testing.T) {
	d, err := New(log.NewNop(), 2, nil)
	require.NoError(t, err)

	d.Put(1, " Alice ")
	d.Put(2, "Bob")
	d.Put(3, "")
	d.Put(-1, "Nobody")

	name, ok := d.Lookup(1)
	assert.True(t, ok)
	assert.Equal(t, "Alice", name)
	assert.Equal(t, "Bob", d.DisplayName(2))
	assert.Equal(t, "", d.DisplayName(3))
	assert.Equal(t, 2, d.Len())
}

func TestEvictsLeastRecentlyUsed(t *testing.T) {
	d, err := New(log.NewNop(), 2, nil)
	require.NoError(t, err)

	d.Put(1, "Alice")
	d.Put(2, "Bob")
	_, _ = d.Lookup(1)
	d.Put(3, "Carol")

	_, ok := d.Lookup(2)
	assert.False(t, ok)
	assert.Equal(t, "Alice", d.DisplayName(1))
	assert.Equal(t, "Carol", d.DisplayName(3))
}

func TestResolveWithoutResolver(t *testing.T) {
	d, err := New(log.NewNop(), 0, nil)
	require.NoError(t, err)

	_, err = d.Resolve(context.Background(), 5)
	assert.ErrorIs(t, err, ErrNoResolver)
	_, err = d.Resolve(context.Background(), 0)
	assert.ErrorIs(t, err, ErrInvalidUserID)
}

func TestResolveFetchesAndCaches(t *testing.T) {
	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		assert.Equal(t, "Bearer tok", r.Header.Get("Authorization"))
		switch r.URL.Path {
		case "/api/users/99":
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(`{"id":99,"username":"bob","fullName":"Bob Builder"}`))
		case "/api/users/98":
			_, _ = w.Write([]byte(`{"id":98,"username":"carol"}`))
		case "/api/users/97":
			_, _ = w.Write([]byte(`{"id":97}`))
		case "/api/users/500":
			http.Error(w, "boom", http.StatusInternalServerError)
		default:
			http.NotFound(w, r)
		}
	}))
	defer srv.Close()

	d, err := New(log.NewNop(), 8, NewHTTPResolver(srv.URL+"/", time.Second, func() string { return "tok" }))
	require.NoError(t, err)
	ctx := context.Background()

	name, err := d.Resolve(ctx, 99)
	require.NoError(t, err)
	assert.Equal(t, "Bob Builder", name)
	name, err = d.Resolve(ctx, 99)
	require.NoError(t, err)
	assert.Equal(t, "Bob Builder", name)
	assert.Equal(t, int32(1), hits.Load())

	name, err = d.Resolve(ctx, 98)
	require.NoError(t, err)
	assert.Equal(t, "carol", name)

	_, err = d.Resolve(ctx, 97)
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = d.Resolve(ctx, 404)
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = d.Resolve(ctx, 500)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "status 500")
	assert.Equal(t, "", d.DisplayName(500))
}

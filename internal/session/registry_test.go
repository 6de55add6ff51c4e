package session

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func noopHandler(context.Context, Message) {}

func ids(entries []*entry) []string {
	out := make([]string, 0, len(entries))
	for _, e := range entries {
		out = append(out, e.id)
	}
	return out
}

func TestRegistryTakePendingFirstWins(t *testing.T) {
	r := newRegistry()
	a := r.newEntry("a", "/topic/chat/1", noopHandler)
	b := r.newEntry("b", "/topic/chat/2", noopHandler)
	dup := r.newEntry("a", "/topic/chat/9", noopHandler)
	r.addPending(a)
	r.addPending(b)
	r.pending = append(r.pending, dup)

	survivors, dropped := r.takePending()

	assert.Equal(t, []string{"a", "b"}, ids(survivors))
	assert.Equal(t, "/topic/chat/1", survivors[0].topic)
	require.Len(t, dropped, 1)
	assert.Same(t, dup, dropped[0])
	assert.Empty(t, r.pending)
}

func TestRegistryRemovePending(t *testing.T) {
	r := newRegistry()
	a := r.newEntry("a", "/topic/chat/1", noopHandler)
	r.addPending(a)

	got, ok := r.remove("a")
	require.True(t, ok)
	assert.Same(t, a, got)

	_, ok = r.remove("a")
	assert.False(t, ok)
	live, pending := r.counts()
	assert.Zero(t, live)
	assert.Zero(t, pending)
}

func TestRegistryRequeueIgnoresRemoved(t *testing.T) {
	r := newRegistry()
	a := r.newEntry("a", "/topic/chat/1", noopHandler)
	r.addPending(a)
	survivors, _ := r.takePending()
	require.Len(t, survivors, 1)

	r.remove("a")
	r.requeue(a)

	_, pending := r.counts()
	assert.Zero(t, pending)
}

func TestRegistryDemoteRestoresSubscribeOrder(t *testing.T) {
	r := newRegistry()
	c := &fakeClient{subs: map[string]func(Frame){}}
	for _, id := range []string{"a", "b", "c", "d"} {
		e := r.newEntry(id, "/topic/chat/"+id, noopHandler)
		r.addLive(e, &fakeSub{id: id, topic: e.topic, client: c})
	}

	released := r.demote()

	assert.Len(t, released, 4)
	assert.Equal(t, []string{"a", "b", "c", "d"}, ids(r.pending))
	live, pending := r.counts()
	assert.Zero(t, live)
	assert.Equal(t, 4, pending)
}

func TestRegistryLiveEntriesSorted(t *testing.T) {
	r := newRegistry()
	c := &fakeClient{subs: map[string]func(Frame){}}
	for _, id := range []string{"x", "y", "z"} {
		e := r.newEntry(id, "/topic/chat/"+id, noopHandler)
		r.addLive(e, &fakeSub{id: id, topic: e.topic, client: c})
	}
	r.addPending(r.newEntry("p", "/topic/chat/p", noopHandler))

	assert.Equal(t, []string{"x", "y", "z"}, ids(r.liveEntries()))

	r.reset()
	assert.Empty(t, r.liveEntries())
}

func TestOutboxDrainPreservesOrder(t *testing.T) {
	var o outbox
	o.enqueue("/app/sendMessage", []byte("A"))
	o.enqueue("/app/typing", []byte("B"))
	o.enqueue("/app/sendMessage", []byte("C"))
	require.Equal(t, 3, o.len())

	got := o.drain()

	assert.Equal(t, []outboundMessage{
		{destination: "/app/sendMessage", body: []byte("A")},
		{destination: "/app/typing", body: []byte("B")},
		{destination: "/app/sendMessage", body: []byte("C")},
	}, got)
	assert.Zero(t, o.len())
	assert.Empty(t, o.drain())
}

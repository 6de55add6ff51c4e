package session

import (
	"cmp"
	"slices"
	"sync/atomic"
)

// entry is one subscription interest, pending while live is nil.
// active gates frame delivery and is read without the session lock.
type entry struct {
	id      string
	topic   string
	handler Handler
	seq     uint64
	live    Subscription
	active  atomic.Bool
}

// registry tracks subscriptions by id across the live and pending sets.
// An id appears at most once across both sets.
type registry struct {
	entries map[string]*entry
	pending []*entry
	seq     uint64
}

func newRegistry() *registry {
	return &registry{entries: make(map[string]*entry)}
}

func (r *registry) newEntry(id, topic string, handler Handler) *entry {
	r.seq++
	return &entry{id: id, topic: topic, handler: handler, seq: r.seq}
}

func (r *registry) get(id string) (*entry, bool) {
	e, ok := r.entries[id]
	return e, ok
}

func (r *registry) tracked(e *entry) bool {
	cur, ok := r.entries[e.id]
	return ok && cur == e
}

func (r *registry) addLive(e *entry, sub Subscription) {
	e.live = sub
	e.active.Store(true)
	r.entries[e.id] = e
}

// inflight tracks e while its transport registration is under way. Frames
// that arrive before the registration returns are delivered.
func (r *registry) inflight(e *entry) {
	e.live = nil
	e.active.Store(true)
	r.entries[e.id] = e
}

func (r *registry) addPending(e *entry) {
	e.live = nil
	e.active.Store(false)
	r.entries[e.id] = e
	r.pending = append(r.pending, e)
}

// requeue puts an entry that left the pending list back in subscribe order.
// Entries removed in the meantime are ignored.
func (r *registry) requeue(e *entry) {
	if !r.tracked(e) {
		e.active.Store(false)
		return
	}
	e.live = nil
	e.active.Store(false)
	if slices.Contains(r.pending, e) {
		return
	}
	r.pending = append(r.pending, e)
	slices.SortStableFunc(r.pending, bySeq)
}

func (r *registry) remove(id string) (*entry, bool) {
	e, ok := r.entries[id]
	if !ok {
		return nil, false
	}
	delete(r.entries, id)
	e.active.Store(false)
	if e.live == nil {
		r.pending = slices.DeleteFunc(r.pending, func(p *entry) bool { return p == e })
	}
	return e, true
}

// takePending empties the pending list. The first occurrence of an id wins;
// later duplicates and entries no longer tracked are returned as dropped.
func (r *registry) takePending() (survivors, dropped []*entry) {
	seen := make(map[string]struct{}, len(r.pending))
	for _, e := range r.pending {
		if _, dup := seen[e.id]; dup {
			dropped = append(dropped, e)
			continue
		}
		if !r.tracked(e) {
			dropped = append(dropped, e)
			continue
		}
		seen[e.id] = struct{}{}
		survivors = append(survivors, e)
	}
	r.pending = nil
	return survivors, dropped
}

// demote moves every live entry back to pending and returns the released
// transport handles. Pending order follows subscribe order.
func (r *registry) demote() []Subscription {
	var released []Subscription
	for _, e := range r.entries {
		if e.live == nil {
			continue
		}
		released = append(released, e.live)
		e.live = nil
		e.active.Store(false)
		r.pending = append(r.pending, e)
	}
	slices.SortStableFunc(r.pending, bySeq)
	return released
}

func (r *registry) liveEntries() []*entry {
	var out []*entry
	for _, e := range r.entries {
		if e.live != nil {
			out = append(out, e)
		}
	}
	slices.SortFunc(out, bySeq)
	return out
}

// counts reports live entries and everything else still tracked, including
// registrations in flight.
func (r *registry) counts() (live, pending int) {
	for _, e := range r.entries {
		if e.live != nil {
			live++
		}
	}
	return live, len(r.entries) - live
}

func (r *registry) reset() {
	for _, e := range r.entries {
		e.active.Store(false)
	}
	r.entries = make(map[string]*entry)
	r.pending = nil
}

func bySeq(a, b *entry) int {
	return cmp.Compare(a.seq, b.seq)
}

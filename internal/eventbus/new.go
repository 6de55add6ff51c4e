package eventbus

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"social-realtime/pkg/log"
)

type subscriber struct {
	id uint64
	h  Handler
}

type bus struct {
	logger log.Logger

	mu     sync.RWMutex
	nextID uint64
	byName map[Name][]subscriber
	all    []subscriber
}

// New returns an in-memory Bus. Dispatch is synchronous and a panicking
// handler does not stop delivery to the others.
func New(logger log.Logger) Bus {
	return &bus{
		logger: logger,
		byName: make(map[Name][]subscriber),
	}
}

func (b *bus) Publish(ctx context.Context, name Name, payload any) error {
	if name == "" {
		return ErrEmptyName
	}
	raw, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("%w: %s: %v", ErrEncodePayload, name, err)
	}
	b.Emit(ctx, Event{Name: name, Payload: raw})
	return nil
}

func (b *bus) Emit(ctx context.Context, ev Event) {
	b.mu.RLock()
	targets := make([]subscriber, 0, len(b.byName[ev.Name])+len(b.all))
	targets = append(targets, b.byName[ev.Name]...)
	targets = append(targets, b.all...)
	b.mu.RUnlock()

	for _, s := range targets {
		b.call(ctx, s.h, ev)
	}
}

func (b *bus) call(ctx context.Context, h Handler, ev Event) {
	defer func() {
		if r := recover(); r != nil {
			b.logger.Errorf(ctx, "eventbus: handler for %s panicked: %v", ev.Name, r)
		}
	}()
	h(ctx, ev)
}

func (b *bus) Subscribe(name Name, h Handler) func() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.nextID++
	id := b.nextID
	b.byName[name] = append(b.byName[name], subscriber{id: id, h: h})

	return func() {
		b.mu.Lock()
		defer b.mu.Unlock()
		b.byName[name] = without(b.byName[name], id)
		if len(b.byName[name]) == 0 {
			delete(b.byName, name)
		}
	}
}

func (b *bus) SubscribeAll(h Handler) func() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.nextID++
	id := b.nextID
	b.all = append(b.all, subscriber{id: id, h: h})

	return func() {
		b.mu.Lock()
		defer b.mu.Unlock()
		b.all = without(b.all, id)
	}
}

// without returns a copy of subs minus id so in-flight dispatch snapshots stay valid.
func without(subs []subscriber, id uint64) []subscriber {
	out := make([]subscriber, 0, len(subs))
	for _, s := range subs {
		if s.id != id {
			out = append(out, s)
		}
	}
	return out
}

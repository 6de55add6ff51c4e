package usecase

import (
	"context"
	"sync"
	"time"

	"github.com/benbjohnson/clock"

	"social-realtime/internal/call"
	"social-realtime/internal/eventbus"
	"social-realtime/internal/session"
	"social-realtime/pkg/log"
)

const nameLookupTimeout = 5 * time.Second

type usecase struct {
	logger log.Logger
	self   call.Identity
	names  call.NameResolver
	clock  clock.Clock

	mu           sync.Mutex
	messenger    session.Messenger
	state        call.State
	callViewOpen bool
	incoming     *call.Incoming
	active       *call.Active
	watched      map[int64]struct{}

	onIncoming []func(call.Incoming)
	onAccept   []func(call.Incoming)
	onEnded    []func(string)

	cancelBus func()
}

// New creates the coordinator. messenger and bus may be nil; names may be
// nil, in which case callers are shown by id.
func New(logger log.Logger, self call.Identity, messenger session.Messenger, names call.NameResolver, bus eventbus.Bus, clk clock.Clock) call.UseCase {
	if clk == nil {
		clk = clock.New()
	}
	uc := &usecase{
		logger:    logger,
		self:      self,
		names:     names,
		clock:     clk,
		messenger: messenger,
		watched:   make(map[int64]struct{}),
	}
	if bus != nil {
		uc.cancelBus = bus.Subscribe(eventbus.IncomingCall, uc.handleIncomingEvent)
	}
	return uc
}

func (uc *usecase) OnIncoming(fn func(call.Incoming)) {
	uc.mu.Lock()
	defer uc.mu.Unlock()
	uc.onIncoming = append(uc.onIncoming, fn)
}

func (uc *usecase) OnAccept(fn func(call.Incoming)) {
	uc.mu.Lock()
	defer uc.mu.Unlock()
	uc.onAccept = append(uc.onAccept, fn)
}

func (uc *usecase) OnEnded(fn func(string)) {
	uc.mu.Lock()
	defer uc.mu.Unlock()
	uc.onEnded = append(uc.onEnded, fn)
}

func (uc *usecase) SetCallViewOpen(open bool) {
	uc.mu.Lock()
	defer uc.mu.Unlock()
	uc.callViewOpen = open
}

func (uc *usecase) Snapshot() call.Snapshot {
	uc.mu.Lock()
	defer uc.mu.Unlock()

	snap := call.Snapshot{
		State:        uc.state,
		CallViewOpen: uc.callViewOpen,
		WatchedChats: uc.watchedLocked(),
	}
	if uc.incoming != nil {
		in := *uc.incoming
		snap.Incoming = &in
	}
	if uc.active != nil {
		a := *uc.active
		snap.Active = &a
	}
	return snap
}

func (uc *usecase) Close() {
	uc.mu.Lock()
	m := uc.messenger
	chats := uc.watchedLocked()
	uc.watched = make(map[int64]struct{})
	cancel := uc.cancelBus
	uc.cancelBus = nil
	uc.mu.Unlock()

	if cancel != nil {
		cancel()
	}
	if m == nil {
		return
	}
	for _, id := range chats {
		m.Unsubscribe(subscriptionID(id))
	}
	uc.logger.Debugf(context.Background(), "call coordinator closed, %d chats unwatched", len(chats))
}

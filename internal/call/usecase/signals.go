package usecase

import (
	"context"
	"slices"
	"strconv"

	"social-realtime/internal/call"
	"social-realtime/internal/eventbus"
	"social-realtime/internal/topic"
)

// HandleSignal applies one inbound call signal. It never fails: signals may
// race the connection and are dropped with a log line when not applicable.
func (uc *usecase) HandleSignal(ctx context.Context, sig call.Signal) {
	switch sig.Type {
	case call.SignalStart:
		uc.handleStart(ctx, sig, "")
	case call.SignalEnd, call.SignalBusy:
		uc.handleEnd(ctx, sig)
	default:
		uc.logger.Debugf(ctx, "call: ignoring signal type %q", sig.Type)
	}
}

func (uc *usecase) handleIncomingEvent(ctx context.Context, ev eventbus.Event) {
	var p eventbus.IncomingCallPayload
	if err := ev.Decode(&p); err != nil {
		uc.logger.Warnf(ctx, "call: undecodable incoming call event: %v", err)
		return
	}
	if p.ReceiverUsername != uc.self.Username {
		uc.logger.Debugf(ctx, "call: incoming call for %q is not ours", p.ReceiverUsername)
		return
	}
	uc.handleStart(ctx, call.Signal{
		Type:      call.SignalStart,
		ChatID:    p.ChatID,
		UserID:    p.CallerID,
		SessionID: p.SessionID,
	}, p.CallerName)
}

func (uc *usecase) handleStart(ctx context.Context, sig call.Signal, callerName string) {
	if sig.UserID == uc.self.UserID {
		uc.logger.Debugf(ctx, "call: ignoring own start signal for session %s", sig.SessionID)
		return
	}

	uc.mu.Lock()
	switch {
	case uc.state == call.StateRinging && uc.incoming.SessionID == sig.SessionID:
		uc.mu.Unlock()
		return

	case uc.state != call.StateIdle || uc.callViewOpen:
		uc.mu.Unlock()
		uc.logger.Infof(ctx, "call: busy, rejecting session %s from user %d on chat %d", sig.SessionID, sig.UserID, sig.ChatID)
		uc.publishBusy(ctx, sig)
		return
	}

	lookup := false
	if callerName == "" {
		callerName, lookup = uc.displayName(sig.UserID)
	}
	in := call.Incoming{
		ChatID:     sig.ChatID,
		SessionID:  sig.SessionID,
		CallerID:   sig.UserID,
		CallerName: callerName,
		ReceivedAt: uc.clock.Now(),
	}
	uc.state = call.StateRinging
	uc.incoming = &in
	callbacks := slices.Clone(uc.onIncoming)
	uc.mu.Unlock()

	uc.logger.Infof(ctx, "call: incoming call %s from %s on chat %d", in.SessionID, in.CallerName, in.ChatID)
	if lookup {
		go uc.resolveCaller(ctx, in.SessionID, in.CallerID)
	}
	for _, fn := range callbacks {
		fn(in)
	}
}

// resolveCaller fetches an unknown caller's name in the background and
// renames the offer if it is still ringing.
func (uc *usecase) resolveCaller(ctx context.Context, sessionID string, userID int64) {
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), nameLookupTimeout)
	defer cancel()

	name, err := uc.names.Resolve(ctx, userID)
	if err != nil || name == "" {
		uc.logger.Debugf(ctx, "call: name of user %d unresolved: %v", userID, err)
		return
	}

	uc.mu.Lock()
	defer uc.mu.Unlock()
	if uc.state == call.StateRinging && uc.incoming.SessionID == sessionID {
		uc.incoming.CallerName = name
	}
}

func (uc *usecase) handleEnd(ctx context.Context, sig call.Signal) {
	if sig.UserID == uc.self.UserID {
		return
	}

	uc.mu.Lock()
	var sessionID string
	switch {
	case uc.state == call.StateRinging && uc.incoming.SessionID == sig.SessionID:
		sessionID = uc.incoming.SessionID
	case uc.state == call.StateInCall && uc.active.SessionID == sig.SessionID:
		sessionID = uc.active.SessionID
		uc.callViewOpen = false
	default:
		uc.mu.Unlock()
		return
	}
	uc.resetLocked()
	callbacks := slices.Clone(uc.onEnded)
	uc.mu.Unlock()

	uc.logger.Infof(ctx, "call: session %s ended by user %d (%s)", sessionID, sig.UserID, sig.Type)
	for _, fn := range callbacks {
		fn(sessionID)
	}
}

// publishBusy tells the caller the local party is busy: a chat-visible
// marker first, then the end signal for the offered session.
func (uc *usecase) publishBusy(ctx context.Context, sig call.Signal) {
	uc.publish(ctx, topic.SendMessage, call.BusyMessage{
		ChatID:   sig.ChatID,
		SenderID: uc.self.UserID,
		Content:  call.BusyMarker,
		TypeID:   call.TypeCallBusy,
	})
	uc.publish(ctx, topic.CallEnd, call.EndRequest{
		ChatID:        sig.ChatID,
		CallSessionID: sig.SessionID,
		UserID:        uc.self.UserID,
	})
}

func (uc *usecase) publish(ctx context.Context, destination string, payload any) {
	uc.mu.Lock()
	m := uc.messenger
	uc.mu.Unlock()

	if m == nil {
		uc.logger.Warnf(ctx, "call: messenger not ready, publish to %s skipped", destination)
		return
	}
	m.Publish(destination, payload)
}

// displayName returns the cached name or a placeholder. missing reports a
// cache miss worth resolving.
func (uc *usecase) displayName(userID int64) (name string, missing bool) {
	if uc.names != nil {
		if name := uc.names.DisplayName(userID); name != "" {
			return name, false
		}
		missing = true
	}
	return "user " + strconv.FormatInt(userID, 10), missing
}

func (uc *usecase) resetLocked() {
	uc.state = call.StateIdle
	uc.incoming = nil
	uc.active = nil
}

package usecase

import (
	"context"
	"slices"

	"github.com/google/uuid"

	"social-realtime/internal/call"
	"social-realtime/internal/topic"
)

// Accept takes the ringing call and opens the call view.
func (uc *usecase) Accept(ctx context.Context) (call.Incoming, error) {
	uc.mu.Lock()
	if uc.state != call.StateRinging {
		uc.mu.Unlock()
		return call.Incoming{}, call.ErrNoIncomingCall
	}
	in := *uc.incoming
	uc.state = call.StateInCall
	uc.callViewOpen = true
	uc.incoming = nil
	uc.active = &call.Active{ChatID: in.ChatID, SessionID: in.SessionID, PeerID: in.CallerID}
	callbacks := slices.Clone(uc.onAccept)
	uc.mu.Unlock()

	uc.logger.Infof(ctx, "call: accepted session %s on chat %d", in.SessionID, in.ChatID)
	for _, fn := range callbacks {
		fn(in)
	}
	return in, nil
}

// Reject declines the ringing call and notifies the caller.
func (uc *usecase) Reject(ctx context.Context) error {
	uc.mu.Lock()
	if uc.state != call.StateRinging {
		uc.mu.Unlock()
		return call.ErrNoIncomingCall
	}
	in := *uc.incoming
	uc.resetLocked()
	uc.mu.Unlock()

	uc.logger.Infof(ctx, "call: rejected session %s on chat %d", in.SessionID, in.ChatID)
	uc.publish(ctx, topic.CallEnd, call.EndRequest{
		ChatID:        in.ChatID,
		CallSessionID: in.SessionID,
		UserID:        uc.self.UserID,
	})
	return nil
}

// StartCall opens a new call session on chatID and returns its id.
func (uc *usecase) StartCall(ctx context.Context, chatID int64) (string, error) {
	if chatID <= 0 {
		return "", call.ErrInvalidChat
	}

	uc.mu.Lock()
	if uc.state != call.StateIdle {
		uc.mu.Unlock()
		return "", call.ErrBusy
	}
	sessionID := uuid.NewString()
	uc.state = call.StateInCall
	uc.callViewOpen = true
	uc.active = &call.Active{ChatID: chatID, SessionID: sessionID, Outgoing: true}
	uc.mu.Unlock()

	uc.logger.Infof(ctx, "call: starting session %s on chat %d", sessionID, chatID)
	uc.publish(ctx, topic.CallStart, call.StartRequest{
		ChatID:    chatID,
		UserID:    uc.self.UserID,
		SessionID: sessionID,
	})
	return sessionID, nil
}

// EndCall hangs up the current call.
func (uc *usecase) EndCall(ctx context.Context) error {
	uc.mu.Lock()
	if uc.state != call.StateInCall {
		uc.mu.Unlock()
		return call.ErrNotInCall
	}
	a := *uc.active
	uc.resetLocked()
	uc.callViewOpen = false
	uc.mu.Unlock()

	uc.logger.Infof(ctx, "call: ending session %s on chat %d", a.SessionID, a.ChatID)
	uc.publish(ctx, topic.CallEnd, call.EndRequest{
		ChatID:        a.ChatID,
		CallSessionID: a.SessionID,
		UserID:        uc.self.UserID,
	})
	return nil
}

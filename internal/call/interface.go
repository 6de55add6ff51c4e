package call

import (
	"context"

	"social-realtime/internal/session"
)

// NameResolver maps a user id to a display name. DisplayName answers from
// the local cache; Resolve may ask the user service and fills the cache.
type NameResolver interface {
	DisplayName(userID int64) string
	Resolve(ctx context.Context, userID int64) (string, error)
}

// UseCase is the call signaling coordinator of the local party.
type UseCase interface {
	// SetMessenger wires the realtime session; watched chats are subscribed then.
	SetMessenger(m session.Messenger)
	WatchChat(chatID int64) error
	UnwatchChat(chatID int64)
	HandleSignal(ctx context.Context, sig Signal)

	Accept(ctx context.Context) (Incoming, error)
	Reject(ctx context.Context) error
	StartCall(ctx context.Context, chatID int64) (string, error)
	EndCall(ctx context.Context) error
	SetCallViewOpen(open bool)

	OnIncoming(fn func(Incoming))
	OnAccept(fn func(Incoming))
	OnEnded(fn func(sessionID string))

	Snapshot() Snapshot
	Close()
}

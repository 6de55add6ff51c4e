package chat

import "context"

// NameSink receives display names seen in chat traffic.
type NameSink interface {
	Put(userID int64, name string)
}

// UseCase is the messaging surface on top of the realtime session.
type UseCase interface {
	Watch(chatID int64, fn EventHandler) error
	Unwatch(chatID int64)
	WatchSpamStatus(chatID int64, fn SpamStatusHandler) error
	UnwatchSpamStatus(chatID int64)
	// WatchUnread relays the user's unread counters to the event bus.
	WatchUnread(userID int64) error
	UnwatchUnread(userID int64)

	Send(ctx context.Context, in SendInput) error
	Typing(ctx context.Context, chatID int64, isTyping bool) error
	Resend(ctx context.Context, chatID, messageID int64) error
	Delete(ctx context.Context, chatID int64) error
}

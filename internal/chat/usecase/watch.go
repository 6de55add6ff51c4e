package usecase

import (
	"context"
	"errors"

	"social-realtime/internal/chat"
	"social-realtime/internal/eventbus"
	"social-realtime/internal/session"
	"social-realtime/internal/topic"
)

func (uc *usecase) Watch(chatID int64, fn chat.EventHandler) error {
	if chatID <= 0 {
		return chat.ErrInvalidChat
	}
	if fn == nil {
		return chat.ErrNilHandler
	}

	return uc.subscribe(topic.Chat(chatID), topic.SubscriptionID(topic.KindChat, chatID), func(ctx context.Context, msg session.Message) {
		var ev chat.Event
		if err := msg.Decode(&ev); err != nil {
			uc.logger.Warnf(ctx, "chat: undecodable event on chat %d: %v", chatID, err)
			return
		}
		if ev.ChatID == 0 {
			ev.ChatID = chatID
		}
		if uc.names != nil && ev.SenderID > 0 && ev.SenderName != "" {
			uc.names.Put(ev.SenderID, ev.SenderName)
		}
		fn(ctx, ev)
	})
}

func (uc *usecase) Unwatch(chatID int64) {
	uc.messenger.Unsubscribe(topic.SubscriptionID(topic.KindChat, chatID))
}

func (uc *usecase) WatchSpamStatus(chatID int64, fn chat.SpamStatusHandler) error {
	if chatID <= 0 {
		return chat.ErrInvalidChat
	}
	if fn == nil {
		return chat.ErrNilHandler
	}

	return uc.subscribe(topic.SpamStatus(chatID), topic.SubscriptionID(topic.KindSpamStatus, chatID), func(ctx context.Context, msg session.Message) {
		var st chat.SpamStatus
		if err := msg.Decode(&st); err != nil {
			uc.logger.Warnf(ctx, "chat: undecodable spam status on chat %d: %v", chatID, err)
			return
		}
		if st.ChatID == 0 {
			st.ChatID = chatID
		}
		fn(ctx, st)
	})
}

func (uc *usecase) UnwatchSpamStatus(chatID int64) {
	uc.messenger.Unsubscribe(topic.SubscriptionID(topic.KindSpamStatus, chatID))
}

func (uc *usecase) WatchUnread(userID int64) error {
	if userID <= 0 {
		return chat.ErrInvalidUser
	}

	return uc.subscribe(topic.UnreadCount(userID), topic.SubscriptionID(topic.KindUnreadCount, userID), func(ctx context.Context, msg session.Message) {
		var count chat.UnreadCount
		if err := msg.Decode(&count); err != nil {
			uc.logger.Warnf(ctx, "chat: undecodable unread count: %v", err)
			return
		}
		if uc.bus == nil {
			return
		}
		if err := uc.bus.Publish(ctx, eventbus.UpdateUnreadCount, eventbus.UnreadCountPayload{
			ChatID:      count.ChatID,
			UnreadCount: count.UnreadCount,
		}); err != nil {
			uc.logger.Warnf(ctx, "chat: publish unread count: %v", err)
		}
	})
}

func (uc *usecase) UnwatchUnread(userID int64) {
	uc.messenger.Unsubscribe(topic.SubscriptionID(topic.KindUnreadCount, userID))
}

// subscribe treats a duplicate registration as success.
func (uc *usecase) subscribe(t, id string, h session.Handler) error {
	_, err := uc.messenger.Subscribe(t, h, id)
	if errors.Is(err, session.ErrAlreadyRegistered) {
		return nil
	}
	return err
}

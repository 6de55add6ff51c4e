package usecase

import (
	"context"
	"errors"
	"slices"

	"social-realtime/internal/call"
	"social-realtime/internal/session"
	"social-realtime/internal/topic"
)

func subscriptionID(chatID int64) string {
	return topic.SubscriptionID(topic.KindCall, chatID)
}

func (uc *usecase) SetMessenger(m session.Messenger) {
	uc.mu.Lock()
	uc.messenger = m
	chats := uc.watchedLocked()
	uc.mu.Unlock()

	if m == nil {
		return
	}
	for _, id := range chats {
		uc.subscribe(m, id)
	}
}

// WatchChat listens for call signals of chatID.
func (uc *usecase) WatchChat(chatID int64) error {
	if chatID <= 0 {
		return call.ErrInvalidChat
	}

	uc.mu.Lock()
	if _, ok := uc.watched[chatID]; ok {
		uc.mu.Unlock()
		return nil
	}
	uc.watched[chatID] = struct{}{}
	m := uc.messenger
	uc.mu.Unlock()

	if m == nil {
		uc.logger.Debugf(context.Background(), "call: messenger not ready, watch of chat %d deferred", chatID)
		return nil
	}
	uc.subscribe(m, chatID)
	return nil
}

func (uc *usecase) UnwatchChat(chatID int64) {
	uc.mu.Lock()
	_, ok := uc.watched[chatID]
	delete(uc.watched, chatID)
	m := uc.messenger
	uc.mu.Unlock()

	if ok && m != nil {
		m.Unsubscribe(subscriptionID(chatID))
	}
}

func (uc *usecase) subscribe(m session.Messenger, chatID int64) {
	_, err := m.Subscribe(topic.Call(chatID), func(ctx context.Context, msg session.Message) {
		var sig call.Signal
		if err := msg.Decode(&sig); err != nil {
			uc.logger.Warnf(ctx, "call: undecodable signal on chat %d: %v", chatID, err)
			return
		}
		if sig.ChatID == 0 {
			sig.ChatID = chatID
		}
		uc.HandleSignal(ctx, sig)
	}, subscriptionID(chatID))
	if err != nil && !errors.Is(err, session.ErrAlreadyRegistered) {
		uc.logger.Warnf(context.Background(), "call: watch chat %d: %v", chatID, err)
	}
}

func (uc *usecase) watchedLocked() []int64 {
	out := make([]int64, 0, len(uc.watched))
	for id := range uc.watched {
		out = append(out, id)
	}
	slices.Sort(out)
	return out
}

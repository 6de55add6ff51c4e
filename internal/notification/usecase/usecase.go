package usecase

import (
	"context"
	"errors"
	"slices"

	"social-realtime/internal/eventbus"
	"social-realtime/internal/notification"
	"social-realtime/internal/session"
	"social-realtime/internal/topic"
)

func (uc *usecase) OnNotification(fn notification.Handler) {
	uc.mu.Lock()
	defer uc.mu.Unlock()
	uc.handlers = append(uc.handlers, fn)
}

func (uc *usecase) Watch(userID int64) error {
	if userID <= 0 {
		return notification.ErrInvalidUser
	}

	_, err := uc.messenger.Subscribe(topic.Notifications(userID), func(ctx context.Context, msg session.Message) {
		var n notification.Notification
		if err := msg.Decode(&n); err != nil {
			uc.logger.Warnf(ctx, "notification: undecodable payload: %v", err)
			return
		}
		uc.handle(ctx, n)
	}, topic.SubscriptionID(topic.KindNotifications, userID))
	if errors.Is(err, session.ErrAlreadyRegistered) {
		return nil
	}
	return err
}

func (uc *usecase) Unwatch(userID int64) {
	uc.messenger.Unsubscribe(topic.SubscriptionID(topic.KindNotifications, userID))
}

func (uc *usecase) handle(ctx context.Context, n notification.Notification) {
	if n.UnreadCount != nil {
		uc.emit(ctx, eventbus.UpdateUnreadNotificationCount, eventbus.UnreadNotificationCountPayload{UnreadCount: *n.UnreadCount})
	}
	if n.TargetType == notification.TargetCall {
		chatID := n.ChatID
		if chatID == 0 {
			chatID = n.TargetID
		}
		uc.emit(ctx, eventbus.IncomingCall, eventbus.IncomingCallPayload{
			ChatID:           chatID,
			SessionID:        n.SessionID,
			CallerID:         n.SenderID,
			CallerName:       n.SenderName,
			ReceiverUsername: n.ReceiverUsername,
		})
	}

	uc.mu.Lock()
	handlers := slices.Clone(uc.handlers)
	uc.mu.Unlock()
	for _, fn := range handlers {
		fn(ctx, n)
	}
}

func (uc *usecase) emit(ctx context.Context, name eventbus.Name, payload any) {
	if uc.bus == nil {
		return
	}
	if err := uc.bus.Publish(ctx, name, payload); err != nil {
		uc.logger.Warnf(ctx, "notification: publish %s: %v", name, err)
	}
}

func (uc *usecase) WatchReports(fn notification.ReportHandler) error {
	if fn == nil {
		return notification.ErrNilHandler
	}

	_, err := uc.messenger.Subscribe(topic.AdminReports(), func(ctx context.Context, msg session.Message) {
		var r notification.Report
		if err := msg.Decode(&r); err != nil {
			uc.logger.Warnf(ctx, "notification: undecodable report: %v", err)
			return
		}
		fn(ctx, r)
	}, topic.SubscriptionID(topic.KindAdminReports, 0))
	if errors.Is(err, session.ErrAlreadyRegistered) {
		return nil
	}
	return err
}

func (uc *usecase) UnwatchReports() {
	uc.messenger.Unsubscribe(topic.SubscriptionID(topic.KindAdminReports, 0))
}

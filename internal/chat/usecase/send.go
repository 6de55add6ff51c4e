package usecase

import (
	"context"
	"strings"

	"social-realtime/internal/chat"
	"social-realtime/internal/topic"
)

func (uc *usecase) Send(ctx context.Context, in chat.SendInput) error {
	if in.ChatID <= 0 {
		return chat.ErrInvalidChat
	}
	if strings.TrimSpace(in.Content) == "" {
		return chat.ErrEmptyContent
	}
	typeID := in.TypeID
	if typeID == 0 {
		typeID = chat.TypeText
	}

	uc.messenger.Publish(topic.SendMessage, chat.SendRequest{
		ChatID:   in.ChatID,
		SenderID: uc.userID,
		Content:  in.Content,
		TypeID:   typeID,
	})
	uc.logger.Debugf(ctx, "chat: message sent to chat %d", in.ChatID)
	return nil
}

func (uc *usecase) Typing(ctx context.Context, chatID int64, isTyping bool) error {
	if chatID <= 0 {
		return chat.ErrInvalidChat
	}
	uc.messenger.Publish(topic.Typing, chat.TypingRequest{ChatID: chatID, UserID: uc.userID, IsTyping: isTyping})
	return nil
}

func (uc *usecase) Resend(ctx context.Context, chatID, messageID int64) error {
	if chatID <= 0 {
		return chat.ErrInvalidChat
	}
	if messageID <= 0 {
		return chat.ErrInvalidMessage
	}
	uc.messenger.Publish(topic.Resend, chat.ResendRequest{MessageID: messageID, ChatID: chatID, UserID: uc.userID})
	uc.logger.Debugf(ctx, "chat: resend of message %d requested", messageID)
	return nil
}

func (uc *usecase) Delete(ctx context.Context, chatID int64) error {
	if chatID <= 0 {
		return chat.ErrInvalidChat
	}
	uc.messenger.Publish(topic.ChatDelete, chat.DeleteRequest{ChatID: chatID, UserID: uc.userID})
	uc.logger.Infof(ctx, "chat: delete of chat %d requested", chatID)
	return nil
}

package http

import (
	"social-realtime/internal/chat"
)

type chatURI struct {
	ChatID int64 `uri:"chatId" binding:"required"`
}

type messageURI struct {
	ChatID    int64 `uri:"chatId" binding:"required"`
	MessageID int64 `uri:"messageId" binding:"required"`
}

type sendReq struct {
	Content string `json:"content" binding:"required"`
	TypeID  int    `json:"type_id"`
}

func (r sendReq) toInput(chatID int64) chat.SendInput {
	return chat.SendInput{ChatID: chatID, Content: r.Content, TypeID: r.TypeID}
}

type typingReq struct {
	IsTyping *bool `json:"is_typing" binding:"required"`
}

type ackResp struct {
	ChatID int64 `json:"chat_id"`
}

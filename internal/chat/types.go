package chat

import "context"

// Message type ids understood by the chat service.
const (
	TypeText     = 1
	TypeImage    = 2
	TypeFile     = 3
	TypeCallBusy = 4
)

// Event is a frame received on a chat topic: either a message or a typing
// indicator.
type Event struct {
	ID         int64  `json:"id,omitempty"`
	ChatID     int64  `json:"chatId"`
	SenderID   int64  `json:"senderId,omitempty"`
	SenderName string `json:"senderName,omitempty"`
	UserID     int64  `json:"userId,omitempty"`
	Content    string `json:"content,omitempty"`
	TypeID     int    `json:"typeId,omitempty"`
	CreatedAt  string `json:"createdAt,omitempty"`
	IsTyping   *bool  `json:"isTyping,omitempty"`
	Deleted    bool   `json:"deleted,omitempty"`
}

// Typing reports whether the event is a typing indicator.
func (e Event) Typing() bool {
	return e.IsTyping != nil
}

// SpamStatus is pushed on a chat's spam-status topic.
type SpamStatus struct {
	ChatID int64  `json:"chatId"`
	IsSpam bool   `json:"isSpam"`
	Status string `json:"status,omitempty"`
}

// UnreadCount is pushed on the user's unread-count topic.
type UnreadCount struct {
	ChatID      int64 `json:"chatId,omitempty"`
	UnreadCount int   `json:"unreadCount"`
}

type EventHandler func(ctx context.Context, ev Event)
type SpamStatusHandler func(ctx context.Context, st SpamStatus)

// SendInput is a new outgoing chat message.
type SendInput struct {
	ChatID  int64  `json:"chat_id" binding:"required"`
	Content string `json:"content" binding:"required"`
	TypeID  int    `json:"type_id"`
}

// Outgoing payloads.
type SendRequest struct {
	ChatID   int64  `json:"chatId"`
	SenderID int64  `json:"senderId"`
	Content  string `json:"content"`
	TypeID   int    `json:"typeId"`
}

type TypingRequest struct {
	ChatID   int64 `json:"chatId"`
	UserID   int64 `json:"userId"`
	IsTyping bool  `json:"isTyping"`
}

type ResendRequest struct {
	MessageID int64 `json:"messageId"`
	ChatID    int64 `json:"chatId"`
	UserID    int64 `json:"userId"`
}

type DeleteRequest struct {
	ChatID int64 `json:"chatId"`
	UserID int64 `json:"userId"`
}

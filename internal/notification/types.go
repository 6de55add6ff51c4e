package notification

import "context"

// TargetCall marks a notification announcing an incoming call.
const TargetCall = "CALL"

// Notification is pushed on the user's notification topic.
type Notification struct {
	ID               int64  `json:"id,omitempty"`
	Content          string `json:"content,omitempty"`
	SenderID         int64  `json:"senderId,omitempty"`
	SenderName       string `json:"senderName,omitempty"`
	UserID           int64  `json:"userId,omitempty"`
	TargetType       string `json:"targetType,omitempty"`
	TargetID         int64  `json:"targetId,omitempty"`
	ChatID           int64  `json:"chatId,omitempty"`
	SessionID        string `json:"sessionId,omitempty"`
	ReceiverUsername string `json:"receiverUsername,omitempty"`
	UnreadCount      *int   `json:"unreadCount,omitempty"`
	CreatedAt        string `json:"createdAt,omitempty"`
}

// Report is pushed to administrators on the reports topic.
type Report struct {
	ID         int64  `json:"id"`
	ReporterID int64  `json:"reporterId,omitempty"`
	TargetType string `json:"targetType,omitempty"`
	TargetID   int64  `json:"targetId,omitempty"`
	Reason     string `json:"reason,omitempty"`
	Status     string `json:"status,omitempty"`
	CreatedAt  string `json:"createdAt,omitempty"`
}

type Handler func(ctx context.Context, n Notification)
type ReportHandler func(ctx context.Context, r Report)

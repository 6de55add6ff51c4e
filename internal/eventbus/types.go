package eventbus

import (
	"context"
	"encoding/json"
)

// Name identifies a cross-module event.
type Name string

const (
	UpdateUnreadCount             Name = "updateUnreadCount"
	UpdateUnreadNotificationCount Name = "updateUnreadNotificationCount"
	IncomingCall                  Name = "incomingCall"
)

// Event is one published occurrence. Origin is empty for events raised in
// this process and set to the remote instance id for relayed ones.
type Event struct {
	Name    Name            `json:"name"`
	Payload json.RawMessage `json:"payload"`
	Origin  string          `json:"origin,omitempty"`
}

// Decode unmarshals the payload into v.
func (e Event) Decode(v any) error {
	return json.Unmarshal(e.Payload, v)
}

// Handler reacts to an event. It runs on the publisher's goroutine.
type Handler func(ctx context.Context, ev Event)

// UnreadCountPayload accompanies UpdateUnreadCount.
type UnreadCountPayload struct {
	ChatID      int64 `json:"chatId,omitempty"`
	UnreadCount int   `json:"unreadCount"`
}

// UnreadNotificationCountPayload accompanies UpdateUnreadNotificationCount.
type UnreadNotificationCountPayload struct {
	UnreadCount int `json:"unreadCount"`
}

// IncomingCallPayload accompanies IncomingCall.
type IncomingCallPayload struct {
	ChatID           int64  `json:"chatId"`
	SessionID        string `json:"sessionId"`
	CallerID         int64  `json:"callerId"`
	CallerName       string `json:"callerName,omitempty"`
	ReceiverUsername string `json:"receiverUsername"`
}

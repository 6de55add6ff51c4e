// Package topic names the broker topics and application destinations used by
// the realtime session.
package topic

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// Kind identifies a topic family.
type Kind string

const (
	KindNotifications Kind = "notifications"
	KindCall          Kind = "call"
	KindChat          Kind = "chat"
	KindUnreadCount   Kind = "unread-count"
	KindAdminReports  Kind = "admin/reports"
	KindSpamStatus    Kind = "spam-status"
)

// Application destinations.
const (
	SendMessage = "/app/sendMessage"
	Typing      = "/app/typing"
	CallStart   = "/app/call/start"
	CallEnd     = "/app/call/end"
	Resend      = "/app/resend"
	ChatDelete  = "/app/chat/delete"
)

const prefix = "/topic/"

var ErrInvalidTopic = errors.New("invalid topic")

// Parsed is a topic split into its family and entity id.
type Parsed struct {
	Kind Kind
	ID   int64
}

func Notifications(userID int64) string { return build(KindNotifications, userID) }
func Call(chatID int64) string          { return build(KindCall, chatID) }
func Chat(chatID int64) string          { return build(KindChat, chatID) }
func UnreadCount(userID int64) string   { return build(KindUnreadCount, userID) }
func SpamStatus(chatID int64) string    { return build(KindSpamStatus, chatID) }
func AdminReports() string              { return prefix + string(KindAdminReports) }

func build(k Kind, id int64) string {
	return prefix + string(k) + "/" + strconv.FormatInt(id, 10)
}

// Parse validates topic and extracts its kind and id. The admin reports
// topic carries no id.
func Parse(topic string) (Parsed, error) {
	rest, ok := strings.CutPrefix(topic, prefix)
	if !ok {
		return Parsed{}, fmt.Errorf("%w: %q", ErrInvalidTopic, topic)
	}
	if rest == string(KindAdminReports) {
		return Parsed{Kind: KindAdminReports}, nil
	}

	name, rawID, ok := strings.Cut(rest, "/")
	if !ok {
		return Parsed{}, fmt.Errorf("%w: %q", ErrInvalidTopic, topic)
	}

	k := Kind(name)
	switch k {
	case KindNotifications, KindCall, KindChat, KindUnreadCount, KindSpamStatus:
	default:
		return Parsed{}, fmt.Errorf("%w: unknown family %q", ErrInvalidTopic, name)
	}

	id, err := strconv.ParseInt(rawID, 10, 64)
	if err != nil || id <= 0 {
		return Parsed{}, fmt.Errorf("%w: bad id in %q", ErrInvalidTopic, topic)
	}
	return Parsed{Kind: k, ID: id}, nil
}

// SubscriptionID returns the conventional subscription id for a topic,
// e.g. "chat-7" or "admin-reports".
func SubscriptionID(k Kind, id int64) string {
	name := strings.ReplaceAll(string(k), "/", "-")
	if k == KindAdminReports {
		return name
	}
	return name + "-" + strconv.FormatInt(id, 10)
}

// IsDestination reports whether dest is an application destination.
func IsDestination(dest string) bool {
	switch dest {
	case SendMessage, Typing, CallStart, CallEnd, Resend, ChatDelete:
		return true
	}
	return false
}

package topic

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuilders(t *testing.T) {
	assert.Equal(t, "/topic/notifications/1", Notifications(1))
	assert.Equal(t, "/topic/call/42", Call(42))
	assert.Equal(t, "/topic/chat/7", Chat(7))
	assert.Equal(t, "/topic/unread-count/3", UnreadCount(3))
	assert.Equal(t, "/topic/spam-status/9", SpamStatus(9))
	assert.Equal(t, "/topic/admin/reports", AdminReports())
}

func TestParse(t *testing.T) {
	tests := []struct {
		name    string
		topic   string
		want    Parsed
		wantErr bool
	}{
		{"chat", "/topic/chat/7", Parsed{Kind: KindChat, ID: 7}, false},
		{"call", "/topic/call/42", Parsed{Kind: KindCall, ID: 42}, false},
		{"notifications", "/topic/notifications/1", Parsed{Kind: KindNotifications, ID: 1}, false},
		{"unread", "/topic/unread-count/5", Parsed{Kind: KindUnreadCount, ID: 5}, false},
		{"spam", "/topic/spam-status/8", Parsed{Kind: KindSpamStatus, ID: 8}, false},
		{"admin reports", "/topic/admin/reports", Parsed{Kind: KindAdminReports}, false},

		{"missing prefix", "/queue/chat/7", Parsed{}, true},
		{"destination", "/app/sendMessage", Parsed{}, true},
		{"unknown family", "/topic/feed/1", Parsed{}, true},
		{"missing id", "/topic/chat", Parsed{}, true},
		{"non numeric id", "/topic/chat/abc", Parsed{}, true},
		{"zero id", "/topic/chat/0", Parsed{}, true},
		{"nested id", "/topic/chat/7/extra", Parsed{}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Parse(tt.topic)
			if tt.wantErr {
				require.ErrorIs(t, err, ErrInvalidTopic)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestRoundTrip(t *testing.T) {
	for _, topic := range []string{Chat(11), Call(12), SpamStatus(13), UnreadCount(14), Notifications(15)} {
		p, err := Parse(topic)
		require.NoError(t, err)
		assert.Equal(t, topic, build(p.Kind, p.ID))
	}
}

func TestSubscriptionID(t *testing.T) {
	assert.Equal(t, "chat-7", SubscriptionID(KindChat, 7))
	assert.Equal(t, "call-42", SubscriptionID(KindCall, 42))
	assert.Equal(t, "unread-count-1", SubscriptionID(KindUnreadCount, 1))
	assert.Equal(t, "admin-reports", SubscriptionID(KindAdminReports, 0))
}

func TestIsDestination(t *testing.T) {
	assert.True(t, IsDestination(CallEnd))
	assert.True(t, IsDestination("/app/chat/delete"))
	assert.False(t, IsDestination("/topic/chat/7"))
	assert.False(t, IsDestination("/app/unknown"))
}

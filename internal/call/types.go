package call

import "time"

// State is the local party's call state.
type State int

const (
	StateIdle State = iota
	StateRinging
	StateInCall
)

func (s State) String() string {
	switch s {
	case StateRinging:
		return "ringing"
	case StateInCall:
		return "in_call"
	default:
		return "idle"
	}
}

func (s State) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

func (s *State) UnmarshalText(b []byte) error {
	switch string(b) {
	case "ringing":
		*s = StateRinging
	case "in_call":
		*s = StateInCall
	default:
		*s = StateIdle
	}
	return nil
}

// SignalType is the kind of a call signal.
type SignalType string

const (
	SignalStart SignalType = "start"
	SignalBusy  SignalType = "busy"
	SignalEnd   SignalType = "end"
)

// Signal is a message received on a chat's call topic.
type Signal struct {
	Type      SignalType `json:"type"`
	ChatID    int64      `json:"chatId"`
	UserID    int64      `json:"userId"`
	SessionID string     `json:"sessionId"`
}

// Identity is the local party.
type Identity struct {
	UserID   int64
	Username string
}

// Incoming is a call offered to the local party.
type Incoming struct {
	ChatID     int64     `json:"chat_id"`
	SessionID  string    `json:"session_id"`
	CallerID   int64     `json:"caller_id"`
	CallerName string    `json:"caller_name"`
	ReceivedAt time.Time `json:"received_at"`
}

// Active is the call the local party is in.
type Active struct {
	ChatID    int64  `json:"chat_id"`
	SessionID string `json:"session_id"`
	PeerID    int64  `json:"peer_id,omitempty"`
	Outgoing  bool   `json:"outgoing"`
}

// Snapshot is the coordinator state at one point in time.
type Snapshot struct {
	State        State     `json:"state"`
	CallViewOpen bool      `json:"call_view_open"`
	Incoming     *Incoming `json:"incoming,omitempty"`
	Active       *Active   `json:"active,omitempty"`
	WatchedChats []int64   `json:"watched_chats"`
}

// Outgoing payloads.
const (
	BusyMarker   = "busy-marker"
	TypeCallBusy = 4
)

// BusyMessage is the chat-visible notice sent when the local party is busy.
type BusyMessage struct {
	ChatID   int64  `json:"chatId"`
	SenderID int64  `json:"senderId"`
	Content  string `json:"content"`
	TypeID   int    `json:"typeId"`
}

// EndRequest ends a call session.
type EndRequest struct {
	ChatID        int64  `json:"chatId"`
	CallSessionID string `json:"callSessionId"`
	UserID        int64  `json:"userId"`
}

// StartRequest opens a call session.
type StartRequest struct {
	ChatID    int64  `json:"chatId"`
	UserID    int64  `json:"userId"`
	SessionID string `json:"sessionId"`
}

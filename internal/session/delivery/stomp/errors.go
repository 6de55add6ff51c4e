package stomp

import "errors"

// ErrConnectionLost is reported when the socket closed without a cause,
// typically after a missed heartbeat.
var ErrConnectionLost = errors.New("stomp connection lost")

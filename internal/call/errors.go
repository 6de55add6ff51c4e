package call

import "errors"

var (
	ErrNoIncomingCall = errors.New("no incoming call")
	ErrNotInCall      = errors.New("not in a call")
	ErrBusy           = errors.New("a call is already in progress")
	ErrInvalidChat    = errors.New("invalid chat id")
)

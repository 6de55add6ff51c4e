package notification

import "errors"

var (
	ErrInvalidUser = errors.New("invalid user id")
	ErrNilHandler  = errors.New("handler is nil")
)

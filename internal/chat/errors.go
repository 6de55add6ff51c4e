package chat

import "errors"

var (
	ErrInvalidChat    = errors.New("invalid chat id")
	ErrInvalidMessage = errors.New("invalid message id")
	ErrInvalidUser    = errors.New("invalid user id")
	ErrEmptyContent   = errors.New("message content is empty")
	ErrNilHandler     = errors.New("handler is nil")
)

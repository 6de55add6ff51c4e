package eventbus

import "errors"

var (
	ErrEmptyName     = errors.New("event name is empty")
	ErrEncodePayload = errors.New("failed to encode event payload")
)

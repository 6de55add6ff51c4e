package directory

import "errors"

var (
	ErrNotFound      = errors.New("user not found")
	ErrNoResolver    = errors.New("no resolver configured")
	ErrInvalidUserID = errors.New("invalid user id")
)

package session

import "errors"

var (
	// ErrAlreadyRegistered is returned by Subscribe when the subscription id
	// is already live or pending. The existing live handle, if any, is
	// returned alongside it.
	ErrAlreadyRegistered = errors.New("subscription id already registered")

	// ErrInvalidSubscription is returned by Subscribe for an empty topic,
	// empty id or nil handler.
	ErrInvalidSubscription = errors.New("invalid subscription request")

	// ErrMissingCredentials is returned by Connect when identity or token is absent.
	ErrMissingCredentials = errors.New("missing user identity or auth token")

	// ErrNotConnected is returned (wrapped) by transports when an operation
	// needs a live connection.
	ErrNotConnected = errors.New("transport not connected")
)

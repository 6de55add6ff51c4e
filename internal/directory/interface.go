package directory

import "context"

// Directory is the local user id to display name cache. It is seeded from
// REST responses and falls back to a Resolver on a miss.
type Directory interface {
	Put(userID int64, name string)
	Lookup(userID int64) (string, bool)
	// DisplayName returns the cached name or "" without blocking.
	DisplayName(userID int64) string
	// Resolve returns the cached name or fetches it through the resolver.
	Resolve(ctx context.Context, userID int64) (string, error)
	Len() int
}

// Resolver fetches a display name from the REST API.
type Resolver interface {
	ResolveName(ctx context.Context, userID int64) (string, error)
}

package directory

import (
	"context"
	"fmt"
	"strings"

	lru "github.com/hashicorp/golang-lru/v2"

	"social-realtime/pkg/log"
)

const DefaultSize = 512

type directory struct {
	logger   log.Logger
	cache    *lru.Cache[int64, string]
	resolver Resolver
}

// New returns a Directory holding at most size names. resolver may be nil.
func New(logger log.Logger, size int, resolver Resolver) (Directory, error) {
	if size <= 0 {
		size = DefaultSize
	}
	cache, err := lru.New[int64, string](size)
	if err != nil {
		return nil, fmt.Errorf("directory cache: %w", err)
	}
	return &directory{logger: logger, cache: cache, resolver: resolver}, nil
}

func (d *directory) Put(userID int64, name string) {
	name = strings.TrimSpace(name)
	if userID <= 0 || name == "" {
		return
	}
	d.cache.Add(userID, name)
}

func (d *directory) Lookup(userID int64) (string, bool) {
	return d.cache.Get(userID)
}

func (d *directory) DisplayName(userID int64) string {
	name, _ := d.cache.Get(userID)
	return name
}

func (d *directory) Resolve(ctx context.Context, userID int64) (string, error) {
	if userID <= 0 {
		return "", ErrInvalidUserID
	}
	if name, ok := d.cache.Get(userID); ok {
		return name, nil
	}
	if d.resolver == nil {
		return "", ErrNoResolver
	}

	name, err := d.resolver.ResolveName(ctx, userID)
	if err != nil {
		d.logger.Warnf(ctx, "directory: resolve user %d: %v", userID, err)
		return "", err
	}
	d.Put(userID, name)
	return name, nil
}

func (d *directory) Len() int {
	return d.cache.Len()
}

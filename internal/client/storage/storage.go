// Package storage persists small client state (tokens, cached user) as
// key/value pairs. Backends: SQLite file (default), in-process memory, and
// Redis for clients that share a session across machines.
package storage

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

// ErrUnsupportedDSN is returned by Open for an unrecognised DSN.
var ErrUnsupportedDSN = errors.New("unsupported storage dsn")

// Repository is a key/value store. Get returns (nil, nil) for a missing key.
// SetMany and Delete apply all keys atomically.
type Repository interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	SetMany(ctx context.Context, values map[string][]byte) error
	Delete(ctx context.Context, keys ...string) error
	List(ctx context.Context) (map[string][]byte, error)
	Clear(ctx context.Context) error
	Close() error
}

// Open picks a backend from dsn:
//
//	memory              in-process map
//	redis://host:6379/0 Redis
//	anything else       SQLite file path or "file:" URI
func Open(ctx context.Context, dsn string) (Repository, error) {
	switch {
	case dsn == "":
		return nil, fmt.Errorf("%w: empty", ErrUnsupportedDSN)
	case dsn == "memory":
		return NewMemoryRepository(), nil
	case strings.HasPrefix(dsn, "redis://"), strings.HasPrefix(dsn, "rediss://"):
		return OpenRedis(ctx, dsn)
	default:
		return OpenSQLite(ctx, dsn)
	}
}

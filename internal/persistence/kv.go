// Package persistence provides the backing key-value store contract and its
// concrete adapters. Repositories are written purely against KV so a
// networked store and an in-process file store behave identically.
package persistence

import (
	"context"
	"errors"
	"time"
)

// ErrKeyNotFound reports an absent (or expired) key. Adapters must return it
// for missing keys so callers can tell not-found apart from I/O failure.
var ErrKeyNotFound = errors.New("key not found")

// KV is the backing key-value store contract. A zero ttl means no expiry.
type KV interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string, ttl time.Duration) error
	// SetIfAbsent atomically reserves key when it does not exist yet and
	// reports whether the reservation succeeded.
	SetIfAbsent(ctx context.Context, key, value string, ttl time.Duration) (bool, error)
	Delete(ctx context.Context, key string) error
	Exists(ctx context.Context, key string) (bool, error)

	AddToSet(ctx context.Context, set, member string) error
	RemoveFromSet(ctx context.Context, set, member string) error
	SetMembers(ctx context.Context, set string) ([]string, error)

	Ping(ctx context.Context) error
	Close() error
}

package cache

import (
	"context"
	"time"
)

// Store is the key/value surface the services need: a read-through cache
// plus an atomic set-if-absent primitive used as a short-lived lock.
type Store interface {
	// Get returns the value for key, or ok=false when the key is absent or
	// expired.
	Get(ctx context.Context, key string) (value []byte, ok bool, err error)
	// Put stores value under key for the given TTL, replacing any existing
	// entry.
	Put(ctx context.Context, key string, value []byte, ttl time.Duration) error
	// SetIfAbsent stores value only when key has no live entry. It reports
	// whether the write happened.
	SetIfAbsent(ctx context.Context, key string, value []byte, ttl time.Duration) (bool, error)
	// Delete removes key. Deleting an absent key is not an error.
	Delete(ctx context.Context, key string) error
}

// Package cache defines the key-value store contract the planner uses to
// avoid redundant paid provider calls.
package cache

import (
	"context"
	"time"
)

// Store is the planner's external key-value collaborator. Keys are opaque
// fingerprint strings; entries expire after their TTL. Implementations must
// be safe for concurrent use: writers to the same key may race, but a reader
// must never observe a torn value.
type Store interface {
	// Get returns the cached value for key, reporting a miss for absent or
	// expired entries.
	Get(ctx context.Context, key string) (value []byte, ok bool, err error)
	// Put stores value under key for ttl.
	Put(ctx context.Context, key string, value []byte, ttl time.Duration) error
}

package relink

import (
	"context"
	"time"
)

// Cache is the interface for storing resolved-schema snapshots.
// Users should implement this interface with their preferred caching solution
// (e.g., Redis, Memcached, in-memory). It is never used for entity data.
type Cache interface {
	// Get retrieves a snapshot from the cache.
	// Returns nil, nil if the key doesn't exist.
	Get(ctx context.Context, key string) ([]byte, error)

	// Set stores a snapshot in the cache with an optional TTL.
	// If ttl is 0, the value should not expire.
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error

	// Delete removes a snapshot from the cache.
	Delete(ctx context.Context, key string) error
}

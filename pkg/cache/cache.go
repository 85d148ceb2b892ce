// Package cache stores pipeline results between runs.
//
// The pipeline caches three kinds of entries, each under a key built by a
// [Keyer]:
//
//   - parsed tag lists, keyed by the hash of the input bytes
//   - layouts, keyed by the tag list hash and the layout options
//   - rendered artifacts, keyed by the layout hash and the render options
//
// Backends:
//
//   - [FileCache]: one JSON file per entry, used by the CLI
//   - [RedisCache]: shared cache for API servers (go-redis)
//   - [MongoCache]: shared cache with a TTL index (mongo-driver)
//   - [NullCache]: disables caching
//
// Network backends wrap transient failures with [Retryable] and retry them
// with [RetryWithBackoff].
package cache

import (
	"context"
	"time"
)

// Cache is a byte-oriented key/value store with optional expiry.
type Cache interface {
	// Get returns the value for key. A miss is reported with ok == false and
	// a nil error.
	Get(ctx context.Context, key string) (data []byte, ok bool, err error)

	// Set stores data under key. A ttl <= 0 means no expiry.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases backend resources.
	Close() error
}

// Entry lifetimes.
const (
	TTLTags     = 24 * time.Hour
	TTLLayout   = 7 * 24 * time.Hour
	TTLArtifact = 7 * 24 * time.Hour
)

package driven

import (
	"context"
	"time"
)

// Cache is a byte-valued key-value store with optional per-entry expiry.
// Callers own the encoding of values.
type Cache interface {
	// Get returns the value stored under key.
	// The boolean is false when the key is absent or expired.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Has reports whether a live entry exists under key.
	Has(ctx context.Context, key string) (bool, error)

	// Put stores value under key. A ttl of zero or less keeps the entry forever.
	Put(ctx context.Context, key string, value []byte, ttl time.Duration) error

	// Forget removes key. Removing an absent key is not an error.
	Forget(ctx context.Context, key string) error

	// Clear removes every entry whose key starts with prefix.
	// An empty prefix removes everything.
	Clear(ctx context.Context, prefix string) error
}

package store

import (
	"context"
)

// Store is the key-value view of short code -> long URL mappings.
// Implementations must be safe for concurrent use by in-flight requests.
type Store interface {
	// Get returns the value stored under code.
	// Returns empty string if the key doesn't exist (not an error)
	Get(ctx context.Context, code string) (string, error)

	// SetNX stores url under code only if code is not already taken
	SetNX(ctx context.Context, code, url string) (bool, error)

	// Ping issues a liveness round trip
	Ping(ctx context.Context) error

	// IsOpen reports whether the connection lifecycle considers the handle usable.
	// It does not contact the store.
	IsOpen() bool

	// Close closes the connection
	Close() error
}

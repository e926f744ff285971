package shared

import (
	"context"
	"time"
)

// IdempotencyStore remembers request keys so a retried checkout cannot
// place a second order
type IdempotencyStore interface {
	// MarkProcessed marks a request key as seen with a TTL.
	// Returns true if the key was newly marked, false if it was already seen.
	MarkProcessed(ctx context.Context, key string, ttl time.Duration) (bool, error)

	// IsProcessed checks if a request key has already been seen
	IsProcessed(ctx context.Context, key string) (bool, error)

	// Close closes the store and releases resources
	Close() error
}

// IdempotencyConfig holds configuration for request idempotency handling
type IdempotencyConfig struct {
	// TTL is the time-to-live for seen request keys.
	// After this duration the same key is accepted again.
	TTL time.Duration

	// Enabled determines whether idempotency checking is enabled
	Enabled bool
}

// DefaultIdempotencyConfig returns the default idempotency configuration
func DefaultIdempotencyConfig() IdempotencyConfig {
	return IdempotencyConfig{
		TTL:     24 * time.Hour,
		Enabled: true,
	}
}

package repository

import (
	"context"
	"time"
)

// UpdateFunc receives the current values of the keys passed to Update
// (absent keys are missing from the map) and returns the values to write.
type UpdateFunc func(current map[string][]byte) (map[string][]byte, error)

// KeyValueStore persists JSON documents under string keys
type KeyValueStore interface {
	// Get returns the stored value, or nil when the key is absent or expired
	Get(ctx context.Context, key string) ([]byte, error)
	// Set stores value under key. A zero ttl never expires.
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	// Update reads keys and writes fn's result as a single atomic unit.
	// Nothing is written when fn returns an error.
	Update(ctx context.Context, keys []string, fn UpdateFunc) error
	Close() error
}

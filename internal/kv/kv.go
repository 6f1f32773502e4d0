// Package kv defines the durable key-value slot abstraction the inventory
// persists its collections into, plus the non-SQLite backends.
package kv

import (
	"context"
	"errors"
)

// ErrUnknownDriver is returned by Open for an unrecognised storage driver.
var ErrUnknownDriver = errors.New("unknown storage driver")

// Store is a durable mapping from slot keys to opaque values.
type Store interface {
	// Get returns the value at key. found is false when the key is absent.
	Get(ctx context.Context, key string) (value []byte, found bool, err error)
	// Put overwrites the value at key.
	Put(ctx context.Context, key string, value []byte) error
	// Delete removes key. Deleting an absent key is not an error.
	Delete(ctx context.Context, key string) error
	// Ping verifies the backend is reachable.
	Ping(ctx context.Context) error
	Close() error
}

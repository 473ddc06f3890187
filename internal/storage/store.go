// Package storage provides abstractions for persistent data storage.
package storage

import "context"

// KeyValue is a persistent string key-value store.
// This abstraction allows swapping storage backends (SQLite, in-memory, ...)
// without changing the history layer.
type KeyValue interface {
	// Get returns the value stored at key.
	// found is false (with a nil error) when the key does not exist.
	Get(ctx context.Context, key string) (value string, found bool, err error)

	// Set stores value at key, replacing any previous value.
	Set(ctx context.Context, key, value string) error

	// Remove deletes key. Removing a missing key is not an error.
	Remove(ctx context.Context, key string) error

	// Close releases any resources held by the store.
	Close() error
}

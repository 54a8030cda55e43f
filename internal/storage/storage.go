// Package storage provides string key-value stores with the semantics of a
// browser's localStorage: a missing key is not an error, values are opaque
// strings and every write replaces the whole value.
package storage

import "context"

// KeyValueStore is the host persistent key-value store.
// A nil KeyValueStore stands for an execution context without storage access.
type KeyValueStore interface {
	// GetItem returns the value for key. ok is false when the key is absent.
	GetItem(ctx context.Context, key string) (value string, ok bool, err error)
	SetItem(ctx context.Context, key, value string) error
	// RemoveItem deletes key. Removing an absent key is not an error.
	RemoveItem(ctx context.Context, key string) error
}

// Watcher is implemented by stores that can observe changes made by other
// writers (other processes sharing the same backing files).
type Watcher interface {
	// Watch calls onChange with the affected key after each burst of changes
	// until ctx is canceled.
	Watch(ctx context.Context, onChange func(key string)) error
}

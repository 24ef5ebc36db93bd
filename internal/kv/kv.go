// Package kv provides the opaque key-value store the sync endpoint
// persists into. Values are treated as uninterpreted bytes; every list
// the application stores is a single JSON-encoded value.
package kv

import "context"

// Entry is one stored key-value pair.
type Entry struct {
	Key   string
	Value []byte
}

// Store is the persistence port. Implementations must be safe for
// concurrent use.
type Store interface {
	// Get returns the value for key. The second return is false when the
	// key does not exist.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set writes the value for key, replacing any previous value.
	Set(ctx context.Context, key string, value []byte) error

	// Delete removes key. Deleting an absent key is not an error.
	Delete(ctx context.Context, key string) error

	// List returns all entries whose key starts with prefix.
	List(ctx context.Context, prefix string) ([]Entry, error)

	Close() error
}

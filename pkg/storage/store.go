package storage

import "context"

// Store is a small key-value persistence layer for client-side state.
// Values are opaque byte slices; callers own serialization.
//
// Apply is the only multi-key operation and must be atomic: either every
// write and delete in the batch takes effect, or none do. Session
// persistence relies on this to never leave a token on disk without its
// user record or vice versa.
type Store interface {
	// Get retrieves the value stored under key.
	// Returns ErrKeyNotFound when the key is absent.
	Get(ctx context.Context, key string) ([]byte, error)

	// Set stores value under key, overwriting any previous value.
	Set(ctx context.Context, key string, value []byte) error

	// Delete removes key. Deleting an absent key is not an error.
	Delete(ctx context.Context, key string) error

	// Apply performs the given writes and deletes as a single atomic batch.
	Apply(ctx context.Context, set map[string][]byte, del []string) error

	// Close releases any resources held by the store.
	Close() error
}

package storage

import "errors"

var (
	// ErrKeyNotFound indicates no value is stored under the requested key.
	ErrKeyNotFound = errors.New("storage.key_not_found")

	// ErrStoreClosed indicates the store has been closed.
	ErrStoreClosed = errors.New("storage.closed")

	// ErrEmptyKey indicates an empty key was passed to a store operation.
	ErrEmptyKey = errors.New("storage.empty_key")
)

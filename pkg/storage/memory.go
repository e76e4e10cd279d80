package storage

import (
	"context"
	"slices"
	"sync"
)

// MemoryStore implements Store with an in-process map. It is the default
// backend for tests and for hosts that do not want session continuity
// across restarts.
type MemoryStore struct {
	mu     sync.RWMutex
	values map[string][]byte
	closed bool
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		values: make(map[string][]byte),
	}
}

// Get retrieves the value stored under key.
func (m *MemoryStore) Get(ctx context.Context, key string) ([]byte, error) {
	if key == "" {
		return nil, ErrEmptyKey
	}

	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.closed {
		return nil, ErrStoreClosed
	}

	value, ok := m.values[key]
	if !ok {
		return nil, ErrKeyNotFound
	}

	return slices.Clone(value), nil
}

// Set stores value under key.
func (m *MemoryStore) Set(ctx context.Context, key string, value []byte) error {
	if key == "" {
		return ErrEmptyKey
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if m.closed {
		return ErrStoreClosed
	}

	m.values[key] = slices.Clone(value)
	return nil
}

// Delete removes key.
func (m *MemoryStore) Delete(ctx context.Context, key string) error {
	if key == "" {
		return ErrEmptyKey
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if m.closed {
		return ErrStoreClosed
	}

	delete(m.values, key)
	return nil
}

// Apply performs writes and deletes under a single lock acquisition.
func (m *MemoryStore) Apply(ctx context.Context, set map[string][]byte, del []string) error {
	for key := range set {
		if key == "" {
			return ErrEmptyKey
		}
	}
	for _, key := range del {
		if key == "" {
			return ErrEmptyKey
		}
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if m.closed {
		return ErrStoreClosed
	}

	for key, value := range set {
		m.values[key] = slices.Clone(value)
	}
	for _, key := range del {
		delete(m.values, key)
	}

	return nil
}

// Close marks the store closed. Subsequent operations fail with ErrStoreClosed.
func (m *MemoryStore) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.closed = true
	m.values = nil
	return nil
}

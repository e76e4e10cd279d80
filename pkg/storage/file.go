package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"sync"
)

// FileStore persists values as a single JSON document on disk. Writes go
// through a temp file followed by rename, so a crash mid-write leaves the
// previous document intact rather than a half-written one.
type FileStore struct {
	mu     sync.Mutex
	path   string
	values map[string][]byte
	closed bool
}

// NewFileStore loads (or creates) the JSON document at path. A missing
// file starts the store empty; an unreadable or malformed file is an
// error so callers can decide whether to discard it.
func NewFileStore(path string) (*FileStore, error) {
	if path == "" {
		return nil, errors.New("storage: file path is required")
	}

	s := &FileStore{
		path:   path,
		values: make(map[string][]byte),
	}

	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return s, nil
	}
	if err != nil {
		return nil, fmt.Errorf("storage: read %s: %w", path, err)
	}

	if len(data) > 0 {
		if err := json.Unmarshal(data, &s.values); err != nil {
			return nil, fmt.Errorf("storage: parse %s: %w", path, err)
		}
	}

	return s, nil
}

// Get retrieves the value stored under key.
func (s *FileStore) Get(ctx context.Context, key string) ([]byte, error) {
	if key == "" {
		return nil, ErrEmptyKey
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return nil, ErrStoreClosed
	}

	value, ok := s.values[key]
	if !ok {
		return nil, ErrKeyNotFound
	}

	return slices.Clone(value), nil
}

// Set stores value under key and flushes the document.
func (s *FileStore) Set(ctx context.Context, key string, value []byte) error {
	return s.Apply(ctx, map[string][]byte{key: value}, nil)
}

// Delete removes key and flushes the document.
func (s *FileStore) Delete(ctx context.Context, key string) error {
	return s.Apply(ctx, nil, []string{key})
}

// Apply performs writes and deletes, then flushes the whole document once.
// The temp-file-and-rename flush makes the batch atomic on disk.
func (s *FileStore) Apply(ctx context.Context, set map[string][]byte, del []string) error {
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

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return ErrStoreClosed
	}

	for key, value := range set {
		s.values[key] = slices.Clone(value)
	}
	for _, key := range del {
		delete(s.values, key)
	}

	return s.flush()
}

// flush writes the document to a temp file in the same directory and
// renames it over the target. Caller must hold s.mu.
func (s *FileStore) flush() error {
	data, err := json.MarshalIndent(s.values, "", "  ")
	if err != nil {
		return fmt.Errorf("storage: encode state: %w", err)
	}

	dir := filepath.Dir(s.path)
	tmp, err := os.CreateTemp(dir, filepath.Base(s.path)+".tmp-*")
	if err != nil {
		return fmt.Errorf("storage: create temp file: %w", err)
	}

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmp.Name())
		return fmt.Errorf("storage: write temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmp.Name())
		return fmt.Errorf("storage: close temp file: %w", err)
	}

	if err := os.Rename(tmp.Name(), s.path); err != nil {
		_ = os.Remove(tmp.Name())
		return fmt.Errorf("storage: replace %s: %w", s.path, err)
	}

	return os.Chmod(s.path, 0o600)
}

// Close flushes and marks the store closed.
func (s *FileStore) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return nil
	}

	err := s.flush()
	s.closed = true
	s.values = nil
	return err
}

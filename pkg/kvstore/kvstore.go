// Package kvstore provides a small JSON file-backed key/value store used as the
// device-local persistence mirror. Writes are atomic (temp file + rename) and
// every mutation reports its error so callers can react to persistence loss.
package kvstore

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
)

// Well-known keys persisted by the app state container.
const (
	KeyAuthToken    = "authToken"
	KeyFavorites    = "favorites"
	KeyOrders       = "orders"
	KeyUserLocation = "userLocation"
	KeyCart         = "cart"
)

// ErrNotFound signals the key has no stored value.
var ErrNotFound = errors.New("kvstore: key not found")

// Store persists string keys to JSON-encoded values in a single file.
type Store struct {
	mu   sync.Mutex
	path string
}

// Open prepares a store backed by the given file path. The file is created on
// first write; a missing file reads as an empty store.
func Open(path string) (*Store, error) {
	if path == "" {
		return nil, fmt.Errorf("kvstore: path is required")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("kvstore: mkdir: %w", err)
	}
	return &Store{path: path}, nil
}

// Get unmarshals the value stored at key into out.
func (s *Store) Get(key string, out any) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := s.load()
	if err != nil {
		return err
	}
	raw, ok := data[key]
	if !ok {
		return ErrNotFound
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("kvstore: decode %q: %w", key, err)
	}
	return nil
}

// GetString returns the string stored at key.
func (s *Store) GetString(key string) (string, error) {
	var v string
	if err := s.Get(key, &v); err != nil {
		return "", err
	}
	return v, nil
}

// Set stores value at key, persisting the whole file atomically.
func (s *Store) Set(key string, value any) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := s.load()
	if err != nil {
		return err
	}
	raw, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("kvstore: encode %q: %w", key, err)
	}
	data[key] = raw
	return s.flush(data)
}

// Delete removes key from the store. Deleting an absent key is a no-op.
func (s *Store) Delete(key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := s.load()
	if err != nil {
		return err
	}
	if _, ok := data[key]; !ok {
		return nil
	}
	delete(data, key)
	return s.flush(data)
}

func (s *Store) load() (map[string]json.RawMessage, error) {
	raw, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return map[string]json.RawMessage{}, nil
		}
		return nil, fmt.Errorf("kvstore: read: %w", err)
	}
	if len(raw) == 0 {
		return map[string]json.RawMessage{}, nil
	}
	data := map[string]json.RawMessage{}
	if err := json.Unmarshal(raw, &data); err != nil {
		return nil, fmt.Errorf("kvstore: parse store file: %w", err)
	}
	return data, nil
}

func (s *Store) flush(data map[string]json.RawMessage) error {
	raw, err := json.Marshal(data)
	if err != nil {
		return fmt.Errorf("kvstore: encode store file: %w", err)
	}
	tmp, err := os.CreateTemp(filepath.Dir(s.path), ".kvstore-*")
	if err != nil {
		return fmt.Errorf("kvstore: temp file: %w", err)
	}
	tmpName := tmp.Name()
	if _, err := tmp.Write(raw); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("kvstore: write: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("kvstore: close: %w", err)
	}
	if err := os.Rename(tmpName, s.path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("kvstore: rename: %w", err)
	}
	return nil
}

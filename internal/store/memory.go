package store

import (
	"fmt"
	"sync"
)

// MemoryStore is a Store that never touches disk. It encodes values the same
// way FileStore does, so Get always returns a fresh copy.
type MemoryStore struct {
	mu      sync.Mutex
	codec   codec
	entries map[string][]byte
}

var _ Store = (*MemoryStore)(nil)

// NewMemoryStore returns an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		codec:   newCBORCodec(),
		entries: make(map[string][]byte),
	}
}

func (s *MemoryStore) Get(key string, v any) (bool, error) {
	s.mu.Lock()
	data, ok := s.entries[key]
	s.mu.Unlock()
	if !ok {
		return false, nil
	}
	if err := s.codec.Unmarshal(data, v); err != nil {
		return true, fmt.Errorf("%w: key %s: %v", ErrCorrupt, key, err)
	}
	return true, nil
}

func (s *MemoryStore) Set(key string, v any) error {
	data, err := s.codec.Marshal(v)
	if err != nil {
		return fmt.Errorf("failed to encode %s: %w", key, err)
	}
	s.mu.Lock()
	s.entries[key] = data
	s.mu.Unlock()
	return nil
}

func (s *MemoryStore) Delete(key string) error {
	s.mu.Lock()
	delete(s.entries, key)
	s.mu.Unlock()
	return nil
}

func (s *MemoryStore) Keys() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return sortedKeys(s.entries)
}

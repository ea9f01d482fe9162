package store

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"go.uber.org/zap"

	"valu/internal/eventbus"
)

// FileStore keeps every key in one file, rewritten in full on each change.
// Concurrent writers in other processes are last-write-wins.
type FileStore struct {
	mu      sync.Mutex
	path    string
	codec   codec
	entries map[string][]byte
	bus     eventbus.EventBus
	logger  *zap.Logger
}

var _ Store = (*FileStore)(nil)

// OpenFile loads the blob at path. A missing file starts an empty store; a
// file that cannot be decoded returns an error wrapping ErrCorrupt. bus may
// be nil.
func OpenFile(path string, bus eventbus.EventBus, logger *zap.Logger) (*FileStore, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	s := &FileStore{
		path:    path,
		codec:   codecFor(path),
		entries: make(map[string][]byte),
		bus:     bus,
		logger:  logger.With(zap.String("component", "store")),
	}

	data, err := os.ReadFile(path)
	switch {
	case errors.Is(err, os.ErrNotExist):
		s.logger.Debug("state file not found, starting empty", zap.String("path", path))
		return s, nil
	case err != nil:
		return nil, fmt.Errorf("failed to read state file: %w", err)
	case len(data) == 0:
		return s, nil
	}

	entries, err := s.codec.DecodeBlob(data)
	if err != nil {
		return nil, fmt.Errorf("state file %s: %w", path, err)
	}
	s.entries = entries
	s.logger.Debug("state loaded",
		zap.String("path", path),
		zap.String("codec", s.codec.Name()),
		zap.Int("keys", len(entries)))
	return s, nil
}

// Path returns the backing file.
func (s *FileStore) Path() string {
	return s.path
}

func (s *FileStore) Get(key string, v any) (bool, error) {
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

func (s *FileStore) Set(key string, v any) error {
	data, err := s.codec.Marshal(v)
	if err != nil {
		return fmt.Errorf("failed to encode %s: %w", key, err)
	}

	s.mu.Lock()
	prev, had := s.entries[key]
	s.entries[key] = data
	if err := s.flushLocked(); err != nil {
		if had {
			s.entries[key] = prev
		} else {
			delete(s.entries, key)
		}
		s.mu.Unlock()
		return err
	}
	s.mu.Unlock()

	s.logger.Debug("key saved", zap.String("key", key), zap.Int("bytes", len(data)))
	if s.bus != nil {
		s.bus.Publish(eventbus.StoreSavedEvent{Key: key})
	}
	return nil
}

func (s *FileStore) Delete(key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	prev, ok := s.entries[key]
	if !ok {
		return nil
	}
	delete(s.entries, key)
	if err := s.flushLocked(); err != nil {
		s.entries[key] = prev
		return err
	}
	return nil
}

func (s *FileStore) Keys() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return sortedKeys(s.entries)
}

// flushLocked writes to a temp file in the same directory and renames it over
// the target.
func (s *FileStore) flushLocked() error {
	data, err := s.codec.EncodeBlob(s.entries)
	if err != nil {
		return fmt.Errorf("failed to encode state: %w", err)
	}

	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create state directory: %w", err)
	}

	tmp, err := os.CreateTemp(dir, filepath.Base(s.path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("failed to create temp state file: %w", err)
	}
	tmpName := tmp.Name()
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("failed to write state: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("failed to write state: %w", err)
	}
	if err := os.Rename(tmpName, s.path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("failed to replace state file: %w", err)
	}
	return nil
}

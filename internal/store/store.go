// Package store persists small named values, the way the browser build kept
// its state under localStorage keys.
package store

import (
	"errors"
	"sort"
)

// Keys used by the dashboard.
const (
	KeyMarketplaceItems = "marketplaceItems"
	KeyLikedItems       = "likedItems"
	KeyMyAssets         = "myAssets"
)

// ErrCorrupt is returned when a persisted blob cannot be decoded.
var ErrCorrupt = errors.New("store: corrupt state")

// Store is a flat key/value store. Values are encoded on Set and decoded into
// the caller's destination on Get, so callers never share memory with the
// store.
type Store interface {
	// Get decodes the value under key into v and reports whether it existed.
	Get(key string, v any) (bool, error)
	Set(key string, v any) error
	Delete(key string) error
	Keys() []string
}

func sortedKeys(entries map[string][]byte) []string {
	keys := make([]string, 0, len(entries))
	for k := range entries {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

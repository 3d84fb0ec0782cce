// Package memory implements the registry store on a process-local map, for
// tests and local development.
package memory

import (
	"context"
	"sort"
	"sync"

	"gcdashboard/internal/regstore/core"
	"gcdashboard/internal/wire"
)

var _ core.Store = (*Store)(nil)

// Store keeps full registry items in memory keyed by the partition key.
type Store struct {
	mu    sync.RWMutex
	items map[string]wire.Item
}

// New constructs an empty in-memory registry store.
func New() *Store {
	return &Store{items: make(map[string]wire.Item)}
}

// Scan returns up to limit items in key order, reduced to the scan
// projection. Key order keeps results deterministic for tests; the real
// table gives no ordering guarantee either way.
func (s *Store) Scan(_ context.Context, limit int) ([]wire.Item, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	keys := make([]string, 0, len(s.items))
	for k := range s.items {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	if limit > 0 && limit < len(keys) {
		keys = keys[:limit]
	}
	out := make([]wire.Item, 0, len(keys))
	for _, k := range keys {
		out = append(out, core.ProjectScan(s.items[k]))
	}
	return out, nil
}

// BatchGet returns full items for the requested keys, skipping absent ones.
func (s *Store) BatchGet(_ context.Context, keys []string) ([]wire.Item, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]wire.Item, 0, len(keys))
	for _, k := range keys {
		if item, ok := s.items[k]; ok {
			out = append(out, item)
		}
	}
	return out, nil
}

// Put stores one full item, replacing any existing item with the same key.
func (s *Store) Put(_ context.Context, item wire.Item) error {
	key, err := core.Key(item)
	if err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.items[key] = item
	return nil
}

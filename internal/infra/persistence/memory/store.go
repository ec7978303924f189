// Package memory provides an in-memory snapshot store used for tests and
// ephemeral sessions.
package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"eventdesk/pkg/domain"
)

// Compile-time contract assertion ensuring memory.Store adheres to the domain persistence interface.
var _ domain.SnapshotStore = (*Store)(nil)

// Store keeps one payload per collection in process memory.
type Store struct {
	mu       sync.RWMutex
	payloads map[domain.Collection][]byte
	saves    map[domain.Collection]int
}

// NewStore constructs an empty in-memory snapshot store.
func NewStore() *Store {
	return &Store{
		payloads: make(map[domain.Collection][]byte),
		saves:    make(map[domain.Collection]int),
	}
}

// Load returns a copy of the payload saved for collection.
func (s *Store) Load(_ context.Context, collection domain.Collection) ([]byte, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	payload, ok := s.payloads[collection]
	if !ok {
		return nil, fmt.Errorf("collection %q: %w", collection, domain.ErrSnapshotNotFound)
	}
	return append([]byte(nil), payload...), nil
}

// Save replaces the payload for collection.
func (s *Store) Save(_ context.Context, collection domain.Collection, payload []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.payloads[collection] = append([]byte(nil), payload...)
	s.saves[collection]++
	return nil
}

// SaveCount reports how many times collection has been saved.
func (s *Store) SaveCount(collection domain.Collection) int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.saves[collection]
}

// Collections lists the collections holding a payload, sorted by name.
func (s *Store) Collections() []domain.Collection {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]domain.Collection, 0, len(s.payloads))
	for c := range s.payloads {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// Close is a no-op.
func (s *Store) Close() error { return nil }

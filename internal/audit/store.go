// Contentgate - Age-Gated Content Rating and Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/contentgate

package audit

import (
	"context"
	"fmt"
	"sync"

	"github.com/goccy/go-json"
)

// Backend names.
const (
	BackendMemory = "memory"
	BackendBadger = "badger"
)

// NewStore opens the store for a backend. maxLen bounds the memory store and
// is ignored by badger.
func NewStore(backend, path string, maxLen int) (Store, error) {
	switch backend {
	case "", BackendMemory:
		return NewMemoryStore(maxLen), nil
	case BackendBadger:
		return OpenBadgerStore(path)
	default:
		return nil, fmt.Errorf("unknown audit backend %q", backend)
	}
}

// MemoryStore implements Store using in-memory storage.
// Data is lost on exit.
type MemoryStore struct {
	decisions []Decision
	mu        sync.RWMutex
	maxLen    int
}

// NewMemoryStore creates a new in-memory audit store.
func NewMemoryStore(maxLen int) *MemoryStore {
	if maxLen <= 0 {
		maxLen = 10000
	}
	return &MemoryStore{
		decisions: make([]Decision, 0, min(maxLen, 1024)),
		maxLen:    maxLen,
	}
}

// Save persists a decision.
func (s *MemoryStore) Save(_ context.Context, d *Decision) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	// Enforce max length by removing the oldest 10%
	if len(s.decisions) >= s.maxLen {
		removeCount := max(s.maxLen/10, 1)
		s.decisions = s.decisions[removeCount:]
	}

	s.decisions = append(s.decisions, *d)
	return nil
}

// Get retrieves a decision by ID.
func (s *MemoryStore) Get(_ context.Context, id string) (*Decision, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for i := range s.decisions {
		if s.decisions[i].ID == id {
			d := s.decisions[i]
			return &d, nil
		}
	}
	return nil, fmt.Errorf("%w: %s", ErrNotFound, id)
}

// Query retrieves decisions matching the filter, most recent first.
func (s *MemoryStore) Query(_ context.Context, filter QueryFilter) ([]Decision, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var results []Decision
	for i := len(s.decisions) - 1; i >= 0; i-- {
		if !filter.Matches(&s.decisions[i]) {
			continue
		}
		results = append(results, s.decisions[i])
		if filter.Limit > 0 && len(results) >= filter.Limit {
			break
		}
	}
	return results, nil
}

// Count returns the number of decisions matching the filter.
func (s *MemoryStore) Count(_ context.Context, filter QueryFilter) (int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var count int64
	for i := range s.decisions {
		if filter.Matches(&s.decisions[i]) {
			count++
		}
	}
	return count, nil
}

// Close is a no-op.
func (s *MemoryStore) Close() error {
	return nil
}

// Len returns the number of decisions in the store.
func (s *MemoryStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.decisions)
}

// ExportJSON renders decisions as indented JSON.
func ExportJSON(decisions []Decision) ([]byte, error) {
	if decisions == nil {
		decisions = []Decision{}
	}
	return json.MarshalIndent(decisions, "", "  ")
}

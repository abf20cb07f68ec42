package ratelimit

import (
	"context"
	"sync"
	"time"
)

// Entry is one window counter keyed by (limit name, client identifier).
type Entry struct {
	Count   int
	ResetAt time.Time
}

// Store holds window counters. The limiter serializes read-modify-write
// cycles itself, so implementations only need individually safe operations.
// Backing the store with a shared cache turns per-instance quotas into
// cluster-wide ones without changing the admission algorithm.
type Store interface {
	Get(ctx context.Context, key string) (Entry, bool, error)
	Set(ctx context.Context, key string, entry Entry) error
	Delete(ctx context.Context, key string) error
}

// sweeper is implemented by stores that can drop expired entries in bulk.
type sweeper interface {
	SweepExpired(now time.Time)
}

// MemoryStore is the process-local default. State lives for the process
// lifetime, so horizontally scaled deployments get per-instance quotas
// unless the Redis store is used instead.
type MemoryStore struct {
	mu      sync.RWMutex
	entries map[string]Entry
}

// NewMemoryStore creates an empty in-process store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{entries: make(map[string]Entry)}
}

func (s *MemoryStore) Get(_ context.Context, key string) (Entry, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	entry, ok := s.entries[key]
	return entry, ok, nil
}

func (s *MemoryStore) Set(_ context.Context, key string, entry Entry) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries[key] = entry
	return nil
}

func (s *MemoryStore) Delete(_ context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.entries, key)
	return nil
}

// SweepExpired removes entries whose window has passed. Single pass over the
// map; callers invoke it opportunistically to bound memory.
func (s *MemoryStore) SweepExpired(now time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for key, entry := range s.entries {
		if !now.Before(entry.ResetAt) {
			delete(s.entries, key)
		}
	}
}

// Len reports the number of live entries.
func (s *MemoryStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.entries)
}

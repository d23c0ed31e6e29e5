// internal/store/memory.go
//
// In-memory implementation of session.Store.
// This is a lightweight persistence layer used for ephemeral sessions,
// primarily in development/testing, or when durability is not required.
//
// Characteristics:
//   - Stores deep-copied records keyed by ID, each with an expiry deadline.
//   - Concurrency-safe via RWMutex; the version check under the write lock
//     is the compare-and-swap serialization point.
//   - Expiry is lazy: expired entries read back as ErrNotFound and are
//     dropped on the next write-side encounter.
//   - State is lost when the process restarts.

package store

import (
	"context"
	"sync"
	"time"

	"github.com/gauravc/numble/internal/session"
)

type memoryEntry struct {
	rec       *session.Record
	expiresAt time.Time
}

// Memory is an in-memory map-based session.Store implementation.
type Memory struct {
	mu      sync.RWMutex
	entries map[string]*memoryEntry
	now     func() time.Time
}

// NewMemory constructs an empty in-memory store.
func NewMemory() *Memory {
	return &Memory{entries: make(map[string]*memoryEntry), now: time.Now}
}

// NewMemoryWithClock constructs a store with an injected clock for tests.
func NewMemoryWithClock(now func() time.Time) *Memory {
	return &Memory{entries: make(map[string]*memoryEntry), now: now}
}

// Create stores a copy of rec under its ID with the given deadline.
func (m *Memory) Create(ctx context.Context, rec *session.Record, expiresAt time.Time) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.entries[rec.ID] = &memoryEntry{rec: rec.Clone(), expiresAt: expiresAt}
	return nil
}

// Get returns a copy of the live record, or session.ErrNotFound.
func (m *Memory) Get(ctx context.Context, id string) (*session.Record, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	e, ok := m.entries[id]
	if !ok || !e.expiresAt.After(m.now()) {
		return nil, session.ErrNotFound
	}
	return e.rec.Clone(), nil
}

// Update replaces the stored record iff the stored version matches
// rec.Version, then increments the version. A mismatch means another
// writer got there first: session.ErrConflict.
func (m *Memory) Update(ctx context.Context, rec *session.Record) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	e, ok := m.entries[rec.ID]
	if !ok || !e.expiresAt.After(m.now()) {
		delete(m.entries, rec.ID)
		return session.ErrNotFound
	}
	if e.rec.Version != rec.Version {
		return session.ErrConflict
	}
	next := rec.Clone()
	next.Version++
	e.rec = next
	rec.Version = next.Version
	return nil
}

// internal/store/memory.go
//
// In-memory keyed store used by the HTTP server for live games and finished
// solver sessions.
//
// Characteristics:
//   - Stores values keyed by ID in a map.
//   - Concurrency-safe via RWMutex (concurrent reads allowed, writes exclusive).
//   - Optional capacity: the oldest entry is evicted once it is exceeded.
//   - State is lost when the process restarts.
//   - ErrNotFound is returned for missing IDs on Get().

package store

import (
	"context"
	"errors"
	"sync"
)

// ErrNotFound is returned by Get for unknown IDs.
var ErrNotFound = errors.New("not found")

// Store defines the persistence interface for values keyed by ID.
type Store[V any] interface {
	// Save persists or updates a value.
	Save(ctx context.Context, id string, v V) error

	// Get retrieves a value by ID.
	Get(ctx context.Context, id string) (V, error)

	// List returns all values, oldest first.
	List(ctx context.Context) ([]V, error)
}

// memory is an in-memory map-based Store implementation.
type memory[V any] struct {
	mu    sync.RWMutex // guards items, order
	items map[string]V
	order []string // insertion order of IDs
	limit int
}

// NewMemoryStore constructs an in-memory Store holding at most limit values
// (unbounded when limit <= 0).
func NewMemoryStore[V any](limit int) Store[V] {
	return &memory[V]{items: make(map[string]V), limit: limit}
}

// Save adds or updates the value in the map.
func (m *memory[V]) Save(ctx context.Context, id string, v V) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.items[id]; !ok {
		m.order = append(m.order, id)
	}
	m.items[id] = v
	for m.limit > 0 && len(m.order) > m.limit {
		delete(m.items, m.order[0])
		m.order = m.order[1:]
	}
	return nil
}

// Get looks up a value by ID.
func (m *memory[V]) Get(ctx context.Context, id string) (V, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if v, ok := m.items[id]; ok {
		return v, nil
	}
	var zero V
	return zero, ErrNotFound
}

// List returns the stored values in insertion order.
func (m *memory[V]) List(ctx context.Context) ([]V, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]V, 0, len(m.order))
	for _, id := range m.order {
		out = append(out, m.items[id])
	}
	return out, nil
}

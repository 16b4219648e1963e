package inmemory

import (
	"context"
	"sync"

	"github.com/leofalp/tangshi/providers/store"
)

// MapStore is a simple, concurrency-safe in-memory store.
// It uses RWMutex to guard access and is efficient for read-heavy workloads.
type MapStore struct {
	mu   sync.RWMutex
	data map[string][]byte
}

// New returns a new, empty [MapStore] ready for immediate use.
func New() *MapStore {
	return &MapStore{
		data: map[string][]byte{},
	}
}

// Ensure MapStore implements store.Store at compile time.
var _ store.Store = (*MapStore)(nil)

// Load returns a copy of the payload stored under key, or [store.ErrNotFound].
// The context parameter is accepted for interface compliance but is not used.
func (m *MapStore) Load(_ context.Context, key string) ([]byte, error) {
	m.mu.RLock()
	data, ok := m.data[key]
	m.mu.RUnlock()

	if !ok {
		return nil, store.ErrNotFound
	}

	return append([]byte(nil), data...), nil
}

// Save stores a copy of data under key, replacing any previous payload.
// The returned error is always nil.
func (m *MapStore) Save(_ context.Context, key string, data []byte) error {
	cp := append([]byte(nil), data...)

	m.mu.Lock()
	m.data[key] = cp
	m.mu.Unlock()

	return nil
}

// Len returns the number of stored keys.
func (m *MapStore) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.data)
}

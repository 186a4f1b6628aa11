package cart

import (
	"context"
	"sync"

	"golang.org/x/sync/singleflight"
)

// Manager hands out one Store per session, loading persisted items on first
// use. Concurrent first requests for the same session collapse into a single
// load via singleflight.
type Manager struct {
	storage Storage

	mu     sync.Mutex
	stores map[string]*Store
	sfg    singleflight.Group
}

func NewManager(storage Storage) *Manager {
	return &Manager{
		storage: storage,
		stores:  make(map[string]*Store),
	}
}

func (m *Manager) Store(ctx context.Context, sessionID string) *Store {
	m.mu.Lock()
	if s, ok := m.stores[sessionID]; ok {
		m.mu.Unlock()
		return s
	}
	m.mu.Unlock()

	v, _, _ := m.sfg.Do(sessionID, func() (interface{}, error) {
		s := NewStore(sessionID, m.storage)
		s.Load(ctx)

		m.mu.Lock()
		m.stores[sessionID] = s
		m.mu.Unlock()
		return s, nil
	})
	return v.(*Store)
}

// Evict forgets the in-memory store for a session, e.g. on logout. Persisted
// items are left alone so a returning session restores its cart.
func (m *Manager) Evict(sessionID string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.stores, sessionID)
}

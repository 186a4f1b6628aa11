package cart

import (
	"context"
	"sync"
)

// MemoryStorage is a map-backed Storage for tests and single-node local runs.
type MemoryStorage struct {
	mu     sync.RWMutex
	items  map[string][]Item
	emails map[string]string
}

func NewMemoryStorage() *MemoryStorage {
	return &MemoryStorage{
		items:  make(map[string][]Item),
		emails: make(map[string]string),
	}
}

func (m *MemoryStorage) LoadItems(_ context.Context, sessionID string) ([]Item, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	items, ok := m.items[sessionID]
	if !ok {
		return nil, ErrNotFound
	}
	out := make([]Item, len(items))
	copy(out, items)
	return out, nil
}

func (m *MemoryStorage) SaveItems(_ context.Context, sessionID string, items []Item) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	stored := make([]Item, len(items))
	copy(stored, items)
	m.items[sessionID] = stored
	return nil
}

func (m *MemoryStorage) ClearItems(_ context.Context, sessionID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.items, sessionID)
	return nil
}

func (m *MemoryStorage) UserEmail(_ context.Context, sessionID string) (string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	email, ok := m.emails[sessionID]
	if !ok {
		return "", ErrNotFound
	}
	return email, nil
}

// SetUserEmail seeds the read-only email entry, standing in for the sign-in
// flow that owns it in production.
func (m *MemoryStorage) SetUserEmail(sessionID, email string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.emails[sessionID] = email
}

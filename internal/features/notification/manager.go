package notification

import (
	"sync"

	common_models "go-spear/internal/common/models"
)

// Manager owns one store per signed-in session. Stores are created and
// seeded lazily on first access and dropped on logout.
type Manager struct {
	mu     sync.RWMutex
	stores map[string]*Store
}

func NewManager() *Manager {
	return &Manager{
		stores: make(map[string]*Store),
	}
}

// Get returns the session's store, seeding a fresh one for the role when
// the session has none yet.
func (m *Manager) Get(sessionID string, role common_models.Role) *Store {
	m.mu.RLock()
	store, ok := m.stores[sessionID]
	m.mu.RUnlock()
	if ok {
		return store
	}

	m.mu.Lock()
	if store, ok = m.stores[sessionID]; ok {
		m.mu.Unlock()
		return store
	}
	store = NewStore()
	m.stores[sessionID] = store
	m.mu.Unlock()

	store.Load(role)
	return store
}

// Peek returns the session's store without creating one.
func (m *Manager) Peek(sessionID string) (*Store, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	store, ok := m.stores[sessionID]
	return store, ok
}

// Drop tears a session's store down (logout).
func (m *Manager) Drop(sessionID string) {
	m.mu.Lock()
	delete(m.stores, sessionID)
	m.mu.Unlock()
}

// Range visits every live store. Used by producers that target a whole
// audience rather than a single session.
func (m *Manager) Range(fn func(sessionID string, store *Store)) {
	m.mu.RLock()
	snapshot := make(map[string]*Store, len(m.stores))
	for k, v := range m.stores {
		snapshot[k] = v
	}
	m.mu.RUnlock()

	for k, v := range snapshot {
		fn(k, v)
	}
}

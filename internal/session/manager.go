package session

import (
	"log"
	"sync"
	"time"
)

// Manager owns one isolated Store per session key.
type Manager struct {
	mu     sync.Mutex
	stores map[string]*Store
	now    func() time.Time
}

// NewManager creates an empty session registry.
func NewManager() *Manager {
	return &Manager{stores: make(map[string]*Store), now: time.Now}
}

// Get returns the Store for key, creating an empty one on first use.
// The store is marked active so a sweep running right after Get keeps it.
func (m *Manager) Get(key string) *Store {
	m.mu.Lock()
	defer m.mu.Unlock()

	s, ok := m.stores[key]
	if !ok {
		s = newStoreWithClock(m.now)
		m.stores[key] = s
		log.Printf("[INFO] session opened: %s", key)
	} else {
		s.touch()
	}
	return s
}

// Lookup returns the Store for key without creating it.
func (m *Manager) Lookup(key string) (*Store, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.stores[key]
	return s, ok
}

// Len returns the number of open sessions.
func (m *Manager) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.stores)
}

// Evict drops sessions idle for longer than ttl and returns their keys.
func (m *Manager) Evict(ttl time.Duration) []string {
	m.mu.Lock()
	defer m.mu.Unlock()

	cutoff := m.now().Add(-ttl)
	var evicted []string
	for key, s := range m.stores {
		if s.LastActive().Before(cutoff) {
			delete(m.stores, key)
			evicted = append(evicted, key)
		}
	}
	return evicted
}

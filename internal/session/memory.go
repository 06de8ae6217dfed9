package session

import "sync"

// MemoryStore keeps the session mapping in process memory
type MemoryStore struct {
	mu     sync.RWMutex
	values map[string]string
}

// NewMemoryStore creates an empty store
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{values: make(map[string]string, len(Keys))}
}

func (m *MemoryStore) Read() Session {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return FromValues(m.values)
}

func (m *MemoryStore) Write(s Session) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, key := range Keys {
		delete(m.values, key)
	}
	for key, value := range s.Values() {
		m.values[key] = value
	}
	return nil
}

func (m *MemoryStore) Clear() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, key := range Keys {
		delete(m.values, key)
	}
	return nil
}

// Set writes a single raw key, bypassing Session. Used to model partially
// written or corrupted state.
func (m *MemoryStore) Set(key, value string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.values[key] = value
}

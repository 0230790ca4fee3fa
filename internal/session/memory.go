package session

import "sync"

// MemoryStore keeps session data for the lifetime of the process.
type MemoryStore struct {
	mu   sync.Mutex
	data Data
}

func (m *MemoryStore) Load() (Data, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.data, nil
}

func (m *MemoryStore) Save(d Data) error {
	m.mu.Lock()
	m.data = d
	m.mu.Unlock()
	return nil
}

func (m *MemoryStore) Clear() error { return m.Save(Data{}) }

// NewMemory returns an empty session backed by a MemoryStore.
func NewMemory() *Session {
	return &Session{store: &MemoryStore{}}
}

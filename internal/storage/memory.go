package storage

import (
	"encoding/json"
	"sync"
)

// Memory is an in-process KV, used when no state file is wanted.
type Memory struct {
	mu      sync.RWMutex
	entries map[string][]byte
}

// NewMemory returns an empty Memory store.
func NewMemory() *Memory {
	return &Memory{entries: make(map[string][]byte)}
}

func (m *Memory) Get(key string) ([]byte, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	v, ok := m.entries[key]
	return v, ok
}

func (m *Memory) Set(key string, value any) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return err
	}
	m.mu.Lock()
	m.entries[key] = raw
	m.mu.Unlock()
	return nil
}

// SetRaw stores raw bytes without encoding them, which lets tests plant malformed data.
func (m *Memory) SetRaw(key string, raw []byte) {
	m.mu.Lock()
	m.entries[key] = raw
	m.mu.Unlock()
}

func (m *Memory) Remove(key string) error {
	m.mu.Lock()
	delete(m.entries, key)
	m.mu.Unlock()
	return nil
}

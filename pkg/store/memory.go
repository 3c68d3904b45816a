package store

import (
	"encoding/json"
	"sync"
)

// MemoryStore keeps values in a map. It serializes through JSON like the
// Redis store so corrupt-value and round-trip behavior match exactly.
type MemoryStore struct {
	mu     sync.RWMutex
	values map[string]string
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		values: make(map[string]string),
	}
}

func (s *MemoryStore) Load(key string, dest interface{}) bool {
	s.mu.RLock()
	raw, ok := s.values[key]
	s.mu.RUnlock()
	if !ok {
		return false
	}

	return decode(key, raw, dest)
}

func (s *MemoryStore) Save(key string, value interface{}) error {
	data, err := json.Marshal(value)
	if err != nil {
		return err
	}

	s.mu.Lock()
	s.values[key] = string(data)
	s.mu.Unlock()
	return nil
}

func (s *MemoryStore) Clear(key string) error {
	s.mu.Lock()
	delete(s.values, key)
	s.mu.Unlock()
	return nil
}

// Put stores a raw string under key, bypassing serialization. Used to stage
// corrupt or hand-written values.
func (s *MemoryStore) Put(key, raw string) {
	s.mu.Lock()
	s.values[key] = raw
	s.mu.Unlock()
}

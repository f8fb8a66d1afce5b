package memory

import (
	"sync"

	"github.com/custodia-labs/toolbridge/internal/adapters/driven/config/values"
	"github.com/custodia-labs/toolbridge/internal/core/ports/driven"
)

var _ driven.ConfigStore = (*ConfigStore)(nil)

// ConfigStore holds configuration in a map. Save and Load do nothing.
type ConfigStore struct {
	values.Reader

	mu   sync.RWMutex
	data map[string]any
}

// NewConfigStore creates an empty in-memory config store.
func NewConfigStore() *ConfigStore {
	s := &ConfigStore{data: make(map[string]any)}
	s.Reader = values.Reader{Lookup: s.Get}
	return s
}

// Get returns the raw value for key.
func (s *ConfigStore) Get(key string) (any, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	v, ok := s.data[key]
	return v, ok
}

// Set stores value under key.
func (s *ConfigStore) Set(key string, value any) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data[key] = value
	return nil
}

func (s *ConfigStore) Save() error { return nil }

func (s *ConfigStore) Load() error { return nil }

// Path reports ":memory:" since nothing is persisted.
func (s *ConfigStore) Path() string { return ":memory:" }

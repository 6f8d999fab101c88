package memory

import (
	"sync"

	"github.com/packmule-labs/packmule-cli/internal/core/ports/driven"
)

// Ensure ConfigStore implements the interface.
var _ driven.ConfigStore = (*ConfigStore)(nil)

// ConfigStore holds settings in a flat key map, mirroring the TOML
// store's flattened dot-notation keys ("tool.dir", "runs.limit") so
// service tests can stand in for the real file.
type ConfigStore struct {
	mu     sync.RWMutex
	values map[string]any
}

// NewConfigStore creates an empty in-memory config store.
func NewConfigStore() *ConfigStore {
	return &ConfigStore{values: make(map[string]any)}
}

// Get retrieves a raw value and whether the key is present.
func (s *ConfigStore) Get(key string) (any, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	val, ok := s.values[key]
	return val, ok
}

// GetString returns the value at key, or "" when absent or not a
// string.
func (s *ConfigStore) GetString(key string) string {
	val, _ := s.Get(key)
	str, _ := val.(string)
	return str
}

// GetInt returns the value at key, or 0 when absent or not an
// integer. int64 is accepted because that is how TOML decodes
// integers; the memory store matches so fixtures behave like loaded
// files.
func (s *ConfigStore) GetInt(key string) int {
	switch v, _ := s.Get(key); n := v.(type) {
	case int:
		return n
	case int64:
		return int(n)
	default:
		return 0
	}
}

// GetBool returns the value at key, or false when absent or not a
// bool.
func (s *ConfigStore) GetBool(key string) bool {
	val, _ := s.Get(key)
	b, _ := val.(bool)
	return b
}

// Set stores a value under key.
func (s *ConfigStore) Set(key string, value any) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.values[key] = value
	return nil
}

// Save is a no-op; the map is the storage.
func (s *ConfigStore) Save() error { return nil }

// Load is a no-op; the map is the storage.
func (s *ConfigStore) Load() error { return nil }

// Path identifies the store in log output.
func (s *ConfigStore) Path() string { return ":memory:" }

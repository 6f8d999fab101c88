package file

import (
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/pelletier/go-toml/v2"

	"github.com/packmule-labs/packmule-cli/internal/core/ports/driven"
)

// Ensure ConfigStore implements the interface.
var _ driven.ConfigStore = (*ConfigStore)(nil)

// configName is the file inside the packmule directory.
const configName = "config.toml"

// ConfigStore keeps settings in a nested map mirroring the TOML
// document. Dotted keys ("tool.dir") address one table level per
// segment, so the file on disk stays hand-editable.
type ConfigStore struct {
	mu   sync.RWMutex
	path string
	tree map[string]any
}

// NewConfigStore opens the store under configDir, creating the
// directory 0700 when needed. An empty configDir means ~/.packmule.
// An existing file is loaded immediately.
func NewConfigStore(configDir string) (*ConfigStore, error) {
	if configDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, err
		}
		configDir = filepath.Join(home, ".packmule")
	}

	if err := os.MkdirAll(configDir, 0700); err != nil {
		return nil, err
	}

	s := &ConfigStore{
		path: filepath.Join(configDir, configName),
		tree: make(map[string]any),
	}
	if err := s.Load(); err != nil {
		return nil, err
	}

	return s, nil
}

// Get retrieves the value at a dotted key. Keys addressing a table
// rather than a leaf report absence.
func (s *ConfigStore) Get(key string) (any, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	node := s.tree
	parts := strings.Split(key, ".")
	for _, part := range parts[:len(parts)-1] {
		child, ok := node[part].(map[string]any)
		if !ok {
			return nil, false
		}
		node = child
	}

	val, ok := node[parts[len(parts)-1]]
	if _, isTable := val.(map[string]any); isTable {
		return nil, false
	}
	return val, ok
}

// GetString returns the string at key, or "" when absent or
// mistyped.
func (s *ConfigStore) GetString(key string) string {
	val, _ := s.Get(key)
	str, _ := val.(string)
	return str
}

// GetInt returns the integer at key, or 0 when absent or mistyped.
// TOML decodes integers as int64; values stored through Set may be
// plain int.
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

// GetBool returns the bool at key, or false when absent or mistyped.
func (s *ConfigStore) GetBool(key string) bool {
	val, _ := s.Get(key)
	b, _ := val.(bool)
	return b
}

// Set stores value under a dotted key, creating intermediate tables,
// and persists immediately. A scalar in the path is displaced by the
// table that needs its slot.
func (s *ConfigStore) Set(key string, value any) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	node := s.tree
	parts := strings.Split(key, ".")
	for _, part := range parts[:len(parts)-1] {
		child, ok := node[part].(map[string]any)
		if !ok {
			child = make(map[string]any)
			node[part] = child
		}
		node = child
	}
	node[parts[len(parts)-1]] = value

	return s.flush()
}

// Save persists the current configuration to disk.
func (s *ConfigStore) Save() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.flush()
}

// flush writes the tree as TOML with restricted permissions; the
// caller holds the lock.
func (s *ConfigStore) flush() error {
	data, err := toml.Marshal(s.tree)
	if err != nil {
		return err
	}
	return os.WriteFile(s.path, data, 0600)
}

// Load replaces the tree with the file contents. A missing file
// resets the store to empty.
func (s *ConfigStore) Load() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := os.ReadFile(s.path)
	if os.IsNotExist(err) {
		s.tree = make(map[string]any)
		return nil
	}
	if err != nil {
		return err
	}

	tree := make(map[string]any)
	if err := toml.Unmarshal(data, &tree); err != nil {
		return err
	}
	s.tree = tree

	return nil
}

// Path returns the configuration file location.
func (s *ConfigStore) Path() string {
	return s.path
}

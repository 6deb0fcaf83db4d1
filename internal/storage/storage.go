package storage

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"sort"
	"sync"

	"github.com/sirupsen/logrus"
)

// DefaultPath is where state is persisted unless overridden on the command line.
const DefaultPath = "~/.config/regionpick/state.json"

// Getter reads raw persisted values.
type Getter interface {
	Get(key string) ([]byte, bool)
}

// KV is a persisted key-value store of JSON documents.
type KV interface {
	Getter
	Set(key string, value any) error
	Remove(key string) error
}

// Store is a KV backed by a single JSON object on disk.
// Every mutation rewrites the file.
type Store struct {
	Path string

	mu      sync.RWMutex
	entries map[string]json.RawMessage
}

// NewStore opens the store at path. A missing or unreadable file yields an empty store.
func NewStore(path string) (*Store, error) {
	expandedPath, err := expandTilde(path)
	if err != nil {
		return nil, err
	}

	s := &Store{
		Path:    expandedPath,
		entries: make(map[string]json.RawMessage),
	}
	if err := s.Load(); err != nil {
		// Absent or malformed state is treated as no state.
		if !os.IsNotExist(err) {
			logrus.Debugf("ignoring unreadable state file %s: %v", s.Path, err)
		}
	}
	return s, nil
}

// Load replaces the in-memory entries with the file contents.
func (s *Store) Load() error {
	logrus.Debug("Loading state file from: ", s.Path)
	data, err := os.ReadFile(s.Path)
	if err != nil {
		return err
	}

	entries := make(map[string]json.RawMessage)
	if err := json.Unmarshal(data, &entries); err != nil {
		return err
	}

	s.mu.Lock()
	s.entries = entries
	s.mu.Unlock()
	return nil
}

// Get returns the raw JSON stored under key.
func (s *Store) Get(key string) ([]byte, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	raw, ok := s.entries[key]
	if !ok {
		return nil, false
	}
	return append([]byte(nil), raw...), true
}

// Set stores value under key as JSON and saves the file.
func (s *Store) Set(key string, value any) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return err
	}
	s.mu.Lock()
	s.entries[key] = raw
	s.mu.Unlock()
	return s.Save()
}

// Remove deletes key and saves the file. Removing an absent key is not an error.
func (s *Store) Remove(key string) error {
	s.mu.Lock()
	_, ok := s.entries[key]
	delete(s.entries, key)
	s.mu.Unlock()
	if !ok {
		return nil
	}
	return s.Save()
}

// Keys lists stored keys in sorted order.
func (s *Store) Keys() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	keys := make([]string, 0, len(s.entries))
	for k := range s.entries {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Save writes the entries to the file.
func (s *Store) Save() error {
	logrus.Debug("Saving state file to: ", s.Path)
	// Ensure parent directory exists.
	if err := os.MkdirAll(filepath.Dir(s.Path), 0o700); err != nil {
		return err
	}
	s.mu.RLock()
	data, err := json.MarshalIndent(s.entries, "", "  ")
	s.mu.RUnlock()
	if err != nil {
		return err
	}

	return os.WriteFile(s.Path, data, 0o600)
}

// TryLoad decodes the value stored under key. Absent keys and values that do
// not decode into T both report false.
func TryLoad[T any](g Getter, key string) (T, bool) {
	var zero T
	raw, ok := g.Get(key)
	if !ok {
		return zero, false
	}
	var v T
	if err := json.Unmarshal(raw, &v); err != nil {
		logrus.WithField("key", key).Debugf("discarding malformed state: %v", err)
		return zero, false
	}
	return v, true
}

// ErrNoHome is returned when a ~ path cannot be resolved.
var ErrNoHome = errors.New("cannot resolve home directory")

// expandTilde expands the tilde in a path to the user's home directory.
func expandTilde(path string) (string, error) {
	if len(path) == 0 || path[0] != '~' {
		return path, nil
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return "", errors.Join(ErrNoHome, err)
	}

	return filepath.Join(home, path[1:]), nil
}

package config

import (
	"errors"
	"fmt"
	"sync"

	"github.com/quasilyte/gdata/v2"
	"gopkg.in/yaml.v3"
)

// ErrNoStore is returned by Store.Save when no persistent storage is available.
// The options are still kept in memory.
var ErrNoStore = errors.New("config: no persistent store")

const (
	optionsObject   = "options"
	optionsProperty = "current"
)

// Store remembers the last used options across runs. A Store without a
// gdata manager keeps them in memory only.
type Store struct {
	mu      sync.Mutex
	data    *gdata.Manager
	current File
}

// OpenStore opens the per-user data directory for appName. On failure it
// still returns a usable memory-only Store alongside the error.
func OpenStore(appName string) (*Store, error) {
	m, err := gdata.Open(gdata.Config{AppName: appName})
	if err != nil {
		return NewStore(nil), fmt.Errorf("open data dir: %w", err)
	}
	return NewStore(m), nil
}

// NewStore wraps m, which may be nil.
func NewStore(m *gdata.Manager) *Store {
	return &Store{data: m, current: DefaultFile()}
}

// Persistent reports whether saved options outlive the process.
func (s *Store) Persistent() bool {
	return s.data != nil
}

// Load returns the saved options, or the defaults if nothing was saved yet.
func (s *Store) Load() (File, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.data == nil || !s.data.ObjectPropExists(optionsObject, optionsProperty) {
		return s.current, nil
	}

	raw, err := s.data.LoadObjectProp(optionsObject, optionsProperty)
	if err != nil {
		return s.current, fmt.Errorf("load options: %w", err)
	}
	f := DefaultFile()
	if err := yaml.Unmarshal(raw, &f); err != nil {
		return s.current, fmt.Errorf("unmarshal options: %w", err)
	}
	s.current = f
	return f, nil
}

// Save records f. Without persistent storage it returns ErrNoStore after
// keeping f in memory.
func (s *Store) Save(f File) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.current = f
	if s.data == nil {
		return ErrNoStore
	}

	raw, err := yaml.Marshal(f)
	if err != nil {
		return fmt.Errorf("marshal options: %w", err)
	}
	if err := s.data.SaveObjectProp(optionsObject, optionsProperty, raw); err != nil {
		return fmt.Errorf("save options: %w", err)
	}
	return nil
}

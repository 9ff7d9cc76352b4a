package config

import (
	"errors"
	"sync"

	"github.com/charmbracelet/log"
)

// Live holds the current options and a version that grows on every change,
// so that many sessions can poll it cheaply.
type Live struct {
	mu      sync.RWMutex
	file    File
	version uint64
}

// NewLive starts at f with version zero.
func NewLive(f File) *Live {
	return &Live{file: f}
}

// Current returns the options and their version.
func (l *Live) Current() (File, uint64) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.file, l.version
}

// Set replaces the options and bumps the version.
func (l *Live) Set(f File) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.file = f
	l.version++
}

// Follow reloads path on every watcher event until the watcher closes.
// A file that fails to parse is logged and leaves the options unchanged.
func (l *Live) Follow(w *Watcher, logger *log.Logger) {
	for {
		select {
		case path, ok := <-w.Events:
			if !ok {
				return
			}
			f, err := Load(path)
			if err != nil {
				logger.Warn("options not reloaded", "path", path, "err", err)
				continue
			}
			l.Set(f)
			logger.Info("options reloaded", "path", path)
		case err, ok := <-w.Errors:
			if !ok {
				return
			}
			logger.Error("watch options", "err", err)
		}
	}
}

// OpenLive resolves the starting options and keeps them current. With a
// path, the file is loaded, watched for changes and remembered in store;
// without one, the options last saved in store are used. The returned stop
// function ends the watch.
func OpenLive(path string, store *Store, logger *log.Logger) (*Live, func(), error) {
	if path == "" {
		f, err := store.Load()
		if err != nil {
			logger.Warn("saved options unreadable, using defaults", "err", err)
		}
		return NewLive(f), func() {}, nil
	}

	f, err := Load(path)
	if err != nil {
		return nil, nil, err
	}
	if err := store.Save(f); err != nil && !errors.Is(err, ErrNoStore) {
		logger.Warn("options not saved", "err", err)
	}

	live := NewLive(f)
	w, err := NewWatcher(path)
	if err != nil {
		logger.Warn("options hot reload disabled", "err", err)
		return live, func() {}, nil
	}
	go live.Follow(w, logger)
	return live, func() { _ = w.Close() }, nil
}

// Package app is the host shell around the storage engine: it owns the
// single store behind an exclusive lock and exposes the save_text and
// load_text commands.
package app

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync"

	"github.com/japaniel/rubylens/pkg/db"
	"github.com/japaniel/rubylens/pkg/logging"
	"github.com/japaniel/rubylens/pkg/text"
)

// ErrNotInitialized is returned when a command runs before Setup.
var ErrNotInitialized = errors.New("database not initialized")

// State holds the process-wide store. Every command runs while holding mu,
// so exactly one operation touches the connection at a time.
type State struct {
	mu     sync.Mutex
	store  *db.Store
	logger *slog.Logger
}

// NewState returns an uninitialized state. A nil logger discards records.
func NewState(logger *slog.Logger) *State {
	if logger == nil {
		logger = logging.Discard()
	}
	return &State{logger: logger}
}

// Setup creates dataDir if needed and opens the store at dataDir/file.
// A failure leaves the state uninitialized and is fatal to the caller.
func (s *State) Setup(dataDir, file string) error {
	if err := os.MkdirAll(dataDir, 0o700); err != nil {
		return fmt.Errorf("create data directory: %w", err)
	}
	path := filepath.Join(dataDir, file)
	store, err := db.Open(path)
	if err != nil {
		s.logger.Error("open database failed", "path", path, "error", err)
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.store != nil {
		s.store.Close()
	}
	s.store = store
	s.logger.Debug("database ready", "path", path)
	return nil
}

// Attach installs an already opened store, closing the one it replaces.
func (s *State) Attach(store *db.Store) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.store != nil && s.store != store {
		s.store.Close()
	}
	s.store = store
}

// WithStore runs fn with exclusive access to the store.
func (s *State) WithStore(fn func(*db.Store) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.store == nil {
		return ErrNotInitialized
	}
	return fn(s.store)
}

// SaveText replaces the stored document with t.
func (s *State) SaveText(t text.Text) error {
	err := s.WithStore(func(st *db.Store) error { return st.Save(t) })
	if err != nil {
		s.logger.Error("save text failed", "error", err)
		return err
	}
	s.logger.Info("text saved", "segments", len(t.Segments), "raw_bytes", len(t.RawInput))
	return nil
}

// LoadText returns the stored document, or nil if none has been saved.
func (s *State) LoadText() (*text.Text, error) {
	var out *text.Text
	err := s.WithStore(func(st *db.Store) error {
		var err error
		out, err = st.Load()
		return err
	})
	if err != nil {
		s.logger.Error("load text failed", "error", err)
		return nil, err
	}
	if out == nil {
		s.logger.Debug("no saved text")
	} else {
		s.logger.Debug("text loaded", "segments", len(out.Segments))
	}
	return out, nil
}

// Close releases the store. The state is uninitialized afterwards.
func (s *State) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.store == nil {
		return nil
	}
	err := s.store.Close()
	s.store = nil
	return err
}

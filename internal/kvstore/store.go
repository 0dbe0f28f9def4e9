// Package kvstore provides the persistent key-value store backing every
// engine in tempo: tasks, pomodoro config/state/sessions, gamification
// state, and user preferences all live under string keys holding JSON
// values.
//
// The store deliberately mirrors the semantics of a browser localStorage
// layer: Get falls back to the caller's default on a missing or corrupt
// value instead of failing, Set is last-write-wins, and Subscribe gives
// an explicit change-notification hook so consumers can re-hydrate
// deterministically when a key changes underneath them.
package kvstore

import (
	"encoding/json"
	"os"
	"path/filepath"
	"regexp"
	"sync"

	"github.com/rs/zerolog"

	"github.com/focusfoundry/tempo/internal/errors"
	"github.com/focusfoundry/tempo/internal/flock"
)

// Directory and file permission constants.
const (
	dirPerm  = 0o750
	filePerm = 0o600
)

// validKeyRegex matches store keys: dotted lowercase segments such as
// "app.tasks" or "app.pomo.sessions". Keys double as file names, so the
// character set is restricted.
var validKeyRegex = regexp.MustCompile(`^[a-zA-Z0-9][a-zA-Z0-9._-]*$`)

// Store is the persistence abstraction consumed by the repositories and
// engines. Implementations must be safe for concurrent use.
type Store interface {
	// Get decodes the value stored under key into out and reports whether
	// a usable value was found. On a missing or corrupt value it leaves
	// out untouched and returns false, so callers keep their default.
	Get(key string, out any) bool

	// Set stores the value under key (last write wins) and notifies
	// subscribers of the key.
	Set(key string, v any) error

	// Subscribe registers fn to run after every change to key, including
	// external changes surfaced via NotifyExternal. The returned cancel
	// function removes the subscription.
	Subscribe(key string, fn func()) (cancel func())

	// NotifyExternal tells the store that key was changed by another
	// process (or tab) so key subscribers should re-hydrate.
	NotifyExternal(key string)
}

// FileStore implements Store with one JSON file per key under a data
// directory. Writes are atomic (write-then-rename with fsync) so a crash
// mid-write never leaves a torn value behind.
type FileStore struct {
	dir    string
	logger zerolog.Logger

	mu     sync.RWMutex
	subs   map[string]map[int]func()
	nextID int
}

// NewFileStore creates a FileStore rooted at dir, creating the directory
// if needed.
func NewFileStore(dir string, logger zerolog.Logger) (*FileStore, error) {
	if dir == "" {
		return nil, errors.Wrap(errors.ErrEmptyValue, "store directory")
	}
	if err := os.MkdirAll(dir, dirPerm); err != nil {
		return nil, errors.Wrap(err, "failed to create store directory")
	}
	return &FileStore{
		dir:    dir,
		logger: logger.With().Str("component", "kvstore").Logger(),
		subs:   make(map[string]map[int]func()),
	}, nil
}

// Dir returns the directory backing the store.
func (s *FileStore) Dir() string { return s.dir }

// Get decodes the value stored under key into out. A missing file,
// unreadable file, or undecodable payload all report false, leaving the
// caller's default in place; corruption is logged but never propagated.
func (s *FileStore) Get(key string, out any) bool {
	path, err := s.keyPath(key)
	if err != nil {
		s.logger.Warn().Err(err).Str("key", key).Msg("rejected store key")
		return false
	}

	data, err := os.ReadFile(path) //#nosec G304 -- path is validated and constructed from trusted base
	if err != nil {
		if !os.IsNotExist(err) {
			s.logger.Warn().Err(err).Str("key", key).Msg("failed to read stored value")
		}
		return false
	}

	if err := json.Unmarshal(data, out); err != nil {
		s.logger.Warn().Err(errors.Wrap(errors.ErrCorruptState, err.Error())).
			Str("key", key).Msg("falling back to default for corrupt value")
		return false
	}
	return true
}

// Set stores v under key atomically and notifies key subscribers.
func (s *FileStore) Set(key string, v any) error {
	path, err := s.keyPath(key)
	if err != nil {
		return err
	}

	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return errors.Wrapf(err, "failed to encode value for key %q", key)
	}

	// Hold the directory lock across the write so two tempo processes
	// cannot interleave a read-modify-write on the same key.
	unlock, err := s.lockDir()
	if err != nil {
		return errors.Wrapf(err, "failed to lock store for key %q", key)
	}
	err = atomicWrite(path, data)
	unlock()
	if err != nil {
		return errors.Wrapf(err, "failed to store key %q", key)
	}

	s.notify(key)
	return nil
}

// lockDir takes the store-wide advisory lock, blocking until any other
// process releases it. The returned function releases the lock.
func (s *FileStore) lockDir() (func(), error) {
	f, err := os.OpenFile(filepath.Join(s.dir, ".lock"), os.O_RDWR|os.O_CREATE, filePerm) //#nosec G304 -- path is constructed internally
	if err != nil {
		return nil, err
	}
	if err := flock.ExclusiveWait(f.Fd()); err != nil {
		_ = f.Close()
		return nil, err
	}
	return func() {
		_ = flock.Unlock(f.Fd())
		_ = f.Close()
	}, nil
}

// Subscribe registers fn to run after every change to key.
func (s *FileStore) Subscribe(key string, fn func()) func() {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := s.nextID
	s.nextID++
	if s.subs[key] == nil {
		s.subs[key] = make(map[int]func())
	}
	s.subs[key][id] = fn

	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		delete(s.subs[key], id)
	}
}

// NotifyExternal fires key subscribers without writing. Callers invoke
// this when another process changed the backing file (the cross-tab
// storage-event analog).
func (s *FileStore) NotifyExternal(key string) {
	s.notify(key)
}

func (s *FileStore) notify(key string) {
	s.mu.RLock()
	fns := make([]func(), 0, len(s.subs[key]))
	for _, fn := range s.subs[key] {
		fns = append(fns, fn)
	}
	s.mu.RUnlock()

	for _, fn := range fns {
		fn()
	}
}

func (s *FileStore) keyPath(key string) (string, error) {
	if key == "" {
		return "", errors.Wrap(errors.ErrEmptyValue, "store key")
	}
	if !validKeyRegex.MatchString(key) {
		return "", errors.Wrapf(errors.ErrEmptyValue, "invalid store key %q", key)
	}
	return filepath.Join(s.dir, key+".json"), nil
}

// atomicWrite writes data to a file atomically using write-then-rename.
func atomicWrite(path string, data []byte) error {
	tmpPath := path + ".tmp"
	f, err := os.OpenFile(tmpPath, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, filePerm) //#nosec G304 -- path is constructed internally
	if err != nil {
		return errors.Wrap(err, "failed to create temp file")
	}

	if _, err := f.Write(data); err != nil {
		_ = f.Close()
		_ = os.Remove(tmpPath)
		return errors.Wrap(err, "failed to write data")
	}

	// Data must reach disk before the rename publishes it.
	if err := f.Sync(); err != nil {
		_ = f.Close()
		_ = os.Remove(tmpPath)
		return errors.Wrap(err, "failed to sync file")
	}

	if err := f.Close(); err != nil {
		_ = os.Remove(tmpPath)
		return errors.Wrap(err, "failed to close file")
	}

	if err := os.Rename(tmpPath, path); err != nil {
		_ = os.Remove(tmpPath)
		return errors.Wrap(err, "failed to rename file")
	}

	return nil
}

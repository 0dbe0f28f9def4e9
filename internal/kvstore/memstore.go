package kvstore

import (
	"encoding/json"
	"sync"

	"github.com/focusfoundry/tempo/internal/errors"
)

// MemStore is an in-memory Store used by tests and ephemeral sessions.
// Values round-trip through JSON so type behavior matches FileStore.
type MemStore struct {
	mu     sync.RWMutex
	values map[string][]byte
	subs   map[string]map[int]func()
	nextID int
}

// NewMemStore creates an empty MemStore.
func NewMemStore() *MemStore {
	return &MemStore{
		values: make(map[string][]byte),
		subs:   make(map[string]map[int]func()),
	}
}

// Get decodes the value stored under key into out.
func (s *MemStore) Get(key string, out any) bool {
	s.mu.RLock()
	data, ok := s.values[key]
	s.mu.RUnlock()
	if !ok {
		return false
	}
	return json.Unmarshal(data, out) == nil
}

// Set stores v under key and notifies subscribers.
func (s *MemStore) Set(key string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return errors.Wrapf(err, "failed to encode value for key %q", key)
	}

	s.mu.Lock()
	s.values[key] = data
	s.mu.Unlock()

	s.notify(key)
	return nil
}

// SetRaw stores a raw payload without encoding; tests use it to simulate
// corrupt stored values.
func (s *MemStore) SetRaw(key string, data []byte) {
	s.mu.Lock()
	s.values[key] = data
	s.mu.Unlock()
	s.notify(key)
}

// Subscribe registers fn to run after every change to key.
func (s *MemStore) Subscribe(key string, fn func()) func() {
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

// NotifyExternal fires key subscribers without writing.
func (s *MemStore) NotifyExternal(key string) {
	s.notify(key)
}

func (s *MemStore) notify(key string) {
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

// Ensure implementations satisfy Store.
var (
	_ Store = (*FileStore)(nil)
	_ Store = (*MemStore)(nil)
)

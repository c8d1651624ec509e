package setup

import (
	"context"
	"errors"
	"sort"
	"sync"
)

// ErrNotFound is returned by a Store when no setup exists under the
// requested name.
var ErrNotFound = errors.New("setup not found")

// Store keeps named parameter sets. Implementations must be safe for
// concurrent use.
type Store interface {
	// Save stores p under name, replacing any existing setup.
	Save(ctx context.Context, name string, p Parameters) error

	// Load returns the setup stored under name, or ErrNotFound.
	Load(ctx context.Context, name string) (Parameters, error)

	// List returns all stored names in lexical order.
	List(ctx context.Context) ([]string, error)

	// Delete removes the setup stored under name, or returns
	// ErrNotFound.
	Delete(ctx context.Context, name string) error
}

// MemoryStore is an in-process Store for tests and single-process use.
type MemoryStore struct {
	mu     sync.RWMutex
	setups map[string]Parameters
}

// NewMemoryStore returns an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{setups: make(map[string]Parameters)}
}

// Save implements Store.
func (s *MemoryStore) Save(_ context.Context, name string, p Parameters) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.setups[name] = p
	return nil
}

// Load implements Store.
func (s *MemoryStore) Load(_ context.Context, name string) (Parameters, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	p, ok := s.setups[name]
	if !ok {
		return Parameters{}, ErrNotFound
	}
	return p, nil
}

// List implements Store.
func (s *MemoryStore) List(_ context.Context) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	names := make([]string, 0, len(s.setups))
	for name := range s.setups {
		names = append(names, name)
	}
	sort.Strings(names)
	return names, nil
}

// Delete implements Store.
func (s *MemoryStore) Delete(_ context.Context, name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.setups[name]; !ok {
		return ErrNotFound
	}
	delete(s.setups, name)
	return nil
}

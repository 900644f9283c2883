// Package containerstore provides the thread-safe, in-memory store that
// modules use to exchange containers during a run.
//
// # Concurrency model
//
// The store is the one shared structure that is both written and read from
// arbitrary module goroutines at arbitrary times, so every operation runs
// under a single mutex. Containers accumulate monotonically: they are
// appended in insertion order and never deleted for the lifetime of a run.
package containerstore

import (
	"sync"

	"github.com/vk/driftflow/internal/container"
)

// Store is a locked map from container-type key to the ordered list of
// containers stored under that key.
type Store struct {
	mu         sync.Mutex
	containers map[string][]container.Container
}

// New creates a new, empty container store.
func New() *Store {
	return &Store{
		containers: make(map[string][]container.Container),
	}
}

// Store appends a container to the list for its type, creating the list if
// this is the first container of that type.
func (s *Store) Store(c container.Container) {
	s.mu.Lock()
	defer s.mu.Unlock()

	key := c.ContainerType()
	s.containers[key] = append(s.containers[key], c)
}

// Get returns the containers stored under the given type key, in insertion
// order. An unused type yields an empty slice, never an error.
//
// The returned slice is a copy; future stores do not mutate it.
func (s *Store) Get(containerType string) []container.Container {
	s.mu.Lock()
	defer s.mu.Unlock()

	stored := s.containers[containerType]
	out := make([]container.Container, len(stored))
	copy(out, stored)
	return out
}

// Len returns the number of containers stored under the given type key.
func (s *Store) Len(containerType string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.containers[containerType])
}

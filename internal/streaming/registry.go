// Package streaming implements the synchronous pub/sub path for containers.
//
// Modules that want to react to containers as they are produced (rather
// than polling the store at Process time) register a callback for a
// container type. Streaming a container invokes every callback registered
// for its exact type, in registration order, on the caller's goroutine.
package streaming

import (
	"sync"

	"github.com/vk/driftflow/internal/container"
)

// Callback receives a streamed container. Callbacks run synchronously on
// the streaming module's goroutine; a panic inside a callback surfaces at
// that module's supervisory boundary.
type Callback func(c container.Container)

// Registry maps container-type keys to ordered callback lists.
type Registry struct {
	mu        sync.Mutex
	callbacks map[string][]Callback
}

// New creates a new, empty streaming registry.
func New() *Registry {
	return &Registry{
		callbacks: make(map[string][]Callback),
	}
}

// Register appends target to the callback list for containerType. Callbacks
// are not de-duplicated: registering the same target twice means it runs
// twice per streamed container.
func (r *Registry) Register(target Callback, containerType string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.callbacks[containerType] = append(r.callbacks[containerType], target)
}

// Stream invokes, in registration order, every callback registered for the
// container's exact type. Streaming a container of an unregistered type
// invokes nothing.
func (r *Registry) Stream(c container.Container) {
	r.mu.Lock()
	targets := make([]Callback, len(r.callbacks[c.ContainerType()]))
	copy(targets, r.callbacks[c.ContainerType()])
	r.mu.Unlock()

	for _, target := range targets {
		target(c)
	}
}

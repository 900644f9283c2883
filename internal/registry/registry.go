// Package registry maps module names to the factories that build them.
package registry

import (
	"fmt"
	"log/slog"
	"sort"

	"github.com/vk/driftflow/internal/module"
)

// Registrar is the interface built-in module packages implement to install
// their factories into a Registry.
type Registrar interface {
	Register(r *Registry)
}

// Registry holds the module factories available to recipes for a single
// application instance.
type Registry struct {
	factories map[string]module.Factory
}

// New creates and initializes a new Registry instance.
func New() *Registry {
	return &Registry{
		factories: make(map[string]module.Factory),
	}
}

// Register adds a factory under the given module name. Registering the same
// name twice is a programmer error and panics.
func (r *Registry) Register(name string, factory module.Factory) {
	if _, exists := r.factories[name]; exists {
		panic(fmt.Sprintf("module with name '%s' already registered", name))
	}
	slog.Debug("Registering module factory.", "name", name)
	r.factories[name] = factory
}

// Lookup returns the factory registered under name, or false if the name
// is unknown.
func (r *Registry) Lookup(name string) (module.Factory, bool) {
	factory, ok := r.factories[name]
	return factory, ok
}

// Names returns the sorted list of registered module names.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.factories))
	for name := range r.factories {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

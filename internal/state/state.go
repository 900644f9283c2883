// Package state maintains the shared run state: the module pool, the
// container store, the streaming registry, the error ledger, and the
// input/output batches that link consecutive stages.
//
// A single State instance is created per run and handed (as the narrow
// module.State interface) to every module at construction. All shared
// mutation goes through it; there are no ambient globals.
package state

import (
	"fmt"
	"io"
	"sync"

	"github.com/google/uuid"
	"github.com/vk/driftflow/internal/container"
	"github.com/vk/driftflow/internal/containerstore"
	"github.com/vk/driftflow/internal/ledger"
	"github.com/vk/driftflow/internal/module"
	"github.com/vk/driftflow/internal/recipe"
	"github.com/vk/driftflow/internal/registry"
	"github.com/vk/driftflow/internal/streaming"
)

// State is the run-wide shared state. It implements module.State.
type State struct {
	// RunID uniquely identifies this run in logs and reports.
	RunID uuid.UUID

	store   *containerstore.Store
	streams *streaming.Registry
	ledger  *ledger.Ledger
	out     io.Writer

	// batchMu guards the input/output batches; they are swapped by CleanUp
	// while module goroutines may still be appending.
	batchMu sync.Mutex
	input   []container.Container
	output  []container.Container

	// pool is populated once by LoadRecipe and read-only afterwards.
	pool map[string]module.Module
}

// New creates an empty run state. Errors are reported to out; exit is the
// process-termination function used on critical errors (nil means os.Exit).
func New(out io.Writer, exit func(code int)) *State {
	return &State{
		RunID:   uuid.New(),
		store:   containerstore.New(),
		streams: streaming.New(),
		ledger:  ledger.New(out, exit),
		out:     out,
		pool:    make(map[string]module.Module),
	}
}

// LoadRecipe populates the module pool: every preflight and main module
// declaration is resolved against the registry and instantiated bound to
// this state. An unknown module name fails the whole load before any
// execution starts.
func (s *State) LoadRecipe(r *recipe.Recipe, reg *registry.Registry) error {
	for _, block := range r.AllBlocks() {
		factory, ok := reg.Lookup(block.ModuleType)
		if !ok {
			return fmt.Errorf("recipe %s uses unknown module: %s", r.Name, block.ModuleType)
		}
		s.pool[block.Name] = factory(s)
	}
	return nil
}

// Module returns the pooled instance for the given instance name.
func (s *State) Module(name string) (module.Module, bool) {
	mod, ok := s.pool[name]
	return mod, ok
}

// StoreContainer appends a container to the shared store.
func (s *State) StoreContainer(c container.Container) {
	s.store.Store(c)
}

// GetContainers returns stored containers of the given type in insertion
// order.
func (s *State) GetContainers(containerType string) []container.Container {
	return s.store.Get(containerType)
}

// StreamContainer synchronously delivers a container to every callback
// registered for its type, in registration order.
func (s *State) StreamContainer(c container.Container) {
	s.streams.Stream(c)
}

// RegisterStreamingCallback subscribes target to streamed containers of the
// given type.
func (s *State) RegisterStreamingCallback(target func(c container.Container), containerType string) {
	s.streams.Register(target, containerType)
}

// AddError records an error against the current phase.
func (s *State) AddError(message string, critical bool) {
	s.ledger.Add(message, critical)
}

// Output is the run's user-facing output stream.
func (s *State) Output() io.Writer {
	return s.out
}

// AddToOutput appends a container to the current stage's output batch.
func (s *State) AddToOutput(c container.Container) {
	s.batchMu.Lock()
	defer s.batchMu.Unlock()
	s.output = append(s.output, c)
}

// Input returns the batch produced by the previous stage.
func (s *State) Input() []container.Container {
	s.batchMu.Lock()
	defer s.batchMu.Unlock()
	out := make([]container.Container, len(s.input))
	copy(out, s.input)
	return out
}

// CleanUp runs after a unit of work finishes: phase-local errors are
// promoted to the global ledger, and the current output batch becomes the
// next stage's input. Calling it again with no errors or output added in
// between changes nothing: an empty output batch does not clobber the
// input.
func (s *State) CleanUp() {
	s.ledger.Promote()

	s.batchMu.Lock()
	defer s.batchMu.Unlock()
	if len(s.output) > 0 {
		s.input = s.output
		s.output = nil
	}
}

// CheckErrors reports every record in the given scope and terminates the
// process if any of them is critical.
func (s *State) CheckErrors(scope ledger.Scope) {
	s.ledger.Check(scope)
}

// Ledger exposes the run's error ledger.
func (s *State) Ledger() *ledger.Ledger {
	return s.ledger
}

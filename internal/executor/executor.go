// Package executor drives the phases of a run: the sequential preflights,
// the concurrent setup phase, and the concurrent, dependency-ordered
// processing phase.
//
// # Concurrency model
//
// Each main-recipe module gets one goroutine per phase, launched eagerly
// and joined exhaustively before the phase is considered complete. After
// the join, the global error ledger is checked and any critical record
// aborts the run. Within the processing phase a module's goroutine blocks
// on the completion latch of every module it wants before invoking
// Process. There are no timeouts: a stuck module stalls its phase.
package executor

import (
	"context"
	"io"
	"sync"

	"github.com/vk/driftflow/internal/latch"
	"github.com/vk/driftflow/internal/ledger"
	"github.com/vk/driftflow/internal/recipe"
	"github.com/vk/driftflow/internal/schema"
	"github.com/vk/driftflow/internal/state"
)

// Executor runs one recipe against one run state.
type Executor struct {
	state    *state.State
	recipe   *recipe.Recipe
	resolver *recipe.Resolver
	out      io.Writer

	// signalMu guards signals: entries are created concurrently during the
	// setup phase and read concurrently during the processing phase.
	signalMu sync.Mutex
	signals  map[string]*latch.Latch
}

// New creates an executor. Completion notices are written to out.
func New(st *state.State, r *recipe.Recipe, resolver *recipe.Resolver, out io.Writer) *Executor {
	return &Executor{
		state:    st,
		recipe:   r,
		resolver: resolver,
		out:      out,
		signals:  make(map[string]*latch.Latch),
	}
}

// invokeModules is the generic phase driver: it launches one goroutine per
// main-recipe module invoking callback, joins them all, then checks the
// global ledger so that any critical record aborts the run at this
// checkpoint.
func (e *Executor) invokeModules(ctx context.Context, callback func(ctx context.Context, block *schema.ModuleBlock)) {
	var wg sync.WaitGroup
	for _, block := range e.recipe.Modules {
		wg.Add(1)
		go func(block *schema.ModuleBlock) {
			defer wg.Done()
			callback(ctx, block)
		}(block)
	}
	wg.Wait()

	e.state.CheckErrors(ledger.Global)
}

// createSignal installs the completion latch for a module. It is called
// unconditionally during the module's setup step, so by the time the
// processing phase starts every declared module has a latch to wait on.
func (e *Executor) createSignal(name string) {
	e.signalMu.Lock()
	defer e.signalMu.Unlock()
	if _, ok := e.signals[name]; !ok {
		e.signals[name] = latch.New()
	}
}

// signal returns the completion latch for a module.
func (e *Executor) signal(name string) *latch.Latch {
	e.signalMu.Lock()
	defer e.signalMu.Unlock()
	return e.signals[name]
}

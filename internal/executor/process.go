package executor

import (
	"context"
	"errors"
	"fmt"

	"github.com/vk/driftflow/internal/ctxlog"
	"github.com/vk/driftflow/internal/schema"
)

var errModuleNotPooled = errors.New("module instance missing from pool")

// RunModules runs the processing phase: every main-recipe module's Process
// is invoked concurrently, but a module's goroutine first blocks until
// every module it wants has completed and latched its signal. The phase
// joins all goroutines and aborts the run if any critical error was
// recorded.
//
// Completion latches are never reset, and the setup phase has already
// created one latch per declared module before this phase starts, so every
// wait here is on a latch that exists.
func (e *Executor) RunModules(ctx context.Context) {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("Processing phase starting.", "modules", len(e.recipe.Modules))
	e.invokeModules(ctx, e.processModule)
	logger.Debug("Processing phase finished.")
}

// processModule is the per-module processing callback. Process failures are
// recorded, never propagated: the latch is always set and clean-up always
// runs, so dependents observe completion whether the module succeeded or
// not.
func (e *Executor) processModule(ctx context.Context, block *schema.ModuleBlock) {
	logger := ctxlog.FromContext(ctx).With("module", block.Name)

	for _, want := range block.Wants {
		logger.Debug("Waiting for wanted module.", "wants", want)
		e.signal(want).Wait()
	}

	defer e.state.CleanUp()
	defer e.signal(block.Name).Set()

	mod, ok := e.state.Module(block.Name)
	if !ok {
		e.recordProcessError(block.Name, errModuleNotPooled)
		return
	}

	logger.Debug("Calling module Process.")
	if err := safeCall(func() error { return mod.Process(ctx) }); err != nil {
		logger.Error("Module Process failed.", "error", err)
		e.recordProcessError(block.Name, err)
	}

	fmt.Fprintf(e.out, "Module %s completed\n", block.Name)
	logger.Info("Module completed.")
}

package executor

import (
	"context"

	"github.com/vk/driftflow/internal/ctxlog"
	"github.com/vk/driftflow/internal/ledger"
	"github.com/vk/driftflow/internal/schema"
)

// RunPreflights runs the preflight modules strictly sequentially, in
// declared order, before the main phases begin. Unlike the main phases,
// each preflight is followed by an immediate error check: a critical error
// from one preflight aborts the run before the next preflight starts.
func (e *Executor) RunPreflights(ctx context.Context) {
	logger := ctxlog.FromContext(ctx)
	for _, block := range e.recipe.Preflights {
		logger.Debug("Running preflight.", "preflight", block.Name)
		e.runPreflight(ctx, block)
	}
}

// runPreflight executes one preflight's SetUp and Process. The local error
// check is deferred so it runs on every exit path, including a fault
// escaping either call.
func (e *Executor) runPreflight(ctx context.Context, block *schema.ModuleBlock) {
	logger := ctxlog.FromContext(ctx).With("preflight", block.Name)

	defer e.state.CheckErrors(ledger.Local)

	args, err := e.resolver.Resolve(block.Args)
	if err != nil {
		logger.Error("Argument resolution failed.", "error", err)
		e.recordSetupError(block.Name, err)
		return
	}

	mod, ok := e.state.Module(block.Name)
	if !ok {
		e.recordSetupError(block.Name, errModuleNotPooled)
		return
	}

	if err := safeCall(func() error { return mod.SetUp(ctx, args) }); err != nil {
		logger.Error("Preflight SetUp failed.", "error", err)
		e.recordSetupError(block.Name, err)
		return
	}
	if err := safeCall(func() error { return mod.Process(ctx) }); err != nil {
		logger.Error("Preflight Process failed.", "error", err)
		e.recordProcessError(block.Name, err)
	}
}

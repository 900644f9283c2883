package executor

import (
	"context"

	"github.com/vk/driftflow/internal/ctxlog"
	"github.com/vk/driftflow/internal/schema"
	"github.com/zclconf/go-cty/cty"
)

// SetupModules runs the setup phase: every main-recipe module's SetUp is
// invoked concurrently with its resolved arguments. The phase joins all
// goroutines and aborts the run if any critical error was recorded.
func (e *Executor) SetupModules(ctx context.Context) {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("Setup phase starting.", "modules", len(e.recipe.Modules))
	e.invokeModules(ctx, e.setupModule)
	logger.Debug("Setup phase finished.")
}

// setupModule is the per-module setup callback. Whatever happens inside
// SetUp, the module's completion latch is created and state clean-up runs:
// a module whose setup failed must still never block its dependents
// indefinitely.
func (e *Executor) setupModule(ctx context.Context, block *schema.ModuleBlock) {
	logger := ctxlog.FromContext(ctx).With("module", block.Name)

	defer e.state.CleanUp()
	defer e.createSignal(block.Name)

	args, err := e.resolver.Resolve(block.Args)
	if err != nil {
		logger.Error("Argument resolution failed.", "error", err)
		e.recordSetupError(block.Name, err)
		return
	}

	mod, ok := e.state.Module(block.Name)
	if !ok {
		// The pool is built from the same recipe, so this is unreachable
		// unless the pool was never loaded.
		e.recordSetupError(block.Name, errModuleNotPooled)
		return
	}

	logger.Debug("Calling module SetUp.", "args", argNames(args))
	if err := safeCall(func() error { return mod.SetUp(ctx, args) }); err != nil {
		logger.Error("Module SetUp failed.", "error", err)
		e.recordSetupError(block.Name, err)
		return
	}
	logger.Debug("Module SetUp succeeded.")
}

// argNames lists the resolved argument names for debug logging without
// dumping the values themselves.
func argNames(args map[string]cty.Value) []string {
	names := make([]string, 0, len(args))
	for name := range args {
		names = append(names, name)
	}
	return names
}

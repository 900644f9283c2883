package app

import (
	"context"
	"fmt"

	"github.com/vk/driftflow/internal/config"
	"github.com/vk/driftflow/internal/ctxlog"
	"github.com/vk/driftflow/internal/executor"
	"github.com/vk/driftflow/internal/ledger"
	"github.com/vk/driftflow/internal/recipe"
	"github.com/vk/driftflow/internal/state"
)

// Run executes the recipe named by the configuration: load static config
// and recipe, populate the module pool, then drive preflights, the setup
// phase, and the processing phase. Critical errors terminate the process
// through the ledger; Run returns an error only for load-time failures.
func (a *App) Run(ctx context.Context, appConfig *Config) error {
	ctx = ctxlog.WithLogger(ctx, a.logger)
	a.logger.Debug("App.Run method started.")

	staticCfg := config.Empty()
	if appConfig.ConfigPath != "" {
		var err error
		staticCfg, err = config.Load(appConfig.ConfigPath)
		if err != nil {
			return err
		}
		a.logger.Debug("Static config loaded.", "path", appConfig.ConfigPath)
	}

	rcp, err := recipe.Load(ctx, appConfig.RecipePath)
	if err != nil {
		return err
	}

	st := state.New(a.outW, a.exit)
	if err := st.LoadRecipe(rcp, a.registry); err != nil {
		return fmt.Errorf("failed to load recipe: %w", err)
	}
	a.logger = a.logger.With("run_id", st.RunID)
	ctx = ctxlog.WithLogger(ctx, a.logger)
	a.logger.Debug("Module pool populated.")

	resolver := recipe.NewResolver(appConfig.Params, staticCfg)
	exec := executor.New(st, rcp, resolver, a.outW)

	a.logger.Info("Running preflights...", "count", len(rcp.Preflights))
	exec.RunPreflights(ctx)

	a.logger.Info("Running module setup phase...", "count", len(rcp.Modules))
	exec.SetupModules(ctx)

	a.logger.Info("Running module processing phase...")
	exec.RunModules(ctx)

	st.CheckErrors(ledger.Global)
	fmt.Fprintf(a.outW, "Recipe %s executed successfully\n", rcp.Name)
	a.logger.Debug("App.Run method finished.")
	return nil
}

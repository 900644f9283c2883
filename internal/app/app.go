// Package app wires the application together: logger, module registry,
// static config, recipe, run state, and the executor.
package app

import (
	"io"
	"log/slog"

	"github.com/vk/driftflow/internal/registry"
)

// App encapsulates the application's dependencies, configuration, and
// lifecycle.
type App struct {
	outW     io.Writer
	logger   *slog.Logger
	registry *registry.Registry

	// exit is the process-termination function handed to the error ledger.
	// nil means os.Exit; tests inject a recorder.
	exit func(code int)
}

// NewApp is the constructor for the main application. It returns a fully
// initialized App instance, including its own isolated logger and registry.
// When no registrars are passed, the built-in core modules are registered.
func NewApp(outW io.Writer, appConfig *Config, registrars ...registry.Registrar) *App {
	logger := newLogger(appConfig.LogLevel, appConfig.LogFormat, outW)
	logger.Debug("Logger configured successfully.")

	reg := registry.New()
	if len(registrars) == 0 {
		registrars = coreModules
	}
	for _, registrar := range registrars {
		registrar.Register(reg)
	}
	logger.Debug("All built-in modules registered.", "count", len(registrars))

	return &App{
		outW:     outW,
		logger:   logger,
		registry: reg,
	}
}

// Registry returns the application's registry. This is primarily for
// testing.
func (a *App) Registry() *registry.Registry {
	return a.registry
}

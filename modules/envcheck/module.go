// Package envcheck provides a preflight module that verifies required
// environment variables are present before a run starts real work.
package envcheck

import (
	"context"
	"os"

	"github.com/vk/driftflow/internal/ctxlog"
	"github.com/vk/driftflow/internal/module"
	"github.com/vk/driftflow/internal/registry"
	"github.com/zclconf/go-cty/cty"
)

// Module implements the registry.Registrar interface for this package.
type Module struct{}

// Register registers the module factory with the registry.
func (m *Module) Register(r *registry.Registry) {
	r.Register("EnvCheck", func(run module.State) module.Module {
		return &envCheck{run: run}
	})
}

type envCheck struct {
	run      module.State
	required []string
}

// SetUp decodes the list of required environment variable names.
func (e *envCheck) SetUp(ctx context.Context, args map[string]cty.Value) error {
	required, err := module.StringListArg(args, "required")
	if err != nil {
		return err
	}
	e.required = required
	return nil
}

// Process fails the run when any required variable is missing.
func (e *envCheck) Process(ctx context.Context) error {
	logger := ctxlog.FromContext(ctx)
	for _, name := range e.required {
		if _, ok := os.LookupEnv(name); !ok {
			return module.Errorf("required environment variable %s is not set", name)
		}
		logger.Debug("Environment variable present.", "name", name)
	}
	return nil
}

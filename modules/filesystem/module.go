// Package filesystem provides a collector module that gathers local file
// paths into file artifact containers.
package filesystem

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/vk/driftflow/internal/container"
	"github.com/vk/driftflow/internal/ctxlog"
	"github.com/vk/driftflow/internal/module"
	"github.com/vk/driftflow/internal/registry"
	"github.com/zclconf/go-cty/cty"
)

// Module implements the registry.Registrar interface for this package.
type Module struct{}

// Register registers the module factory with the registry.
func (m *Module) Register(r *registry.Registry) {
	r.Register("FilesystemCollector", func(run module.State) module.Module {
		return &collector{run: run}
	})
}

type collector struct {
	run   module.State
	paths []string
}

// SetUp decodes the list of paths to collect.
func (c *collector) SetUp(ctx context.Context, args map[string]cty.Value) error {
	paths, err := module.StringListArg(args, "paths")
	if err != nil {
		return err
	}
	if len(paths) == 0 {
		return module.Errorf("no paths to collect")
	}
	c.paths = paths
	return nil
}

// Process stores a FileArtifact for every existing path. A missing path is
// recorded as a non-critical error: the rest of the collection still
// proceeds and the run continues.
func (c *collector) Process(ctx context.Context) error {
	logger := ctxlog.FromContext(ctx)
	for _, path := range c.paths {
		info, err := os.Stat(path)
		if err != nil {
			c.run.AddError(fmt.Sprintf("path %s could not be collected: %v", path, err), false)
			continue
		}

		if info.IsDir() {
			if err := c.collectDir(ctx, path); err != nil {
				return err
			}
			continue
		}

		logger.Debug("Collected file.", "path", path)
		c.run.StoreContainer(&container.FileArtifact{
			Path:        path,
			Description: "local file",
		})
	}
	return nil
}

// collectDir stores an artifact for every regular file under root.
func (c *collector) collectDir(ctx context.Context, root string) error {
	logger := ctxlog.FromContext(ctx)
	return filepath.WalkDir(root, func(path string, entry os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if entry.IsDir() {
			return nil
		}
		logger.Debug("Collected file.", "path", path)
		c.run.StoreContainer(&container.FileArtifact{
			Path:        path,
			Description: fmt.Sprintf("collected from %s", root),
		})
		return nil
	})
}

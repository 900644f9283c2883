// Package report provides a terminal module that renders the run's
// collected reports and artifacts. It subscribes to streamed Report
// containers during setup, so reports arrive whether they were stored or
// streamed.
package report

import (
	"context"
	"fmt"
	"strings"
	"sync"

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
	r.Register("LocalReporter", func(run module.State) module.Module {
		return &reporter{run: run}
	})
}

type reporter struct {
	run   module.State
	title string

	// mu guards streamed; callbacks run on the streaming module's
	// goroutine, concurrently with other streams.
	mu       sync.Mutex
	streamed []*container.Report
}

// SetUp decodes the report title and registers the streaming callback.
func (r *reporter) SetUp(ctx context.Context, args map[string]cty.Value) error {
	title, err := module.OptionalStringArg(args, "title", "run report")
	if err != nil {
		return err
	}
	r.title = title
	r.run.RegisterStreamingCallback(r.onReport, container.TypeReport)
	return nil
}

// onReport collects a streamed report.
func (r *reporter) onReport(c container.Container) {
	rep, ok := c.(*container.Report)
	if !ok {
		return
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.streamed = append(r.streamed, rep)
}

// Process renders everything gathered during the run.
func (r *reporter) Process(ctx context.Context) error {
	logger := ctxlog.FromContext(ctx)

	artifacts := r.run.GetContainers(container.TypeFileArtifact)
	r.mu.Lock()
	streamed := make([]*container.Report, len(r.streamed))
	copy(streamed, r.streamed)
	r.mu.Unlock()

	logger.Info("Rendering report.", "title", r.title, "artifacts", len(artifacts), "reports", len(streamed))

	out := r.run.Output()
	fmt.Fprintf(out, "== %s ==\n", r.title)
	for _, c := range artifacts {
		artifact, ok := c.(*container.FileArtifact)
		if !ok {
			continue
		}
		fmt.Fprintf(out, "  artifact: %s (%s)\n", artifact.Path, artifact.Description)
	}
	for _, rep := range streamed {
		fmt.Fprintf(out, "  report from %s:\n%s\n", rep.ModuleName, indent(rep.Text))
	}
	return nil
}

// indent prefixes every line of text for nested display.
func indent(text string) string {
	return "    " + strings.ReplaceAll(strings.TrimRight(text, "\n"), "\n", "\n    ")
}

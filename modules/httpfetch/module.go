// Package httpfetch provides a collector module that fetches a URL and
// publishes the response as a report container.
package httpfetch

import (
	"context"

	"github.com/vk/driftflow/internal/container"
	"github.com/vk/driftflow/internal/ctxlog"
	"github.com/vk/driftflow/internal/module"
	"github.com/vk/driftflow/internal/registry"
	"github.com/zclconf/go-cty/cty"
	"resty.dev/v3"
)

// Module implements the registry.Registrar interface for this package.
type Module struct{}

// Register registers the module factory with the registry.
func (m *Module) Register(r *registry.Registry) {
	r.Register("HTTPFetch", func(run module.State) module.Module {
		return &fetcher{run: run}
	})
}

type fetcher struct {
	run    module.State
	client *resty.Client
	url    string
	name   string
}

// SetUp decodes the target URL and prepares the HTTP client.
func (f *fetcher) SetUp(ctx context.Context, args map[string]cty.Value) error {
	url, err := module.StringArg(args, "url")
	if err != nil {
		return err
	}
	name, err := module.OptionalStringArg(args, "name", url)
	if err != nil {
		return err
	}

	f.url = url
	f.name = name
	f.client = resty.New()
	return nil
}

// Process fetches the URL. A transport failure or a non-2xx status is a
// recognized module failure; on success the response body is stored and
// streamed as a Report container.
func (f *fetcher) Process(ctx context.Context) error {
	logger := ctxlog.FromContext(ctx)
	defer f.client.Close()

	res, err := f.client.R().SetContext(ctx).Get(f.url)
	if err != nil {
		return module.Errorf("failed to fetch %s: %v", f.url, err)
	}
	if res.IsError() {
		return module.Errorf("failed to fetch %s: status %s", f.url, res.Status())
	}

	logger.Debug("Fetched URL.", "url", f.url, "status", res.StatusCode(), "bytes", len(res.String()))
	report := &container.Report{
		ModuleName: f.name,
		Text:       res.String(),
	}
	f.run.StoreContainer(report)
	f.run.StreamContainer(report)
	return nil
}

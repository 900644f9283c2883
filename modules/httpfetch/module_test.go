package httpfetch

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vk/driftflow/internal/container"
	"github.com/vk/driftflow/internal/module"
	"github.com/vk/driftflow/internal/registry"
	"github.com/vk/driftflow/internal/state"
	"github.com/zclconf/go-cty/cty"
)

func newFetcher(t *testing.T) (module.Module, *state.State) {
	t.Helper()
	reg := registry.New()
	(&Module{}).Register(reg)
	factory, ok := reg.Lookup("HTTPFetch")
	require.True(t, ok)
	st := state.New(&bytes.Buffer{}, func(int) {})
	return factory(st), st
}

func TestFetchStoresAndStreamsReport(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("threat feed body"))
	}))
	defer server.Close()

	mod, st := newFetcher(t)

	var mu sync.Mutex
	var streamed []container.Container
	st.RegisterStreamingCallback(func(c container.Container) {
		mu.Lock()
		defer mu.Unlock()
		streamed = append(streamed, c)
	}, container.TypeReport)

	args := map[string]cty.Value{
		"url":  cty.StringVal(server.URL),
		"name": cty.StringVal("feed"),
	}
	require.NoError(t, mod.SetUp(context.Background(), args))
	require.NoError(t, mod.Process(context.Background()))

	stored := st.GetContainers(container.TypeReport)
	require.Len(t, stored, 1)
	report := stored[0].(*container.Report)
	assert.Equal(t, "feed", report.ModuleName)
	assert.Equal(t, "threat feed body", report.Text)

	mu.Lock()
	defer mu.Unlock()
	require.Len(t, streamed, 1)
	assert.Same(t, stored[0], streamed[0])
}

func TestFetchServerErrorIsModuleError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer server.Close()

	mod, st := newFetcher(t)
	require.NoError(t, mod.SetUp(context.Background(), map[string]cty.Value{
		"url": cty.StringVal(server.URL),
	}))

	err := mod.Process(context.Background())
	var modErr *module.Error
	require.ErrorAs(t, err, &modErr)
	assert.Contains(t, modErr.Message, "500")
	assert.Empty(t, st.GetContainers(container.TypeReport))
}

func TestFetchUnreachableHostIsModuleError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := server.URL
	server.Close()

	mod, _ := newFetcher(t)
	require.NoError(t, mod.SetUp(context.Background(), map[string]cty.Value{
		"url": cty.StringVal(url),
	}))

	err := mod.Process(context.Background())
	var modErr *module.Error
	require.ErrorAs(t, err, &modErr)
}

func TestSetUpRequiresURL(t *testing.T) {
	mod, _ := newFetcher(t)
	err := mod.SetUp(context.Background(), map[string]cty.Value{})
	assert.ErrorContains(t, err, "missing required arg 'url'")
}

func TestNameDefaultsToURL(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("ok"))
	}))
	defer server.Close()

	mod, st := newFetcher(t)
	require.NoError(t, mod.SetUp(context.Background(), map[string]cty.Value{
		"url": cty.StringVal(server.URL),
	}))
	require.NoError(t, mod.Process(context.Background()))

	stored := st.GetContainers(container.TypeReport)
	require.Len(t, stored, 1)
	assert.Equal(t, server.URL, stored[0].(*container.Report).ModuleName)
}

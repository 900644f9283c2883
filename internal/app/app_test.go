package app

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// writeFile creates a file inside dir and returns its path.
func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestNewAppRegistersCoreModules(t *testing.T) {
	var out bytes.Buffer
	a := NewApp(&out, &Config{LogLevel: "error"})

	names := a.Registry().Names()
	assert.Equal(t, []string{"EnvCheck", "FilesystemCollector", "HTTPFetch", "LocalReporter"}, names)
}

func TestRunEndToEnd(t *testing.T) {
	dir := t.TempDir()
	evidence := filepath.Join(dir, "evidence")
	require.NoError(t, os.Mkdir(evidence, 0o755))
	writeFile(t, evidence, "one.txt", "hello")
	writeFile(t, evidence, "two.txt", "world")

	recipePath := writeFile(t, dir, "run.hcl", `
recipe "endtoend" {
  preflight "EnvCheck" "env" {
    args {
      required = ["PATH"]
    }
  }

  module "FilesystemCollector" "collect" {
    args {
      paths = [options.evidence]
    }
  }

  module "LocalReporter" "report" {
    wants = ["collect"]
    args {
      title = config.report_title
    }
  }
}
`)
	configPath := writeFile(t, dir, "static.yaml", "report_title: integration run\n")

	var out bytes.Buffer
	appConfig := &Config{
		RecipePath: recipePath,
		ConfigPath: configPath,
		Params:     map[string]string{"evidence": evidence},
		LogLevel:   "error",
	}
	a := NewApp(&out, appConfig)
	var codes []int
	a.exit = func(code int) { codes = append(codes, code) }

	err := a.Run(context.Background(), appConfig)
	require.NoError(t, err)

	assert.Empty(t, codes, "clean run never calls exit")
	text := out.String()
	assert.Contains(t, text, "Module collect completed")
	assert.Contains(t, text, "Module report completed")
	assert.Contains(t, text, "Recipe endtoend executed successfully")
}

func TestRunUnknownModuleFailsBeforeExecution(t *testing.T) {
	dir := t.TempDir()
	recipePath := writeFile(t, dir, "run.hcl", `
recipe "unknown" {
  module "DoesNotExist" "x" {}
}
`)

	var out bytes.Buffer
	appConfig := &Config{RecipePath: recipePath, LogLevel: "error"}
	a := NewApp(&out, appConfig)

	err := a.Run(context.Background(), appConfig)
	require.ErrorContains(t, err, "unknown module: DoesNotExist")
	assert.NotContains(t, out.String(), "completed", "no module may run after a load failure")
}

func TestRunInvalidRecipeFails(t *testing.T) {
	dir := t.TempDir()
	recipePath := writeFile(t, dir, "run.hcl", `
recipe "ghost" {
  module "LocalReporter" "report" {
    wants = ["ghost"]
  }
}
`)

	var out bytes.Buffer
	appConfig := &Config{RecipePath: recipePath, LogLevel: "error"}
	a := NewApp(&out, appConfig)

	err := a.Run(context.Background(), appConfig)
	assert.ErrorContains(t, err, "wants undeclared module 'ghost'")
}

func TestRunMissingConfigFileFails(t *testing.T) {
	dir := t.TempDir()
	recipePath := writeFile(t, dir, "run.hcl", `
recipe "cfg" {
  module "LocalReporter" "report" {}
}
`)

	var out bytes.Buffer
	appConfig := &Config{
		RecipePath: recipePath,
		ConfigPath: filepath.Join(dir, "missing.yaml"),
		LogLevel:   "error",
	}
	a := NewApp(&out, appConfig)

	err := a.Run(context.Background(), appConfig)
	assert.ErrorContains(t, err, "failed to read config file")
}

// Package recipe loads and validates HCL recipe files: the ordered module
// and preflight declarations that drive a run.
package recipe

import (
	"context"
	"fmt"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/vk/driftflow/internal/ctxlog"
	"github.com/vk/driftflow/internal/schema"
)

// Recipe is the loaded, validated declaration of a run.
type Recipe struct {
	Name        string
	Description string
	Preflights  []*schema.ModuleBlock
	Modules     []*schema.ModuleBlock
}

// Load parses and validates the recipe file at path.
func Load(ctx context.Context, path string) (*Recipe, error) {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("Loading recipe file...", "path", path)

	parser := hclparse.NewParser()
	hclFile, diags := parser.ParseHCLFile(path)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse recipe file %s: %w", path, diags)
	}

	recipe, err := decode(hclFile, path)
	if err != nil {
		return nil, err
	}

	logger.Info("Recipe loaded successfully.",
		"recipe", recipe.Name,
		"modules", len(recipe.Modules),
		"preflights", len(recipe.Preflights))
	return recipe, nil
}

// Parse parses and validates recipe source from memory. The filename is
// used for diagnostic positions only.
func Parse(filename string, src []byte) (*Recipe, error) {
	parser := hclparse.NewParser()
	hclFile, diags := parser.ParseHCL(src, filename)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse recipe %s: %w", filename, diags)
	}
	return decode(hclFile, filename)
}

// decode translates a parsed HCL file into a validated Recipe.
func decode(hclFile *hcl.File, name string) (*Recipe, error) {
	var cfg schema.RecipeConfig
	if diags := gohcl.DecodeBody(hclFile.Body, nil, &cfg); diags.HasErrors() {
		return nil, fmt.Errorf("failed to decode recipe %s: %w", name, diags)
	}
	if cfg.Recipe == nil {
		return nil, fmt.Errorf("recipe %s contains no recipe block", name)
	}

	recipe := &Recipe{
		Name:        cfg.Recipe.Name,
		Description: cfg.Recipe.Description,
		Preflights:  cfg.Recipe.Preflights,
		Modules:     cfg.Recipe.Modules,
	}
	if err := recipe.Validate(); err != nil {
		return nil, err
	}
	return recipe, nil
}

// AllBlocks returns the preflight blocks followed by the main module
// blocks, in declared order.
func (r *Recipe) AllBlocks() []*schema.ModuleBlock {
	out := make([]*schema.ModuleBlock, 0, len(r.Preflights)+len(r.Modules))
	out = append(out, r.Preflights...)
	out = append(out, r.Modules...)
	return out
}

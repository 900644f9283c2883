package recipe

import (
	"fmt"
	"sort"

	"github.com/hashicorp/hcl/v2"
	"github.com/vk/driftflow/internal/config"
	"github.com/vk/driftflow/internal/schema"
	"github.com/zclconf/go-cty/cty"
)

// Resolver evaluates a module's declared args against command-line options
// and static configuration, producing the final argument set passed to
// SetUp. Recipes reference overrides as `options.<name>` and static values
// as `config.<name>`.
type Resolver struct {
	evalCtx *hcl.EvalContext
}

// NewResolver builds a resolver for one run. The options map holds
// command-line `--param key=value` overrides.
func NewResolver(options map[string]string, cfg *config.Config) *Resolver {
	if cfg == nil {
		cfg = config.Empty()
	}
	return &Resolver{
		evalCtx: &hcl.EvalContext{
			Variables: map[string]cty.Value{
				"options": stringMapValue(options),
				"config":  stringMapValue(cfg.Values()),
			},
		},
	}
}

// Resolve evaluates every attribute of the args block. A nil args block
// resolves to an empty argument set.
func (r *Resolver) Resolve(args *schema.ModuleArgs) (map[string]cty.Value, error) {
	resolved := make(map[string]cty.Value)
	if args == nil {
		return resolved, nil
	}

	attrs, diags := args.Body.JustAttributes()
	if diags.HasErrors() {
		return nil, fmt.Errorf("invalid args block: %w", diags)
	}

	// Sort for deterministic diagnostics; evaluation itself is order
	// independent.
	names := make([]string, 0, len(attrs))
	for name := range attrs {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		value, diags := attrs[name].Expr.Value(r.evalCtx)
		if diags.HasErrors() {
			return nil, fmt.Errorf("failed to resolve arg '%s': %w", name, diags)
		}
		resolved[name] = value
	}
	return resolved, nil
}

// stringMapValue converts a string map into a cty object value so recipe
// expressions can index it by attribute name.
func stringMapValue(values map[string]string) cty.Value {
	if len(values) == 0 {
		return cty.EmptyObjectVal
	}
	attrs := make(map[string]cty.Value, len(values))
	for key, value := range values {
		attrs[key] = cty.StringVal(value)
	}
	return cty.ObjectVal(attrs)
}

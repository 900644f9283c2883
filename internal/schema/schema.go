package schema

import (
	"github.com/hashicorp/hcl/v2"
)

// ModuleArgs represents the content of the 'args' block within a module or
// preflight declaration. The attributes are kept as raw HCL so they can be
// resolved against command-line options and static config at run time.
type ModuleArgs struct {
	Body hcl.Body `hcl:",remain"`
}

// ModuleBlock represents a `module` (or `preflight`) block from a recipe
// file. ModuleType must resolve to a registered factory; Name is the unique
// instance name that `wants` lists refer to.
type ModuleBlock struct {
	ModuleType string      `hcl:"module_type,label"`
	Name       string      `hcl:"instance_name,label"`
	Wants      []string    `hcl:"wants,optional"`
	Args       *ModuleArgs `hcl:"args,block"`
}

// RecipeBlock represents the top-level `recipe` block of a recipe file,
// containing the ordered preflight and module declarations.
type RecipeBlock struct {
	Name        string         `hcl:"name,label"`
	Description string         `hcl:"description,optional"`
	Preflights  []*ModuleBlock `hcl:"preflight,block"`
	Modules     []*ModuleBlock `hcl:"module,block"`
}

// RecipeConfig represents the structure of a complete recipe file.
type RecipeConfig struct {
	Recipe *RecipeBlock `hcl:"recipe,block"`
	Body   hcl.Body     `hcl:",remain"`
}

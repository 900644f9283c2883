package recipe

import (
	"fmt"

	"github.com/vk/driftflow/internal/schema"
)

// Validate checks the structural integrity of the recipe before any module
// is instantiated: instance names must be unique across preflights and main
// modules, wants may only reference declared main modules, and the wants
// graph must be acyclic. Failing fast here replaces a silent last-write-wins
// pool overwrite and an unbounded wait on a dependency that will never
// signal.
func (r *Recipe) Validate() error {
	seen := make(map[string]struct{})
	for _, block := range r.AllBlocks() {
		if block.Name == "" {
			return fmt.Errorf("recipe %s: module of type '%s' has an empty instance name", r.Name, block.ModuleType)
		}
		if _, ok := seen[block.Name]; ok {
			return fmt.Errorf("recipe %s: duplicate instance name '%s'", r.Name, block.Name)
		}
		seen[block.Name] = struct{}{}
	}

	for _, preflight := range r.Preflights {
		if len(preflight.Wants) > 0 {
			return fmt.Errorf("recipe %s: preflight '%s' declares wants; preflights run sequentially and may not", r.Name, preflight.Name)
		}
	}

	declared := make(map[string]*schema.ModuleBlock, len(r.Modules))
	for _, mod := range r.Modules {
		declared[mod.Name] = mod
	}
	for _, mod := range r.Modules {
		for _, want := range mod.Wants {
			if want == mod.Name {
				return fmt.Errorf("recipe %s: module '%s' wants itself", r.Name, mod.Name)
			}
			if _, ok := declared[want]; !ok {
				return fmt.Errorf("recipe %s: module '%s' wants undeclared module '%s'", r.Name, mod.Name, want)
			}
		}
	}

	return r.detectCycles(declared)
}

// detectCycles runs a depth-first search over the wants graph with the
// classic three node sets: permanent (fully visited, known safe), temporary
// (on the current recursion stack), and unvisited.
func (r *Recipe) detectCycles(declared map[string]*schema.ModuleBlock) error {
	permanent := make(map[string]bool)
	temporary := make(map[string]bool)

	var visit func(mod *schema.ModuleBlock) error
	visit = func(mod *schema.ModuleBlock) error {
		if permanent[mod.Name] {
			return nil
		}
		if temporary[mod.Name] {
			return fmt.Errorf("recipe %s: dependency cycle involving module '%s'", r.Name, mod.Name)
		}

		temporary[mod.Name] = true
		for _, want := range mod.Wants {
			if err := visit(declared[want]); err != nil {
				return err
			}
		}
		delete(temporary, mod.Name)
		permanent[mod.Name] = true

		return nil
	}

	for _, mod := range r.Modules {
		if !permanent[mod.Name] {
			if err := visit(mod); err != nil {
				return err
			}
		}
	}
	return nil
}

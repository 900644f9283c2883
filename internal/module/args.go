package module

import (
	"fmt"

	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/convert"
	"github.com/zclconf/go-cty/cty/gocty"
)

// StringArg returns the named argument converted to a string. The argument
// must be present.
func StringArg(args map[string]cty.Value, name string) (string, error) {
	val, ok := args[name]
	if !ok {
		return "", fmt.Errorf("missing required arg '%s'", name)
	}
	converted, err := convert.Convert(val, cty.String)
	if err != nil {
		return "", fmt.Errorf("arg '%s': %w", name, err)
	}
	if converted.IsNull() {
		return "", fmt.Errorf("arg '%s' is null", name)
	}
	return converted.AsString(), nil
}

// OptionalStringArg returns the named argument converted to a string, or
// the fallback when the argument is absent or null.
func OptionalStringArg(args map[string]cty.Value, name, fallback string) (string, error) {
	val, ok := args[name]
	if !ok || val.IsNull() {
		return fallback, nil
	}
	converted, err := convert.Convert(val, cty.String)
	if err != nil {
		return "", fmt.Errorf("arg '%s': %w", name, err)
	}
	return converted.AsString(), nil
}

// StringListArg returns the named argument converted to a list of strings.
// The argument must be present. HCL literals like ["a", "b"] arrive as
// tuples, so the value is converted before decoding.
func StringListArg(args map[string]cty.Value, name string) ([]string, error) {
	val, ok := args[name]
	if !ok {
		return nil, fmt.Errorf("missing required arg '%s'", name)
	}
	converted, err := convert.Convert(val, cty.List(cty.String))
	if err != nil {
		return nil, fmt.Errorf("arg '%s': %w", name, err)
	}
	if converted.IsNull() {
		return nil, nil
	}
	var out []string
	if err := gocty.FromCtyValue(converted, &out); err != nil {
		return nil, fmt.Errorf("arg '%s': %w", name, err)
	}
	return out, nil
}

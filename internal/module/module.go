// Package module defines the contract between the orchestration engine and
// the opaque units of work it runs.
package module

import (
	"context"
	"fmt"
	"io"

	"github.com/vk/driftflow/internal/container"
	"github.com/zclconf/go-cty/cty"
)

// State is the narrow view of the run state handed to every module at
// construction. All data exchange and error reporting goes through it;
// modules never touch the engine's internals directly.
type State interface {
	// StoreContainer appends a container to the run's shared store.
	StoreContainer(c container.Container)
	// GetContainers returns the stored containers of the given type, in
	// insertion order.
	GetContainers(containerType string) []container.Container
	// StreamContainer synchronously delivers a container to every callback
	// registered for its type. Streamed containers are not stored.
	StreamContainer(c container.Container)
	// RegisterStreamingCallback subscribes target to containers of the
	// given type streamed by any module.
	RegisterStreamingCallback(target func(c container.Container), containerType string)
	// AddError records an error against the current phase. Critical errors
	// abort the run at the next checkpoint.
	AddError(message string, critical bool)
	// Output is the run's user-facing output stream.
	Output() io.Writer
}

// Module is a named unit of work declared in a recipe. SetUp receives the
// module's resolved arguments before the processing phase begins; Process
// performs the actual work once every wanted module has completed.
//
// Both methods report recoverable conditions through State.AddError and
// return an error only for failures that make the module's own results
// unusable. A returned error is always treated as critical.
type Module interface {
	SetUp(ctx context.Context, args map[string]cty.Value) error
	Process(ctx context.Context) error
}

// Factory constructs a module instance bound to a run.
type Factory func(run State) Module

// Error is a recognized, module-signaled failure. The engine records its
// message verbatim as a critical error; any other failure kind is recorded
// with additional diagnostic detail.
type Error struct {
	Message string
}

// Error implements the error interface.
func (e *Error) Error() string { return e.Message }

// Errorf builds a module Error from a format string.
func Errorf(format string, args ...any) *Error {
	return &Error{Message: fmt.Sprintf(format, args...)}
}

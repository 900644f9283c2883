package executor

import (
	"errors"
	"fmt"
	"runtime/debug"

	"github.com/vk/driftflow/internal/module"
)

// safeCall invokes fn and converts a panic into an ordinary error carrying
// the panic value and the full stack trace. One module's fault must never
// unwind the executor goroutine that supervises it.
func safeCall(fn func() error) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("panic: %v\nfull stack trace:\n%s", r, debug.Stack())
		}
	}()
	return fn()
}

// recordSetupError converts a SetUp failure into a critical ledger record.
func (e *Executor) recordSetupError(name string, err error) {
	e.state.AddError(fmt.Sprintf(
		"an unknown error occurred in module %s: %v", name, err), true)
}

// recordProcessError converts a Process failure into a critical ledger
// record. A recognized module.Error is recorded with its message verbatim;
// anything else is recorded as unknown.
func (e *Executor) recordProcessError(name string, err error) {
	var modErr *module.Error
	if errors.As(err, &modErr) {
		e.state.AddError(modErr.Message, true)
		return
	}
	e.state.AddError(fmt.Sprintf(
		"an unknown error occurred in module %s: %v", name, err), true)
}

// Package ledger implements the two-tier error ledger that decides whether
// a run aborts.
//
// Errors recorded by modules land in a phase-local list first. Promote
// moves them into the global ledger, preserving order, so that they can be
// reported at a well-defined checkpoint. Check prints every record in the
// requested scope and terminates the process on the first critical one.
package ledger

import (
	"fmt"
	"io"
	"os"
	"sync"
)

// Scope selects which tier of the ledger an operation applies to.
type Scope int

const (
	// Local is the phase-local error list.
	Local Scope = iota
	// Global is the run-wide ledger that local errors are promoted into.
	Global
)

// Record is a single error entry. A critical record aborts the run when a
// check observes it; a non-critical record is reported and execution
// continues.
type Record struct {
	Message  string
	Critical bool
}

// Ledger accumulates error records for a run. All methods are safe for
// concurrent use.
type Ledger struct {
	mu     sync.Mutex
	local  []Record
	global []Record
	out    io.Writer
	exit   func(code int)
}

// New creates a ledger that reports to out. The exit function is invoked
// with status 1 when a check observes a critical record; passing nil uses
// os.Exit.
func New(out io.Writer, exit func(code int)) *Ledger {
	if exit == nil {
		exit = os.Exit
	}
	return &Ledger{out: out, exit: exit}
}

// Add appends a record to the phase-local list.
func (l *Ledger) Add(message string, critical bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.local = append(l.local, Record{Message: message, Critical: critical})
}

// Promote moves all phase-local records into the global ledger, preserving
// their order, and clears the local list. Promoting an empty local list is
// a no-op.
func (l *Ledger) Promote() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.global = append(l.global, l.local...)
	l.local = nil
}

// Check prints every record in the given scope, prefixing critical ones.
// On the first critical record it prints an abort notice and terminates
// the process with exit status 1; records after it are not printed.
//
// A critical record, once observed by a check, always terminates. It is
// never downgraded or suppressed.
func (l *Ledger) Check(scope Scope) {
	l.mu.Lock()
	defer l.mu.Unlock()

	records := l.local
	if scope == Global {
		records = l.global
	}
	if len(records) == 0 {
		return
	}

	fmt.Fprintln(l.out, "driftflow encountered one or more errors:")
	for _, record := range records {
		prefix := ""
		if record.Critical {
			prefix = "CRITICAL: "
		}
		fmt.Fprintf(l.out, "%s%s\n", prefix, record.Message)
		if record.Critical {
			fmt.Fprintln(l.out, "Critical error found. Aborting.")
			l.exit(1)
			return
		}
	}
}

// Records returns a copy of the records in the given scope.
func (l *Ledger) Records(scope Scope) []Record {
	l.mu.Lock()
	defer l.mu.Unlock()

	records := l.local
	if scope == Global {
		records = l.global
	}
	out := make([]Record, len(records))
	copy(out, records)
	return out
}

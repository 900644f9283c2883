// Package latch provides the one-shot completion signal used to gate
// dependency-ordered module execution.
package latch

import "sync"

// Latch is a broadcast-once completion signal: it starts unset, is set at
// most once, and is never reset. Any number of goroutines may wait on it;
// all of them unblock once it is set, as do all future waiters.
type Latch struct {
	once sync.Once
	ch   chan struct{}
}

// New returns a new, unset latch.
func New() *Latch {
	return &Latch{ch: make(chan struct{})}
}

// Set latches the signal. Calling Set more than once is safe and has no
// further effect.
func (l *Latch) Set() {
	l.once.Do(func() { close(l.ch) })
}

// Wait blocks until the latch is set. It returns immediately if the latch
// is already set.
func (l *Latch) Wait() {
	<-l.ch
}

// Done returns a channel that is closed when the latch is set.
func (l *Latch) Done() <-chan struct{} {
	return l.ch
}

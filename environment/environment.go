// Package environment defines the host contract that the promise core
// consumes. The core never schedules work itself; every suspension point
// crosses through an Environment so that callbacks never run synchronously
// with their registration.
package environment

import "time"

// Environment is the pluggable host the promise core runs on. It is the
// only external surface the core depends on: a microtask queue and a
// macrotask timer.
type Environment interface {
	// Enqueue schedules task to run after the current call stack unwinds,
	// before any timer fires. Enqueues made during the same turn run in
	// FIFO order. task runs exactly once.
	Enqueue(task func())

	// SetTimer runs fn after at least d. The returned Timer can cancel it
	// before it fires; cancellation after firing is a no-op.
	SetTimer(fn func(), d time.Duration) Timer
}

// Timer is a handle to a pending host timer.
type Timer interface {
	// Cancel best-effort prevents the timer's function from running. It is
	// always safe to call, including after the timer has already fired.
	Cancel()
}

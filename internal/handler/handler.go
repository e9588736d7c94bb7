// Package handler implements the six-variant handler state machine that
// underlies every promise: pending, fulfilled, rejected, following,
// progress and empty. A Promise (in the outer promise package) is a thin
// wrapper around one Handler value; all transition rules live here.
package handler

import (
	"fmt"

	"github.com/deferredgo/promise/environment"
)

// State is the externally observable state of a promise snapshot.
type State string

const (
	StatePending   State = "pending"
	StateFulfilled State = "fulfilled"
	StateRejected  State = "rejected"
)

// Snapshot is the value returned by Inspect: exactly one of the three
// shapes described by the host contract.
type Snapshot struct {
	State  State
	Value  interface{}
	Reason error
}

// Resolve, Reject and Notify are the three callbacks a constructor
// resolver, or a registered consumer, is handed.
type (
	Resolve func(value interface{})
	Reject  func(reason error)
	Notify  func(update interface{})
)

// OnFulfilled, OnRejected and OnProgress are the three optional
// transformers passed to When/Then. Any of them may be nil, in which case
// the corresponding value/reason/update passes through unchanged.
type (
	OnFulfilled func(value interface{}) (interface{}, error)
	OnRejected  func(reason error) (interface{}, error)
	OnProgress  func(update interface{}) interface{}
)

// Consumer bundles one registration's continuations and transformers; it
// is what a Pending handler queues and what a terminal handler schedules
// against.
type Consumer struct {
	Resolve     Resolve
	Reject      Reject
	Notify      Notify
	OnFulfilled OnFulfilled
	OnRejected  OnRejected
	OnProgress  OnProgress
}

// Handler is the capability set every variant implements; variants that
// can't perform an operation treat it as a no-op, per the table in the
// handler state machine design.
type Handler interface {
	// When registers c against this handler. On a terminal handler it
	// schedules c's continuation via env.Enqueue; on Pending it queues c
	// for replay at join time; on Following it delegates to the traversed
	// target.
	When(env environment.Environment, c Consumer)

	// NotifyProgress fans an in-flight progress update out to anyone
	// waiting via When. It is a no-op on every terminal handler.
	NotifyProgress(env environment.Environment, update interface{})

	// Join is the transition primitive: on Pending it drains the queued
	// consumers against incoming.Traverse() and returns incoming, which
	// the caller installs as the new handler. On every other variant it
	// returns the receiver unchanged.
	Join(env environment.Environment, incoming Handler) Handler

	// Traverse walks through Following indirections to the terminal (or
	// still-Pending) handler at the end of the chain.
	Traverse() Handler

	// Inspect returns the state snapshot. Following delegates to its
	// traversed target.
	Inspect() Snapshot
}

// panicToError normalizes a recovered panic value into an error, used by
// every handler that must convert a misbehaving callback into a rejection
// instead of letting a panic escape.
func panicToError(r interface{}) error {
	if err, ok := r.(error); ok {
		return err
	}

	return &panicError{value: r}
}

type panicError struct {
	value interface{}
}

func (e *panicError) Error() string {
	return "promise: callback panicked: " + formatPanic(e.value)
}

func formatPanic(v interface{}) string {
	return fmt.Sprintf("%v", v)
}

package handler

import "github.com/deferredgo/promise/environment"

// Empty is the handler behind Factory.Empty(): observably pending
// forever, with no resolver able to ever settle it. Unlike Pending, it
// does not even retain registered consumers, since they can never fire.
type Empty struct{}

// NewEmpty returns the shared-shape forever-pending handler.
func NewEmpty() *Empty {
	return &Empty{}
}

func (e *Empty) When(environment.Environment, Consumer) {}

func (e *Empty) NotifyProgress(environment.Environment, interface{}) {}

func (e *Empty) Join(_ environment.Environment, _ Handler) Handler {
	return e
}

func (e *Empty) Traverse() Handler {
	return e
}

func (e *Empty) Inspect() Snapshot {
	return Snapshot{State: StatePending}
}

package promise

import (
	"fmt"
	"time"

	"github.com/pkg/errors"
)

// TypeError is the reason a promise rejects with when its own resolver
// attempts to resolve it with itself.
type TypeError struct {
	message string
}

func (e *TypeError) Error() string {
	return e.message
}

func newSelfResolutionError() error {
	return errors.WithStack(&TypeError{message: "promise: a promise cannot be resolved with itself"})
}

// TimeoutError is the reason Timeout rejects with when its timer fires
// before the upstream promise settles. Its message names the bound, so
// callers can match on it without a type assertion if they prefer.
type TimeoutError struct {
	After time.Duration
}

func (e *TimeoutError) Error() string {
	return fmt.Sprintf("promise: timed out after %s", e.After)
}

func newTimeoutError(d time.Duration) error {
	return errors.WithStack(&TimeoutError{After: d})
}

// AggregateError is the reason Any rejects with when every input rejects,
// and the reason Some rejects with when too many inputs reject for n
// successes to still be reachable. Errors preserves rejection order.
type AggregateError struct {
	Errors []error
}

func (e *AggregateError) Error() string {
	return fmt.Sprintf("promise: %d inputs rejected", len(e.Errors))
}

// filterRejection is the reason Filter rejects with when the predicate
// returns false for a fulfilled value.
type filterRejection struct {
	value interface{}
}

func (e *filterRejection) Error() string {
	return fmt.Sprintf("promise: value filtered out: %v", e.value)
}

func panicToError(r interface{}) error {
	if err, ok := r.(error); ok {
		return err
	}

	return errors.Errorf("promise: panic: %v", r)
}

package handler

import "github.com/deferredgo/promise/environment"

// Fulfilled holds a terminal success value.
type Fulfilled struct {
	Value interface{}
}

// NewFulfilled returns a terminal Fulfilled handler wrapping v, with no
// discrimination of v's shape: callers that want assimilation of
// thenables/promises must go through GetHandler instead.
func NewFulfilled(v interface{}) *Fulfilled {
	return &Fulfilled{Value: v}
}

// When schedules the consumer's continuation via env.Enqueue, never
// synchronously with the call to When itself. If c.OnFulfilled is nil the
// value passes through to c.Resolve unchanged; otherwise the transformer
// runs and its outcome (or a recovered panic) decides whether c.Resolve or
// c.Reject fires.
func (f *Fulfilled) When(env environment.Environment, c Consumer) {
	value := f.Value

	env.Enqueue(func() {
		if c.OnFulfilled == nil {
			c.Resolve(value)
			return
		}

		result, err := runOnFulfilled(c.OnFulfilled, value)
		if err != nil {
			c.Reject(err)
			return
		}
		c.Resolve(result)
	})
}

func runOnFulfilled(onFulfilled OnFulfilled, value interface{}) (result interface{}, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = panicToError(r)
		}
	}()

	return onFulfilled(value)
}

func (f *Fulfilled) NotifyProgress(environment.Environment, interface{}) {}

func (f *Fulfilled) Join(_ environment.Environment, _ Handler) Handler {
	return f
}

func (f *Fulfilled) Traverse() Handler {
	return f
}

func (f *Fulfilled) Inspect() Snapshot {
	return Snapshot{State: StateFulfilled, Value: f.Value}
}

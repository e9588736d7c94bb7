package promise

import "github.com/deferredgo/promise/environment"

// UnspoolFunc produces the next item/seed pair from the current seed.
type UnspoolFunc func(seed interface{}) (item interface{}, next interface{})

// StepFunc produces the next seed from the current one, used by Iterate.
type StepFunc func(seed interface{}) interface{}

// StopFunc reports whether unfolding should stop at seed. Its result is
// cast and awaited, so it may itself return a *Promise, mirroring the
// "stop(seed) may return a promise" allowance in the anamorphism spec.
type StopFunc func(seed interface{}) interface{}

// HandleFunc is run on every emitted item before recursing. Its result is
// cast and awaited the same way StopFunc's is, so it may return a
// *Promise to delay the next step.
type HandleFunc func(item interface{}) interface{}

// unfold implements Factory.Unfold. Each recursive step is reached only
// from inside a Then callback, which always runs via env.Enqueue — so the
// recursion never grows the call stack, per the stack-growth note in the
// anamorphism design.
func unfold(env environment.Environment, unspool UnspoolFunc, stop StopFunc, handle HandleFunc, seed interface{}) *Promise {
	result := newPending(env)

	var step func(seed interface{})
	step = func(seed interface{}) {
		castValue(env, stop(seed)).Then(
			func(truthy interface{}) (interface{}, error) {
				if isTruthy(truthy) {
					result.settle(seed)
					return nil, nil
				}

				item, next := unspool(seed)

				castValue(env, handle(item)).Then(
					func(interface{}) (interface{}, error) {
						step(next)
						return nil, nil
					},
					func(r error) (interface{}, error) {
						result.reject(r)
						return nil, r
					},
					nil,
				)
				return nil, nil
			},
			func(r error) (interface{}, error) {
				result.reject(r)
				return nil, r
			},
			nil,
		)
	}

	step(seed)

	return result
}

// iterate implements Factory.Iterate: like unfold, but the emitted item
// and the next seed are both simply step(seed).
func iterate(env environment.Environment, step StepFunc, stop StopFunc, handle HandleFunc, x interface{}) *Promise {
	return unfold(env, func(seed interface{}) (interface{}, interface{}) {
		next := step(seed)
		return next, next
	}, stop, handle, x)
}

func isTruthy(v interface{}) bool {
	if v == nil {
		return false
	}
	if b, ok := v.(bool); ok {
		return b
	}
	return true
}

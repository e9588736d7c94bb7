package promise

import (
	"sync"

	"github.com/deferredgo/promise/environment"
	"github.com/deferredgo/promise/internal/handler"
)

func ofRaw(env environment.Environment, v interface{}) *Promise {
	p := newPending(env)
	p.join(handler.NewFulfilled(v))

	return p
}

func resolveValue(env environment.Environment, x interface{}) *Promise {
	p := newPending(env)
	p.settle(x)

	return p
}

func rejectValue(env environment.Environment, reason error) *Promise {
	p := newPending(env)
	p.join(handler.NewRejected(reason))

	return p
}

func emptyValue(env environment.Environment) *Promise {
	return &Promise{h: handler.NewEmpty(), env: env}
}

func castValue(env environment.Environment, x interface{}) *Promise {
	if p, ok := x.(*Promise); ok {
		return p
	}

	return resolveValue(env, x)
}

// all implements Factory.All. It preserves positional order by writing
// each fulfillment into a pre-sized slice at its input index, regardless
// of completion order, and fails fast on the first rejection.
func all(env environment.Environment, xs []interface{}) *Promise {
	result := newPending(env)

	n := len(xs)
	if n == 0 {
		result.join(handler.NewFulfilled([]interface{}{}))
		return result
	}

	var (
		mu        sync.Mutex
		values    = make([]interface{}, n)
		remaining = n
		settled   bool
	)

	for i, x := range xs {
		i := i

		castValue(env, x).Then(
			func(v interface{}) (interface{}, error) {
				mu.Lock()
				if settled {
					mu.Unlock()
					return nil, nil
				}
				values[i] = v
				remaining--
				done := remaining == 0
				if done {
					settled = true
				}
				mu.Unlock()

				if done {
					result.settle(append([]interface{}(nil), values...))
				}
				return nil, nil
			},
			func(r error) (interface{}, error) {
				mu.Lock()
				already := settled
				settled = true
				mu.Unlock()

				if !already {
					result.reject(r)
				}
				return nil, r
			},
			nil,
		)
	}

	return result
}

// any implements Factory.Any: first fulfillment wins; if every input
// rejects, the result rejects with an *AggregateError in rejection order.
func any(env environment.Environment, xs []interface{}) *Promise {
	result := newPending(env)

	n := len(xs)
	if n == 0 {
		result.join(handler.NewFulfilled(nil))
		return result
	}

	var (
		mu      sync.Mutex
		reasons []error
		settled bool
	)

	for _, x := range xs {
		castValue(env, x).Then(
			func(v interface{}) (interface{}, error) {
				mu.Lock()
				already := settled
				settled = true
				mu.Unlock()

				if !already {
					result.settle(v)
				}
				return nil, nil
			},
			func(r error) (interface{}, error) {
				mu.Lock()
				if settled {
					mu.Unlock()
					return nil, r
				}
				reasons = append(reasons, r)
				allRejected := len(reasons) == n
				var snapshot []error
				if allRejected {
					settled = true
					snapshot = append([]error(nil), reasons...)
				}
				mu.Unlock()

				if allRejected {
					result.reject(&AggregateError{Errors: snapshot})
				}
				return nil, r
			},
			nil,
		)
	}

	return result
}

// some implements Factory.Some. n is clamped up front against the
// materialized input length, per the open-question resolution recorded
// in DESIGN.md.
func some(env environment.Environment, xs []interface{}, n int) *Promise {
	result := newPending(env)

	total := len(xs)
	if n > total {
		n = total
	}
	if total == 0 || n <= 0 {
		result.join(handler.NewFulfilled([]interface{}{}))
		return result
	}

	var (
		mu        sync.Mutex
		fulfilled []interface{}
		reasons   []error
		settled   bool
	)
	maxFailures := total - n

	for _, x := range xs {
		castValue(env, x).Then(
			func(v interface{}) (interface{}, error) {
				mu.Lock()
				if settled {
					mu.Unlock()
					return nil, nil
				}
				fulfilled = append(fulfilled, v)
				done := len(fulfilled) == n
				var snapshot []interface{}
				if done {
					settled = true
					snapshot = append([]interface{}(nil), fulfilled...)
				}
				mu.Unlock()

				if done {
					result.settle(snapshot)
				}
				return nil, nil
			},
			func(r error) (interface{}, error) {
				mu.Lock()
				if settled {
					mu.Unlock()
					return nil, r
				}
				reasons = append(reasons, r)
				fail := len(reasons) > maxFailures
				var snapshot []error
				if fail {
					settled = true
					snapshot = append([]error(nil), reasons...)
				}
				mu.Unlock()

				if fail {
					result.reject(&AggregateError{Errors: snapshot})
				}
				return nil, r
			},
			nil,
		)
	}

	return result
}

// race implements Factory.Race: the first settlement, success or
// failure, wins. An empty slice leaves the result pending forever.
func race(env environment.Environment, xs []interface{}) *Promise {
	result := newPending(env)

	if len(xs) == 0 {
		return result
	}

	var (
		mu      sync.Mutex
		settled bool
	)

	for _, x := range xs {
		castValue(env, x).Then(
			func(v interface{}) (interface{}, error) {
				mu.Lock()
				already := settled
				settled = true
				mu.Unlock()

				if !already {
					result.settle(v)
				}
				return nil, nil
			},
			func(r error) (interface{}, error) {
				mu.Lock()
				already := settled
				settled = true
				mu.Unlock()

				if !already {
					result.reject(r)
				}
				return nil, r
			},
			nil,
		)
	}

	return result
}

// settle implements Factory.Settle: it never rejects, resolving once
// every input has settled to a []Snapshot in input order.
func settle(env environment.Environment, xs []interface{}) *Promise {
	result := newPending(env)

	n := len(xs)
	if n == 0 {
		result.join(handler.NewFulfilled([]Snapshot{}))
		return result
	}

	snapshots := make([]Snapshot, n)
	var mu sync.Mutex
	remaining := n

	for i, x := range xs {
		i := i
		p := castValue(env, x)

		finish := func() {
			mu.Lock()
			snapshots[i] = p.Inspect()
			remaining--
			done := remaining == 0
			mu.Unlock()

			if done {
				result.settle(append([]Snapshot(nil), snapshots...))
			}
		}

		p.Then(
			func(interface{}) (interface{}, error) { finish(); return nil, nil },
			func(r error) (interface{}, error) { finish(); return nil, r },
			nil,
		)
	}

	return result
}

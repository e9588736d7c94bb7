package promise

import "github.com/pkg/errors"

var identityFulfill FulfillHandler = func(v interface{}) (interface{}, error) { return v, nil }

// Map ≡ FlatMap(x => Of(f(x))).
func (p *Promise) Map(f func(value interface{}) interface{}) *Promise {
	return p.FlatMap(func(x interface{}) *Promise {
		return ofRaw(p.env, f(x))
	})
}

// FlatMap ≡ Then(x => f(x).Then(identity)): f's result is a promise in
// its own right; the outer Then's transformer returns it, and the derived
// promise follows that trusted promise when it settles.
func (p *Promise) FlatMap(f func(value interface{}) *Promise) *Promise {
	return p.Then(func(x interface{}) (interface{}, error) {
		return f(x).Then(identityFulfill, nil, nil), nil
	}, nil, nil)
}

// Ap treats p's fulfillment value as a func(interface{}) interface{} and
// applies it to other's fulfillment value once both are available.
func (p *Promise) Ap(other *Promise) *Promise {
	return p.FlatMap(func(fv interface{}) *Promise {
		f, ok := fv.(func(interface{}) interface{})
		if !ok {
			return rejectValue(p.env, errors.Errorf("promise: ap: expected func(interface{}) interface{}, got %T", fv))
		}
		return other.Map(f)
	})
}

// Concat ≡ Any([p, other]).
func (p *Promise) Concat(other *Promise) *Promise {
	return any(p.env, []interface{}{p, other})
}

// Filter ≡ Map(x => pred(x) ? x : <reject>).
func (p *Promise) Filter(pred func(value interface{}) bool) *Promise {
	return p.Map(func(v interface{}) interface{} {
		if !pred(v) {
			panic(&filterRejection{value: v})
		}
		return v
	})
}

// Reduce is the one-argument fold over this single promise (not a
// collection): it deliberately does not flatten, resolving to the
// promise itself as a value — see DESIGN.md's note on this preserved
// quirk. Use ReduceWith for the two-argument fold that actually combines
// an initial accumulator with this promise's value.
func (p *Promise) Reduce() *Promise {
	return ofRaw(p.env, p)
}

// ReduceWith ≡ Map(x => f(initial, x)).
func (p *Promise) ReduceWith(initial interface{}, f func(accumulator, value interface{}) interface{}) *Promise {
	return p.Map(func(x interface{}) interface{} { return f(initial, x) })
}

// ReduceRight is identical to Reduce for a single value: there is no
// direction to fold in over one element.
func (p *Promise) ReduceRight() *Promise {
	return p.Reduce()
}

// ReduceRightWith is identical to ReduceWith for a single value.
func (p *Promise) ReduceRightWith(initial interface{}, f func(accumulator, value interface{}) interface{}) *Promise {
	return p.ReduceWith(initial, f)
}

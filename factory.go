package promise

import (
	"github.com/deferredgo/promise/environment"
)

// Factory is what New(environment) returns: the Promise constructor with
// every static combinator attached, all bound to the same host
// Environment. This is the module's external interface (spec §6): there
// is no global, implicit environment.
type Factory struct {
	env environment.Environment
}

// New binds a Factory to env. Every Promise the Factory produces, and
// every promise derived from those via instance methods, shares env.
func New(env environment.Environment) *Factory {
	return &Factory{env: env}
}

// New is the constructor protocol: it synchronously invokes resolver; if
// resolver panics, the new promise rejects with the recovered value
// instead of letting the panic escape.
func (f *Factory) New(resolver ResolverFunc) *Promise {
	p := newPending(f.env)

	func() {
		defer func() {
			if r := recover(); r != nil {
				p.reject(panicToError(r))
			}
		}()

		resolver(p.settle, p.reject, p.notify)
	}()

	return p
}

// Of returns a promise fulfilled with v as-is: unlike Resolve, it never
// follows v even if v is itself a trusted promise or thenable.
func (f *Factory) Of(v interface{}) *Promise {
	return ofRaw(f.env, v)
}

// Resolve always constructs a new trusted promise following x: if x is a
// trusted promise or thenable, the new promise adopts its eventual
// outcome instead of fulfilling with x itself.
func (f *Factory) Resolve(x interface{}) *Promise {
	return resolveValue(f.env, x)
}

// Reject returns a promise already rejected with reason.
func (f *Factory) Reject(reason error) *Promise {
	return rejectValue(f.env, reason)
}

// Empty returns a promise that is observably pending forever.
func (f *Factory) Empty() *Promise {
	return emptyValue(f.env)
}

// Cast is the identity on an already-trusted promise, and Resolve(x)
// otherwise.
func (f *Factory) Cast(x interface{}) *Promise {
	return castValue(f.env, x)
}

// All resolves to a []interface{} of fulfillment values in input order,
// or rejects with the first rejection encountered.
func (f *Factory) All(xs []interface{}) *Promise {
	return all(f.env, xs)
}

// Any resolves to the first fulfillment value, or rejects with an
// *AggregateError if every input rejects.
func (f *Factory) Any(xs []interface{}) *Promise {
	return any(f.env, xs)
}

// Some resolves to a []interface{} of the first n fulfillment values, in
// fulfillment order, or rejects with an *AggregateError once success
// becomes unreachable. n is clamped to len(xs).
func (f *Factory) Some(xs []interface{}, n int) *Promise {
	return some(f.env, xs, n)
}

// Race adopts the first settlement, success or failure, of any input. An
// empty slice produces a forever-pending promise.
func (f *Factory) Race(xs []interface{}) *Promise {
	return race(f.env, xs)
}

// Settle resolves to a []Snapshot of every input's final state, in input
// order. It never rejects.
func (f *Factory) Settle(xs []interface{}) *Promise {
	return settle(f.env, xs)
}

// Unfold repeatedly checks stop(seed); once its result is truthy, the
// returned promise resolves to seed. Otherwise unspool(seed) produces the
// next item and seed, handle(item) is awaited, and Unfold recurses.
// Recursion is flat: each step crosses an Enqueue boundary rather than
// calling itself on the same stack frame.
func (f *Factory) Unfold(unspool UnspoolFunc, stop StopFunc, handle HandleFunc, seed interface{}) *Promise {
	return unfold(f.env, unspool, stop, handle, seed)
}

// Iterate is Unfold where the next seed is simply step(x) and the emitted
// item equals that next value.
func (f *Factory) Iterate(step StepFunc, stop StopFunc, handle HandleFunc, x interface{}) *Promise {
	return iterate(f.env, step, stop, handle, x)
}

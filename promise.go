// Package promise implements a deterministic, monadic future/deferred
// value: a Promise whose behavior is delegated entirely to the handler
// state machine in internal/handler, and a pluggable host Environment
// (package environment) supplying the microtask queue and timers that
// every suspension point crosses.
//
// Promises never invoke a registered callback synchronously with its
// registration; see environment.Environment for the host contract this
// relies on.
package promise

import (
	"sync"

	"github.com/google/uuid"
	"github.com/pkg/errors"

	"github.com/deferredgo/promise/environment"
	"github.com/deferredgo/promise/internal/handler"
)

// State mirrors the three states a settled (or not yet settled) promise
// can report through Inspect.
type State = handler.State

const (
	StatePending   = handler.StatePending
	StateFulfilled = handler.StateFulfilled
	StateRejected  = handler.StateRejected
)

// Snapshot is the value returned by Inspect.
type Snapshot = handler.Snapshot

// Resolver, Rejector and Notifier are the three functions a constructor
// callback receives.
type (
	Resolver func(value interface{})
	Rejector func(reason error)
	Notifier func(update interface{})
)

// FulfillHandler, RejectHandler and ProgressHandler are the three
// optional transformers Then accepts. A nil transformer means "pass the
// value/reason/update through unchanged".
type (
	FulfillHandler func(value interface{}) (result interface{}, err error)
	RejectHandler  func(reason error) (result interface{}, err error)
	ProgressHandler func(update interface{}) interface{}
)

// FinallyHandler is the side-effecting callback passed to Finally; it
// observes settlement without seeing the value or reason.
type FinallyHandler func()

// ResolverFunc is the callback passed to Factory.New.
type ResolverFunc func(resolve Resolver, reject Rejector, notify Notifier)

// Promise is an opaque value exposing a single mutable slot: its current
// handler. All behavior is delegated to that handler; Promise itself only
// owns the slot and the Environment used to schedule continuations.
type Promise struct {
	handler.Brand

	mu  sync.Mutex
	h   handler.Handler
	env environment.Environment

	idOnce sync.Once
	id     uuid.UUID
}

func newPending(env environment.Environment) *Promise {
	return &Promise{h: handler.NewPending(), env: env}
}

// Handler returns the promise's current handler. It exists to satisfy
// handler.Trusted so the resolution algorithm can recognize this type as
// a trusted promise; user code has no reason to call it directly.
func (p *Promise) Handler() handler.Handler {
	p.mu.Lock()
	defer p.mu.Unlock()

	return p.h
}

func (p *Promise) setHandler(h handler.Handler) {
	p.mu.Lock()
	p.h = h
	p.mu.Unlock()
}

// join runs the transition primitive against the current handler and
// installs whatever it returns, per the Join contract: only a Pending
// receiver has any side effect, everyone else returns itself unchanged.
func (p *Promise) join(incoming handler.Handler) {
	p.mu.Lock()
	cur := p.h
	p.mu.Unlock()

	p.setHandler(cur.Join(p.env, incoming))
}

// settle is the resolve half of the constructor protocol: it performs the
// self-resolution check before handing x to the resolution algorithm.
func (p *Promise) settle(x interface{}) {
	if other, ok := x.(*Promise); ok && other == p {
		p.join(handler.NewRejected(newSelfResolutionError()))
		return
	}

	p.join(handler.GetHandler(p.env, x))
}

func (p *Promise) reject(reason error) {
	p.join(handler.NewRejected(reason))
}

func (p *Promise) notify(update interface{}) {
	p.Handler().NotifyProgress(p.env, update)
}

// Then is the then primitive every other instance-level operation is
// defined in terms of. Any of onFulfilled, onRejected or onProgress may
// be nil.
func (p *Promise) Then(onFulfilled FulfillHandler, onRejected RejectHandler, onProgress ProgressHandler) *Promise {
	next := newPending(p.env)

	c := handler.Consumer{
		Resolve: next.settle,
		Reject:  next.reject,
		Notify:  next.notify,
	}
	if onFulfilled != nil {
		c.OnFulfilled = handler.OnFulfilled(onFulfilled)
	}
	if onRejected != nil {
		c.OnRejected = handler.OnRejected(onRejected)
	}
	if onProgress != nil {
		c.OnProgress = handler.OnProgress(onProgress)
	}

	p.Handler().Traverse().When(p.env, c)

	return next
}

// Catch ≡ Then(nil, onRejected, nil).
func (p *Promise) Catch(onRejected RejectHandler) *Promise {
	return p.Then(nil, onRejected, nil)
}

// Else ≡ Catch(func(error) (interface{}, error) { return v, nil }).
func (p *Promise) Else(v interface{}) *Promise {
	return p.Catch(func(error) (interface{}, error) { return v, nil })
}

// Yield ≡ Then(func(interface{}) (interface{}, error) { return v, nil }, nil, nil).
func (p *Promise) Yield(v interface{}) *Promise {
	return p.Then(func(interface{}) (interface{}, error) { return v, nil }, nil, nil)
}

// Throw ≡ Then(func(interface{}) (interface{}, error) { return nil, e }, nil, nil).
func (p *Promise) Throw(e error) *Promise {
	return p.Then(func(interface{}) (interface{}, error) { return nil, e }, nil, nil)
}

// Tap ≡ Then(fn).Yield(self): fn observes the fulfillment value without
// altering the chain's outcome.
func (p *Promise) Tap(fn func(value interface{})) *Promise {
	return p.Then(func(v interface{}) (interface{}, error) {
		fn(v)
		return v, nil
	}, nil, nil).Yield(p)
}

// Finally runs fn on both the success and failure branch, discarding its
// return, and yields the original outcome — unless fn panics, in which
// case the panic becomes the derived promise's rejection, per the normal
// transformer-panic rule.
func (p *Promise) Finally(fn FinallyHandler) *Promise {
	return p.Then(
		func(v interface{}) (interface{}, error) {
			fn()
			return v, nil
		},
		func(r error) (interface{}, error) {
			fn()
			return nil, r
		},
		nil,
	)
}

// Progress ≡ Then(nil, nil, fn). Progress is deprecated surface, kept for
// fidelity with the handler state machine's Progress variant; prefer
// polling Inspect or redesigning around a typed update channel.
func (p *Promise) Progress(fn ProgressHandler) *Promise {
	return p.Then(nil, nil, fn)
}

// Spread ≡ Then(arr => All(arr).Then(a => fn(...a))): the fulfillment
// value must be a []interface{} whose elements are cast and awaited
// before fn runs on the resolved slice.
func (p *Promise) Spread(fn func(values []interface{}) (interface{}, error)) *Promise {
	return p.Then(func(v interface{}) (interface{}, error) {
		arr, ok := v.([]interface{})
		if !ok {
			return nil, errors.Errorf("promise: spread: expected []interface{}, got %T", v)
		}

		return all(p.env, arr).Then(func(values interface{}) (interface{}, error) {
			return fn(values.([]interface{}))
		}, nil, nil), nil
	}, nil, nil)
}

// Inspect returns a state snapshot, collapsing any Following chain first.
func (p *Promise) Inspect() Snapshot {
	return p.Handler().Traverse().Inspect()
}

// DebugSnapshot is Inspect's state plus a stable correlation id, for tests
// and examples that need to tell promises apart in a log line without
// printing a pointer address.
type DebugSnapshot struct {
	Snapshot
	ID uuid.UUID
}

// ID returns this promise's correlation id, generating it on first use.
// Ordinary operation never touches it: it exists purely for InspectDebug.
func (p *Promise) ID() uuid.UUID {
	p.idOnce.Do(func() { p.id = uuid.New() })

	return p.id
}

// InspectDebug is Inspect with the promise's correlation id attached.
func (p *Promise) InspectDebug() DebugSnapshot {
	return DebugSnapshot{Snapshot: p.Inspect(), ID: p.ID()}
}

// Done is the fatal-commit operation: it behaves like Then(onResult,
// onError) but, if the resulting promise ends up rejected, crashes the
// host instead of letting the rejection go unobserved. The crash is
// raised twice — once asynchronously via the environment, to guarantee a
// host-level stack trace survives even if the synchronous panic is
// recovered by a caller up the stack, and once synchronously.
func (p *Promise) Done(onResult FulfillHandler, onError RejectHandler) {
	next := p.Then(onResult, onError, nil)

	c := handler.Consumer{
		Resolve: func(interface{}) {},
		Reject: func(r error) {
			err := errors.Wrap(r, "promise: unhandled rejection")
			next.env.Enqueue(func() { panic(err) })
			panic(err)
		},
		Notify: func(interface{}) {},
	}

	next.Handler().Traverse().When(next.env, c)
}

package handler

import (
	"sync"

	"github.com/deferredgo/promise/environment"
)

// Thenable is the Go shape of "an object with a callable then": any value
// implementing it is treated as an untrusted foreign promise and
// assimilated rather than trusted outright. Trusted values are
// distinguished by the nominal Trusted marker instead, never by this
// interface.
type Thenable interface {
	Then(resolve func(interface{}), reject func(error), notify func(interface{}))
}

// GetHandler classifies x per the resolution algorithm: a trusted promise
// is followed, an untrusted thenable is assimilated (deferred through
// env.Enqueue), and everything else becomes a Fulfilled handler. Reading
// whether x is a Thenable is protected against panics, mirroring the
// "accessing the property itself may throw" case in the JS original.
func GetHandler(env environment.Environment, x interface{}) Handler {
	if x == nil {
		return NewFulfilled(nil)
	}

	if trusted, ok := x.(Trusted); ok {
		return NewFollowing(trusted)
	}

	thenable, ok, err := detectThenable(x)
	if err != nil {
		return NewRejected(err)
	}
	if ok {
		return adopt(env, thenable)
	}

	return NewFulfilled(x)
}

func detectThenable(x interface{}) (thenable Thenable, ok bool, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = panicToError(r)
		}
	}()

	thenable, ok = x.(Thenable)
	return thenable, ok, nil
}

// adopter is a minimal Trusted value used only to assimilate a foreign
// Thenable: it owns a mutable handler slot, starting Pending, that the
// deferred call into x.Then will eventually join.
type adopter struct {
	Brand

	mu sync.Mutex
	h  Handler
}

func (a *adopter) Handler() Handler {
	a.mu.Lock()
	defer a.mu.Unlock()

	return a.h
}

func (a *adopter) join(env environment.Environment, h Handler) {
	a.mu.Lock()
	cur := a.h
	a.mu.Unlock()

	result := cur.Join(env, h)

	a.mu.Lock()
	a.h = result
	a.mu.Unlock()
}

// adopt defers the call to thenable.Then via env.Enqueue, which is
// required for safety: a misbehaving thenable might call both callbacks,
// call one synchronously, or throw. A sync.Once makes only the first
// settlement observable; a recover converts a synchronous panic out of
// Then itself into a rejection.
func adopt(env environment.Environment, thenable Thenable) Handler {
	a := &adopter{h: NewPending()}

	env.Enqueue(func() {
		var once sync.Once

		resolve := func(v interface{}) {
			once.Do(func() {
				a.join(env, GetHandler(env, v))
			})
		}
		reject := func(r error) {
			once.Do(func() {
				a.join(env, NewRejected(r))
			})
		}
		notify := func(u interface{}) {
			a.Handler().NotifyProgress(env, u)
		}

		defer func() {
			if r := recover(); r != nil {
				reject(panicToError(r))
			}
		}()

		thenable.Then(resolve, reject, notify)
	})

	return NewFollowing(a)
}

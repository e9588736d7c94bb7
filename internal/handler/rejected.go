package handler

import "github.com/deferredgo/promise/environment"

// Rejected holds a terminal failure reason.
type Rejected struct {
	Reason error
}

// NewRejected returns a terminal Rejected handler wrapping reason.
func NewRejected(reason error) *Rejected {
	return &Rejected{Reason: reason}
}

func (r *Rejected) When(env environment.Environment, c Consumer) {
	reason := r.Reason

	env.Enqueue(func() {
		if c.OnRejected == nil {
			c.Reject(reason)
			return
		}

		result, err := runOnRejected(c.OnRejected, reason)
		if err != nil {
			c.Reject(err)
			return
		}
		c.Resolve(result)
	})
}

func runOnRejected(onRejected OnRejected, reason error) (result interface{}, err error) {
	defer func() {
		if rec := recover(); rec != nil {
			err = panicToError(rec)
		}
	}()

	return onRejected(reason)
}

func (r *Rejected) NotifyProgress(environment.Environment, interface{}) {}

func (r *Rejected) Join(_ environment.Environment, _ Handler) Handler {
	return r
}

func (r *Rejected) Traverse() Handler {
	return r
}

func (r *Rejected) Inspect() Snapshot {
	return Snapshot{State: StateRejected, Reason: r.Reason}
}

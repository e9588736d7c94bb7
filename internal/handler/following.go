package handler

import "github.com/deferredgo/promise/environment"

// Trusted is the nominal marker a value must satisfy to be treated as one
// of this module's own promises rather than an arbitrary thenable.
// Structural "has a Then method" checks are deliberately not used here —
// see Thenable — because they would let an untrusted object claim trust.
//
// The marker half of this interface (trustedPromise) is unexported, so it
// can only be satisfied by embedding Brand: a type outside this package
// cannot implement Trusted by accident.
type Trusted interface {
	trustedPromise()
	Handler() Handler
}

// Brand is embedded by the outer Promise type (and by this package's own
// thenable adopter) to seal the Trusted interface.
type Brand struct{}

func (Brand) trustedPromise() {}

// Following holds a reference to a trusted target and delegates every
// capability to the target's traversed handler. It never becomes terminal
// itself; terminality is observed by walking through it.
type Following struct {
	Target Trusted
}

// NewFollowing wraps target, which must satisfy Trusted.
func NewFollowing(target Trusted) *Following {
	return &Following{Target: target}
}

func (f *Following) When(env environment.Environment, c Consumer) {
	f.Target.Handler().Traverse().When(env, c)
}

// NotifyProgress is a no-op: progress is relayed by the target's own
// handler chain when it is still Pending, via that handler's When.
func (f *Following) NotifyProgress(environment.Environment, interface{}) {}

func (f *Following) Join(_ environment.Environment, _ Handler) Handler {
	return f
}

// Traverse walks to the terminal (or still-pending) handler at the end of
// the chain. Implementations are free to path-compress here; this one
// does not mutate Target, trading a small amount of repeated walking for
// simplicity — observable semantics are unaffected either way.
func (f *Following) Traverse() Handler {
	return f.Target.Handler().Traverse()
}

func (f *Following) Inspect() Snapshot {
	return f.Target.Handler().Traverse().Inspect()
}

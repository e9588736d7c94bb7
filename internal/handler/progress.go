package handler

import "github.com/deferredgo/promise/environment"

// Progress is not a handler a Promise's slot ever holds; it is the
// transient capability object Pending.NotifyProgress constructs, once per
// queued consumer, to run that consumer's progress transformer and
// forward the (possibly transformed) update. It exists as a real Handler
// so the progress fan-out goes through the same When dispatch as every
// other delivery, instead of a bespoke code path.
type Progress struct {
	Update interface{}
}

// When invokes c.OnProgress(Update), if present, and forwards the result
// (or, on panic, the recovered error) to c.Notify; otherwise Update passes
// through unchanged. Progress is fire-and-forget: nothing flows back out
// of Notify.
func (p *Progress) When(_ environment.Environment, c Consumer) {
	if c.Notify == nil {
		return
	}

	if c.OnProgress == nil {
		c.Notify(p.Update)
		return
	}

	update, err := runOnProgress(c.OnProgress, p.Update)
	if err != nil {
		c.Notify(err)
		return
	}
	c.Notify(update)
}

func runOnProgress(onProgress OnProgress, update interface{}) (result interface{}, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = panicToError(r)
		}
	}()

	return onProgress(update), nil
}

func (p *Progress) NotifyProgress(environment.Environment, interface{}) {}

func (p *Progress) Join(_ environment.Environment, _ Handler) Handler {
	return p
}

func (p *Progress) Traverse() Handler {
	return p
}

func (p *Progress) Inspect() Snapshot {
	return Snapshot{State: StatePending}
}

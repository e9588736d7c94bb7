package promise

import (
	"sync"
	"time"

	"github.com/deferredgo/promise/internal/handler"
)

// Delay resolves to this promise's eventual fulfillment value, but only
// after an additional wait of at least d once that fulfillment happens.
// Rejections are not delayed — they propagate immediately. Progress is
// forwarded unchanged.
func (p *Promise) Delay(d time.Duration) *Promise {
	next := newPending(p.env)

	c := handler.Consumer{
		Resolve: func(v interface{}) {
			p.env.SetTimer(func() { next.settle(v) }, d)
		},
		Reject: next.reject,
		Notify: next.notify,
	}

	p.Handler().Traverse().When(p.env, c)

	return next
}

// Timeout starts a timer at construction. If it fires before this promise
// settles, the returned promise rejects with a *TimeoutError naming d;
// otherwise it cancels the timer and adopts this promise's outcome,
// whichever branch settled first.
func (p *Promise) Timeout(d time.Duration) *Promise {
	next := newPending(p.env)

	var (
		mu      sync.Mutex
		settled bool
	)

	timer := p.env.SetTimer(func() {
		mu.Lock()
		already := settled
		settled = true
		mu.Unlock()

		if !already {
			next.reject(newTimeoutError(d))
		}
	}, d)

	c := handler.Consumer{
		Resolve: func(v interface{}) {
			mu.Lock()
			already := settled
			settled = true
			mu.Unlock()

			if !already {
				timer.Cancel()
				next.settle(v)
			}
		},
		Reject: func(r error) {
			mu.Lock()
			already := settled
			settled = true
			mu.Unlock()

			if !already {
				timer.Cancel()
				next.reject(r)
			}
		},
		Notify: next.notify,
	}

	p.Handler().Traverse().When(p.env, c)

	return next
}

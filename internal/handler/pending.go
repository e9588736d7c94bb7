package handler

import (
	"sync"

	"github.com/deferredgo/promise/environment"
)

// Pending is the only non-terminal, non-Following, non-Empty handler: it
// owns an append-only queue of deferred consumers until Join drains it.
type Pending struct {
	mu    sync.Mutex
	queue []Consumer
}

// NewPending returns a fresh Pending handler with an empty queue.
func NewPending() *Pending {
	return &Pending{}
}

func (p *Pending) When(_ environment.Environment, c Consumer) {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.queue = append(p.queue, c)
}

// NotifyProgress schedules the current queue's consumers for a progress
// callback, without draining the queue — a progress event is not a
// settlement, so the same consumer may still later receive When on join.
func (p *Pending) NotifyProgress(env environment.Environment, update interface{}) {
	p.mu.Lock()
	consumers := make([]Consumer, len(p.queue))
	copy(consumers, p.queue)
	p.mu.Unlock()

	for _, c := range consumers {
		c := c
		env.Enqueue(func() {
			(&Progress{Update: update}).When(env, c)
		})
	}
}

// Join drains the queue, snapshotting and clearing it first so that any
// consumer registered during replay lands on incoming (now terminal)
// instead of re-entering this queue. Each queued consumer is replayed
// against incoming.Traverse(), collapsing any Following indirection
// before delivery. Join always returns incoming unchanged; the caller is
// responsible for installing it as the new handler.
func (p *Pending) Join(env environment.Environment, incoming Handler) Handler {
	p.mu.Lock()
	queue := p.queue
	p.queue = nil
	p.mu.Unlock()

	if len(queue) == 0 {
		return incoming
	}

	terminal := incoming.Traverse()
	for _, c := range queue {
		terminal.When(env, c)
	}

	return incoming
}

func (p *Pending) Traverse() Handler {
	return p
}

func (p *Pending) Inspect() Snapshot {
	return Snapshot{State: StatePending}
}

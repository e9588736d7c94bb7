package environment

import (
	"sync"
	"time"
)

// Loop is the default Environment: a single dedicated worker goroutine
// draining a FIFO queue, the same shape the promise core assumes when it
// says "single-threaded cooperative". Enqueue may be called from any
// goroutine; tasks always run on the worker.
type Loop struct {
	mu     sync.Mutex
	cond   *sync.Cond
	queue  []func()
	closed bool
}

// NewLoop starts a Loop's worker goroutine and returns it.
func NewLoop() *Loop {
	l := &Loop{}
	l.cond = sync.NewCond(&l.mu)
	go l.run()
	return l
}

func (l *Loop) run() {
	for {
		l.mu.Lock()
		for len(l.queue) == 0 && !l.closed {
			l.cond.Wait()
		}
		if len(l.queue) == 0 && l.closed {
			l.mu.Unlock()
			return
		}
		task := l.queue[0]
		l.queue = l.queue[1:]
		l.mu.Unlock()

		task()
	}
}

// Enqueue implements Environment.
func (l *Loop) Enqueue(task func()) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.closed {
		return
	}

	l.queue = append(l.queue, task)
	l.cond.Signal()
}

// SetTimer implements Environment using time.AfterFunc, routing the fired
// function back through Enqueue so it still runs on the worker goroutine
// and obeys the same FIFO/no-synchronous-callback guarantees.
func (l *Loop) SetTimer(fn func(), d time.Duration) Timer {
	t := time.AfterFunc(d, func() {
		l.Enqueue(fn)
	})

	return &loopTimer{t: t}
}

// Close stops the worker goroutine once its queue drains. A closed Loop
// drops any further Enqueue calls; it is meant for tests and short-lived
// programs, not for promises still in flight.
func (l *Loop) Close() {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.closed = true
	l.cond.Broadcast()
}

type loopTimer struct {
	t *time.Timer
}

func (h *loopTimer) Cancel() {
	h.t.Stop()
}

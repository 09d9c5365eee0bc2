package app

import (
	"context"
	"sync"
	"time"
)

// Scheduler runs fn once, d from now, on the loop's goroutine.
type Scheduler interface {
	After(d time.Duration, fn func())
}

// EventLoop is a Scheduler backed by real timers. Callbacks are funneled
// to the goroutine calling Run, so no two of them ever run concurrently.
type EventLoop struct {
	events chan func()
	done   chan struct{}

	mu     sync.Mutex
	timers map[*time.Timer]struct{}
	closed bool
}

// NewEventLoop creates an EventLoop. Nothing runs until Run is called.
func NewEventLoop() *EventLoop {
	return &EventLoop{
		events: make(chan func(), 64),
		done:   make(chan struct{}),
		timers: make(map[*time.Timer]struct{}),
	}
}

// After schedules fn. Calls made after Run has returned are dropped.
func (l *EventLoop) After(d time.Duration, fn func()) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.closed {
		return
	}

	var timer *time.Timer
	timer = time.AfterFunc(d, func() {
		l.mu.Lock()
		delete(l.timers, timer)
		l.mu.Unlock()
		l.Post(fn)
	})
	l.timers[timer] = struct{}{}
}

// Post queues fn to run on the loop as soon as possible.
func (l *EventLoop) Post(fn func()) {
	select {
	case l.events <- fn:
	case <-l.done:
	}
}

// Run executes callbacks until ctx is done, then stops pending timers.
func (l *EventLoop) Run(ctx context.Context) error {
	defer l.shutdown()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case fn := <-l.events:
			fn()
		}
	}
}

// Pending returns the number of timers that haven't fired yet.
func (l *EventLoop) Pending() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.timers)
}

func (l *EventLoop) shutdown() {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.closed {
		return
	}
	l.closed = true
	for t := range l.timers {
		t.Stop()
	}
	l.timers = nil
	close(l.done)
}

package loop

import (
	"context"
	"sync"
)

// Loop serializes work onto a single goroutine. Every function handed to
// Dispatch runs on the goroutine executing Run, one at a time.
type Loop struct {
	queue chan func()
	done  chan struct{}
	once  sync.Once
}

func New(buffer int) *Loop {
	if buffer <= 0 {
		buffer = 16
	}
	return &Loop{
		queue: make(chan func(), buffer),
		done:  make(chan struct{}),
	}
}

// Dispatch enqueues fn. It returns without running fn once the loop stopped.
func (l *Loop) Dispatch(fn func()) {
	select {
	case <-l.done:
	case l.queue <- fn:
	}
}

// Run executes queued functions until ctx is cancelled.
func (l *Loop) Run(ctx context.Context) error {
	defer l.once.Do(func() { close(l.done) })
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case fn := <-l.queue:
			fn()
		}
	}
}

// Do runs fn on the loop and waits for it to finish. It must not be called
// from the loop goroutine.
func (l *Loop) Do(fn func()) bool {
	finished := make(chan struct{})
	l.Dispatch(func() {
		defer close(finished)
		fn()
	})
	select {
	case <-finished:
		return true
	case <-l.done:
		return false
	}
}

package clock

import (
	"sync"
	"sync/atomic"
	"time"
)

// Cancel stops a scheduled task. Calling it more than once is safe.
type Cancel func()

// Scheduler runs fn repeatedly until the returned Cancel is invoked.
type Scheduler interface {
	Every(interval time.Duration, fn func()) Cancel
}

// Dispatcher runs fn on the goroutine that owns the state fn touches.
type Dispatcher func(fn func())

// TickerScheduler drives tasks from a time.Ticker and hands every tick to a
// Dispatcher, so callbacks run serialized on the owner's event loop.
type TickerScheduler struct {
	dispatch Dispatcher
}

func NewTickerScheduler(dispatch Dispatcher) *TickerScheduler {
	if dispatch == nil {
		dispatch = func(fn func()) { fn() }
	}
	return &TickerScheduler{dispatch: dispatch}
}

func (s *TickerScheduler) Every(interval time.Duration, fn func()) Cancel {
	if interval <= 0 {
		interval = time.Second
	}
	var cancelled atomic.Bool
	stopCh := make(chan struct{})

	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-stopCh:
				return
			case <-ticker.C:
				s.dispatch(func() {
					// A tick queued before Cancel must not reach the owner.
					if cancelled.Load() {
						return
					}
					fn()
				})
			}
		}
	}()

	var once sync.Once
	return func() {
		once.Do(func() {
			cancelled.Store(true)
			close(stopCh)
		})
	}
}

// ManualScheduler fires ticks only when Advance is called. It is meant for
// tests and must be driven from a single goroutine.
type ManualScheduler struct {
	tasks []*manualTask
}

type manualTask struct {
	fn        func()
	cancelled bool
}

func NewManualScheduler() *ManualScheduler {
	return &ManualScheduler{}
}

func (s *ManualScheduler) Every(_ time.Duration, fn func()) Cancel {
	task := &manualTask{fn: fn}
	s.tasks = append(s.tasks, task)
	return func() { task.cancelled = true }
}

// Advance fires n ticks on every task that is still scheduled.
func (s *ManualScheduler) Advance(n int) {
	for i := 0; i < n; i++ {
		snapshot := append([]*manualTask(nil), s.tasks...)
		for _, task := range snapshot {
			if !task.cancelled {
				task.fn()
			}
		}
		s.compact()
	}
}

// Active reports how many tasks are still scheduled.
func (s *ManualScheduler) Active() int {
	s.compact()
	return len(s.tasks)
}

func (s *ManualScheduler) compact() {
	kept := s.tasks[:0]
	for _, task := range s.tasks {
		if !task.cancelled {
			kept = append(kept, task)
		}
	}
	s.tasks = kept
}

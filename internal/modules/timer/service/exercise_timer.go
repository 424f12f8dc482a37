package service

import (
	"context"
	"log/slog"

	"focusdash/internal/modules/timer/domain"
	timerout "focusdash/internal/modules/timer/port/out"
	"focusdash/internal/platform/clock"
	"focusdash/internal/platform/id"
)

// ExerciseTimer is a stopwatch session with an activity and simulated
// readings that advance on every tick.
type ExerciseTimer struct {
	*SessionTimer
	rng      domain.Rand
	activity domain.Activity
	metrics  domain.Metrics
}

func NewExerciseTimer(scheduler clock.Scheduler, recorder timerout.ProgressRecorder, ids id.Generator, rng domain.Rand, logger *slog.Logger) *ExerciseTimer {
	t := &ExerciseTimer{
		SessionTimer: newSessionTimer(domain.NewStopwatch(), KindExercise, scheduler, recorder, ids, logger),
		rng:          rng,
	}
	t.afterTick = t.advanceMetrics
	return t
}

// Begin selects an activity and starts a fresh stopwatch. A session already
// in progress is reset (and reported) first.
func (t *ExerciseTimer) Begin(ctx context.Context, activity domain.Activity) {
	if t.engine.State() != domain.StateIdle {
		t.Reset(ctx)
	}
	t.activity = activity
	t.metrics = domain.Metrics{}
	t.Start()
}

// Reset reports the session like SessionTimer.Reset and clears the activity
// and readings.
func (t *ExerciseTimer) Reset(ctx context.Context) (domain.Report, bool) {
	report, ok := t.SessionTimer.Reset(ctx)
	t.activity = ""
	t.metrics = domain.Metrics{}
	return report, ok
}

func (t *ExerciseTimer) Activity() domain.Activity {
	return t.activity
}

func (t *ExerciseTimer) Metrics() domain.Metrics {
	return t.metrics
}

func (t *ExerciseTimer) advanceMetrics() {
	if t.activity == "" || t.rng == nil {
		return
	}
	t.metrics = t.metrics.Advance(t.rng)
}

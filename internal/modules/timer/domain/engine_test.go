package domain

import (
	"testing"
	"time"
)

func TestCountdownCompletesAfterDuration(t *testing.T) {
	t.Parallel()

	e := NewCountdown(time.Minute)
	if !e.Start() {
		t.Fatalf("start from idle rejected")
	}
	for i := 0; i < 59; i++ {
		e.Tick()
	}
	if e.State() != StateRunning || e.Remaining() != time.Second {
		t.Fatalf("after 59 ticks: state=%s remaining=%s", e.State(), e.Remaining())
	}
	e.Tick()
	if e.State() != StateCompleted {
		t.Fatalf("expected completed, got %s", e.State())
	}
	if e.Tick() {
		t.Fatalf("completed engine accepted a tick")
	}
	if e.Elapsed() != time.Minute {
		t.Fatalf("elapsed = %s", e.Elapsed())
	}

	report, ok := e.Reset()
	if !ok || report.Minutes != 1 || report.Elapsed != time.Minute {
		t.Fatalf("unexpected report %+v ok=%v", report, ok)
	}
	if e.State() != StateIdle || e.Elapsed() != 0 {
		t.Fatalf("reset left state=%s elapsed=%s", e.State(), e.Elapsed())
	}
}

func TestResetWithoutElapsedReportsNothing(t *testing.T) {
	t.Parallel()

	e := NewCountdown(0)
	if e.Duration() != DefaultFocusDuration {
		t.Fatalf("non-positive duration should fall back to default, got %s", e.Duration())
	}
	e.Start()
	if _, ok := e.Reset(); ok {
		t.Fatalf("zero-elapsed reset must not report")
	}
}

func TestPartialMinuteRoundsDown(t *testing.T) {
	t.Parallel()

	e := NewStopwatch()
	e.Start()
	for i := 0; i < 119; i++ {
		e.Tick()
	}
	report, ok := e.Reset()
	if !ok || report.Minutes != 1 {
		t.Fatalf("expected 1 whole minute, got %+v ok=%v", report, ok)
	}
}

func TestInvalidTransitionsAreNoOps(t *testing.T) {
	t.Parallel()

	e := NewCountdown(time.Minute)
	if e.Pause() {
		t.Fatalf("pause from idle accepted")
	}
	if e.Tick() {
		t.Fatalf("tick while idle accepted")
	}
	e.Start()
	if e.Start() {
		t.Fatalf("start while running accepted")
	}
	if e.SetDuration(time.Hour) {
		t.Fatalf("duration changed while running")
	}
	e.Tick()
	e.Pause()
	if e.Tick() {
		t.Fatalf("tick while paused accepted")
	}
	if e.Elapsed() != time.Second {
		t.Fatalf("elapsed = %s", e.Elapsed())
	}
	if !e.Start() {
		t.Fatalf("resume from paused rejected")
	}
}

func TestStopwatchNeverCompletes(t *testing.T) {
	t.Parallel()

	e := NewStopwatch()
	e.Start()
	for i := 0; i < 3600; i++ {
		e.Tick()
	}
	if e.State() != StateRunning || e.Remaining() != 0 {
		t.Fatalf("state=%s remaining=%s", e.State(), e.Remaining())
	}
	if e.SetDuration(time.Minute) {
		t.Fatalf("stopwatch accepted a duration")
	}
}

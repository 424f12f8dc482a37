package service

import (
	"context"
	"log/slog"
	"time"

	"focusdash/internal/modules/timer/domain"
	timerdto "focusdash/internal/modules/timer/dto"
	timerout "focusdash/internal/modules/timer/port/out"
	"focusdash/internal/platform/clock"
	"focusdash/internal/platform/id"
)

// Session kinds reported to the progress recorder.
const (
	KindFocus    = "focus"
	KindExercise = "exercise"
)

// SessionTimer drives an Engine from a Scheduler and reports finished
// sessions to a ProgressRecorder. It is not safe for concurrent use: every
// call, and every scheduled tick, must run on the owner's event loop.
type SessionTimer struct {
	engine    *domain.Engine
	kind      string
	scheduler clock.Scheduler
	recorder  timerout.ProgressRecorder
	ids       id.Generator
	logger    *slog.Logger

	cancel    clock.Cancel
	sessionID string
	closed    bool
	onTick    func(timerdto.Snapshot)
	afterTick func()
}

func NewFocusTimer(duration time.Duration, scheduler clock.Scheduler, recorder timerout.ProgressRecorder, ids id.Generator, logger *slog.Logger) *SessionTimer {
	return newSessionTimer(domain.NewCountdown(duration), KindFocus, scheduler, recorder, ids, logger)
}

func newSessionTimer(engine *domain.Engine, kind string, scheduler clock.Scheduler, recorder timerout.ProgressRecorder, ids id.Generator, logger *slog.Logger) *SessionTimer {
	if logger == nil {
		logger = slog.Default()
	}
	return &SessionTimer{
		engine:    engine,
		kind:      kind,
		scheduler: scheduler,
		recorder:  recorder,
		ids:       ids,
		logger:    logger.With(slog.String("timer", kind)),
	}
}

// OnTick registers a callback invoked after every accepted tick.
func (t *SessionTimer) OnTick(fn func(timerdto.Snapshot)) {
	t.onTick = fn
}

func (t *SessionTimer) Start() {
	if t.closed || !t.engine.Start() {
		return
	}
	if t.sessionID == "" {
		t.sessionID = t.ids.New()
	}
	t.stopTicking()
	t.cancel = t.scheduler.Every(domain.TickInterval, t.tick)
	t.logger.Debug("timer started", slog.String("session_id", t.sessionID))
}

func (t *SessionTimer) Pause() {
	if !t.engine.Pause() {
		return
	}
	t.stopTicking()
	t.logger.Debug("timer paused", slog.String("session_id", t.sessionID), slog.Duration("elapsed", t.engine.Elapsed()))
}

// Toggle pauses a running timer and starts any other.
func (t *SessionTimer) Toggle() {
	if t.engine.State() == domain.StateRunning {
		t.Pause()
		return
	}
	t.Start()
}

// SetDuration changes the countdown length while the timer is idle.
func (t *SessionTimer) SetDuration(duration time.Duration) bool {
	return t.engine.SetDuration(duration)
}

// Reset stops the timer and reports the consumed time, if any, before the
// engine is zeroed. Sessions shorter than a whole minute are returned but not
// forwarded to the recorder.
func (t *SessionTimer) Reset(ctx context.Context) (domain.Report, bool) {
	t.stopTicking()
	sessionID := t.sessionID
	t.sessionID = ""
	report, ok := t.engine.Reset()
	if !ok {
		return report, false
	}
	t.logger.Info("timer reset",
		slog.String("session_id", sessionID),
		slog.Duration("elapsed", report.Elapsed),
		slog.Int("minutes", report.Minutes),
	)
	if report.Minutes > 0 && t.recorder != nil {
		if err := t.recorder.RecordSession(ctx, t.kind, float64(report.Minutes)); err != nil {
			t.logger.Error("record session failed", slog.String("session_id", sessionID), slog.String("error", err.Error()))
		}
	}
	return report, true
}

// Close cancels any pending tick. A closed timer ignores Start.
func (t *SessionTimer) Close() {
	t.closed = true
	t.stopTicking()
}

func (t *SessionTimer) Snapshot() timerdto.Snapshot {
	return timerdto.Snapshot{
		SessionID: t.sessionID,
		Kind:      t.kind,
		Mode:      t.engine.Mode(),
		State:     t.engine.State(),
		Duration:  t.engine.Duration(),
		Elapsed:   t.engine.Elapsed(),
		Remaining: t.engine.Remaining(),
	}
}

func (t *SessionTimer) tick() {
	if t.closed || !t.engine.Tick() {
		return
	}
	if t.engine.State() == domain.StateCompleted {
		t.stopTicking()
		t.logger.Info("timer completed", slog.String("session_id", t.sessionID))
	}
	if t.afterTick != nil {
		t.afterTick()
	}
	if t.onTick != nil {
		t.onTick(t.Snapshot())
	}
}

func (t *SessionTimer) stopTicking() {
	if t.cancel != nil {
		t.cancel()
		t.cancel = nil
	}
}

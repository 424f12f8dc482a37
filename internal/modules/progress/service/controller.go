package service

import (
	"context"
	"errors"
	"log/slog"
	"sync"

	"focusdash/internal/modules/progress/domain"
	progressout "focusdash/internal/modules/progress/port/out"
	"focusdash/internal/platform/clock"
)

// Controller owns the process-wide progress state. RecordSession is the only
// way collaborators change it; every change is persisted before the call
// returns, and persistence failures never reach the caller.
type Controller struct {
	mu      sync.Mutex
	clock   clock.Clock
	repo    progressout.ProgressRepository
	metrics progressout.Metrics
	logger  *slog.Logger

	state domain.ProgressState
	today domain.TodaySnapshot
}

func NewController(clk clock.Clock, repo progressout.ProgressRepository, goals domain.WeeklyGoals, metrics progressout.Metrics, logger *slog.Logger) *Controller {
	if logger == nil {
		logger = slog.Default()
	}
	return &Controller{
		clock:   clk,
		repo:    repo,
		metrics: metrics,
		logger:  logger,
		state:   domain.NewState(goals),
		today:   domain.NewToday(domain.DateOf(clk.Now())),
	}
}

// Hydrate replaces the in-memory defaults with whatever the repository can
// still read. Unreadable records keep their defaults.
func (c *Controller) Hydrate(ctx context.Context) {
	loaded, err := c.repo.Load(ctx)
	if err != nil {
		c.logLoadError(err)
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	goals := c.state.WeeklyGoals
	c.state = loaded.State.Clone()
	c.state.Daily = domain.Window(c.state.Daily)
	if c.state.WeeklyGoals == (domain.WeeklyGoals{}) {
		c.state.WeeklyGoals = goals
	}
	c.state.CurrentStreak = domain.ComputeStreak(c.state.Daily)
	c.today = loaded.Today.ForDate(domain.DateOf(c.clock.Now()))
	c.logger.Debug("progress hydrated",
		slog.Int("daily_records", len(c.state.Daily)),
		slog.Int("streak", c.state.CurrentStreak),
		slog.String("today", string(c.today.Date)),
	)
}

// SetWeeklyGoals overrides the targets, for example from configuration.
func (c *Controller) SetWeeklyGoals(ctx context.Context, goals domain.WeeklyGoals) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.state.WeeklyGoals == goals {
		return
	}
	c.state.WeeklyGoals = goals
	c.saveLocked(ctx)
}

// RecordSession folds a finished session (or a completed task) into today's
// totals and the rolling history, then persists both records. Invalid events
// are logged and dropped.
func (c *Controller) RecordSession(ctx context.Context, kind domain.SessionKind, minutes float64) {
	event := domain.SessionEvent{Kind: kind, Minutes: minutes}
	if err := event.Validate(); err != nil {
		c.logger.Warn("session event rejected", slog.String("kind", string(kind)), slog.Float64("minutes", minutes), slog.String("error", err.Error()))
		return
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	current := domain.DateOf(c.clock.Now())
	if c.today.Date != current {
		c.logger.Info("day rollover", slog.String("from", string(c.today.Date)), slog.String("to", string(current)))
	}
	c.state, c.today = domain.Apply(c.state, c.today, event, current)
	if c.metrics != nil {
		c.metrics.SessionRecorded(string(kind), event.Amount())
	}
	c.logger.Info("session recorded",
		slog.String("kind", string(kind)),
		slog.Int("amount", event.Amount()),
		slog.String("date", string(current)),
		slog.Int("streak", c.state.CurrentStreak),
	)
	c.saveLocked(ctx)
}

// Snapshot returns copies of the current state and of today's totals as of
// the clock's current date.
func (c *Controller) Snapshot() (domain.ProgressState, domain.TodaySnapshot) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state.Clone(), c.today.ForDate(domain.DateOf(c.clock.Now()))
}

func (c *Controller) saveLocked(ctx context.Context) {
	if err := c.repo.Save(ctx, c.state, c.today); err != nil {
		if c.metrics != nil {
			c.metrics.StoreFailed("save")
		}
		c.logger.Error("save progress failed", slog.String("error", err.Error()))
	}
}

func (c *Controller) logLoadError(err error) {
	var loadErrs []*progressout.LoadError
	if joined, ok := err.(interface{ Unwrap() []error }); ok {
		for _, e := range joined.Unwrap() {
			var le *progressout.LoadError
			if errors.As(e, &le) {
				loadErrs = append(loadErrs, le)
			}
		}
	} else {
		var le *progressout.LoadError
		if errors.As(err, &le) {
			loadErrs = append(loadErrs, le)
		}
	}
	if len(loadErrs) == 0 {
		if c.metrics != nil {
			c.metrics.StoreFailed("load")
		}
		c.logger.Warn("load progress failed, using defaults", slog.String("error", err.Error()))
		return
	}
	for _, le := range loadErrs {
		if c.metrics != nil {
			c.metrics.LoadFellBack(le.Key)
		}
		c.logger.Warn("persisted record unreadable, using default", slog.String("key", le.Key), slog.String("error", le.Err.Error()))
	}
}

package bootstrap

import (
	"context"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/require"

	timerdomain "focusdash/internal/modules/timer/domain"
	"focusdash/internal/platform/clock"
	"focusdash/internal/platform/config"
)

func newTestApp(t *testing.T, fs afero.Fs, cfg config.Config) *App {
	t.Helper()
	app, err := NewWithOptions(context.Background(), cfg, Options{
		Fs:        fs,
		Clock:     clock.Fixed(time.Date(2026, 10, 19, 9, 30, 0, 0, time.UTC)),
		LogWriter: io.Discard,
	})
	require.NoError(t, err)
	t.Cleanup(func() { _ = app.Close() })
	return app
}

func TestTimersFeedProgress(t *testing.T) {
	t.Parallel()

	fs := afero.NewMemMapFs()
	app := newTestApp(t, fs, config.Default("/data"))
	ctx := context.Background()

	sched := clock.NewManualScheduler()
	focus := app.NewFocusTimer(sched, 1)
	focus.Start()
	sched.Advance(60)
	_, ok := focus.Reset(ctx)
	require.True(t, ok)

	exercise := app.NewExerciseTimer(sched)
	exercise.Begin(ctx, timerdomain.ActivityWalking)
	sched.Advance(150)
	exercise.Reset(ctx)

	_, err := app.ProgressCLI.CompleteTask(ctx)
	require.NoError(t, err)

	status, err := app.ProgressCLI.Status(ctx)
	require.NoError(t, err)
	require.Equal(t, "2026-10-19", status.Date)
	require.Equal(t, 1, status.Today.FocusMinutes)
	require.Equal(t, 2, status.Today.ExerciseMinutes)
	require.Equal(t, 1, status.Today.TasksCompleted)
	require.Equal(t, 1, status.CurrentStreak)

	raw, err := afero.ReadFile(fs, "/data/store/todayProgress.json")
	require.NoError(t, err)
	require.Contains(t, string(raw), `"exerciseMinutes":2`)
}

func TestConfiguredGoalsReachStatus(t *testing.T) {
	t.Parallel()

	cfg := config.Default("/data")
	cfg.WeeklyGoals = config.Goals{FocusMinutes: 70, ExerciseMinutes: 140, TasksCompleted: 7}
	app := newTestApp(t, afero.NewMemMapFs(), cfg)
	ctx := context.Background()

	_, err := app.ProgressCLI.Record(ctx, "focus", 5)
	require.NoError(t, err)
	status, err := app.ProgressCLI.Status(ctx)
	require.NoError(t, err)
	require.Equal(t, 70, status.WeeklyGoals.FocusMinutes)
	require.InDelta(t, 50.0, status.TodayRatios.FocusPercent, 1e-9)
}

func TestFocusTimerFallsBackToConfiguredLength(t *testing.T) {
	t.Parallel()

	cfg := config.Default("/data")
	cfg.FocusMinutes = 45
	app := newTestApp(t, afero.NewMemMapFs(), cfg)

	timer := app.NewFocusTimer(clock.NewManualScheduler(), 0)
	require.Equal(t, 45*time.Minute, timer.Snapshot().Duration)
}

func TestUnknownStoreIsRejected(t *testing.T) {
	t.Parallel()

	cfg := config.Default("/data")
	cfg.Store = "redis"
	_, err := NewWithOptions(context.Background(), cfg, Options{Fs: afero.NewMemMapFs(), LogWriter: io.Discard})
	require.Error(t, err)
	require.True(t, strings.Contains(err.Error(), "redis"))
}

func TestReportLandsInDataDir(t *testing.T) {
	t.Parallel()

	fs := afero.NewMemMapFs()
	app := newTestApp(t, fs, config.Default("/data"))

	out, err := app.ProgressCLI.Report(context.Background(), false)
	require.NoError(t, err)
	require.Equal(t, "/data/reports/2026-10-19-weekly-report.md", out.Path)
	exists, err := afero.Exists(fs, out.Path)
	require.NoError(t, err)
	require.True(t, exists)
}

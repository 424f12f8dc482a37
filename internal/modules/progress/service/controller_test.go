package service_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/spf13/afero"

	progressoutadapter "focusdash/internal/modules/progress/adapter/out"
	"focusdash/internal/modules/progress/domain"
	progressout "focusdash/internal/modules/progress/port/out"
	"focusdash/internal/modules/progress/service"
	"focusdash/internal/platform/logging"
)

type movableClock struct {
	now time.Time
}

func (c *movableClock) Now() time.Time { return c.now }

type fakeRepo struct {
	loaded  progressout.Loaded
	loadErr error
	saveErr error
	saves   int
	state   domain.ProgressState
	today   domain.TodaySnapshot
}

func (f *fakeRepo) Load(context.Context) (progressout.Loaded, error) {
	return f.loaded, f.loadErr
}

func (f *fakeRepo) Save(_ context.Context, state domain.ProgressState, today domain.TodaySnapshot) error {
	f.saves++
	f.state = state.Clone()
	f.today = today
	return f.saveErr
}

type fakeMetrics struct {
	recorded  map[string]int
	failures  map[string]int
	fallbacks []string
}

func newFakeMetrics() *fakeMetrics {
	return &fakeMetrics{recorded: map[string]int{}, failures: map[string]int{}}
}

func (m *fakeMetrics) SessionRecorded(kind string, amount int) { m.recorded[kind] += amount }
func (m *fakeMetrics) StoreFailed(op string)                    { m.failures[op]++ }
func (m *fakeMetrics) LoadFellBack(key string)                  { m.fallbacks = append(m.fallbacks, key) }

func TestRecordSessionPersistsEveryMutation(t *testing.T) {
	t.Parallel()
	clk := &movableClock{now: time.Date(2026, 10, 19, 9, 0, 0, 0, time.UTC)}
	repo := &fakeRepo{}
	metrics := newFakeMetrics()
	ctrl := service.NewController(clk, repo, domain.DefaultWeeklyGoals(), metrics, logging.Discard())
	ctx := context.Background()

	ctrl.RecordSession(ctx, domain.KindFocus, 25)
	ctrl.RecordSession(ctx, domain.KindExercise, 30)
	ctrl.RecordSession(ctx, domain.KindTask, 1)

	if repo.saves != 3 {
		t.Fatalf("expected one save per mutation, got %d", repo.saves)
	}
	state, today := ctrl.Snapshot()
	want := domain.Totals{FocusMinutes: 25, ExerciseMinutes: 30, TasksCompleted: 1}
	if diff := cmp.Diff(want, today.Totals); diff != "" {
		t.Fatalf("today mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff(state, repo.state); diff != "" {
		t.Fatalf("persisted state differs from memory (-mem +saved):\n%s", diff)
	}
	if metrics.recorded["focus"] != 25 || metrics.recorded["task"] != 1 {
		t.Fatalf("unexpected metrics: %v", metrics.recorded)
	}
}

func TestRecordSessionSwallowsSaveFailure(t *testing.T) {
	t.Parallel()
	clk := &movableClock{now: time.Date(2026, 10, 19, 9, 0, 0, 0, time.UTC)}
	repo := &fakeRepo{saveErr: errors.New("disk full")}
	metrics := newFakeMetrics()
	ctrl := service.NewController(clk, repo, domain.DefaultWeeklyGoals(), metrics, logging.Discard())

	ctrl.RecordSession(context.Background(), domain.KindFocus, 10)
	ctrl.RecordSession(context.Background(), domain.KindFocus, 5)

	_, today := ctrl.Snapshot()
	if today.FocusMinutes != 15 {
		t.Fatalf("in-memory state must stay correct, got %+v", today)
	}
	if metrics.failures["save"] != 2 {
		t.Fatalf("expected save failures to be counted, got %v", metrics.failures)
	}
}

func TestRecordSessionRejectsInvalidEvents(t *testing.T) {
	t.Parallel()
	clk := &movableClock{now: time.Date(2026, 10, 19, 9, 0, 0, 0, time.UTC)}
	repo := &fakeRepo{}
	ctrl := service.NewController(clk, repo, domain.DefaultWeeklyGoals(), nil, logging.Discard())

	ctrl.RecordSession(context.Background(), "music", 3)
	ctrl.RecordSession(context.Background(), domain.KindFocus, -4)
	if repo.saves != 0 {
		t.Fatalf("invalid events must not be persisted, got %d saves", repo.saves)
	}
}

func TestHydrateDiscardsStaleTodayAndRollsOver(t *testing.T) {
	t.Parallel()
	clk := &movableClock{now: time.Date(2026, 10, 19, 23, 59, 0, 0, time.UTC)}
	repo := &fakeRepo{loaded: progressout.Loaded{
		State: domain.ProgressState{
			Daily:       []domain.DailyRecord{{Date: "2026-10-18", Totals: domain.Totals{FocusMinutes: 50}}},
			WeeklyGoals: domain.DefaultWeeklyGoals(),
		},
		Today: domain.TodaySnapshot{Date: "2026-10-18", Totals: domain.Totals{FocusMinutes: 50}},
	}}
	ctrl := service.NewController(clk, repo, domain.DefaultWeeklyGoals(), nil, logging.Discard())
	ctrl.Hydrate(context.Background())

	state, today := ctrl.Snapshot()
	if today.Date != "2026-10-19" || today.Active() {
		t.Fatalf("stale snapshot must be replaced with zeros, got %+v", today)
	}
	if state.CurrentStreak != 1 {
		t.Fatalf("expected recomputed streak 1, got %d", state.CurrentStreak)
	}

	ctrl.RecordSession(context.Background(), domain.KindFocus, 5)
	clk.now = clk.now.Add(2 * time.Minute)
	ctrl.RecordSession(context.Background(), domain.KindFocus, 7)

	state, today = ctrl.Snapshot()
	if today.Date != "2026-10-20" || today.FocusMinutes != 7 {
		t.Fatalf("expected rollover to start from zero, got %+v", today)
	}
	want := []domain.DailyRecord{
		{Date: "2026-10-18", Totals: domain.Totals{FocusMinutes: 50}},
		{Date: "2026-10-19", Totals: domain.Totals{FocusMinutes: 5}},
		{Date: "2026-10-20", Totals: domain.Totals{FocusMinutes: 7}},
	}
	if diff := cmp.Diff(want, state.Daily); diff != "" {
		t.Fatalf("daily mismatch (-want +got):\n%s", diff)
	}
	if state.CurrentStreak != 3 {
		t.Fatalf("expected streak 3, got %d", state.CurrentStreak)
	}
}

func TestHydrateLogsAndCountsFallbacks(t *testing.T) {
	t.Parallel()
	clk := &movableClock{now: time.Date(2026, 10, 19, 9, 0, 0, 0, time.UTC)}
	repo := &fakeRepo{
		loaded: progressout.Loaded{State: domain.NewState(domain.DefaultWeeklyGoals()), Today: domain.NewToday("2026-10-19")},
		loadErr: errors.Join(
			&progressout.LoadError{Key: progressout.KeyUserProgress, Err: errors.New("bad json")},
			&progressout.LoadError{Key: progressout.KeyTodayProgress, Err: errors.New("bad json")},
		),
	}
	metrics := newFakeMetrics()
	ctrl := service.NewController(clk, repo, domain.DefaultWeeklyGoals(), metrics, logging.Discard())
	ctrl.Hydrate(context.Background())

	if diff := cmp.Diff([]string{progressout.KeyUserProgress, progressout.KeyTodayProgress}, metrics.fallbacks); diff != "" {
		t.Fatalf("fallbacks mismatch (-want +got):\n%s", diff)
	}
	state, _ := ctrl.Snapshot()
	if state.WeeklyGoals != domain.DefaultWeeklyGoals() {
		t.Fatalf("expected default goals, got %+v", state.WeeklyGoals)
	}
}

func TestCorruptUserProgressOnDiskYieldsDefaults(t *testing.T) {
	t.Parallel()
	clk := &movableClock{now: time.Date(2026, 10, 19, 9, 0, 0, 0, time.UTC)}
	store := progressoutadapter.NewFileKVStore(afero.NewMemMapFs(), "/data")
	if err := store.Set(context.Background(), progressout.KeyUserProgress, "{{{"); err != nil {
		t.Fatalf("seed store: %v", err)
	}
	repo := progressoutadapter.NewKVProgressRepository(store, clk, domain.DefaultWeeklyGoals())
	ctrl := service.NewController(clk, repo, domain.DefaultWeeklyGoals(), nil, logging.Discard())
	ctrl.Hydrate(context.Background())

	state, _ := ctrl.Snapshot()
	if diff := cmp.Diff(domain.NewState(domain.DefaultWeeklyGoals()), state); diff != "" {
		t.Fatalf("expected default state (-want +got):\n%s", diff)
	}
}

func TestSetWeeklyGoalsPersistsOnlyOnChange(t *testing.T) {
	t.Parallel()
	clk := &movableClock{now: time.Date(2026, 10, 19, 9, 0, 0, 0, time.UTC)}
	repo := &fakeRepo{}
	ctrl := service.NewController(clk, repo, domain.DefaultWeeklyGoals(), nil, logging.Discard())

	ctrl.SetWeeklyGoals(context.Background(), domain.DefaultWeeklyGoals())
	if repo.saves != 0 {
		t.Fatalf("unchanged goals must not be saved")
	}
	goals := domain.WeeklyGoals{FocusMinutes: 300, ExerciseMinutes: 120, TasksCompleted: 20}
	ctrl.SetWeeklyGoals(context.Background(), goals)
	if repo.saves != 1 || repo.state.WeeklyGoals != goals {
		t.Fatalf("expected goals to be persisted, got %d saves %+v", repo.saves, repo.state.WeeklyGoals)
	}
}

package out

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"focusdash/internal/modules/progress/domain"
	progressout "focusdash/internal/modules/progress/port/out"
	"focusdash/internal/platform/clock"
	apperrors "focusdash/internal/platform/errors"
)

type todayRecord struct {
	Date     domain.Date   `json:"date"`
	Progress domain.Totals `json:"progress"`
}

// KVProgressRepository stores the two progress records as independent JSON
// values in a KeyValueStore.
type KVProgressRepository struct {
	store    progressout.KeyValueStore
	clock    clock.Clock
	defaults domain.WeeklyGoals
}

func NewKVProgressRepository(store progressout.KeyValueStore, clk clock.Clock, defaults domain.WeeklyGoals) progressout.ProgressRepository {
	return &KVProgressRepository{store: store, clock: clk, defaults: defaults}
}

func (r *KVProgressRepository) Load(ctx context.Context) (progressout.Loaded, error) {
	current := domain.DateOf(r.clock.Now())
	loaded := progressout.Loaded{
		State: domain.NewState(r.defaults),
		Today: domain.NewToday(current),
	}
	var errs []error

	state, err := r.loadState(ctx)
	switch {
	case err == nil:
		loaded.State = state
	case !errors.Is(err, apperrors.ErrNotFound):
		errs = append(errs, &progressout.LoadError{Key: progressout.KeyUserProgress, Err: err})
	}

	today, err := r.loadToday(ctx)
	switch {
	case err == nil:
		loaded.Today = today.ForDate(current)
	case !errors.Is(err, apperrors.ErrNotFound):
		errs = append(errs, &progressout.LoadError{Key: progressout.KeyTodayProgress, Err: err})
	}

	return loaded, errors.Join(errs...)
}

func (r *KVProgressRepository) loadState(ctx context.Context) (domain.ProgressState, error) {
	raw, err := r.store.Get(ctx, progressout.KeyUserProgress)
	if err != nil {
		return domain.ProgressState{}, err
	}
	state := domain.ProgressState{}
	if err := json.Unmarshal([]byte(raw), &state); err != nil {
		return domain.ProgressState{}, fmt.Errorf("decode progress state: %w", err)
	}
	if err := state.Validate(); err != nil {
		return domain.ProgressState{}, err
	}
	if state.Daily == nil {
		state.Daily = []domain.DailyRecord{}
	}
	if state.WeeklyGoals == (domain.WeeklyGoals{}) {
		state.WeeklyGoals = r.defaults
	}
	return state, nil
}

func (r *KVProgressRepository) loadToday(ctx context.Context) (domain.TodaySnapshot, error) {
	raw, err := r.store.Get(ctx, progressout.KeyTodayProgress)
	if err != nil {
		return domain.TodaySnapshot{}, err
	}
	record := todayRecord{}
	if err := json.Unmarshal([]byte(raw), &record); err != nil {
		return domain.TodaySnapshot{}, fmt.Errorf("decode today progress: %w", err)
	}
	date, err := domain.ParseDate(string(record.Date))
	if err != nil {
		return domain.TodaySnapshot{}, err
	}
	if record.Progress.FocusMinutes < 0 || record.Progress.ExerciseMinutes < 0 || record.Progress.TasksCompleted < 0 {
		return domain.TodaySnapshot{}, fmt.Errorf("%w: negative today totals", apperrors.ErrInvalidInput)
	}
	return domain.TodaySnapshot{Date: date, Totals: record.Progress}, nil
}

// Save writes both records. A failure on the first key does not prevent the
// second write; all failures are returned together.
func (r *KVProgressRepository) Save(ctx context.Context, state domain.ProgressState, today domain.TodaySnapshot) error {
	var errs []error

	if state.Daily == nil {
		state.Daily = []domain.DailyRecord{}
	}
	payload, err := json.Marshal(state)
	if err != nil {
		errs = append(errs, fmt.Errorf("encode progress state: %w", err))
	} else if err := r.store.Set(ctx, progressout.KeyUserProgress, string(payload)); err != nil {
		errs = append(errs, fmt.Errorf("save %s: %w", progressout.KeyUserProgress, err))
	}

	payload, err = json.Marshal(todayRecord{Date: today.Date, Progress: today.Totals})
	if err != nil {
		errs = append(errs, fmt.Errorf("encode today progress: %w", err))
	} else if err := r.store.Set(ctx, progressout.KeyTodayProgress, string(payload)); err != nil {
		errs = append(errs, fmt.Errorf("save %s: %w", progressout.KeyTodayProgress, err))
	}

	return errors.Join(errs...)
}

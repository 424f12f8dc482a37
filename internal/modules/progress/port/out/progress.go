package out

import (
	"context"
	"fmt"

	"focusdash/internal/modules/progress/domain"
)

// Durable record keys.
const (
	KeyUserProgress  = "userProgress"
	KeyTodayProgress = "todayProgress"
)

// KeyValueStore is the host's persistent string-keyed storage. Get reports
// apperrors.ErrNotFound for a key that was never written.
type KeyValueStore interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string) error
	Close() error
}

type Loaded struct {
	State domain.ProgressState
	Today domain.TodaySnapshot
}

// ProgressRepository persists the rolling history and today's snapshot. Load
// always returns usable values: records that cannot be read are replaced by
// their defaults and reported through the returned error.
type ProgressRepository interface {
	Load(ctx context.Context) (Loaded, error)
	Save(ctx context.Context, state domain.ProgressState, today domain.TodaySnapshot) error
}

// LoadError describes one record that was replaced by its default on load.
type LoadError struct {
	Key string
	Err error
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("load %s: %v", e.Key, e.Err)
}

func (e *LoadError) Unwrap() error {
	return e.Err
}

// Metrics receives counters from the progress controller.
type Metrics interface {
	SessionRecorded(kind string, amount int)
	StoreFailed(op string)
	LoadFellBack(key string)
}

// ReportWriter stores a rendered weekly report and returns where it went.
type ReportWriter interface {
	Write(ctx context.Context, date domain.Date, content string) (string, error)
}

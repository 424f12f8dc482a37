package out

import "context"

// ProgressRecorder receives finished sessions. Kinds are "focus", "exercise"
// and "task".
type ProgressRecorder interface {
	RecordSession(ctx context.Context, kind string, minutes float64) error
}

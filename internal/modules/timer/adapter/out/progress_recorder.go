package out

import (
	"context"

	progressdto "focusdash/internal/modules/progress/dto"
	progressin "focusdash/internal/modules/progress/port/in"
	timerout "focusdash/internal/modules/timer/port/out"
)

type ProgressUsecaseRecorder struct {
	progress progressin.Usecase
}

func NewProgressUsecaseRecorder(progress progressin.Usecase) timerout.ProgressRecorder {
	return &ProgressUsecaseRecorder{progress: progress}
}

func (r *ProgressUsecaseRecorder) RecordSession(ctx context.Context, kind string, minutes float64) error {
	_, err := r.progress.RecordSession(ctx, progressdto.RecordInput{Kind: kind, Minutes: minutes})
	return err
}

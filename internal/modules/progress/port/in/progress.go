package in

import (
	"context"

	"focusdash/internal/modules/progress/dto"
)

type Usecase interface {
	RecordSession(ctx context.Context, input dto.RecordInput) (dto.RecordOutput, error)
	Status(ctx context.Context) (dto.StatusOutput, error)
	Report(ctx context.Context, input dto.ReportInput) (dto.ReportOutput, error)
}

package in

import (
	"context"

	progressdto "focusdash/internal/modules/progress/dto"
	progressin "focusdash/internal/modules/progress/port/in"
)

type CLIHandler struct {
	usecase progressin.Usecase
}

func NewCLIHandler(usecase progressin.Usecase) CLIHandler {
	return CLIHandler{usecase: usecase}
}

func (h CLIHandler) Record(ctx context.Context, kind string, minutes float64) (progressdto.RecordOutput, error) {
	return h.usecase.RecordSession(ctx, progressdto.RecordInput{Kind: kind, Minutes: minutes})
}

func (h CLIHandler) CompleteTask(ctx context.Context) (progressdto.RecordOutput, error) {
	return h.usecase.RecordSession(ctx, progressdto.RecordInput{Kind: "task", Minutes: 1})
}

func (h CLIHandler) Status(ctx context.Context) (progressdto.StatusOutput, error) {
	return h.usecase.Status(ctx)
}

func (h CLIHandler) Report(ctx context.Context, stdout bool) (progressdto.ReportOutput, error) {
	return h.usecase.Report(ctx, progressdto.ReportInput{Stdout: stdout})
}

package usecase

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"focusdash/internal/modules/progress/domain"
	progressdto "focusdash/internal/modules/progress/dto"
	progressin "focusdash/internal/modules/progress/port/in"
	progressout "focusdash/internal/modules/progress/port/out"
	"focusdash/internal/modules/progress/service"
	apperrors "focusdash/internal/platform/errors"
	"focusdash/internal/platform/markdown"
)

type Interactor struct {
	ctrl    *service.Controller
	reports progressout.ReportWriter
}

func NewInteractor(ctrl *service.Controller, reports progressout.ReportWriter) progressin.Usecase {
	return &Interactor{ctrl: ctrl, reports: reports}
}

func (i *Interactor) RecordSession(ctx context.Context, input progressdto.RecordInput) (progressdto.RecordOutput, error) {
	kind, err := domain.ParseKind(input.Kind)
	if err != nil {
		return progressdto.RecordOutput{}, err
	}
	event := domain.SessionEvent{Kind: kind, Minutes: input.Minutes}
	if err := event.Validate(); err != nil {
		return progressdto.RecordOutput{}, err
	}

	i.ctrl.RecordSession(ctx, kind, input.Minutes)

	state, today := i.ctrl.Snapshot()
	return progressdto.RecordOutput{
		Date:          string(today.Date),
		Today:         totalsOutput(today.Totals),
		CurrentStreak: state.CurrentStreak,
	}, nil
}

func (i *Interactor) Status(_ context.Context) (progressdto.StatusOutput, error) {
	state, today := i.ctrl.Snapshot()
	goals := state.WeeklyGoals

	daily := make([]progressdto.DailyOutput, 0, len(state.Daily))
	for _, record := range state.Daily {
		daily = append(daily, progressdto.DailyOutput{Date: string(record.Date), TotalsOutput: totalsOutput(record.Totals)})
	}
	bars := domain.ActivityChart(state.Daily, today.Date)
	chart := make([]progressdto.BarOutput, 0, len(bars))
	for _, bar := range bars {
		chart = append(chart, progressdto.BarOutput{
			Date:    string(bar.Date),
			Weekday: bar.Date.Time().Format("Mon"),
			Height:  bar.Height,
			Level:   bar.Level,
			IsToday: bar.IsToday,
		})
	}

	return progressdto.StatusOutput{
		Date:  string(today.Date),
		Today: totalsOutput(today.Totals),
		TodayRatios: progressdto.RatioOutput{
			FocusPercent:    domain.GoalRatio(today.FocusMinutes, goals.FocusMinutes),
			ExercisePercent: domain.GoalRatio(today.ExerciseMinutes, goals.ExerciseMinutes),
			TasksPercent:    domain.GoalRatio(today.TasksCompleted, goals.TasksCompleted),
		},
		WeeklyGoals: progressdto.TotalsOutput{
			FocusMinutes:    goals.FocusMinutes,
			ExerciseMinutes: goals.ExerciseMinutes,
			TasksCompleted:  goals.TasksCompleted,
		},
		WeeklyTotals:  totalsOutput(domain.WeeklyTotals(state.Daily)),
		CurrentStreak: state.CurrentStreak,
		Daily:         daily,
		Chart:         chart,
	}, nil
}

func (i *Interactor) Report(ctx context.Context, input progressdto.ReportInput) (progressdto.ReportOutput, error) {
	state, today := i.ctrl.Snapshot()
	content, err := renderReport(state, today)
	if err != nil {
		return progressdto.ReportOutput{}, err
	}
	if input.Stdout {
		return progressdto.ReportOutput{Content: content}, nil
	}
	if i.reports == nil {
		return progressdto.ReportOutput{}, fmt.Errorf("%w: report writer is not configured", apperrors.ErrInvalidInput)
	}
	path, err := i.reports.Write(ctx, today.Date, content)
	if err != nil {
		return progressdto.ReportOutput{}, err
	}
	return progressdto.ReportOutput{Path: path, Content: content}, nil
}

func renderReport(state domain.ProgressState, today domain.TodaySnapshot) (string, error) {
	weekly := domain.WeeklyTotals(state.Daily)
	goals := state.WeeklyGoals
	meta := map[string]any{
		"date":           string(today.Date),
		"current_streak": state.CurrentStreak,
		"weekly_totals": map[string]any{
			"focus_minutes":    weekly.FocusMinutes,
			"exercise_minutes": weekly.ExerciseMinutes,
			"tasks_completed":  weekly.TasksCompleted,
		},
		"weekly_goals": map[string]any{
			"focus_minutes":    goals.FocusMinutes,
			"exercise_minutes": goals.ExerciseMinutes,
			"tasks_completed":  goals.TasksCompleted,
		},
	}

	rows := make([][]string, 0, len(state.Daily))
	for _, record := range state.Daily {
		rows = append(rows, []string{
			string(record.Date),
			strconv.Itoa(record.FocusMinutes),
			strconv.Itoa(record.ExerciseMinutes),
			strconv.Itoa(record.TasksCompleted),
		})
	}

	var body strings.Builder
	fmt.Fprintf(&body, "# Weekly report %s\n\n", today.Date)
	fmt.Fprintf(&body, "- Streak: %d day(s)\n", state.CurrentStreak)
	fmt.Fprintf(&body, "- Focus: %d / %d min\n", weekly.FocusMinutes, goals.FocusMinutes)
	fmt.Fprintf(&body, "- Exercise: %d / %d min\n", weekly.ExerciseMinutes, goals.ExerciseMinutes)
	fmt.Fprintf(&body, "- Tasks: %d / %d\n\n", weekly.TasksCompleted, goals.TasksCompleted)
	body.WriteString("## Daily\n\n")
	if len(rows) == 0 {
		body.WriteString("No activity recorded yet.\n")
	} else {
		body.WriteString(markdown.Table([]string{"Date", "Focus min", "Exercise min", "Tasks"}, rows))
	}
	return markdown.RenderFrontmatter(meta, body.String())
}

func totalsOutput(t domain.Totals) progressdto.TotalsOutput {
	return progressdto.TotalsOutput{
		FocusMinutes:    t.FocusMinutes,
		ExerciseMinutes: t.ExerciseMinutes,
		TasksCompleted:  t.TasksCompleted,
	}
}

package domain

// Activity bar levels used by the 7-day chart.
const (
	LevelNone   = "none"
	LevelLow    = "low"
	LevelMedium = "medium"
	LevelHigh   = "high"
)

const (
	taskActivityWeight = 10
	maxActivity        = 100
)

// GoalRatio is today's progress toward a daily share (weekly / 7) of a weekly
// goal, as a percentage capped at 100.
func GoalRatio(current, weeklyGoal int) float64 {
	if weeklyGoal <= 0 {
		return 0
	}
	pct := float64(current) * 7 * 100 / float64(weeklyGoal)
	if pct > 100 {
		return 100
	}
	return pct
}

// WeeklyTotals sums every record in the rolling window.
func WeeklyTotals(daily []DailyRecord) Totals {
	out := Totals{}
	for _, day := range daily {
		out.FocusMinutes += day.FocusMinutes
		out.ExerciseMinutes += day.ExerciseMinutes
		out.TasksCompleted += day.TasksCompleted
	}
	return out
}

type ActivityBar struct {
	Date    Date
	Height  float64
	Level   string
	IsToday bool
}

// ActivityChart lays out one bar per calendar day for the WindowSize days
// ending at today. A task weighs as much as ten minutes of activity.
func ActivityChart(daily []DailyRecord, today Date) []ActivityBar {
	byDate := make(map[Date]Totals, len(daily))
	for _, day := range daily {
		byDate[day.Date] = day.Totals
	}
	bars := make([]ActivityBar, 0, WindowSize)
	for i := WindowSize - 1; i >= 0; i-- {
		date := today.AddDays(-i)
		totals := byDate[date]
		activity := totals.FocusMinutes + totals.ExerciseMinutes + totals.TasksCompleted*taskActivityWeight
		height := float64(activity) / maxActivity * 100
		if height > 100 {
			height = 100
		}
		bars = append(bars, ActivityBar{
			Date:    date,
			Height:  height,
			Level:   level(height),
			IsToday: date == today,
		})
	}
	return bars
}

func level(height float64) string {
	switch {
	case height > 70:
		return LevelHigh
	case height > 40:
		return LevelMedium
	case height > 0:
		return LevelLow
	}
	return LevelNone
}

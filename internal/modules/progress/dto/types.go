package dto

type RecordInput struct {
	Kind    string
	Minutes float64
}

type TotalsOutput struct {
	FocusMinutes    int `json:"focusMinutes"`
	ExerciseMinutes int `json:"exerciseMinutes"`
	TasksCompleted  int `json:"tasksCompleted"`
}

type RecordOutput struct {
	Date          string       `json:"date"`
	Today         TotalsOutput `json:"today"`
	CurrentStreak int          `json:"currentStreak"`
}

type DailyOutput struct {
	Date string `json:"date"`
	TotalsOutput
}

type RatioOutput struct {
	FocusPercent    float64 `json:"focusPercent"`
	ExercisePercent float64 `json:"exercisePercent"`
	TasksPercent    float64 `json:"tasksPercent"`
}

type BarOutput struct {
	Date    string  `json:"date"`
	Weekday string  `json:"weekday"`
	Height  float64 `json:"height"`
	Level   string  `json:"level"`
	IsToday bool    `json:"isToday"`
}

type StatusOutput struct {
	Date          string        `json:"date"`
	Today         TotalsOutput  `json:"today"`
	TodayRatios   RatioOutput   `json:"todayRatios"`
	WeeklyGoals   TotalsOutput  `json:"weeklyGoals"`
	WeeklyTotals  TotalsOutput  `json:"weeklyTotals"`
	CurrentStreak int           `json:"currentStreak"`
	Daily         []DailyOutput `json:"daily"`
	Chart         []BarOutput   `json:"chart"`
}

type ReportInput struct {
	// Stdout renders the report without writing it to the data dir.
	Stdout bool
}

type ReportOutput struct {
	Path    string
	Content string
}

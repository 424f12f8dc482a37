package domain

import "testing"

func TestComputeStreak(t *testing.T) {
	t.Parallel()
	cases := []struct {
		name  string
		daily []DailyRecord
		want  int
	}{
		{
			name: "inactive yesterday stops the walk",
			daily: []DailyRecord{
				{Date: day0.AddDays(-2), Totals: Totals{FocusMinutes: 10}},
				{Date: day0.AddDays(-1)},
				{Date: day0, Totals: Totals{FocusMinutes: 5}},
			},
			want: 1,
		},
		{
			name: "any metric counts as activity",
			daily: []DailyRecord{
				{Date: day0.AddDays(-1), Totals: Totals{ExerciseMinutes: 5}},
				{Date: day0, Totals: Totals{TasksCompleted: 2}},
			},
			want: 2,
		},
		{
			name: "missing date is not materialized",
			daily: []DailyRecord{
				{Date: day0.AddDays(-3), Totals: Totals{FocusMinutes: 1}},
				{Date: day0, Totals: Totals{FocusMinutes: 1}},
			},
			want: 2,
		},
		{
			name: "unsorted input",
			daily: []DailyRecord{
				{Date: day0, Totals: Totals{FocusMinutes: 1}},
				{Date: day0.AddDays(-2)},
				{Date: day0.AddDays(-1), Totals: Totals{TasksCompleted: 1}},
			},
			want: 2,
		},
		{
			name: "most recent inactive",
			daily: []DailyRecord{
				{Date: day0.AddDays(-1), Totals: Totals{FocusMinutes: 30}},
				{Date: day0},
			},
			want: 0,
		},
		{name: "empty", want: 0},
	}
	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			if got := ComputeStreak(tc.daily); got != tc.want {
				t.Fatalf("expected streak %d, got %d", tc.want, got)
			}
		})
	}
}

func TestComputeStreakDoesNotReorderInput(t *testing.T) {
	t.Parallel()
	daily := []DailyRecord{
		{Date: day0.AddDays(-1), Totals: Totals{FocusMinutes: 1}},
		{Date: day0, Totals: Totals{FocusMinutes: 1}},
	}
	ComputeStreak(daily)
	if daily[0].Date != day0.AddDays(-1) {
		t.Fatalf("input reordered: %+v", daily)
	}
}

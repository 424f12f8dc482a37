package domain

import "sort"

// Apply folds one session event into today's snapshot and the rolling daily
// history. It does not mutate its inputs. Each call is one real increment:
// applying the same event twice counts it twice.
func Apply(state ProgressState, today TodaySnapshot, event SessionEvent, current Date) (ProgressState, TodaySnapshot) {
	today = today.ForDate(current)

	switch event.Kind {
	case KindFocus:
		today.FocusMinutes += event.Amount()
	case KindExercise:
		today.ExerciseMinutes += event.Amount()
	case KindTask:
		today.TasksCompleted += event.Amount()
	}

	next := state.Clone()
	next.Daily = upsert(Window(next.Daily), DailyRecord{Date: current, Totals: today.Totals})
	next.Daily = Window(next.Daily)
	next.CurrentStreak = ComputeStreak(next.Daily)
	return next, today
}

func upsert(daily []DailyRecord, record DailyRecord) []DailyRecord {
	for i := range daily {
		if daily[i].Date == record.Date {
			daily[i] = record
			return daily
		}
	}
	return append(daily, record)
}

// Window orders records by date, keeps the last record seen for a repeated
// date and drops everything older than the most recent WindowSize dates.
func Window(daily []DailyRecord) []DailyRecord {
	byDate := make(map[Date]DailyRecord, len(daily))
	for _, record := range daily {
		byDate[record.Date] = record
	}
	out := make([]DailyRecord, 0, len(byDate))
	for _, record := range byDate {
		out = append(out, record)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date < out[j].Date })
	if len(out) > WindowSize {
		out = out[len(out)-WindowSize:]
	}
	return out
}

package domain

import "sort"

// ComputeStreak counts consecutive active records walking back from the most
// recent one. Only a recorded inactive day ends the walk; a date with no
// record at all is skipped over, so a streak may span a missing day.
func ComputeStreak(daily []DailyRecord) int {
	sorted := append([]DailyRecord(nil), daily...)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].Date > sorted[j].Date })

	streak := 0
	for _, day := range sorted {
		if !day.Active() {
			break
		}
		streak++
	}
	return streak
}

package domain

import (
	"fmt"
	"math"
	"strings"
	"time"

	apperrors "focusdash/internal/platform/errors"
)

const (
	DateLayout = "2006-01-02"

	// WindowSize is the number of daily records kept in the rolling history.
	WindowSize = 7
)

// Date is a calendar date in YYYY-MM-DD form. Lexical order is chronological.
type Date string

func DateOf(t time.Time) Date {
	return Date(t.UTC().Format(DateLayout))
}

func ParseDate(raw string) (Date, error) {
	t, err := time.Parse(DateLayout, strings.TrimSpace(raw))
	if err != nil {
		return "", fmt.Errorf("parse date %q: %w", raw, err)
	}
	return DateOf(t), nil
}

func (d Date) Time() time.Time {
	t, _ := time.Parse(DateLayout, string(d))
	return t
}

func (d Date) AddDays(n int) Date {
	return DateOf(d.Time().AddDate(0, 0, n))
}

type SessionKind string

const (
	KindFocus    SessionKind = "focus"
	KindExercise SessionKind = "exercise"
	KindTask     SessionKind = "task"
)

func ParseKind(raw string) (SessionKind, error) {
	switch kind := SessionKind(strings.ToLower(strings.TrimSpace(raw))); kind {
	case KindFocus, KindExercise, KindTask:
		return kind, nil
	}
	return "", fmt.Errorf("%w: %q", apperrors.ErrUnknownKind, raw)
}

// Totals holds the three tracked counters for one day.
type Totals struct {
	FocusMinutes    int `json:"focusMinutes"`
	ExerciseMinutes int `json:"exerciseMinutes"`
	TasksCompleted  int `json:"tasksCompleted"`
}

func (t Totals) Active() bool {
	return t.FocusMinutes > 0 || t.ExerciseMinutes > 0 || t.TasksCompleted > 0
}

func (t Totals) valid() bool {
	return t.FocusMinutes >= 0 && t.ExerciseMinutes >= 0 && t.TasksCompleted >= 0
}

type DailyRecord struct {
	Date Date `json:"date"`
	Totals
}

type TodaySnapshot struct {
	Date Date
	Totals
}

func NewToday(date Date) TodaySnapshot {
	return TodaySnapshot{Date: date}
}

// ForDate returns the snapshot when it belongs to date, and an empty one
// otherwise. Stale totals are never carried over.
func (t TodaySnapshot) ForDate(date Date) TodaySnapshot {
	if t.Date != date {
		return NewToday(date)
	}
	return t
}

type WeeklyGoals struct {
	FocusMinutes    int `json:"focusMinutes"`
	ExerciseMinutes int `json:"exerciseMinutes"`
	TasksCompleted  int `json:"tasksCompleted"`
}

func DefaultWeeklyGoals() WeeklyGoals {
	return WeeklyGoals{FocusMinutes: 150, ExerciseMinutes: 300, TasksCompleted: 10}
}

type ProgressState struct {
	Daily         []DailyRecord `json:"daily"`
	WeeklyGoals   WeeklyGoals   `json:"weeklyGoals"`
	CurrentStreak int           `json:"currentStreak"`
}

func NewState(goals WeeklyGoals) ProgressState {
	return ProgressState{Daily: []DailyRecord{}, WeeklyGoals: goals}
}

// Clone returns a copy that shares no memory with s.
func (s ProgressState) Clone() ProgressState {
	out := s
	out.Daily = append([]DailyRecord{}, s.Daily...)
	return out
}

// Validate checks the invariants a persisted state must satisfy before it is
// trusted: valid dates, non-negative counters.
func (s ProgressState) Validate() error {
	for _, record := range s.Daily {
		if _, err := ParseDate(string(record.Date)); err != nil {
			return fmt.Errorf("%w: daily record: %v", apperrors.ErrInvalidInput, err)
		}
		if !record.valid() {
			return fmt.Errorf("%w: negative totals on %s", apperrors.ErrInvalidInput, record.Date)
		}
	}
	if s.CurrentStreak < 0 {
		return fmt.Errorf("%w: negative streak", apperrors.ErrInvalidInput)
	}
	return nil
}

type SessionEvent struct {
	Kind    SessionKind
	Minutes float64
}

func (e SessionEvent) Validate() error {
	if _, err := ParseKind(string(e.Kind)); err != nil {
		return err
	}
	if e.Minutes < 0 || math.IsNaN(e.Minutes) || math.IsInf(e.Minutes, 0) {
		return fmt.Errorf("%w: minutes must be a non-negative number", apperrors.ErrInvalidInput)
	}
	return nil
}

// Amount is the integer increment the event contributes: whole minutes for
// timed sessions, one for a completed task.
func (e SessionEvent) Amount() int {
	if e.Kind == KindTask {
		return 1
	}
	return int(math.Floor(e.Minutes))
}

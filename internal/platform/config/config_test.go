package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestNewWithoutFileUsesDefaults(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	cfg, err := New(dir, "")
	if err != nil {
		t.Fatalf("new config: %v", err)
	}
	if cfg.Store != StoreFile || cfg.FocusMinutes != 25 {
		t.Fatalf("unexpected defaults: %+v", cfg)
	}
	if cfg.WeeklyGoals != (Goals{FocusMinutes: 150, ExerciseMinutes: 300, TasksCompleted: 10}) {
		t.Fatalf("unexpected default goals: %+v", cfg.WeeklyGoals)
	}
	if cfg.DBPath != filepath.Join(dir, "focusdash.db") {
		t.Fatalf("unexpected db path %s", cfg.DBPath)
	}
}

func TestNewOverlaysYAMLAndIgnoresInvalidValues(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	content := `store: SQLite
log_level: DEBUG
focus_minutes: 50
weekly_goals:
  focus_minutes: 200
  exercise_minutes: -5
  tasks_completed: 14
`
	if err := os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	cfg, err := New(dir, "")
	if err != nil {
		t.Fatalf("new config: %v", err)
	}
	if cfg.Store != StoreSQLite || cfg.LogLevel != "debug" || cfg.FocusMinutes != 50 {
		t.Fatalf("unexpected overlay: %+v", cfg)
	}
	if cfg.WeeklyGoals != (Goals{FocusMinutes: 200, ExerciseMinutes: 300, TasksCompleted: 14}) {
		t.Fatalf("unexpected goals: %+v", cfg.WeeklyGoals)
	}
}

func TestNewRejectsEmptyDataDirAndBadYAML(t *testing.T) {
	t.Parallel()
	if _, err := New(" ", ""); err == nil {
		t.Fatalf("expected error for empty data dir")
	}
	dir := t.TempDir()
	path := filepath.Join(dir, "custom.yaml")
	if err := os.WriteFile(path, []byte("store: [unterminated"), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	cfg, err := New(dir, path)
	if err == nil {
		t.Fatalf("expected parse error")
	}
	if cfg.Store != StoreFile {
		t.Fatalf("expected defaults alongside parse error, got %+v", cfg)
	}
}

package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

const (
	StoreFile   = "file"
	StoreSQLite = "sqlite"

	configFileName = "config.yaml"
)

// Goals mirrors the weekly targets shown on the progress panel.
type Goals struct {
	FocusMinutes    int
	ExerciseMinutes int
	TasksCompleted  int
}

type Config struct {
	DataDir      string
	DBPath       string
	LogPath      string
	ConfigPath   string
	Store        string
	LogLevel     string
	FocusMinutes int
	WeeklyGoals  Goals
}

type yamlConfig struct {
	Store        string `yaml:"store"`
	LogLevel     string `yaml:"log_level"`
	FocusMinutes int    `yaml:"focus_minutes"`
	WeeklyGoals  struct {
		FocusMinutes    int `yaml:"focus_minutes"`
		ExerciseMinutes int `yaml:"exercise_minutes"`
		TasksCompleted  int `yaml:"tasks_completed"`
	} `yaml:"weekly_goals"`
}

func Default(dataDir string) Config {
	return Config{
		DataDir:      dataDir,
		DBPath:       filepath.Join(dataDir, "focusdash.db"),
		LogPath:      filepath.Join(dataDir, "logs", "focusdash.json"),
		ConfigPath:   filepath.Join(dataDir, configFileName),
		Store:        StoreFile,
		LogLevel:     "info",
		FocusMinutes: 25,
		WeeklyGoals:  Goals{FocusMinutes: 150, ExerciseMinutes: 300, TasksCompleted: 10},
	}
}

// New builds the configuration for dataDir, overlaying the YAML file at
// configPath (or <dataDir>/config.yaml when empty). A missing file is not an
// error.
func New(dataDir, configPath string) (Config, error) {
	if strings.TrimSpace(dataDir) == "" {
		return Config{}, fmt.Errorf("data dir is required")
	}
	cfg := Default(dataDir)
	if configPath != "" {
		cfg.ConfigPath = configPath
	}

	raw, err := os.ReadFile(cfg.ConfigPath)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("read config file: %w", err)
	}

	var fileData yamlConfig
	if err := yaml.Unmarshal(raw, &fileData); err != nil {
		return cfg, fmt.Errorf("parse config yaml: %w", err)
	}
	apply(&cfg, fileData)
	return cfg, nil
}

func apply(cfg *Config, fileData yamlConfig) {
	switch strings.ToLower(strings.TrimSpace(fileData.Store)) {
	case StoreFile:
		cfg.Store = StoreFile
	case StoreSQLite:
		cfg.Store = StoreSQLite
	}
	if level := strings.TrimSpace(fileData.LogLevel); level != "" {
		cfg.LogLevel = strings.ToLower(level)
	}
	if fileData.FocusMinutes > 0 {
		cfg.FocusMinutes = fileData.FocusMinutes
	}
	if fileData.WeeklyGoals.FocusMinutes > 0 {
		cfg.WeeklyGoals.FocusMinutes = fileData.WeeklyGoals.FocusMinutes
	}
	if fileData.WeeklyGoals.ExerciseMinutes > 0 {
		cfg.WeeklyGoals.ExerciseMinutes = fileData.WeeklyGoals.ExerciseMinutes
	}
	if fileData.WeeklyGoals.TasksCompleted > 0 {
		cfg.WeeklyGoals.TasksCompleted = fileData.WeeklyGoals.TasksCompleted
	}
}

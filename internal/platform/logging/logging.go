package logging

import (
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/natefinch/lumberjack.v2"
)

func ParseLevel(level string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	}
	return slog.LevelInfo
}

// NewFileSink returns a rotating JSON log file under path's directory. When the
// directory cannot be created the sink falls back to stderr.
func NewFileSink(path string) io.WriteCloser {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nopCloser{Writer: os.Stderr}
	}
	return &lumberjack.Logger{
		Filename:   path,
		MaxSize:    10,
		MaxAge:     14,
		MaxBackups: 3,
		Compress:   true,
	}
}

func New(w io.Writer, level string) *slog.Logger {
	return slog.New(slog.NewJSONHandler(w, &slog.HandlerOptions{Level: ParseLevel(level)}))
}

// Discard is used by tests and by components constructed without a logger.
func Discard() *slog.Logger {
	return slog.New(slog.NewJSONHandler(io.Discard, nil))
}

type nopCloser struct {
	io.Writer
}

func (nopCloser) Close() error { return nil }

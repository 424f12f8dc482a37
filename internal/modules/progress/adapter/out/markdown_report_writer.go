package out

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/spf13/afero"

	"focusdash/internal/modules/progress/domain"
	progressout "focusdash/internal/modules/progress/port/out"
)

type MarkdownReportWriter struct {
	fs  afero.Fs
	dir string
}

func NewMarkdownReportWriter(fs afero.Fs, dataDir string) progressout.ReportWriter {
	return &MarkdownReportWriter{fs: fs, dir: filepath.Join(dataDir, "reports")}
}

func (w *MarkdownReportWriter) Write(_ context.Context, date domain.Date, content string) (string, error) {
	if err := w.fs.MkdirAll(w.dir, 0o755); err != nil {
		return "", fmt.Errorf("create report dir: %w", err)
	}
	path := filepath.Join(w.dir, fmt.Sprintf("%s-weekly-report.md", date))
	if err := afero.WriteFile(w.fs, path, []byte(content), 0o644); err != nil {
		return "", fmt.Errorf("write report: %w", err)
	}
	return path, nil
}

package out

import (
	"context"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/require"
)

func TestMarkdownReportWriterWritesUnderReportsDir(t *testing.T) {
	t.Parallel()
	fs := afero.NewMemMapFs()
	path, err := NewMarkdownReportWriter(fs, "/data").Write(context.Background(), "2026-10-19", "# Weekly report\n")
	require.NoError(t, err)
	require.Equal(t, "/data/reports/2026-10-19-weekly-report.md", path)

	content, err := afero.ReadFile(fs, path)
	require.NoError(t, err)
	require.Equal(t, "# Weekly report\n", string(content))
}

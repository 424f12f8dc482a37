package markdown

import (
	"strings"
	"testing"
)

func TestRenderAndSplitFrontmatter(t *testing.T) {
	t.Parallel()
	rendered, err := RenderFrontmatter(map[string]any{"streak": 3, "date": "2026-10-19"}, "# Weekly report\n")
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if !strings.HasPrefix(rendered, "---\n") {
		t.Fatalf("missing opening separator: %q", rendered)
	}
	meta, body, err := SplitFrontmatter(rendered)
	if err != nil {
		t.Fatalf("split: %v", err)
	}
	if meta["streak"] != 3 || meta["date"] != "2026-10-19" {
		t.Fatalf("unexpected meta: %v", meta)
	}
	if strings.TrimSpace(body) != "# Weekly report" {
		t.Fatalf("unexpected body: %q", body)
	}
}

func TestSplitFrontmatterWithoutClosingSeparator(t *testing.T) {
	t.Parallel()
	if _, _, err := SplitFrontmatter("---\nstreak: 1\n"); err == nil {
		t.Fatalf("expected error for unterminated frontmatter")
	}
	meta, body, err := SplitFrontmatter("plain body")
	if err != nil || len(meta) != 0 || body != "plain body" {
		t.Fatalf("expected passthrough, got %v %q %v", meta, body, err)
	}
}

func TestTable(t *testing.T) {
	t.Parallel()
	got := Table([]string{"Date", "Focus"}, [][]string{{"2026-10-19", "25"}, {"a|b"}})
	want := "| Date | Focus |\n| --- | --- |\n| 2026-10-19 | 25 |\n| a\\|b |  |\n"
	if got != want {
		t.Fatalf("unexpected table:\n%s\nwant:\n%s", got, want)
	}
	if Table(nil, nil) != "" {
		t.Fatalf("expected empty table without header")
	}
}

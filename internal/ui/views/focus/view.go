package focus

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/lipgloss"

	timerdomain "focusdash/internal/modules/timer/domain"
	timerdto "focusdash/internal/modules/timer/dto"
	"focusdash/internal/ui/theme"
)

// Model renders the focus countdown pane. It holds no timer state of its
// own; the root model pushes a fresh snapshot before every render.
type Model struct {
	snapshot timerdto.Snapshot
	bar      progress.Model
	active   bool
	width    int
}

func New() Model {
	return Model{
		bar: progress.New(
			progress.WithSolidFill(string(theme.Lavender)),
			progress.WithoutPercentage(),
		),
	}
}

func (m *Model) SetSnapshot(s timerdto.Snapshot) { m.snapshot = s }

func (m *Model) SetActive(active bool) { m.active = active }

func (m *Model) SetWidth(w int) {
	m.width = w
	m.bar.Width = max(w-6, 10)
}

func (m Model) View() string {
	var sb strings.Builder
	sb.WriteString(theme.Title.Render("Focus") + "\n\n")
	sb.WriteString(lipgloss.NewStyle().Bold(true).Render(Clock(m.snapshot.Remaining)) + "  ")
	sb.WriteString(stateLabel(m.snapshot.State) + "\n\n")

	done := 0.0
	if m.snapshot.Duration > 0 {
		done = float64(m.snapshot.Elapsed) / float64(m.snapshot.Duration)
	}
	sb.WriteString(m.bar.ViewAs(done) + "\n\n")
	sb.WriteString(theme.Muted.Render("space start/pause · r reset & log"))

	style := theme.Pane
	if m.active {
		style = theme.PaneActive
	}
	if m.width > 0 {
		style = style.Width(m.width - 2)
	}
	return style.Render(sb.String())
}

// Clock formats d as MM:SS, or H:MM:SS past the hour.
func Clock(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	total := int(d / time.Second)
	h, m, s := total/3600, (total%3600)/60, total%60
	if h > 0 {
		return fmt.Sprintf("%d:%02d:%02d", h, m, s)
	}
	return fmt.Sprintf("%02d:%02d", m, s)
}

func stateLabel(state timerdomain.State) string {
	switch state {
	case timerdomain.StateRunning:
		return theme.Good.Render("running")
	case timerdomain.StatePaused:
		return theme.Hot.Render("paused")
	case timerdomain.StateCompleted:
		return theme.Good.Render("done")
	}
	return theme.Muted.Render("ready")
}

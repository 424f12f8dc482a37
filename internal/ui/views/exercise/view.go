package exercise

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	timerdomain "focusdash/internal/modules/timer/domain"
	timerdto "focusdash/internal/modules/timer/dto"
	"focusdash/internal/ui/theme"
	"focusdash/internal/ui/views/focus"
)

// Model renders the exercise stopwatch pane with its simulated readings.
type Model struct {
	snapshot timerdto.Snapshot
	activity timerdomain.Activity
	metrics  timerdomain.Metrics
	active   bool
	width    int
}

func New() Model { return Model{} }

func (m *Model) SetSnapshot(s timerdto.Snapshot, activity timerdomain.Activity, metrics timerdomain.Metrics) {
	m.snapshot = s
	m.activity = activity
	m.metrics = metrics
}

func (m *Model) SetActive(active bool) { m.active = active }

func (m *Model) SetWidth(w int) { m.width = w }

func (m Model) View() string {
	var sb strings.Builder
	sb.WriteString(theme.Title.Render("Exercise") + "\n\n")

	activity := string(m.activity)
	if activity == "" {
		activity = "no activity"
	}
	sb.WriteString(lipgloss.NewStyle().Bold(true).Render(focus.Clock(m.snapshot.Elapsed)) + "  ")
	sb.WriteString(theme.Muted.Render(activity) + "\n\n")

	if m.activity != "" {
		sb.WriteString(fmt.Sprintf("steps %d  ·  %.2f km\n", m.metrics.Steps, m.metrics.DistanceKm))
		hr := "--"
		if m.metrics.HeartRate > 0 {
			hr = fmt.Sprintf("%d bpm", m.metrics.HeartRate)
		}
		sb.WriteString(fmt.Sprintf("%d kcal  ·  %s\n\n", m.metrics.Calories, hr))
	} else {
		sb.WriteString("\n\n\n")
	}
	sb.WriteString(theme.Muted.Render("w/n/c walk/run/cycle · space pause · r reset & log"))

	style := theme.Pane
	if m.active {
		style = theme.PaneActive
	}
	if m.width > 0 {
		style = style.Width(m.width - 2)
	}
	return style.Render(sb.String())
}

package progress

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/lipgloss"

	progressdto "focusdash/internal/modules/progress/dto"
	"focusdash/internal/ui/theme"
)

// chartRows is the height of the weekly activity chart in terminal rows.
const chartRows = 5

// Model renders today's goal ratios, the streak and the 7-day chart from a
// StatusOutput.
type Model struct {
	status progressdto.StatusOutput
	loaded bool
	err    error
	bars   [3]progress.Model
	active bool
	width  int
}

func New() Model {
	var bars [3]progress.Model
	for i, color := range []string{string(theme.Lavender), string(theme.Green), string(theme.Peach)} {
		bars[i] = progress.New(progress.WithSolidFill(color), progress.WithoutPercentage())
	}
	return Model{bars: bars}
}

func (m *Model) SetStatus(status progressdto.StatusOutput, err error) {
	if err != nil {
		m.err = err
		return
	}
	m.status = status
	m.loaded = true
	m.err = nil
}

func (m *Model) SetActive(active bool) { m.active = active }

func (m *Model) SetWidth(w int) {
	m.width = w
	for i := range m.bars {
		m.bars[i].Width = max(w-30, 10)
	}
}

func (m Model) View() string {
	var sb strings.Builder
	sb.WriteString(theme.Title.Render("Progress"))
	if m.loaded {
		sb.WriteString(theme.Muted.Render("  " + m.status.Date))
	}
	sb.WriteString("\n\n")

	switch {
	case m.err != nil:
		sb.WriteString(theme.Bad.Render("status: "+m.err.Error()) + "\n")
	case !m.loaded:
		sb.WriteString(theme.Muted.Render("loading…") + "\n")
	default:
		s := m.status
		rows := []struct {
			label   string
			value   string
			percent float64
		}{
			{"focus", fmt.Sprintf("%d min", s.Today.FocusMinutes), s.TodayRatios.FocusPercent},
			{"exercise", fmt.Sprintf("%d min", s.Today.ExerciseMinutes), s.TodayRatios.ExercisePercent},
			{"tasks", fmt.Sprintf("%d", s.Today.TasksCompleted), s.TodayRatios.TasksPercent},
		}
		for i, row := range rows {
			sb.WriteString(fmt.Sprintf("%-9s %-8s ", row.label, row.value))
			sb.WriteString(m.bars[i].ViewAs(row.percent/100))
			sb.WriteString(fmt.Sprintf(" %3.0f%%\n", row.percent))
		}
		sb.WriteString("\n")
		streak := fmt.Sprintf("streak %d day", s.CurrentStreak)
		if s.CurrentStreak != 1 {
			streak += "s"
		}
		sb.WriteString(theme.Hot.Render(streak) + theme.Muted.Render(fmt.Sprintf(
			"   week: %d/%d focus · %d/%d exercise · %d/%d tasks",
			s.WeeklyTotals.FocusMinutes, s.WeeklyGoals.FocusMinutes,
			s.WeeklyTotals.ExerciseMinutes, s.WeeklyGoals.ExerciseMinutes,
			s.WeeklyTotals.TasksCompleted, s.WeeklyGoals.TasksCompleted,
		)) + "\n\n")
		sb.WriteString(Chart(s.Chart))
	}

	style := theme.Pane
	if m.active {
		style = theme.PaneActive
	}
	if m.width > 0 {
		style = style.Width(m.width - 2)
	}
	return style.Render(sb.String())
}

// Chart draws one column per bar, chartRows tall, with weekday labels below.
func Chart(bars []progressdto.BarOutput) string {
	if len(bars) == 0 {
		return theme.Muted.Render("no activity recorded yet")
	}
	const colWidth = 5
	var lines []string
	for row := chartRows; row >= 1; row-- {
		var line strings.Builder
		for _, bar := range bars {
			cell := strings.Repeat(" ", colWidth)
			if filled(bar.Height) >= row {
				cell = lipgloss.NewStyle().Foreground(theme.LevelColor(bar.Level)).Render(" ███ ")
			}
			line.WriteString(cell)
		}
		lines = append(lines, line.String())
	}
	var labels strings.Builder
	for _, bar := range bars {
		label := fmt.Sprintf(" %-3s ", bar.Weekday)
		if bar.IsToday {
			label = theme.Hot.Render(label)
		} else {
			label = theme.Muted.Render(label)
		}
		labels.WriteString(label)
	}
	lines = append(lines, labels.String())
	return strings.Join(lines, "\n")
}

// filled converts a 0..100 height into whole chart rows, showing any
// activity as at least one row.
func filled(height float64) int {
	if height <= 0 {
		return 0
	}
	rows := int(height / 100 * chartRows)
	if rows < 1 {
		rows = 1
	}
	if rows > chartRows {
		rows = chartRows
	}
	return rows
}

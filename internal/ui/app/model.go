package app

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	progressdto "focusdash/internal/modules/progress/dto"
	timerdomain "focusdash/internal/modules/timer/domain"
	timerdto "focusdash/internal/modules/timer/dto"
	"focusdash/internal/platform/clock"
	"focusdash/internal/ui/components"
	"focusdash/internal/ui/theme"
	exerciseview "focusdash/internal/ui/views/exercise"
	focusview "focusdash/internal/ui/views/focus"
	progressview "focusdash/internal/ui/views/progress"
)

// ─── ports ───────────────────────────────────────────────────────────────────

type progressPort interface {
	Record(ctx context.Context, kind string, minutes float64) (progressdto.RecordOutput, error)
	CompleteTask(ctx context.Context) (progressdto.RecordOutput, error)
	Status(ctx context.Context) (progressdto.StatusOutput, error)
	Report(ctx context.Context, stdout bool) (progressdto.ReportOutput, error)
}

type timerPort interface {
	Toggle()
	Reset(ctx context.Context) (timerdomain.Report, bool)
	Snapshot() timerdto.Snapshot
}

type focusPort interface {
	timerPort
	SetDuration(d time.Duration) bool
}

type exercisePort interface {
	timerPort
	Begin(ctx context.Context, activity timerdomain.Activity)
	Activity() timerdomain.Activity
	Metrics() timerdomain.Metrics
}

// ─── pane index ──────────────────────────────────────────────────────────────

type paneID int

const (
	paneFocus paneID = iota
	paneExercise
	paneProgress
	paneCount
)

// statusRefresh keeps the date and chart current while the dashboard idles.
const statusRefresh = time.Minute

// ─── messages ────────────────────────────────────────────────────────────────

// DispatchMsg carries a callback that must run on the Bubble Tea event loop.
// Scheduled timer ticks arrive this way.
type DispatchMsg struct{ Fn func() }

// Dispatcher returns a clock.Dispatcher that funnels callbacks into p.
func Dispatcher(p *tea.Program) clock.Dispatcher {
	return func(fn func()) { p.Send(DispatchMsg{Fn: fn}) }
}

type statusLoadedMsg struct {
	status progressdto.StatusOutput
	err    error
}

type recordedMsg struct {
	label string
	out   progressdto.RecordOutput
	err   error
}

type reportWrittenMsg struct {
	out progressdto.ReportOutput
	err error
}

type refreshMsg struct{}

// ─── key bindings ────────────────────────────────────────────────────────────

type keyMap struct {
	Pane    key.Binding
	Toggle  key.Binding
	Reset   key.Binding
	Walk    key.Binding
	Run     key.Binding
	Cycle   key.Binding
	Task    key.Binding
	Report  key.Binding
	Help    key.Binding
	Palette key.Binding
	Quit    key.Binding
}

func defaultKeys() keyMap {
	return keyMap{
		Pane:    key.NewBinding(key.WithKeys("tab", "shift+tab"), key.WithHelp("tab", "next pane")),
		Toggle:  key.NewBinding(key.WithKeys(" "), key.WithHelp("space", "start/pause")),
		Reset:   key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "reset & log")),
		Walk:    key.NewBinding(key.WithKeys("w"), key.WithHelp("w", "walk")),
		Run:     key.NewBinding(key.WithKeys("n"), key.WithHelp("n", "run")),
		Cycle:   key.NewBinding(key.WithKeys("c"), key.WithHelp("c", "cycle")),
		Task:    key.NewBinding(key.WithKeys("t"), key.WithHelp("t", "task done")),
		Report:  key.NewBinding(key.WithKeys("p"), key.WithHelp("p", "weekly report")),
		Help:    key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
		Palette: key.NewBinding(key.WithKeys(":"), key.WithHelp(":", "palette")),
		Quit:    key.NewBinding(key.WithKeys("ctrl+c", "q"), key.WithHelp("q", "quit")),
	}
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Toggle, k.Reset, k.Task, k.Help, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Pane, k.Toggle, k.Reset},
		{k.Walk, k.Run, k.Cycle},
		{k.Task, k.Report},
		{k.Help, k.Palette, k.Quit},
	}
}

// ─── model ───────────────────────────────────────────────────────────────────

// Model is the root Bubble Tea model. Timers are mutated only inside Update,
// which is also where their scheduled ticks land via DispatchMsg, so the
// dashboard needs no locking of its own.
type Model struct {
	progress progressPort
	focus    focusPort
	exercise exercisePort

	focusView    focusview.Model
	exerciseView exerciseview.Model
	progressView progressview.Model

	activePane paneID
	keys       keyMap
	help       help.Model
	showHelp   bool
	palette    components.Palette
	status     string
	width      int
	height     int
}

func NewModel(progress progressPort, focus focusPort, exercise exercisePort) Model {
	m := Model{
		progress:     progress,
		focus:        focus,
		exercise:     exercise,
		focusView:    focusview.New(),
		exerciseView: exerciseview.New(),
		progressView: progressview.New(),
		activePane:   paneFocus,
		keys:         defaultKeys(),
		help:         help.New(),
		palette:      components.NewPalette(),
		status:       "ready",
	}
	m.syncViews()
	return m
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(m.loadStatusCmd(), refreshCmd())
}

// ─── update ──────────────────────────────────────────────────────────────────

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	// Ticks keep flowing while the palette is open.
	if dispatch, ok := msg.(DispatchMsg); ok {
		return m.runDispatch(dispatch)
	}

	if m.palette.Visible() {
		var cmd tea.Cmd
		m.palette, cmd = m.palette.Update(msg)
		return m, cmd
	}

	var cmd tea.Cmd
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.palette.SetWidth(min(m.width-4, 80))
		m.help.Width = m.width
		m.propagateSize()

	case statusLoadedMsg:
		m.progressView.SetStatus(msg.status, msg.err)

	case recordedMsg:
		if msg.err != nil {
			m.status = msg.label + " failed: " + msg.err.Error()
			return m, nil
		}
		m.status = fmt.Sprintf("%s logged · streak %d", msg.label, msg.out.CurrentStreak)
		cmd = m.loadStatusCmd()

	case reportWrittenMsg:
		if msg.err != nil {
			m.status = "report failed: " + msg.err.Error()
		} else {
			m.status = "report written: " + msg.out.Path
		}

	case refreshMsg:
		cmd = tea.Batch(m.loadStatusCmd(), refreshCmd())

	case components.PaletteSubmitMsg:
		return m.executePalette(msg.Input)

	case components.PaletteCancelMsg:
		m.status = "ready"

	case tea.KeyMsg:
		if m.showHelp {
			if msg.String() == "?" || msg.String() == "esc" {
				m.showHelp = false
			}
			return m, nil
		}
		return m.handleKey(msg)
	}

	m.syncViews()
	return m, cmd
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch {
	case key.Matches(msg, m.keys.Quit):
		// Partial sessions are logged on the way out.
		m.resetTimer(m.focus, "focus")
		m.resetTimer(m.exercise, "exercise")
		return m, tea.Quit
	case msg.String() == "tab":
		m.activePane = (m.activePane + 1) % paneCount
	case msg.String() == "shift+tab":
		m.activePane = (m.activePane + paneCount - 1) % paneCount
	case key.Matches(msg, m.keys.Help):
		m.showHelp = true
	case key.Matches(msg, m.keys.Palette):
		return m, m.palette.Open()
	case key.Matches(msg, m.keys.Toggle):
		m.activeTimer().Toggle()
	case key.Matches(msg, m.keys.Reset):
		if m.activePane == paneExercise {
			cmd = m.resetTimer(m.exercise, "exercise")
		} else {
			cmd = m.resetTimer(m.focus, "focus")
		}
	case key.Matches(msg, m.keys.Walk):
		cmd = m.beginExercise(timerdomain.ActivityWalking)
	case key.Matches(msg, m.keys.Run):
		cmd = m.beginExercise(timerdomain.ActivityRunning)
	case key.Matches(msg, m.keys.Cycle):
		cmd = m.beginExercise(timerdomain.ActivityCycling)
	case key.Matches(msg, m.keys.Task):
		cmd = m.completeTaskCmd()
	case key.Matches(msg, m.keys.Report):
		cmd = m.writeReportCmd()
	}
	m.syncViews()
	return m, cmd
}

func (m Model) runDispatch(msg DispatchMsg) (tea.Model, tea.Cmd) {
	before := m.focus.Snapshot().State
	if msg.Fn != nil {
		msg.Fn()
	}
	if before == timerdomain.StateRunning && m.focus.Snapshot().State == timerdomain.StateCompleted {
		m.status = "focus session complete, press r to log it"
	}
	m.syncViews()
	return m, nil
}

// ─── view ────────────────────────────────────────────────────────────────────

func (m Model) View() string {
	header := m.renderHeader()
	statusBar := m.renderStatusBar()
	contentH := m.height - lipgloss.Height(header) - lipgloss.Height(statusBar)
	if contentH < 1 {
		contentH = 1
	}

	var content string
	switch {
	case m.showHelp:
		content = lipgloss.NewStyle().Width(m.width).Height(contentH).
			Render(m.help.View(m.keys))
	case m.palette.Visible():
		content = lipgloss.Place(m.width, contentH,
			lipgloss.Center, lipgloss.Center, m.palette.View())
	default:
		top := lipgloss.JoinHorizontal(lipgloss.Top, m.focusView.View(), m.exerciseView.View())
		content = lipgloss.JoinVertical(lipgloss.Left, top, m.progressView.View())
	}

	return lipgloss.JoinVertical(lipgloss.Left, header, content, statusBar)
}

func (m Model) renderHeader() string {
	labels := [paneCount]string{"Focus", "Exercise", "Progress"}
	parts := make([]string, paneCount)
	for i := paneID(0); i < paneCount; i++ {
		if i == m.activePane {
			parts[i] = theme.Hot.Render(" " + labels[i] + " ")
		} else {
			parts[i] = theme.Muted.Render(" " + labels[i] + " ")
		}
	}
	bar := "focusdash  " + strings.Join(parts, theme.Muted.Render(" │ "))
	return lipgloss.NewStyle().Background(theme.Mantle).Width(m.width).Render(bar) + "\n"
}

func (m Model) renderStatusBar() string {
	left := m.status
	right := m.help.ShortHelpView(m.keys.ShortHelp())
	gap := m.width - lipgloss.Width(left) - lipgloss.Width(right)
	if gap < 1 {
		gap = 1
	}
	bar := left + strings.Repeat(" ", gap) + right
	return "\n" + lipgloss.NewStyle().Background(theme.Mantle).Width(m.width).Render(bar)
}

// ─── palette execution ───────────────────────────────────────────────────────

func (m Model) executePalette(input string) (tea.Model, tea.Cmd) {
	parts := strings.Fields(input)
	if len(parts) == 0 {
		return m, nil
	}

	var cmd tea.Cmd
	switch parts[0] {
	case "focus:toggle":
		m.focus.Toggle()
	case "focus:reset":
		cmd = m.resetTimer(m.focus, "focus")
	case "focus:minutes":
		if len(parts) < 2 {
			m.status = "usage: focus:minutes <n>"
			break
		}
		n, err := strconv.Atoi(parts[1])
		if err != nil || n <= 0 {
			m.status = "invalid minutes"
			break
		}
		if !m.focus.SetDuration(time.Duration(n) * time.Minute) {
			m.status = "reset the focus timer before changing its length"
			break
		}
		m.status = fmt.Sprintf("focus length set to %d min", n)
	case "exercise:start":
		if len(parts) < 2 {
			m.status = "usage: exercise:start <walking|running|cycling>"
			break
		}
		activity, err := timerdomain.ParseActivity(parts[1])
		if err != nil {
			m.status = err.Error()
			break
		}
		cmd = m.beginExercise(activity)
	case "exercise:toggle":
		m.exercise.Toggle()
	case "exercise:reset":
		cmd = m.resetTimer(m.exercise, "exercise")
	case "task:done":
		cmd = m.completeTaskCmd()
	case "record":
		if len(parts) < 3 {
			m.status = "usage: record <focus|exercise|task> <minutes>"
			break
		}
		minutes, err := strconv.ParseFloat(parts[2], 64)
		if err != nil {
			m.status = "invalid minutes"
			break
		}
		cmd = m.recordCmd(parts[1], minutes)
	case "report":
		cmd = m.writeReportCmd()
	default:
		m.status = "unknown command: " + parts[0]
	}
	m.syncViews()
	return m, cmd
}

// ─── helpers ─────────────────────────────────────────────────────────────────

func (m Model) activeTimer() timerPort {
	if m.activePane == paneExercise {
		return m.exercise
	}
	return m.focus
}

// resetTimer runs on the event loop: the timer forwards its report to the
// progress recorder synchronously, so only a status reload is deferred.
func (m *Model) resetTimer(t timerPort, label string) tea.Cmd {
	report, ok := t.Reset(context.Background())
	switch {
	case !ok:
		return nil
	case report.Minutes == 0:
		m.status = label + " reset (under a minute, not logged)"
		return nil
	}
	m.status = fmt.Sprintf("%s logged: %d min", label, report.Minutes)
	return m.loadStatusCmd()
}

func (m *Model) beginExercise(activity timerdomain.Activity) tea.Cmd {
	logged := m.exercise.Snapshot().Elapsed >= time.Minute
	m.exercise.Begin(context.Background(), activity)
	m.activePane = paneExercise
	m.status = "exercise: " + string(activity)
	if logged {
		return m.loadStatusCmd()
	}
	return nil
}

func (m *Model) syncViews() {
	m.focusView.SetSnapshot(m.focus.Snapshot())
	m.exerciseView.SetSnapshot(m.exercise.Snapshot(), m.exercise.Activity(), m.exercise.Metrics())
	m.focusView.SetActive(m.activePane == paneFocus)
	m.exerciseView.SetActive(m.activePane == paneExercise)
	m.progressView.SetActive(m.activePane == paneProgress)
}

func (m *Model) propagateSize() {
	half := m.width / 2
	m.focusView.SetWidth(half)
	m.exerciseView.SetWidth(m.width - half)
	m.progressView.SetWidth(m.width)
}

// ─── async commands ──────────────────────────────────────────────────────────

func refreshCmd() tea.Cmd {
	return tea.Tick(statusRefresh, func(time.Time) tea.Msg { return refreshMsg{} })
}

func (m Model) loadStatusCmd() tea.Cmd {
	return func() tea.Msg {
		status, err := m.progress.Status(context.Background())
		return statusLoadedMsg{status: status, err: err}
	}
}

func (m Model) completeTaskCmd() tea.Cmd {
	return func() tea.Msg {
		out, err := m.progress.CompleteTask(context.Background())
		return recordedMsg{label: "task", out: out, err: err}
	}
}

func (m Model) recordCmd(kind string, minutes float64) tea.Cmd {
	return func() tea.Msg {
		out, err := m.progress.Record(context.Background(), kind, minutes)
		return recordedMsg{label: kind, out: out, err: err}
	}
}

func (m Model) writeReportCmd() tea.Cmd {
	return func() tea.Msg {
		out, err := m.progress.Report(context.Background(), false)
		return reportWrittenMsg{out: out, err: err}
	}
}

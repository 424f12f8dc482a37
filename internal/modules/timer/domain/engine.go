package domain

import "time"

// TickInterval is the wall-clock period of one engine tick.
const TickInterval = time.Second

// DefaultFocusDuration is the classic Pomodoro length.
const DefaultFocusDuration = 25 * time.Minute

type Mode string

const (
	ModeCountdown Mode = "countdown"
	ModeStopwatch Mode = "stopwatch"
)

type State string

const (
	StateIdle      State = "idle"
	StateRunning   State = "running"
	StatePaused    State = "paused"
	StateCompleted State = "completed"
)

// Report is what a reset hands back: the time consumed by the session and
// that time in whole minutes, rounded down.
type Report struct {
	Elapsed time.Duration
	Minutes int
}

// Engine is the countdown/stopwatch state machine. Transitions that are not
// valid from the current state are no-ops. Engine does no scheduling of its
// own; callers feed it ticks.
type Engine struct {
	mode     Mode
	duration time.Duration
	state    State
	elapsed  time.Duration
}

func NewCountdown(duration time.Duration) *Engine {
	if duration <= 0 {
		duration = DefaultFocusDuration
	}
	return &Engine{mode: ModeCountdown, duration: duration, state: StateIdle}
}

func NewStopwatch() *Engine {
	return &Engine{mode: ModeStopwatch, state: StateIdle}
}

func (e *Engine) Mode() Mode {
	return e.mode
}

func (e *Engine) State() State {
	return e.state
}

func (e *Engine) Elapsed() time.Duration {
	return e.elapsed
}

func (e *Engine) Duration() time.Duration {
	return e.duration
}

// Remaining is the time left on a countdown; a stopwatch has none.
func (e *Engine) Remaining() time.Duration {
	if e.mode != ModeCountdown {
		return 0
	}
	if left := e.duration - e.elapsed; left > 0 {
		return left
	}
	return 0
}

// SetDuration changes the countdown length. Only an idle countdown accepts it.
func (e *Engine) SetDuration(duration time.Duration) bool {
	if e.mode != ModeCountdown || e.state != StateIdle || duration <= 0 {
		return false
	}
	e.duration = duration
	return true
}

// Start moves an idle or paused engine to running.
func (e *Engine) Start() bool {
	if e.state != StateIdle && e.state != StatePaused {
		return false
	}
	e.state = StateRunning
	return true
}

// Pause freezes a running engine.
func (e *Engine) Pause() bool {
	if e.state != StateRunning {
		return false
	}
	e.state = StatePaused
	return true
}

// Tick advances a running engine by one TickInterval. A countdown that
// reaches zero becomes completed and accepts no further ticks.
func (e *Engine) Tick() bool {
	if e.state != StateRunning {
		return false
	}
	e.elapsed += TickInterval
	if e.mode == ModeCountdown && e.elapsed >= e.duration {
		e.elapsed = e.duration
		e.state = StateCompleted
	}
	return true
}

// Reset returns the engine to idle with no elapsed time. When time had been
// consumed, the report for it is returned with ok set; it is taken before
// the counters are cleared.
func (e *Engine) Reset() (report Report, ok bool) {
	if e.elapsed > 0 {
		report = Report{Elapsed: e.elapsed, Minutes: int(e.elapsed / time.Minute)}
		ok = true
	}
	e.elapsed = 0
	e.state = StateIdle
	return report, ok
}

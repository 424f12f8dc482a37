package bootstrap

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"math/rand/v2"
	"net"
	"net/http"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/afero"

	progressinadapter "focusdash/internal/modules/progress/adapter/in"
	progressoutadapter "focusdash/internal/modules/progress/adapter/out"
	progressdomain "focusdash/internal/modules/progress/domain"
	progressin "focusdash/internal/modules/progress/port/in"
	progressout "focusdash/internal/modules/progress/port/out"
	progressservice "focusdash/internal/modules/progress/service"
	progressusecase "focusdash/internal/modules/progress/usecase"
	timeroutadapter "focusdash/internal/modules/timer/adapter/out"
	timerout "focusdash/internal/modules/timer/port/out"
	timerservice "focusdash/internal/modules/timer/service"
	"focusdash/internal/platform/clock"
	"focusdash/internal/platform/config"
	"focusdash/internal/platform/id"
	"focusdash/internal/platform/logging"
	"focusdash/internal/platform/metrics"
	uiapp "focusdash/internal/ui/app"
)

type App struct {
	Config      config.Config
	Logger      *slog.Logger
	Metrics     *metrics.Recorder
	ProgressCLI progressinadapter.CLIHandler

	recorder timerout.ProgressRecorder
	ids      id.Generator
	closers  []io.Closer
}

// Options carry the pieces a test wants to replace. Zero values select the
// production implementations.
type Options struct {
	Fs        afero.Fs
	Clock     clock.Clock
	LogWriter io.Writer
}

func New(ctx context.Context, cfg config.Config) (*App, error) {
	return NewWithOptions(ctx, cfg, Options{})
}

func NewWithOptions(ctx context.Context, cfg config.Config, opts Options) (*App, error) {
	app := &App{Config: cfg, ids: id.UUID{}}

	fs := opts.Fs
	if fs == nil {
		fs = afero.NewOsFs()
	}
	clk := opts.Clock
	if clk == nil {
		clk = clock.SystemClock{}
	}
	logWriter := opts.LogWriter
	if logWriter == nil {
		sink := logging.NewFileSink(cfg.LogPath)
		app.closers = append(app.closers, sink)
		logWriter = sink
	}
	app.Logger = logging.New(logWriter, cfg.LogLevel)
	app.Metrics = metrics.NewRecorder(prometheus.NewRegistry())

	store, err := newStore(cfg, fs, clk)
	if err != nil {
		_ = app.Close()
		return nil, err
	}
	app.closers = append(app.closers, store)

	goals := progressdomain.WeeklyGoals{
		FocusMinutes:    cfg.WeeklyGoals.FocusMinutes,
		ExerciseMinutes: cfg.WeeklyGoals.ExerciseMinutes,
		TasksCompleted:  cfg.WeeklyGoals.TasksCompleted,
	}
	repo := progressoutadapter.NewKVProgressRepository(store, clk, goals)
	ctrl := progressservice.NewController(clk, repo, goals, app.Metrics, app.Logger)
	ctrl.Hydrate(ctx)
	ctrl.SetWeeklyGoals(ctx, goals)

	var progressUC progressin.Usecase = progressusecase.NewInteractor(ctrl, progressoutadapter.NewMarkdownReportWriter(fs, cfg.DataDir))
	app.ProgressCLI = progressinadapter.NewCLIHandler(progressUC)
	app.recorder = timeroutadapter.NewProgressUsecaseRecorder(progressUC)

	app.Logger.Debug("app ready", slog.String("data_dir", cfg.DataDir), slog.String("store", cfg.Store))
	return app, nil
}

func newStore(cfg config.Config, fs afero.Fs, clk clock.Clock) (progressout.KeyValueStore, error) {
	switch cfg.Store {
	case config.StoreSQLite:
		store, err := progressoutadapter.NewSQLiteKVStore(cfg.DBPath, clk)
		if err != nil {
			return nil, fmt.Errorf("open sqlite store: %w", err)
		}
		return store, nil
	case config.StoreFile, "":
		return progressoutadapter.NewFileKVStore(fs, cfg.DataDir), nil
	}
	return nil, fmt.Errorf("unknown store %q", cfg.Store)
}

// NewFocusTimer builds a countdown whose finished sessions are recorded as
// focus minutes. A non-positive length falls back to the configured one.
func (a *App) NewFocusTimer(scheduler clock.Scheduler, minutes int) *timerservice.SessionTimer {
	if minutes <= 0 {
		minutes = a.Config.FocusMinutes
	}
	return timerservice.NewFocusTimer(time.Duration(minutes)*time.Minute, scheduler, a.recorder, a.ids, a.Logger)
}

func (a *App) NewExerciseTimer(scheduler clock.Scheduler) *timerservice.ExerciseTimer {
	rng := rand.New(rand.NewPCG(uint64(time.Now().UnixNano()), 0))
	return timerservice.NewExerciseTimer(scheduler, a.recorder, a.ids, rng, a.Logger)
}

func (a *App) Close() error {
	var errs []error
	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i].Close(); err != nil {
			errs = append(errs, err)
		}
	}
	a.closers = nil
	return errors.Join(errs...)
}

// ServeMetrics exposes the Prometheus registry on addr until ctx is done.
// It returns the bound address.
func ServeMetrics(ctx context.Context, addr string, app *App) (string, error) {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return "", fmt.Errorf("start metrics listener: %w", err)
	}
	mux := http.NewServeMux()
	mux.Handle("/metrics", app.Metrics.Handler())
	srv := &http.Server{
		Handler:           mux,
		ReadHeaderTimeout: 2 * time.Second,
	}
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()
	go func() {
		if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			app.Logger.Error("metrics server stopped", slog.String("error", err.Error()))
		}
	}()
	app.Logger.Info("metrics endpoint listening", slog.String("addr", ln.Addr().String()))
	return ln.Addr().String(), nil
}

func RunTUI(ctx context.Context, app *App, metricsAddr string) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	if metricsAddr != "" {
		if _, err := ServeMetrics(ctx, metricsAddr, app); err != nil {
			return err
		}
	}

	var program *tea.Program
	scheduler := clock.NewTickerScheduler(func(fn func()) { uiapp.Dispatcher(program)(fn) })
	focus := app.NewFocusTimer(scheduler, 0)
	exercise := app.NewExerciseTimer(scheduler)
	defer focus.Close()
	defer exercise.Close()

	model := uiapp.NewModel(app.ProgressCLI, focus, exercise)
	program = tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(ctx))
	_, err := program.Run()
	if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
		return nil
	}
	return err
}

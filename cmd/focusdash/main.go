package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"strconv"
	"strings"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"focusdash/internal/bootstrap"
	progressdto "focusdash/internal/modules/progress/dto"
	timerdomain "focusdash/internal/modules/timer/domain"
	timerdto "focusdash/internal/modules/timer/dto"
	"focusdash/internal/platform/clock"
	"focusdash/internal/platform/config"
	"focusdash/internal/platform/loop"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		_, _ = fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

type globalFlags struct {
	dataDir    string
	configPath string
	logLevel   string
	store      string
}

func newRootCmd() *cobra.Command {
	flags := &globalFlags{}

	root := &cobra.Command{
		Use:           "focusdash",
		Short:         "Focus, exercise and task tracking dashboard",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&flags.dataDir, "data-dir", defaultDataDir(), "directory holding progress, logs and reports")
	root.PersistentFlags().StringVar(&flags.configPath, "config", "", "config file (default <data-dir>/config.yaml)")
	root.PersistentFlags().StringVar(&flags.logLevel, "log-level", "", "debug|info|warn|error")
	root.PersistentFlags().StringVar(&flags.store, "store", "", "progress store: file|sqlite")

	root.AddCommand(newRecordCmd(flags))
	root.AddCommand(newTaskCmd(flags))
	root.AddCommand(newStatusCmd(flags))
	root.AddCommand(newReportCmd(flags))
	root.AddCommand(newFocusCmd(flags))
	root.AddCommand(newExerciseCmd(flags))
	root.AddCommand(newTUICmd(flags))
	return root
}

func defaultDataDir() string {
	if dir, err := os.UserConfigDir(); err == nil {
		return filepath.Join(dir, "focusdash")
	}
	return ".focusdash"
}

func loadApp(ctx context.Context, flags *globalFlags) (*bootstrap.App, error) {
	cfg, err := config.New(flags.dataDir, flags.configPath)
	if err != nil {
		return nil, err
	}
	if flags.logLevel != "" {
		cfg.LogLevel = flags.logLevel
	}
	if flags.store != "" {
		cfg.Store = flags.store
	}
	return bootstrap.New(ctx, cfg)
}

// withApp builds the app for one command invocation and closes it afterwards.
func withApp(flags *globalFlags, run func(cmd *cobra.Command, args []string, app *bootstrap.App) error) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		app, err := loadApp(cmd.Context(), flags)
		if err != nil {
			return err
		}
		defer func() { _ = app.Close() }()
		return run(cmd, args, app)
	}
}

func newRecordCmd(flags *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "record <focus|exercise|task> <minutes>",
		Short: "Record a finished session",
		Args:  cobra.ExactArgs(2),
		RunE: withApp(flags, func(cmd *cobra.Command, args []string, app *bootstrap.App) error {
			minutes, err := strconv.ParseFloat(args[1], 64)
			if err != nil {
				return fmt.Errorf("invalid minutes %q: %w", args[1], err)
			}
			out, err := app.ProgressCLI.Record(cmd.Context(), args[0], minutes)
			if err != nil {
				return err
			}
			printRecord(cmd.OutOrStdout(), out)
			return nil
		}),
	}
}

func newTaskCmd(flags *globalFlags) *cobra.Command {
	task := &cobra.Command{Use: "task", Short: "Task commands"}
	task.AddCommand(&cobra.Command{
		Use:   "done",
		Short: "Count one completed task for today",
		Args:  cobra.NoArgs,
		RunE: withApp(flags, func(cmd *cobra.Command, _ []string, app *bootstrap.App) error {
			out, err := app.ProgressCLI.CompleteTask(cmd.Context())
			if err != nil {
				return err
			}
			printRecord(cmd.OutOrStdout(), out)
			return nil
		}),
	})
	return task
}

func newStatusCmd(flags *globalFlags) *cobra.Command {
	var asJSON bool
	cmd := &cobra.Command{
		Use:   "status",
		Short: "Show today's progress, goals and streak",
		Args:  cobra.NoArgs,
		RunE: withApp(flags, func(cmd *cobra.Command, _ []string, app *bootstrap.App) error {
			status, err := app.ProgressCLI.Status(cmd.Context())
			if err != nil {
				return err
			}
			if asJSON {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(status)
			}
			printStatus(cmd.OutOrStdout(), status)
			return nil
		}),
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "print status as JSON")
	return cmd
}

func newReportCmd(flags *globalFlags) *cobra.Command {
	var stdout bool
	cmd := &cobra.Command{
		Use:   "report",
		Short: "Write the weekly markdown report",
		Args:  cobra.NoArgs,
		RunE: withApp(flags, func(cmd *cobra.Command, _ []string, app *bootstrap.App) error {
			out, err := app.ProgressCLI.Report(cmd.Context(), stdout)
			if err != nil {
				return err
			}
			if stdout {
				_, _ = fmt.Fprint(cmd.OutOrStdout(), out.Content)
				return nil
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "report written to %s\n", out.Path)
			return nil
		}),
	}
	cmd.Flags().BoolVar(&stdout, "stdout", false, "print instead of writing to the data dir")
	return cmd
}

func newFocusCmd(flags *globalFlags) *cobra.Command {
	var minutes int
	cmd := &cobra.Command{
		Use:   "focus",
		Short: "Run a focus countdown; Ctrl+C stops early and logs whole minutes",
		Args:  cobra.NoArgs,
		RunE: withApp(flags, func(cmd *cobra.Command, _ []string, app *bootstrap.App) error {
			l := loop.New(0)
			timer := app.NewFocusTimer(clock.NewTickerScheduler(l.Dispatch), minutes)
			defer timer.Close()

			out := cmd.OutOrStdout()
			report, ok := runBlocking(cmd.Context(), l, timer, timer.Start, func(s timerdto.Snapshot) string {
				return "focus " + formatClock(s.Remaining)
			})
			printReport(out, "focus", report, ok)
			return nil
		}),
	}
	cmd.Flags().IntVar(&minutes, "minutes", 0, "countdown length (default from config)")
	return cmd
}

func newExerciseCmd(flags *globalFlags) *cobra.Command {
	var activityFlag string
	cmd := &cobra.Command{
		Use:   "exercise",
		Short: "Run an exercise stopwatch; Ctrl+C stops and logs whole minutes",
		Args:  cobra.NoArgs,
		RunE: withApp(flags, func(cmd *cobra.Command, _ []string, app *bootstrap.App) error {
			activity, err := timerdomain.ParseActivity(activityFlag)
			if err != nil {
				return err
			}
			l := loop.New(0)
			timer := app.NewExerciseTimer(clock.NewTickerScheduler(l.Dispatch))
			defer timer.Close()

			out := cmd.OutOrStdout()
			begin := func() { timer.Begin(cmd.Context(), activity) }
			report, ok := runBlocking(cmd.Context(), l, timer, begin, func(s timerdto.Snapshot) string {
				m := timer.Metrics()
				return fmt.Sprintf("%s %s  steps %d  %.2f km  %d kcal  %d bpm",
					activity, formatClock(s.Elapsed), m.Steps, m.DistanceKm, m.Calories, m.HeartRate)
			})
			printReport(out, "exercise", report, ok)
			return nil
		}),
	}
	cmd.Flags().StringVar(&activityFlag, "activity", string(timerdomain.ActivityWalking), "walking|running|cycling")
	return cmd
}

func newTUICmd(flags *globalFlags) *cobra.Command {
	var metricsAddr string
	cmd := &cobra.Command{
		Use:   "tui",
		Short: "Run the focusdash terminal dashboard",
		Args:  cobra.NoArgs,
		RunE: withApp(flags, func(cmd *cobra.Command, _ []string, app *bootstrap.App) error {
			return bootstrap.RunTUI(cmd.Context(), app, metricsAddr)
		}),
	}
	cmd.Flags().StringVar(&metricsAddr, "metrics-addr", "", "serve Prometheus metrics on this address, e.g. :9090")
	return cmd
}

type blockingTimer interface {
	OnTick(fn func(timerdto.Snapshot))
	Reset(ctx context.Context) (timerdomain.Report, bool)
}

// runBlocking drives a timer on a private event loop until the countdown
// completes or ctx is cancelled, then resets it so the session is recorded.
// Progress is redrawn in place on stderr.
func runBlocking(ctx context.Context, l *loop.Loop, timer blockingTimer, start func(), line func(timerdto.Snapshot) string) (timerdomain.Report, bool) {
	runCtx, stop := context.WithCancel(ctx)
	defer stop()

	timer.OnTick(func(s timerdto.Snapshot) {
		_, _ = fmt.Fprintf(os.Stderr, "\r%s ", line(s))
		if s.State == timerdomain.StateCompleted {
			stop()
		}
	})
	l.Dispatch(start)
	_ = l.Run(runCtx)
	_, _ = fmt.Fprintln(os.Stderr)

	// The loop has stopped, so the timer is no longer shared.
	return timer.Reset(context.WithoutCancel(ctx))
}

func formatClock(d time.Duration) string {
	total := int(d / time.Second)
	h, m, s := total/3600, (total%3600)/60, total%60
	if h > 0 {
		return fmt.Sprintf("%d:%02d:%02d", h, m, s)
	}
	return fmt.Sprintf("%02d:%02d", m, s)
}

func printReport(w io.Writer, kind string, report timerdomain.Report, ok bool) {
	switch {
	case !ok:
		_, _ = fmt.Fprintf(w, "%s: nothing to log\n", kind)
	case report.Minutes == 0:
		_, _ = fmt.Fprintf(w, "%s: %s elapsed, under a minute so not logged\n", kind, report.Elapsed.Round(time.Second))
	default:
		_, _ = fmt.Fprintf(w, "%s: logged %d min\n", kind, report.Minutes)
	}
}

func printRecord(w io.Writer, out progressdto.RecordOutput) {
	_, _ = fmt.Fprintf(w, "%s  focus %d min  exercise %d min  tasks %d  streak %d\n",
		out.Date, out.Today.FocusMinutes, out.Today.ExerciseMinutes, out.Today.TasksCompleted, out.CurrentStreak)
}

func printStatus(w io.Writer, s progressdto.StatusOutput) {
	_, _ = fmt.Fprintf(w, "%s  streak %d\n\n", s.Date, s.CurrentStreak)
	_, _ = fmt.Fprintf(w, "today     focus %4d min (%3.0f%%)  exercise %4d min (%3.0f%%)  tasks %3d (%3.0f%%)\n",
		s.Today.FocusMinutes, s.TodayRatios.FocusPercent,
		s.Today.ExerciseMinutes, s.TodayRatios.ExercisePercent,
		s.Today.TasksCompleted, s.TodayRatios.TasksPercent)
	_, _ = fmt.Fprintf(w, "week      focus %4d/%d  exercise %4d/%d  tasks %3d/%d\n\n",
		s.WeeklyTotals.FocusMinutes, s.WeeklyGoals.FocusMinutes,
		s.WeeklyTotals.ExerciseMinutes, s.WeeklyGoals.ExerciseMinutes,
		s.WeeklyTotals.TasksCompleted, s.WeeklyGoals.TasksCompleted)
	for _, bar := range s.Chart {
		marker := " "
		if bar.IsToday {
			marker = "*"
		}
		_, _ = fmt.Fprintf(w, "%s %s %s %-20s %s\n", marker, bar.Date, bar.Weekday,
			strings.Repeat("#", int(bar.Height/5)), bar.Level)
	}
}

package commands

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/pacphi/statusboard/internal/executor"
	"github.com/pacphi/statusboard/pkg/api"
	"github.com/pacphi/statusboard/pkg/config"
	"github.com/pacphi/statusboard/pkg/notifications"
	"github.com/pacphi/statusboard/pkg/utils"
)

// WatchFlags contains flags for the watch command
type WatchFlags struct {
	Refresh       time.Duration
	Tick          time.Duration
	ClearScreen   bool
	MaxIterations int
	Notify        bool
	Output        OutputFlags
}

// NewWatchCommand creates the watch command
func NewWatchCommand() *cobra.Command {
	var flags WatchFlags

	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Continuously monitor service status",
		Long: `Continuously monitor the status of all services.

Data is fetched again every --refresh. In between, the "time ago" column is
recomputed every --tick so it keeps counting. Status transitions are sent to
the configured notifiers.

Use Ctrl+C to stop monitoring.`,
		Example: `  statusboard watch
  statusboard watch --refresh 30s --tick 1s
  statusboard watch --max-iterations 1 --clear=false`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runWatch(cmd.Context(), cmd.OutOrStdout(), flags)
		},
	}

	cmd.Flags().DurationVarP(&flags.Refresh, "refresh", "r", 0, "data refresh interval (default behavior.refresh_interval)")
	cmd.Flags().DurationVarP(&flags.Tick, "tick", "t", 0, "\"time ago\" recompute interval (default behavior.tick_interval)")
	cmd.Flags().BoolVar(&flags.ClearScreen, "clear", true, "clear screen between updates")
	cmd.Flags().IntVar(&flags.MaxIterations, "max-iterations", 0, "maximum number of data refreshes (0 = infinite)")
	cmd.Flags().BoolVar(&flags.Notify, "notify", true, "send status transitions to configured notifiers")
	addOutputFlags(cmd, &flags.Output)

	return cmd
}

// runWatch runs the watch command
func runWatch(ctx context.Context, out io.Writer, flags WatchFlags) error {
	if flags.MaxIterations < 0 {
		return fmt.Errorf("--max-iterations must be non-negative (0 for unlimited iterations)")
	}

	exec, err := newExecutor("watch", flags.Output)
	if err != nil {
		return err
	}
	if !flags.Notify {
		exec.SetNotifier(notifications.NewManager(&config.Config{}))
	}

	cfg := exec.GetConfig()
	if flags.Refresh <= 0 {
		flags.Refresh = cfg.RefreshEvery()
	}
	if flags.Tick <= 0 {
		flags.Tick = cfg.TickEvery()
	}
	if flags.Tick > flags.Refresh {
		flags.Tick = flags.Refresh
	}

	logger := utils.GetGlobalLogger()
	logger.Info("Starting status monitoring...")
	logger.Infof("Refresh interval: %s, tick: %s", flags.Refresh, flags.Tick)
	logger.Info("Press Ctrl+C to stop monitoring")

	// Set up signal handling
	watchCtx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	w := &watcher{exec: exec, out: out, flags: flags}

	iteration := 1
	if err := w.refresh(watchCtx); err != nil {
		logger.WithError(err).Error("Initial refresh failed")
	}
	if flags.MaxIterations > 0 && iteration >= flags.MaxIterations {
		logger.Infof("Completed %d iteration(s), stopping", iteration)
		return nil
	}

	refreshTicker := time.NewTicker(flags.Refresh)
	defer refreshTicker.Stop()
	tickTicker := time.NewTicker(flags.Tick)
	defer tickTicker.Stop()

	for {
		select {
		case <-watchCtx.Done():
			logger.Info("Monitoring stopped")
			return nil

		case <-tickTicker.C:
			if err := w.draw(); err != nil {
				return err
			}

		case <-refreshTicker.C:
			iteration++
			if err := w.refresh(watchCtx); err != nil {
				logger.WithError(err).Error("Refresh failed")
			}

			if flags.MaxIterations > 0 && iteration >= flags.MaxIterations {
				logger.Infof("Completed %d iteration(s), stopping", iteration)
				return nil
			}
		}
	}
}

// watcher keeps the last snapshot so ticks can redraw without fetching
type watcher struct {
	exec        *executor.Executor
	out         io.Writer
	flags       WatchFlags
	pages       []api.StatusPage
	lastRefresh time.Time
	lastErr     error
}

func (w *watcher) refresh(ctx context.Context) error {
	pages, changes, err := w.exec.Refresh(ctx, w.pages)
	w.lastErr = err
	if err == nil {
		w.pages = pages
		w.lastRefresh = w.exec.Now()
	}

	if drawErr := w.draw(); drawErr != nil {
		return drawErr
	}
	for _, change := range changes {
		fmt.Fprintf(w.out, "%s: %s -> %s\n", change.Page.DisplayName(), change.From.Label(), change.To.Label())
	}
	return err
}

func (w *watcher) draw() error {
	if w.flags.ClearScreen {
		clearScreen(w.out)
	}

	renderer := w.exec.Renderer()
	now := w.exec.Now()

	fmt.Fprintf(w.out, "=== Statusboard Monitor ===\n")
	if !w.lastRefresh.IsZero() {
		fmt.Fprintf(w.out, "Last updated: %s (%s)\n", w.lastRefresh.Format("2006-01-02 15:04:05 MST"),
			renderer.Formatter().TimeAgo(w.lastRefresh, now))
	}
	fmt.Fprintf(w.out, "Refresh interval: %s\n\n", w.flags.Refresh)

	if w.lastErr != nil {
		fmt.Fprintf(w.out, "Error: %v\n\n", w.lastErr)
	}

	return renderer.StatusTable(w.out, w.pages, now)
}

// clearScreen clears the terminal screen
func clearScreen(w io.Writer) {
	fmt.Fprint(w, "\033[2J\033[H")
}

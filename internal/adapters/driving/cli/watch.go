package cli

import (
	"context"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"

	"github.com/veldt-labs/winnow-cli/internal/logger"
)

// watchSettle is how long the input must stay quiet before a rerun.
// Crawl dumps are written in bursts, so reacting to the first event
// would clean a half-written file.
const watchSettle = 2 * time.Second

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Re-run the pipeline when the input changes",
	Long: `Watches the input corpus file and re-runs the cleaning pipeline
each time it is rewritten. The rerun waits for writes to settle first.
Stop with Ctrl-C.`,
	RunE: runWatch,
}

func init() {
	registerConfigFlags(watchCmd)
	rootCmd.AddCommand(watchCmd)
}

func runWatch(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer watcher.Close()

	// Watch the directory, not the file: editors and crawlers often
	// replace the file and a file watch dies with the old inode.
	if err := watcher.Add(filepath.Dir(cfg.Input)); err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cmd.Printf("Watching %s for changes...\n", cfg.Input)

	var settle *time.Timer
	settleCh := make(<-chan time.Time)
	for {
		select {
		case <-ctx.Done():
			cmd.Println("Stopped.")
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != filepath.Clean(cfg.Input) {
				continue
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
				continue
			}
			logger.Debug("input changed: %s", event.Op)
			if settle == nil {
				settle = time.NewTimer(watchSettle)
				settleCh = settle.C
			} else {
				settle.Reset(watchSettle)
			}

		case <-settleCh:
			settle = nil
			settleCh = make(<-chan time.Time)
			if err := rerun(ctx, cmd); err != nil {
				logger.Warn("run failed: %v", err)
			}

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			logger.Warn("watch error: %v", err)
		}
	}
}

// rerun executes one clean run with a freshly wired pipeline so the
// hashes and output files are rebuilt from scratch.
func rerun(ctx context.Context, cmd *cobra.Command) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	pipeline, cleanup, err := newCleanPipeline(cfg)
	if err != nil {
		return err
	}
	defer cleanup()

	report, err := pipeline.Run(ctx)
	if err != nil {
		return err
	}
	renderReport(cmd, report)
	return nil
}

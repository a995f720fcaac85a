package cmd

import (
	"context"
	"errors"
	"io"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/harrison/booksum/internal/logger"
	"github.com/harrison/booksum/internal/scanner"
	"github.com/harrison/booksum/internal/summary"
	"github.com/harrison/booksum/internal/watch"
)

// NewWatchCommand creates the watch subcommand: continuous regeneration
// while the book is being written.
func NewWatchCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "watch [root]",
		Short: "Regenerate the summary whenever chapters change",
		Long: `Watch the book root and regenerate the summary file after every
Markdown change. Regeneration is debounced so an editor save burst
produces a single rewrite. Stop with Ctrl-C.

Examples:
  booksum watch
  booksum watch docs/book --debounce 2s`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			root := "."
			if len(args) == 1 {
				root = args[0]
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			return watchWithOutput(ctx, root, cmd.Flags(), cmd.OutOrStdout())
		},
		SilenceUsage: true,
	}

	addGenerateFlags(cmd.Flags())
	cmd.Flags().Duration("debounce", watch.DefaultDebounce, "Quiet period before regenerating")

	return cmd
}

// watchWithOutput runs the watch loop until ctx is cancelled. Cancellation is
// the normal way to stop watching, so it is not reported as an error.
func watchWithOutput(ctx context.Context, root string, flags *pflag.FlagSet, output io.Writer) error {
	cfg, err := loadSettings(root, flags)
	if err != nil {
		return err
	}
	debounce, _ := flags.GetDuration("debounce")

	// Quiet mode drops the watching/regenerated chatter; warnings still show
	logLevel := cfg.LogLevel
	if quiet, _ := flags.GetBool("quiet"); quiet {
		logLevel = "warn"
	}

	log := logger.NewConsoleLogger(output, logLevel)
	opts := scanOptions(cfg)

	regenerate := func() error {
		entries, err := buildEntries(root, cfg, log)
		if err != nil {
			return err
		}
		return summary.Write(root, cfg.Output, entries)
	}

	watcher, err := watch.New(root, watch.Options{
		SkipDir:    func(name string) bool { return scanner.IsExcluded(name, opts) },
		SkipFile:   func(name string) bool { return scanner.IsExcluded(name, opts) },
		Debounce:   debounce,
		Regenerate: regenerate,
		Log:        log,
	})
	if err != nil {
		return err
	}

	log.Infof("watching %s (output %s)", root, cfg.Output)

	if err := watcher.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	return nil
}

package cmd

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/harrison/booksum/internal/logger"
	"github.com/harrison/booksum/internal/summary"
)

// NewCheckCommand creates the check subcommand for CI pipelines: it fails
// when the committed summary no longer matches the chapters on disk.
func NewCheckCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "check [root]",
		Short: "Verify the summary file is up to date",
		Long: `Regenerate the summary in memory and compare it with the file on disk.

Exit code 0 means the summary is current; a stale or missing summary exits
non-zero with a message naming the fix. Nothing is written.

Example:
  booksum check && echo "summary is current"`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			root := "."
			if len(args) == 1 {
				root = args[0]
			}
			return checkWithOutput(root, cmd.Flags(), cmd.OutOrStdout())
		},
		SilenceUsage: true,
	}

	addGenerateFlags(cmd.Flags())

	return cmd
}

// checkWithOutput compares the rendered summary against the file on disk.
func checkWithOutput(root string, flags *pflag.FlagSet, output io.Writer) error {
	cfg, err := loadSettings(root, flags)
	if err != nil {
		return err
	}

	log := logger.NewConsoleLogger(output, cfg.LogLevel)

	entries, err := buildEntries(root, cfg, log)
	if err != nil {
		return err
	}
	want := summary.Render(entries)

	got, err := os.ReadFile(filepath.Join(root, cfg.Output))
	if os.IsNotExist(err) {
		return fmt.Errorf("%s is missing; run booksum to generate it", cfg.Output)
	}
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", cfg.Output, err)
	}

	if string(got) != want {
		return fmt.Errorf("%s is stale; run booksum to regenerate it", cfg.Output)
	}

	if quiet, _ := flags.GetBool("quiet"); !quiet {
		fmt.Fprintf(output, "%s is up to date\n", cfg.Output)
	}
	return nil
}

package cmd

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/harrison/booksum/internal/config"
	"github.com/harrison/booksum/internal/logger"
	"github.com/harrison/booksum/internal/scanner"
	"github.com/harrison/booksum/internal/summary"
	"github.com/harrison/booksum/internal/title"
)

// NewGenerateCommand creates the generate subcommand, the explicit form of
// the bare `booksum` invocation.
func NewGenerateCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "generate [root]",
		Short: "Regenerate the summary file",
		Long: `Walk the book root for Markdown chapters and rewrite the summary file.

The root defaults to the current directory. Configuration is loaded from
.booksum.yaml at the root if present; flags override it.

Examples:
  booksum generate
  booksum generate docs/book
  booksum generate --titles content
  booksum generate --output TOC.md --quiet`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			root := "."
			if len(args) == 1 {
				root = args[0]
			}
			return generateWithOutput(root, cmd.Flags(), cmd.OutOrStdout())
		},
		SilenceUsage: true,
	}

	addGenerateFlags(cmd.Flags())

	return cmd
}

// addGenerateFlags registers the flags shared by the root, generate, check,
// and watch commands.
func addGenerateFlags(flags *pflag.FlagSet) {
	flags.String("config", "", "Path to config file (default: <root>/.booksum.yaml)")
	flags.String("output", "", "Summary file name (overrides config)")
	flags.String("titles", "", "Title source: filename or content (overrides config)")
	flags.String("log-level", "", "Log verbosity: trace, debug, info, warn, error")
	flags.Bool("quiet", false, "Suppress the confirmation message")
}

// loadSettings resolves the effective configuration for root from the config
// file and flag overrides.
func loadSettings(root string, flags *pflag.FlagSet) (*config.Config, error) {
	configPath, _ := flags.GetString("config")
	if configPath == "" {
		configPath = filepath.Join(root, config.DefaultFileName)
	}

	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		return nil, err
	}

	if output, _ := flags.GetString("output"); output != "" {
		cfg.Output = output
	}
	if titles, _ := flags.GetString("titles"); titles != "" {
		cfg.TitleSource = titles
	}
	if level, _ := flags.GetString("log-level"); level != "" {
		cfg.LogLevel = level
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// scanOptions maps configuration to scanner options.
func scanOptions(cfg *config.Config) scanner.Options {
	return scanner.Options{
		OutputName:   cfg.Output,
		ExcludeNames: cfg.Exclude,
	}
}

// titleResolver returns the title function for the configured source. In
// content mode, chapters that fail to read or declare no title fall back to
// the filename derivation.
func titleResolver(root string, cfg *config.Config, log *logger.ConsoleLogger) func(string) string {
	if cfg.TitleSource != config.TitleSourceContent {
		return title.FromFilename
	}

	return func(rel string) string {
		data, err := os.ReadFile(filepath.Join(root, rel))
		if err != nil {
			log.Warnf("failed to read %s for title, using filename: %v", rel, err)
			return title.FromFilename(rel)
		}
		if t, ok := title.FromContent(data); ok {
			return t
		}
		log.Debugf("%s declares no title, using filename", rel)
		return title.FromFilename(rel)
	}
}

// buildEntries runs the scan-derive pipeline without writing anything. A scan
// error aborts the run; there is no summary worth writing over a partially
// readable book.
func buildEntries(root string, cfg *config.Config, log *logger.ConsoleLogger) ([]summary.Entry, error) {
	files, err := scanner.Scan(root, scanOptions(cfg))
	if err != nil {
		return nil, err
	}
	log.Debugf("found %d chapters under %s", len(files), root)

	entries := summary.Build(files, summary.Options{
		TitleFor:          titleResolver(root, cfg, log),
		IntroductionLabel: cfg.IntroductionLabel,
	})
	return entries, nil
}

// generateWithOutput regenerates the summary for root, writing progress and
// the confirmation message to output (injectable for testing).
func generateWithOutput(root string, flags *pflag.FlagSet, output io.Writer) error {
	cfg, err := loadSettings(root, flags)
	if err != nil {
		return err
	}

	log := logger.NewConsoleLogger(output, cfg.LogLevel)

	entries, err := buildEntries(root, cfg, log)
	if err != nil {
		return err
	}

	if err := summary.Write(root, cfg.Output, entries); err != nil {
		return err
	}

	if quiet, _ := flags.GetBool("quiet"); !quiet {
		fmt.Fprintf(output, "%s regenerated with %d entries\n", cfg.Output, len(entries))
	}
	return nil
}

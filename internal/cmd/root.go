package cmd

import (
	"github.com/spf13/cobra"
)

// Version is injected at build time via -ldflags
var Version = "dev"

// NewRootCommand creates and returns the root cobra command for booksum.
// Invoked bare, it regenerates the summary for the current directory, which
// keeps the classic `booksum` invocation from a book root working.
func NewRootCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "booksum",
		Short: "Regenerate a book's SUMMARY.md from its Markdown chapters",
		Long: `Booksum walks a book manuscript for Markdown chapters and regenerates
its SUMMARY.md table of contents.

Chapters are discovered recursively, skipping dotfiles, build output
(_book), dependency directories (node_modules, vendor), and version
control. Titles are derived from file names (01-introduction.md becomes
"Introduction") or, with title_source: content, from each chapter's
frontmatter or first heading. A root README.md is always pinned first as
the Introduction entry.

Run with no arguments from the book root, or use the subcommands for an
explicit root, a CI staleness check, or continuous regeneration.`,
		Version: Version,
		RunE: func(cmd *cobra.Command, args []string) error {
			return generateWithOutput(".", cmd.Flags(), cmd.OutOrStdout())
		},
		// Silence usage on errors to avoid duplicate help text
		SilenceUsage: true,
	}

	addGenerateFlags(cmd.Flags())

	// Add subcommands
	cmd.AddCommand(NewGenerateCommand())
	cmd.AddCommand(NewCheckCommand())
	cmd.AddCommand(NewWatchCommand())

	return cmd
}

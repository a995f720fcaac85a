// Package summary renders the book's table of contents and writes it to disk.
package summary

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/harrison/booksum/internal/filelock"
)

// DefaultOutputName is the summary file written at the book root.
const DefaultOutputName = "SUMMARY.md"

// DefaultIntroductionLabel is the pinned label for the root README.md entry.
const DefaultIntroductionLabel = "Introduction"

// readmeName is matched exactly; only the root-level README.md is pinned.
const readmeName = "README.md"

// Entry is one line of the summary: a display title linking to a chapter.
type Entry struct {
	Title string
	Path  string
}

// Options configures how scanned chapters become summary entries.
type Options struct {
	// TitleFor maps a chapter path to its display title; required
	TitleFor func(path string) string
	// IntroductionLabel overrides the label of the pinned README.md entry
	IntroductionLabel string
}

// Build pairs chapter paths with display titles. A root-level README.md is
// pinned first under the introduction label; every other file becomes a
// generic entry in input order. README.md files in subdirectories are not
// special.
func Build(files []string, opts Options) []Entry {
	label := opts.IntroductionLabel
	if label == "" {
		label = DefaultIntroductionLabel
	}

	entries := make([]Entry, 0, len(files))
	for _, f := range files {
		if f == readmeName {
			// Pinned first regardless of where it sorts
			entries = append([]Entry{{Title: label, Path: readmeName}}, entries...)
			continue
		}
		entries = append(entries, Entry{Title: opts.TitleFor(f), Path: f})
	}
	return entries
}

// Render produces the full summary document: a level-1 Summary heading
// followed by one bullet per entry. Rendering the same entries always yields
// byte-identical output.
func Render(entries []Entry) string {
	var sb strings.Builder
	sb.WriteString("# Summary\n\n")
	for _, e := range entries {
		fmt.Fprintf(&sb, "* [%s](%s)\n", e.Title, e.Path)
	}
	return sb.String()
}

// Write renders entries and replaces the summary file at the book root. The
// write goes through an advisory lock and a temp-file rename, so a watch loop
// and a manual run never leave a torn summary behind.
func Write(root, output string, entries []Entry) error {
	path := filepath.Join(root, output)
	if err := filelock.LockAndWrite(path, []byte(Render(entries))); err != nil {
		return fmt.Errorf("failed to write %s: %w", output, err)
	}
	return nil
}

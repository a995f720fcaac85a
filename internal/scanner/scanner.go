package scanner

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// Options configures chapter discovery.
type Options struct {
	// OutputName is the summary file to leave out of the chapter list (e.g., "SUMMARY.md")
	OutputName string
	// ExcludeNames is a list of additional exact names to skip (files or directories)
	ExcludeNames []string
}

// DefaultExcludes returns the names always skipped during a scan:
// build output, dependency directories, and version control.
func DefaultExcludes() []string {
	return []string{"_book", "node_modules", "vendor", ".git"}
}

// excludeSet combines the default denylist with the options' output file and
// extra names.
func (o Options) excludeSet() map[string]bool {
	set := make(map[string]bool)
	for _, name := range DefaultExcludes() {
		set[name] = true
	}
	for _, name := range o.ExcludeNames {
		set[name] = true
	}
	if o.OutputName != "" {
		set[o.OutputName] = true
	}
	return set
}

// IsExcluded reports whether an entry name would be skipped by Scan under
// opts, dot-prefix rule included. The watch loop uses this to ignore events
// from outside the book.
func IsExcluded(name string, opts Options) bool {
	return excluded(name, opts.excludeSet()) || strings.HasPrefix(name, ".")
}

// Scan walks root and collects every Markdown file that belongs in the book
// summary. Entries are matched against the exclusion set by exact name, with
// and without their extension, so a file named "node_modules.md" is skipped
// the same way the "node_modules" directory is. Dot-prefixed entries and
// symbolic links are never descended into or collected. Returned paths are
// relative to root and sorted for deterministic output.
//
// Any filesystem error during the walk fails the whole scan: a summary built
// from a partially readable tree would silently drop chapters, so there is no
// partial recovery.
func Scan(root string, opts Options) ([]string, error) {
	info, err := os.Stat(root)
	if err != nil {
		return nil, fmt.Errorf("failed to access directory: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("path is not a directory: %s", root)
	}

	excludeMap := opts.excludeSet()

	files := make([]string, 0)

	err = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return fmt.Errorf("error accessing %s: %w", path, err)
		}

		// Skip the root directory itself
		if path == root {
			return nil
		}

		name := d.Name()

		if d.IsDir() {
			if excluded(name, excludeMap) || strings.HasPrefix(name, ".") {
				return filepath.SkipDir
			}
			return nil
		}

		// Symlinks are skipped rather than followed; a link pointing outside
		// the root must not pull foreign files into the summary
		if d.Type()&fs.ModeSymlink != 0 {
			return nil
		}

		if !strings.EqualFold(filepath.Ext(name), ".md") {
			return nil
		}
		if excluded(name, excludeMap) || strings.HasPrefix(name, ".") {
			return nil
		}

		rel, err := filepath.Rel(root, path)
		if err != nil {
			return fmt.Errorf("failed to resolve path %s: %w", path, err)
		}

		files = append(files, filepath.ToSlash(rel))
		return nil
	})

	if err != nil {
		return nil, fmt.Errorf("failed to walk directory: %w", err)
	}

	// Sort files for consistent output
	sort.Strings(files)

	return files, nil
}

// excluded reports whether name matches an exclusion entry, either exactly or
// once its extension is dropped. The extensionless comparison preserves the
// original name-based matching quirk: "node_modules.md" is excluded because
// "node_modules" is.
func excluded(name string, excludeMap map[string]bool) bool {
	if excludeMap[name] {
		return true
	}
	if ext := filepath.Ext(name); ext != "" {
		return excludeMap[strings.TrimSuffix(name, ext)]
	}
	return false
}

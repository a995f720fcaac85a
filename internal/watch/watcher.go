// Package watch regenerates the book summary whenever chapters change.
package watch

import (
	"context"
	"fmt"
	"io/fs"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/harrison/booksum/internal/logger"
)

// DefaultDebounce batches the burst of events an editor save produces.
const DefaultDebounce = 500 * time.Millisecond

// Watcher monitors a book root for Markdown changes and triggers a
// regeneration callback after a debounce window. Directories are watched
// recursively; newly created subdirectories are added on the fly.
type Watcher struct {
	root       string
	skipDir    func(name string) bool
	skipFile   func(name string) bool
	debounce   time.Duration
	regenerate func() error
	log        *logger.ConsoleLogger
	watcher    *fsnotify.Watcher
}

// Options configures a Watcher.
type Options struct {
	// SkipDir reports whether a directory name is outside the book (excluded
	// or dot-prefixed); such directories are not watched
	SkipDir func(name string) bool
	// SkipFile reports whether a file name cannot affect the summary
	SkipFile func(name string) bool
	// Debounce is the quiet period before regenerating; DefaultDebounce if zero
	Debounce time.Duration
	// Regenerate rebuilds the summary; required
	Regenerate func() error
	// Log receives watcher progress; required
	Log *logger.ConsoleLogger
}

// New creates a Watcher rooted at root. Call Run to start watching.
func New(root string, opts Options) (*Watcher, error) {
	fsWatcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create watcher: %w", err)
	}

	debounce := opts.Debounce
	if debounce == 0 {
		debounce = DefaultDebounce
	}
	skipDir := opts.SkipDir
	if skipDir == nil {
		skipDir = func(string) bool { return false }
	}
	skipFile := opts.SkipFile
	if skipFile == nil {
		skipFile = func(string) bool { return false }
	}

	return &Watcher{
		root:       root,
		skipDir:    skipDir,
		skipFile:   skipFile,
		debounce:   debounce,
		regenerate: opts.Regenerate,
		log:        opts.Log,
		watcher:    fsWatcher,
	}, nil
}

// Run watches until ctx is cancelled. It regenerates once at startup so the
// summary is current before the first change arrives.
func (w *Watcher) Run(ctx context.Context) error {
	defer w.watcher.Close()

	if err := w.addRecursive(w.root); err != nil {
		return err
	}

	if err := w.regenerate(); err != nil {
		return err
	}

	// A nil-channel timer select arm stays disabled until the first event
	var pending *time.Timer
	var fire <-chan time.Time

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case event, ok := <-w.watcher.Events:
			if !ok {
				return nil
			}
			if !w.relevant(event) {
				continue
			}

			w.log.Debugf("change detected: %s (%s)", event.Name, event.Op)

			// A new directory may bring chapters with it; watch it too
			if event.Op.Has(fsnotify.Create) {
				if err := w.addRecursive(event.Name); err != nil {
					w.log.Warnf("failed to watch %s: %v", event.Name, err)
				}
			}

			if pending == nil {
				pending = time.NewTimer(w.debounce)
				fire = pending.C
			} else {
				if !pending.Stop() {
					select {
					case <-pending.C:
					default:
					}
				}
				pending.Reset(w.debounce)
			}

		case <-fire:
			pending = nil
			fire = nil
			if err := w.regenerate(); err != nil {
				w.log.Errorf("regeneration failed: %v", err)
				continue
			}
			w.log.Infof("summary regenerated")

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return nil
			}
			w.log.Warnf("watch error: %v", err)
		}
	}
}

// relevant filters events down to those that can change the summary:
// Markdown files plus directory creations and removals.
func (w *Watcher) relevant(event fsnotify.Event) bool {
	name := filepath.Base(event.Name)
	if w.skipFile(name) || strings.HasPrefix(name, ".") {
		return false
	}
	if strings.EqualFold(filepath.Ext(name), ".md") {
		return true
	}
	// Extensionless names are likely directories; renames and removals no
	// longer stat, so err on the side of regenerating
	return filepath.Ext(name) == ""
}

// addRecursive watches path and every non-excluded subdirectory beneath it.
// Non-directory paths are ignored.
func (w *Watcher) addRecursive(path string) error {
	return filepath.WalkDir(path, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			// The entry may already be gone; watching continues
			return nil
		}
		if !d.IsDir() {
			return nil
		}
		name := d.Name()
		if p != path && (w.skipDir(name) || strings.HasPrefix(name, ".")) {
			return filepath.SkipDir
		}
		if err := w.watcher.Add(p); err != nil {
			return fmt.Errorf("failed to watch %s: %w", p, err)
		}
		return nil
	})
}

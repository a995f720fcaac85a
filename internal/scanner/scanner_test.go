package scanner

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"
)

// writeTree creates the given relative files under dir with stub content.
func writeTree(t *testing.T, dir string, files []string) {
	t.Helper()
	for _, f := range files {
		path := filepath.Join(dir, f)
		if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
			t.Fatalf("failed to create directory: %v", err)
		}
		if err := os.WriteFile(path, []byte("# stub\n"), 0644); err != nil {
			t.Fatalf("failed to create file: %v", err)
		}
	}
}

func TestScan(t *testing.T) {
	tests := []struct {
		name      string
		files     []string
		opts      Options
		wantFiles []string
	}{
		{
			name: "flat book with readme",
			files: []string{
				"README.md",
				"1-chapter-one.md",
				"2-chapter-two.md",
				"node_modules/notes.md",
			},
			opts:      Options{OutputName: "SUMMARY.md"},
			wantFiles: []string{"1-chapter-one.md", "2-chapter-two.md", "README.md"},
		},
		{
			name: "nested chapters are collected recursively",
			files: []string{
				"intro.md",
				"part1/01-setup.md",
				"part1/advanced/02-tuning.md",
			},
			opts:      Options{OutputName: "SUMMARY.md"},
			wantFiles: []string{"intro.md", "part1/01-setup.md", "part1/advanced/02-tuning.md"},
		},
		{
			name: "output file and build dirs excluded",
			files: []string{
				"SUMMARY.md",
				"chapter.md",
				"_book/chapter.md",
				"vendor/dep.md",
			},
			opts:      Options{OutputName: "SUMMARY.md"},
			wantFiles: []string{"chapter.md"},
		},
		{
			name: "dot entries skipped",
			files: []string{
				"chapter.md",
				".draft.md",
				".git/objects/readme.md",
				".obsidian/notes.md",
			},
			opts:      Options{OutputName: "SUMMARY.md"},
			wantFiles: []string{"chapter.md"},
		},
		{
			name: "non-markdown files ignored",
			files: []string{
				"chapter.md",
				"cover.png",
				"book.json",
				"Makefile",
			},
			opts:      Options{OutputName: "SUMMARY.md"},
			wantFiles: []string{"chapter.md"},
		},
		{
			name: "name-based exclusion also matches without extension",
			files: []string{
				"node_modules.md", // a legitimate-looking chapter, still excluded by name
				"chapter.md",
			},
			opts:      Options{OutputName: "SUMMARY.md"},
			wantFiles: []string{"chapter.md"},
		},
		{
			name: "extra exclude names",
			files: []string{
				"chapter.md",
				"drafts/wip.md",
				"CHANGELOG.md",
			},
			opts:      Options{OutputName: "SUMMARY.md", ExcludeNames: []string{"drafts", "CHANGELOG.md"}},
			wantFiles: []string{"chapter.md"},
		},
		{
			name: "case-insensitive markdown extension",
			files: []string{
				"chapter.MD",
				"other.md",
			},
			opts:      Options{OutputName: "SUMMARY.md"},
			wantFiles: []string{"chapter.MD", "other.md"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tmpDir := t.TempDir()
			writeTree(t, tmpDir, tt.files)

			files, err := Scan(tmpDir, tt.opts)
			if err != nil {
				t.Fatalf("Scan() error = %v", err)
			}
			if !reflect.DeepEqual(files, tt.wantFiles) {
				t.Errorf("Scan() files = %v, want %v", files, tt.wantFiles)
			}
		})
	}
}

func TestScanMissingRoot(t *testing.T) {
	_, err := Scan(filepath.Join(t.TempDir(), "does-not-exist"), Options{})
	if err == nil {
		t.Fatal("Scan() expected error for missing root")
	}
}

func TestScanRootIsFile(t *testing.T) {
	tmpDir := t.TempDir()
	path := filepath.Join(tmpDir, "file.md")
	if err := os.WriteFile(path, []byte("x"), 0644); err != nil {
		t.Fatalf("failed to create file: %v", err)
	}

	_, err := Scan(path, Options{})
	if err == nil {
		t.Fatal("Scan() expected error when root is a file")
	}
}

func TestScanSkipsSymlinks(t *testing.T) {
	tmpDir := t.TempDir()
	outside := t.TempDir()
	writeTree(t, tmpDir, []string{"chapter.md"})
	writeTree(t, outside, []string{"external.md"})

	if err := os.Symlink(filepath.Join(outside, "external.md"), filepath.Join(tmpDir, "linked.md")); err != nil {
		t.Skipf("symlinks not supported: %v", err)
	}

	files, err := Scan(tmpDir, Options{OutputName: "SUMMARY.md"})
	if err != nil {
		t.Fatalf("Scan() error = %v", err)
	}

	want := []string{"chapter.md"}
	if !reflect.DeepEqual(files, want) {
		t.Errorf("Scan() files = %v, want %v", files, want)
	}
}

func TestScanFailsOnUnreadableSubtree(t *testing.T) {
	if os.Geteuid() == 0 {
		t.Skip("running as root; permission checks are bypassed")
	}

	tmpDir := t.TempDir()
	writeTree(t, tmpDir, []string{"chapter.md", "part1/hidden.md"})

	locked := filepath.Join(tmpDir, "part1")
	if err := os.Chmod(locked, 0000); err != nil {
		t.Fatalf("failed to chmod: %v", err)
	}
	t.Cleanup(func() { os.Chmod(locked, 0755) })

	_, err := Scan(tmpDir, Options{OutputName: "SUMMARY.md"})
	if err == nil {
		t.Fatal("Scan() expected error for unreadable subtree; a partial chapter list must not succeed")
	}
}

func TestScanDeterministicOrder(t *testing.T) {
	tmpDir := t.TempDir()
	writeTree(t, tmpDir, []string{"b.md", "a.md", "sub/c.md"})

	first, err := Scan(tmpDir, Options{OutputName: "SUMMARY.md"})
	if err != nil {
		t.Fatalf("Scan() error = %v", err)
	}
	second, err := Scan(tmpDir, Options{OutputName: "SUMMARY.md"})
	if err != nil {
		t.Fatalf("Scan() error = %v", err)
	}

	if !reflect.DeepEqual(first, second) {
		t.Errorf("Scan() order not stable: %v vs %v", first, second)
	}
}

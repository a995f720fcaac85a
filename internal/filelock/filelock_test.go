package filelock

import (
	"bytes"
	"os"
	"path/filepath"
	"strconv"
	"sync"
	"testing"
)

func TestLockUnlock(t *testing.T) {
	lock := NewFileLock(filepath.Join(t.TempDir(), "summary.lock"))

	if err := lock.Lock(); err != nil {
		t.Fatalf("Failed to acquire lock: %v", err)
	}
	if err := lock.Unlock(); err != nil {
		t.Fatalf("Failed to release lock: %v", err)
	}
}

func TestAtomicWrite(t *testing.T) {
	tmpDir := t.TempDir()
	path := filepath.Join(tmpDir, "SUMMARY.md")
	content := []byte("# Summary\n\n* [Introduction](README.md)\n")

	if err := AtomicWrite(path, content); err != nil {
		t.Fatalf("AtomicWrite() error = %v", err)
	}

	got, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("failed to read written file: %v", err)
	}
	if !bytes.Equal(got, content) {
		t.Errorf("written content = %q, want %q", got, content)
	}

	// No temp file debris left behind
	entries, err := os.ReadDir(tmpDir)
	if err != nil {
		t.Fatalf("failed to read dir: %v", err)
	}
	if len(entries) != 1 {
		t.Errorf("expected only the target file in dir, got %d entries", len(entries))
	}
}

func TestAtomicWriteOverwrites(t *testing.T) {
	path := filepath.Join(t.TempDir(), "SUMMARY.md")

	if err := AtomicWrite(path, []byte("old")); err != nil {
		t.Fatalf("AtomicWrite() error = %v", err)
	}
	if err := AtomicWrite(path, []byte("new")); err != nil {
		t.Fatalf("AtomicWrite() error = %v", err)
	}

	got, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("failed to read written file: %v", err)
	}
	if string(got) != "new" {
		t.Errorf("content = %q, want %q", got, "new")
	}
}

func TestAtomicWriteCreatesParentDir(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "deep", "SUMMARY.md")

	if err := AtomicWrite(path, []byte("x")); err != nil {
		t.Fatalf("AtomicWrite() error = %v", err)
	}
	if _, err := os.Stat(path); err != nil {
		t.Errorf("written file not found: %v", err)
	}
}

func TestLockAndWriteConcurrent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "SUMMARY.md")

	const writers = 8
	var wg sync.WaitGroup
	wg.Add(writers)

	for i := 0; i < writers; i++ {
		go func(n int) {
			defer wg.Done()
			data := []byte("# Summary " + strconv.Itoa(n) + "\n")
			if err := LockAndWrite(path, data); err != nil {
				t.Errorf("LockAndWrite() error = %v", err)
			}
		}(i)
	}
	wg.Wait()

	// Whatever writer won, the file must be one complete write
	got, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("failed to read written file: %v", err)
	}
	if !bytes.HasPrefix(got, []byte("# Summary ")) || !bytes.HasSuffix(got, []byte("\n")) {
		t.Errorf("file content torn: %q", got)
	}
}

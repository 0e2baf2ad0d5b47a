package media

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestSweepRemovesLeftovers(t *testing.T) {
	root := t.TempDir()
	if err := os.WriteFile(filepath.Join(root, "media_video.mp4.part"), []byte("x"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	if err := os.MkdirAll(filepath.Join(root, "stale", "inner"), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}

	removed, err := NewWorkDir(root).Sweep()
	if err != nil {
		t.Fatalf("Sweep error: %v", err)
	}
	if removed != 2 {
		t.Fatalf("removed = %d, want 2", removed)
	}

	entries, _ := os.ReadDir(root)
	if len(entries) != 0 {
		t.Fatalf("%d entries left after sweep", len(entries))
	}
}

func TestSweepCreatesMissingRoot(t *testing.T) {
	root := filepath.Join(t.TempDir(), "temp_media")
	if _, err := NewWorkDir(root).Sweep(); err != nil {
		t.Fatalf("Sweep error: %v", err)
	}
	if info, err := os.Stat(root); err != nil || !info.IsDir() {
		t.Fatalf("root not created: %v", err)
	}
}

func TestAttemptCleanup(t *testing.T) {
	w := NewWorkDir(t.TempDir())

	dir, cleanup, err := w.Attempt()
	if err != nil {
		t.Fatalf("Attempt error: %v", err)
	}
	if err := os.WriteFile(filepath.Join(dir, "a.jpg"), []byte("x"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}

	if err := cleanup(); err != nil {
		t.Fatalf("cleanup: %v", err)
	}
	if err := cleanup(); err != nil {
		t.Fatalf("second cleanup: %v", err)
	}

	if _, err := os.Stat(dir); !os.IsNotExist(err) {
		t.Fatalf("attempt dir still exists: %v", err)
	}
}

func TestAttemptCleanupReportsFailure(t *testing.T) {
	w := NewWorkDir(t.TempDir())
	w.removeAll = func(string) error { return os.ErrPermission }

	dir, cleanup, err := w.Attempt()
	if err != nil {
		t.Fatalf("Attempt error: %v", err)
	}

	err = cleanup()
	if !errors.Is(err, os.ErrPermission) {
		t.Fatalf("cleanup error = %v, want permission error", err)
	}
	if !strings.Contains(err.Error(), dir) {
		t.Fatalf("cleanup error %q does not name %s", err, dir)
	}
}

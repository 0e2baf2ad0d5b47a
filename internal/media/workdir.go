package media

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/uuid"
)

// WorkDir owns the directory where media is materialized. Every mirroring
// attempt gets its own subdirectory which is removed when the attempt ends.
type WorkDir struct {
	root      string
	removeAll func(path string) error
}

func NewWorkDir(root string) *WorkDir {
	return &WorkDir{root: root, removeAll: os.RemoveAll}
}

func (w *WorkDir) Root() string {
	return w.root
}

// Sweep deletes anything left behind by an interrupted run and returns the
// number of entries removed.
func (w *WorkDir) Sweep() (int, error) {
	if err := os.MkdirAll(w.root, 0o755); err != nil {
		return 0, fmt.Errorf("failed to create work dir: %w", err)
	}

	entries, err := os.ReadDir(w.root)
	if err != nil {
		return 0, fmt.Errorf("failed to list work dir: %w", err)
	}

	removed := 0
	for _, e := range entries {
		if err := w.removeAll(filepath.Join(w.root, e.Name())); err != nil {
			return removed, fmt.Errorf("failed to remove %s: %w", e.Name(), err)
		}
		removed++
	}
	return removed, nil
}

// Attempt creates a fresh subdirectory. The returned cleanup removes it with
// everything inside and is safe to call more than once. A cleanup error
// leaves the directory to the next Sweep.
func (w *WorkDir) Attempt() (string, func() error, error) {
	dir := filepath.Join(w.root, uuid.NewString())
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", func() error { return nil }, fmt.Errorf("failed to create attempt dir: %w", err)
	}

	cleanup := func() error {
		if err := w.removeAll(dir); err != nil {
			return fmt.Errorf("failed to remove attempt dir %s: %w", dir, err)
		}
		return nil
	}
	return dir, cleanup, nil
}

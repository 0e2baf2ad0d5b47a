package ledger

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Ledger is the bounded, insertion-ordered set of source ids already
// mirrored. It is loaded once per run and rewritten atomically.
type Ledger struct {
	path  string
	max   int
	ids   []string
	set   map[string]struct{}
	dirty bool
}

// Open loads the ledger at path. A missing file yields an empty ledger.
// Duplicates keep their first position and only the newest max ids survive.
func Open(path string, max int) (*Ledger, error) {
	if max <= 0 {
		return nil, fmt.Errorf("ledger size must be positive, got %d", max)
	}

	l := &Ledger{
		path: path,
		max:  max,
		set:  make(map[string]struct{}),
	}

	f, err := os.Open(path)
	if errors.Is(err, os.ErrNotExist) {
		return l, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to open ledger: %w", err)
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		id := strings.TrimSpace(scanner.Text())
		if id == "" {
			continue
		}
		if _, seen := l.set[id]; seen {
			continue
		}
		l.set[id] = struct{}{}
		l.ids = append(l.ids, id)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read ledger: %w", err)
	}

	l.trim()
	l.dirty = false
	return l, nil
}

// Contains reports whether id has already been mirrored.
func (l *Ledger) Contains(id string) bool {
	_, ok := l.set[id]
	return ok
}

// Append records id as the newest entry. It returns false when id is already
// present; re-appending never moves an entry.
func (l *Ledger) Append(id string) bool {
	if id == "" || l.Contains(id) {
		return false
	}
	l.set[id] = struct{}{}
	l.ids = append(l.ids, id)
	l.trim()
	l.dirty = true
	return true
}

// trim evicts the oldest entries beyond max.
func (l *Ledger) trim() {
	overflow := len(l.ids) - l.max
	if overflow <= 0 {
		return
	}
	for _, id := range l.ids[:overflow] {
		delete(l.set, id)
	}
	l.ids = append([]string(nil), l.ids[overflow:]...)
	l.dirty = true
}

func (l *Ledger) Len() int {
	return len(l.ids)
}

func (l *Ledger) Path() string {
	return l.path
}

// IDs returns a copy of the entries, oldest first.
func (l *Ledger) IDs() []string {
	return append([]string(nil), l.ids...)
}

// Dirty reports whether there are changes not yet saved.
func (l *Ledger) Dirty() bool {
	return l.dirty
}

// Save replaces the ledger file with the current entries by writing a
// temporary sibling and renaming it over the original.
func (l *Ledger) Save() error {
	dir := filepath.Dir(l.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create ledger dir: %w", err)
	}

	tmp, err := os.CreateTemp(dir, filepath.Base(l.path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("failed to create temp ledger: %w", err)
	}
	tmpPath := tmp.Name()
	defer os.Remove(tmpPath)

	w := bufio.NewWriter(tmp)
	for _, id := range l.ids {
		if _, err := w.WriteString(id + "\n"); err != nil {
			tmp.Close()
			return fmt.Errorf("failed to write temp ledger: %w", err)
		}
	}
	if err := w.Flush(); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to flush temp ledger: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to sync temp ledger: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to close temp ledger: %w", err)
	}

	if err := os.Rename(tmpPath, l.path); err != nil {
		return fmt.Errorf("failed to replace ledger: %w", err)
	}

	l.dirty = false
	return nil
}

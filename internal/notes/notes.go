// Package notes appends dictated notes to a plain-text journal.
package notes

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/spf13/afero"
)

// ErrEmptyNote reports a save with no dictated lines.
var ErrEmptyNote = errors.New("note is empty")

const timestampLayout = "2006-01-02 15:04:05.000000"

// Store appends notes to a single file.
type Store struct {
	fs   afero.Fs
	path string
	now  func() time.Time

	mu sync.Mutex
}

// NewStore returns a store writing to path on fs.
func NewStore(fs afero.Fs, path string) *Store {
	return &Store{fs: fs, path: path, now: time.Now}
}

// Path returns the journal file path.
func (s *Store) Path() string {
	return s.path
}

// Append writes one timestamped note block.
func (s *Store) Append(lines []string) error {
	if len(lines) == 0 {
		return ErrEmptyNote
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.fs.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return fmt.Errorf("ensure notes dir: %w", err)
	}

	f, err := s.fs.OpenFile(s.path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("open notes file %q: %w", s.path, err)
	}
	defer f.Close()

	block := s.now().Format(timestampLayout) + "\n" + strings.Join(lines, "\n") + "\n\n"
	if _, err := f.WriteString(block); err != nil {
		return fmt.Errorf("write notes file %q: %w", s.path, err)
	}
	return nil
}

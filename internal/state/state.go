// Package state holds the process-wide session flags shared by matcher and dispatcher.
package state

import (
	"sync"

	"github.com/rbright/golos/internal/fsm"
)

// Snapshot is a consistent read of the session used for one match.
type Snapshot struct {
	CommandsEnabled bool
	Note            fsm.State
	NoteLines       int
}

// Recording reports whether a note is being dictated.
func (s Snapshot) Recording() bool {
	return s.Note == fsm.StateRecording
}

// Session guards the commands-enabled flag and the note buffer.
type Session struct {
	mu      sync.RWMutex
	enabled bool
	note    fsm.State
	lines   []string
}

// New returns a session with commands enabled and no note in progress.
func New() *Session {
	return &Session{enabled: true, note: fsm.StateIdle}
}

// Snapshot returns the current state.
func (s *Session) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return Snapshot{CommandsEnabled: s.enabled, Note: s.note, NoteLines: len(s.lines)}
}

// CommandsEnabled reports whether non-control commands dispatch.
func (s *Session) CommandsEnabled() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.enabled
}

// SetCommandsEnabled updates the flag and reports whether it changed.
func (s *Session) SetCommandsEnabled(enabled bool) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	changed := s.enabled != enabled
	s.enabled = enabled
	return changed
}

// StartNote enters recording mode with an empty buffer.
func (s *Session) StartNote() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.transition(fsm.EventStart); err != nil {
		return err
	}
	s.lines = nil
	return nil
}

// AppendNote buffers one dictated line.
func (s *Session) AppendNote(line string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.transition(fsm.EventAppend); err != nil {
		return err
	}
	s.lines = append(s.lines, line)
	return nil
}

// TakeNote leaves recording mode and returns the buffered lines.
func (s *Session) TakeNote() ([]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.transition(fsm.EventSave); err != nil {
		return nil, err
	}
	lines := s.lines
	s.lines = nil
	return lines, nil
}

// DiscardNote leaves recording mode and drops the buffer, returning how many
// lines were dropped.
func (s *Session) DiscardNote() (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.transition(fsm.EventDiscard); err != nil {
		return 0, err
	}
	n := len(s.lines)
	s.lines = nil
	return n, nil
}

func (s *Session) transition(event fsm.Event) error {
	next, err := fsm.Transition(s.note, event)
	if err != nil {
		return err
	}
	s.note = next
	return nil
}

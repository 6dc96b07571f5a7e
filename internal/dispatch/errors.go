package dispatch

import (
	"errors"

	"github.com/rbright/golos/internal/action"
	"github.com/rbright/golos/internal/notes"
)

var (
	// ErrUnknownAction reports a bound action name with no descriptor.
	ErrUnknownAction = action.ErrUnknownAction
	// ErrInvalidParams reports params the action cannot be built from.
	ErrInvalidParams = action.ErrInvalidParams
	// ErrActionRaised wraps any failure or panic inside an action handler.
	ErrActionRaised = errors.New("action failed")
	// ErrEmptyNote reports a save with nothing dictated.
	ErrEmptyNote = notes.ErrEmptyNote
	// ErrNoMatch reports an utterance nothing recognized while commands are enabled.
	ErrNoMatch = errors.New("no command matched")
)

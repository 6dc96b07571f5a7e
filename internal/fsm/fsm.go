// Package fsm holds the note-taking lifecycle as a pure transition table.
package fsm

import (
	"errors"
	"fmt"
)

// State is the note lifecycle position.
type State string

// Event is a note command applied to a State.
type Event string

const (
	StateIdle      State = "idle"
	StateRecording State = "recording"
)

const (
	EventStart   Event = "start"
	EventAppend  Event = "append"
	EventSave    Event = "save"
	EventDiscard Event = "discard"
)

var table = map[State]map[Event]State{
	StateIdle: {
		EventStart: StateRecording,
	},
	StateRecording: {
		EventAppend:  StateRecording,
		EventSave:    StateIdle,
		EventDiscard: StateIdle,
	},
}

// ErrUnknownState is returned for a state outside the table.
var ErrUnknownState = errors.New("unknown note state")

// TransitionError reports an event that is not allowed in a state.
type TransitionError struct {
	From  State
	Event Event
}

func (e *TransitionError) Error() string {
	return fmt.Sprintf("invalid transition: %s --(%s)--> ?", e.From, e.Event)
}

// Transition applies event to current. On error the returned state is
// current unchanged.
func Transition(current State, event Event) (State, error) {
	edges, ok := table[current]
	if !ok {
		return current, fmt.Errorf("%w %q", ErrUnknownState, current)
	}
	next, ok := edges[event]
	if !ok {
		return current, &TransitionError{From: current, Event: event}
	}
	return next, nil
}


package fsm

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestTransitionNoteLifecycle(t *testing.T) {
	s := StateIdle
	for _, step := range []struct {
		event Event
		want  State
	}{
		{EventStart, StateRecording},
		{EventAppend, StateRecording},
		{EventAppend, StateRecording},
		{EventSave, StateIdle},
		{EventStart, StateRecording},
		{EventDiscard, StateIdle},
	} {
		next, err := Transition(s, step.event)
		require.NoError(t, err, "event %s from %s", step.event, s)
		require.Equal(t, step.want, next)
		s = next
	}
}

func TestTransitionRejectsInvalidEvents(t *testing.T) {
	tests := []struct {
		state State
		event Event
	}{
		{StateIdle, EventAppend},
		{StateIdle, EventSave},
		{StateIdle, EventDiscard},
		{StateRecording, EventStart},
		{StateRecording, Event("pause")},
	}

	for _, tc := range tests {
		t.Run(string(tc.state)+"/"+string(tc.event), func(t *testing.T) {
			next, err := Transition(tc.state, tc.event)
			require.Equal(t, tc.state, next)

			var terr *TransitionError
			require.ErrorAs(t, err, &terr)
			require.Equal(t, tc.state, terr.From)
			require.Equal(t, tc.event, terr.Event)
			require.Contains(t, err.Error(), "invalid transition")
		})
	}
}

func TestTransitionUnknownState(t *testing.T) {
	next, err := Transition(State("paused"), EventStart)
	require.ErrorIs(t, err, ErrUnknownState)
	require.Equal(t, State("paused"), next)
}

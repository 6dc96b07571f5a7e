package action

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestResolveBuildsTypedActions(t *testing.T) {
	tests := []struct {
		name   string
		action string
		params []string
		want   Action
	}{
		{name: "open app", action: "open_app", params: []string{"firefox"}, want: OpenApp{App: "firefox"}},
		{name: "kill", action: "kill_process", params: []string{"telegram"}, want: KillProcess{Pattern: "telegram"}},
		{name: "close all alias", action: "close_all", params: []string{"chrome"}, want: KillProcess{Pattern: "chrome", Alias: "close_all"}},
		{name: "url", action: "open_url", params: []string{"https://example.com"}, want: OpenURL{URL: "https://example.com"}},
		{name: "shell", action: "system_command", params: []string{"echo hi"}, want: SystemCommand{Command: "echo hi"}},
		{name: "wiggle", action: "move_mouse", want: WiggleMouse{}},
		{name: "click default", action: "click_mouse", want: Click{Times: 1}},
		{name: "click times", action: "click_mouse", params: []string{" 3 "}, want: Click{Times: 3}},
		{name: "move pointer", action: "move_pointer", params: []string{"-20", "15"}, want: MovePointer{DX: -20, DY: 15}},
		{name: "screenshot", action: "take_screenshot", want: Screenshot{}},
		{name: "focus", action: "focus_mode", want: FocusMode{}},
		{name: "say joins", action: "say", params: []string{"привет", "мир"}, want: Say{Text: "привет мир"}},
		{name: "enable", action: "enable_commands", want: EnableCommands{}},
		{name: "disable", action: "disable_commands", want: DisableCommands{}},
		{name: "disable for", action: "disable_commands_for", params: []string{"5", "минут"}, want: DisableCommands{For: 5 * time.Minute, Timed: true}},
		{name: "timer", action: "timer_10_minutes", want: Timer{Duration: 10 * time.Minute}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, err := Resolve(tc.action, tc.params)
			require.NoError(t, err)
			require.Equal(t, tc.want, got)
			require.Equal(t, tc.action, got.Name())
		})
	}
}

func TestResolveFailures(t *testing.T) {
	_, err := Resolve("launch_rocket", nil)
	require.ErrorIs(t, err, ErrUnknownAction)
	require.Contains(t, err.Error(), "launch_rocket")

	_, err = Resolve("open_app", nil)
	require.ErrorIs(t, err, ErrInvalidParams)
	require.Contains(t, err.Error(), "takes 1 params, got 0")

	_, err = Resolve("take_screenshot", []string{"extra"})
	require.ErrorIs(t, err, ErrInvalidParams)

	_, err = Resolve("click_mouse", []string{"zero"})
	require.ErrorIs(t, err, ErrInvalidParams)

	_, err = Resolve("click_mouse", []string{"0"})
	require.ErrorIs(t, err, ErrInvalidParams)

	_, err = Resolve("say", nil)
	require.ErrorIs(t, err, ErrInvalidParams)
	require.Contains(t, err.Error(), "at least 1")

	require.NoError(t, Validate("say", []string{"a"}))
}

func TestDurationFor(t *testing.T) {
	tests := []struct {
		n    int
		unit string
		want time.Duration
	}{
		{n: 30, unit: "секунд", want: 30 * time.Second},
		{n: 2, unit: "минуты", want: 2 * time.Minute},
		{n: 3, unit: "часа", want: 3 * time.Hour},
		{n: 1, unit: "Minute", want: time.Minute},
		{n: 4, unit: "whatever", want: 4 * time.Second},
		{n: 0, unit: "секунд", want: 0},
	}

	for _, tc := range tests {
		got, err := DurationFor(tc.n, tc.unit)
		require.NoError(t, err)
		require.Equal(t, tc.want, got)
	}
}

func TestDurationForRejectsOutOfRange(t *testing.T) {
	_, err := DurationFor(9999999999, "часов")
	require.ErrorIs(t, err, ErrInvalidParams)

	_, err = DurationFor(-1, "секунд")
	require.ErrorIs(t, err, ErrInvalidParams)
}

func TestNamesSortedAndResolvable(t *testing.T) {
	names := Names()
	require.Contains(t, names, "take_screenshot")
	require.IsNonDecreasing(t, names)

	for _, name := range names {
		d, ok := Lookup(name)
		require.True(t, ok)
		require.Equal(t, name, d.Name)
	}
}

type recordingEffects struct {
	calls []string
	err   error
}

func (r *recordingEffects) record(call string) error {
	r.calls = append(r.calls, call)
	return r.err
}

func (r *recordingEffects) OpenApp(_ context.Context, name string) error { return r.record("open:" + name) }
func (r *recordingEffects) KillProcess(_ context.Context, p string) error {
	return r.record("kill:" + p)
}
func (r *recordingEffects) OpenURL(_ context.Context, url string) error { return r.record("url:" + url) }
func (r *recordingEffects) RunShell(_ context.Context, c string) error  { return r.record("sh:" + c) }
func (r *recordingEffects) WigglePointer(context.Context) error         { return r.record("wiggle") }
func (r *recordingEffects) MovePointer(_ context.Context, dx, dy int) error {
	return r.record("move")
}
func (r *recordingEffects) Click(_ context.Context, times int) error { return r.record("click") }
func (r *recordingEffects) Screenshot(context.Context) (string, error) {
	return "/tmp/shot.png", r.record("shot")
}
func (r *recordingEffects) FocusMode(context.Context) error          { return r.record("focus") }
func (r *recordingEffects) Say(_ context.Context, text string) error { return r.record("say:" + text) }

func TestEffectorsDelegateToEffects(t *testing.T) {
	fx := &recordingEffects{}
	ctx := context.Background()

	for _, a := range []Effector{
		OpenApp{App: "kitty"},
		KillProcess{Pattern: "discord"},
		OpenURL{URL: "https://x"},
		SystemCommand{Command: "true"},
		WiggleMouse{},
		Click{Times: 2},
		MovePointer{DX: 1},
		Screenshot{},
		FocusMode{},
		Say{Text: "hi"},
	} {
		require.NoError(t, a.Apply(ctx, fx))
	}
	require.Equal(t, []string{
		"open:kitty", "kill:discord", "url:https://x", "sh:true", "wiggle",
		"click", "move", "shot", "focus", "say:hi",
	}, fx.calls)

	fx.err = errors.New("boom")
	require.ErrorContains(t, Screenshot{}.Apply(ctx, fx), "boom")
}

func TestControlActionsAreNotEffectors(t *testing.T) {
	for _, a := range []Action{EnableCommands{}, DisableCommands{}, Timer{Duration: time.Minute}} {
		_, ok := a.(Effector)
		require.False(t, ok, a.Name())
	}
}

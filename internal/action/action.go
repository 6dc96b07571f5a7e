// Package action defines the closed set of actions a phrase can bind to.
package action

import (
	"context"
	"fmt"
	"time"
)

// Action is a fully-typed, parameter-resolved action variant.
type Action interface {
	Name() string
	isAction()
}

// Effector is implemented by actions whose work is delegated to desktop effects.
type Effector interface {
	Action
	Apply(ctx context.Context, fx Effects) error
}

// Effects is the OS capability boundary used by effect actions.
type Effects interface {
	OpenApp(ctx context.Context, name string) error
	KillProcess(ctx context.Context, pattern string) error
	OpenURL(ctx context.Context, url string) error
	RunShell(ctx context.Context, command string) error
	WigglePointer(ctx context.Context) error
	MovePointer(ctx context.Context, dx, dy int) error
	Click(ctx context.Context, times int) error
	Screenshot(ctx context.Context) (string, error)
	FocusMode(ctx context.Context) error
	Say(ctx context.Context, text string) error
}

// OpenApp launches an application by name.
type OpenApp struct{ App string }

// KillProcess terminates every process whose name contains Pattern.
type KillProcess struct {
	Pattern string
	Alias   string
}

// OpenURL opens a URL in the default handler.
type OpenURL struct{ URL string }

// SystemCommand runs a shell command line.
type SystemCommand struct{ Command string }

// WiggleMouse nudges the pointer right and back.
type WiggleMouse struct{}

// Click presses the primary button Times times.
type Click struct{ Times int }

// MovePointer moves the pointer relative to its position.
type MovePointer struct{ DX, DY int }

// Screenshot captures the screen to a timestamped file.
type Screenshot struct{}

// FocusMode closes distracting applications and opens the editor.
type FocusMode struct{}

// Say speaks Text aloud.
type Say struct{ Text string }

// EnableCommands turns command dispatch back on.
type EnableCommands struct{}

// DisableCommands turns command dispatch off. A Timed disable re-enables
// after For, even when For is zero; an untimed one lasts until re-enabled.
type DisableCommands struct {
	For   time.Duration
	Timed bool
}

// Timer announces itself and speaks again once Duration elapses.
type Timer struct{ Duration time.Duration }

func (OpenApp) Name() string        { return "open_app" }
func (OpenURL) Name() string        { return "open_url" }
func (SystemCommand) Name() string  { return "system_command" }
func (WiggleMouse) Name() string    { return "move_mouse" }
func (Click) Name() string          { return "click_mouse" }
func (MovePointer) Name() string    { return "move_pointer" }
func (Screenshot) Name() string     { return "take_screenshot" }
func (FocusMode) Name() string      { return "focus_mode" }
func (Say) Name() string            { return "say" }
func (EnableCommands) Name() string { return "enable_commands" }

func (a KillProcess) Name() string {
	if a.Alias != "" {
		return a.Alias
	}
	return "kill_process"
}

func (a Timer) Name() string {
	return fmt.Sprintf("timer_%d_minutes", a.Minutes())
}

// Minutes is the timer length in whole minutes.
func (a Timer) Minutes() int {
	return int(a.Duration / time.Minute)
}

func (a DisableCommands) Name() string {
	if a.Timed {
		return "disable_commands_for"
	}
	return "disable_commands"
}

func (OpenApp) isAction()         {}
func (KillProcess) isAction()     {}
func (OpenURL) isAction()         {}
func (SystemCommand) isAction()   {}
func (WiggleMouse) isAction()     {}
func (Click) isAction()           {}
func (MovePointer) isAction()     {}
func (Screenshot) isAction()      {}
func (FocusMode) isAction()       {}
func (Say) isAction()             {}
func (EnableCommands) isAction()  {}
func (DisableCommands) isAction() {}
func (Timer) isAction()           {}

func (a OpenApp) Apply(ctx context.Context, fx Effects) error       { return fx.OpenApp(ctx, a.App) }
func (a KillProcess) Apply(ctx context.Context, fx Effects) error   { return fx.KillProcess(ctx, a.Pattern) }
func (a OpenURL) Apply(ctx context.Context, fx Effects) error       { return fx.OpenURL(ctx, a.URL) }
func (a SystemCommand) Apply(ctx context.Context, fx Effects) error { return fx.RunShell(ctx, a.Command) }
func (WiggleMouse) Apply(ctx context.Context, fx Effects) error     { return fx.WigglePointer(ctx) }
func (a Click) Apply(ctx context.Context, fx Effects) error         { return fx.Click(ctx, a.Times) }
func (a MovePointer) Apply(ctx context.Context, fx Effects) error   { return fx.MovePointer(ctx, a.DX, a.DY) }
func (FocusMode) Apply(ctx context.Context, fx Effects) error       { return fx.FocusMode(ctx) }
func (a Say) Apply(ctx context.Context, fx Effects) error           { return fx.Say(ctx, a.Text) }

func (Screenshot) Apply(ctx context.Context, fx Effects) error {
	_, err := fx.Screenshot(ctx)
	return err
}

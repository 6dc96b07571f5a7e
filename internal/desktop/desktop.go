// Package desktop performs OS-level action effects through external tools.
package desktop

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/rbright/golos/internal/config"
	"github.com/rbright/golos/internal/hypr"
)

// ErrNoProcess reports a kill request that matched nothing.
var ErrNoProcess = errors.New("no matching process")

const (
	toolTimeout   = 5 * time.Second
	speechTimeout = 60 * time.Second
	shellTimeout  = 60 * time.Second
)

// Effects implements action.Effects on a Hyprland desktop.
type Effects struct {
	cfg    config.Config
	logger *slog.Logger

	run    func(ctx context.Context, argv []string) error
	launch func(ctx context.Context, command string) error
	now    func() time.Time
	pause  time.Duration
}

// New constructs desktop effects from runtime config.
func New(cfg config.Config, logger *slog.Logger) *Effects {
	return &Effects{
		cfg:    cfg,
		logger: logger,
		run:    runCommand,
		launch: hypr.Exec,
		now:    time.Now,
		pause:  500 * time.Millisecond,
	}
}

// OpenApp launches an application through the compositor.
func (e *Effects) OpenApp(ctx context.Context, name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return errors.New("application name is empty")
	}
	ctx, cancel := context.WithTimeout(ctx, toolTimeout)
	defer cancel()
	if err := e.launch(ctx, name); err != nil {
		return fmt.Errorf("open app %q: %w", name, err)
	}
	return nil
}

// KillProcess terminates every process whose name matches pattern.
func (e *Effects) KillProcess(ctx context.Context, pattern string) error {
	pattern = strings.TrimSpace(pattern)
	if pattern == "" {
		return errors.New("process pattern is empty")
	}
	ctx, cancel := context.WithTimeout(ctx, toolTimeout)
	defer cancel()

	err := e.run(ctx, withArgs(e.cfg.Desktop.KillCmd.Argv, pattern))
	if exitCode(err) == 1 {
		return fmt.Errorf("kill %q: %w", pattern, ErrNoProcess)
	}
	if err != nil {
		return fmt.Errorf("kill %q: %w", pattern, err)
	}
	return nil
}

// OpenURL opens url with the configured handler.
func (e *Effects) OpenURL(ctx context.Context, url string) error {
	url = strings.TrimSpace(url)
	if url == "" {
		return errors.New("url is empty")
	}
	ctx, cancel := context.WithTimeout(ctx, toolTimeout)
	defer cancel()
	if err := e.run(ctx, withArgs(e.cfg.Desktop.OpenURLCmd.Argv, url)); err != nil {
		return fmt.Errorf("open url %q: %w", url, err)
	}
	return nil
}

// RunShell runs command through sh -c.
func (e *Effects) RunShell(ctx context.Context, command string) error {
	if strings.TrimSpace(command) == "" {
		return errors.New("shell command is empty")
	}
	ctx, cancel := context.WithTimeout(ctx, shellTimeout)
	defer cancel()
	if err := e.run(ctx, []string{"sh", "-c", command}); err != nil {
		return fmt.Errorf("system command: %w", err)
	}
	return nil
}

// WigglePointer moves the pointer 100px right and back.
func (e *Effects) WigglePointer(ctx context.Context) error {
	if err := e.MovePointer(ctx, 100, 0); err != nil {
		return err
	}
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-time.After(e.pause):
	}
	return e.MovePointer(ctx, -100, 0)
}

// MovePointer moves the pointer relative to its current position.
func (e *Effects) MovePointer(ctx context.Context, dx, dy int) error {
	ctx, cancel := context.WithTimeout(ctx, toolTimeout)
	defer cancel()
	argv := withArgs(e.cfg.Desktop.PointerCmd.Argv, "mousemove", "-x", strconv.Itoa(dx), "-y", strconv.Itoa(dy))
	if err := e.run(ctx, argv); err != nil {
		return fmt.Errorf("move pointer: %w", err)
	}
	return nil
}

// Click presses and releases the left button times times. Zero or fewer
// clicks is a no-op.
func (e *Effects) Click(ctx context.Context, times int) error {
	if times <= 0 {
		return nil
	}
	ctx, cancel := context.WithTimeout(ctx, toolTimeout)
	defer cancel()
	argv := withArgs(e.cfg.Desktop.PointerCmd.Argv, "click", "--repeat", strconv.Itoa(times), "--next-delay", "100", "0xC0")
	if err := e.run(ctx, argv); err != nil {
		return fmt.Errorf("click: %w", err)
	}
	return nil
}

// Screenshot saves the screen to screenshot_<timestamp>.png and returns the path.
func (e *Effects) Screenshot(ctx context.Context) (string, error) {
	dir := e.cfg.ScreenshotDir
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("ensure screenshot dir: %w", err)
	}
	path := filepath.Join(dir, "screenshot_"+e.now().Format("2006-01-02_15-04-05")+".png")

	ctx, cancel := context.WithTimeout(ctx, toolTimeout)
	defer cancel()
	if err := e.run(ctx, withArgs(e.cfg.Desktop.ScreenshotCmd.Argv, path)); err != nil {
		return "", fmt.Errorf("screenshot: %w", err)
	}
	return path, nil
}

// FocusMode closes distracting applications and opens the editor. Apps that
// are not running are skipped.
func (e *Effects) FocusMode(ctx context.Context) error {
	var errs []error
	for _, app := range e.cfg.Focus.Close {
		err := e.KillProcess(ctx, app)
		if err == nil || errors.Is(err, ErrNoProcess) {
			continue
		}
		errs = append(errs, err)
	}
	if open := strings.TrimSpace(e.cfg.Focus.Open); open != "" {
		if err := e.OpenApp(ctx, open); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// Say speaks text with the configured TTS command.
func (e *Effects) Say(ctx context.Context, text string) error {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil
	}
	if e.logger != nil {
		e.logger.Info("say", "text", text)
	}
	ctx, cancel := context.WithTimeout(ctx, speechTimeout)
	defer cancel()
	if err := e.run(ctx, withArgs(e.cfg.Desktop.TTSCmd.Argv, text)); err != nil {
		return fmt.Errorf("say: %w", err)
	}
	return nil
}

func withArgs(argv []string, args ...string) []string {
	out := make([]string, 0, len(argv)+len(args))
	out = append(out, argv...)
	return append(out, args...)
}

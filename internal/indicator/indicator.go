// Package indicator handles visual status notifications and audio feedback cues.
package indicator

import (
	"context"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/rbright/golos/internal/config"
	"github.com/rbright/golos/internal/hypr"
)

// Cue is the audible outcome of one utterance.
type Cue int

const (
	CueNone Cue = iota
	CueSuccess
	CueError
)

func (c Cue) String() string {
	switch c {
	case CueSuccess:
		return "success"
	case CueError:
		return "error"
	default:
		return "none"
	}
}

// Status is a session change worth surfacing on screen.
type Status int

const (
	StatusCommandsEnabled Status = iota + 1
	StatusCommandsDisabled
	StatusNoteRecording
	StatusNoteSaved
	StatusNoteDiscarded
)

// Controller is the assistant-facing feedback contract.
type Controller interface {
	Cue(context.Context, Cue)
	ShowStatus(context.Context, Status)
	ShowError(context.Context, string)
	Hide(context.Context)
}

// Nop discards all feedback.
type Nop struct{}

func (Nop) Cue(context.Context, Cue)           {}
func (Nop) ShowStatus(context.Context, Status) {}
func (Nop) ShowError(context.Context, string)  {}
func (Nop) Hide(context.Context)               {}

// Notifier routes notifications via Hyprland or desktop DBus and plays cues
// through pulse.
type Notifier struct {
	cfg      config.IndicatorConfig
	logger   *slog.Logger
	messages messages

	mu                    sync.Mutex
	desktopNotificationID uint32
	soundMu               sync.Mutex
	sounds                sync.WaitGroup
}

// NewNotifier creates an indicator controller from config.
func NewNotifier(cfg config.IndicatorConfig, logger *slog.Logger) *Notifier {
	return &Notifier{
		cfg:      cfg,
		logger:   logger,
		messages: indicatorMessages(resolveLocale(cfg.Language)),
	}
}

// Cue plays the success or error sound.
func (n *Notifier) Cue(ctx context.Context, cue Cue) {
	if cue == CueNone {
		return
	}
	n.playCue(ctx, cue)
}

// ShowStatus displays a short informational notification.
func (n *Notifier) ShowStatus(ctx context.Context, status Status) {
	if !n.cfg.Enable {
		return
	}
	text := n.messages.status(status)
	if text == "" {
		return
	}
	n.run(ctx, func(ctx context.Context) error {
		return n.notify(ctx, 1, 2500, hypr.DefaultColor, urgencyNormal, text)
	})
}

// ShowError displays an error-state notification.
func (n *Notifier) ShowError(ctx context.Context, text string) {
	if !n.cfg.Enable {
		return
	}
	if text == "" {
		text = n.messages.errorText
	}
	timeout := n.cfg.ErrorTimeoutMS
	if timeout <= 0 {
		timeout = 1200
	}
	n.run(ctx, func(ctx context.Context) error {
		return n.notify(ctx, 3, timeout, "rgb(f38ba8)", urgencyCritical, text)
	})
}

// Hide dismisses the active notification.
func (n *Notifier) Hide(ctx context.Context) {
	if !n.cfg.Enable {
		return
	}
	n.run(ctx, n.dismiss)
}

// Wait blocks until queued cues have finished playing.
func (n *Notifier) Wait() {
	n.sounds.Wait()
}

// notify dispatches indicator output through the configured backend.
func (n *Notifier) notify(ctx context.Context, icon int, timeoutMS int, color string, level urgency, text string) error {
	if strings.EqualFold(strings.TrimSpace(n.cfg.Backend), "desktop") {
		return n.notifyDesktop(ctx, timeoutMS, level, text)
	}
	return hypr.Notify(ctx, icon, timeoutMS, color, text)
}

// dismiss removes indicator output from the configured backend.
func (n *Notifier) dismiss(ctx context.Context) error {
	if strings.EqualFold(strings.TrimSpace(n.cfg.Backend), "desktop") {
		return n.dismissDesktop(ctx)
	}
	return hypr.DismissNotify(ctx)
}

// notifyDesktop sends a replaceable desktop notification and stores its ID.
func (n *Notifier) notifyDesktop(ctx context.Context, timeoutMS int, level urgency, text string) error {
	n.mu.Lock()
	replaceID := n.desktopNotificationID
	n.mu.Unlock()

	appName := strings.TrimSpace(n.cfg.DesktopAppName)
	if appName == "" {
		appName = "golos"
	}

	id, err := desktopNotify(ctx, appName, replaceID, text, level, timeoutMS)
	if err != nil {
		return err
	}

	n.mu.Lock()
	n.desktopNotificationID = id
	n.mu.Unlock()
	return nil
}

// dismissDesktop closes the current desktop notification ID when present.
func (n *Notifier) dismissDesktop(ctx context.Context) error {
	n.mu.Lock()
	id := n.desktopNotificationID
	n.desktopNotificationID = 0
	n.mu.Unlock()

	if id == 0 {
		return nil
	}
	return desktopDismiss(ctx, id)
}

// run executes an indicator operation with a bounded timeout.
func (n *Notifier) run(ctx context.Context, fn func(context.Context) error) {
	runCtx, cancel := context.WithTimeout(ctx, 400*time.Millisecond)
	defer cancel()
	if err := fn(runCtx); err != nil {
		n.log("indicator dispatch failed", err)
	}
}

// playCue serializes cue playback and emits audio asynchronously.
func (n *Notifier) playCue(ctx context.Context, cue Cue) {
	if !n.cfg.SoundEnable {
		return
	}
	ctx = context.WithoutCancel(ctx)
	n.sounds.Add(1)
	go func() {
		defer n.sounds.Done()
		n.soundMu.Lock()
		defer n.soundMu.Unlock()
		if err := sound(ctx, cue, n.cfg); err != nil {
			n.log("indicator audio cue failed", err)
		}
	}()
}

// log emits debug-only indicator failures to the runtime logger.
func (n *Notifier) log(message string, err error) {
	if n.logger == nil || err == nil {
		return
	}
	n.logger.Debug(message, "error", err.Error())
}

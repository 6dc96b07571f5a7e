package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/rbright/golos/internal/assistant"
	"github.com/rbright/golos/internal/audio"
	"github.com/rbright/golos/internal/config"
	"github.com/rbright/golos/internal/desktop"
	"github.com/rbright/golos/internal/indicator"
	"github.com/rbright/golos/internal/ipc"
	"github.com/rbright/golos/internal/notes"
	"github.com/rbright/golos/internal/schedule"
	"github.com/rbright/golos/internal/speech"
)

var deviceBackoff = audio.Backoff{Initial: time.Second, Max: 30 * time.Second}

// commandRun owns the control socket and runs the assistant until ctx ends.
func (r Runner) commandRun(ctx context.Context, cfg config.Config, logger *slog.Logger) int {
	socketPath, err := ipc.RuntimeSocketPath()
	if err != nil {
		fmt.Fprintf(r.Stderr, "error: %v\n", err)
		return 1
	}

	listener, err := ipc.Acquire(ctx, socketPath, ipc.AcquireOptions{
		ProbeTimeout: 180 * time.Millisecond,
		Attempts:     8,
		OnReclaim: func(path string) {
			logger.Warn("removed stale control socket", "path", path)
		},
	})
	if err != nil {
		if errors.Is(err, ipc.ErrAlreadyRunning) {
			fmt.Fprintln(r.Stderr, "error: golos is already running; use `golos status`")
			return 1
		}
		fmt.Fprintf(r.Stderr, "error: %v\n", err)
		return 1
	}
	defer func() {
		_ = listener.Close()
		_ = os.Remove(socketPath)
	}()

	recognizer, err := r.prepareSpeech(ctx, cfg, logger)
	if err != nil {
		if ctx.Err() != nil {
			return 0
		}
		fmt.Fprintf(r.Stderr, "error: %v\n", err)
		return 1
	}

	feedback := indicator.NewNotifier(cfg.Indicator, logger)
	defer feedback.Wait()

	scheduler := schedule.New(logger)
	a := assistant.New(assistant.Options{
		Config:     cfg,
		Fs:         r.Fs,
		Logger:     logger,
		Recognizer: recognizer,
		Effects:    desktop.New(cfg, logger),
		Notes:      notes.NewStore(r.Fs, cfg.NotesFile),
		Feedback:   feedback,
		Scheduler:  scheduler,
		Stdout:     r.Stdout,
		WatchTable: true,
	})

	if err := a.Run(ctx, listener); err != nil {
		logger.Error("assistant failed", "error", err.Error())
		fmt.Fprintf(r.Stderr, "error: %v\n", err)
		return 1
	}
	return 0
}

// prepareSpeech waits for the capture device and the speech service. Without a
// configured speech command the assistant runs control-only and takes input
// through `golos inject`.
func (r Runner) prepareSpeech(ctx context.Context, cfg config.Config, logger *slog.Logger) (speech.Recognizer, error) {
	if len(cfg.Speech.Cmd.Argv) == 0 {
		logger.Warn("speech.cmd not configured; listening on the control socket only")
		fmt.Fprintln(r.Stderr, "warning: speech.cmd not configured; use `golos inject TEXT`")
		return nil, nil
	}

	selection, err := audio.WaitForDevice(ctx, cfg.Audio.Input, cfg.Audio.Fallback, deviceBackoff, logger)
	if err != nil {
		return nil, err
	}
	if selection.Warning != "" {
		logger.Warn("audio fallback", "warning", selection.Warning)
	}
	logger.Info("capture device selected", "device", selection.Device.ID, "description", selection.Device.Description)

	if cfg.Speech.HealthGRPC != "" {
		interval := time.Duration(cfg.Speech.RetryMS) * time.Millisecond
		if err := speech.WaitReady(ctx, cfg.Speech.HealthGRPC, interval); err != nil {
			return nil, err
		}
		logger.Info("speech service ready", "target", cfg.Speech.HealthGRPC)
	}

	return speech.NewCommandRecognizer(cfg.Speech.Cmd.Argv), nil
}

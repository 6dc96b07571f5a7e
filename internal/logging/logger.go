// Package logging configures runtime JSONL logging output.
package logging

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/caarlos0/env/v11"
)

// Runtime bundles the configured logger and its open file handle lifecycle.
type Runtime struct {
	Logger *slog.Logger
	Path   string
	closer io.Closer
}

// Close flushes and closes the logger output sink.
func (r Runtime) Close() error {
	if r.closer == nil {
		return nil
	}
	return r.closer.Close()
}

// Options adjusts the logger built by New.
type Options struct {
	// Echo, when set, receives a copy of every record (`golos -v`).
	Echo io.Writer
}

type envOptions struct {
	Level slog.Level `env:"GOLOS_LOG_LEVEL" envDefault:"INFO"`
}

// New builds a JSONL logger rooted at the resolved state path. The level
// comes from GOLOS_LOG_LEVEL (debug, info, warn, error).
func New(opts Options) (Runtime, error) {
	var fromEnv envOptions
	if err := env.Parse(&fromEnv); err != nil {
		return Runtime{}, fmt.Errorf("parse GOLOS_LOG_LEVEL: %w", err)
	}

	path, err := resolveLogPath()
	if err != nil {
		return Runtime{}, err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return Runtime{}, fmt.Errorf("create log dir: %w", err)
	}

	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o600)
	if err != nil {
		return Runtime{}, fmt.Errorf("open log file: %w", err)
	}

	var out io.Writer = f
	if opts.Echo != nil {
		out = io.MultiWriter(f, opts.Echo)
	}
	h := slog.NewJSONHandler(out, &slog.HandlerOptions{Level: fromEnv.Level})
	logger := slog.New(h).With("pid", os.Getpid())
	return Runtime{Logger: logger, Path: path, closer: f}, nil
}

// resolveLogPath selects XDG_STATE_HOME when available, otherwise ~/.local/state.
func resolveLogPath() (string, error) {
	if xdg := strings.TrimSpace(os.Getenv("XDG_STATE_HOME")); xdg != "" {
		return filepath.Join(xdg, "golos", "log.jsonl"), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".local", "state", "golos", "log.jsonl"), nil
}

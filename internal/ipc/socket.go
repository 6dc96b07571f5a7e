package ipc

import (
	"context"
	"errors"
	"fmt"
	"net"
	"os"
	"path/filepath"
	"strings"
	"syscall"
	"time"
)

// ErrAlreadyRunning reports a responsive assistant already owning the socket.
var ErrAlreadyRunning = errors.New("golos assistant already running")

const socketName = "golos.sock"

// RuntimeSocketPath returns $XDG_RUNTIME_DIR/golos.sock.
func RuntimeSocketPath() (string, error) {
	dir := strings.TrimSpace(os.Getenv("XDG_RUNTIME_DIR"))
	if dir == "" {
		return "", errors.New("XDG_RUNTIME_DIR is not set")
	}
	return filepath.Join(dir, socketName), nil
}

// AcquireOptions tunes how Acquire treats a socket path that is already bound.
type AcquireOptions struct {
	// ProbeTimeout bounds the status probe sent to the current owner.
	ProbeTimeout time.Duration
	// Attempts is the number of listen tries, at least one.
	Attempts int
	// OnReclaim runs after a stale socket file has been removed.
	OnReclaim func(path string)
}

// Acquire listens on path. A socket file whose owner does not answer is
// removed and the listen retried; a responsive owner yields
// ErrAlreadyRunning. An owner that accepts but never answers is left alone.
func Acquire(ctx context.Context, path string, opts AcquireOptions) (net.Listener, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return nil, fmt.Errorf("ensure runtime socket dir: %w", err)
	}
	attempts := max(opts.Attempts, 1)

	var lastErr error
	for attempt := 0; attempt < attempts; attempt++ {
		if attempt > 0 {
			if err := sleepCtx(ctx, time.Duration(attempt)*25*time.Millisecond); err != nil {
				return nil, err
			}
		}

		listener, err := net.Listen("unix", path)
		if err == nil {
			if chmodErr := os.Chmod(path, 0o600); chmodErr != nil {
				_ = listener.Close()
				return nil, fmt.Errorf("restrict socket %s: %w", path, chmodErr)
			}
			return listener, nil
		}
		if !errors.Is(err, syscall.EADDRINUSE) {
			return nil, fmt.Errorf("listen unix %s: %w", path, err)
		}
		lastErr = err

		if err := reclaim(ctx, path, opts.ProbeTimeout); err != nil {
			return nil, err
		}
		if opts.OnReclaim != nil {
			opts.OnReclaim(path)
		}
	}

	return nil, fmt.Errorf("acquire socket %s after %d attempts: %w", path, attempts, lastErr)
}

// reclaim removes path when nothing answers on it.
func reclaim(ctx context.Context, path string, timeout time.Duration) error {
	alive, err := Probe(ctx, path, timeout)
	switch {
	case alive:
		return ErrAlreadyRunning
	case err != nil:
		return fmt.Errorf("probe existing socket %s: %w", path, err)
	}

	if err := os.Remove(path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("remove stale socket %s: %w", path, err)
	}
	return nil
}

func sleepCtx(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

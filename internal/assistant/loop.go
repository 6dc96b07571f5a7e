package assistant

import (
	"context"
	"errors"
	"net"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/rbright/golos/internal/commands"
	"github.com/rbright/golos/internal/indicator"
	"github.com/rbright/golos/internal/ipc"
	"github.com/rbright/golos/internal/speech"
)

const defaultRetryDelay = time.Second

// Run loads the table, then runs the recognition loop, the control server on
// listener (when non-nil), and the table watcher until ctx is cancelled.
func (a *Assistant) Run(ctx context.Context, listener net.Listener) error {
	count, _ := a.Reload()
	a.announce(count)

	group, groupCtx := errgroup.WithContext(ctx)

	if a.recognizer != nil {
		group.Go(func() error {
			return a.listen(groupCtx)
		})
	}
	if listener != nil {
		group.Go(func() error {
			return ipc.Serve(groupCtx, listener, a.Control())
		})
	}
	if a.watch && a.cfg.CommandsFile != "" {
		group.Go(func() error {
			err := commands.Watch(groupCtx, a.cfg.CommandsFile, a.markStale)
			if err != nil && a.logger != nil {
				a.logger.Warn("commands watcher stopped", "error", err.Error())
			}
			return nil
		})
	}

	err := group.Wait()
	hideCtx, cancel := context.WithTimeout(context.Background(), 800*time.Millisecond)
	defer cancel()
	a.feedback.Hide(hideCtx)

	if a.logger != nil {
		a.logger.Info("assistant stopped", "pending_tasks", len(a.scheduler.Pending()))
	}
	return err
}

// listen captures utterances one at a time until ctx is cancelled.
func (a *Assistant) listen(ctx context.Context) error {
	retry := time.Duration(a.cfg.Speech.RetryMS) * time.Millisecond
	if retry <= 0 {
		retry = defaultRetryDelay
	}

	for {
		text, err := a.recognizer.Listen(ctx)
		if ctx.Err() != nil {
			return nil
		}

		switch {
		case err == nil:
			a.Handle(ctx, text)
			continue
		case errors.Is(err, speech.ErrNoSpeech):
			continue
		case errors.Is(err, speech.ErrUnavailable):
			if a.logger != nil {
				a.logger.Error("speech recognition unavailable", "error", err.Error(), "retry_in", retry.String())
			}
			a.feedback.Cue(ctx, indicator.CueError)
		default:
			if a.logger != nil {
				a.logger.Error("speech recognition failed", "error", err.Error(), "retry_in", retry.String())
			}
		}

		select {
		case <-ctx.Done():
			return nil
		case <-time.After(retry):
		}
	}
}

func (a *Assistant) markStale() {
	if a.stale.Swap(true) {
		return
	}
	if a.logger != nil {
		a.logger.Info("commands file changed; run `golos reload` to apply", "path", a.cfg.CommandsFile)
	}
}

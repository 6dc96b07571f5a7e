// Package assistant runs the listen, match, dispatch, and cue loop and serves
// control requests for a running golos instance.
package assistant

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"sync"
	"sync/atomic"

	"github.com/spf13/afero"

	"github.com/rbright/golos/internal/action"
	"github.com/rbright/golos/internal/commands"
	"github.com/rbright/golos/internal/config"
	"github.com/rbright/golos/internal/dispatch"
	"github.com/rbright/golos/internal/indicator"
	"github.com/rbright/golos/internal/matcher"
	"github.com/rbright/golos/internal/schedule"
	"github.com/rbright/golos/internal/speech"
	"github.com/rbright/golos/internal/state"
)

// Options wires an Assistant to its collaborators. Zero values fall back to
// OS-backed or no-op implementations.
type Options struct {
	Config     config.Config
	Fs         afero.Fs
	Logger     *slog.Logger
	Recognizer speech.Recognizer
	Effects    action.Effects
	Notes      dispatch.NoteStore
	Feedback   indicator.Controller
	Scheduler  *schedule.Scheduler
	// Stdout receives the startup summary.
	Stdout io.Writer
	// WatchTable marks the table stale when the commands file changes on disk.
	WatchTable bool
}

// Assistant owns the compiled command index and the session for one process.
type Assistant struct {
	cfg        config.Config
	fs         afero.Fs
	logger     *slog.Logger
	recognizer speech.Recognizer
	feedback   indicator.Controller
	scheduler  *schedule.Scheduler
	session    *state.Session
	dispatcher *dispatch.Dispatcher
	policy     matcher.Policy
	stdout     io.Writer
	watch      bool

	mu    sync.RWMutex
	index *matcher.Index
	stale atomic.Bool

	// turn serializes utterances from the microphone and from inject.
	turn sync.Mutex
}

// New constructs an assistant. Call Reload before handling utterances.
func New(opts Options) *Assistant {
	fs := opts.Fs
	if fs == nil {
		fs = afero.NewOsFs()
	}
	feedback := opts.Feedback
	if feedback == nil {
		feedback = indicator.Nop{}
	}
	scheduler := opts.Scheduler
	if scheduler == nil {
		scheduler = schedule.New(opts.Logger)
	}
	stdout := opts.Stdout
	if stdout == nil {
		stdout = io.Discard
	}

	session := state.New()
	return &Assistant{
		cfg:        opts.Config,
		fs:         fs,
		logger:     opts.Logger,
		recognizer: opts.Recognizer,
		feedback:   feedback,
		scheduler:  scheduler,
		session:    session,
		dispatcher: dispatch.New(dispatch.Deps{
			Session:   session,
			Effects:   opts.Effects,
			Notes:     opts.Notes,
			Scheduler: scheduler,
			Feedback:  feedback,
			Logger:    opts.Logger,
			Language:  opts.Config.Indicator.Language,
		}),
		policy: PolicyFromConfig(opts.Config),
		stdout: stdout,
		watch:  opts.WatchTable,
	}
}

// PolicyFromConfig builds the matcher policy from configured phrases.
func PolicyFromConfig(cfg config.Config) matcher.Policy {
	policy := matcher.DefaultPolicy()
	if cfg.Phrases.StartNote != "" {
		policy.StartNote = cfg.Phrases.StartNote
	}
	if cfg.Phrases.SaveNote != "" {
		policy.SaveNote = cfg.Phrases.SaveNote
	}
	if cfg.Phrases.DiscardNote != "" {
		policy.DiscardNote = cfg.Phrases.DiscardNote
	}
	if cfg.Phrases.EnableCommands != "" {
		policy.EnableCommands = cfg.Phrases.EnableCommands
	}
	if cfg.ControlCategory != "" {
		policy.ControlCategory = cfg.ControlCategory
	}
	return policy
}

// Reload reads the commands file and swaps in a freshly compiled index. A
// broken file leaves an empty index in place and returns the *ConfigError.
func (a *Assistant) Reload() (int, error) {
	table, loadErr := commands.Load(a.fs, a.cfg.CommandsFile)
	idx := matcher.Compile(table, a.policy)

	a.mu.Lock()
	a.index = idx
	a.mu.Unlock()
	a.stale.Store(false)

	if a.logger != nil {
		if loadErr != nil {
			a.logger.Warn("commands table unavailable; continuing with an empty table",
				"path", a.cfg.CommandsFile, "error", loadErr.Error())
		}
		for _, rule := range idx.Unresolved() {
			a.logger.Warn("command action does not resolve",
				"category", rule.Entry.Category,
				"phrase", rule.Entry.Phrase,
				"action", rule.Entry.Action,
				"error", rule.ResolveErr.Error(),
			)
		}
		a.logger.Info("commands loaded", "path", a.cfg.CommandsFile, "commands", idx.Len())
	}
	return idx.Len(), loadErr
}

// Handle matches and dispatches one utterance, then plays its cue.
func (a *Assistant) Handle(ctx context.Context, utterance string) dispatch.Outcome {
	a.turn.Lock()
	defer a.turn.Unlock()

	a.mu.RLock()
	idx := a.index
	a.mu.RUnlock()

	res := matcher.Match(utterance, idx, a.session.Snapshot())
	out := a.dispatcher.Dispatch(ctx, res)
	if out.Cue != indicator.CueNone {
		a.feedback.Cue(ctx, out.Cue)
	}
	if out.Err != nil && !errors.Is(out.Err, dispatch.ErrNoMatch) {
		a.feedback.ShowError(ctx, out.Err.Error())
	}
	return out
}

// Session exposes the live session for status reporting.
func (a *Assistant) Session() *state.Session {
	return a.session
}

// Commands returns the number of compiled commands.
func (a *Assistant) Commands() int {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.index.Len()
}

// Stale reports whether the commands file changed since the last reload.
func (a *Assistant) Stale() bool {
	return a.stale.Load()
}

// Wait blocks until scheduled tasks have fired.
func (a *Assistant) Wait() {
	a.scheduler.Wait()
}

func (a *Assistant) announce(count int) {
	fmt.Fprintf(a.stdout, "golos: %d commands loaded from %s\n", count, a.cfg.CommandsFile)
}

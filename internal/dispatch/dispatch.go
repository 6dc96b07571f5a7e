// Package dispatch executes match results against session state and desktop effects.
package dispatch

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/rbright/golos/internal/action"
	"github.com/rbright/golos/internal/indicator"
	"github.com/rbright/golos/internal/matcher"
	"github.com/rbright/golos/internal/schedule"
	"github.com/rbright/golos/internal/state"
)

// Outcome is the result of dispatching one utterance.
type Outcome struct {
	Err error
	Cue indicator.Cue
	// Scheduled is set when the action deferred work.
	Scheduled *schedule.Handle
}

// NoteStore persists a finished note.
type NoteStore interface {
	Append(lines []string) error
}

// Scheduler runs deferred tasks.
type Scheduler interface {
	After(d time.Duration, name string, fn func()) schedule.Handle
}

// Dispatcher owns action execution for the assistant loop.
type Dispatcher struct {
	session   *state.Session
	effects   action.Effects
	notes     NoteStore
	scheduler Scheduler
	feedback  indicator.Controller
	logger    *slog.Logger
	language  string
}

// Deps groups the collaborators a Dispatcher needs.
type Deps struct {
	Session   *state.Session
	Effects   action.Effects
	Notes     NoteStore
	Scheduler Scheduler
	Feedback  indicator.Controller
	Logger    *slog.Logger
	Language  string
}

// New constructs a dispatcher. Feedback defaults to a no-op controller.
func New(deps Deps) *Dispatcher {
	feedback := deps.Feedback
	if feedback == nil {
		feedback = indicator.Nop{}
	}
	scheduler := deps.Scheduler
	if scheduler == nil {
		scheduler = schedule.New(deps.Logger)
	}
	session := deps.Session
	if session == nil {
		session = state.New()
	}
	return &Dispatcher{
		session:   session,
		effects:   deps.Effects,
		notes:     deps.Notes,
		scheduler: scheduler,
		feedback:  feedback,
		logger:    deps.Logger,
		language:  deps.Language,
	}
}

// Dispatch executes res and reports the outcome. Cues are returned, not played.
func (d *Dispatcher) Dispatch(ctx context.Context, res matcher.Result) Outcome {
	out := d.dispatch(ctx, res)
	d.logOutcome(res, out)
	return out
}

func (d *Dispatcher) dispatch(ctx context.Context, res matcher.Result) Outcome {
	switch res.Kind {
	case matcher.NoteStart:
		if err := d.session.StartNote(); err != nil {
			return failure(err)
		}
		d.feedback.ShowStatus(ctx, indicator.StatusNoteRecording)
		return success()

	case matcher.NoteAppend:
		if err := d.session.AppendNote(res.Utterance); err != nil {
			return failure(err)
		}
		return Outcome{}

	case matcher.NoteSave:
		return d.saveNote(ctx)

	case matcher.NoteCancel:
		if _, err := d.session.DiscardNote(); err != nil {
			return failure(err)
		}
		d.feedback.ShowStatus(ctx, indicator.StatusNoteDiscarded)
		return success()

	case matcher.Static:
		if res.Rule == nil {
			return failure(fmt.Errorf("%w: static match without rule", ErrUnknownAction))
		}
		if res.Rule.ResolveErr != nil {
			return failure(res.Rule.ResolveErr)
		}
		return d.execute(ctx, res.Action)

	case matcher.Dynamic:
		if res.Err != nil {
			return failure(res.Err)
		}
		return d.execute(ctx, res.Action)

	default:
		if res.Suppressed {
			return Outcome{}
		}
		return failure(ErrNoMatch)
	}
}

func (d *Dispatcher) saveNote(ctx context.Context) Outcome {
	lines, err := d.session.TakeNote()
	if err != nil {
		return failure(err)
	}
	if len(lines) == 0 {
		return failure(ErrEmptyNote)
	}
	if d.notes == nil {
		return failure(fmt.Errorf("%w: save note: no note store", ErrActionRaised))
	}
	if err := d.notes.Append(lines); err != nil {
		return failure(fmt.Errorf("%w: save note: %w", ErrActionRaised, err))
	}
	d.feedback.ShowStatus(ctx, indicator.StatusNoteSaved)
	return success()
}

// execute runs one resolved action. Panics are recovered into ErrActionRaised.
func (d *Dispatcher) execute(ctx context.Context, a action.Action) (out Outcome) {
	if a == nil {
		return failure(fmt.Errorf("%w: nil action", ErrUnknownAction))
	}

	defer func() {
		if r := recover(); r != nil {
			out = failure(fmt.Errorf("%w: %s: panic: %v", ErrActionRaised, a.Name(), r))
		}
	}()

	switch act := a.(type) {
	case action.EnableCommands:
		d.session.SetCommandsEnabled(true)
		d.feedback.ShowStatus(ctx, indicator.StatusCommandsEnabled)
		return success()

	case action.DisableCommands:
		d.session.SetCommandsEnabled(false)
		d.feedback.ShowStatus(ctx, indicator.StatusCommandsDisabled)
		if !act.Timed {
			return success()
		}
		bg := context.WithoutCancel(ctx)
		h := d.scheduler.After(act.For, act.Name(), func() {
			d.session.SetCommandsEnabled(true)
			d.feedback.ShowStatus(bg, indicator.StatusCommandsEnabled)
			d.feedback.Cue(bg, indicator.CueSuccess)
		})
		result := success()
		result.Scheduled = &h
		return result

	case action.Timer:
		return d.startTimer(ctx, act)

	case action.Effector:
		if d.effects == nil {
			return failure(fmt.Errorf("%w: %s: no desktop effects", ErrActionRaised, a.Name()))
		}
		if err := act.Apply(ctx, d.effects); err != nil {
			return failure(fmt.Errorf("%w: %s: %w", ErrActionRaised, a.Name(), err))
		}
		return success()

	default:
		return failure(fmt.Errorf("%w %q", ErrUnknownAction, a.Name()))
	}
}

func (d *Dispatcher) startTimer(ctx context.Context, t action.Timer) Outcome {
	started, finished := timerMessages(d.language, t.Minutes())
	if d.effects == nil {
		return failure(fmt.Errorf("%w: %s: no desktop effects", ErrActionRaised, t.Name()))
	}
	if err := d.effects.Say(ctx, started); err != nil {
		return failure(fmt.Errorf("%w: %s: %w", ErrActionRaised, t.Name(), err))
	}

	bg := context.WithoutCancel(ctx)
	h := d.scheduler.After(t.Duration, t.Name(), func() {
		if err := d.effects.Say(bg, finished); err != nil {
			d.feedback.Cue(bg, indicator.CueError)
			if d.logger != nil {
				d.logger.Error("timer announcement failed", "timer", t.Name(), "error", err.Error())
			}
			return
		}
		d.feedback.Cue(bg, indicator.CueSuccess)
	})
	out := success()
	out.Scheduled = &h
	return out
}

func timerMessages(language string, minutes int) (string, string) {
	if strings.HasPrefix(strings.ToLower(strings.TrimSpace(language)), "en") {
		return fmt.Sprintf("Timer set for %d minutes", minutes),
			fmt.Sprintf("Time is up! The %d minute timer has finished", minutes)
	}
	return fmt.Sprintf("Таймер на %d минут установлен", minutes),
		fmt.Sprintf("Время истекло! Таймер на %d минут завершен", minutes)
}

func success() Outcome {
	return Outcome{Cue: indicator.CueSuccess}
}

func failure(err error) Outcome {
	return Outcome{Err: err, Cue: indicator.CueError}
}

func (d *Dispatcher) logOutcome(res matcher.Result, out Outcome) {
	if d.logger == nil {
		return
	}

	attrs := []any{
		"utterance", res.Utterance,
		"match", res.Kind.String(),
		"outcome", out.Cue.String(),
	}
	if res.Rule != nil {
		attrs = append(attrs, "phrase", res.Rule.Entry.Phrase, "category", res.Rule.Entry.Category)
	}
	if res.Action != nil {
		attrs = append(attrs, "action", res.Action.Name())
	} else if res.Rule != nil {
		attrs = append(attrs, "action", res.Rule.Entry.Action)
	}
	if res.Pattern != "" {
		attrs = append(attrs, "pattern", res.Pattern)
	}
	if out.Scheduled != nil {
		attrs = append(attrs, "task_id", out.Scheduled.ID, "due", out.Scheduled.Due.Format(time.RFC3339))
	}

	switch {
	case res.Suppressed:
		d.logger.Info("suppressed", attrs...)
	case out.Err != nil:
		d.logger.Warn("dispatch failed", append(attrs, "error", out.Err.Error())...)
	default:
		d.logger.Info("dispatched", attrs...)
	}
}

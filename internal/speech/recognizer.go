// Package speech adapts external speech-to-text engines to the assistant loop.
package speech

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"
	"time"
)

var (
	// ErrNoSpeech reports a capture that produced no recognizable text.
	ErrNoSpeech = errors.New("no speech recognized")
	// ErrUnavailable reports that the recognizer could not run.
	ErrUnavailable = errors.New("speech recognition unavailable")
)

// Recognizer blocks until one utterance is captured and returns it lowercased.
type Recognizer interface {
	Listen(ctx context.Context) (string, error)
}

// CommandRecognizer runs an external command once per utterance. The command
// must print the recognized text on stdout; empty output means no speech.
type CommandRecognizer struct {
	argv []string
}

// NewCommandRecognizer returns a recognizer running argv.
func NewCommandRecognizer(argv []string) *CommandRecognizer {
	return &CommandRecognizer{argv: append([]string(nil), argv...)}
}

// Listen runs the recognizer command and normalizes its output.
func (r *CommandRecognizer) Listen(ctx context.Context) (string, error) {
	if len(r.argv) == 0 {
		return "", fmt.Errorf("%w: speech command is empty", ErrUnavailable)
	}

	var stdout, stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, r.argv[0], r.argv[1:]...)
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	cmd.WaitDelay = time.Second

	if err := cmd.Run(); err != nil {
		if ctx.Err() != nil {
			return "", ctx.Err()
		}
		detail := strings.TrimSpace(stderr.String())
		if detail == "" {
			return "", fmt.Errorf("%w: %s: %v", ErrUnavailable, r.argv[0], err)
		}
		return "", fmt.Errorf("%w: %s: %v (%s)", ErrUnavailable, r.argv[0], err, detail)
	}

	text := Normalize(stdout.String())
	if text == "" {
		return "", ErrNoSpeech
	}
	return text, nil
}

// Normalize lowercases text and collapses whitespace.
func Normalize(text string) string {
	return strings.ToLower(strings.Join(strings.Fields(text), " "))
}

// Scripted replays fixed utterances, then reports ErrNoSpeech until ctx ends.
type Scripted struct {
	utterances []string
}

// NewScripted returns a recognizer over utterances.
func NewScripted(utterances ...string) *Scripted {
	return &Scripted{utterances: utterances}
}

// Listen returns the next utterance, or blocks until ctx is done once exhausted.
func (s *Scripted) Listen(ctx context.Context) (string, error) {
	if len(s.utterances) == 0 {
		<-ctx.Done()
		return "", ctx.Err()
	}
	next := s.utterances[0]
	s.utterances = s.utterances[1:]
	if text := Normalize(next); text != "" {
		return text, nil
	}
	return "", ErrNoSpeech
}

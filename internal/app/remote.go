package app

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/rbright/golos/internal/ipc"
)

const forwardTimeout = 2 * time.Second

// commandStatus prints the running assistant's state, or "stopped".
func (r Runner) commandStatus(ctx context.Context) int {
	socketPath, err := ipc.RuntimeSocketPath()
	if err != nil {
		fmt.Fprintln(r.Stdout, "stopped")
		return 0
	}

	alive, err := ipc.Probe(ctx, socketPath, 220*time.Millisecond)
	if err != nil {
		fmt.Fprintf(r.Stderr, "error: %v\n", err)
		return 1
	}
	if !alive {
		fmt.Fprintln(r.Stdout, "stopped")
		return 0
	}

	resp, err := ipc.Call(ctx, socketPath, ipc.Request{Command: ipc.CommandStatus}, forwardTimeout)
	if err != nil {
		fmt.Fprintf(r.Stderr, "error: %v\n", err)
		return 1
	}
	fmt.Fprintln(r.Stdout, formatStatus(resp.Status))
	return 0
}

// forward sends one control request to the running assistant.
func (r Runner) forward(ctx context.Context, command string, text string) int {
	socketPath, err := ipc.RuntimeSocketPath()
	if err != nil {
		fmt.Fprintf(r.Stderr, "error: %v\n", err)
		return 1
	}

	resp, err := ipc.Call(ctx, socketPath, ipc.Request{Command: command, Text: text}, forwardTimeout)
	if err != nil {
		fmt.Fprintf(r.Stderr, "error: %v\n", err)
		return 1
	}
	if resp.Message != "" {
		fmt.Fprintln(r.Stdout, resp.Message)
	}
	return 0
}

func formatStatus(status *ipc.Status) string {
	if status == nil {
		return "running"
	}
	commandsState := "enabled"
	if !status.CommandsEnabled {
		commandsState = "disabled"
	}

	parts := []string{
		"running",
		"commands=" + commandsState,
		fmt.Sprintf("table=%d", status.Commands),
		"note=" + status.Note,
	}
	if status.NoteLines > 0 {
		parts = append(parts, fmt.Sprintf("note_lines=%d", status.NoteLines))
	}
	if status.TableStale {
		parts = append(parts, "table_stale=yes")
	}
	if len(status.Pending) > 0 {
		parts = append(parts, "pending="+strings.Join(status.Pending, ","))
	}
	return strings.Join(parts, " ")
}

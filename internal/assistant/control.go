package assistant

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/rbright/golos/internal/indicator"
	"github.com/rbright/golos/internal/ipc"
)

// Control returns the IPC handler for a running assistant.
func (a *Assistant) Control() ipc.Handler {
	return ipc.HandlerFunc(a.control)
}

func (a *Assistant) control(ctx context.Context, req ipc.Request) ipc.Response {
	switch req.Command {
	case ipc.CommandStatus:
		return ipc.Response{OK: true, Status: a.Status()}

	case ipc.CommandEnable, ipc.CommandDisable:
		enabled := req.Command == ipc.CommandEnable
		changed := a.session.SetCommandsEnabled(enabled)
		if changed {
			status := indicator.StatusCommandsDisabled
			if enabled {
				status = indicator.StatusCommandsEnabled
			}
			a.feedback.ShowStatus(ctx, status)
		}
		if a.logger != nil {
			a.logger.Info("commands toggled over control socket", "enabled", enabled, "changed", changed)
		}
		return ipc.Response{OK: true, Status: a.Status(), Message: "commands " + req.Command + "d"}

	case ipc.CommandReload:
		count, err := a.Reload()
		if err != nil {
			return ipc.Response{OK: false, Status: a.Status(), Error: err.Error()}
		}
		return ipc.Response{OK: true, Status: a.Status(), Message: fmt.Sprintf("%d commands loaded", count)}

	case ipc.CommandInject:
		text := strings.TrimSpace(req.Text)
		if text == "" {
			return ipc.Response{OK: false, Status: a.Status(), Error: "inject requires text"}
		}
		out := a.Handle(ctx, text)
		if out.Err != nil {
			return ipc.Response{OK: false, Status: a.Status(), Error: out.Err.Error()}
		}
		return ipc.Response{OK: true, Status: a.Status(), Message: out.Cue.String()}

	default:
		return ipc.Response{OK: false, Status: a.Status(), Error: fmt.Sprintf("unknown command: %s", req.Command)}
	}
}

// Status snapshots session, table, and scheduler state.
func (a *Assistant) Status() *ipc.Status {
	snap := a.session.Snapshot()
	status := &ipc.Status{
		CommandsEnabled: snap.CommandsEnabled,
		Note:            string(snap.Note),
		NoteLines:       snap.NoteLines,
		Commands:        a.Commands(),
		TableStale:      a.Stale(),
	}
	for _, h := range a.scheduler.Pending() {
		status.Pending = append(status.Pending, fmt.Sprintf("%s@%s", h.Name, h.Due.Format(time.RFC3339)))
	}
	return status
}

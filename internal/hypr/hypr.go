// Package hypr wraps the hyprctl dispatchers golos relies on.
package hypr

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strconv"
	"strings"
)

// DefaultColor is the notification accent used when none is given.
const DefaultColor = "rgb(89b4fa)"

// Exec launches command through the compositor so it inherits the session
// environment rather than the assistant's.
func Exec(ctx context.Context, command string) error {
	command = strings.TrimSpace(command)
	if command == "" {
		return errors.New("exec command must not be empty")
	}
	return dispatch(ctx, "exec", command)
}

// Notify shows an on-screen notification. icon is Hyprland's icon index.
func Notify(ctx context.Context, icon int, timeoutMS int, color string, text string) error {
	if strings.TrimSpace(color) == "" {
		color = DefaultColor
	}
	return dispatch(ctx, "notify", strconv.Itoa(icon), strconv.Itoa(timeoutMS), color, text)
}

// DismissNotify clears every visible Hyprland notification.
func DismissNotify(ctx context.Context) error {
	return dispatch(ctx, "dismissnotify")
}

func dispatch(ctx context.Context, dispatcher string, args ...string) error {
	argv := append([]string{"--quiet", "dispatch", dispatcher}, args...)

	var out bytes.Buffer
	cmd := exec.CommandContext(ctx, "hyprctl", argv...)
	cmd.Stdout = &out
	cmd.Stderr = &out
	if err := cmd.Run(); err != nil {
		if detail := strings.TrimSpace(out.String()); detail != "" {
			return fmt.Errorf("hyprctl dispatch %s: %w (%s)", dispatcher, err, detail)
		}
		return fmt.Errorf("hyprctl dispatch %s: %w", dispatcher, err)
	}
	return nil
}

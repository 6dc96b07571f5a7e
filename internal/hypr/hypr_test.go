package hypr

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestExecRejectsBlankCommand(t *testing.T) {
	require.ErrorContains(t, Exec(context.Background(), " \t"), "must not be empty")
}

func TestDispatchersInvokeHyprctl(t *testing.T) {
	log := installHyprctlStub(t, `printf '%s\n' "$*" >> "$HYPR_LOG"`)

	require.NoError(t, Exec(context.Background(), "  firefox --new-window "))
	require.NoError(t, Notify(context.Background(), 3, 1200, "", "Команда не распознана"))
	require.NoError(t, Notify(context.Background(), 1, 2500, "rgb(a6e3a1)", "Команды включены"))
	require.NoError(t, DismissNotify(context.Background()))

	data, err := os.ReadFile(log)
	require.NoError(t, err)
	require.Equal(t, []string{
		"--quiet dispatch exec firefox --new-window",
		"--quiet dispatch notify 3 1200 rgb(89b4fa) Команда не распознана",
		"--quiet dispatch notify 1 2500 rgb(a6e3a1) Команды включены",
		"--quiet dispatch dismissnotify",
	}, strings.Split(strings.TrimSpace(string(data)), "\n"))
}

func TestDispatchFailureCarriesOutput(t *testing.T) {
	installHyprctlStub(t, "echo 'no instance signature' >&2\nexit 1")

	err := Exec(context.Background(), "firefox")
	require.ErrorContains(t, err, "hyprctl dispatch exec")
	require.ErrorContains(t, err, "no instance signature")
}

func TestDispatchFailureWithoutOutput(t *testing.T) {
	installHyprctlStub(t, "exit 4")

	err := DismissNotify(context.Background())
	require.ErrorContains(t, err, "exit status 4")
	require.NotContains(t, err.Error(), "()")
}

// installHyprctlStub puts a bash hyprctl on PATH and returns the log path
// exported to it as HYPR_LOG.
func installHyprctlStub(t *testing.T, body string) string {
	t.Helper()

	dir := t.TempDir()
	log := filepath.Join(dir, "hyprctl.log")
	t.Setenv("HYPR_LOG", log)
	script := "#!/usr/bin/env bash\nset -euo pipefail\n" + body + "\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, "hyprctl"), []byte(script), 0o755))
	t.Setenv("PATH", dir+":"+os.Getenv("PATH"))
	return log
}

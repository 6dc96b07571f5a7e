package indicator

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/rbright/golos/internal/config"
	"github.com/stretchr/testify/require"
)

func TestNotifierHyprDispatch(t *testing.T) {
	argsFile := filepath.Join(t.TempDir(), "hypr-args.log")
	t.Setenv("HYPR_ARGS_FILE", argsFile)
	installHyprctlStub(t, `
printf '%s\n' "$*" >> "${HYPR_ARGS_FILE}"
`)

	cfg := config.Default().Indicator
	cfg.SoundEnable = false
	cfg.Enable = true
	cfg.Language = "en"

	notify := NewNotifier(cfg, nil)
	notify.ShowStatus(context.Background(), StatusCommandsDisabled)
	notify.ShowError(context.Background(), "")
	notify.Hide(context.Background())
	notify.Cue(context.Background(), CueSuccess)
	notify.Wait()

	data, err := os.ReadFile(argsFile)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	require.Len(t, lines, 3)
	require.Equal(t, "--quiet dispatch notify 1 2500 rgb(89b4fa) Commands disabled", lines[0])
	require.Equal(t, "--quiet dispatch notify 3 1600 rgb(f38ba8) Command not recognized", lines[1])
	require.Equal(t, "--quiet dispatch dismissnotify", lines[2])
}

func TestNotifierShowErrorUsesProvidedTextAndDefaultTimeout(t *testing.T) {
	argsFile := filepath.Join(t.TempDir(), "hypr-args.log")
	t.Setenv("HYPR_ARGS_FILE", argsFile)
	installHyprctlStub(t, `
printf '%s\n' "$*" >> "${HYPR_ARGS_FILE}"
`)

	cfg := config.Default().Indicator
	cfg.SoundEnable = false
	cfg.ErrorTimeoutMS = 0

	notify := NewNotifier(cfg, nil)
	notify.ShowError(context.Background(), "custom error")

	data, err := os.ReadFile(argsFile)
	require.NoError(t, err)
	require.Equal(t, "--quiet dispatch notify 3 1200 rgb(f38ba8) custom error\n", string(data))
}

func TestNotifierDisabledSkipsHyprctlDispatch(t *testing.T) {
	argsFile := filepath.Join(t.TempDir(), "hypr-args.log")
	t.Setenv("HYPR_ARGS_FILE", argsFile)
	installHyprctlStub(t, `
printf '%s\n' "$*" >> "${HYPR_ARGS_FILE}"
`)

	cfg := config.Default().Indicator
	cfg.Enable = false
	cfg.SoundEnable = false

	notify := NewNotifier(cfg, nil)
	notify.ShowStatus(context.Background(), StatusNoteRecording)
	notify.ShowError(context.Background(), "ignored")
	notify.Hide(context.Background())

	_, err := os.Stat(argsFile)
	require.Error(t, err)
	require.True(t, os.IsNotExist(err))
}

func TestNotifierDesktopBackendUsesBusctl(t *testing.T) {
	argsFile := filepath.Join(t.TempDir(), "busctl-args.log")
	t.Setenv("BUSCTL_ARGS_FILE", argsFile)
	installStub(t, "busctl", `
printf '%s\n' "$*" >> "${BUSCTL_ARGS_FILE}"
if [[ "$*" == *" Notify "* ]]; then
  echo 'u 17'
fi
`)

	cfg := config.Default().Indicator
	cfg.Enable = true
	cfg.SoundEnable = false
	cfg.Backend = "desktop"
	cfg.Language = "ru"

	notify := NewNotifier(cfg, nil)
	notify.ShowStatus(context.Background(), StatusNoteSaved)
	notify.ShowError(context.Background(), "")
	notify.Hide(context.Background())
	notify.Hide(context.Background())

	data, err := os.ReadFile(argsFile)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	require.Len(t, lines, 3)
	require.Contains(t, lines[0], "Notify susssasa{sv}i golos 0  Заметка сохранена  0 1 urgency y 1 2500")
	require.Contains(t, lines[1], "Notify susssasa{sv}i golos 17  Команда не распознана  0 1 urgency y 2 1600")
	require.Contains(t, lines[2], "CloseNotification u 17")
}

func TestCueString(t *testing.T) {
	require.Equal(t, "success", CueSuccess.String())
	require.Equal(t, "error", CueError.String())
	require.Equal(t, "none", CueNone.String())
}

func TestNopController(t *testing.T) {
	var c Controller = Nop{}
	c.Cue(context.Background(), CueError)
	c.ShowStatus(context.Background(), StatusCommandsEnabled)
	c.ShowError(context.Background(), "x")
	c.Hide(context.Background())
}

func installHyprctlStub(t *testing.T, body string) {
	t.Helper()
	installStub(t, "hyprctl", body)
}

func installStub(t *testing.T, name string, body string) {
	t.Helper()

	dir := t.TempDir()
	path := filepath.Join(dir, name)
	script := "#!/usr/bin/env bash\nset -euo pipefail\n" + body + "\n"
	require.NoError(t, os.WriteFile(path, []byte(script), 0o755))
	t.Setenv("PATH", dir+":"+os.Getenv("PATH"))
}

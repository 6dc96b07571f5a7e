package config

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestValidateDefaultsWarnsAboutMissingSpeechCommand(t *testing.T) {
	warnings, err := Validate(Default())
	require.NoError(t, err)
	require.Len(t, warnings, 1)
	require.Contains(t, warnings[0].Message, "speech.cmd")
}

func TestValidateRejectsInvalidCoreFields(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{name: "empty commands file", mutate: func(c *Config) { c.CommandsFile = " " }, wantErr: "commands_file"},
		{name: "empty notes file", mutate: func(c *Config) { c.NotesFile = "" }, wantErr: "notes_file"},
		{name: "empty start note phrase", mutate: func(c *Config) { c.Phrases.StartNote = "" }, wantErr: "phrases.start_note"},
		{name: "duplicate note phrases", mutate: func(c *Config) { c.Phrases.SaveNote = c.Phrases.DiscardNote }, wantErr: "duplicates"},
		{name: "invalid retry", mutate: func(c *Config) { c.Speech.RetryMS = 0 }, wantErr: "speech.retry_ms"},
		{name: "unknown backend", mutate: func(c *Config) { c.Indicator.Backend = "x11" }, wantErr: "indicator.backend"},
		{name: "desktop backend without app name", mutate: func(c *Config) {
			c.Indicator.Backend = "desktop"
			c.Indicator.DesktopAppName = ""
		}, wantErr: "desktop_app_name"},
		{name: "negative error timeout", mutate: func(c *Config) { c.Indicator.ErrorTimeoutMS = -1 }, wantErr: "error_timeout"},
		{name: "empty tts argv", mutate: func(c *Config) { c.Desktop.TTSCmd.Argv = nil }, wantErr: "desktop.tts_cmd"},
		{name: "empty kill argv", mutate: func(c *Config) { c.Desktop.KillCmd.Argv = nil }, wantErr: "desktop.kill_cmd"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cfg := Default()
			tc.mutate(&cfg)

			_, err := Validate(cfg)
			require.Error(t, err)
			require.Contains(t, err.Error(), tc.wantErr)
		})
	}
}

func TestValidateWarnsOnEmptyControlCategory(t *testing.T) {
	cfg := Default()
	cfg.ControlCategory = ""
	cfg.Speech.Cmd = CommandConfig{Raw: "stt", Argv: []string{"stt"}}

	warnings, err := Validate(cfg)
	require.NoError(t, err)
	require.Len(t, warnings, 1)
	require.Contains(t, warnings[0].Message, "control_category")
}

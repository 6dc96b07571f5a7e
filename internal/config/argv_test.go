package config

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseArgv(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	tests := []struct {
		name    string
		input   string
		want    []string
		wantErr string
	}{
		{name: "empty", input: "   ", want: nil},
		{name: "comment", input: `# xdg-open`, want: nil},
		{name: "plain words", input: "spd-say  -w", want: []string{"spd-say", "-w"}},
		{name: "double quotes", input: `notify-send "golos ready"`, want: []string{"notify-send", "golos ready"}},
		{name: "single quotes are literal", input: `echo 'a\b "c"'`, want: []string{"echo", `a\b "c"`}},
		{name: "escaped quote inside double quotes", input: `say "he said \"hi\""`, want: []string{"say", `he said "hi"`}},
		{name: "other backslash kept inside double quotes", input: `grep "a\.b"`, want: []string{"grep", `a\.b`}},
		{name: "escaped space", input: `open my\ file`, want: []string{"open", "my file"}},
		{name: "adjacent quoting joins", input: `x a"b"'c'`, want: []string{"x", "abc"}},
		{name: "empty quoted arg", input: `x "" y`, want: []string{"x", "", "y"}},
		{name: "tilde word", input: `~/bin/listen --once`, want: []string{filepath.Join(home, "bin", "listen"), "--once"}},
		{name: "quoted tilde stays", input: `cat "~/notes"`, want: []string{"cat", "~/notes"}},
		{name: "tilde mid word stays", input: `cp a~/b`, want: []string{"cp", "a~/b"}},
		{name: "unterminated double", input: `say "oops`, wantErr: "unterminated quote"},
		{name: "unterminated single", input: `say 'oops`, wantErr: "unterminated quote"},
		{name: "trailing backslash", input: `say oops\`, wantErr: "unterminated escape"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, err := parseArgv(tc.input)
			if tc.wantErr != "" {
				require.ErrorContains(t, err, tc.wantErr)
				return
			}
			require.NoError(t, err)
			require.Equal(t, tc.want, got)
		})
	}
}

func TestMustParseArgvPanicsOnInvalidInput(t *testing.T) {
	require.Panics(t, func() {
		_ = mustParseArgv(`say "unterminated`)
	})
}

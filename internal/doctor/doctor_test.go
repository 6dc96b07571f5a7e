package doctor

import (
	"context"
	"net"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/test/bufconn"

	"github.com/rbright/golos/internal/config"
)

func TestReportOKAndString(t *testing.T) {
	report := Report{Checks: []Check{
		{Name: "one", Pass: true, Message: "good"},
		{Name: "two", Pass: false, Message: "bad"},
	}}

	require.False(t, report.OK())
	text := report.String()
	require.Contains(t, text, "[OK] one: good")
	require.Contains(t, text, "[FAIL] two: bad")
}

func TestReportOKAllPassing(t *testing.T) {
	report := Report{Checks: []Check{{Name: "one", Pass: true}, {Name: "two", Pass: true}}}
	require.True(t, report.OK())
}

func TestCheckEnv(t *testing.T) {
	t.Setenv("TEST_DOCTOR_ENV", "wayland")

	check := checkEnv(
		"TEST_DOCTOR_ENV",
		func(v string) bool { return strings.EqualFold(v, "wayland") },
		"looks good",
		"unexpected",
	)

	require.True(t, check.Pass)
	require.Equal(t, "looks good", check.Message)
}

func TestCheckConfigReportsDefaultsAndWarnings(t *testing.T) {
	check := checkConfig(config.Loaded{Path: "/tmp/missing.jsonc"})
	require.True(t, check.Pass)
	require.Contains(t, check.Message, "using defaults")

	check = checkConfig(config.Loaded{Path: "/tmp/config.jsonc", Exists: true, Warnings: []config.Warning{{Message: "x"}}})
	require.Contains(t, check.Message, "1 warnings")
}

func TestCheckCommandEmpty(t *testing.T) {
	check := checkCommand(nil, "speech.cmd")
	require.False(t, check.Pass)
	require.Contains(t, check.Message, "command is empty")
}

func TestCheckBinaryMissing(t *testing.T) {
	check := checkBinary("definitely-not-a-real-binary", "unused")
	require.False(t, check.Pass)
	require.Contains(t, check.Message, "binary not found")
}

func TestCheckCommandUsesBinaryFromPath(t *testing.T) {
	dir := t.TempDir()
	scriptPath := filepath.Join(dir, "fake-bin")
	require.NoError(t, os.WriteFile(scriptPath, []byte("#!/usr/bin/env bash\nexit 0\n"), 0o755))
	t.Setenv("PATH", dir+":"+os.Getenv("PATH"))

	check := checkCommand([]string{"fake-bin", "--arg"}, "tts_cmd")
	require.True(t, check.Pass)
	require.Contains(t, check.Message, "tts_cmd command is available")
}

func TestCheckCommandTable(t *testing.T) {
	fs := afero.NewMemMapFs()
	cfg := config.Default()
	cfg.CommandsFile = "/cfg/commands.json"

	check := checkCommandTable(fs, cfg)
	require.False(t, check.Pass)
	require.Contains(t, check.Message, "file not found")

	require.NoError(t, afero.WriteFile(fs, cfg.CommandsFile, []byte(`{
  "special": {"скриншот": {"action": "take_screenshot", "params": [], "description": "Скриншот"}}
}`), 0o644))
	check = checkCommandTable(fs, cfg)
	require.True(t, check.Pass)
	require.Contains(t, check.Message, "1 commands")

	require.NoError(t, afero.WriteFile(fs, cfg.CommandsFile, []byte(`{
  "special": {"взлетай": {"action": "launch_rocket", "params": [], "description": "?"}}
}`), 0o644))
	check = checkCommandTable(fs, cfg)
	require.False(t, check.Pass)
	require.Contains(t, check.Message, "1 errors")
}

func TestCheckAudioSelectionFailureWithInvalidPulseServer(t *testing.T) {
	t.Setenv("PULSE_SERVER", "unix:/tmp/definitely-missing-pulse-server")

	check := checkAudioSelection(context.Background(), config.Default())
	require.False(t, check.Pass)
	require.Equal(t, "audio.device", check.Name)
}

func TestCheckSpeechHealth(t *testing.T) {
	check := checkSpeechHealth(context.Background(), " ")
	require.True(t, check.Pass)
	require.Contains(t, check.Message, "skipped")

	lis := bufconn.Listen(1 << 16)
	srv := grpc.NewServer()
	hs := health.NewServer()
	hs.SetServingStatus("", healthpb.HealthCheckResponse_SERVING)
	healthpb.RegisterHealthServer(srv, hs)
	go func() { _ = srv.Serve(lis) }()
	t.Cleanup(srv.Stop)
	dialer := grpc.WithContextDialer(func(ctx context.Context, _ string) (net.Conn, error) {
		return lis.DialContext(ctx)
	})

	check = checkSpeechHealth(context.Background(), "passthrough:///bufnet", dialer)
	require.True(t, check.Pass, check.Message)
	require.Contains(t, check.Message, "serving at")

	hs.SetServingStatus("", healthpb.HealthCheckResponse_NOT_SERVING)
	check = checkSpeechHealth(context.Background(), "passthrough:///bufnet", dialer)
	require.False(t, check.Pass)
	require.Contains(t, check.Message, "NOT_SERVING")
}

func TestRunIncludesToolTableAndServiceChecks(t *testing.T) {
	binDir := t.TempDir()
	for _, name := range []string{"hyprctl", "fake-listen"} {
		require.NoError(t, os.WriteFile(filepath.Join(binDir, name), []byte("#!/usr/bin/env sh\nexit 0\n"), 0o755))
	}
	t.Setenv("PATH", binDir+":"+os.Getenv("PATH"))
	t.Setenv("PULSE_SERVER", "unix:/tmp/definitely-missing-pulse-server")
	t.Setenv("XDG_SESSION_TYPE", "wayland")
	t.Setenv("HYPRLAND_INSTANCE_SIGNATURE", "abc123")

	cfg := config.Default()
	cfg.Speech.Cmd = config.CommandConfig{Raw: "fake-listen", Argv: []string{"fake-listen"}}
	cfg.CommandsFile = "/cfg/commands.json"

	report := Run(context.Background(), config.Loaded{Path: "/tmp/config.jsonc", Config: cfg}, Options{Fs: afero.NewMemMapFs()})
	require.False(t, report.OK())

	byName := map[string]Check{}
	for _, check := range report.Checks {
		byName[check.Name] = check
	}
	require.True(t, byName["hyprctl"].Pass)
	require.True(t, byName["fake-listen"].Pass)
	require.False(t, byName["commands"].Pass)
	require.False(t, byName["audio.device"].Pass)
	require.True(t, byName["speech.health"].Pass)
}

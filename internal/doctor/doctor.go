// Package doctor runs readiness diagnostics for config, desktop tools, the
// command table, audio, and the speech service.
package doctor

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"strings"
	"time"

	"github.com/spf13/afero"
	"google.golang.org/grpc"

	"github.com/rbright/golos/internal/action"
	"github.com/rbright/golos/internal/audio"
	"github.com/rbright/golos/internal/commands"
	"github.com/rbright/golos/internal/config"
	"github.com/rbright/golos/internal/speech"
)

// Check is one doctor assertion result.
type Check struct {
	Name    string
	Pass    bool
	Message string
}

// Report is the full doctor output contract.
type Report struct {
	Checks []Check
}

// OK returns true when all checks pass.
func (r Report) OK() bool {
	for _, check := range r.Checks {
		if !check.Pass {
			return false
		}
	}
	return true
}

// String renders the report as user-facing text output.
func (r Report) String() string {
	var b strings.Builder
	for _, check := range r.Checks {
		status := "OK"
		if !check.Pass {
			status = "FAIL"
		}
		b.WriteString(fmt.Sprintf("[%s] %s: %s\n", status, check.Name, check.Message))
	}
	return strings.TrimSuffix(b.String(), "\n")
}

// Options overrides collaborators used by Run.
type Options struct {
	Fs          afero.Fs
	DialOptions []grpc.DialOption
}

// Run executes environment/config/runtime checks for a loaded config.
func Run(ctx context.Context, loaded config.Loaded, opts Options) Report {
	fs := opts.Fs
	if fs == nil {
		fs = afero.NewOsFs()
	}
	cfg := loaded.Config

	checks := []Check{checkConfig(loaded)}

	checks = append(checks, checkEnv("XDG_SESSION_TYPE", func(v string) bool {
		return strings.EqualFold(strings.TrimSpace(v), "wayland")
	}, "session type is wayland", "expected XDG_SESSION_TYPE=wayland"))

	checks = append(checks, checkEnv("HYPRLAND_INSTANCE_SIGNATURE", func(v string) bool {
		return strings.TrimSpace(v) != ""
	}, "Hyprland session detected", "HYPRLAND_INSTANCE_SIGNATURE is empty"))

	checks = append(checks, checkBinary("hyprctl", "open_app launches through hyprctl"))
	checks = append(checks,
		checkCommand(cfg.Speech.Cmd.Argv, "speech.cmd"),
		checkCommand(cfg.Desktop.OpenURLCmd.Argv, "open_url_cmd"),
		checkCommand(cfg.Desktop.TTSCmd.Argv, "tts_cmd"),
		checkCommand(cfg.Desktop.PointerCmd.Argv, "pointer_cmd"),
		checkCommand(cfg.Desktop.ScreenshotCmd.Argv, "screenshot_cmd"),
		checkCommand(cfg.Desktop.KillCmd.Argv, "kill_cmd"),
	)

	checks = append(checks, checkCommandTable(fs, cfg))
	checks = append(checks, checkAudioSelection(ctx, cfg))
	checks = append(checks, checkSpeechHealth(ctx, cfg.Speech.HealthGRPC, opts.DialOptions...))

	return Report{Checks: checks}
}

func checkConfig(loaded config.Loaded) Check {
	if !loaded.Exists {
		return Check{Name: "config", Pass: true, Message: fmt.Sprintf("%q not found; using defaults", loaded.Path)}
	}
	msg := fmt.Sprintf("loaded %q", loaded.Path)
	if n := len(loaded.Warnings); n > 0 {
		msg = fmt.Sprintf("%s (%d warnings)", msg, n)
	}
	return Check{Name: "config", Pass: true, Message: msg}
}

// checkEnv validates an environment variable through a caller-supplied predicate.
func checkEnv(name string, predicate func(string) bool, okMsg, failMsg string) Check {
	value := os.Getenv(name)
	if predicate(value) {
		return Check{Name: name, Pass: true, Message: okMsg}
	}
	return Check{Name: name, Pass: false, Message: failMsg}
}

// checkCommand validates that argv contains a runnable command.
func checkCommand(argv []string, name string) Check {
	if len(argv) == 0 {
		return Check{Name: name, Pass: false, Message: "command is empty"}
	}
	return checkBinary(argv[0], fmt.Sprintf("%s command is available", name))
}

// checkBinary validates that a binary exists in PATH.
func checkBinary(bin string, okMsg string) Check {
	path, err := exec.LookPath(bin)
	if err != nil {
		return Check{Name: bin, Pass: false, Message: fmt.Sprintf("binary not found in PATH: %s", bin)}
	}
	return Check{Name: bin, Pass: true, Message: fmt.Sprintf("found at %s (%s)", path, okMsg)}
}

// checkCommandTable loads and lints the commands file.
func checkCommandTable(fs afero.Fs, cfg config.Config) Check {
	table, err := commands.Load(fs, cfg.CommandsFile)
	if err != nil {
		return Check{Name: "commands", Pass: false, Message: err.Error()}
	}

	issues := commands.Lint(table, commands.LintOptions{CheckAction: action.Validate})
	var errs, warnings int
	for _, issue := range issues {
		if issue.Severity == commands.SeverityError {
			errs++
		} else {
			warnings++
		}
	}
	msg := fmt.Sprintf("%d commands in %q (%d errors, %d warnings; see `golos check`)", table.Len(), cfg.CommandsFile, errs, warnings)
	return Check{Name: "commands", Pass: errs == 0, Message: msg}
}

// checkAudioSelection runs live device selection to surface selection/fallback issues.
func checkAudioSelection(ctx context.Context, cfg config.Config) Check {
	selection, err := audio.SelectDevice(ctx, cfg.Audio.Input, cfg.Audio.Fallback)
	if err != nil {
		return Check{Name: "audio.device", Pass: false, Message: err.Error()}
	}
	message := fmt.Sprintf("selected %q", selection.Device.ID)
	if selection.Warning != "" {
		message = message + " (" + selection.Warning + ")"
	}
	return Check{Name: "audio.device", Pass: true, Message: message}
}

// checkSpeechHealth probes the speech service gRPC health endpoint when configured.
func checkSpeechHealth(ctx context.Context, target string, opts ...grpc.DialOption) Check {
	target = strings.TrimSpace(target)
	if target == "" {
		return Check{Name: "speech.health", Pass: true, Message: "speech.health_grpc not set; skipped"}
	}

	probeCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	if err := speech.Probe(probeCtx, target, opts...); err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return Check{Name: "speech.health", Pass: false, Message: fmt.Sprintf("%s did not become ready within 2s", target)}
		}
		return Check{Name: "speech.health", Pass: false, Message: err.Error()}
	}
	return Check{Name: "speech.health", Pass: true, Message: fmt.Sprintf("serving at %s", target)}
}

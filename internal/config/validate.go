package config

import (
	"fmt"
	"strings"
)

// Validate enforces config invariants and returns non-fatal warnings.
func Validate(cfg Config) ([]Warning, error) {
	warnings := make([]Warning, 0)

	if strings.TrimSpace(cfg.CommandsFile) == "" {
		return nil, fmt.Errorf("commands_file must not be empty")
	}
	if strings.TrimSpace(cfg.NotesFile) == "" {
		return nil, fmt.Errorf("notes_file must not be empty")
	}

	phrases := []struct {
		key   string
		value string
	}{
		{"phrases.start_note", cfg.Phrases.StartNote},
		{"phrases.save_note", cfg.Phrases.SaveNote},
		{"phrases.discard_note", cfg.Phrases.DiscardNote},
		{"phrases.enable_commands", cfg.Phrases.EnableCommands},
	}
	seen := make(map[string]string, len(phrases))
	for _, p := range phrases {
		if strings.TrimSpace(p.value) == "" {
			return nil, fmt.Errorf("%s must not be empty", p.key)
		}
		if other, ok := seen[p.value]; ok {
			return nil, fmt.Errorf("%s duplicates %s (%q)", p.key, other, p.value)
		}
		seen[p.value] = p.key
	}
	if cfg.Speech.RetryMS <= 0 {
		return nil, fmt.Errorf("speech.retry_ms must be > 0")
	}
	if len(cfg.Speech.Cmd.Argv) == 0 {
		warnings = append(warnings, Warning{Message: "speech.cmd is not set; only injected utterances will be processed"})
	}

	backend := strings.ToLower(strings.TrimSpace(cfg.Indicator.Backend))
	if backend == "" {
		return nil, fmt.Errorf("indicator.backend must not be empty")
	}
	if backend != "hypr" && backend != "desktop" {
		return nil, fmt.Errorf("indicator.backend must be one of: hypr, desktop")
	}
	if backend == "desktop" && strings.TrimSpace(cfg.Indicator.DesktopAppName) == "" {
		return nil, fmt.Errorf("indicator.desktop_app_name must not be empty when indicator.backend=desktop")
	}
	if cfg.Indicator.ErrorTimeoutMS < 0 {
		return nil, fmt.Errorf("indicator.error_timeout_ms must be >= 0")
	}

	required := []struct {
		key  string
		argv []string
	}{
		{"desktop.open_url_cmd", cfg.Desktop.OpenURLCmd.Argv},
		{"desktop.tts_cmd", cfg.Desktop.TTSCmd.Argv},
		{"desktop.pointer_cmd", cfg.Desktop.PointerCmd.Argv},
		{"desktop.screenshot_cmd", cfg.Desktop.ScreenshotCmd.Argv},
		{"desktop.kill_cmd", cfg.Desktop.KillCmd.Argv},
	}
	for _, r := range required {
		if len(r.argv) == 0 {
			return nil, fmt.Errorf("%s must not be empty", r.key)
		}
	}

	if strings.TrimSpace(cfg.ControlCategory) == "" {
		warnings = append(warnings, Warning{Message: "control_category is empty; only the enable phrase bypasses disabled mode"})
	}

	return warnings, nil
}

package config

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/caarlos0/env/v11"
)

// envOverrides are optional environment overrides applied after the config file.
type envOverrides struct {
	CommandsFile string `env:"GOLOS_COMMANDS_FILE"`
	NotesFile    string `env:"GOLOS_NOTES_FILE"`
	Sound        string `env:"GOLOS_SOUND"`
	Language     string `env:"GOLOS_LANGUAGE"`
}

// ApplyEnv overlays GOLOS_* environment variables onto cfg.
func ApplyEnv(cfg *Config) error {
	var overrides envOverrides
	if err := env.Parse(&overrides); err != nil {
		return fmt.Errorf("parse environment overrides: %w", err)
	}

	if v := strings.TrimSpace(overrides.CommandsFile); v != "" {
		cfg.CommandsFile = v
	}
	if v := strings.TrimSpace(overrides.NotesFile); v != "" {
		cfg.NotesFile = v
	}
	if v := strings.TrimSpace(overrides.Sound); v != "" {
		enabled, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("GOLOS_SOUND must be a boolean: %w", err)
		}
		cfg.Indicator.SoundEnable = enabled
	}
	if v := strings.TrimSpace(overrides.Language); v != "" {
		cfg.Indicator.Language = strings.ToLower(v)
	}
	return nil
}

package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

// Loaded captures resolved config path, parsed values, and non-fatal warnings.
type Loaded struct {
	Path     string
	Config   Config
	Warnings []Warning
	Exists   bool
}

// Load resolves, reads, parses, and validates the runtime configuration.
//
// Relative file paths in the result are resolved against the config directory
// and environment overrides are applied last.
func Load(explicitPath string) (Loaded, error) {
	resolvedPath, err := ResolvePath(explicitPath)
	if err != nil {
		return Loaded{}, err
	}

	base := Default()
	loaded := Loaded{Path: resolvedPath}

	content, err := os.ReadFile(resolvedPath)
	switch {
	case err == nil:
		cfg, warnings, parseErr := Parse(string(content), base)
		if parseErr != nil {
			return Loaded{}, fmt.Errorf("parse config %q: %w", resolvedPath, parseErr)
		}
		loaded.Config = cfg
		loaded.Warnings = warnings
		loaded.Exists = true
	case errors.Is(err, os.ErrNotExist):
		loaded.Config = base
		loaded.Warnings = []Warning{{
			Message: fmt.Sprintf("config file %q not found; using defaults", resolvedPath),
		}}
	default:
		return Loaded{}, fmt.Errorf("read config %q: %w", resolvedPath, err)
	}

	if err := ApplyEnv(&loaded.Config); err != nil {
		return Loaded{}, err
	}

	dir := filepath.Dir(resolvedPath)
	loaded.Config.CommandsFile = resolveFile(dir, loaded.Config.CommandsFile)
	loaded.Config.NotesFile = resolveFile(dir, loaded.Config.NotesFile)
	loaded.Config.ScreenshotDir = resolveFile(dir, loaded.Config.ScreenshotDir)
	return loaded, nil
}

func resolveFile(dir string, raw string) string {
	expanded := ExpandUser(raw)
	if expanded == "" || filepath.IsAbs(expanded) {
		return expanded
	}
	return filepath.Join(dir, expanded)
}

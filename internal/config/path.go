package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
)

const configRel = "golos/config.jsonc"

// ResolvePath picks the config file location: the --config flag, then
// $GOLOS_CONFIG, then $XDG_CONFIG_HOME/golos/config.jsonc, then
// ~/.config/golos/config.jsonc. A relative XDG_CONFIG_HOME is ignored as the
// XDG base directory rules require.
func ResolvePath(explicit string) (string, error) {
	for _, candidate := range []string{explicit, os.Getenv("GOLOS_CONFIG")} {
		if p := ExpandUser(candidate); p != "" {
			return p, nil
		}
	}

	if xdg := strings.TrimSpace(os.Getenv("XDG_CONFIG_HOME")); filepath.IsAbs(xdg) {
		return filepath.Join(xdg, configRel), nil
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return "", errors.New("cannot locate config: neither XDG_CONFIG_HOME nor HOME is usable")
	}
	return filepath.Join(home, ".config", configRel), nil
}

// ExpandUser trims raw and replaces a leading "~" or "~/" with the home
// directory. "~user" forms are returned unchanged.
func ExpandUser(raw string) string {
	raw = strings.TrimSpace(raw)
	rest, ok := strings.CutPrefix(raw, "~")
	if !ok || (rest != "" && rest[0] != '/') {
		return raw
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return raw
	}
	return filepath.Join(home, rest)
}

package commands

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/afero"
)

// Format identifies an on-disk table encoding.
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// FormatForPath selects the codec from the file extension; JSON is the default.
func FormatForPath(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML
	default:
		return FormatJSON
	}
}

// Load reads and decodes the table at path.
//
// Any failure yields an empty table together with a *ConfigError so callers
// can keep running without static commands.
func Load(fs afero.Fs, path string) (*Table, error) {
	content, err := afero.ReadFile(fs, path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return NewTable(), &ConfigError{Path: path, Err: fmt.Errorf("file not found: %w", err)}
		}
		return NewTable(), &ConfigError{Path: path, Err: err}
	}

	table, err := Decode(content, FormatForPath(path))
	if err != nil {
		return NewTable(), &ConfigError{Path: path, Err: err}
	}
	return table, nil
}

// Decode parses table content in the given format.
func Decode(content []byte, format Format) (*Table, error) {
	switch format {
	case FormatYAML:
		return decodeYAML(content)
	default:
		return decodeJSON(string(content))
	}
}

// Encode renders table content in the given format.
func Encode(table *Table, format Format) ([]byte, error) {
	switch format {
	case FormatYAML:
		return encodeYAML(table)
	default:
		return encodeJSON(table)
	}
}

// Save writes the table atomically through a sibling temp file.
func Save(fs afero.Fs, path string, table *Table) error {
	data, err := Encode(table, FormatForPath(path))
	if err != nil {
		return fmt.Errorf("encode commands: %w", err)
	}

	dir := filepath.Dir(path)
	if err := fs.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("ensure commands dir: %w", err)
	}

	tmp := path + ".tmp"
	if err := afero.WriteFile(fs, tmp, data, 0o644); err != nil {
		return fmt.Errorf("write commands %q: %w", tmp, err)
	}
	if err := fs.Rename(tmp, path); err != nil {
		_ = fs.Remove(tmp)
		return fmt.Errorf("replace commands %q: %w", path, err)
	}
	return nil
}

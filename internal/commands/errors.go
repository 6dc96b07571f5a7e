package commands

import "fmt"

// ConfigError reports an unreadable or malformed command table source.
// Load returns it alongside an empty, usable table.
type ConfigError struct {
	Path string
	Err  error
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("load commands %q: %v", e.Path, e.Err)
}

func (e *ConfigError) Unwrap() error {
	return e.Err
}

// Package config resolves, parses, validates, and defaults golos configuration.
package config

// Config is the fully materialized runtime configuration used by golos.
type Config struct {
	CommandsFile    string
	NotesFile       string
	ScreenshotDir   string
	ControlCategory string
	Phrases         PhraseConfig
	Speech          SpeechConfig
	Audio           AudioConfig
	Indicator       IndicatorConfig
	Desktop         DesktopConfig
	Focus           FocusConfig
}

// PhraseConfig holds the localized session-control phrases checked before the table.
type PhraseConfig struct {
	StartNote      string
	SaveNote       string
	DiscardNote    string
	EnableCommands string
}

// SpeechConfig controls the external recognizer process and its readiness probe.
type SpeechConfig struct {
	Cmd        CommandConfig
	HealthGRPC string
	RetryMS    int
}

// AudioConfig controls preferred and fallback input-source selection.
type AudioConfig struct {
	Input    string
	Fallback string
}

// IndicatorConfig controls visual indicator and audio cue behavior.
type IndicatorConfig struct {
	Enable           bool
	Backend          string
	DesktopAppName   string
	SoundEnable      bool
	SoundSuccessFile string
	SoundErrorFile   string
	ErrorTimeoutMS   int
	Language         string
}

// DesktopConfig holds argv templates for OS-level action collaborators.
type DesktopConfig struct {
	OpenURLCmd    CommandConfig
	TTSCmd        CommandConfig
	PointerCmd    CommandConfig
	ScreenshotCmd CommandConfig
	KillCmd       CommandConfig
}

// FocusConfig lists applications closed and opened by focus mode.
type FocusConfig struct {
	Close []string
	Open  string
}

// CommandConfig stores a raw command string and its parsed argv form.
type CommandConfig struct {
	Raw  string
	Argv []string
}

// Warning is a non-fatal parse/validation message.
type Warning struct {
	Line    int
	Message string
}

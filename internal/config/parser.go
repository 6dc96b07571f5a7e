package config

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/rbright/golos/internal/jsonc"
)

type jsoncConfig struct {
	CommandsFile    *string         `json:"commands_file"`
	NotesFile       *string         `json:"notes_file"`
	ScreenshotDir   *string         `json:"screenshot_dir"`
	ControlCategory *string         `json:"control_category"`
	Phrases         *jsoncPhrases   `json:"phrases"`
	Speech          *jsoncSpeech    `json:"speech"`
	Audio           *jsoncAudio     `json:"audio"`
	Indicator       *jsoncIndicator `json:"indicator"`
	Desktop         *jsoncDesktop   `json:"desktop"`
	Focus           *jsoncFocus     `json:"focus"`
}

type jsoncPhrases struct {
	StartNote      *string `json:"start_note"`
	SaveNote       *string `json:"save_note"`
	DiscardNote    *string `json:"discard_note"`
	EnableCommands *string `json:"enable_commands"`
}

type jsoncSpeech struct {
	Cmd        *string `json:"cmd"`
	HealthGRPC *string `json:"health_grpc"`
	RetryMS    *int    `json:"retry_ms"`
}

type jsoncAudio struct {
	Input    *string `json:"input"`
	Fallback *string `json:"fallback"`
}

type jsoncIndicator struct {
	Enable           *bool   `json:"enable"`
	Backend          *string `json:"backend"`
	DesktopAppName   *string `json:"desktop_app_name"`
	SoundEnable      *bool   `json:"sound_enable"`
	SoundSuccessFile *string `json:"sound_success_file"`
	SoundErrorFile   *string `json:"sound_error_file"`
	ErrorTimeoutMS   *int    `json:"error_timeout_ms"`
	Language         *string `json:"language"`
}

type jsoncDesktop struct {
	OpenURLCmd    *string `json:"open_url_cmd"`
	TTSCmd        *string `json:"tts_cmd"`
	PointerCmd    *string `json:"pointer_cmd"`
	ScreenshotCmd *string `json:"screenshot_cmd"`
	KillCmd       *string `json:"kill_cmd"`
}

type jsoncFocus struct {
	Close *jsoncStringList `json:"close"`
	Open  *string          `json:"open"`
}

type jsoncStringList []string

func (l *jsoncStringList) UnmarshalJSON(data []byte) error {
	var list []string
	if err := json.Unmarshal(data, &list); err == nil {
		*l = list
		return nil
	}

	var single string
	if err := json.Unmarshal(data, &single); err == nil {
		parts := strings.Split(single, ",")
		out := make([]string, 0, len(parts))
		for _, part := range parts {
			part = strings.TrimSpace(part)
			if part == "" {
				continue
			}
			out = append(out, part)
		}
		*l = out
		return nil
	}

	return fmt.Errorf("expected string array or comma-delimited string")
}

// Parse reads JSONC configuration content on top of base and validates the result.
func Parse(content string, base Config) (Config, []Warning, error) {
	if strings.TrimSpace(content) == "" {
		validatedWarnings, err := Validate(base)
		if err != nil {
			return Config{}, nil, err
		}
		return base, validatedWarnings, nil
	}

	normalized, err := jsonc.Normalize(content)
	if err != nil {
		return Config{}, nil, err
	}

	decoder := json.NewDecoder(strings.NewReader(normalized))
	decoder.DisallowUnknownFields()

	var payload jsoncConfig
	if err := decoder.Decode(&payload); err != nil {
		return Config{}, nil, jsonc.WrapDecodeError(normalized, err)
	}
	if err := jsonc.EnsureSingleValue(decoder); err != nil {
		return Config{}, nil, jsonc.WrapDecodeError(normalized, err)
	}

	cfg := base
	warnings, err := payload.applyTo(&cfg)
	if err != nil {
		return Config{}, nil, err
	}

	validatedWarnings, err := Validate(cfg)
	if err != nil {
		return Config{}, nil, err
	}
	warnings = append(warnings, validatedWarnings...)
	return cfg, warnings, nil
}

func (payload jsoncConfig) applyTo(cfg *Config) ([]Warning, error) {
	warnings := make([]Warning, 0)

	setString(&cfg.CommandsFile, payload.CommandsFile)
	setString(&cfg.NotesFile, payload.NotesFile)
	setString(&cfg.ScreenshotDir, payload.ScreenshotDir)
	setString(&cfg.ControlCategory, payload.ControlCategory)

	if p := payload.Phrases; p != nil {
		setPhrase(&cfg.Phrases.StartNote, p.StartNote)
		setPhrase(&cfg.Phrases.SaveNote, p.SaveNote)
		setPhrase(&cfg.Phrases.DiscardNote, p.DiscardNote)
		setPhrase(&cfg.Phrases.EnableCommands, p.EnableCommands)
	}

	if s := payload.Speech; s != nil {
		if s.Cmd != nil {
			argv, err := parseArgv(*s.Cmd)
			if err != nil {
				return nil, fmt.Errorf("invalid speech.cmd: %w", err)
			}
			cfg.Speech.Cmd = CommandConfig{Raw: *s.Cmd, Argv: argv}
		}
		setString(&cfg.Speech.HealthGRPC, s.HealthGRPC)
		if s.RetryMS != nil {
			cfg.Speech.RetryMS = *s.RetryMS
		}
	}

	if a := payload.Audio; a != nil {
		if a.Input != nil {
			cfg.Audio.Input = *a.Input
		}
		if a.Fallback != nil {
			cfg.Audio.Fallback = *a.Fallback
		}
	}

	if ind := payload.Indicator; ind != nil {
		if ind.Enable != nil {
			cfg.Indicator.Enable = *ind.Enable
		}
		setString(&cfg.Indicator.Backend, ind.Backend)
		setString(&cfg.Indicator.DesktopAppName, ind.DesktopAppName)
		if ind.SoundEnable != nil {
			cfg.Indicator.SoundEnable = *ind.SoundEnable
		}
		setString(&cfg.Indicator.SoundSuccessFile, ind.SoundSuccessFile)
		setString(&cfg.Indicator.SoundErrorFile, ind.SoundErrorFile)
		if ind.ErrorTimeoutMS != nil {
			cfg.Indicator.ErrorTimeoutMS = *ind.ErrorTimeoutMS
		}
		setString(&cfg.Indicator.Language, ind.Language)
	}

	if d := payload.Desktop; d != nil {
		commands := []struct {
			key    string
			raw    *string
			target *CommandConfig
		}{
			{"desktop.open_url_cmd", d.OpenURLCmd, &cfg.Desktop.OpenURLCmd},
			{"desktop.tts_cmd", d.TTSCmd, &cfg.Desktop.TTSCmd},
			{"desktop.pointer_cmd", d.PointerCmd, &cfg.Desktop.PointerCmd},
			{"desktop.screenshot_cmd", d.ScreenshotCmd, &cfg.Desktop.ScreenshotCmd},
			{"desktop.kill_cmd", d.KillCmd, &cfg.Desktop.KillCmd},
		}
		for _, c := range commands {
			if c.raw == nil {
				continue
			}
			argv, err := parseArgv(*c.raw)
			if err != nil {
				return nil, fmt.Errorf("invalid %s: %w", c.key, err)
			}
			*c.target = CommandConfig{Raw: *c.raw, Argv: argv}
		}
	}

	if f := payload.Focus; f != nil {
		if f.Close != nil {
			cfg.Focus.Close = cfg.Focus.Close[:0:0]
			for _, name := range *f.Close {
				name = strings.TrimSpace(name)
				if name == "" {
					continue
				}
				cfg.Focus.Close = append(cfg.Focus.Close, name)
			}
		}
		setString(&cfg.Focus.Open, f.Open)
	}

	return warnings, nil
}

func setString(target *string, value *string) {
	if value == nil {
		return
	}
	*target = strings.TrimSpace(*value)
}

// setPhrase stores phrases lowercased since utterances arrive lowercased.
func setPhrase(target *string, value *string) {
	if value == nil {
		return
	}
	*target = strings.ToLower(strings.TrimSpace(*value))
}

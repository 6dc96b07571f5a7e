package config

// Default returns the canonical runtime configuration used when no file is present.
func Default() Config {
	openURL := "xdg-open"
	tts := "spd-say --wait -l ru"
	pointer := "ydotool"
	screenshot := "grim"
	kill := "pkill -i"

	return Config{
		CommandsFile:    "commands.json",
		NotesFile:       "~/Desktop/voice_note.txt",
		ScreenshotDir:   "~/Desktop",
		ControlCategory: "assistant_control",
		Phrases: PhraseConfig{
			StartNote:      "запиши заметку",
			SaveNote:       "сохрани заметку",
			DiscardNote:    "удали заметку",
			EnableCommands: "включи команды",
		},
		Speech: SpeechConfig{
			RetryMS: 1000,
		},
		Audio: AudioConfig{
			Input:    "default",
			Fallback: "default",
		},
		Indicator: IndicatorConfig{
			Enable:         true,
			Backend:        "hypr",
			DesktopAppName: "golos",
			SoundEnable:    true,
			ErrorTimeoutMS: 1600,
			Language:       "ru",
		},
		Desktop: DesktopConfig{
			OpenURLCmd:    CommandConfig{Raw: openURL, Argv: mustParseArgv(openURL)},
			TTSCmd:        CommandConfig{Raw: tts, Argv: mustParseArgv(tts)},
			PointerCmd:    CommandConfig{Raw: pointer, Argv: mustParseArgv(pointer)},
			ScreenshotCmd: CommandConfig{Raw: screenshot, Argv: mustParseArgv(screenshot)},
			KillCmd:       CommandConfig{Raw: kill, Argv: mustParseArgv(kill)},
		},
		Focus: FocusConfig{
			Close: []string{"Telegram", "Discord", "Messages"},
			Open:  "code",
		},
	}
}

package indicator

import (
	"os"
	"strings"
)

type locale string

const (
	localeEnglish locale = "en"
	localeRussian locale = "ru"
)

type messages struct {
	commandsEnabled  string
	commandsDisabled string
	noteRecording    string
	noteSaved        string
	noteDiscarded    string
	errorText        string
}

func (m messages) status(s Status) string {
	switch s {
	case StatusCommandsEnabled:
		return m.commandsEnabled
	case StatusCommandsDisabled:
		return m.commandsDisabled
	case StatusNoteRecording:
		return m.noteRecording
	case StatusNoteSaved:
		return m.noteSaved
	case StatusNoteDiscarded:
		return m.noteDiscarded
	default:
		return ""
	}
}

// resolveLocale picks the configured language, then LANG, then Russian.
func resolveLocale(configured string) locale {
	raw := strings.ToLower(strings.TrimSpace(configured))
	if raw == "" {
		raw = strings.ToLower(strings.TrimSpace(os.Getenv("LANG")))
	}
	if strings.HasPrefix(raw, "en") {
		return localeEnglish
	}
	return localeRussian
}

func indicatorMessages(tag locale) messages {
	switch tag {
	case localeEnglish:
		return messages{
			commandsEnabled:  "Commands enabled",
			commandsDisabled: "Commands disabled",
			noteRecording:    "Recording note…",
			noteSaved:        "Note saved",
			noteDiscarded:    "Note discarded",
			errorText:        "Command not recognized",
		}
	default:
		return messages{
			commandsEnabled:  "Команды включены",
			commandsDisabled: "Команды выключены",
			noteRecording:    "Запись заметки…",
			noteSaved:        "Заметка сохранена",
			noteDiscarded:    "Заметка удалена",
			errorText:        "Команда не распознана",
		}
	}
}

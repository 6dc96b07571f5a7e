package matcher

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/unicode/norm"

	"github.com/rbright/golos/internal/action"
)

// Policy holds the session-control phrases and disable exemptions applied
// when compiling a table.
type Policy struct {
	StartNote       string
	SaveNote        string
	DiscardNote     string
	EnableCommands  string
	ControlCategory string
	Patterns        []Pattern
}

// Pattern extracts a typed action from an utterance the table does not bind.
type Pattern struct {
	Name   string
	Regexp *regexp.Regexp
	Build  func(groups []string) (action.Action, error)
}

// DefaultPolicy returns the Russian phrases and patterns.
func DefaultPolicy() Policy {
	return Policy{
		StartNote:       "запиши заметку",
		SaveNote:        "сохрани заметку",
		DiscardNote:     "удали заметку",
		EnableCommands:  "включи команды",
		ControlCategory: "assistant_control",
		Patterns:        DefaultPatterns(),
	}
}

// DefaultPatterns returns timed disable, repeated click, and directional
// pointer move, in that order.
func DefaultPatterns() []Pattern {
	return []Pattern{
		{
			Name:   "disable_commands_for",
			Regexp: regexp.MustCompile(`выключи команды на (\d+) (секунд[уы]?|минут[уы]?|час[аов]?)`),
			Build: func(g []string) (action.Action, error) {
				n, err := atoi(g[1])
				if err != nil {
					return nil, err
				}
				d, err := action.DurationFor(n, g[2])
				if err != nil {
					return nil, err
				}
				return action.DisableCommands{For: d, Timed: true}, nil
			},
		},
		{
			Name:   "click_mouse",
			Regexp: regexp.MustCompile(`кликни (\d+) раз`),
			Build: func(g []string) (action.Action, error) {
				n, err := atoi(g[1])
				if err != nil {
					return nil, err
				}
				return action.Click{Times: n}, nil
			},
		},
		{
			Name:   "move_pointer",
			Regexp: regexp.MustCompile(`пошевели мышкой (вверх|вниз|влево|вправо) (\d+) пиксел[еяй]`),
			Build: func(g []string) (action.Action, error) {
				px, err := atoi(g[2])
				if err != nil {
					return nil, err
				}
				switch g[1] {
				case "вверх":
					return action.MovePointer{DY: -px}, nil
				case "вниз":
					return action.MovePointer{DY: px}, nil
				case "влево":
					return action.MovePointer{DX: -px}, nil
				default:
					return action.MovePointer{DX: px}, nil
				}
			},
		},
	}
}

func atoi(raw string) (int, error) {
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("%w: %q is not a number", action.ErrInvalidParams, raw)
	}
	return n, nil
}

// normalize puts recognizer output and table phrases in one comparable form:
// NFC composed, lower-cased and trimmed. Inner spacing is kept so note lines
// are stored as spoken.
func normalize(s string) string {
	s = norm.NFC.String(strings.TrimSpace(s))
	return cases.Lower(language.Russian).String(s)
}

package config

import (
	"errors"
	"fmt"
	"strings"
	"unicode"
)

// argvLexer splits a command string the way a POSIX shell would for the
// subset golos needs: single quotes are literal, double quotes honor
// backslash escapes of `"` and `\`, and a word that starts with `~/` is
// expanded against the home directory. No variable or glob expansion.
type argvLexer struct {
	argv    []string
	word    strings.Builder
	started bool
	tilde   bool
}

func (l *argvLexer) add(r rune) {
	l.word.WriteRune(r)
	l.started = true
}

func (l *argvLexer) end() {
	if !l.started {
		return
	}
	word := l.word.String()
	if l.tilde {
		word = ExpandUser(word)
	}
	l.argv = append(l.argv, word)
	l.word.Reset()
	l.started, l.tilde = false, false
}

func parseArgv(input string) ([]string, error) {
	input = strings.TrimSpace(input)
	if input == "" || input[0] == '#' {
		return nil, nil
	}

	var lex argvLexer
	runes := []rune(input)
	for i := 0; i < len(runes); i++ {
		r := runes[i]
		switch {
		case unicode.IsSpace(r):
			lex.end()
		case r == '\\':
			i++
			if i == len(runes) {
				return nil, fmt.Errorf("unterminated escape sequence in command: %q", input)
			}
			lex.add(runes[i])
		case r == '\'':
			end := indexRune(runes, i+1, '\'')
			if end < 0 {
				return nil, fmt.Errorf("unterminated quote in command: %q", input)
			}
			lex.started = true
			for _, q := range runes[i+1 : end] {
				lex.add(q)
			}
			i = end
		case r == '"':
			next, err := lex.doubleQuoted(runes, i+1)
			if err != nil {
				return nil, fmt.Errorf("%w in command: %q", err, input)
			}
			i = next
		default:
			if r == '~' && !lex.started {
				lex.tilde = i+1 == len(runes) || runes[i+1] == '/' || unicode.IsSpace(runes[i+1])
			}
			lex.add(r)
		}
	}
	lex.end()
	return lex.argv, nil
}

// doubleQuoted consumes runes after an opening `"` and returns the index of
// the closing quote.
func (l *argvLexer) doubleQuoted(runes []rune, from int) (int, error) {
	l.started = true
	for i := from; i < len(runes); i++ {
		switch r := runes[i]; {
		case r == '"':
			return i, nil
		case r == '\\' && i+1 < len(runes) && (runes[i+1] == '"' || runes[i+1] == '\\'):
			i++
			l.add(runes[i])
		default:
			l.add(r)
		}
	}
	return 0, errors.New("unterminated quote")
}

func indexRune(runes []rune, from int, target rune) int {
	for i := from; i < len(runes); i++ {
		if runes[i] == target {
			return i
		}
	}
	return -1
}

func mustParseArgv(input string) []string {
	argv, err := parseArgv(input)
	if err != nil {
		panic(err)
	}
	return argv
}

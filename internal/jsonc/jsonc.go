// Package jsonc normalizes JSON-with-comments documents for encoding/json decoders.
package jsonc

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"
)

type mode uint8

const (
	inCode mode = iota
	inString
	inEscape
	inLineComment
	inBlockComment
)

// Normalize blanks out comments and trailing commas with spaces. Newlines
// are kept, so offsets reported by encoding/json still point into the
// original document.
func Normalize(content string) (string, error) {
	buf := []byte(content)
	state := inCode
	pendingComma := -1
	blockStart := 0

	for i := 0; i < len(buf); i++ {
		ch := buf[i]
		switch state {
		case inString:
			switch ch {
			case '\\':
				state = inEscape
			case '"':
				state = inCode
			}
			continue
		case inEscape:
			state = inString
			continue
		case inLineComment:
			if ch == '\n' || ch == '\r' {
				state = inCode
			} else {
				buf[i] = ' '
			}
			continue
		case inBlockComment:
			if ch == '*' && i+1 < len(buf) && buf[i+1] == '/' {
				buf[i], buf[i+1] = ' ', ' '
				i++
				state = inCode
			} else if !isSpace(ch) {
				buf[i] = ' '
			}
			continue
		}

		switch {
		case isSpace(ch):
		case ch == '/' && i+1 < len(buf) && (buf[i+1] == '/' || buf[i+1] == '*'):
			if buf[i+1] == '/' {
				state = inLineComment
			} else {
				state, blockStart = inBlockComment, i
			}
			buf[i], buf[i+1] = ' ', ' '
			i++
		case ch == ',':
			pendingComma = i
		case ch == '}' || ch == ']':
			if pendingComma >= 0 {
				buf[pendingComma] = ' '
			}
			pendingComma = -1
		default:
			if ch == '"' {
				state = inString
			}
			pendingComma = -1
		}
	}

	if state == inBlockComment {
		line, col := OffsetToLineCol(content, int64(blockStart)+1)
		return "", fmt.Errorf("line %d column %d: unterminated block comment in JSONC", line, col)
	}
	return string(buf), nil
}

func isSpace(ch byte) bool {
	return ch == ' ' || ch == '\t' || ch == '\n' || ch == '\r'
}

// EnsureSingleValue fails when the decoder has anything but EOF left.
func EnsureSingleValue(decoder *json.Decoder) error {
	var extra json.RawMessage
	switch err := decoder.Decode(&extra); {
	case errors.Is(err, io.EOF):
		return nil
	case err != nil:
		return err
	default:
		return errors.New("multiple JSON values are not allowed")
	}
}

// WrapDecodeError prefixes syntax and type errors with a line/column location.
func WrapDecodeError(content string, err error) error {
	var (
		syntaxErr *json.SyntaxError
		typeErr   *json.UnmarshalTypeError
		offset    int64
	)
	switch {
	case errors.As(err, &syntaxErr):
		offset = syntaxErr.Offset
	case errors.As(err, &typeErr):
		offset = typeErr.Offset
	default:
		return err
	}
	line, col := OffsetToLineCol(content, offset)
	return fmt.Errorf("line %d column %d: %w", line, col, err)
}

// OffsetToLineCol converts a 1-based byte offset into a line and column.
func OffsetToLineCol(content string, offset int64) (int, int) {
	end := min(max(int(offset)-1, 0), len(content))
	before := content[:end]
	line := strings.Count(before, "\n") + 1
	col := len(before) - strings.LastIndexByte(before, '\n')
	return line, col
}

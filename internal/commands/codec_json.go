package commands

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/rbright/golos/internal/jsonc"
)

type jsonEntry struct {
	Action      *string           `json:"action"`
	Params      []json.RawMessage `json:"params"`
	Description string            `json:"description"`
}

func decodeJSON(content string) (*Table, error) {
	if strings.TrimSpace(content) == "" {
		return NewTable(), nil
	}

	normalized, err := jsonc.Normalize(content)
	if err != nil {
		return nil, err
	}

	dec := json.NewDecoder(strings.NewReader(normalized))
	fail := func(err error) (*Table, error) {
		var syntaxErr *json.SyntaxError
		var typeErr *json.UnmarshalTypeError
		if errors.As(err, &syntaxErr) || errors.As(err, &typeErr) {
			return nil, jsonc.WrapDecodeError(normalized, err)
		}
		line, col := jsonc.OffsetToLineCol(normalized, dec.InputOffset())
		return nil, fmt.Errorf("line %d column %d: %w", line, col, err)
	}

	if err := expectDelim(dec, '{'); err != nil {
		return fail(err)
	}

	table := NewTable()
	for dec.More() {
		category, err := expectKey(dec)
		if err != nil {
			return fail(err)
		}
		if err := expectDelim(dec, '{'); err != nil {
			return fail(fmt.Errorf("category %q: %w", category, err))
		}
		table.resetCategory(category)

		for dec.More() {
			phrase, err := expectKey(dec)
			if err != nil {
				return fail(err)
			}
			var raw jsonEntry
			if err := dec.Decode(&raw); err != nil {
				return fail(fmt.Errorf("command %q: %w", phrase, err))
			}
			entry, err := raw.entry(category, phrase)
			if err != nil {
				return fail(err)
			}
			table.Add(entry)
		}
		if err := expectDelim(dec, '}'); err != nil {
			return fail(err)
		}
	}
	if err := expectDelim(dec, '}'); err != nil {
		return fail(err)
	}
	if err := jsonc.EnsureSingleValue(dec); err != nil {
		return fail(err)
	}
	return table, nil
}

func (raw jsonEntry) entry(category, phrase string) (Entry, error) {
	if strings.TrimSpace(phrase) == "" {
		return Entry{}, fmt.Errorf("category %q contains an empty phrase", category)
	}
	if raw.Action == nil || strings.TrimSpace(*raw.Action) == "" {
		return Entry{}, fmt.Errorf("command %q has no action", phrase)
	}

	params := make([]string, 0, len(raw.Params))
	for i, p := range raw.Params {
		value, err := paramString(p)
		if err != nil {
			return Entry{}, fmt.Errorf("command %q param %d: %w", phrase, i, err)
		}
		params = append(params, value)
	}

	return Entry{
		Category:    category,
		Phrase:      phrase,
		Action:      strings.TrimSpace(*raw.Action),
		Params:      params,
		Description: raw.Description,
	}, nil
}

// ParseParams decodes a JSON array of scalar params as typed on the command line.
func ParseParams(raw string) ([]string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return []string{}, nil
	}
	var items []json.RawMessage
	if err := json.Unmarshal([]byte(raw), &items); err != nil {
		return nil, fmt.Errorf("params must be a JSON array: %w", err)
	}
	params := make([]string, 0, len(items))
	for i, item := range items {
		value, err := paramString(item)
		if err != nil {
			return nil, fmt.Errorf("param %d: %w", i, err)
		}
		params = append(params, value)
	}
	return params, nil
}

// paramString accepts string, number, and boolean params; numbers keep their literal form.
func paramString(raw json.RawMessage) (string, error) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 {
		return "", fmt.Errorf("empty value")
	}
	switch trimmed[0] {
	case '"':
		var s string
		if err := json.Unmarshal(trimmed, &s); err != nil {
			return "", err
		}
		return s, nil
	case 't', 'f':
		var b bool
		if err := json.Unmarshal(trimmed, &b); err != nil {
			return "", err
		}
		if b {
			return "true", nil
		}
		return "false", nil
	case '{', '[', 'n':
		return "", fmt.Errorf("expected string, number, or boolean, got %s", trimmed)
	default:
		var n json.Number
		if err := json.Unmarshal(trimmed, &n); err != nil {
			return "", err
		}
		return n.String(), nil
	}
}

func expectDelim(dec *json.Decoder, want json.Delim) error {
	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if got, ok := tok.(json.Delim); !ok || got != want {
		return fmt.Errorf("expected %q, got %v", want, tok)
	}
	return nil
}

func expectKey(dec *json.Decoder) (string, error) {
	tok, err := dec.Token()
	if err != nil {
		return "", err
	}
	key, ok := tok.(string)
	if !ok {
		return "", fmt.Errorf("expected object key, got %v", tok)
	}
	return key, nil
}

// encodeJSON writes the table as a two-space indented object, keeping order.
func encodeJSON(table *Table) ([]byte, error) {
	var buf bytes.Buffer
	cats := table.Categories()
	if len(cats) == 0 {
		buf.WriteString("{}\n")
		return buf.Bytes(), nil
	}

	buf.WriteString("{\n")
	for ci, cat := range cats {
		writeIndent(&buf, 1)
		if err := writeString(&buf, cat.Name); err != nil {
			return nil, err
		}
		if len(cat.Entries) == 0 {
			buf.WriteString(": {}")
		} else {
			buf.WriteString(": {\n")
			for ei, e := range cat.Entries {
				if err := writeEntry(&buf, e); err != nil {
					return nil, err
				}
				if ei < len(cat.Entries)-1 {
					buf.WriteByte(',')
				}
				buf.WriteByte('\n')
			}
			writeIndent(&buf, 1)
			buf.WriteByte('}')
		}
		if ci < len(cats)-1 {
			buf.WriteByte(',')
		}
		buf.WriteByte('\n')
	}
	buf.WriteString("}\n")
	return buf.Bytes(), nil
}

func writeEntry(buf *bytes.Buffer, e Entry) error {
	writeIndent(buf, 2)
	if err := writeString(buf, e.Phrase); err != nil {
		return err
	}
	buf.WriteString(": {\n")

	writeIndent(buf, 3)
	buf.WriteString(`"action": `)
	if err := writeString(buf, e.Action); err != nil {
		return err
	}
	buf.WriteString(",\n")

	writeIndent(buf, 3)
	buf.WriteString(`"params": `)
	if len(e.Params) == 0 {
		buf.WriteString("[]")
	} else {
		buf.WriteString("[\n")
		for i, p := range e.Params {
			writeIndent(buf, 4)
			if err := writeString(buf, p); err != nil {
				return err
			}
			if i < len(e.Params)-1 {
				buf.WriteByte(',')
			}
			buf.WriteByte('\n')
		}
		writeIndent(buf, 3)
		buf.WriteByte(']')
	}
	buf.WriteString(",\n")

	writeIndent(buf, 3)
	buf.WriteString(`"description": `)
	if err := writeString(buf, e.Description); err != nil {
		return err
	}
	buf.WriteByte('\n')

	writeIndent(buf, 2)
	buf.WriteByte('}')
	return nil
}

func writeIndent(buf *bytes.Buffer, depth int) {
	for i := 0; i < depth; i++ {
		buf.WriteString("  ")
	}
}

func writeString(buf *bytes.Buffer, s string) error {
	var tmp bytes.Buffer
	enc := json.NewEncoder(&tmp)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(s); err != nil {
		return err
	}
	buf.Write(bytes.TrimRight(tmp.Bytes(), "\n"))
	return nil
}

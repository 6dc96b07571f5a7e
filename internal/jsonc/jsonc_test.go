package jsonc

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNormalizeRemovesCommentsAndTrailingCommas(t *testing.T) {
	input := `
{
  // line comment
  "items": [
    "one", /* block comment */
    "two",
  ],
  "nested": {
    "enabled": true,
  },
}
`

	normalized, err := Normalize(input)
	require.NoError(t, err)
	require.NotContains(t, normalized, "//")
	require.NotContains(t, normalized, "/*")

	var payload map[string]any
	require.NoError(t, json.Unmarshal([]byte(normalized), &payload))
	require.Equal(t, []any{"one", "two"}, payload["items"])
}

func TestNormalizeRetainsCommentLikeTextInsideStrings(t *testing.T) {
	input := `{"value":"contains // and /* comment-like */ text",}`
	normalized, err := Normalize(input)
	require.NoError(t, err)
	require.Contains(t, normalized, "// and /* comment-like */")
}

func TestNormalizeKeepsLength(t *testing.T) {
	input := "{\n  \"a\": 1, // note\n}"
	normalized, err := Normalize(input)
	require.NoError(t, err)
	require.Len(t, normalized, len(input))
}

func TestNormalizeUnterminatedBlockCommentFails(t *testing.T) {
	_, err := Normalize("{ /* unterminated ")
	require.Error(t, err)
	require.Contains(t, err.Error(), "unterminated block comment")
}

func TestEnsureSingleValueRejectsExtraPayload(t *testing.T) {
	decoder := json.NewDecoder(strings.NewReader(`{"one":1}{"two":2}`))
	var payload map[string]any
	require.NoError(t, decoder.Decode(&payload))

	err := EnsureSingleValue(decoder)
	require.Error(t, err)
	require.Contains(t, err.Error(), "multiple JSON values")
}

func TestOffsetToLineCol(t *testing.T) {
	content := "line1\nline2\nline3"
	line, col := OffsetToLineCol(content, 1)
	require.Equal(t, 1, line)
	require.Equal(t, 1, col)

	line, col = OffsetToLineCol(content, 8) // line2, col2
	require.Equal(t, 2, line)
	require.Equal(t, 2, col)

	line, col = OffsetToLineCol(content, 999)
	require.Equal(t, 3, line)
	require.Equal(t, 5, col)
}

func TestWrapDecodeErrorAddsLocation(t *testing.T) {
	content := "{\n  \"a\": tru\n}"
	var payload map[string]any
	err := json.Unmarshal([]byte(content), &payload)
	require.Error(t, err)

	wrapped := WrapDecodeError(content, err)
	require.Contains(t, wrapped.Error(), "line 2")
}

func TestNormalizeKeepsCommasBetweenValues(t *testing.T) {
	normalized, err := Normalize(`{"a": [1, /* x */ 2], "b": "q\"//,]"}`)
	require.NoError(t, err)

	var payload map[string]any
	require.NoError(t, json.Unmarshal([]byte(normalized), &payload))
	require.Equal(t, []any{float64(1), float64(2)}, payload["a"])
	require.Equal(t, `q"//,]`, payload["b"])
}

func TestNormalizeDropsCommaBeforeCommentedClose(t *testing.T) {
	normalized, err := Normalize("[1, 2, // last\n]")
	require.NoError(t, err)

	var payload []any
	require.NoError(t, json.Unmarshal([]byte(normalized), &payload))
	require.Len(t, payload, 2)
}

func TestNormalizeReportsBlockCommentStart(t *testing.T) {
	_, err := Normalize("{\n  \"a\": 1 /* open")
	require.ErrorContains(t, err, "line 2 column 10")
}

package json_test

import (
	"strings"
	"testing"

	"github.com/db47h/parsekit"
	"github.com/db47h/parsekit/grammar/json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func parse(t *testing.T, input string) (any, error) {
	t.Helper()
	v, err := json.ParseString(input)
	rv, rerr := json.Parse(strings.NewReader(input), parsekit.WithChunkSize(2))
	assert.Equal(t, v, rv, "streamed value differs")
	assert.Equal(t, err, rerr, "streamed error differs")
	return v, err
}

func TestParse(t *testing.T) {
	tests := []struct {
		input string
		want  any
	}{
		{`true`, true},
		{` false `, false},
		{"\tnull\r\n", nil},
		{`0`, 0.0},
		{`-12.5e+2`, -1250.0},
		{`1E-2`, 0.01},
		{`"hello"`, "hello"},
		{`"a\"b\\c\/d\n"`, "a\"b\\c/d\n"},
		{`"é世"`, "é世"},
		{`"😀"`, "😀"},
		{`"\ud83d"`, "\uFFFD"},
		{`"\ud83d\ude00!"`, "😀!"},
		{`[]`, []any{}},
		{`[ 1 , "two", [null] ]`, []any{1.0, "two", []any{nil}}},
		{`{}`, map[string]any{}},
		{`{"a": 1, "b": {"c": [true, false]}, "a": 2}`, map[string]any{
			"a": 2.0,
			"b": map[string]any{"c": []any{true, false}},
		}},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			v, err := parse(t, tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.want, v)
		})
	}
}

func TestParse_Errors(t *testing.T) {
	tests := []struct {
		input string
		err   string
	}{
		{``, "unexpected end of input, expected value at line 1, column 1"},
		{`x`, "unexpected 'x', expected value at line 1, column 1"},
		{`1 2`, "unexpected '2', expected end of input at line 1, column 3"},
		{`[1,]`, "unexpected ']', expected value at line 1, column 4"},
		{`[1 x`, `unexpected 'x', expected "," or "]" at line 1, column 4`},
		{`{,}`, `unexpected ',', expected "}" or object key at line 1, column 2`},
		{`{"a" 1}`, `unexpected '1', expected ":" at line 1, column 6`},
		{"{\n  \"a\": tru\n}", `unexpected '\n', expected "true" at line 2, column 11`},
		{`"a\qb"`, "unexpected 'q', expected escape sequence at line 1, column 4"},
		{`"\u12G4"`, "unexpected 'G', expected hex digit at line 1, column 6"},
		{"\"ab\ncd\"", `unexpected '\n', expected end of string at line 1, column 4`},
		{`01`, `unexpected '1', expected ".", "E", "e", or end of input at line 1, column 2`},
		{`1.`, "unexpected end of input, expected digit at line 1, column 3"},
		{`-`, "unexpected end of input, expected \"0\" or digit at line 1, column 2"},
		{`1e999`, "number 1e999 out of range at line 1, column 6"},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			_, err := parse(t, tt.input)
			var pe *parsekit.ParseError[rune]
			require.ErrorAs(t, err, &pe)
			assert.EqualError(t, err, tt.err)
		})
	}
}

func TestParse_Large(t *testing.T) {
	var b strings.Builder
	b.WriteString("[")
	for i := 0; i < 2000; i++ {
		if i > 0 {
			b.WriteString(",\n")
		}
		b.WriteString(`{"id": 1, "name": "item", "tags": ["a", "b"]}`)
	}
	b.WriteString("]")

	v, err := json.Parse(strings.NewReader(b.String()))
	require.NoError(t, err)
	require.Len(t, v, 2000)
	assert.Equal(t, "item", v.([]any)[1999].(map[string]any)["name"])
}

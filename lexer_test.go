package kvline

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func tok(kind TokenKind, text string, offset int) Token {
	return Token{Kind: kind, Text: text, Offset: offset}
}

func TestTokenKindString(t *testing.T) {
	assert.Equal(t, "keyText", TokenKeyText.String())
	assert.Equal(t, "escapeText", TokenEscapeText.String())
	assert.Equal(t, "TokenKind(99)", TokenKind(99).String())
	assert.Equal(t, "single-quoted string", StateInSingleQuote.String())
	assert.Equal(t, "LexState(42)", LexState(42).String())
}

func TestTokenize(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []Token
	}{
		{
			name:  "pairs",
			input: `a=1,b=2`,
			want: []Token{
				tok(TokenKeyText, "a", 0),
				tok(TokenOperator, "=", 1),
				tok(TokenValueText, "1", 2),
				tok(TokenSeparator, ",", 3),
				tok(TokenKeyText, "b", 4),
				tok(TokenOperator, "=", 5),
				tok(TokenValueText, "2", 6),
			},
		},
		{
			name:  "quoted value keeps separator",
			input: `b="x, y"`,
			want: []Token{
				tok(TokenKeyText, "b", 0),
				tok(TokenOperator, "=", 1),
				tok(TokenStartQuote, `"`, 2),
				tok(TokenQuotedText, "x, y", 3),
				tok(TokenEndQuote, `"`, 7),
			},
		},
		{
			name:  "single-quoted key keeps operator",
			input: `'k=v'`,
			want: []Token{
				tok(TokenStartSingleQuote, "'", 0),
				tok(TokenQuotedText, "k=v", 1),
				tok(TokenEndSingleQuote, "'", 4),
			},
		},
		{
			name:  "nested object",
			input: `key={a:{b:1}}`,
			want: []Token{
				tok(TokenKeyText, "key", 0),
				tok(TokenOperator, "=", 3),
				tok(TokenStartObject, "{", 4),
				tok(TokenObjectText, "a:", 5),
				tok(TokenStartObject, "{", 7),
				tok(TokenObjectText, "b:1", 8),
				tok(TokenEndObject, "}", 11),
				tok(TokenEndObject, "}", 12),
			},
		},
		{
			name:  "flat array",
			input: `a=[1,[2]`,
			want: []Token{
				tok(TokenKeyText, "a", 0),
				tok(TokenOperator, "=", 1),
				tok(TokenStartArray, "[", 2),
				tok(TokenArrayText, "1,[2", 3),
				tok(TokenEndArray, "]", 7),
			},
		},
		{
			name:  "escaped quotes in key",
			input: `\"x\"`,
			want: []Token{
				tok(TokenEscape, `\`, 0),
				tok(TokenEscapeText, `"`, 1),
				tok(TokenKeyText, "x", 2),
				tok(TokenEscape, `\`, 3),
				tok(TokenEscapeText, `"`, 4),
			},
		},
		{
			name:  "escape moves first value to value",
			input: `k=\{,x`,
			want: []Token{
				tok(TokenKeyText, "k", 0),
				tok(TokenOperator, "=", 1),
				tok(TokenEscape, `\`, 2),
				tok(TokenEscapeText, "{", 3),
				tok(TokenSeparator, ",", 4),
				tok(TokenKeyText, "x", 5),
			},
		},
		{
			name:  "separator after structured value",
			input: `k={},x=1`,
			want: []Token{
				tok(TokenKeyText, "k", 0),
				tok(TokenOperator, "=", 1),
				tok(TokenStartObject, "{", 2),
				tok(TokenEndObject, "}", 3),
				tok(TokenSeparator, ",", 4),
				tok(TokenKeyText, "x", 5),
				tok(TokenOperator, "=", 6),
				tok(TokenValueText, "1", 7),
			},
		},
		{
			name:  "operator only in key state",
			input: `a=b=c`,
			want: []Token{
				tok(TokenKeyText, "a", 0),
				tok(TokenOperator, "=", 1),
				tok(TokenValueText, "b=c", 2),
			},
		},
		{
			name:  "multibyte runes",
			input: `名前=値`,
			want: []Token{
				tok(TokenKeyText, "名前", 0),
				tok(TokenOperator, "=", 6),
				tok(TokenValueText, "値", 7),
			},
		},
		{
			name:  "empty",
			input: "",
			want:  nil,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, err := Tokenize(tc.input, DefaultConfig())
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestTokenizeDelimiterAlternation(t *testing.T) {
	cfg := Config{
		Operators:  []string{":=", ":", ""},
		Separators: []string{" && ", ";"},
	}
	got, err := Tokenize("a:=1 && b:2;c", cfg)
	require.NoError(t, err)

	var kinds []TokenKind
	var texts []string
	for _, tk := range got {
		kinds = append(kinds, tk.Kind)
		texts = append(texts, tk.Text)
	}
	assert.Equal(t, []TokenKind{
		TokenKeyText, TokenOperator, TokenValueText, TokenSeparator,
		TokenKeyText, TokenOperator, TokenValueText, TokenSeparator,
		TokenKeyText,
	}, kinds)
	assert.Equal(t, []string{"a", ":=", "1", " && ", "b", ":", "2", ";", "c"}, texts)
}

func TestTokenizeLossless(t *testing.T) {
	inputs := []string{
		"test=foo, red, green, blue, 2, 'test=five'",
		`test=foo, 'red, "green", blue', 2, 'test=five'`,
		"#FFFFFF, '0xffffff'",
		"{objects in key is nothing}, key={test:'foo'}",
		`\"test\", should retain quotes`,
		`a=[1, "]"], b={x:{y:[1]}}, c='it''s', d=\\`,
		"  spaced  =  out  ,, ,",
		"tab\tseparated=\tvalue\nwith newline",
		"ünïcödé=✓, 'quoted ✓'",
	}
	configs := []Config{
		DefaultConfig(),
		{Operators: []string{":", "="}, Separators: []string{" "}},
		{Operators: []string{"="}},
	}

	for _, cfg := range configs {
		for _, input := range inputs {
			tokens, err := Tokenize(input, cfg)
			if err != nil {
				// A few inputs leave a literal open.
				assert.ErrorIs(t, err, ErrUnterminatedLiteral)
				continue
			}
			var b strings.Builder
			for _, tk := range tokens {
				assert.Equal(t, b.Len(), tk.Offset, "offset of %v in %q", tk, input)
				b.WriteString(tk.Text)
			}
			assert.Equal(t, input, b.String())
		}
	}
}

func TestTokenizeUnterminated(t *testing.T) {
	tests := []struct {
		input  string
		offset int
		state  LexState
	}{
		{`a="abc`, 2, StateInQuote},
		{`'abc`, 0, StateInSingleQuote},
		{`a={b:{c}`, 2, StateInObject},
		{`a={b:{c`, 5, StateInObject},
		{`a=[1,2`, 2, StateInArray},
		{`abc\`, 3, StateEscape},
		{`a="x\`, 4, StateEscape},
	}

	for _, tc := range tests {
		t.Run(tc.input, func(t *testing.T) {
			tokens, err := Tokenize(tc.input, DefaultConfig())
			require.Error(t, err)
			assert.Nil(t, tokens)
			assert.True(t, errors.Is(err, ErrUnterminatedLiteral))

			var se *SyntaxError
			require.ErrorAs(t, err, &se)
			assert.Equal(t, tc.offset, se.Offset)
			assert.Equal(t, tc.state, se.State)
		})
	}
}

package kvline

import "fmt"

// TokenKind identifies the role of a Token in the stream.
type TokenKind int

const (
	TokenKeyText TokenKind = iota
	TokenSeparator
	TokenOperator
	TokenValueText
	TokenStartObject
	TokenEndObject
	TokenObjectText
	TokenStartArray
	TokenEndArray
	TokenArrayText
	TokenStartQuote
	TokenEndQuote
	TokenStartSingleQuote
	TokenEndSingleQuote
	TokenQuotedText
	TokenEscape
	TokenEscapeText
)

var tokenNames = [...]string{
	TokenKeyText:          "keyText",
	TokenSeparator:        "separator",
	TokenOperator:         "operator",
	TokenValueText:        "valueText",
	TokenStartObject:      "startObject",
	TokenEndObject:        "endObject",
	TokenObjectText:       "objectText",
	TokenStartArray:       "startArray",
	TokenEndArray:         "endArray",
	TokenArrayText:        "arrayText",
	TokenStartQuote:       "startQuote",
	TokenEndQuote:         "endQuote",
	TokenStartSingleQuote: "startSingleQuote",
	TokenEndSingleQuote:   "endSingleQuote",
	TokenQuotedText:       "quotedText",
	TokenEscape:           "escape",
	TokenEscapeText:       "escapeText",
}

func (k TokenKind) String() string {
	if k >= 0 && int(k) < len(tokenNames) {
		return tokenNames[k]
	}
	return fmt.Sprintf("TokenKind(%d)", int(k))
}

// isRun reports whether consecutive tokens of this kind are merged into one.
func (k TokenKind) isRun() bool {
	switch k {
	case TokenKeyText, TokenValueText, TokenObjectText, TokenArrayText, TokenQuotedText:
		return true
	}
	return false
}

// Token is a fragment of the input line. Concatenating the Text of every
// token returned by Tokenize yields the original line.
type Token struct {
	Kind   TokenKind
	Text   string
	Offset int // byte offset of Text in the line
}

func (t Token) String() string {
	return fmt.Sprintf("%s(%q)@%d", t.Kind, t.Text, t.Offset)
}

// LexState is one entry of the tokenizer's state stack.
type LexState int

const (
	StateKey LexState = iota
	StateEscape
	StateFirstValue
	StateValue
	StateInObject
	StateInArray
	StateInQuote
	StateInSingleQuote
)

func (s LexState) String() string {
	switch s {
	case StateKey:
		return "key"
	case StateEscape:
		return "escape"
	case StateFirstValue:
		return "first value"
	case StateValue:
		return "value"
	case StateInObject:
		return "object"
	case StateInArray:
		return "array"
	case StateInQuote:
		return "double-quoted string"
	case StateInSingleQuote:
		return "single-quoted string"
	default:
		return fmt.Sprintf("LexState(%d)", int(s))
	}
}

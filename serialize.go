package kvline

import (
	"strings"
	"unicode/utf8"
)

// Format serializes a record to a line that ParseConfig with the same cfg
// reads back. Keyed fields come first, joined by the first operator, then
// bare values; fields are joined by the first separator.
//
// Bare strings that read as numbers or booleans come back coerced.
func Format(rec *Record, cfg Config) string {
	ops := newMatcher(cfg.Operators)
	seps := newMatcher(cfg.Separators)
	op := ops.first("=")

	parts := make([]string, 0, rec.Len())
	for _, f := range rec.fields {
		parts = append(parts, escapeText(f.key, ops, seps)+op+formatValue(f.value, seps))
	}
	for _, v := range rec.bare {
		parts = append(parts, escapeText(v.String(), ops, seps))
	}
	return strings.Join(parts, seps.first(","))
}

// escapeText backslash-escapes every rune of text that the tokenizer would
// treat as structural in the key state.
func escapeText(text string, ops, seps matcher) string {
	var b strings.Builder
	for i := 0; i < len(text); {
		_, size := utf8.DecodeRuneInString(text[i:])
		rest := text[i:]
		switch {
		case rest[0] == '\\', rest[0] == '"', rest[0] == '\'',
			ops.match(rest) > 0, seps.match(rest) > 0:
			b.WriteByte('\\')
		}
		b.WriteString(text[i : i+size])
		i += size
	}
	return b.String()
}

func formatValue(v Value, seps matcher) string {
	switch v.Kind() {
	case KindString:
		return formatString(v.Str(), seps)
	case KindStructured:
		text := v.String()
		if isStructured(text) {
			return escapeStructured(text)
		}
		return formatString(text, seps)
	default:
		return v.String()
	}
}

// formatString writes s raw when it reads back unchanged as a value, and
// double-quoted otherwise.
func formatString(s string, seps matcher) string {
	if isPlain(s, seps) {
		return s
	}
	var b strings.Builder
	b.WriteByte('"')
	for i := 0; i < len(s); i++ {
		if s[i] == '\\' || s[i] == '"' {
			b.WriteByte('\\')
		}
		b.WriteByte(s[i])
	}
	b.WriteByte('"')
	return b.String()
}

func isPlain(s string, seps matcher) bool {
	if s == "" || s != strings.TrimSpace(s) {
		return false
	}
	switch s[0] {
	case '{', '[', '"', '\'':
		return false
	}
	if strings.ContainsRune(s, '\\') || seps.contains(s) {
		return false
	}
	if _, ok := coerceNumber(s); ok {
		return false
	}
	return s != "true" && s != "false"
}

// escapeStructured escapes the characters of a canonical JSON object or
// array that would end the tokenizer's bracket state early: braces inside
// strings of an object, and every inner ] of an array. Backslashes are
// doubled so that the JSON text survives the escape pass unchanged.
func escapeStructured(text string) string {
	open := text[0]
	inner := text[1 : len(text)-1]

	var b strings.Builder
	b.WriteByte(open)
	write := func(c byte, inString bool) {
		switch {
		case c == '\\':
			b.WriteString(`\\`)
			return
		case open == '[' && c == ']':
			b.WriteByte('\\')
		case open == '{' && inString && (c == '{' || c == '}'):
			b.WriteByte('\\')
		}
		b.WriteByte(c)
	}

	inString := false
	for i := 0; i < len(inner); i++ {
		c := inner[i]
		if inString {
			switch c {
			case '\\':
				write(c, true)
				if i+1 < len(inner) {
					i++
					write(inner[i], true)
				}
				continue
			case '"':
				inString = false
			}
		} else if c == '"' {
			inString = true
		}
		write(c, inString)
	}
	b.WriteByte(text[len(text)-1])
	return b.String()
}

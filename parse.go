package kvline

import (
	"strings"
)

// assembler folds a token stream into a Record, one field at a time.
type assembler struct {
	cfg          Config
	record       *Record
	key          strings.Builder
	value        strings.Builder
	seenOperator bool
}

// parse tokenizes line and assembles the resulting tokens.
func parse(line string, cfg Config) (*Record, error) {
	tokens, err := Tokenize(line, cfg)
	if err != nil {
		return nil, err
	}

	a := &assembler{cfg: cfg, record: NewRecord()}
	for _, tok := range tokens {
		if err := a.feed(tok); err != nil {
			return nil, err
		}
	}
	// The last field has no trailing separator.
	if err := a.finalize(); err != nil {
		return nil, err
	}
	return a.record, nil
}

func (a *assembler) feed(tok Token) error {
	switch tok.Kind {
	case TokenKeyText:
		a.key.WriteString(tok.Text)
	case TokenOperator:
		a.seenOperator = true
	case TokenSeparator:
		return a.finalize()
	case TokenEscape:
		// The backslash only marks the next rune as literal.
	case TokenValueText,
		TokenStartObject, TokenEndObject, TokenObjectText,
		TokenStartArray, TokenEndArray, TokenArrayText:
		a.value.WriteString(tok.Text)
	case TokenStartQuote, TokenEndQuote,
		TokenStartSingleQuote, TokenEndSingleQuote,
		TokenQuotedText, TokenEscapeText:
		if a.seenOperator {
			a.value.WriteString(tok.Text)
		} else {
			a.key.WriteString(tok.Text)
		}
	}
	return nil
}

// finalize turns the accumulated key and value into one record mutation
// and resets the accumulator.
func (a *assembler) finalize() error {
	key := strings.TrimSpace(a.key.String())
	value := strings.TrimSpace(a.value.String())
	a.key.Reset()
	a.value.Reset()
	a.seenOperator = false

	if key == "" {
		return nil
	}

	if value == "" {
		v, err := coerce(key, "", true, a.cfg)
		if err != nil {
			return err
		}
		a.record.Append(v)
		return nil
	}

	v, err := coerce(value, key, false, a.cfg)
	if err != nil {
		return err
	}
	a.record.Set(key, v)
	return nil
}

package kvline

import (
	"errors"
	"fmt"
)

var (
	// ErrUnterminatedLiteral is returned when a line ends inside a quote,
	// bracket or escape.
	ErrUnterminatedLiteral = errors.New("unterminated literal")

	// ErrMalformedStructuredLiteral is returned in strict mode when a {...}
	// or [...] value is not valid JSON5.
	ErrMalformedStructuredLiteral = errors.New("malformed structured literal")
)

// SyntaxError reports a tokenizer failure with the offset of the literal
// that was left open.
type SyntaxError struct {
	Offset int
	State  LexState
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("offset %d: unterminated %s", e.Offset, e.State)
}

func (e *SyntaxError) Unwrap() error {
	return ErrUnterminatedLiteral
}

// LiteralError reports a structured value that failed to parse.
type LiteralError struct {
	Key  string
	Text string
	Err  error
}

func (e *LiteralError) Error() string {
	if e.Key == "" {
		return fmt.Sprintf("%s %q: %v", ErrMalformedStructuredLiteral, e.Text, e.Err)
	}
	return fmt.Sprintf("key %q: %s %q: %v", e.Key, ErrMalformedStructuredLiteral, e.Text, e.Err)
}

func (e *LiteralError) Unwrap() error {
	return e.Err
}

func (e *LiteralError) Is(target error) bool {
	return target == ErrMalformedStructuredLiteral
}

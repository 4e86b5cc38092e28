// Package kvline parses a single line of loosely structured text into a
// key/value record.
//
// A line is a list of fields separated by a separator (default ","). Each
// field is either a bare value or a key and value joined by an operator
// (default "="):
//
//	test=foo, red, 2, key={test:'foo'}, list=[1, 2], 'quoted, kept'
//
// Values may be quoted with ' or ", bracketed as JSON5 objects or arrays,
// or escaped character by character with a backslash. Bare tokens are
// coerced to numbers and booleans; bare values are collected under "_".
//
// Two API tiers are provided:
//
//   - Tokenize: the lossless token stream of a line
//   - Parse/ParseConfig: the assembled, coerced Record
package kvline

import (
	"log/slog"
)

// Config holds parser configuration.
type Config struct {
	// Operators separate a key from its value. The first alternative that
	// matches at a position wins.
	Operators []string
	// Separators delimit fields.
	Separators []string
	// Strict turns malformed {...} and [...] values into errors instead of
	// keeping them as strings.
	Strict bool
	// Logger receives warnings for recovered coercion failures. Nil means
	// slog.Default().
	Logger *slog.Logger
}

// DefaultConfig returns a Config with default settings.
func DefaultConfig() Config {
	return Config{
		Operators:  []string{"="},
		Separators: []string{","},
	}
}

func (c Config) logger() *slog.Logger {
	if c.Logger == nil {
		return slog.Default()
	}
	return c.Logger
}

// Parse parses line with DefaultConfig.
func Parse(line string) (*Record, error) {
	return parse(line, DefaultConfig())
}

// ParseConfig parses line with cfg. It returns a *SyntaxError for an
// unterminated quote, bracket or escape, and in strict mode a *LiteralError
// for a structured value that is not valid JSON5. No partial record is
// returned on error.
func ParseConfig(line string, cfg Config) (*Record, error) {
	return parse(line, cfg)
}

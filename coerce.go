package kvline

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/titanous/json5"
)

// Coerce converts trimmed value text into a typed Value using the full
// precedence: number, boolean, structured literal, quoted string, string.
func Coerce(text string, cfg Config) (Value, error) {
	return coerce(text, "", false, cfg)
}

// coerce applies the coercion rules in order. onlyBasics restricts them to
// numbers and booleans, which is how bare values are treated. key is only
// used for diagnostics.
func coerce(text, key string, onlyBasics bool, cfg Config) (Value, error) {
	if v, ok := coerceNumber(text); ok {
		return v, nil
	}
	switch text {
	case "true":
		return BoolValue(true), nil
	case "false":
		return BoolValue(false), nil
	}
	if onlyBasics {
		return StringValue(text), nil
	}

	if isStructured(text) {
		data, err := decodeStructured(text)
		if err == nil {
			return StructuredValue(data), nil
		}
		if cfg.Strict {
			return Value{}, &LiteralError{Key: key, Text: text, Err: err}
		}
		cfg.logger().Warn("malformed structured literal, keeping text",
			"key", key,
			"text", text,
			"error", err)
		return StringValue(text), nil
	}

	if isQuoted(text) {
		return StringValue(text[1 : len(text)-1]), nil
	}
	return StringValue(text), nil
}

// decodeStructured parses a JSON5 object or array. Infinity and NaN are
// valid JSON5 but have no JSON encoding, so they are rejected.
func decodeStructured(text string) (any, error) {
	var data any
	if err := json5.Unmarshal([]byte(text), &data); err != nil {
		return nil, err
	}
	if err := checkFinite(data); err != nil {
		return nil, err
	}
	return data, nil
}

func checkFinite(v any) error {
	switch val := v.(type) {
	case float64:
		if math.IsInf(val, 0) || math.IsNaN(val) {
			return fmt.Errorf("non-finite number %v", val)
		}
	case map[string]any:
		for _, item := range val {
			if err := checkFinite(item); err != nil {
				return err
			}
		}
	case []any:
		for _, item := range val {
			if err := checkFinite(item); err != nil {
				return err
			}
		}
	}
	return nil
}

func isStructured(text string) bool {
	return (strings.HasPrefix(text, "{") && strings.HasSuffix(text, "}")) ||
		(strings.HasPrefix(text, "[") && strings.HasSuffix(text, "]"))
}

func isQuoted(text string) bool {
	if len(text) < 2 {
		return false
	}
	q := text[0]
	return (q == '"' || q == '\'') && text[len(text)-1] == q
}

// coerceNumber recognizes decimal and 0x-prefixed hexadecimal literals.
// Integers that overflow int64 and exponent forms without a fraction
// become floats.
func coerceNumber(text string) (Value, bool) {
	if isHex(text) {
		n, err := strconv.ParseInt(text[2:], 16, 64)
		if err == nil {
			return IntValue(n), true
		}
		u, err := strconv.ParseUint(text[2:], 16, 64)
		if err != nil {
			return Value{}, false
		}
		return FloatValue(float64(u)), true
	}
	if !isDecimal(text) {
		return Value{}, false
	}
	if !strings.ContainsAny(text, ".eE") {
		if n, err := strconv.ParseInt(text, 10, 64); err == nil {
			return IntValue(n), true
		}
	}
	// Values beyond float64 range stay strings.
	f, err := strconv.ParseFloat(text, 64)
	if err != nil {
		return Value{}, false
	}
	return FloatValue(f), true
}

func isHex(text string) bool {
	if len(text) < 3 || text[0] != '0' || text[1] != 'x' {
		return false
	}
	for i := 2; i < len(text); i++ {
		if !isHexDigit(text[i]) {
			return false
		}
	}
	return true
}

// isDecimal matches [+-]? (digits [. digits?] | . digits) ([eE] [+-]? digits)?
func isDecimal(text string) bool {
	i := 0
	if i < len(text) && (text[i] == '+' || text[i] == '-') {
		i++
	}
	intDigits := 0
	for i < len(text) && isDigit(text[i]) {
		i++
		intDigits++
	}
	fracDigits := 0
	if i < len(text) && text[i] == '.' {
		i++
		for i < len(text) && isDigit(text[i]) {
			i++
			fracDigits++
		}
	}
	if intDigits == 0 && fracDigits == 0 {
		return false
	}
	if i < len(text) && (text[i] == 'e' || text[i] == 'E') {
		i++
		if i < len(text) && (text[i] == '+' || text[i] == '-') {
			i++
		}
		expDigits := 0
		for i < len(text) && isDigit(text[i]) {
			i++
			expDigits++
		}
		if expDigits == 0 {
			return false
		}
	}
	return i == len(text)
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}

func isHexDigit(c byte) bool {
	return isDigit(c) || (c >= 'a' && c <= 'f') || (c >= 'A' && c <= 'F')
}

package kvline

import (
	"fmt"
	"strconv"
	"strings"

	jsoniter "github.com/json-iterator/go"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// Kind discriminates the variants of a Value.
type Kind int

const (
	KindString Kind = iota
	KindInt
	KindFloat
	KindBool
	KindStructured
)

func (k Kind) String() string {
	switch k {
	case KindString:
		return "string"
	case KindInt:
		return "int"
	case KindFloat:
		return "float"
	case KindBool:
		return "bool"
	case KindStructured:
		return "structured"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// Value is a coerced field value. The zero Value is the empty string.
type Value struct {
	kind Kind
	str  string
	num  int64
	flt  float64
	bit  bool
	data any
}

func StringValue(s string) Value { return Value{kind: KindString, str: s} }
func IntValue(i int64) Value { return Value{kind: KindInt, num: i} }
func FloatValue(f float64) Value { return Value{kind: KindFloat, flt: f} }
func BoolValue(b bool) Value { return Value{kind: KindBool, bit: b} }

// StructuredValue wraps the result of a JSON5 decode: a map[string]any or
// []any tree of float64, string, bool and nil leaves.
func StructuredValue(v any) Value { return Value{kind: KindStructured, data: v} }

func (v Value) Kind() Kind { return v.kind }

// IsNumber reports whether v is an Int or a Float.
func (v Value) IsNumber() bool { return v.kind == KindInt || v.kind == KindFloat }

// Str returns the string payload. It is empty for non-string values.
func (v Value) Str() string { return v.str }

func (v Value) Int() int64 { return v.num }

// Float returns the numeric payload of an Int or Float value.
func (v Value) Float() float64 {
	if v.kind == KindInt {
		return float64(v.num)
	}
	return v.flt
}

func (v Value) Bool() bool { return v.bit }

func (v Value) Structured() any { return v.data }

// Interface returns the payload as a plain Go value.
func (v Value) Interface() any {
	switch v.kind {
	case KindInt:
		return v.num
	case KindFloat:
		return v.flt
	case KindBool:
		return v.bit
	case KindStructured:
		return v.data
	default:
		return v.str
	}
}

// String returns the canonical text of v. For numbers and booleans,
// coercing this text again yields an equal Value.
func (v Value) String() string {
	switch v.kind {
	case KindInt:
		return strconv.FormatInt(v.num, 10)
	case KindFloat:
		return formatFloat(v.flt)
	case KindBool:
		return strconv.FormatBool(v.bit)
	case KindStructured:
		b, err := json.Marshal(v.data)
		if err != nil {
			return fmt.Sprint(v.data)
		}
		return string(b)
	default:
		return v.str
	}
}

func (v Value) MarshalJSON() ([]byte, error) {
	return json.Marshal(v.Interface())
}

// formatFloat always keeps a fraction so the text coerces back to a Float.
func formatFloat(f float64) string {
	s := strconv.FormatFloat(f, 'f', -1, 64)
	if !strings.ContainsAny(s, ".NI") {
		s += ".0"
	}
	return s
}

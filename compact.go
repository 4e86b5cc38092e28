package kvline

import (
	"math"
	"sort"
)

// Map converts the record to plain Go values. Bare values are stored as an
// []any under BareKey when there are any; they take precedence over a keyed
// field literally named "_".
func (r *Record) Map() map[string]any {
	result := make(map[string]any, len(r.fields)+1)
	for _, f := range r.fields {
		result[f.key] = f.value.Interface()
	}
	if len(r.bare) > 0 {
		result[BareKey] = bareList(r.bare)
	}
	return result
}

func bareList(values []Value) []any {
	list := make([]any, len(values))
	for i, v := range values {
		list[i] = v.Interface()
	}
	return list
}

// MarshalJSON writes keyed fields in order followed by the bare list.
func (r *Record) MarshalJSON() ([]byte, error) {
	stream := json.BorrowStream(nil)
	defer json.ReturnStream(stream)

	stream.WriteObjectStart()
	first := true
	for _, f := range r.fields {
		if f.key == BareKey && len(r.bare) > 0 {
			continue
		}
		if !first {
			stream.WriteMore()
		}
		first = false
		stream.WriteObjectField(f.key)
		stream.WriteVal(f.value.Interface())
	}
	if len(r.bare) > 0 {
		if !first {
			stream.WriteMore()
		}
		stream.WriteObjectField(BareKey)
		stream.WriteVal(bareList(r.bare))
	}
	stream.WriteObjectEnd()

	if stream.Error != nil {
		return nil, stream.Error
	}
	out := make([]byte, len(stream.Buffer()))
	copy(out, stream.Buffer())
	return out, nil
}

// FromMap builds a record from decoded JSON. Keys are inserted in sorted
// order, a BareKey list becomes the bare values, and whole float64 numbers
// become Int values.
func FromMap(data map[string]any) *Record {
	rec := NewRecord()
	keys := make([]string, 0, len(data))
	for k := range data {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, k := range keys {
		v := data[k]
		if list, ok := v.([]any); ok && k == BareKey {
			for _, item := range list {
				rec.Append(valueOf(item))
			}
			continue
		}
		rec.Set(k, valueOf(v))
	}
	return rec
}

// valueOf is the inverse of Value.Interface for decoded JSON.
func valueOf(v any) Value {
	switch val := v.(type) {
	case Value:
		return val
	case string:
		return StringValue(val)
	case bool:
		return BoolValue(val)
	case int:
		return IntValue(int64(val))
	case int64:
		return IntValue(val)
	case float64:
		if val == math.Trunc(val) && math.Abs(val) < 1<<53 {
			return IntValue(int64(val))
		}
		return FloatValue(val)
	case nil:
		return StringValue("")
	default:
		return StructuredValue(val)
	}
}

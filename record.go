package kvline

// BareKey is the key under which bare values appear in Map and JSON output.
const BareKey = "_"

// Record is the result of parsing one line. Keyed fields keep the order in
// which their key first appeared; bare values keep input order.
type Record struct {
	fields []field
	index  map[string]int // key -> position in fields
	bare   []Value
}

type field struct {
	key   string
	value Value
}

func NewRecord() *Record {
	return &Record{
		index: map[string]int{},
	}
}

// Set assigns value to key. A repeated key keeps its original position and
// takes the new value.
func (r *Record) Set(key string, value Value) {
	if idx, ok := r.index[key]; ok {
		r.fields[idx].value = value
		return
	}
	r.index[key] = len(r.fields)
	r.fields = append(r.fields, field{key: key, value: value})
}

// Append adds a bare value.
func (r *Record) Append(value Value) {
	r.bare = append(r.bare, value)
}

func (r *Record) Get(key string) (Value, bool) {
	idx, ok := r.index[key]
	if !ok {
		return Value{}, false
	}
	return r.fields[idx].value, true
}

// Keys returns the keyed field names in order.
func (r *Record) Keys() []string {
	keys := make([]string, len(r.fields))
	for i, f := range r.fields {
		keys[i] = f.key
	}
	return keys
}

// Bare returns the bare values in input order.
func (r *Record) Bare() []Value {
	out := make([]Value, len(r.bare))
	copy(out, r.bare)
	return out
}

// Len returns the number of keyed fields plus the number of bare values.
func (r *Record) Len() int {
	return len(r.fields) + len(r.bare)
}

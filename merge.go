package kvline

// Merge combines two records into a new one:
//   - keys from a keep their order, keys only in b follow
//   - a key present in both takes b's value
//   - bare values are concatenated, a's first
//
// Merge(Merge(a, b), c) equals Merge(a, Merge(b, c)).
func Merge(a, b *Record) *Record {
	result := NewRecord()
	for _, r := range []*Record{a, b} {
		if r == nil {
			continue
		}
		for _, f := range r.fields {
			result.Set(f.key, f.value)
		}
		result.bare = append(result.bare, r.bare...)
	}
	return result
}

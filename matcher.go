package kvline

import "strings"

// matcher is an ordered alternation of literal delimiters.
type matcher []string

func newMatcher(alts []string) matcher {
	m := make(matcher, 0, len(alts))
	for _, a := range alts {
		if a != "" {
			m = append(m, a)
		}
	}
	return m
}

// match returns the length of the first alternative that text starts with,
// or 0 if none does.
func (m matcher) match(text string) int {
	for _, a := range m {
		if strings.HasPrefix(text, a) {
			return len(a)
		}
	}
	return 0
}

// contains reports whether any alternative occurs anywhere in text.
func (m matcher) contains(text string) bool {
	for _, a := range m {
		if strings.Contains(text, a) {
			return true
		}
	}
	return false
}

func (m matcher) first(fallback string) string {
	if len(m) == 0 {
		return fallback
	}
	return m[0]
}

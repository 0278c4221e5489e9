package recognizer

import (
	"strings"
	"unicode"
)

// containsAny reports whether the lowercased text contains any of the
// given lowercase substrings.
func containsAny(text string, subs ...string) bool {
	lower := strings.ToLower(text)
	for _, sub := range subs {
		if strings.Contains(lower, sub) {
			return true
		}
	}
	return false
}

// countAny counts how many of the given substrings occur in the
// lowercased text. Each substring counts at most once per call site's
// text unit; repeated occurrences of the same phrase count once.
func countAny(text string, subs ...string) int {
	lower := strings.ToLower(text)
	n := 0
	for _, sub := range subs {
		if strings.Contains(lower, sub) {
			n++
		}
	}
	return n
}

// tokenize lowercases the text and splits it on any non-letter,
// non-digit rune, returning the resulting token set.
func tokenize(text string) map[string]bool {
	fields := strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
	set := make(map[string]bool, len(fields))
	for _, f := range fields {
		set[f] = true
	}
	return set
}

// allWordsPresent reports whether every word of the set appears in the
// token set, order-independent.
func allWordsPresent(tokens map[string]bool, words []string) bool {
	if len(words) == 0 {
		return false
	}
	for _, w := range words {
		if !tokens[w] {
			return false
		}
	}
	return true
}

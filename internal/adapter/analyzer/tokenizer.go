package analyzer

import "strings"

// Words splits text into lowercase whitespace-delimited tokens. This is the
// exact normalization the ranker scores with: no stemming, no stopwords,
// case folded so "APPLE" and "apple" compare equal.
func Words(text string) []string {
	return strings.Fields(strings.ToLower(text))
}

// WordSet returns the distinct words in text. Repeated words collapse to one
// entry so overlap scores count shared words, not shared occurrences.
func WordSet(text string) map[string]struct{} {
	words := Words(text)
	set := make(map[string]struct{}, len(words))
	for _, w := range words {
		set[w] = struct{}{}
	}
	return set
}

// Overlap counts the distinct words shared by the two sets.
func Overlap(a, b map[string]struct{}) int {
	if len(b) < len(a) {
		a, b = b, a
	}
	n := 0
	for w := range a {
		if _, ok := b[w]; ok {
			n++
		}
	}
	return n
}

package match

import (
	"strings"
	"unicode"
	"unicode/utf8"

	mapset "github.com/deckarep/golang-set/v2"
	"golang.org/x/text/unicode/norm"
)

// Matcher does case-insensitive phrase matching against a fixed
// keyword set. Multi-word phrases match as contiguous substrings with
// word boundaries on both ends. Pure: no state changes after New.
type Matcher struct {
	phrases []string // normalized at construction

	fuzzy  bool
	minSim float64
}

func New(phrases []string) *Matcher {
	m := &Matcher{phrases: make([]string, 0, len(phrases))}
	for _, p := range phrases {
		p = Normalize(p)
		if p == "" {
			continue
		}
		m.phrases = append(m.phrases, p)
	}
	return m
}

// NewFuzzy enables edit-distance similarity matching on top of exact
// matching. Fuzzy mode is opt-in only: false positives are costlier
// than false negatives in hard filters.
func NewFuzzy(phrases []string, minSimilarity float64) *Matcher {
	m := New(phrases)
	m.fuzzy = true
	m.minSim = minSimilarity
	return m
}

// Matches returns the set of configured phrases found in text.
func (m *Matcher) Matches(text string) mapset.Set[string] {
	found := mapset.NewThreadUnsafeSet[string]()
	t := Normalize(text)
	if t == "" {
		return found
	}
	for _, p := range m.phrases {
		if containsPhrase(t, p) {
			found.Add(p)
			continue
		}
		if m.fuzzy && fuzzyContains(t, p, m.minSim) {
			found.Add(p)
		}
	}
	return found
}

func (m *Matcher) HasAny(text string) bool {
	t := Normalize(text)
	if t == "" {
		return false
	}
	for _, p := range m.phrases {
		if containsPhrase(t, p) {
			return true
		}
		if m.fuzzy && fuzzyContains(t, p, m.minSim) {
			return true
		}
	}
	return false
}

func (m *Matcher) CountMatches(text string) int {
	return m.Matches(text).Cardinality()
}

// Normalize folds text to a canonical lowercase form with collapsed
// whitespace so phrase offsets line up with word boundaries.
func Normalize(s string) string {
	s = norm.NFKC.String(s)
	s = strings.ReplaceAll(s, "\u00a0", " ")
	s = strings.ToLower(strings.Join(strings.Fields(s), " "))
	return s
}

// containsPhrase reports whether phrase occurs in text bounded by
// non-word runes (or string edges) on both sides.
func containsPhrase(text, phrase string) bool {
	for start := 0; ; {
		i := strings.Index(text[start:], phrase)
		if i < 0 {
			return false
		}
		i += start
		if boundedAt(text, i, len(phrase)) {
			return true
		}
		start = i + 1
	}
}

func boundedAt(text string, i, n int) bool {
	if i > 0 {
		r, _ := utf8.DecodeLastRuneInString(text[:i])
		if isWordRune(r) {
			return false
		}
	}
	if i+n < len(text) {
		r, _ := utf8.DecodeRuneInString(text[i+n:])
		if isWordRune(r) {
			return false
		}
	}
	return true
}

func isWordRune(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsDigit(r)
}

package rank

import "jobagent-engine/internal/match"

// weightedMatcher sums per-keyword weights over the phrases matched in
// a text, clamped to a category cap.
type weightedMatcher struct {
	m       *match.Matcher
	weights map[string]int // keyed by normalized phrase
}

func newWeighted(keywords map[string]int, fuzzy bool, minSim float64) *weightedMatcher {
	phrases := make([]string, 0, len(keywords))
	weights := make(map[string]int, len(keywords))
	for kw, w := range keywords {
		phrases = append(phrases, kw)
		weights[match.Normalize(kw)] = w
	}

	var m *match.Matcher
	if fuzzy {
		m = match.NewFuzzy(phrases, minSim)
	} else {
		m = match.New(phrases)
	}
	return &weightedMatcher{m: m, weights: weights}
}

func (w *weightedMatcher) Sum(text string, cap int) int {
	sum := 0
	w.m.Matches(text).Each(func(phrase string) bool {
		sum += w.weights[phrase]
		return false
	})
	if sum > cap {
		return cap
	}
	return sum
}

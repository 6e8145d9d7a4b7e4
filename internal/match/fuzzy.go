package match

import (
	"strings"

	"github.com/agext/levenshtein"
)

// fuzzyContains slides a window of the phrase's word count across the
// text and accepts when edit-distance similarity clears minSim.
// Inputs are already normalized.
func fuzzyContains(text, phrase string, minSim float64) bool {
	if minSim <= 0 || minSim > 1 {
		return false
	}
	words := strings.Fields(text)
	n := len(strings.Fields(phrase))
	if n == 0 || len(words) < n {
		return false
	}
	for i := 0; i+n <= len(words); i++ {
		window := strings.Join(words[i:i+n], " ")
		if levenshtein.Similarity(window, phrase, nil) >= minSim {
			return true
		}
	}
	return false
}

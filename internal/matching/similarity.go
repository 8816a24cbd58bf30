// Package matching resolves spoken answers against reference data: fuzzy
// location matching over the gazetteer, substring matching over the service
// catalog and yes/no interpretation of confirmation answers.
package matching

import (
	"math"
	"strings"
	"unicode/utf8"

	"github.com/antzucaro/matchr"
)

// containmentScore is the floor applied when one string contains the other.
const containmentScore = 0.8

// Similarity returns a case-insensitive score in [0,1]: 1 for equal strings,
// at least 0.8 when one contains the other, otherwise 1 - editDistance/maxLen.
func Similarity(a, b string) float64 {
	a, b = strings.ToLower(a), strings.ToLower(b)
	if a == b {
		return 1
	}

	longer, shorter := a, b
	if utf8.RuneCountInString(shorter) > utf8.RuneCountInString(longer) {
		longer, shorter = shorter, longer
	}

	maxLen := utf8.RuneCountInString(longer)
	score := 1 - float64(matchr.Levenshtein(longer, shorter))/float64(maxLen)
	if score < 0 {
		score = 0
	}
	if strings.Contains(longer, shorter) {
		return math.Max(containmentScore, score)
	}
	return score
}

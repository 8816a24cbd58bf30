package matching

import "strings"

var affirmatives = map[string]struct{}{
	"yes": {}, "yeah": {}, "yep": {}, "yup": {}, "correct": {}, "right": {}, "ok": {}, "okay": {},
	"haan": {}, "han": {}, "ha": {}, "ji": {}, "sahi": {}, "theek": {},
	"aamam": {}, "ama": {}, "sari": {},
	"avunu": {}, "houdu": {}, "ho": {}, "hoy": {},
	"हाँ": {}, "हां": {}, "जी": {}, "ஆமாம்": {}, "சரி": {},
}

var negatives = map[string]struct{}{
	"no": {}, "nope": {}, "nah": {}, "wrong": {}, "nahi": {}, "nahin": {}, "illa": {}, "illai": {},
	"ledu": {}, "beda": {}, "nako": {}, "नहीं": {}, "இல்லை": {},
}

// IsAffirmative reports whether a confirmation answer means yes. An answer
// containing any negative word is never affirmative.
func IsAffirmative(utterance string) bool {
	words := strings.Fields(Normalize(utterance))
	yes := false
	for _, w := range words {
		if _, ok := negatives[w]; ok {
			return false
		}
		if _, ok := affirmatives[w]; ok {
			yes = true
		}
	}
	return yes
}

package matching

import (
	"strings"

	"github.com/xpanvictor/quickpost/internal/gazetteer"
)

// minReverseLen guards the term-contains-utterance direction against
// very short answers matching everything.
const minReverseLen = 3

// MatchService returns the first catalog entry whose name, localized name or
// synonym appears as whole words in the utterance (or contains it). Catalog
// order decides ties; there is no ranking.
func MatchService(utterance string, services []gazetteer.Service) (gazetteer.Service, bool) {
	u := Normalize(utterance)
	if u == "" {
		return gazetteer.Service{}, false
	}
	for _, svc := range services {
		for _, term := range svc.Terms() {
			t := Normalize(term)
			if t == "" {
				continue
			}
			if containsWords(u, t) || (len(u) >= minReverseLen && containsWords(t, u)) {
				return svc, true
			}
		}
	}
	return gazetteer.Service{}, false
}

// containsWords reports whether phrase occurs in text on word boundaries.
// A plural "s" on the phrase's last word still matches.
func containsWords(text, phrase string) bool {
	padded := " " + text + " "
	return strings.Contains(padded, " "+phrase+" ") || strings.Contains(padded, " "+phrase+"s ")
}

package matching

import (
	"strings"
	"unicode"
)

// Decision is the outcome of matching an answer against candidates.
type Decision int

const (
	Reject Decision = iota
	Confirm
	Accept
)

func (d Decision) String() string {
	switch d {
	case Accept:
		return "accept"
	case Confirm:
		return "confirm"
	default:
		return "reject"
	}
}

// Thresholds split similarity scores into decisions. A score strictly above
// Accept is accepted; strictly above Confirm (and not above Accept) asks for
// confirmation; anything else is rejected.
type Thresholds struct {
	Accept  float64
	Confirm float64
}

// DefaultThresholds are the production cut-offs.
var DefaultThresholds = Thresholds{Accept: 0.7, Confirm: 0.6}

// Decide maps a similarity score to a decision.
func (t Thresholds) Decide(score float64) Decision {
	switch {
	case score > t.Accept:
		return Accept
	case score > t.Confirm:
		return Confirm
	default:
		return Reject
	}
}

// Result of a location match.
type Result struct {
	Candidate string
	Score     float64
	Decision  Decision
	Exact     bool
}

var locationSuffixes = []string{" district", " state", " jilla", " zila"}

// Normalize lowercases an utterance, strips punctuation and collapses spaces.
func Normalize(utterance string) string {
	cleaned := strings.Map(func(r rune) rune {
		if unicode.IsPunct(r) {
			return ' '
		}
		return unicode.ToLower(r)
	}, utterance)
	return strings.Join(strings.Fields(cleaned), " ")
}

func normalizeLocation(utterance string) string {
	n := Normalize(utterance)
	for _, suf := range locationSuffixes {
		if strings.HasSuffix(n, suf) && len(n) > len(suf) {
			n = strings.TrimSuffix(n, suf)
		}
	}
	return n
}

// MatchLocation finds the candidate closest to utterance. An exact
// case-insensitive hit wins outright with score 1; otherwise every candidate
// is scored and the first best one is kept.
func MatchLocation(utterance string, candidates []string, th Thresholds) Result {
	u := normalizeLocation(utterance)
	if u == "" || len(candidates) == 0 {
		return Result{Decision: Reject}
	}

	for _, c := range candidates {
		if Normalize(c) == u {
			return Result{Candidate: c, Score: 1, Decision: Accept, Exact: true}
		}
	}

	best := Result{Score: -1}
	for _, c := range candidates {
		if s := Similarity(u, Normalize(c)); s > best.Score {
			best = Result{Candidate: c, Score: s}
		}
	}
	best.Decision = th.Decide(best.Score)
	return best
}

// Package keyword is an offline extractor driven by the gazetteer and a few
// phrase tables. It is deterministic and needs no network.
package keyword

import (
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"unicode"

	"github.com/xpanvictor/quickpost/internal/domains/voice"
	"github.com/xpanvictor/quickpost/internal/gazetteer"
	"github.com/xpanvictor/quickpost/internal/matching"
	"github.com/xpanvictor/quickpost/pkg/extract"
)

var (
	highUrgency = []string{"urgent", "urgently", "emergency", "immediately", "asap", "right now", "right away", "jaldi", "turant", "abhi"}
	lowUrgency  = []string{"no rush", "no hurry", "whenever", "flexible", "not urgent", "next month"}
	timeframes  = []string{"today", "tonight", "tomorrow", "this week", "next week", "this weekend", "weekend", "this month", "next month"}

	budgetAfter  = regexp.MustCompile(`(?i)(?:\bbudget|\brs\.?|₹|\binr|\brupees|\bprice|\bpay)\s*(?:of|is|around|about|:)?\s*(\d[\d,]*)(?:\s*(?:-|to)\s*(?:rs\.?|₹)?\s*(\d[\d,]*))?`)
	budgetBefore = regexp.MustCompile(`(?i)(\d[\d,]*)(?:\s*(?:-|to)\s*(\d[\d,]*))?\s*(?:rs\b|rupees|rupaye|/-)`)
	namePattern  = regexp.MustCompile(`(?i)\b(?:my name is|my name's|name is|i am|i'm|this is)\s+([\p{L}]+)(?:\s+([\p{L}]+))?`)
	mobileRun    = regexp.MustCompile(`(?:\+?\d[\d\s-]{8,15}\d)`)
	requirementW = regexp.MustCompile(`(?i)\b(?:must|should|needs? to|with own|bring)\b`)
)

// words that can follow "I am" without being a name
var notNames = map[string]struct{}{
	"from": {}, "in": {}, "at": {}, "a": {}, "an": {}, "the": {}, "looking": {}, "living": {},
	"staying": {}, "calling": {}, "here": {}, "available": {}, "interested": {}, "based": {},
	"need": {}, "needing": {}, "searching": {}, "not": {}, "very": {},
	"and": {}, "i": {}, "my": {}, "mobile": {}, "phone": {}, "number": {}, "live": {},
	"aur": {}, "hai": {}, "hoon": {}, "se": {},
}

type Extractor struct {
	gaz *gazetteer.Gazetteer
}

func New(g *gazetteer.Gazetteer) *Extractor {
	if g == nil {
		g = gazetteer.Default()
	}
	return &Extractor{gaz: g}
}

var _ extract.Extractor = (*Extractor)(nil)

func (e *Extractor) ExtractJob(ctx context.Context, tr voice.Transcript) (voice.ExtractedJob, error) {
	if err := ctx.Err(); err != nil {
		return voice.ExtractedJob{}, err
	}
	text := strings.TrimSpace(tr.Text)
	if text == "" {
		return voice.ExtractedJob{}, fmt.Errorf("%w: empty transcript", voice.ErrExtractionFailed)
	}

	svc, ok := matching.MatchService(text, e.gaz.Services)
	if !ok {
		return voice.ExtractedJob{}, fmt.Errorf("%w: no known service mentioned", voice.ErrExtractionFailed)
	}

	lower := strings.ToLower(text)
	loc := e.location(text)
	job := voice.ExtractedJob{
		Title:            title(svc, loc),
		Description:      text,
		ServiceCategory:  svc.ID,
		Urgency:          urgency(lower),
		Budget:           budget(text),
		Location:         loc,
		Requirements:     requirements(text),
		Timeframe:        firstPhrase(lower, timeframes),
		OriginalLanguage: tr.DetectedLanguage,
	}
	return job, nil
}

func (e *Extractor) ExtractUser(ctx context.Context, tr voice.Transcript) (voice.ExtractedUser, error) {
	if err := ctx.Err(); err != nil {
		return voice.ExtractedUser{}, err
	}
	text := strings.TrimSpace(tr.Text)
	if text == "" {
		return voice.ExtractedUser{}, fmt.Errorf("%w: empty transcript", voice.ErrExtractionFailed)
	}

	first, last := name(text)
	if first == "" {
		return voice.ExtractedUser{}, fmt.Errorf("%w: no name mentioned", voice.ErrExtractionFailed)
	}

	user := voice.ExtractedUser{
		FirstName: first,
		LastName:  last,
		Location:  e.location(text),
	}
	for _, run := range mobileRun.FindAllString(text, -1) {
		if m := extract.NormalizeMobile(run); m != "" {
			user.Mobile = m
			break
		}
	}
	return user, nil
}

func title(svc gazetteer.Service, loc voice.Location) string {
	place := loc.District
	if place == "" {
		place = loc.Area
	}
	if place == "" {
		return svc.Name + " service needed"
	}
	return svc.Name + " service needed in " + place
}

func urgency(lower string) voice.Urgency {
	// "not urgent" contains "urgent", so low phrases are checked first
	if firstPhrase(lower, lowUrgency) != "" {
		return voice.UrgencyLow
	}
	if firstPhrase(lower, highUrgency) != "" {
		return voice.UrgencyHigh
	}
	return voice.UrgencyMedium
}

func firstPhrase(lower string, phrases []string) string {
	padded := " " + matching.Normalize(lower) + " "
	for _, p := range phrases {
		if strings.Contains(padded, " "+p+" ") {
			return p
		}
	}
	return ""
}

func budget(text string) *voice.Budget {
	m := budgetAfter.FindStringSubmatch(text)
	if m == nil {
		m = budgetBefore.FindStringSubmatch(text)
	}
	if m == nil {
		return nil
	}
	lo := amount(m[1])
	hi := lo
	if len(m) > 2 && m[2] != "" {
		hi = amount(m[2])
	}
	if lo <= 0 && hi <= 0 {
		return nil
	}
	if hi < lo {
		lo, hi = hi, lo
	}
	return &voice.Budget{Min: lo, Max: hi}
}

func amount(s string) int {
	n, err := strconv.Atoi(strings.ReplaceAll(s, ",", ""))
	if err != nil {
		return 0
	}
	return n
}

func requirements(text string) []string {
	out := []string{}
	for _, seg := range segments(text) {
		if requirementW.MatchString(seg) {
			out = append(out, seg)
		}
	}
	return out
}

func name(text string) (string, string) {
	for _, m := range namePattern.FindAllStringSubmatch(text, -1) {
		first := m[1]
		if _, skip := notNames[strings.ToLower(first)]; skip {
			continue
		}
		last := m[2]
		if _, skip := notNames[strings.ToLower(last)]; skip {
			last = ""
		}
		return titleCase(first), titleCase(last)
	}
	return "", ""
}

func titleCase(s string) string {
	if s == "" {
		return ""
	}
	r := []rune(strings.ToLower(s))
	r[0] = unicode.ToUpper(r[0])
	return string(r)
}

func segments(text string) []string {
	parts := strings.FieldsFunc(text, func(r rune) bool {
		return r == ',' || r == '.' || r == ';' || r == '\n' || r == '।'
	})
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// location reads comma-separated place names. A segment naming a known state
// or district fills that field; the first other segment introduced by "in",
// "at" or "near" becomes the area.
func (e *Extractor) location(text string) voice.Location {
	var loc voice.Location
	for _, seg := range segments(text) {
		candidate, introduced := place(seg)
		if candidate == "" {
			continue
		}
		if st, ok := e.gaz.State(candidate); ok {
			if loc.State == "" {
				loc.State = st.Name
			}
			continue
		}
		if ref, ok := e.gaz.District(candidate); ok {
			if loc.District == "" {
				loc.District = ref.District
			}
			continue
		}
		if introduced && loc.Area == "" && !hasDigit(candidate) {
			loc.Area = candidate
		}
	}
	if loc.State == "" && loc.District != "" {
		if ref, ok := e.gaz.District(loc.District); ok {
			loc.State = ref.State
		}
	}
	return loc
}

var placeMarkers = []string{" in ", " at ", " near "}

// place returns the segment text after the last place marker, or the whole
// segment when it has none.
func place(seg string) (string, bool) {
	padded := " " + seg
	lower := strings.ToLower(padded)
	best := -1
	markerLen := 0
	for _, m := range placeMarkers {
		if i := strings.LastIndex(lower, m); i > best {
			best, markerLen = i, len(m)
		}
	}
	if best < 0 {
		return strings.TrimSpace(seg), false
	}
	return strings.TrimSpace(padded[best+markerLen:]), true
}

func hasDigit(s string) bool {
	return strings.IndexFunc(s, unicode.IsDigit) >= 0
}

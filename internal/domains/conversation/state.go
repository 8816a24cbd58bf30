package conversation

import (
	"strings"

	"github.com/xpanvictor/quickpost/internal/domains/voice"
)

type Status string

const (
	StatusIdle       Status = "idle"
	StatusSpeaking   Status = "speaking"
	StatusListening  Status = "listening"
	StatusConfirming Status = "confirming"
	StatusDone       Status = "done"
	StatusFailed     Status = "failed"
	StatusClosed     Status = "closed"
)

// State is the whole dialog context. Step handlers receive it by value and
// return the next one; nothing else holds conversation progress.
type State struct {
	Index       int    `json:"index"`
	Retries     int    `json:"retries"`
	Status      Status `json:"status"`
	ServiceID   string `json:"serviceId,omitempty"`
	ServiceName string `json:"serviceName,omitempty"`
	State       string `json:"state,omitempty"`
	District    string `json:"district,omitempty"`
	Description string `json:"description,omitempty"`
	// Pending holds the candidate awaiting a yes/no confirmation.
	Pending  string             `json:"pending,omitempty"`
	Language voice.LanguageCode `json:"language,omitempty"`
}

// Step returns the current step, or false once every step is answered.
func (s State) Step() (Step, bool) {
	if s.Index < 0 || s.Index >= len(Steps) {
		return Step{}, false
	}
	return Steps[s.Index], true
}

// Complete reports whether every field has been accepted.
func (s State) Complete() bool {
	return s.Index >= len(Steps)
}

// Job turns the collected answers into a job draft for review.
func (s State) Job() voice.ExtractedJob {
	title := s.ServiceName + " service needed"
	if s.District != "" {
		title += " in " + s.District
	}
	lang := s.Language
	if lang == "" {
		lang = voice.LangEnglish
	}
	return voice.ExtractedJob{
		Title:            strings.TrimSpace(title),
		Description:      s.Description,
		ServiceCategory:  s.ServiceID,
		Urgency:          voice.UrgencyMedium,
		Location:         voice.Location{District: s.District, State: s.State},
		Requirements:     []string{},
		OriginalLanguage: lang,
	}
}

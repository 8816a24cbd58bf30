package voice

import (
	"fmt"
	"strconv"
	"strings"
)

// LanguageCode is an ISO 639-1 code of a supported spoken language.
type LanguageCode string

const (
	LangEnglish   LanguageCode = "en"
	LangHindi     LanguageCode = "hi"
	LangTamil     LanguageCode = "ta"
	LangTelugu    LanguageCode = "te"
	LangKannada   LanguageCode = "kn"
	LangMalayalam LanguageCode = "ml"
	LangMarathi   LanguageCode = "mr"
	LangBengali   LanguageCode = "bn"
	LangGujarati  LanguageCode = "gu"
	LangPunjabi   LanguageCode = "pa"
)

// DefaultLanguages is the supported set when none is configured.
var DefaultLanguages = []LanguageCode{
	LangEnglish, LangHindi, LangTamil, LangTelugu, LangKannada,
	LangMalayalam, LangMarathi, LangBengali, LangGujarati, LangPunjabi,
}

// Transcript is produced once per recording session and is read-only afterwards.
// @Description Speech-to-text result
type Transcript struct {
	Text             string       `json:"text" example:"I need a plumber in Anna Nagar"`
	DetectedLanguage LanguageCode `json:"detectedLanguage" example:"en"`
}

// Urgency of a job posting.
type Urgency string

const (
	UrgencyLow    Urgency = "low"
	UrgencyMedium Urgency = "medium"
	UrgencyHigh   Urgency = "high"
)

// Valid reports whether u is one of the known urgency levels.
func (u Urgency) Valid() bool {
	switch u {
	case UrgencyLow, UrgencyMedium, UrgencyHigh:
		return true
	}
	return false
}

// Budget is an optional price range in rupees.
type Budget struct {
	Min int `json:"min" validate:"gte=0"`
	Max int `json:"max" validate:"gte=0,gtefield=Min"`
}

// String flattens the budget for the job posting API.
func (b *Budget) String() string {
	if b == nil {
		return ""
	}
	if b.Min == b.Max || b.Min == 0 {
		return strconv.Itoa(b.Max)
	}
	return fmt.Sprintf("%d-%d", b.Min, b.Max)
}

// Location fields are all optional.
type Location struct {
	Area     string `json:"area,omitempty"`
	District string `json:"district,omitempty"`
	State    string `json:"state,omitempty"`
}

// String flattens the location as "area, district, state" skipping blanks.
func (l Location) String() string {
	parts := make([]string, 0, 3)
	for _, p := range []string{l.Area, l.District, l.State} {
		if p = strings.TrimSpace(p); p != "" {
			parts = append(parts, p)
		}
	}
	return strings.Join(parts, ", ")
}

// IsZero reports whether no location field is set.
func (l Location) IsZero() bool {
	return l.Area == "" && l.District == "" && l.State == ""
}

// ExtractedJob is the structured job request extracted from a transcript.
// @Description Job fields extracted from speech
type ExtractedJob struct {
	Title            string       `json:"title" validate:"required" example:"Plumber needed in Anna Nagar"`
	Description      string       `json:"description" example:"I need a plumber in Anna Nagar"`
	ServiceCategory  string       `json:"serviceCategory" validate:"required" example:"plumbing"`
	Urgency          Urgency      `json:"urgency" validate:"oneof=low medium high" example:"high"`
	Budget           *Budget      `json:"budget,omitempty"`
	Location         Location     `json:"location"`
	Requirements     []string     `json:"requirements"`
	Timeframe        string       `json:"timeframe,omitempty" example:"today"`
	OriginalLanguage LanguageCode `json:"originalLanguage" example:"en"`
}

// ExtractedUser is the structured account data extracted from a transcript.
// @Description User fields extracted from speech
type ExtractedUser struct {
	FirstName string   `json:"firstName" validate:"required" example:"Ravi"`
	LastName  string   `json:"lastName" example:"Kumar"`
	Mobile    string   `json:"mobile,omitempty" validate:"omitempty,numeric,len=10" example:"9876543210"`
	Location  Location `json:"location"`
}

// Mode selects which record the extractor produces.
type Mode string

const (
	ModeJob  Mode = "job"
	ModeUser Mode = "user"
)

// Source tags where an extraction result came from. Demo data must never be
// presented as a genuine extraction.
type Source string

const (
	SourceGenuine Source = "genuine"
	SourceDemo    Source = "demo"
)

// JobResult is a tagged extraction result.
type JobResult struct {
	Job    ExtractedJob `json:"job"`
	Source Source       `json:"source"`
}

// IsDemo reports whether the record is placeholder data.
func (r JobResult) IsDemo() bool { return r.Source == SourceDemo }

// UserResult is a tagged extraction result.
type UserResult struct {
	User   ExtractedUser `json:"user"`
	Source Source        `json:"source"`
}

// IsDemo reports whether the record is placeholder data.
func (r UserResult) IsDemo() bool { return r.Source == SourceDemo }

// TranscribeRequest carries one base64-encoded recording.
// @Description Request body for speech transcription
type TranscribeRequest struct {
	AudioData string `json:"audioData" binding:"required" example:"UklGRiQAAABXQVZFZm10IBAAAAABAAEA..."`
	MimeType  string `json:"mimeType" binding:"required" example:"audio/wav"`
}

// ExtractRequest is a transcript submitted for field extraction.
// @Description Request body for job or user extraction
type ExtractRequest struct {
	Text             string       `json:"text" binding:"required" example:"I need a plumber in Anna Nagar, Chennai"`
	DetectedLanguage LanguageCode `json:"detectedLanguage" example:"en"`
}

func (r ExtractRequest) Transcript() Transcript {
	return Transcript{Text: r.Text, DetectedLanguage: r.DetectedLanguage}
}

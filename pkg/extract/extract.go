// Package extract turns transcripts into structured job and user records.
package extract

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/xpanvictor/quickpost/internal/constants/prompts"
	"github.com/xpanvictor/quickpost/internal/domains/voice"
)

// Extractor produces raw records. It is a pure function of the transcript
// from the caller's view; every failure wraps voice.ErrExtractionFailed.
type Extractor interface {
	ExtractJob(ctx context.Context, tr voice.Transcript) (voice.ExtractedJob, error)
	ExtractUser(ctx context.Context, tr voice.Transcript) (voice.ExtractedUser, error)
}

// Completer is one single-turn, JSON-answering model call.
type Completer interface {
	Complete(ctx context.Context, system, user string) (string, error)
	Name() string
}

type llmExtractor struct {
	completer  Completer
	serviceIDs []string
}

// NewLLM builds an Extractor on top of any chat model. serviceIDs is the
// closed set the model must pick serviceCategory from.
func NewLLM(c Completer, serviceIDs []string) Extractor {
	return &llmExtractor{completer: c, serviceIDs: serviceIDs}
}

func (l *llmExtractor) ExtractJob(ctx context.Context, tr voice.Transcript) (voice.ExtractedJob, error) {
	if strings.TrimSpace(tr.Text) == "" {
		return voice.ExtractedJob{}, fmt.Errorf("%w: empty transcript", voice.ErrExtractionFailed)
	}
	system := prompts.JOB_EXTRACTION.GetCurrentPrompt().Render(l.serviceIDs)
	raw, err := l.completer.Complete(ctx, system, tr.Text)
	if err != nil {
		return voice.ExtractedJob{}, fmt.Errorf("%w: %s: %v", voice.ErrExtractionFailed, l.completer.Name(), err)
	}
	return DecodeJob(raw, tr)
}

func (l *llmExtractor) ExtractUser(ctx context.Context, tr voice.Transcript) (voice.ExtractedUser, error) {
	if strings.TrimSpace(tr.Text) == "" {
		return voice.ExtractedUser{}, fmt.Errorf("%w: empty transcript", voice.ErrExtractionFailed)
	}
	system := prompts.USER_EXTRACTION.GetCurrentPrompt().Render(nil)
	raw, err := l.completer.Complete(ctx, system, tr.Text)
	if err != nil {
		return voice.ExtractedUser{}, fmt.Errorf("%w: %s: %v", voice.ErrExtractionFailed, l.completer.Name(), err)
	}
	return DecodeUser(raw)
}

// jsonObject cuts the first {...} out of a model reply, dropping code fences
// and chatter around it.
func jsonObject(raw string) (string, error) {
	start := strings.Index(raw, "{")
	end := strings.LastIndex(raw, "}")
	if start < 0 || end <= start {
		return "", fmt.Errorf("%w: reply has no JSON object", voice.ErrExtractionFailed)
	}
	return raw[start : end+1], nil
}

// DecodeJob parses a model reply and fills the fields the model may skip.
func DecodeJob(raw string, tr voice.Transcript) (voice.ExtractedJob, error) {
	obj, err := jsonObject(raw)
	if err != nil {
		return voice.ExtractedJob{}, err
	}
	var job voice.ExtractedJob
	if err := json.Unmarshal([]byte(obj), &job); err != nil {
		return voice.ExtractedJob{}, fmt.Errorf("%w: invalid job JSON: %v", voice.ErrExtractionFailed, err)
	}

	job.Urgency = voice.Urgency(strings.ToLower(strings.TrimSpace(string(job.Urgency))))
	if !job.Urgency.Valid() {
		job.Urgency = voice.UrgencyMedium
	}
	job.ServiceCategory = strings.ToLower(strings.TrimSpace(job.ServiceCategory))
	if job.Description == "" {
		job.Description = tr.Text
	}
	if job.Requirements == nil {
		job.Requirements = []string{}
	}
	if job.Budget != nil && job.Budget.Min == 0 && job.Budget.Max == 0 {
		job.Budget = nil
	}
	if job.OriginalLanguage == "" {
		job.OriginalLanguage = tr.DetectedLanguage
	}
	return job, nil
}

// DecodeUser parses a model reply into a user record.
func DecodeUser(raw string) (voice.ExtractedUser, error) {
	obj, err := jsonObject(raw)
	if err != nil {
		return voice.ExtractedUser{}, err
	}
	var user voice.ExtractedUser
	if err := json.Unmarshal([]byte(obj), &user); err != nil {
		return voice.ExtractedUser{}, fmt.Errorf("%w: invalid user JSON: %v", voice.ErrExtractionFailed, err)
	}
	user.Mobile = NormalizeMobile(user.Mobile)
	return user, nil
}

// NormalizeMobile keeps the 10 national digits of an Indian mobile number,
// or returns "" when the input is not one.
func NormalizeMobile(s string) string {
	digits := make([]byte, 0, len(s))
	for i := 0; i < len(s); i++ {
		if s[i] >= '0' && s[i] <= '9' {
			digits = append(digits, s[i])
		}
	}
	switch {
	case len(digits) == 10:
	case len(digits) == 12 && digits[0] == '9' && digits[1] == '1':
		digits = digits[2:]
	case len(digits) == 11 && digits[0] == '0':
		digits = digits[1:]
	default:
		return ""
	}
	if digits[0] < '6' {
		return ""
	}
	return string(digits)
}

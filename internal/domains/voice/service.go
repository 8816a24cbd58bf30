package voice

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/xpanvictor/quickpost/pkg/Logger"
)

// Transcriber converts one finalized recording into text.
type Transcriber interface {
	Transcribe(ctx context.Context, audio []byte, mimeType string) (Transcript, error)
}

// Extractor produces tagged records so demo data is always distinguishable.
type Extractor interface {
	ExtractJob(ctx context.Context, tr Transcript) (JobResult, error)
	ExtractUser(ctx context.Context, tr Transcript) (UserResult, error)
}

// Cache stores genuine extraction results. A miss is (nil, false, nil).
type Cache interface {
	Get(key string) ([]byte, bool, error)
	Set(key string, value []byte, ttl time.Duration) error
}

type Options struct {
	Languages     []LanguageCode
	ServiceIDs    []string
	CacheTTL      time.Duration
	MaxAudioBytes int
}

type VoiceService interface {
	Transcribe(ctx context.Context, audio []byte, mimeType string) (Transcript, error)
	ExtractJob(ctx context.Context, tr Transcript) (JobResult, error)
	ExtractUser(ctx context.Context, tr Transcript) (UserResult, error)
	Languages() []LanguageCode
}

type voiceService struct {
	transcriber Transcriber
	extractor   Extractor
	cache       Cache
	opts        Options
	languages   map[LanguageCode]struct{}
	services    map[string]struct{}
	validate    *validator.Validate
	logger      *Logger.Logger
}

func NewVoiceService(t Transcriber, e Extractor, cache Cache, opts Options, logger *Logger.Logger) VoiceService {
	if len(opts.Languages) == 0 {
		opts.Languages = DefaultLanguages
	}
	if logger == nil {
		logger = Logger.NewNop()
	}
	langs := make(map[LanguageCode]struct{}, len(opts.Languages))
	for _, l := range opts.Languages {
		langs[l] = struct{}{}
	}
	var services map[string]struct{}
	if len(opts.ServiceIDs) > 0 {
		services = make(map[string]struct{}, len(opts.ServiceIDs))
		for _, id := range opts.ServiceIDs {
			services[id] = struct{}{}
		}
	}
	return &voiceService{
		transcriber: t,
		extractor:   e,
		cache:       cache,
		opts:        opts,
		languages:   langs,
		services:    services,
		validate:    validator.New(validator.WithRequiredStructEnabled()),
		logger:      logger,
	}
}

func (v *voiceService) Languages() []LanguageCode {
	out := make([]LanguageCode, len(v.opts.Languages))
	copy(out, v.opts.Languages)
	return out
}

func (v *voiceService) defaultLanguage() LanguageCode {
	return v.opts.Languages[0]
}

// Transcribe implements VoiceService.
func (v *voiceService) Transcribe(ctx context.Context, audio []byte, mimeType string) (Transcript, error) {
	if len(audio) == 0 {
		return Transcript{}, fmt.Errorf("%w: audio is empty", ErrValidation)
	}
	if v.opts.MaxAudioBytes > 0 && len(audio) > v.opts.MaxAudioBytes {
		return Transcript{}, fmt.Errorf("%w: audio exceeds %d bytes", ErrValidation, v.opts.MaxAudioBytes)
	}
	if !strings.HasPrefix(strings.ToLower(mimeType), "audio/") {
		return Transcript{}, fmt.Errorf("%w: unsupported mime type %q", ErrValidation, mimeType)
	}

	tr, err := v.transcriber.Transcribe(ctx, audio, mimeType)
	if err != nil {
		if !errors.Is(err, ErrTranscriptionFailed) {
			err = fmt.Errorf("%w: %w", ErrTranscriptionFailed, err)
		}
		return Transcript{}, err
	}

	if _, ok := v.languages[tr.DetectedLanguage]; !ok {
		v.logger.Infof("detected language %q is not supported, using %q", tr.DetectedLanguage, v.defaultLanguage())
		tr.DetectedLanguage = v.defaultLanguage()
	}
	return tr, nil
}

func (v *voiceService) prepare(tr Transcript) (Transcript, error) {
	tr.Text = strings.TrimSpace(tr.Text)
	if tr.Text == "" {
		return tr, fmt.Errorf("%w: empty transcript", ErrExtractionFailed)
	}
	if tr.DetectedLanguage == "" {
		tr.DetectedLanguage = v.defaultLanguage()
	}
	if _, ok := v.languages[tr.DetectedLanguage]; !ok {
		return tr, fmt.Errorf("%w: %q", ErrUnsupportedLanguage, tr.DetectedLanguage)
	}
	return tr, nil
}

// CacheKey identifies an extraction. Extraction is a pure function of the
// transcript, so the key covers nothing else.
func CacheKey(mode Mode, tr Transcript) string {
	sum := sha256.Sum256([]byte(string(mode) + "\x00" + string(tr.DetectedLanguage) + "\x00" + tr.Text))
	return "extract:" + string(mode) + ":" + hex.EncodeToString(sum[:])
}

// ExtractJob implements VoiceService.
func (v *voiceService) ExtractJob(ctx context.Context, tr Transcript) (JobResult, error) {
	tr, err := v.prepare(tr)
	if err != nil {
		return JobResult{}, err
	}

	key := CacheKey(ModeJob, tr)
	var cached JobResult
	if v.lookup(key, &cached) {
		return cached, nil
	}

	res, err := v.extractor.ExtractJob(ctx, tr)
	if err != nil {
		return JobResult{}, asExtractionError(err)
	}
	if res.IsDemo() {
		return res, nil
	}

	if err := v.validate.Struct(res.Job); err != nil {
		return JobResult{}, fmt.Errorf("%w: %w: %v", ErrExtractionFailed, ErrValidation, err)
	}
	if v.services != nil {
		if _, ok := v.services[res.Job.ServiceCategory]; !ok {
			return JobResult{}, fmt.Errorf("%w: unknown service category %q", ErrExtractionFailed, res.Job.ServiceCategory)
		}
	}

	v.store(key, res)
	return res, nil
}

// ExtractUser implements VoiceService.
func (v *voiceService) ExtractUser(ctx context.Context, tr Transcript) (UserResult, error) {
	tr, err := v.prepare(tr)
	if err != nil {
		return UserResult{}, err
	}

	key := CacheKey(ModeUser, tr)
	var cached UserResult
	if v.lookup(key, &cached) {
		return cached, nil
	}

	res, err := v.extractor.ExtractUser(ctx, tr)
	if err != nil {
		return UserResult{}, asExtractionError(err)
	}
	if res.IsDemo() {
		return res, nil
	}

	if err := v.validate.Struct(res.User); err != nil {
		return UserResult{}, fmt.Errorf("%w: %w: %v", ErrExtractionFailed, ErrValidation, err)
	}

	v.store(key, res)
	return res, nil
}

func (v *voiceService) lookup(key string, out any) bool {
	if v.cache == nil {
		return false
	}
	raw, ok, err := v.cache.Get(key)
	if err != nil {
		v.logger.Warnf("extraction cache read failed: %v", err)
		return false
	}
	if !ok {
		return false
	}
	if err := json.Unmarshal(raw, out); err != nil {
		v.logger.Warnf("discarding corrupt cache entry %s: %v", key, err)
		return false
	}
	return true
}

func (v *voiceService) store(key string, value any) {
	if v.cache == nil {
		return
	}
	raw, err := json.Marshal(value)
	if err != nil {
		return
	}
	if err := v.cache.Set(key, raw, v.opts.CacheTTL); err != nil {
		v.logger.Warnf("extraction cache write failed: %v", err)
	}
}

func asExtractionError(err error) error {
	if errors.Is(err, ErrExtractionFailed) || errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return err
	}
	return fmt.Errorf("%w: %w", ErrExtractionFailed, err)
}

package voice

import (
	"context"
	"errors"
	"testing"
	"time"
)

type fakeTranscriber struct {
	tr  Transcript
	err error
}

func (f fakeTranscriber) Transcribe(context.Context, []byte, string) (Transcript, error) {
	return f.tr, f.err
}

type fakeExtractor struct {
	job   JobResult
	user  UserResult
	err   error
	calls int
}

func (f *fakeExtractor) ExtractJob(context.Context, Transcript) (JobResult, error) {
	f.calls++
	return f.job, f.err
}

func (f *fakeExtractor) ExtractUser(context.Context, Transcript) (UserResult, error) {
	f.calls++
	return f.user, f.err
}

type memCache struct {
	data map[string][]byte
	ttl  time.Duration
}

func (m *memCache) Get(key string) ([]byte, bool, error) {
	v, ok := m.data[key]
	return v, ok, nil
}

func (m *memCache) Set(key string, value []byte, ttl time.Duration) error {
	m.data[key] = value
	m.ttl = ttl
	return nil
}

func validJob() ExtractedJob {
	return ExtractedJob{
		Title:           "Plumber needed",
		ServiceCategory: "plumbing",
		Urgency:         UrgencyHigh,
		Budget:          &Budget{Min: 2000, Max: 2000},
		Requirements:    []string{},
	}
}

func TestTranscribeNormalizesLanguage(t *testing.T) {
	svc := NewVoiceService(fakeTranscriber{tr: Transcript{Text: "hola", DetectedLanguage: "es"}}, nil, nil, Options{}, nil)
	tr, err := svc.Transcribe(context.Background(), []byte{1}, "audio/webm")
	if err != nil {
		t.Fatal(err)
	}
	if tr.DetectedLanguage != LangEnglish {
		t.Errorf("language = %q, want fallback to en", tr.DetectedLanguage)
	}
}

func TestTranscribeValidation(t *testing.T) {
	svc := NewVoiceService(fakeTranscriber{}, nil, nil, Options{MaxAudioBytes: 4}, nil)
	cases := []struct {
		audio []byte
		mime  string
	}{
		{nil, "audio/wav"},
		{[]byte{1, 2, 3, 4, 5}, "audio/wav"},
		{[]byte{1}, "text/plain"},
	}
	for _, tc := range cases {
		if _, err := svc.Transcribe(context.Background(), tc.audio, tc.mime); !errors.Is(err, ErrValidation) {
			t.Errorf("%d bytes %s: got %v, want ErrValidation", len(tc.audio), tc.mime, err)
		}
	}
}

func TestTranscribeWrapsFailures(t *testing.T) {
	svc := NewVoiceService(fakeTranscriber{err: errors.New("boom")}, nil, nil, Options{}, nil)
	if _, err := svc.Transcribe(context.Background(), []byte{1}, "audio/wav"); !errors.Is(err, ErrTranscriptionFailed) {
		t.Fatalf("got %v", err)
	}
}

func TestExtractJobCachesGenuineResults(t *testing.T) {
	ext := &fakeExtractor{job: JobResult{Job: validJob(), Source: SourceGenuine}}
	cache := &memCache{data: map[string][]byte{}}
	svc := NewVoiceService(nil, ext, cache, Options{CacheTTL: time.Hour, ServiceIDs: []string{"plumbing"}}, nil)

	tr := Transcript{Text: " I need a plumber ", DetectedLanguage: LangEnglish}
	for i := 0; i < 2; i++ {
		res, err := svc.ExtractJob(context.Background(), tr)
		if err != nil {
			t.Fatalf("call %d: %v", i, err)
		}
		if res.Job.ServiceCategory != "plumbing" || res.IsDemo() {
			t.Errorf("call %d: result = %+v", i, res)
		}
	}
	if ext.calls != 1 {
		t.Errorf("extractor called %d times, want 1", ext.calls)
	}
	if cache.ttl != time.Hour {
		t.Errorf("ttl = %s", cache.ttl)
	}
}

func TestExtractJobDoesNotCacheDemo(t *testing.T) {
	ext := &fakeExtractor{job: JobResult{Job: validJob(), Source: SourceDemo}}
	cache := &memCache{data: map[string][]byte{}}
	svc := NewVoiceService(nil, ext, cache, Options{}, nil)

	res, err := svc.ExtractJob(context.Background(), Transcript{Text: "x"})
	if err != nil || !res.IsDemo() {
		t.Fatalf("res = %+v, err = %v", res, err)
	}
	if len(cache.data) != 0 {
		t.Error("demo result was cached")
	}
}

func TestExtractJobRejections(t *testing.T) {
	invalid := validJob()
	invalid.Title = ""
	unknown := validJob()
	unknown.ServiceCategory = "astrology"

	cases := []struct {
		name string
		ext  *fakeExtractor
		tr   Transcript
		want error
	}{
		{"empty text", &fakeExtractor{}, Transcript{Text: "  "}, ErrExtractionFailed},
		{"unsupported language", &fakeExtractor{}, Transcript{Text: "x", DetectedLanguage: "fr"}, ErrUnsupportedLanguage},
		{"extractor error", &fakeExtractor{err: errors.New("down")}, Transcript{Text: "x"}, ErrExtractionFailed},
		{"invalid record", &fakeExtractor{job: JobResult{Job: invalid, Source: SourceGenuine}}, Transcript{Text: "x"}, ErrValidation},
		{"unknown category", &fakeExtractor{job: JobResult{Job: unknown, Source: SourceGenuine}}, Transcript{Text: "x"}, ErrExtractionFailed},
	}
	for _, tc := range cases {
		svc := NewVoiceService(nil, tc.ext, nil, Options{ServiceIDs: []string{"plumbing"}}, nil)
		if _, err := svc.ExtractJob(context.Background(), tc.tr); !errors.Is(err, tc.want) {
			t.Errorf("%s: got %v, want %v", tc.name, err, tc.want)
		}
	}
}

func TestExtractUserValidatesMobile(t *testing.T) {
	ext := &fakeExtractor{user: UserResult{User: ExtractedUser{FirstName: "Ravi", Mobile: "12345"}, Source: SourceGenuine}}
	svc := NewVoiceService(nil, ext, nil, Options{}, nil)
	if _, err := svc.ExtractUser(context.Background(), Transcript{Text: "Ravi"}); !errors.Is(err, ErrValidation) {
		t.Fatalf("got %v", err)
	}

	ext.user.User.Mobile = "9876543210"
	res, err := svc.ExtractUser(context.Background(), Transcript{Text: "Ravi"})
	if err != nil || res.User.FirstName != "Ravi" {
		t.Fatalf("res = %+v, err = %v", res, err)
	}
}

func TestCacheKeyDependsOnModeLanguageText(t *testing.T) {
	base := CacheKey(ModeJob, Transcript{Text: "a", DetectedLanguage: LangEnglish})
	others := []string{
		CacheKey(ModeUser, Transcript{Text: "a", DetectedLanguage: LangEnglish}),
		CacheKey(ModeJob, Transcript{Text: "a", DetectedLanguage: LangHindi}),
		CacheKey(ModeJob, Transcript{Text: "b", DetectedLanguage: LangEnglish}),
	}
	for _, k := range others {
		if k == base {
			t.Errorf("key collision: %s", k)
		}
	}
}

func TestBudgetAndLocationFlatten(t *testing.T) {
	var nilBudget *Budget
	cases := []struct{ got, want string }{
		{nilBudget.String(), ""},
		{(&Budget{Max: 500}).String(), "500"},
		{(&Budget{Min: 500, Max: 800}).String(), "500-800"},
		{Location{Area: "Anna Nagar", State: "Tamil Nadu"}.String(), "Anna Nagar, Tamil Nadu"},
	}
	for _, tc := range cases {
		if tc.got != tc.want {
			t.Errorf("got %q, want %q", tc.got, tc.want)
		}
	}
}

package intake

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/xpanvictor/quickpost/internal/domains/jobposting"
	"github.com/xpanvictor/quickpost/internal/domains/user"
	"github.com/xpanvictor/quickpost/internal/domains/voice"
	"github.com/xpanvictor/quickpost/pkg/io/recorder"
)

type fakeRecorder struct {
	startErr error
	stopErr  error
	stops    int
	closed   bool
}

func (r *fakeRecorder) Start(context.Context) error { return r.startErr }

func (r *fakeRecorder) Stop() (*recorder.Artifact, error) {
	r.stops++
	if r.stopErr != nil {
		return nil, r.stopErr
	}
	return &recorder.Artifact{Data: []byte("RIFF"), MimeType: recorder.MimeTypeWAV, Duration: time.Second}, nil
}

func (r *fakeRecorder) Close() error {
	r.closed = true
	return nil
}

type fakeBackend struct {
	transcribeErr error
	userSource    voice.Source
	jobSource     voice.Source
	signupErr     error
	postErr       error

	transcribes int
	signups     int
	posts       int
	token       string
	lastPost    jobposting.CreateJobPostingRequest
	lastSignup  user.QuickSignupRequest
}

func (b *fakeBackend) Transcribe(_ context.Context, audio []byte, mime string) (voice.Transcript, error) {
	b.transcribes++
	if b.transcribeErr != nil {
		return voice.Transcript{}, b.transcribeErr
	}
	return voice.Transcript{Text: "I am Ravi Kumar, I need a plumber urgently in Anna Nagar, Chennai, Tamil Nadu, budget 2000", DetectedLanguage: voice.LangEnglish}, nil
}

func (b *fakeBackend) ExtractUser(context.Context, voice.Transcript) (voice.UserResult, error) {
	src := b.userSource
	if src == "" {
		src = voice.SourceGenuine
	}
	return voice.UserResult{
		User:   voice.ExtractedUser{FirstName: "Ravi", LastName: "Kumar", Mobile: "9876543210", Location: voice.Location{District: "Chennai", State: "Tamil Nadu"}},
		Source: src,
	}, nil
}

func (b *fakeBackend) ExtractJob(context.Context, voice.Transcript) (voice.JobResult, error) {
	src := b.jobSource
	if src == "" {
		src = voice.SourceGenuine
	}
	return voice.JobResult{
		Job: voice.ExtractedJob{
			Title:            "Plumbing service needed in Chennai",
			ServiceCategory:  "plumbing",
			Urgency:          voice.UrgencyHigh,
			Budget:           &voice.Budget{Min: 2000, Max: 2000},
			Location:         voice.Location{Area: "Anna Nagar", District: "Chennai", State: "Tamil Nadu"},
			OriginalLanguage: voice.LangEnglish,
		},
		Source: src,
	}, nil
}

func (b *fakeBackend) QuickSignup(_ context.Context, req user.QuickSignupRequest) (*user.AuthResponse, error) {
	b.signups++
	b.lastSignup = req
	if b.signupErr != nil {
		return nil, b.signupErr
	}
	return &user.AuthResponse{
		User:   user.UserResponse{ID: "user-1", FirstName: req.FirstName},
		Tokens: user.AuthTokens{AccessToken: "tok"},
	}, nil
}

func (b *fakeBackend) CreateJobPosting(_ context.Context, token string, req jobposting.CreateJobPostingRequest) (*jobposting.JobPosting, error) {
	b.posts++
	b.token = token
	b.lastPost = req
	if b.postErr != nil {
		return nil, b.postErr
	}
	return &jobposting.JobPosting{ID: "job-1", Title: req.Title}, nil
}

type fakeReviewer struct {
	acceptUser bool
	acceptJob  bool
	shown      []voice.Source
}

func (r *fakeReviewer) ReviewUser(_ context.Context, res voice.UserResult) (bool, error) {
	r.shown = append(r.shown, res.Source)
	return r.acceptUser, nil
}

func (r *fakeReviewer) ReviewJob(_ context.Context, res voice.JobResult) (bool, error) {
	r.shown = append(r.shown, res.Source)
	return r.acceptJob, nil
}

type toasts struct{ msgs []string }

func (t *toasts) Toast(m string) { t.msgs = append(t.msgs, m) }

type harness struct {
	rec      *fakeRecorder
	backend  *fakeBackend
	reviewer *fakeReviewer
	toasts   *toasts
	flow     *Flow
}

func newHarness() *harness {
	h := &harness{
		rec:      &fakeRecorder{},
		backend:  &fakeBackend{},
		reviewer: &fakeReviewer{acceptUser: true, acceptJob: true},
		toasts:   &toasts{},
	}
	h.flow = NewFlow(Deps{Recorder: h.rec, Backend: h.backend, Reviewer: h.reviewer, Notifier: h.toasts}, "QuickPost@123")
	return h
}

func (h *harness) start(t *testing.T) {
	t.Helper()
	if err := h.flow.Start(context.Background()); err != nil {
		t.Fatalf("Start: %v", err)
	}
	if h.flow.Current() != StateRecording {
		t.Fatalf("state after Start = %s", h.flow.Current())
	}
}

func TestQuickPostHappyPath(t *testing.T) {
	h := newHarness()
	h.start(t)

	out, err := h.flow.Submit(context.Background())
	if err != nil {
		t.Fatalf("Submit: %v", err)
	}
	if h.flow.Current() != StateDone {
		t.Fatalf("state = %s", h.flow.Current())
	}
	if out.Account == nil || out.Posting == nil || out.Posting.ID != "job-1" {
		t.Fatalf("outcome = %+v", out)
	}
	if h.backend.token != "tok" {
		t.Errorf("posted with token %q", h.backend.token)
	}
	if h.backend.lastSignup.Password != "QuickPost@123" || h.backend.lastSignup.Mobile != "9876543210" {
		t.Errorf("signup request = %+v", h.backend.lastSignup)
	}
	post := h.backend.lastPost
	if post.Budget != "2000" || post.Location != "Anna Nagar, Chennai, Tamil Nadu" || post.Urgency != "high" {
		t.Errorf("flattened job = %+v", post)
	}
	if len(h.toasts.msgs) != 0 {
		t.Errorf("unexpected toasts: %v", h.toasts.msgs)
	}

	if _, err := h.flow.Submit(context.Background()); !errors.Is(err, ErrFlowDone) {
		t.Errorf("second Submit = %v", err)
	}
}

func TestSignupFailureFallsBackAndRetries(t *testing.T) {
	h := newHarness()
	h.backend.signupErr = voice.ErrNetwork
	h.start(t)

	_, err := h.flow.Submit(context.Background())
	if !errors.Is(err, voice.ErrNetwork) {
		t.Fatalf("err = %v", err)
	}
	if h.flow.Current() != StateReviewingUser || h.flow.Failed() != eventCreateAccount {
		t.Fatalf("state = %s, failed = %s", h.flow.Current(), h.flow.Failed())
	}
	if len(h.toasts.msgs) != 1 {
		t.Errorf("toasts = %v", h.toasts.msgs)
	}

	h.backend.signupErr = nil
	if _, err := h.flow.Retry(context.Background()); err != nil {
		t.Fatalf("Retry: %v", err)
	}
	if h.flow.Current() != StateDone || h.flow.Failed() != "" {
		t.Errorf("state = %s, failed = %s", h.flow.Current(), h.flow.Failed())
	}
	if h.backend.transcribes != 1 || h.backend.signups != 2 {
		t.Errorf("transcribes = %d, signups = %d", h.backend.transcribes, h.backend.signups)
	}
}

func TestPostFailureKeepsCreatedAccount(t *testing.T) {
	h := newHarness()
	h.backend.postErr = errors.New("boom")
	h.start(t)

	out, err := h.flow.Submit(context.Background())
	if err == nil {
		t.Fatal("expected error")
	}
	if out.Account == nil {
		t.Fatal("created account must survive a later failure")
	}
	if h.flow.Current() != StateReviewingJob {
		t.Fatalf("state = %s", h.flow.Current())
	}

	h.backend.postErr = nil
	out, err = h.flow.Retry(context.Background())
	if err != nil {
		t.Fatalf("Retry: %v", err)
	}
	if out.Posting == nil || h.backend.signups != 1 || h.backend.posts != 2 {
		t.Errorf("posting = %+v, signups = %d, posts = %d", out.Posting, h.backend.signups, h.backend.posts)
	}
}

func TestDemoDataIsShownButNeverSubmitted(t *testing.T) {
	h := newHarness()
	h.backend.userSource = voice.SourceDemo
	h.start(t)

	_, err := h.flow.Submit(context.Background())
	if !errors.Is(err, ErrDemoData) {
		t.Fatalf("err = %v, want ErrDemoData", err)
	}
	if len(h.reviewer.shown) != 1 || h.reviewer.shown[0] != voice.SourceDemo {
		t.Errorf("reviewer saw %v", h.reviewer.shown)
	}
	if h.backend.signups != 0 {
		t.Error("demo user was submitted")
	}
	if h.flow.Current() != StateTranscribing || h.flow.Failed() != eventExtractUser {
		t.Errorf("state = %s, failed = %s", h.flow.Current(), h.flow.Failed())
	}

	h.backend.userSource = voice.SourceGenuine
	if _, err := h.flow.Retry(context.Background()); err != nil {
		t.Fatalf("Retry: %v", err)
	}
	if h.flow.Current() != StateDone {
		t.Errorf("state = %s", h.flow.Current())
	}
}

func TestDeclinedJobReview(t *testing.T) {
	h := newHarness()
	h.reviewer.acceptJob = false
	h.start(t)

	out, err := h.flow.Submit(context.Background())
	if !errors.Is(err, ErrDeclined) {
		t.Fatalf("err = %v, want ErrDeclined", err)
	}
	if h.flow.Current() != StateCreatingAccount || out.Account == nil || h.backend.posts != 0 {
		t.Errorf("state = %s, account = %v, posts = %d", h.flow.Current(), out.Account, h.backend.posts)
	}
}

func TestTranscriptionFailureReusesRecording(t *testing.T) {
	h := newHarness()
	h.backend.transcribeErr = voice.ErrTranscriptionFailed
	h.start(t)

	if _, err := h.flow.Submit(context.Background()); !errors.Is(err, voice.ErrTranscriptionFailed) {
		t.Fatalf("err = %v", err)
	}
	if h.flow.Current() != StateRecording {
		t.Fatalf("state = %s", h.flow.Current())
	}

	h.backend.transcribeErr = nil
	if _, err := h.flow.Retry(context.Background()); err != nil {
		t.Fatalf("Retry: %v", err)
	}
	if h.rec.stops != 1 || h.backend.transcribes != 2 {
		t.Errorf("stops = %d, transcribes = %d", h.rec.stops, h.backend.transcribes)
	}
}

func TestFailedRecordingReturnsToIdle(t *testing.T) {
	h := newHarness()
	h.rec.stopErr = recorder.ErrRecordingTooLong
	h.start(t)

	if _, err := h.flow.Submit(context.Background()); !errors.Is(err, recorder.ErrRecordingTooLong) {
		t.Fatalf("err = %v", err)
	}
	if h.flow.Current() != StateIdle || h.flow.Failed() != eventRecord {
		t.Errorf("state = %s, failed = %s", h.flow.Current(), h.flow.Failed())
	}

	h.rec.stopErr = nil
	if _, err := h.flow.Retry(context.Background()); err != nil {
		t.Fatalf("Retry: %v", err)
	}
	if h.flow.Current() != StateRecording {
		t.Errorf("retry after failed recording should record again, state = %s", h.flow.Current())
	}
}

func TestStartFailureStaysIdle(t *testing.T) {
	h := newHarness()
	h.rec.startErr = voice.ErrPermissionDenied

	err := h.flow.Start(context.Background())
	if !errors.Is(err, voice.ErrPermissionDenied) {
		t.Fatalf("err = %v", err)
	}
	if h.flow.Current() != StateIdle {
		t.Errorf("state = %s", h.flow.Current())
	}
	if len(h.toasts.msgs) != 1 || h.toasts.msgs[0] != "Could not start recording: microphone permission denied." {
		t.Errorf("toasts = %v", h.toasts.msgs)
	}
	if _, err := h.flow.Submit(context.Background()); !errors.Is(err, ErrNotStarted) {
		t.Errorf("Submit before recording = %v", err)
	}
}

func TestClosedFlowRejectsSteps(t *testing.T) {
	h := newHarness()
	h.start(t)
	if err := h.flow.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}
	if !h.rec.closed {
		t.Error("recorder not released")
	}
	if _, err := h.flow.Submit(context.Background()); !errors.Is(err, ErrFlowClosed) {
		t.Errorf("Submit after Close = %v", err)
	}
}

func TestJobRequestWithoutBudget(t *testing.T) {
	req := JobRequest(voice.ExtractedJob{Title: "x", ServiceCategory: "plumbing", Urgency: voice.UrgencyLow})
	if req.Budget != "" || req.Location != "" || req.Requirements == nil {
		t.Errorf("request = %+v", req)
	}
}

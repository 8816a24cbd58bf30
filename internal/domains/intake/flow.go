// Package intake runs the Quick Post flow: one recording is transcribed,
// the account holder is extracted, reviewed and signed up, then the job is
// extracted from the same transcript, reviewed and posted.
package intake

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/looplab/fsm"
	"github.com/xpanvictor/quickpost/internal/domains/jobposting"
	"github.com/xpanvictor/quickpost/internal/domains/user"
	"github.com/xpanvictor/quickpost/internal/domains/voice"
	"github.com/xpanvictor/quickpost/pkg/Logger"
	"github.com/xpanvictor/quickpost/pkg/io/recorder"
)

// Flow states. Each names the last step that completed.
const (
	StateIdle            = "idle"
	StateRecording       = "recording"
	StateTranscribing    = "transcribing"
	StateExtractingUser  = "extracting_user"
	StateReviewingUser   = "reviewing_user"
	StateCreatingAccount = "creating_account"
	StateExtractingJob   = "extracting_job"
	StateReviewingJob    = "reviewing_job"
	StatePostingJob      = "posting_job"
	StateDone            = "done"
)

const (
	eventRecord        = "record"
	eventTranscribe    = "transcribe"
	eventExtractUser   = "extract_user"
	eventReviewUser    = "review_user"
	eventCreateAccount = "create_account"
	eventExtractJob    = "extract_job"
	eventReviewJob     = "review_job"
	eventPostJob       = "post_job"
	eventFinish        = "finish"
	eventRedoUser      = "redo_user"
	eventRedoJob       = "redo_job"
	eventRerecord      = "rerecord"
)

// pipeline lists the events after recording in the order they run.
var pipeline = []string{
	eventTranscribe, eventExtractUser, eventReviewUser, eventCreateAccount,
	eventExtractJob, eventReviewJob, eventPostJob, eventFinish,
}

var (
	ErrDeclined    = errors.New("review declined")
	ErrDemoData    = errors.New("demo data cannot be submitted")
	ErrFlowClosed  = errors.New("intake flow closed")
	ErrNotStarted  = errors.New("recording not started")
	ErrFlowDone    = errors.New("intake flow already finished")
	ErrNoRecording = errors.New("no recording to transcribe")
)

type Recorder interface {
	Start(ctx context.Context) error
	Stop() (*recorder.Artifact, error)
	Close() error
}

// Backend is the remote side of the flow.
type Backend interface {
	Transcribe(ctx context.Context, audio []byte, mimeType string) (voice.Transcript, error)
	ExtractUser(ctx context.Context, tr voice.Transcript) (voice.UserResult, error)
	ExtractJob(ctx context.Context, tr voice.Transcript) (voice.JobResult, error)
	QuickSignup(ctx context.Context, req user.QuickSignupRequest) (*user.AuthResponse, error)
	CreateJobPosting(ctx context.Context, token string, req jobposting.CreateJobPostingRequest) (*jobposting.JobPosting, error)
}

// Reviewer shows extracted data to a human. Demo results are shown too but
// are never submitted, whatever the answer.
type Reviewer interface {
	ReviewUser(ctx context.Context, res voice.UserResult) (bool, error)
	ReviewJob(ctx context.Context, res voice.JobResult) (bool, error)
}

type Notifier interface {
	Toast(message string)
}

// Outcome is everything the flow produced so far. Nothing is rolled back on
// a later failure.
type Outcome struct {
	Transcript voice.Transcript
	User       voice.ExtractedUser
	Account    *user.AuthResponse
	Job        voice.ExtractedJob
	Posting    *jobposting.JobPosting
}

type Flow struct {
	recorder          Recorder
	backend           Backend
	reviewer          Reviewer
	notifier          Notifier
	temporaryPassword string
	logger            *Logger.Logger

	mu       sync.Mutex
	machine  *fsm.FSM
	artifact *recorder.Artifact
	outcome  Outcome
	failed   string
	stepErr  error
	closed   bool

	// results awaiting review
	pendingUser voice.UserResult
	pendingJob  voice.JobResult
}

type Deps struct {
	Recorder Recorder
	Backend  Backend
	Reviewer Reviewer
	Notifier Notifier
	Logger   *Logger.Logger
}

func NewFlow(deps Deps, temporaryPassword string) *Flow {
	if deps.Logger == nil {
		deps.Logger = Logger.NewNop()
	}
	f := &Flow{
		recorder:          deps.Recorder,
		backend:           deps.Backend,
		reviewer:          deps.Reviewer,
		notifier:          deps.Notifier,
		temporaryPassword: temporaryPassword,
		logger:            deps.Logger,
	}

	step := func(run func(context.Context) error) fsm.Callback {
		return func(ctx context.Context, e *fsm.Event) {
			if err := run(ctx); err != nil {
				f.stepErr = err
				e.Cancel(err)
			}
		}
	}

	f.machine = fsm.NewFSM(
		StateIdle,
		fsm.Events{
			{Name: eventRecord, Src: []string{StateIdle}, Dst: StateRecording},
			{Name: eventTranscribe, Src: []string{StateRecording}, Dst: StateTranscribing},
			{Name: eventExtractUser, Src: []string{StateTranscribing}, Dst: StateExtractingUser},
			{Name: eventReviewUser, Src: []string{StateExtractingUser}, Dst: StateReviewingUser},
			{Name: eventCreateAccount, Src: []string{StateReviewingUser}, Dst: StateCreatingAccount},
			{Name: eventExtractJob, Src: []string{StateCreatingAccount}, Dst: StateExtractingJob},
			{Name: eventReviewJob, Src: []string{StateExtractingJob}, Dst: StateReviewingJob},
			{Name: eventPostJob, Src: []string{StateReviewingJob}, Dst: StatePostingJob},
			{Name: eventFinish, Src: []string{StatePostingJob}, Dst: StateDone},
			{Name: eventRerecord, Src: []string{StateRecording}, Dst: StateIdle},
			{Name: eventRedoUser, Src: []string{StateExtractingUser}, Dst: StateTranscribing},
			{Name: eventRedoJob, Src: []string{StateExtractingJob}, Dst: StateCreatingAccount},
		},
		fsm.Callbacks{
			"before_" + eventRecord:        step(f.record),
			"before_" + eventTranscribe:    step(f.transcribe),
			"before_" + eventExtractUser:   step(f.extractUser),
			"before_" + eventReviewUser:    step(f.reviewUser),
			"before_" + eventCreateAccount: step(f.createAccount),
			"before_" + eventExtractJob:    step(f.extractJob),
			"before_" + eventReviewJob:     step(f.reviewJob),
			"before_" + eventPostJob:       step(f.postJob),
			"enter_state": func(_ context.Context, e *fsm.Event) {
				f.logger.Debugf("quick post: %s -> %s", e.Src, e.Dst)
			},
		},
	)
	return f
}

// Current returns the state of the flow.
func (f *Flow) Current() string {
	return f.machine.Current()
}

// Outcome returns what has been produced so far.
func (f *Flow) Outcome() Outcome {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.outcome
}

// Failed returns the step that failed last, or "" when none is pending.
func (f *Flow) Failed() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.failed
}

// Start begins recording.
func (f *Flow) Start(ctx context.Context) error {
	return f.fire(ctx, eventRecord)
}

// Submit stops the recording and runs every remaining step. When a step
// fails the flow stays on the step before it and the error is returned.
func (f *Flow) Submit(ctx context.Context) (Outcome, error) {
	switch f.Current() {
	case StateIdle:
		return f.Outcome(), ErrNotStarted
	case StateDone:
		return f.Outcome(), ErrFlowDone
	}

	for _, ev := range pipeline {
		if !f.machine.Can(ev) {
			continue
		}
		if err := f.fire(ctx, ev); err != nil {
			return f.Outcome(), err
		}
	}
	f.logger.Infof("quick post complete")
	return f.Outcome(), nil
}

// Retry re-runs the failed step and continues from there.
func (f *Flow) Retry(ctx context.Context) (Outcome, error) {
	if f.Current() == StateIdle {
		return f.Outcome(), f.Start(ctx)
	}
	return f.Submit(ctx)
}

// Close releases the microphone. Steps still running finish but their
// results are discarded.
func (f *Flow) Close() error {
	f.mu.Lock()
	f.closed = true
	f.mu.Unlock()
	if f.recorder == nil {
		return nil
	}
	return f.recorder.Close()
}

func (f *Flow) isClosed() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.closed
}

func (f *Flow) fire(ctx context.Context, event string) error {
	if f.isClosed() {
		return ErrFlowClosed
	}

	f.stepErr = nil
	err := f.machine.Event(ctx, event)
	if f.isClosed() {
		return ErrFlowClosed
	}

	if err != nil {
		stepErr := f.stepErr
		if stepErr == nil {
			stepErr = err
		}
		failed := event
		// rejected extractions are discarded so a retry extracts again
		if errors.Is(stepErr, ErrDemoData) || errors.Is(stepErr, ErrDeclined) {
			if redo, extract, ok := redoFor(event); ok {
				if rerr := f.machine.Event(ctx, redo); rerr != nil {
					f.logger.Errorf("quick post: failed to fall back from %s: %v", event, rerr)
				} else {
					failed = extract
				}
			}
		}
		// a recording that could not be finalized has to be made again
		if event == eventTranscribe && !f.hasArtifact() {
			if rerr := f.machine.Event(ctx, eventRerecord); rerr == nil {
				failed = eventRecord
			}
		}
		f.mu.Lock()
		f.failed = failed
		f.mu.Unlock()
		f.logger.Warnf("quick post step %s failed, staying in %s: %v", event, f.Current(), stepErr)
		f.toast(toastFor(event, stepErr))
		return fmt.Errorf("%s: %w", event, stepErr)
	}

	f.mu.Lock()
	f.failed = ""
	f.mu.Unlock()
	return nil
}

func (f *Flow) hasArtifact() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.artifact != nil
}

func redoFor(event string) (redo, extract string, ok bool) {
	switch event {
	case eventReviewUser:
		return eventRedoUser, eventExtractUser, true
	case eventReviewJob:
		return eventRedoJob, eventExtractJob, true
	}
	return "", "", false
}

func (f *Flow) toast(msg string) {
	if f.notifier != nil {
		f.notifier.Toast(msg)
	}
}

func (f *Flow) record(ctx context.Context) error {
	f.mu.Lock()
	f.artifact = nil
	f.mu.Unlock()
	return f.recorder.Start(ctx)
}

func (f *Flow) transcribe(ctx context.Context) error {
	f.mu.Lock()
	art := f.artifact
	f.mu.Unlock()

	if art == nil {
		var err error
		art, err = f.recorder.Stop()
		if err != nil {
			return err
		}
		if art == nil {
			return ErrNoRecording
		}
		f.mu.Lock()
		f.artifact = art
		f.mu.Unlock()
	}

	tr, err := f.backend.Transcribe(ctx, art.Data, art.MimeType)
	if err != nil {
		return err
	}
	f.mu.Lock()
	f.outcome.Transcript = tr
	f.artifact = nil
	f.mu.Unlock()
	return nil
}

func (f *Flow) extractUser(ctx context.Context) error {
	res, err := f.backend.ExtractUser(ctx, f.Outcome().Transcript)
	if err != nil {
		return err
	}
	f.mu.Lock()
	f.outcome.User = res.User
	f.mu.Unlock()
	if res.IsDemo() {
		f.logger.Warnf("user extraction returned demo data")
	}
	f.mu.Lock()
	f.pendingUser = res
	f.mu.Unlock()
	return nil
}

func (f *Flow) reviewUser(ctx context.Context) error {
	f.mu.Lock()
	res := f.pendingUser
	f.mu.Unlock()
	ok, err := f.reviewer.ReviewUser(ctx, res)
	if err != nil {
		return err
	}
	if res.IsDemo() {
		return ErrDemoData
	}
	if !ok {
		return ErrDeclined
	}
	return nil
}

func (f *Flow) createAccount(ctx context.Context) error {
	u := f.Outcome().User
	acct, err := f.backend.QuickSignup(ctx, user.QuickSignupRequest{
		FirstName: u.FirstName,
		LastName:  u.LastName,
		Mobile:    u.Mobile,
		Location: user.Location{
			Area:     u.Location.Area,
			District: u.Location.District,
			State:    u.Location.State,
		},
		Password: f.temporaryPassword,
	})
	if err != nil {
		return err
	}
	f.mu.Lock()
	f.outcome.Account = acct
	f.mu.Unlock()
	return nil
}

func (f *Flow) extractJob(ctx context.Context) error {
	res, err := f.backend.ExtractJob(ctx, f.Outcome().Transcript)
	if err != nil {
		return err
	}
	f.mu.Lock()
	f.outcome.Job = res.Job
	f.mu.Unlock()
	if res.IsDemo() {
		f.logger.Warnf("job extraction returned demo data")
	}
	f.mu.Lock()
	f.pendingJob = res
	f.mu.Unlock()
	return nil
}

func (f *Flow) reviewJob(ctx context.Context) error {
	f.mu.Lock()
	res := f.pendingJob
	f.mu.Unlock()
	ok, err := f.reviewer.ReviewJob(ctx, res)
	if err != nil {
		return err
	}
	if res.IsDemo() {
		return ErrDemoData
	}
	if !ok {
		return ErrDeclined
	}
	return nil
}

func (f *Flow) postJob(ctx context.Context) error {
	out := f.Outcome()
	if out.Account == nil {
		return fmt.Errorf("no account to post for")
	}
	posting, err := f.backend.CreateJobPosting(ctx, out.Account.Tokens.AccessToken, JobRequest(out.Job))
	if err != nil {
		return err
	}
	f.mu.Lock()
	f.outcome.Posting = posting
	f.mu.Unlock()
	return nil
}

// JobRequest flattens an extracted job for the job posting API.
func JobRequest(job voice.ExtractedJob) jobposting.CreateJobPostingRequest {
	reqs := job.Requirements
	if reqs == nil {
		reqs = []string{}
	}
	return jobposting.CreateJobPostingRequest{
		Title:            job.Title,
		Description:      job.Description,
		ServiceCategory:  job.ServiceCategory,
		Urgency:          string(job.Urgency),
		Budget:           job.Budget.String(),
		Location:         job.Location.String(),
		Requirements:     reqs,
		Timeframe:        job.Timeframe,
		OriginalLanguage: string(job.OriginalLanguage),
	}
}

func toastFor(event string, err error) string {
	var what string
	switch event {
	case eventRecord:
		what = "Could not start recording"
	case eventTranscribe:
		what = "Could not transcribe your recording"
	case eventExtractUser, eventExtractJob:
		what = "Could not understand the details"
	case eventReviewUser, eventReviewJob:
		if errors.Is(err, ErrDemoData) {
			return "Demo data shown. Please try again or fill in the form."
		}
		if errors.Is(err, ErrDeclined) {
			return "Okay, not submitted. You can try again."
		}
		what = "Review failed"
	case eventCreateAccount:
		what = "Could not create your account"
	case eventPostJob:
		what = "Could not post your job"
	default:
		what = "Something went wrong"
	}
	switch {
	case errors.Is(err, voice.ErrPermissionDenied):
		return what + ": microphone permission denied."
	case errors.Is(err, voice.ErrNetwork):
		return what + ": network error."
	}
	return what + ". Please retry."
}

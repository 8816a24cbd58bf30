package conversation

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/xpanvictor/quickpost/internal/domains/conversation/speech"
	"github.com/xpanvictor/quickpost/internal/gazetteer"
	"github.com/xpanvictor/quickpost/internal/matching"
	"github.com/xpanvictor/quickpost/pkg/Logger"
)

var (
	ErrRetriesExhausted = errors.New("conversation retries exhausted")
	ErrClosed           = errors.New("conversation closed")
)

// Recognition error kinds reported by speech recognisers.
const (
	KindNoSpeech = "no-speech"
	KindAborted  = "aborted"
)

type RecognitionError struct {
	Kind    string
	Message string
}

func (e *RecognitionError) Error() string {
	if e.Message == "" {
		return "recognition error: " + e.Kind
	}
	return fmt.Sprintf("recognition error: %s: %s", e.Kind, e.Message)
}

// Speaker starts playing u and later resolves it with End or Fail. Speak
// returns an error only when playback could not start.
type Speaker interface {
	Speak(ctx context.Context, u *speech.Utterance) error
}

// Listener waits for one finalized recognition result. Failures are
// *RecognitionError values.
type Listener interface {
	Listen(ctx context.Context) (string, error)
}

// Selections receives every accepted answer.
type Selections interface {
	SelectService(id, name string)
	SelectState(name string)
	SelectDistrict(name string)
	SetDescription(text string)
}

type Notifier interface {
	Toast(message string)
}

// Store persists dialog progress so a reconnecting client can continue.
type Store interface {
	Save(sessionID string, st State) error
}

// SessionRepository is a Store that can also restore and forget sessions.
type SessionRepository interface {
	Store
	Load(sessionID string) (State, bool, error)
	Delete(sessionID string) error
}

type Config struct {
	Thresholds    matching.Thresholds
	AdvanceDelay  time.Duration
	SpeechTimeout time.Duration
	ListenTimeout time.Duration
	// MaxRetries is the number of re-prompts allowed per step.
	MaxRetries int
}

func DefaultConfig() Config {
	return Config{
		Thresholds:    matching.DefaultThresholds,
		AdvanceDelay:  1500 * time.Millisecond,
		SpeechTimeout: 8 * time.Second,
		ListenTimeout: 15 * time.Second,
		MaxRetries:    3,
	}
}

type Driver struct {
	sessionID  string
	gaz        *gazetteer.Gazetteer
	speaker    Speaker
	listener   Listener
	selections Selections
	notifier   Notifier
	store      Store
	cfg        Config
	logger     *Logger.Logger

	resume chan struct{}

	mu       sync.Mutex
	closed   bool
	cancel   context.CancelFunc
	current  *speech.Utterance
	snapshot State
	seq      int
}

type Deps struct {
	Gazetteer  *gazetteer.Gazetteer
	Speaker    Speaker
	Listener   Listener
	Selections Selections
	Notifier   Notifier
	Store      Store
	Logger     *Logger.Logger
}

func NewDriver(sessionID string, deps Deps, cfg Config) *Driver {
	if deps.Gazetteer == nil {
		deps.Gazetteer = gazetteer.Default()
	}
	if deps.Logger == nil {
		deps.Logger = Logger.NewNop()
	}
	if cfg.MaxRetries < 1 {
		cfg.MaxRetries = 1
	}
	return &Driver{
		sessionID:  sessionID,
		gaz:        deps.Gazetteer,
		speaker:    deps.Speaker,
		listener:   deps.Listener,
		selections: deps.Selections,
		notifier:   deps.Notifier,
		store:      deps.Store,
		cfg:        cfg,
		logger:     deps.Logger.Session(sessionID),
		resume:     make(chan struct{}, 1),
	}
}

// Run drives the dialog from st until every step is answered, the retry
// budget of a step runs out, or the driver is closed.
func (d *Driver) Run(ctx context.Context, st State) (State, error) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	d.mu.Lock()
	if d.closed {
		d.mu.Unlock()
		return st, ErrClosed
	}
	d.cancel = cancel
	d.mu.Unlock()

	for !st.Complete() {
		next, err := d.runStep(ctx, st)
		if errors.Is(err, ErrRetriesExhausted) {
			return d.exhausted(ctx, next)
		}
		if err != nil {
			next.Status = StatusClosed
			d.commit(next)
			return next, err
		}
		st = next
	}

	st.Status = StatusDone
	d.commit(st)
	if err := d.say(ctx, closingPrompt); err != nil {
		return st, err
	}
	d.logger.Infof("conversation complete: %s in %s, %s", st.ServiceID, st.District, st.State)
	return st, nil
}

func (d *Driver) exhausted(ctx context.Context, st State) (State, error) {
	d.logger.Warnf("retries exhausted on step %d", st.Index)
	_ = d.say(ctx, exitPrompt)
	d.toast(exhaustedToast)
	st.Status = StatusFailed
	d.commit(st)
	return st, ErrRetriesExhausted
}

// runStep asks the current question until an answer is accepted.
func (d *Driver) runStep(ctx context.Context, st State) (State, error) {
	step, _ := st.Step()
	prompt := step.Prompt
	if st.Retries > 0 {
		prompt = d.retryPrompt(step, st)
	}

	for {
		st.Status = StatusSpeaking
		d.commit(st)
		if err := d.say(ctx, prompt); err != nil {
			return st, err
		}

		st.Status = StatusListening
		d.commit(st)
		text, err := d.listen(ctx)
		if err != nil {
			st, prompt, err = d.onRecognitionError(ctx, st, step, err)
			if err != nil {
				return st, err
			}
			continue
		}

		var advanced bool
		st, prompt, advanced, err = d.onAnswer(ctx, st, step, text)
		if err != nil || advanced {
			return st, err
		}
	}
}

func (d *Driver) onRecognitionError(ctx context.Context, st State, step Step, err error) (State, string, error) {
	var re *RecognitionError
	if !errors.As(err, &re) {
		return st, "", err
	}

	switch re.Kind {
	case KindNoSpeech:
		st, err := d.retry(st)
		return st, noSpeechPrefix + step.Prompt, err
	case KindAborted:
		d.logger.Debugf("recognition aborted on step %d, waiting for resume", st.Index)
	default:
		d.logger.Warnf("recognition failed on step %d: %v", st.Index, re)
		d.toast(fmt.Sprintf(recognitionToast, re.Kind))
	}

	st.Status = StatusIdle
	d.commit(st)
	if err := d.waitResume(ctx); err != nil {
		return st, "", err
	}
	return st, step.Prompt, nil
}

// onAnswer matches one finalized utterance against the step's reference set.
func (d *Driver) onAnswer(ctx context.Context, st State, step Step, text string) (State, string, bool, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		st, err := d.retry(st)
		return st, noSpeechPrefix + step.Prompt, false, err
	}

	switch step.Field {
	case FieldDescription:
		st, err := d.accept(ctx, st, step, text, "")
		return st, "", err == nil, err

	case FieldService:
		svc, ok := matching.MatchService(text, d.gaz.Services)
		if !ok {
			st, err := d.retry(st)
			return st, d.retryPrompt(step, st), false, err
		}
		st, err := d.accept(ctx, st, step, svc.Name, svc.ID)
		return st, "", err == nil, err
	}

	res := matching.MatchLocation(text, d.candidates(step, st), d.cfg.Thresholds)
	d.logger.Debugf("step %s: %q -> %q score %.3f (%s)", step.Field, text, res.Candidate, res.Score, res.Decision)

	switch res.Decision {
	case matching.Accept:
		st, err := d.accept(ctx, st, step, res.Candidate, "")
		return st, "", err == nil, err
	case matching.Confirm:
		return d.confirm(ctx, st, step, res.Candidate)
	default:
		st, err := d.retry(st)
		return st, d.retryPrompt(step, st), false, err
	}
}

func (d *Driver) confirm(ctx context.Context, st State, step Step, candidate string) (State, string, bool, error) {
	st.Status = StatusConfirming
	st.Pending = candidate
	d.commit(st)
	if err := d.say(ctx, didYouMeanPrompt(candidate)); err != nil {
		return st, "", false, err
	}

	answer, err := d.listen(ctx)
	st.Pending = ""
	if err != nil {
		st, prompt, err := d.onRecognitionError(ctx, st, step, err)
		return st, prompt, false, err
	}

	if matching.IsAffirmative(answer) {
		st, err := d.accept(ctx, st, step, candidate, "")
		return st, "", err == nil, err
	}
	st, err = d.retry(st)
	return st, d.retryPrompt(step, st), false, err
}

// accept records value for the step, speaks a confirmation and moves on by
// exactly one step.
func (d *Driver) accept(ctx context.Context, st State, step Step, value, id string) (State, error) {
	switch step.Field {
	case FieldService:
		st.ServiceID, st.ServiceName = id, value
		if d.selections != nil {
			d.selections.SelectService(id, value)
		}
	case FieldState:
		if st.State != value {
			st.District = ""
		}
		st.State = value
		if d.selections != nil {
			d.selections.SelectState(value)
		}
	case FieldDistrict:
		st.District = value
		if d.selections != nil {
			d.selections.SelectDistrict(value)
		}
	case FieldDescription:
		st.Description = value
		if d.selections != nil {
			d.selections.SetDescription(value)
		}
	}

	if step.Field != FieldDescription {
		if err := d.say(ctx, confirmationPrompt(value)); err != nil {
			return st, err
		}
	}
	if err := d.sleep(ctx, d.cfg.AdvanceDelay); err != nil {
		return st, err
	}

	st.Index++
	st.Retries = 0
	st.Pending = ""
	d.commit(st)
	return st, nil
}

func (d *Driver) retry(st State) (State, error) {
	st.Retries++
	if st.Retries > d.cfg.MaxRetries {
		return st, ErrRetriesExhausted
	}
	return st, nil
}

func (d *Driver) candidates(step Step, st State) []string {
	if step.Field == FieldState {
		return d.gaz.StateNames()
	}
	if districts, ok := d.gaz.Districts(st.State); ok {
		return districts
	}
	all := make([]string, 0)
	for _, s := range d.gaz.States {
		all = append(all, s.Districts...)
	}
	return all
}

func (d *Driver) retryPrompt(step Step, st State) string {
	switch step.Field {
	case FieldService:
		names := make([]string, 0, len(d.gaz.Services))
		for _, s := range d.gaz.Services {
			names = append(names, s.Name)
		}
		return "Sorry, I didn't catch which service you need. You can say, for example, " + examples(names) + "."
	case FieldState:
		return "Sorry, I couldn't find that state. For example, say " + examples(d.gaz.StateNames()) + "."
	case FieldDistrict:
		where := st.State
		if where == "" {
			where = "your state"
		}
		return "Sorry, I couldn't find that district in " + where + ". For example, say " + examples(d.candidates(step, st)) + "."
	}
	return "Please tell me in a few words what work you need done."
}

// say speaks text and waits for the utterance to resolve. Playback failures
// and timeouts are not errors: listening starts either way.
func (d *Driver) say(ctx context.Context, text string) error {
	if err := ctx.Err(); err != nil {
		return d.ctxErr(err)
	}

	d.mu.Lock()
	d.seq++
	u := speech.New(d.sessionID+"-"+strconv.Itoa(d.seq), text, d.cfg.SpeechTimeout)
	d.current = u
	d.mu.Unlock()

	if err := d.speaker.Speak(ctx, u); err != nil {
		u.Fail(err)
	}
	r := u.Wait(ctx)

	d.mu.Lock()
	if d.current == u {
		d.current = nil
	}
	d.mu.Unlock()

	switch r.Outcome {
	case speech.Failed:
		d.logger.Warnf("speech failed for %s: %v", u.ID, r.Err)
	case speech.TimedOut:
		d.logger.Debugf("speech timed out for %s", u.ID)
	}
	if err := ctx.Err(); err != nil {
		return d.ctxErr(err)
	}
	return nil
}

func (d *Driver) listen(ctx context.Context) (string, error) {
	lctx := ctx
	if d.cfg.ListenTimeout > 0 {
		var cancel context.CancelFunc
		lctx, cancel = context.WithTimeout(ctx, d.cfg.ListenTimeout)
		defer cancel()
	}

	text, err := d.listener.Listen(lctx)
	// a result arriving after close is dropped
	if cerr := ctx.Err(); cerr != nil {
		return "", d.ctxErr(cerr)
	}
	if err != nil && errors.Is(err, context.DeadlineExceeded) {
		return "", &RecognitionError{Kind: KindNoSpeech, Message: "listen timeout"}
	}
	return text, err
}

func (d *Driver) waitResume(ctx context.Context) error {
	select {
	case <-d.resume:
		return nil
	case <-ctx.Done():
		return d.ctxErr(ctx.Err())
	}
}

func (d *Driver) sleep(ctx context.Context, delay time.Duration) error {
	if delay <= 0 {
		return nil
	}
	t := time.NewTimer(delay)
	defer t.Stop()
	select {
	case <-t.C:
		return nil
	case <-ctx.Done():
		return d.ctxErr(ctx.Err())
	}
}

func (d *Driver) ctxErr(err error) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.closed {
		return ErrClosed
	}
	return err
}

func (d *Driver) toast(msg string) {
	if d.notifier != nil {
		d.notifier.Toast(msg)
	}
}

func (d *Driver) commit(st State) {
	d.mu.Lock()
	d.snapshot = st
	d.mu.Unlock()
	if d.store != nil {
		if err := d.store.Save(d.sessionID, st); err != nil {
			d.logger.Warnf("failed to save conversation state: %v", err)
		}
	}
}

// Resume leaves the idle state entered after an aborted or failed recognition.
func (d *Driver) Resume() {
	select {
	case d.resume <- struct{}{}:
	default:
	}
}

// Close cancels in-flight speech and ends Run with ErrClosed. Results that
// arrive afterwards are ignored.
func (d *Driver) Close() {
	d.mu.Lock()
	if d.closed {
		d.mu.Unlock()
		return
	}
	d.closed = true
	cancel := d.cancel
	current := d.current
	d.mu.Unlock()

	if current != nil {
		current.Cancel()
	}
	if cancel != nil {
		cancel()
	}
}

// Snapshot returns the latest committed state.
func (d *Driver) Snapshot() State {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.snapshot
}

func (d *Driver) SessionID() string { return d.sessionID }

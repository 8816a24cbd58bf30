// Package speech models one spoken prompt as a future that resolves exactly
// once: when playback ends, when it fails, when its timeout elapses, or when
// it is cancelled, whichever happens first.
package speech

import (
	"context"
	"sync"
	"time"
)

type Outcome int

const (
	Pending Outcome = iota
	Ended
	Failed
	TimedOut
	Cancelled
)

func (o Outcome) String() string {
	switch o {
	case Ended:
		return "ended"
	case Failed:
		return "failed"
	case TimedOut:
		return "timed_out"
	case Cancelled:
		return "cancelled"
	}
	return "pending"
}

type Result struct {
	Outcome Outcome
	Err     error
}

type Utterance struct {
	ID   string
	Text string

	once   sync.Once
	done   chan struct{}
	result Result
	timer  *time.Timer
}

// New starts the utterance clock. A zero timeout never times out.
func New(id, text string, timeout time.Duration) *Utterance {
	u := &Utterance{ID: id, Text: text, done: make(chan struct{})}
	if timeout > 0 {
		u.timer = time.AfterFunc(timeout, func() { u.resolve(Result{Outcome: TimedOut}) })
	}
	return u
}

// resolve records r if nothing was recorded yet and reports whether it won.
func (u *Utterance) resolve(r Result) bool {
	won := false
	u.once.Do(func() {
		u.result = r
		won = true
		if u.timer != nil {
			u.timer.Stop()
		}
		close(u.done)
	})
	return won
}

// End marks playback as finished.
func (u *Utterance) End() bool { return u.resolve(Result{Outcome: Ended}) }

// Fail marks playback as failed.
func (u *Utterance) Fail(err error) bool { return u.resolve(Result{Outcome: Failed, Err: err}) }

// Cancel abandons the utterance.
func (u *Utterance) Cancel() bool { return u.resolve(Result{Outcome: Cancelled}) }

func (u *Utterance) Done() <-chan struct{} { return u.done }

// Result returns the winning resolution, or Pending before Done is closed.
func (u *Utterance) Result() Result {
	select {
	case <-u.done:
		return u.result
	default:
		return Result{Outcome: Pending}
	}
}

// Wait blocks until the utterance resolves. A done context cancels it.
func (u *Utterance) Wait(ctx context.Context) Result {
	select {
	case <-u.done:
	case <-ctx.Done():
		u.Cancel()
		<-u.done
	}
	return u.result
}

package speech

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"
)

func TestFirstResolutionWins(t *testing.T) {
	u := New("u1", "hello", 0)
	if !u.End() {
		t.Fatal("first resolution should win")
	}
	if u.Fail(errors.New("late")) || u.Cancel() {
		t.Fatal("later resolutions must be ignored")
	}
	if r := u.Result(); r.Outcome != Ended || r.Err != nil {
		t.Errorf("result = %+v", r)
	}
}

func TestTimeoutResolves(t *testing.T) {
	u := New("u1", "hello", 10*time.Millisecond)
	r := u.Wait(context.Background())
	if r.Outcome != TimedOut {
		t.Fatalf("outcome = %s", r.Outcome)
	}
	if u.End() {
		t.Error("End after timeout must not win")
	}
}

func TestPendingBeforeResolution(t *testing.T) {
	u := New("u1", "hello", time.Hour)
	if u.Result().Outcome != Pending {
		t.Fatal("expected pending")
	}
	u.Cancel()
}

func TestWaitCancelledByContext(t *testing.T) {
	u := New("u1", "hello", time.Hour)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if r := u.Wait(ctx); r.Outcome != Cancelled {
		t.Fatalf("outcome = %s", r.Outcome)
	}
}

func TestConcurrentResolversExactlyOneWins(t *testing.T) {
	u := New("u1", "hello", time.Millisecond)
	var wg sync.WaitGroup
	var mu sync.Mutex
	wins := 0
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			var won bool
			if i%2 == 0 {
				won = u.End()
			} else {
				won = u.Fail(errors.New("x"))
			}
			if won {
				mu.Lock()
				wins++
				mu.Unlock()
			}
		}(i)
	}
	wg.Wait()
	<-u.Done()
	// the timer may have won instead of any goroutine
	if wins > 1 {
		t.Fatalf("%d resolvers won", wins)
	}
	if wins == 0 && u.Result().Outcome != TimedOut {
		t.Fatalf("no winner recorded: %+v", u.Result())
	}
}

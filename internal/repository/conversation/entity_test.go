package conversation

import (
	"testing"

	"github.com/xpanvictor/quickpost/internal/domains/conversation"
)

func TestSessionEntityRoundTrip(t *testing.T) {
	st := conversation.State{
		Index:       2,
		Retries:     1,
		Status:      conversation.StatusConfirming,
		ServiceID:   "plumbing",
		ServiceName: "Plumbing",
		State:       "Tamil Nadu",
		Pending:     "Dindigul",
		Language:    "ta",
	}

	var e SessionEntity
	e.FromDomain("abc", st)
	if e.Key() != "conversation:abc" {
		t.Errorf("key = %q", e.Key())
	}

	got := e.ToDomain()
	if got.Pending != "" {
		t.Errorf("pending confirmation should not be restored, got %q", got.Pending)
	}
	st.Pending = ""
	if got != st {
		t.Errorf("restored %+v, want %+v", got, st)
	}
}

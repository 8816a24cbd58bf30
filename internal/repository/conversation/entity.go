package conversation

import (
	"fmt"
	"time"

	"github.com/xpanvictor/quickpost/internal/domains/conversation"
	"github.com/xpanvictor/quickpost/internal/domains/voice"
)

// SessionEntity is the stored shape of a conversation in progress.
type SessionEntity struct {
	SessionID   string    `json:"sessionId"`
	Index       int       `json:"index"`
	Retries     int       `json:"retries"`
	Status      string    `json:"status"`
	ServiceID   string    `json:"serviceId,omitempty"`
	ServiceName string    `json:"serviceName,omitempty"`
	State       string    `json:"state,omitempty"`
	District    string    `json:"district,omitempty"`
	Description string    `json:"description,omitempty"`
	Language    string    `json:"language,omitempty"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

func SessionKey(sessionID string) string {
	return fmt.Sprintf("conversation:%s", sessionID)
}

func (e *SessionEntity) Key() string {
	return SessionKey(e.SessionID)
}

// FromDomain drops the pending confirmation; a restored session asks the
// step question again.
func (e *SessionEntity) FromDomain(sessionID string, st conversation.State) {
	e.SessionID = sessionID
	e.Index = st.Index
	e.Retries = st.Retries
	e.Status = string(st.Status)
	e.ServiceID = st.ServiceID
	e.ServiceName = st.ServiceName
	e.State = st.State
	e.District = st.District
	e.Description = st.Description
	e.Language = string(st.Language)
	e.UpdatedAt = time.Now().UTC()
}

func (e *SessionEntity) ToDomain() conversation.State {
	return conversation.State{
		Index:       e.Index,
		Retries:     e.Retries,
		Status:      conversation.Status(e.Status),
		ServiceID:   e.ServiceID,
		ServiceName: e.ServiceName,
		State:       e.State,
		District:    e.District,
		Description: e.Description,
		Language:    voice.LanguageCode(e.Language),
	}
}

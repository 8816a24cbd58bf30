package websocket

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/xpanvictor/quickpost/internal/domains/conversation"
	"github.com/xpanvictor/quickpost/internal/domains/conversation/speech"
	"github.com/xpanvictor/quickpost/pkg/Logger"
)

// Synthesizer turns prompt text into audio.
type Synthesizer interface {
	Synthesize(ctx context.Context, text, lang string) ([]byte, string, error)
}

type recognition struct {
	text string
	err  error
}

// Session is one connected conversation client. It is the driver's speaker,
// listener, selection sink and notifier.
type Session struct {
	SessionID string
	Conn      *websocket.Conn
	Language  string

	tts    Synthesizer
	logger *Logger.Logger

	// State
	ConnectedAt time.Time
	lastActive  time.Time
	IsActive    bool
	mutex       sync.RWMutex

	writeMu    sync.Mutex
	utterances map[string]*speech.Utterance
	results    chan recognition
}

// NewSession creates a new WebSocket session. An empty id gets a fresh one.
func NewSession(sessionID string, conn *websocket.Conn, tts Synthesizer, language string, logger *Logger.Logger) *Session {
	if sessionID == "" {
		sessionID = uuid.New().String()
	}
	return &Session{
		SessionID:   sessionID,
		Conn:        conn,
		Language:    language,
		tts:         tts,
		logger:      logger.Session(sessionID),
		ConnectedAt: time.Now(),
		lastActive:  time.Now(),
		IsActive:    true,
		utterances:  make(map[string]*speech.Utterance),
		results:     make(chan recognition, 4),
	}
}

// SendWebSocketMessage sends a message to the WebSocket client
func (s *Session) SendWebSocketMessage(msgType MessageType, data interface{}) error {
	if !s.IsAlive() {
		return fmt.Errorf("session not active")
	}

	msg := WSMessage{
		Type:      msgType,
		Data:      data,
		SessionID: s.SessionID,
		Timestamp: time.Now(),
	}

	s.writeMu.Lock()
	defer s.writeMu.Unlock()
	return s.Conn.WriteJSON(msg)
}

// SendError sends an error message to the client
func (s *Session) SendError(code, message string) error {
	return s.SendWebSocketMessage(MessageTypeError, ErrorMessage{
		Code:    code,
		Message: message,
	})
}

// Speak implements conversation.Speaker
func (s *Session) Speak(ctx context.Context, u *speech.Utterance) error {
	msg := PromptMessage{UtteranceID: u.ID, Text: u.Text, Language: s.Language}
	if s.tts != nil {
		audio, mime, err := s.tts.Synthesize(ctx, u.Text, s.Language)
		if err != nil {
			s.logger.Warnf("prompt synthesis failed, sending text only: %v", err)
		} else {
			msg.Audio, msg.MimeType = audio, mime
		}
	}

	s.mutex.Lock()
	s.utterances[u.ID] = u
	s.mutex.Unlock()

	if err := s.SendWebSocketMessage(MessageTypePrompt, msg); err != nil {
		s.forget(u.ID)
		return err
	}
	return nil
}

// Listen implements conversation.Listener
func (s *Session) Listen(ctx context.Context) (string, error) {
	// results from an earlier, abandoned listen are stale
	for drained := false; !drained; {
		select {
		case <-s.results:
		default:
			drained = true
		}
	}

	if err := s.SendWebSocketMessage(MessageTypeListen, nil); err != nil {
		return "", err
	}

	select {
	case r := <-s.results:
		return r.text, r.err
	case <-ctx.Done():
		return "", ctx.Err()
	}
}

// SelectService implements conversation.Selections
func (s *Session) SelectService(id, name string) {
	s.sendSelection(conversation.FieldService, name, id)
}

// SelectState implements conversation.Selections
func (s *Session) SelectState(name string) {
	s.sendSelection(conversation.FieldState, name, "")
}

// SelectDistrict implements conversation.Selections
func (s *Session) SelectDistrict(name string) {
	s.sendSelection(conversation.FieldDistrict, name, "")
}

// SetDescription implements conversation.Selections
func (s *Session) SetDescription(text string) {
	s.sendSelection(conversation.FieldDescription, text, "")
}

func (s *Session) sendSelection(field conversation.Field, value, id string) {
	if err := s.SendWebSocketMessage(MessageTypeSelection, SelectionMessage{Field: field, Value: value, ID: id}); err != nil {
		s.logger.Debugf("failed to send selection: %v", err)
	}
}

// Toast implements conversation.Notifier
func (s *Session) Toast(message string) {
	if err := s.SendWebSocketMessage(MessageTypeToast, ToastMessage{Message: message}); err != nil {
		s.logger.Debugf("failed to send toast: %v", err)
	}
}

// SpeechEnded resolves an utterance as played.
func (s *Session) SpeechEnded(id string) {
	if u := s.forget(id); u != nil {
		u.End()
	}
}

// SpeechFailed resolves an utterance as failed.
func (s *Session) SpeechFailed(id, message string) {
	if u := s.forget(id); u != nil {
		u.Fail(fmt.Errorf("playback error: %s", message))
	}
}

// Recognized delivers a recognition outcome to the pending Listen, if any.
func (s *Session) Recognized(text string, err error) {
	select {
	case s.results <- recognition{text: text, err: err}:
	default:
		s.logger.Debugf("dropping recognition result, nobody is listening")
	}
}

func (s *Session) forget(id string) *speech.Utterance {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	u := s.utterances[id]
	delete(s.utterances, id)
	return u
}

// UpdateLastActive updates the last activity timestamp
func (s *Session) UpdateLastActive() {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	s.lastActive = time.Now()
}

// Close closes the session and cancels every unresolved utterance
func (s *Session) Close() error {
	s.mutex.Lock()
	if !s.IsActive {
		s.mutex.Unlock()
		return nil
	}
	s.IsActive = false
	pending := s.utterances
	s.utterances = make(map[string]*speech.Utterance)
	s.mutex.Unlock()

	for _, u := range pending {
		u.Cancel()
	}
	return s.Conn.Close()
}

// IsExpired checks if the session has expired based on inactivity
func (s *Session) IsExpired(timeout time.Duration) bool {
	s.mutex.RLock()
	defer s.mutex.RUnlock()
	return time.Since(s.lastActive) > timeout
}

// IsAlive checks if the session is active
func (s *Session) IsAlive() bool {
	s.mutex.RLock()
	defer s.mutex.RUnlock()
	return s.IsActive
}

// LastActive returns the last activity timestamp
func (s *Session) LastActive() time.Time {
	s.mutex.RLock()
	defer s.mutex.RUnlock()
	return s.lastActive
}

package websocket

import (
	"encoding/json"
	"time"

	"github.com/xpanvictor/quickpost/internal/domains/conversation"
	"github.com/xpanvictor/quickpost/internal/domains/voice"
)

// MessageType defines the type of WebSocket message
type MessageType string

// Server to client.
const (
	MessageTypeInit      MessageType = "init"
	MessageTypePrompt    MessageType = "prompt"
	MessageTypeListen    MessageType = "listen"
	MessageTypeState     MessageType = "state"
	MessageTypeSelection MessageType = "selection"
	MessageTypeToast     MessageType = "toast"
	MessageTypeDone      MessageType = "done"
	MessageTypeError     MessageType = "error"
)

// Client to server.
const (
	MessageTypeSpeechEnd         MessageType = "speech_end"
	MessageTypeSpeechError       MessageType = "speech_error"
	MessageTypeRecognitionResult MessageType = "recognition_result"
	MessageTypeRecognitionError  MessageType = "recognition_error"
	MessageTypeResume            MessageType = "resume"
	MessageTypeClose             MessageType = "close"
)

// WSMessage represents the structure of outgoing WebSocket messages
type WSMessage struct {
	Type      MessageType `json:"type"`
	Data      interface{} `json:"data,omitempty"`
	SessionID string      `json:"sessionId,omitempty"`
	Timestamp time.Time   `json:"timestamp"`
}

// InboundMessage is a client message; Data is decoded per type.
type InboundMessage struct {
	Type MessageType     `json:"type"`
	Data json.RawMessage `json:"data,omitempty"`
}

// InitMessage acknowledges the connection
type InitMessage struct {
	SessionID string             `json:"sessionId"`
	Resumed   bool               `json:"resumed"`
	State     conversation.State `json:"state"`
}

// PromptMessage asks the client to play one utterance and report
// speech_end or speech_error with the same id.
type PromptMessage struct {
	UtteranceID string `json:"utteranceId"`
	Text        string `json:"text"`
	// Audio is empty when synthesis failed; the client may speak Text itself.
	Audio    []byte `json:"audio,omitempty"`
	MimeType string `json:"mimeType,omitempty"`
	Language string `json:"language,omitempty"`
}

// SelectionMessage reports an accepted answer
type SelectionMessage struct {
	Field conversation.Field `json:"field"`
	Value string             `json:"value"`
	ID    string             `json:"id,omitempty"`
}

// ToastMessage is a transient notification
type ToastMessage struct {
	Message string `json:"message"`
}

// DoneMessage ends the dialog
type DoneMessage struct {
	State conversation.State  `json:"state"`
	Job   *voice.ExtractedJob `json:"job,omitempty"`
}

// ErrorMessage contains error information
type ErrorMessage struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// SpeechReport is sent by the client when playback of an utterance ends or fails
type SpeechReport struct {
	UtteranceID string `json:"utteranceId"`
	Message     string `json:"message,omitempty"`
}

// RecognitionResult carries one finalized transcript
type RecognitionResult struct {
	Transcript string `json:"transcript"`
}

// RecognitionErrorReport mirrors the browser recognition error event
type RecognitionErrorReport struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}

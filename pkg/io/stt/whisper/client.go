package whisper

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strings"
	"time"

	"github.com/xpanvictor/quickpost/internal/domains/voice"
	"github.com/xpanvictor/quickpost/pkg/Logger"
)

// TranscriptionResponse represents the response from Whisper STT service
type TranscriptionResponse struct {
	Text     string                 `json:"text"`
	Language string                 `json:"language"`
	Segments []TranscriptionSegment `json:"segments,omitempty"`
}

// TranscriptionSegment represents a timed segment of transcription
type TranscriptionSegment struct {
	Text  string  `json:"text"`
	Start float64 `json:"start"`
	End   float64 `json:"end"`
	ID    int     `json:"id"`
}

// WhisperClient talks to a whisper-asr-webservice instance.
type WhisperClient struct {
	baseURL    string
	httpClient *http.Client
	logger     *Logger.Logger
}

// NewWhisperClient creates a new Whisper client
func NewWhisperClient(baseURL string, timeout time.Duration, logger *Logger.Logger) *WhisperClient {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	if logger == nil {
		logger = Logger.NewNop()
	}
	return &WhisperClient{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: timeout},
		logger:     logger,
	}
}

// Transcribe uploads one finalized recording and lets whisper detect the
// language. It makes exactly one request; empty speech is a failure.
func (w *WhisperClient) Transcribe(ctx context.Context, audio []byte, mimeType string) (voice.Transcript, error) {
	if len(audio) == 0 {
		return voice.Transcript{}, fmt.Errorf("%w: no audio provided", voice.ErrTranscriptionFailed)
	}

	var body bytes.Buffer
	writer := multipart.NewWriter(&body)

	part, err := writer.CreateFormFile("audio_file", "audio"+extensionFor(mimeType))
	if err != nil {
		return voice.Transcript{}, fmt.Errorf("failed to create form file: %w", err)
	}
	if _, err := part.Write(audio); err != nil {
		return voice.Transcript{}, fmt.Errorf("failed to write audio data: %w", err)
	}
	if err := writer.Close(); err != nil {
		return voice.Transcript{}, fmt.Errorf("failed to close multipart writer: %w", err)
	}

	requestURL := w.baseURL + "/asr?encode=true&task=transcribe&output=json"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, requestURL, &body)
	if err != nil {
		return voice.Transcript{}, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())

	resp, err := w.httpClient.Do(req)
	if err != nil {
		return voice.Transcript{}, fmt.Errorf("%w: %w: %v", voice.ErrTranscriptionFailed, voice.ErrNetwork, err)
	}
	defer resp.Body.Close()

	responseBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return voice.Transcript{}, fmt.Errorf("%w: failed to read response body: %v", voice.ErrTranscriptionFailed, err)
	}

	if resp.StatusCode != http.StatusOK {
		w.logger.Errorf("Whisper service error (status %d): %s", resp.StatusCode, string(responseBody))
		return voice.Transcript{}, fmt.Errorf("%w: whisper service returned status %d", voice.ErrTranscriptionFailed, resp.StatusCode)
	}

	var transcription TranscriptionResponse
	if err := json.Unmarshal(responseBody, &transcription); err != nil {
		w.logger.Errorf("Failed to decode whisper response: %q", string(responseBody))
		return voice.Transcript{}, fmt.Errorf("%w: failed to decode response: %v", voice.ErrTranscriptionFailed, err)
	}

	text := strings.TrimSpace(transcription.Text)
	if text == "" {
		return voice.Transcript{}, fmt.Errorf("%w: no speech detected", voice.ErrTranscriptionFailed)
	}

	w.logger.Debugf("Whisper transcription: %s (language: %s)", text, transcription.Language)

	return voice.Transcript{
		Text:             text,
		DetectedLanguage: voice.LanguageCode(strings.ToLower(transcription.Language)),
	}, nil
}

func extensionFor(mimeType string) string {
	mt := strings.ToLower(mimeType)
	if i := strings.Index(mt, ";"); i >= 0 {
		mt = mt[:i]
	}
	switch strings.TrimSpace(mt) {
	case "audio/webm":
		return ".webm"
	case "audio/ogg":
		return ".ogg"
	case "audio/mpeg", "audio/mp3":
		return ".mp3"
	case "audio/mp4", "audio/m4a", "audio/x-m4a":
		return ".m4a"
	default:
		return ".wav"
	}
}

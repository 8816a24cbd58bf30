// Package voiceclient calls the quickpost API on behalf of the Quick Post
// flow. Every call is a single request; nothing is retried here.
package voiceclient

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/xpanvictor/quickpost/internal/domains/jobposting"
	"github.com/xpanvictor/quickpost/internal/domains/user"
	"github.com/xpanvictor/quickpost/internal/domains/voice"
	"github.com/xpanvictor/quickpost/pkg/Logger"
)

// ErrConflict is returned when the server reports a duplicate resource.
var ErrConflict = errors.New("conflict")

// APIError is the decoded error body of a failed call.
type APIError struct {
	Status  int    `json:"-"`
	Message string `json:"error"`
	Details string `json:"details,omitempty"`
}

func (e *APIError) Error() string {
	if e.Details != "" {
		return fmt.Sprintf("api error %d: %s (%s)", e.Status, e.Message, e.Details)
	}
	return fmt.Sprintf("api error %d: %s", e.Status, e.Message)
}

type Client struct {
	baseURL    string
	httpClient *http.Client
	logger     *Logger.Logger
}

func New(baseURL string, timeout time.Duration, logger *Logger.Logger) *Client {
	if timeout <= 0 {
		timeout = 60 * time.Second
	}
	if logger == nil {
		logger = Logger.NewNop()
	}
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: timeout},
		logger:     logger,
	}
}

// Transcribe sends one finished recording. Every failure wraps
// voice.ErrTranscriptionFailed.
func (c *Client) Transcribe(ctx context.Context, audio []byte, mimeType string) (voice.Transcript, error) {
	req := voice.TranscribeRequest{
		AudioData: base64.StdEncoding.EncodeToString(audio),
		MimeType:  mimeType,
	}
	var tr voice.Transcript
	if err := c.do(ctx, "/api/voice/transcribe", "", req, &tr); err != nil {
		return voice.Transcript{}, fmt.Errorf("%w: %w", voice.ErrTranscriptionFailed, err)
	}
	if strings.TrimSpace(tr.Text) == "" {
		return voice.Transcript{}, fmt.Errorf("%w: empty transcript", voice.ErrTranscriptionFailed)
	}
	return tr, nil
}

// ExtractJob implements the job mode of the field extractor.
func (c *Client) ExtractJob(ctx context.Context, tr voice.Transcript) (voice.JobResult, error) {
	var res voice.JobResult
	if err := c.do(ctx, "/api/voice/extract-job", "", extractRequest(tr), &res); err != nil {
		return voice.JobResult{}, extractionError(err)
	}
	return res, nil
}

// ExtractUser implements the user mode of the field extractor.
func (c *Client) ExtractUser(ctx context.Context, tr voice.Transcript) (voice.UserResult, error) {
	var res voice.UserResult
	if err := c.do(ctx, "/api/voice/extract-user", "", extractRequest(tr), &res); err != nil {
		return voice.UserResult{}, extractionError(err)
	}
	return res, nil
}

func (c *Client) QuickSignup(ctx context.Context, req user.QuickSignupRequest) (*user.AuthResponse, error) {
	var res user.AuthResponse
	if err := c.do(ctx, "/api/auth/quick-signup", "", req, &res); err != nil {
		return nil, fmt.Errorf("quick signup: %w", err)
	}
	return &res, nil
}

func (c *Client) CreateJobPosting(ctx context.Context, token string, req jobposting.CreateJobPostingRequest) (*jobposting.JobPosting, error) {
	var res jobposting.JobPosting
	if err := c.do(ctx, "/api/job-postings", token, req, &res); err != nil {
		return nil, fmt.Errorf("create job posting: %w", err)
	}
	return &res, nil
}

func extractRequest(tr voice.Transcript) voice.ExtractRequest {
	return voice.ExtractRequest{Text: tr.Text, DetectedLanguage: tr.DetectedLanguage}
}

func extractionError(err error) error {
	return fmt.Errorf("%w: %w", voice.ErrExtractionFailed, err)
}

func (c *Client) do(ctx context.Context, path, token string, in, out any) error {
	body, err := json.Marshal(in)
	if err != nil {
		return fmt.Errorf("failed to encode request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", voice.ErrNetwork, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("%w: failed to read response: %v", voice.ErrNetwork, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		apiErr := &APIError{Status: resp.StatusCode}
		if json.Unmarshal(raw, apiErr) != nil || apiErr.Message == "" {
			apiErr.Message = http.StatusText(resp.StatusCode)
		}
		c.logger.Debugf("POST %s failed: %v", path, apiErr)
		switch {
		case resp.StatusCode == http.StatusConflict:
			return fmt.Errorf("%w: %w", ErrConflict, apiErr)
		case resp.StatusCode == http.StatusBadRequest || resp.StatusCode == http.StatusUnprocessableEntity:
			return fmt.Errorf("%w: %w", voice.ErrValidation, apiErr)
		case resp.StatusCode >= 500:
			return fmt.Errorf("%w: %w", voice.ErrNetwork, apiErr)
		}
		return apiErr
	}

	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}

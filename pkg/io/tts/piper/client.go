package piper

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// Piper is a client for the rhasspy/wyoming-piper HTTP API.
type Piper struct {
	BaseURL string       // e.g. "http://tts:5000"
	Client  *http.Client // inject; default if nil
	Voice   string       // default voice
	// Voices overrides the voice per language code ("hi" -> "hi_IN-pratham-medium").
	Voices  map[string]string
	Timeout time.Duration // request timeout per prompt
	// MaxBytes caps the audio body read into memory.
	MaxBytes int64
}

func New(bu string) *Piper {
	return &Piper{BaseURL: strings.TrimRight(bu, "/")}
}

func (p *Piper) voiceFor(lang string) string {
	if v, ok := p.Voices[strings.ToLower(lang)]; ok && v != "" {
		return v
	}
	return p.Voice
}

// DoTTS streams the synthesized WAV for text. The caller must close the body.
func (p *Piper) DoTTS(ctx context.Context, text string, lang string) (io.ReadCloser, string, error) {
	if strings.TrimSpace(text) == "" {
		return nil, "", fmt.Errorf("empty text")
	}

	// GET /api/text-to-speech?text=...&voice=... streams a WAV body on success.
	u, err := url.Parse(p.BaseURL + "/api/text-to-speech")
	if err != nil {
		return nil, "", err
	}
	q := u.Query()
	q.Set("text", text)
	if voice := p.voiceFor(lang); voice != "" {
		q.Set("voice", voice)
	}
	u.RawQuery = q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, "", err
	}
	req.Header.Set("Accept", "audio/wav")

	hc := p.Client
	if hc == nil {
		hc = http.DefaultClient
	}

	start := time.Now()
	resp, err := hc.Do(req)
	if err != nil {
		return nil, "", fmt.Errorf("tts http request failed: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		b, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		resp.Body.Close()
		return nil, "", fmt.Errorf("tts http %d: %s (dur=%s)", resp.StatusCode, string(b), time.Since(start))
	}
	return resp.Body, ifEmpty(resp.Header.Get("Content-Type"), "audio/wav"), nil
}

// Synthesize renders one prompt fully into memory.
func (p *Piper) Synthesize(ctx context.Context, text string, lang string) ([]byte, string, error) {
	timeout := p.Timeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	body, contentType, err := p.DoTTS(ctx, text, lang)
	if err != nil {
		return nil, "", err
	}
	defer body.Close()

	limit := p.MaxBytes
	if limit <= 0 {
		limit = 16 << 20
	}
	audio, err := io.ReadAll(io.LimitReader(body, limit))
	if err != nil {
		return nil, "", fmt.Errorf("failed to read tts audio: %w", err)
	}
	return audio, contentType, nil
}

func ifEmpty(s, d string) string {
	if s == "" {
		return d
	}
	return s
}

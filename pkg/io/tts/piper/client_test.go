package piper

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestSynthesizePicksVoicePerLanguage(t *testing.T) {
	var gotVoice, gotText string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotVoice = r.URL.Query().Get("voice")
		gotText = r.URL.Query().Get("text")
		w.Header().Set("Content-Type", "audio/wav")
		_, _ = w.Write([]byte("RIFF"))
	}))
	defer srv.Close()

	p := New(srv.URL)
	p.Voice = "en_US-lessac-medium"
	p.Voices = map[string]string{"hi": "hi_IN-pratham-medium"}

	audio, ct, err := p.Synthesize(context.Background(), "Which service do you need?", "HI")
	if err != nil {
		t.Fatalf("Synthesize: %v", err)
	}
	if string(audio) != "RIFF" || ct != "audio/wav" {
		t.Errorf("audio = %q, content type = %q", audio, ct)
	}
	if gotVoice != "hi_IN-pratham-medium" || gotText != "Which service do you need?" {
		t.Errorf("voice = %q, text = %q", gotVoice, gotText)
	}

	if _, _, err := p.Synthesize(context.Background(), "hello", "ta"); err != nil {
		t.Fatal(err)
	}
	if gotVoice != "en_US-lessac-medium" {
		t.Errorf("fallback voice = %q", gotVoice)
	}
}

func TestSynthesizeErrors(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "no voice", http.StatusNotFound)
	}))
	defer srv.Close()

	p := New(srv.URL)
	if _, _, err := p.Synthesize(context.Background(), "hi", "en"); err == nil {
		t.Error("expected error on 404")
	}
	if _, _, err := p.Synthesize(context.Background(), "  ", "en"); err == nil {
		t.Error("expected error on empty text")
	}
}

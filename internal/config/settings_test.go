package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoadDefaultsWithoutFile(t *testing.T) {
	t.Setenv("QUICKPOST_ENV", "missing")

	s, err := LoadFrom(t.TempDir())
	if err != nil {
		t.Fatalf("LoadFrom: %v", err)
	}
	if s.Server.Addr != ":8080" {
		t.Errorf("server.addr = %q, want :8080", s.Server.Addr)
	}
	if s.Conversation.AcceptThreshold != 0.7 || s.Conversation.ConfirmThreshold != 0.6 {
		t.Errorf("thresholds = %v/%v, want 0.7/0.6", s.Conversation.AcceptThreshold, s.Conversation.ConfirmThreshold)
	}
	if s.Conversation.MaxRetries != 3 {
		t.Errorf("max_retries = %d, want 3", s.Conversation.MaxRetries)
	}
	if len(s.Voice.Languages) != 10 {
		t.Errorf("languages = %v, want 10 entries", s.Voice.Languages)
	}
	if s.Extraction.Provider != "keyword" {
		t.Errorf("extraction.provider = %q, want keyword", s.Extraction.Provider)
	}
}

func TestLoadFromFile(t *testing.T) {
	dir := t.TempDir()
	yaml := `
server:
  addr: ":9090"
database:
  host: db
  port: 3307
  username: qp
  password: secret
  name: quickpost
extraction:
  provider: openai
  demo_mode: true
conversation:
  advance_delay: 250ms
  max_retries: 5
`
	if err := os.WriteFile(filepath.Join(dir, "config_test.yaml"), []byte(yaml), 0o600); err != nil {
		t.Fatal(err)
	}
	t.Setenv("QUICKPOST_ENV", "test")

	s, err := LoadFrom(dir)
	if err != nil {
		t.Fatalf("LoadFrom: %v", err)
	}
	if s.Server.Addr != ":9090" {
		t.Errorf("server.addr = %q", s.Server.Addr)
	}
	if s.Extraction.Provider != "openai" || !s.Extraction.DemoMode {
		t.Errorf("extraction = %+v", s.Extraction)
	}
	if s.Conversation.AdvanceDelay != 250*time.Millisecond {
		t.Errorf("advance_delay = %v", s.Conversation.AdvanceDelay)
	}
	if s.Conversation.MaxRetries != 5 {
		t.Errorf("max_retries = %d", s.Conversation.MaxRetries)
	}
	want := "qp:secret@tcp(db:3307)/quickpost?charset=utf8mb4&parseTime=True&loc=Local"
	if got := s.DB.DSN(); got != want {
		t.Errorf("DSN = %q, want %q", got, want)
	}
}

func TestLoadRejectsInvertedThresholds(t *testing.T) {
	dir := t.TempDir()
	yaml := `
conversation:
  accept_threshold: 0.5
  confirm_threshold: 0.8
`
	if err := os.WriteFile(filepath.Join(dir, "config_bad.yaml"), []byte(yaml), 0o600); err != nil {
		t.Fatal(err)
	}
	t.Setenv("QUICKPOST_ENV", "bad")

	if _, err := LoadFrom(dir); err == nil {
		t.Fatal("expected error for confirm threshold above accept threshold")
	}
}

package app

import (
	"context"
	"testing"

	"github.com/xpanvictor/quickpost/internal/config"
	"github.com/xpanvictor/quickpost/internal/domains/voice"
	"github.com/xpanvictor/quickpost/internal/gazetteer"
	"github.com/xpanvictor/quickpost/pkg/Logger"
)

func TestExtractorFactoryKeyword(t *testing.T) {
	f := NewExtractorFactory(config.ExtractionConfig{Provider: "keyword"}, gazetteer.Default(), Logger.NewNop())
	e, err := f.CreateExtractor(context.Background())
	if err != nil {
		t.Fatalf("CreateExtractor: %v", err)
	}
	res, err := e.ExtractJob(context.Background(), voice.Transcript{Text: "I need a plumber in Salem, Tamil Nadu", DetectedLanguage: voice.LangEnglish})
	if err != nil {
		t.Fatalf("ExtractJob: %v", err)
	}
	if res.IsDemo() || res.Job.ServiceCategory != "plumbing" {
		t.Errorf("result = %+v", res)
	}
}

func TestExtractorFactoryDemoModeTagsFallback(t *testing.T) {
	f := NewExtractorFactory(config.ExtractionConfig{Provider: "keyword", DemoMode: true}, gazetteer.Default(), Logger.NewNop())
	e, err := f.CreateExtractor(context.Background())
	if err != nil {
		t.Fatalf("CreateExtractor: %v", err)
	}
	res, err := e.ExtractJob(context.Background(), voice.Transcript{Text: "zzz qqq", DetectedLanguage: voice.LangEnglish})
	if err != nil {
		t.Fatalf("ExtractJob: %v", err)
	}
	if !res.IsDemo() {
		t.Error("fallback record must be tagged demo")
	}
}

func TestExtractorFactoryRejectsMisconfiguration(t *testing.T) {
	cases := []config.ExtractionConfig{
		{Provider: "openai"},
		{Provider: "gemini"},
		{Provider: "ollama"},
		{Provider: "telepathy"},
	}
	for _, cfg := range cases {
		f := NewExtractorFactory(cfg, gazetteer.Default(), Logger.NewNop())
		if _, err := f.CreateExtractor(context.Background()); err == nil {
			t.Errorf("provider %q: expected error", cfg.Provider)
		}
	}
}

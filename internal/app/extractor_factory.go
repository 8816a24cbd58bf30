package app

import (
	"context"
	"fmt"
	"strings"

	"github.com/xpanvictor/quickpost/internal/config"
	"github.com/xpanvictor/quickpost/internal/gazetteer"
	"github.com/xpanvictor/quickpost/pkg/Logger"
	"github.com/xpanvictor/quickpost/pkg/extract"
	"github.com/xpanvictor/quickpost/pkg/extract/gemini"
	"github.com/xpanvictor/quickpost/pkg/extract/keyword"
	"github.com/xpanvictor/quickpost/pkg/extract/ollama"
	"github.com/xpanvictor/quickpost/pkg/extract/openai"
)

// Extraction providers.
const (
	ProviderOpenAI  = "openai"
	ProviderGemini  = "gemini"
	ProviderOllama  = "ollama"
	ProviderKeyword = "keyword"
)

// ExtractorFactory builds the field extractor selected in configuration
type ExtractorFactory struct {
	config config.ExtractionConfig
	gaz    *gazetteer.Gazetteer
	logger *Logger.Logger
}

// NewExtractorFactory creates a new extractor factory
func NewExtractorFactory(cfg config.ExtractionConfig, gaz *gazetteer.Gazetteer, logger *Logger.Logger) *ExtractorFactory {
	return &ExtractorFactory{
		config: cfg,
		gaz:    gaz,
		logger: logger,
	}
}

// CreateExtractor returns the configured extractor, wrapped with the demo
// fallback only when demo mode is on.
func (f *ExtractorFactory) CreateExtractor(ctx context.Context) (*extract.Tagged, error) {
	inner, err := f.createInner(ctx)
	if err != nil {
		return nil, err
	}
	if f.config.DemoMode {
		f.logger.Warnf("extraction demo mode is on: failures will return placeholder records tagged as demo")
		return extract.WithDemoFallback(inner, f.logger), nil
	}
	return extract.Genuine(inner), nil
}

func (f *ExtractorFactory) createInner(ctx context.Context) (extract.Extractor, error) {
	var completer extract.Completer
	switch provider := strings.ToLower(strings.TrimSpace(f.config.Provider)); provider {
	case "", ProviderKeyword:
		f.logger.Infof("using keyword extractor")
		return keyword.New(f.gaz), nil

	case ProviderOpenAI:
		c, err := openai.New(f.config.OpenAIAPIKey, f.config.OpenAIURL, f.config.OpenAIModel)
		if err != nil {
			return nil, fmt.Errorf("failed to create openai extractor: %w", err)
		}
		completer = c

	case ProviderGemini:
		c, err := gemini.New(ctx, f.config.GeminiAPIKey, f.config.GeminiModel)
		if err != nil {
			return nil, fmt.Errorf("failed to create gemini extractor: %w", err)
		}
		completer = c

	case ProviderOllama:
		c, err := ollama.New(f.config.OllamaURLs, f.config.OllamaModel, f.logger)
		if err != nil {
			return nil, fmt.Errorf("failed to create ollama extractor: %w", err)
		}
		completer = c

	default:
		return nil, fmt.Errorf("unknown extraction provider %q", provider)
	}

	f.logger.Infof("using LLM extractor %s", completer.Name())
	return extract.NewLLM(completer, serviceIDs(f.gaz)), nil
}

// Package openai answers extraction prompts with an OpenAI-compatible chat model.
package openai

import (
	"context"
	"errors"
	"fmt"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
)

type Completer struct {
	client openai.Client
	model  string
}

// New builds a completer. baseURL may point at any OpenAI-compatible server;
// empty keeps the default endpoint.
func New(apiKey, baseURL, model string, opts ...option.RequestOption) (*Completer, error) {
	if apiKey == "" {
		return nil, errors.New("openai API key is not configured")
	}
	if model == "" {
		model = "gpt-4o-mini"
	}
	options := []option.RequestOption{option.WithAPIKey(apiKey), option.WithMaxRetries(0)}
	if baseURL != "" {
		options = append(options, option.WithBaseURL(baseURL))
	}
	options = append(options, opts...)
	return &Completer{client: openai.NewClient(options...), model: model}, nil
}

func (c *Completer) Name() string { return "openai:" + c.model }

func (c *Completer) Complete(ctx context.Context, system, user string) (string, error) {
	resp, err := c.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.SystemMessage(system),
			openai.UserMessage(user),
		},
		Model:       c.model,
		Temperature: openai.Float(0),
	})
	if err != nil {
		return "", fmt.Errorf("completion failed: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", errors.New("completion returned no choices")
	}
	return resp.Choices[0].Message.Content, nil
}

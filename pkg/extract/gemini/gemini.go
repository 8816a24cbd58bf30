// Package gemini answers extraction prompts with Google's Gemini models.
package gemini

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
)

type Completer struct {
	client *genai.Client
	model  string
}

func New(ctx context.Context, apiKey, model string, opts ...option.ClientOption) (*Completer, error) {
	if apiKey == "" {
		return nil, errors.New("gemini API key is not configured")
	}
	if model == "" {
		model = "gemini-1.5-flash"
	}
	client, err := genai.NewClient(ctx, append([]option.ClientOption{option.WithAPIKey(apiKey)}, opts...)...)
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini API client: %w", err)
	}
	return &Completer{client: client, model: model}, nil
}

func (c *Completer) Name() string { return "gemini:" + c.model }

func (c *Completer) Complete(ctx context.Context, system, user string) (string, error) {
	model := c.client.GenerativeModel(c.model)
	model.SystemInstruction = genai.NewUserContent(genai.Text(system))
	model.ResponseMIMEType = "application/json"
	model.SetTemperature(0)

	resp, err := model.GenerateContent(ctx, genai.Text(user))
	if err != nil {
		return "", fmt.Errorf("gemini generation failed: %w", err)
	}

	var out strings.Builder
	for _, cand := range resp.Candidates {
		if cand.Content == nil {
			continue
		}
		for _, part := range cand.Content.Parts {
			if txt, ok := part.(genai.Text); ok {
				out.WriteString(string(txt))
			}
		}
		break
	}
	if out.Len() == 0 {
		return "", errors.New("gemini returned no text")
	}
	return out.String(), nil
}

func (c *Completer) Close() error {
	return c.client.Close()
}

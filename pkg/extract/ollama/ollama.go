// Package ollama answers extraction prompts with self-hosted models spread
// over an ollama farm.
package ollama

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/ollama/ollama/api"
	"github.com/presbrey/ollamafarm"
	"github.com/xpanvictor/quickpost/pkg/Logger"
)

type Completer struct {
	farm  *ollamafarm.Farm
	model string
}

func New(urls []string, model string, logger *Logger.Logger) (*Completer, error) {
	if len(urls) == 0 {
		return nil, errors.New("no ollama servers configured")
	}
	if logger == nil {
		logger = Logger.NewNop()
	}
	farm := ollamafarm.New()
	registered := 0
	for _, u := range urls {
		if err := farm.RegisterURL(u, nil); err != nil {
			logger.Warnf("ollama server %s not registered: %v", u, err)
			continue
		}
		registered++
	}
	if registered == 0 {
		return nil, errors.New("no ollama server could be registered")
	}
	return &Completer{farm: farm, model: model}, nil
}

func (c *Completer) Name() string { return "ollama:" + c.model }

func (c *Completer) Complete(ctx context.Context, system, user string) (string, error) {
	// pick first available client
	server := c.farm.First(&ollamafarm.Where{Offline: false})
	if server == nil {
		return "", fmt.Errorf("no ollama server online for %s", c.model)
	}

	stream := false
	req := api.ChatRequest{
		Model: c.model,
		Messages: []api.Message{
			{Role: "system", Content: system},
			{Role: "user", Content: user},
		},
		Format:  "json",
		Stream:  &stream,
		Options: map[string]any{"temperature": 0},
	}

	var out strings.Builder
	err := server.Client().Chat(ctx, &req, func(resp api.ChatResponse) error {
		out.WriteString(resp.Message.Content)
		return nil
	})
	if err != nil {
		return "", fmt.Errorf("ollama chat failed: %w", err)
	}
	return out.String(), nil
}

package backend

import (
	"context"
	"errors"
	"fmt"

	openai "github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"

	"github.com/yourusername/talecraft/internal/config"
)

// OpenAI completes prompts with any OpenAI-compatible chat completions API
type OpenAI struct {
	cli         openai.Client
	model       string
	temperature float64
}

// NewOpenAI creates an OpenAI backend
func NewOpenAI(cfg config.BackendConfig, model string) (*OpenAI, error) {
	if cfg.APIKey == "" {
		return nil, config.ErrMissingAPIKey
	}
	if model == "" {
		return nil, errors.New("openai model is required")
	}
	opts := []option.RequestOption{option.WithAPIKey(cfg.APIKey)}
	if cfg.BaseURL != "" {
		opts = append(opts, option.WithBaseURL(cfg.BaseURL))
	}
	return &OpenAI{
		cli:         openai.NewClient(opts...),
		model:       model,
		temperature: cfg.Temperature,
	}, nil
}

func (o *OpenAI) Complete(ctx context.Context, prompt string) (string, error) {
	res, err := o.cli.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model: o.model,
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.UserMessage(prompt),
		},
		Temperature: openai.Float(o.temperature),
	})
	if err != nil {
		return "", err
	}
	if len(res.Choices) == 0 {
		return "", errors.New("openai: empty choices")
	}
	return res.Choices[0].Message.Content, nil
}

// Model returns the model this backend calls
func (o *OpenAI) Model() string {
	return o.model
}

// ListModels returns the model ids the endpoint serves
func (o *OpenAI) ListModels(ctx context.Context) ([]string, error) {
	page, err := o.cli.Models.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list openai models: %w", err)
	}
	names := make([]string, 0, len(page.Data))
	for _, m := range page.Data {
		names = append(names, m.ID)
	}
	return names, nil
}

package backend

import (
	"context"
	"errors"

	"github.com/yourusername/talecraft/internal/config"
	"github.com/yourusername/talecraft/internal/ollama"
)

// Ollama completes prompts with a local Ollama server
type Ollama struct {
	client      *ollama.Client
	model       string
	temperature float64
}

// NewOllama creates an Ollama backend
func NewOllama(cfg config.BackendConfig, model string) (*Ollama, error) {
	if model == "" {
		return nil, errors.New("no Ollama model configured")
	}
	client := ollama.NewClient(cfg.Host)
	client.Debug = cfg.Debug
	return &Ollama{client: client, model: model, temperature: cfg.Temperature}, nil
}

func (o *Ollama) Complete(ctx context.Context, prompt string) (string, error) {
	return o.client.Generate(ctx, o.model, prompt, "", o.temperature)
}

// Model returns the model this backend calls
func (o *Ollama) Model() string {
	return o.model
}

// ListModels returns the names of the locally pulled models
func (o *Ollama) ListModels(ctx context.Context) ([]string, error) {
	models, err := o.client.ListModels(ctx)
	if err != nil {
		return nil, err
	}
	names := make([]string, 0, len(models))
	for _, m := range models {
		names = append(names, m.Name)
	}
	return names, nil
}

package backend

import (
	"context"
	"fmt"
	"strings"

	"google.golang.org/genai"

	"github.com/yourusername/talecraft/internal/config"
)

// Gemini completes prompts with the Gemini API
type Gemini struct {
	client      *genai.Client
	model       string
	temperature float32
}

// NewGemini creates a Gemini backend. The API key comes from cfg; it is never
// read from the environment here.
func NewGemini(ctx context.Context, cfg config.BackendConfig, model string) (*Gemini, error) {
	if cfg.APIKey == "" {
		return nil, config.ErrMissingAPIKey
	}
	cc := &genai.ClientConfig{
		APIKey:  cfg.APIKey,
		Backend: genai.BackendGeminiAPI,
	}
	if cfg.BaseURL != "" {
		cc.HTTPOptions = genai.HTTPOptions{BaseURL: cfg.BaseURL}
	}
	client, err := genai.NewClient(ctx, cc)
	if err != nil {
		return nil, fmt.Errorf("create gemini client: %w", err)
	}
	return &Gemini{
		client:      client,
		model:       model,
		temperature: float32(cfg.Temperature),
	}, nil
}

func (g *Gemini) Complete(ctx context.Context, prompt string) (string, error) {
	resp, err := g.client.Models.GenerateContent(ctx, g.model, genai.Text(prompt), &genai.GenerateContentConfig{
		Temperature: genai.Ptr(g.temperature),
	})
	if err != nil {
		return "", err
	}
	if len(resp.Candidates) == 0 {
		if fb := resp.PromptFeedback; fb != nil && fb.BlockReason != "" {
			return "", fmt.Errorf("gemini blocked the prompt: %s", fb.BlockReason)
		}
		return "", fmt.Errorf("gemini: empty response")
	}
	return resp.Text(), nil
}

// Model returns the model this backend calls
func (g *Gemini) Model() string {
	return g.model
}

// ListModels returns the model ids visible to the API key
func (g *Gemini) ListModels(ctx context.Context) ([]string, error) {
	page, err := g.client.Models.List(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("list gemini models: %w", err)
	}
	names := make([]string, 0, len(page.Items))
	for _, m := range page.Items {
		names = append(names, strings.TrimPrefix(m.Name, "models/"))
	}
	return names, nil
}

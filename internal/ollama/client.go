package ollama

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
)

// Client represents an Ollama API client
type Client struct {
	Host   string
	Debug  bool
	client *http.Client
	log    *slog.Logger
}

// NewClient creates a new Ollama client
func NewClient(host string) *Client {
	return &Client{
		Host:   host,
		client: &http.Client{},
		log:    slog.Default(),
	}
}

// GenerateRequest represents a request to the Ollama generate API
type GenerateRequest struct {
	Model   string         `json:"model"`
	Prompt  string         `json:"prompt"`
	System  string         `json:"system,omitempty"`
	Stream  bool           `json:"stream"`
	Options map[string]any `json:"options,omitempty"`
}

// GenerateResponse represents a response from the Ollama generate API
type GenerateResponse struct {
	Model     string `json:"model"`
	CreatedAt string `json:"created_at"`
	Response  string `json:"response"`
	Done      bool   `json:"done"`
	Error     string `json:"error,omitempty"`
}

// Generate sends a prompt to Ollama using a specific model and waits for the
// whole response.
func (c *Client) Generate(ctx context.Context, model, prompt, system string, temperature float64) (string, error) {
	reqBody := GenerateRequest{
		Model:   model,
		Prompt:  prompt,
		System:  system,
		Stream:  false,
		Options: map[string]any{"temperature": temperature},
	}

	if c.Debug {
		c.log.Debug("ollama request", "model", model, "temperature", temperature, "prompt", prompt)
	}

	jsonData, err := json.Marshal(reqBody)
	if err != nil {
		return "", fmt.Errorf("failed to marshal request: %w", err)
	}

	url := strings.TrimSuffix(c.Host, "/") + "/api/generate"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewBuffer(jsonData))
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return "", fmt.Errorf("ollama API error: %s - %s", resp.Status, strings.TrimSpace(string(body)))
	}

	var result GenerateResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return "", fmt.Errorf("failed to decode response: %w", err)
	}
	if result.Error != "" {
		return "", fmt.Errorf("ollama API error: %s", result.Error)
	}

	if c.Debug {
		c.log.Debug("ollama response", "model", result.Model, "response", result.Response)
	}

	return result.Response, nil
}

// Model represents an Ollama model
type Model struct {
	Name       string `json:"name"`
	ModifiedAt string `json:"modified_at"`
	Size       int64  `json:"size"`
}

// ListModelsResponse represents the response from /api/tags
type ListModelsResponse struct {
	Models []Model `json:"models"`
}

// ListModels retrieves all available models from Ollama
func (c *Client) ListModels(ctx context.Context) ([]Model, error) {
	url := strings.TrimSuffix(c.Host, "/") + "/api/tags"
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to Ollama: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("ollama returned status %s", resp.Status)
	}

	var modelsResp ListModelsResponse
	if err := json.NewDecoder(resp.Body).Decode(&modelsResp); err != nil {
		return nil, fmt.Errorf("failed to decode models response: %w", err)
	}

	return modelsResp.Models, nil
}

// CheckConnection verifies that Ollama is running and accessible
func (c *Client) CheckConnection(ctx context.Context) error {
	_, err := c.ListModels(ctx)
	return err
}

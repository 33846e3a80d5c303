// Package backend builds the language model clients the generation facade calls
package backend

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/yourusername/talecraft/internal/config"
	"github.com/yourusername/talecraft/internal/generation"
	"github.com/yourusername/talecraft/internal/modes"
)

// ModelLister is implemented by backends that can enumerate their models
type ModelLister interface {
	ListModels(ctx context.Context) ([]string, error)
}

// New creates a backend for the configured driver calling model
func New(ctx context.Context, cfg config.BackendConfig, model string) (generation.Backend, error) {
	switch strings.ToLower(cfg.Driver) {
	case config.DriverGemini:
		return NewGemini(ctx, cfg, model)
	case config.DriverOpenAI:
		return NewOpenAI(cfg, model)
	case config.DriverOllama:
		return NewOllama(cfg, model)
	default:
		return nil, fmt.Errorf("unknown driver: %s", cfg.Driver)
	}
}

// NewFacade checks the credential, then builds a facade with one backend for
// the default model and one per mode whose model differs from it.
func NewFacade(ctx context.Context, cfg *config.Config, log *slog.Logger) (*generation.Facade, error) {
	if err := cfg.RequireCredential(); err != nil {
		return nil, err
	}

	defaultModel := cfg.DefaultModel()
	def, err := New(ctx, cfg.Backend, defaultModel)
	if err != nil {
		return nil, fmt.Errorf("create %s backend: %w", cfg.Backend.Driver, err)
	}

	opts := []generation.Option{
		generation.WithLogger(log),
		generation.WithTimeout(time.Duration(cfg.Backend.TimeoutSec) * time.Second),
	}
	for _, spec := range modes.All() {
		model := cfg.GetModelForMode(spec.Mode)
		if model == defaultModel {
			continue
		}
		b, err := New(ctx, cfg.Backend, model)
		if err != nil {
			return nil, fmt.Errorf("create backend for %s: %w", spec.Mode, err)
		}
		opts = append(opts, generation.WithModeBackend(spec.Mode, b))
	}

	log.Debug("backends ready", "driver", cfg.Backend.Driver, "model", defaultModel)
	return generation.New(def, opts...), nil
}

// Lister builds a backend for listing models with the default model
func Lister(ctx context.Context, cfg *config.Config) (ModelLister, error) {
	model := cfg.DefaultModel()
	if model == "" {
		model = "unset"
	}
	b, err := New(ctx, cfg.Backend, model)
	if err != nil {
		return nil, err
	}
	l, ok := b.(ModelLister)
	if !ok {
		return nil, fmt.Errorf("driver %s cannot list models", cfg.Backend.Driver)
	}
	return l, nil
}

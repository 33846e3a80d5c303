package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/yourusername/talecraft/internal/modes"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(body), 0644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestLoad_DefaultsWhenFileMissing(t *testing.T) {
	t.Setenv("GEMINI_API_KEY", "")
	path := filepath.Join(t.TempDir(), "config.yaml")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Backend.Driver != DriverGemini {
		t.Fatalf("expected gemini driver, got %q", cfg.Backend.Driver)
	}
	if cfg.Backend.Temperature != 0.7 {
		t.Fatalf("expected temperature 0.7, got %v", cfg.Backend.Temperature)
	}
	if got := cfg.GetModelForMode(modes.ModeDialogue); got != "gemini-2.0-flash" {
		t.Fatalf("expected driver default model, got %q", got)
	}
	if cfg.Path() != path {
		t.Fatalf("expected path %s, got %s", path, cfg.Path())
	}
}

func TestLoad_ReadsFileAndKey(t *testing.T) {
	t.Setenv("STORY_KEY", "  secret  ")
	path := writeConfig(t, `
backend:
  driver: OpenAI
  model: gpt-4o
  api_key_env: STORY_KEY
models:
  feedback: o3-mini
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Backend.Driver != DriverOpenAI {
		t.Fatalf("expected driver to be lower-cased, got %q", cfg.Backend.Driver)
	}
	if cfg.Backend.APIKey != "secret" {
		t.Fatalf("expected trimmed key, got %q", cfg.Backend.APIKey)
	}
	if err := cfg.RequireCredential(); err != nil {
		t.Fatalf("expected credential to be present, got %v", err)
	}
	if got := cfg.GetModelForMode(modes.ModeFeedback); got != "o3-mini" {
		t.Fatalf("expected override, got %q", got)
	}
	if got := cfg.GetModelForMode(modes.ModeCharacter); got != "gpt-4o" {
		t.Fatalf("expected default model, got %q", got)
	}
}

func TestLoad_UnknownDriver(t *testing.T) {
	path := writeConfig(t, "backend:\n  driver: palm\n")
	if _, err := Load(path); err == nil {
		t.Fatalf("expected error for unknown driver")
	}
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	t.Setenv("TALECRAFT_BACKEND_DRIVER", "ollama")
	path := writeConfig(t, "backend:\n  driver: gemini\n")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Backend.Driver != DriverOllama {
		t.Fatalf("expected env override, got %q", cfg.Backend.Driver)
	}
}

func TestRequireCredential(t *testing.T) {
	t.Setenv("GEMINI_API_KEY", "")
	cfg, err := Load(filepath.Join(t.TempDir(), "config.yaml"))
	if err != nil {
		t.Fatalf("load: %v", err)
	}

	err = cfg.RequireCredential()
	if !errors.Is(err, ErrMissingAPIKey) {
		t.Fatalf("expected ErrMissingAPIKey, got %v", err)
	}

	cfg.Backend.Driver = DriverOllama
	if err := cfg.RequireCredential(); err != nil {
		t.Fatalf("ollama needs no key, got %v", err)
	}
}

func TestSave_RoundTrip(t *testing.T) {
	t.Setenv("GEMINI_API_KEY", "k")
	path := filepath.Join(t.TempDir(), "nested", "config.yaml")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	cfg.SetModelForMode(modes.ModePlotStructure, "gemini-2.5-pro")
	cfg.UI.AutoCopy = true
	if err := cfg.Save(); err != nil {
		t.Fatalf("save: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if string(data) == "" {
		t.Fatalf("expected config content")
	}

	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("reload: %v", err)
	}
	if got := loaded.GetModelForMode(modes.ModePlotStructure); got != "gemini-2.5-pro" {
		t.Fatalf("expected saved override, got %q", got)
	}
	if !loaded.UI.AutoCopy {
		t.Fatalf("expected auto_copy to persist")
	}
}

func TestGetConfigDir_EnvOverride(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "cfg")
	t.Setenv("TALECRAFT_CONFIG_DIR", dir)

	got, err := GetConfigDir()
	if err != nil {
		t.Fatalf("GetConfigDir: %v", err)
	}
	if got != dir {
		t.Fatalf("expected %s, got %s", dir, got)
	}
	if _, err := os.Stat(dir); err != nil {
		t.Fatalf("expected dir to be created: %v", err)
	}
}

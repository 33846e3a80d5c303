package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
	"github.com/yourusername/talecraft/internal/modes"
)

// ErrMissingAPIKey is returned when the configured driver needs a key and none is set
var ErrMissingAPIKey = errors.New("API key not found")

// Config holds all configuration for talecraft
type Config struct {
	Backend BackendConfig `mapstructure:"backend"`
	Models  ModelsConfig  `mapstructure:"models"`
	UI      UIConfig      `mapstructure:"ui"`
	Log     LogConfig     `mapstructure:"log"`
	Server  ServerConfig  `mapstructure:"server"`

	path string
	v    *viper.Viper
}

// BackendConfig selects and tunes the language model backend
type BackendConfig struct {
	Driver      string  `mapstructure:"driver"` // gemini, openai or ollama
	Model       string  `mapstructure:"model"`  // default model for every mode
	Host        string  `mapstructure:"host"`   // ollama only
	BaseURL     string  `mapstructure:"base_url"`
	Temperature float64 `mapstructure:"temperature"`
	TimeoutSec  int     `mapstructure:"timeout_sec"` // 0 disables the per-call timeout
	Debug       bool    `mapstructure:"debug"`
	APIKeyEnv   string  `mapstructure:"api_key_env"`

	// APIKey is read from the environment, never from or to the file.
	APIKey string `mapstructure:"-"`
}

// ModelsConfig holds per-mode model overrides
type ModelsConfig struct {
	StoryIdea     string `mapstructure:"story_idea"`
	Character     string `mapstructure:"character"`
	PlotStructure string `mapstructure:"plot_structure"`
	Dialogue      string `mapstructure:"dialogue"`
	Feedback      string `mapstructure:"feedback"`
}

// UIConfig holds UI-specific settings
type UIConfig struct {
	Theme    string `mapstructure:"theme"`
	WordWrap int    `mapstructure:"word_wrap"`
	AutoCopy bool   `mapstructure:"auto_copy"`
}

// LogConfig controls the structured logger
type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
	File   string `mapstructure:"file"` // TUI log destination, empty means <config dir>/talecraft.log
}

// ServerConfig holds HTTP API settings
type ServerConfig struct {
	Addr string `mapstructure:"addr"`
}

// Driver names
const (
	DriverGemini = "gemini"
	DriverOpenAI = "openai"
	DriverOllama = "ollama"
)

var defaultModels = map[string]string{
	DriverGemini: "gemini-2.0-flash",
	DriverOpenAI: "gpt-4o-mini",
	DriverOllama: "",
}

var defaultKeyEnv = map[string]string{
	DriverGemini: "GEMINI_API_KEY",
	DriverOpenAI: "OPENAI_API_KEY",
}

// modelSlot returns a pointer to the override field for mode
func (m *ModelsConfig) modelSlot(mode modes.Mode) *string {
	switch mode {
	case modes.ModeStoryIdea:
		return &m.StoryIdea
	case modes.ModeCharacter:
		return &m.Character
	case modes.ModePlotStructure:
		return &m.PlotStructure
	case modes.ModeDialogue:
		return &m.Dialogue
	case modes.ModeFeedback:
		return &m.Feedback
	}
	return nil
}

// GetModelForMode returns the configured model for a specific mode
func (c *Config) GetModelForMode(mode modes.Mode) string {
	if slot := c.Models.modelSlot(mode); slot != nil && *slot != "" {
		return *slot
	}
	return c.DefaultModel()
}

// DefaultModel returns the model used by modes without an override
func (c *Config) DefaultModel() string {
	if c.Backend.Model != "" {
		return c.Backend.Model
	}
	return defaultModels[c.Backend.Driver]
}

// SetModelForMode assigns a model override to mode
func (c *Config) SetModelForMode(mode modes.Mode, model string) {
	if slot := c.Models.modelSlot(mode); slot != nil {
		*slot = model
	}
}

// APIKeyEnvName returns the env var holding the key for the configured driver,
// or "" when the driver needs none.
func (c *Config) APIKeyEnvName() string {
	if c.Backend.APIKeyEnv != "" {
		return c.Backend.APIKeyEnv
	}
	return defaultKeyEnv[c.Backend.Driver]
}

// RequireCredential reports a missing API key before any generation is attempted
func (c *Config) RequireCredential() error {
	env := c.APIKeyEnvName()
	if env == "" {
		return nil
	}
	if c.Backend.APIKey == "" {
		return fmt.Errorf("%w: set %s before running talecraft", ErrMissingAPIKey, env)
	}
	return nil
}

// Path returns the file the config was loaded from
func (c *Config) Path() string {
	return c.path
}

// GetConfigDir returns the cross-platform config directory
func GetConfigDir() (string, error) {
	if dir := os.Getenv("TALECRAFT_CONFIG_DIR"); dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return "", fmt.Errorf("failed to create config dir: %w", err)
		}
		return dir, nil
	}

	configDir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("failed to get user config dir: %w", err)
	}

	dir := filepath.Join(configDir, "talecraft")

	// Create directory if it doesn't exist
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("failed to create config dir: %w", err)
	}

	return dir, nil
}

// DefaultPath returns <config dir>/config.yaml
func DefaultPath() (string, error) {
	dir, err := GetConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.yaml"), nil
}

// LogPath returns the file the TUI logs to
func (c *Config) LogPath() (string, error) {
	if c.Log.File != "" {
		return c.Log.File, nil
	}
	dir, err := GetConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "talecraft.log"), nil
}

// Load reads the config at path, or the default location when path is empty.
// A missing file is not an error; defaults apply.
func Load(path string) (*Config, error) {
	if path == "" {
		p, err := DefaultPath()
		if err != nil {
			return nil, err
		}
		path = p
	}

	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")

	// Set defaults
	v.SetDefault("backend.driver", DriverGemini)
	v.SetDefault("backend.model", "")
	v.SetDefault("backend.host", "http://localhost:11434")
	v.SetDefault("backend.base_url", "")
	v.SetDefault("backend.temperature", 0.7)
	v.SetDefault("backend.timeout_sec", 0)
	v.SetDefault("backend.debug", false)
	v.SetDefault("backend.api_key_env", "")
	v.SetDefault("models.story_idea", "")
	v.SetDefault("models.character", "")
	v.SetDefault("models.plot_structure", "")
	v.SetDefault("models.dialogue", "")
	v.SetDefault("models.feedback", "")
	v.SetDefault("ui.theme", "dark")
	v.SetDefault("ui.word_wrap", 100)
	v.SetDefault("ui.auto_copy", false)
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "text")
	v.SetDefault("log.file", "")
	v.SetDefault("server.addr", ":8080")

	// TALECRAFT_BACKEND_DRIVER and friends override the file
	v.SetEnvPrefix("talecraft")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		if _, statErr := os.Stat(path); !os.IsNotExist(statErr) {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	cfg.Backend.Driver = strings.ToLower(cfg.Backend.Driver)
	if _, ok := defaultModels[cfg.Backend.Driver]; !ok {
		return nil, fmt.Errorf("unknown backend driver %q (want gemini, openai or ollama)", cfg.Backend.Driver)
	}

	cfg.path = path
	cfg.v = v
	if env := cfg.APIKeyEnvName(); env != "" {
		cfg.Backend.APIKey = strings.TrimSpace(os.Getenv(env))
	}

	return &cfg, nil
}

// Save saves the current config to disk
func (c *Config) Save() error {
	if c.path == "" {
		p, err := DefaultPath()
		if err != nil {
			return err
		}
		c.path = p
	}
	v := c.v
	if v == nil {
		v = viper.New()
		c.v = v
	}

	// Update viper with current values
	v.Set("backend.driver", c.Backend.Driver)
	v.Set("backend.model", c.Backend.Model)
	v.Set("backend.host", c.Backend.Host)
	v.Set("backend.base_url", c.Backend.BaseURL)
	v.Set("backend.temperature", c.Backend.Temperature)
	v.Set("backend.timeout_sec", c.Backend.TimeoutSec)
	v.Set("backend.debug", c.Backend.Debug)
	v.Set("backend.api_key_env", c.Backend.APIKeyEnv)
	v.Set("models.story_idea", c.Models.StoryIdea)
	v.Set("models.character", c.Models.Character)
	v.Set("models.plot_structure", c.Models.PlotStructure)
	v.Set("models.dialogue", c.Models.Dialogue)
	v.Set("models.feedback", c.Models.Feedback)
	v.Set("ui.theme", c.UI.Theme)
	v.Set("ui.word_wrap", c.UI.WordWrap)
	v.Set("ui.auto_copy", c.UI.AutoCopy)
	v.Set("log.level", c.Log.Level)
	v.Set("log.format", c.Log.Format)
	v.Set("log.file", c.Log.File)
	v.Set("server.addr", c.Server.Addr)

	if err := os.MkdirAll(filepath.Dir(c.path), 0755); err != nil {
		return fmt.Errorf("failed to create config dir: %w", err)
	}
	if err := v.WriteConfigAs(c.path); err != nil {
		return fmt.Errorf("failed to save config: %w", err)
	}

	return nil
}

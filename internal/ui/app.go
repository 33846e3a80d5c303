package ui

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/chzyer/readline"
	"github.com/yourusername/talecraft/internal/backend"
	"github.com/yourusername/talecraft/internal/config"
	"github.com/yourusername/talecraft/internal/generation"
	"github.com/yourusername/talecraft/internal/modes"
	"github.com/yourusername/talecraft/internal/ollama"
	"github.com/yourusername/talecraft/internal/renderer"
	"github.com/yourusername/talecraft/internal/session"
)

// Generator is the part of the generation facade the UI calls
type Generator interface {
	Generate(ctx context.Context, req generation.Request) generation.Result
}

// App is the interactive terminal front end
type App struct {
	cfg    *config.Config
	gen    Generator
	sess   *session.Session
	render *renderer.Renderer
	rl     *readline.Instance
	root   string // @path references resolve under this directory
	log    *slog.Logger
	out    io.Writer
}

// Run checks the backend, builds the facade and starts the prompt
func Run(ctx context.Context, cfg *config.Config, log *slog.Logger) error {
	if err := cfg.RequireCredential(); err != nil {
		return err
	}

	// Ollama runs locally, so check it is up before anything else
	if cfg.Backend.Driver == config.DriverOllama {
		client := ollama.NewClient(cfg.Backend.Host)
		if err := client.CheckConnection(ctx); err != nil {
			return fmt.Errorf("failed to connect to Ollama at %s: %w\nMake sure Ollama is running with: ollama serve", cfg.Backend.Host, err)
		}
	}

	// Handle first run - if no model is configured, prompt user to select one
	if cfg.DefaultModel() == "" {
		lister, err := backend.Lister(ctx, cfg)
		if err != nil {
			return fmt.Errorf("first run setup failed: %w", err)
		}
		selected, err := RunFirstRun(ctx, lister)
		if err != nil {
			return fmt.Errorf("first run setup failed: %w", err)
		}
		cfg.Backend.Model = selected
		if err := cfg.Save(); err != nil {
			return fmt.Errorf("failed to save config: %w", err)
		}
		fmt.Printf("\n%s\n\n", successStyle.Render("✓ Configuration saved! Using "+selected+" as default model."))
	}

	facade, err := backend.NewFacade(ctx, cfg, log)
	if err != nil {
		return err
	}

	sess, err := session.Load()
	if err != nil {
		log.Warn("failed to load drafts", "error", err)
		sess = session.New()
	}
	if !sess.Mode.Valid() {
		sess.SetMode(modes.ModeStoryIdea)
	}

	cwd, err := os.Getwd()
	if err != nil {
		cwd = "."
	}

	rl, err := readline.NewEx(&readline.Config{
		Prompt:          promptStyle.Render("> "),
		HistoryFile:     historyFile(),
		AutoComplete:    &autoCompleter{},
		InterruptPrompt: "^C",
		EOFPrompt:       "exit",
	})
	if err != nil {
		return err
	}
	defer rl.Close()

	app := &App{
		cfg:    cfg,
		gen:    facade,
		sess:   sess,
		render: renderer.New(cfg.UI.Theme, cfg.UI.WordWrap),
		rl:     rl,
		root:   cwd,
		log:    log,
		out:    rl.Stdout(),
	}

	fmt.Fprintln(app.out, "\n"+titleStyle.Render("📖 AI Storytelling Companion"))
	fmt.Fprintln(app.out, dimStyle.Render("Quick commands: /idea, /character, /structure, /dialogue, /feedback | 'm' for menu | /help | 'q' to quit"))
	fmt.Fprintln(app.out)

	return app.RunPrompt(ctx)
}

// rebuild recreates the facade after the config changed
func (a *App) rebuild(ctx context.Context) error {
	facade, err := backend.NewFacade(ctx, a.cfg, a.log)
	if err != nil {
		return err
	}
	a.gen = facade
	a.render = renderer.New(a.cfg.UI.Theme, a.cfg.UI.WordWrap)
	return nil
}

func historyFile() string {
	dir, err := config.GetConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, "history")
}

package commands

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/urfave/cli/v3"

	"github.com/yourusername/talecraft/internal/config"
	"github.com/yourusername/talecraft/internal/logger"
)

// NewRootCommand returns the top-level CLI command.
func NewRootCommand() *cli.Command {
	return &cli.Command{
		Name:  "talecraft",
		Usage: "AI storytelling companion: story ideas, characters, plot outlines, dialogue and feedback",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "Path to config file (default: <config dir>/config.yaml)",
			},
			&cli.BoolFlag{
				Name:  "debug",
				Usage: "Enable debug logging, including prompts and responses",
			},
		},
		Action: runTUI,
		Commands: []*cli.Command{
			NewTUICommand(),
			NewGenerateCommand(),
			NewModesCommand(),
			NewServeCommand(),
		},
	}
}

// loadConfig reads the config named by --config and applies --debug.
func loadConfig(cmd *cli.Command) (*config.Config, error) {
	cfg, err := config.Load(cmd.String("config"))
	if err != nil {
		return nil, err
	}
	if cmd.Bool("debug") {
		cfg.Backend.Debug = true
	}
	return cfg, nil
}

func logLevel(cfg *config.Config) string {
	if cfg.Backend.Debug {
		return "debug"
	}
	return cfg.Log.Level
}

// stderrLogger is used by the non-interactive commands.
func stderrLogger(cfg *config.Config) *slog.Logger {
	return logger.Init(logLevel(cfg), cfg.Log.Format, os.Stderr)
}

// fileLogger keeps the terminal clean for the TUI.
func fileLogger(cfg *config.Config) (*slog.Logger, func(), error) {
	path, err := cfg.LogPath()
	if err != nil {
		return nil, nil, err
	}
	log, closer, err := logger.InitFile(logLevel(cfg), cfg.Log.Format, path)
	if err != nil {
		return nil, nil, err
	}
	return log, func() { _ = closer.Close() }, nil
}

// requireCredential fails before any backend is built when the key is missing.
func requireCredential(cfg *config.Config) error {
	if err := cfg.RequireCredential(); err != nil {
		return fmt.Errorf("%w (config: %s)", err, cfg.Path())
	}
	return nil
}

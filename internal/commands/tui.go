package commands

import (
	"context"

	"github.com/urfave/cli/v3"

	"github.com/yourusername/talecraft/internal/ui"
)

// NewTUICommand returns the tui subcommand.
func NewTUICommand() *cli.Command {
	return &cli.Command{
		Name:   "tui",
		Usage:  "Start the interactive terminal UI (default)",
		Action: runTUI,
	}
}

func runTUI(ctx context.Context, cmd *cli.Command) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	if err := requireCredential(cfg); err != nil {
		return err
	}

	log, closeLog, err := fileLogger(cfg)
	if err != nil {
		return err
	}
	defer closeLog()

	log.Info("starting tui", "driver", cfg.Backend.Driver, "model", cfg.DefaultModel())
	return ui.Run(ctx, cfg, log)
}

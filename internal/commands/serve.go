package commands

import (
	"context"

	"github.com/urfave/cli/v3"

	"github.com/yourusername/talecraft/internal/backend"
	"github.com/yourusername/talecraft/internal/server"
)

// NewServeCommand returns the serve subcommand.
func NewServeCommand() *cli.Command {
	return &cli.Command{
		Name:  "serve",
		Usage: "Serve the generation API over HTTP",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "addr",
				Usage: "Address to listen on (default: server.addr from config)",
			},
		},
		Action: runServe,
	}
}

func runServe(ctx context.Context, cmd *cli.Command) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	if err := requireCredential(cfg); err != nil {
		return err
	}
	log := stderrLogger(cfg)

	// CLI flags override config
	if cmd.IsSet("addr") {
		cfg.Server.Addr = cmd.String("addr")
	}

	facade, err := backend.NewFacade(ctx, cfg, log)
	if err != nil {
		return err
	}
	return server.Run(ctx, cfg.Server.Addr, facade, log)
}

package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"

	"github.com/yourusername/talecraft/internal/commands"
	"github.com/yourusername/talecraft/internal/config"
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	cmd := commands.NewRootCommand()
	if err := cmd.Run(ctx, os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		if errors.Is(err, config.ErrMissingAPIKey) {
			fmt.Fprintln(os.Stderr, "Export the key in your shell, or point backend.api_key_env at the variable that holds it.")
		}
		os.Exit(1)
	}
}

package commands

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/urfave/cli/v3"

	"github.com/yourusername/talecraft/internal/modes"
)

// NewModesCommand returns the modes subcommand.
func NewModesCommand() *cli.Command {
	return &cli.Command{
		Name:  "modes",
		Usage: "List the generation modes and their fields",
		Action: func(_ context.Context, _ *cli.Command) error {
			printModes(os.Stdout)
			return nil
		},
	}
}

func printModes(w io.Writer) {
	for _, spec := range modes.All() {
		fmt.Fprintf(w, "%-16s %s\n", spec.Mode, spec.Description)
		for _, f := range spec.Fields {
			line := fmt.Sprintf("  --field %s=...", f.Name)
			if len(f.Choices) > 0 {
				line += "  one of: " + strings.Join(f.Choices, " | ")
			}
			fmt.Fprintln(w, line)
		}
	}
}

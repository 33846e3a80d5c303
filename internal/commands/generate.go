package commands

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/urfave/cli/v3"

	"github.com/yourusername/talecraft/internal/backend"
	"github.com/yourusername/talecraft/internal/generation"
	"github.com/yourusername/talecraft/internal/modes"
	"github.com/yourusername/talecraft/internal/renderer"
	"github.com/yourusername/talecraft/internal/safeio"
)

// NewGenerateCommand returns the generate subcommand.
func NewGenerateCommand() *cli.Command {
	return &cli.Command{
		Name:      "generate",
		Usage:     "Run one generation and print the result",
		ArgsUsage: "[text]",
		// Story text is full of commas; each --field is one value.
		DisableSliceFlagSeparator: true,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "mode",
				Aliases: []string{"m"},
				Usage:   "Mode id or alias: " + strings.Join(modes.Names(), ", "),
				Value:   string(modes.ModeStoryIdea),
			},
			&cli.StringSliceFlag{
				Name:    "field",
				Aliases: []string{"f"},
				Usage:   "Field value as name=value, repeatable. A value of @path reads the file; @@ keeps a literal @",
			},
			&cli.BoolFlag{
				Name:  "raw",
				Usage: "Print the text as returned, without markdown rendering",
			},
		},
		Action: runGenerate,
	}
}

// parseFields turns name=value pairs into a field map.
func parseFields(pairs []string) (map[string]string, error) {
	fields := make(map[string]string, len(pairs))
	for _, p := range pairs {
		name, value, ok := strings.Cut(p, "=")
		name = strings.TrimSpace(name)
		if !ok || name == "" {
			return nil, fmt.Errorf("invalid field %q, expected name=value", p)
		}
		fields[name] = value
	}
	return fields, nil
}

// buildRequest assembles the request from flags. Positional text fills the
// mode's free text field unless --field already set it.
func buildRequest(modeName string, pairs []string, text string) (generation.Request, error) {
	mode, err := modes.Parse(modeName)
	if err != nil {
		return generation.Request{}, err
	}
	fields, err := parseFields(pairs)
	if err != nil {
		return generation.Request{}, err
	}
	if text != "" {
		name, ok := modes.SpecFor(mode).TextField()
		if !ok {
			return generation.Request{}, fmt.Errorf("mode %s takes no free text", mode)
		}
		if _, set := fields[name]; !set {
			fields[name] = text
		}
	}
	return generation.Request{Mode: mode, Fields: fields}, nil
}

func runGenerate(ctx context.Context, cmd *cli.Command) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	req, err := buildRequest(cmd.String("mode"), cmd.StringSlice("field"), strings.Join(cmd.Args().Slice(), " "))
	if err != nil {
		return err
	}

	cwd, err := os.Getwd()
	if err != nil {
		return err
	}
	if req.Fields, err = safeio.ExpandFields(cwd, req.Fields); err != nil {
		return err
	}

	if err := requireCredential(cfg); err != nil {
		return err
	}
	log := stderrLogger(cfg)

	facade, err := backend.NewFacade(ctx, cfg, log)
	if err != nil {
		return err
	}

	res := facade.Generate(ctx, req)
	if !res.OK() {
		return fmt.Errorf("%s: %s", res.Kind, res.Message)
	}

	if cmd.Bool("raw") {
		fmt.Fprintln(os.Stdout, res.Text)
		return nil
	}
	fmt.Fprintln(os.Stdout, renderer.New(cfg.UI.Theme, cfg.UI.WordWrap).Render(res.Text))
	return nil
}

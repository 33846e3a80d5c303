package ui

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/atotto/clipboard"
	"github.com/chzyer/readline"
	"github.com/yourusername/talecraft/internal/modes"
)

var slashCommands = []string{
	"/idea", "/character", "/structure", "/dialogue", "/feedback",
	"/menu", "/models", "/settings", "/copy", "/clear", "/help",
}

// autoCompleter provides tab completion for commands
type autoCompleter struct{}

func (a *autoCompleter) Do(line []rune, pos int) (newLine [][]rune, length int) {
	lineStr := string(line[:pos])

	// Only autocomplete at the beginning of the line
	if !strings.HasPrefix(lineStr, "/") || strings.Contains(lineStr, " ") {
		return nil, 0
	}

	var suggestions [][]rune
	for _, cmd := range slashCommands {
		if strings.HasPrefix(cmd, lineStr) {
			suggestions = append(suggestions, []rune(cmd[len(lineStr):]))
		}
	}

	return suggestions, len(lineStr)
}

// parseInput splits "/cmd rest" into its parts. Plain text has no command.
func parseInput(input string) (command string, arg string) {
	if !strings.HasPrefix(input, "/") {
		return "", input
	}
	parts := strings.SplitN(input, " ", 2)
	command = strings.ToLower(strings.TrimPrefix(parts[0], "/"))
	if len(parts) > 1 {
		arg = strings.TrimSpace(parts[1])
	}
	return command, arg
}

// RunPrompt shows a command prompt that accepts /mode commands or 'm' for menu
func (a *App) RunPrompt(ctx context.Context) error {
	for {
		line, err := a.rl.Readline()
		if errors.Is(err, readline.ErrInterrupt) {
			if len(line) == 0 {
				return nil
			}
			continue
		} else if errors.Is(err, io.EOF) {
			return nil
		} else if err != nil {
			return err
		}

		input := strings.TrimSpace(line)
		if input == "" {
			continue
		}

		// Check for quit
		if input == "q" || input == "quit" || input == "exit" {
			return nil
		}

		if input == "m" || input == "menu" {
			input = "/menu"
		}

		if err := a.handle(ctx, input); err != nil {
			return err
		}
		if ctx.Err() != nil {
			return nil
		}
	}
}

func (a *App) handle(ctx context.Context, input string) error {
	command, arg := parseInput(input)

	switch command {
	case "menu":
		return a.ShowMenu(ctx)
	case "models":
		return a.configureModels(ctx)
	case "settings":
		return a.settings(ctx)
	case "help":
		a.printHelp()
		return nil
	case "copy":
		a.copyLast()
		return nil
	case "clear":
		a.sess.ClearDrafts()
		if err := a.sess.Save(); err != nil {
			fmt.Fprintln(a.out, errorStyle.Render("Error saving drafts: "+err.Error()))
		} else {
			fmt.Fprintln(a.out, successStyle.Render("Drafts cleared!"))
		}
		return nil
	case "":
		// Plain text goes to the current mode
		return a.quick(ctx, a.sess.Mode, arg)
	}

	mode, err := modes.Parse(command)
	if err != nil {
		fmt.Fprintln(a.out, errorStyle.Render("Unknown command: /"+command))
		fmt.Fprintln(a.out, dimStyle.Render("Available commands: "+strings.Join(slashCommands, ", ")+", or 'm' for menu"))
		return nil
	}
	if arg == "" {
		return a.runForm(ctx, mode, nil)
	}
	return a.quick(ctx, mode, arg)
}

// quick fills the mode's text field with text and generates right away when
// nothing else is needed; otherwise it opens the form prefilled.
func (a *App) quick(ctx context.Context, mode modes.Mode, text string) error {
	spec := modes.SpecFor(mode)
	name, ok := spec.TextField()
	if !ok {
		return a.runForm(ctx, mode, nil)
	}
	prefill := map[string]string{name: text}
	if len(spec.Fields) > 1 {
		return a.runForm(ctx, mode, prefill)
	}
	return a.generate(ctx, mode, prefill)
}

func (a *App) copyLast() {
	mode, text, ok := a.sess.Last()
	if !ok {
		fmt.Fprintln(a.out, dimStyle.Render("Nothing generated yet."))
		return
	}
	if err := clipboard.WriteAll(text); err != nil {
		fmt.Fprintln(a.out, errorStyle.Render("Clipboard unavailable: "+err.Error()))
		return
	}
	fmt.Fprintln(a.out, successStyle.Render("✓ Copied "+modes.SpecFor(mode).ResultLabel+" to clipboard"))
}

func (a *App) printHelp() {
	fmt.Fprintln(a.out)
	for _, spec := range modes.All() {
		fmt.Fprintf(a.out, "  %s  %s\n", promptStyle.Render(fmt.Sprintf("%-16s", "/"+string(spec.Mode))), spec.Description)
	}
	fmt.Fprintln(a.out, dimStyle.Render("  Short forms: /idea /character /structure /dialogue /feedback, each optionally followed by text"))
	fmt.Fprintln(a.out, dimStyle.Render("  Field values starting with @ load a file, e.g. @chapter1.md"))
	fmt.Fprintln(a.out, dimStyle.Render("  /menu /models /settings /copy /clear, q to quit"))
	fmt.Fprintln(a.out)
}

// ShowMenu displays the sidebar menu and runs the chosen item
func (a *App) ShowMenu(ctx context.Context) error {
	item, ok, err := showMenu(a.sess.Mode)
	if err != nil || !ok {
		return err
	}

	switch item.action {
	case actionMode:
		return a.runForm(ctx, item.mode, nil)
	case actionModels:
		return a.configureModels(ctx)
	case actionSettings:
		return a.settings(ctx)
	}
	return nil
}

package ui

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/atotto/clipboard"
	"github.com/briandowns/spinner"
	"github.com/chzyer/readline"
	"github.com/yourusername/talecraft/internal/generation"
	"github.com/yourusername/talecraft/internal/modes"
	"github.com/yourusername/talecraft/internal/safeio"
)

// errFormCancelled is returned when the user interrupts a form
var errFormCancelled = errors.New("form cancelled")

// runForm shows the mode's form prefilled from its draft, then generates
func (a *App) runForm(ctx context.Context, mode modes.Mode, prefill map[string]string) error {
	spec := modes.SpecFor(mode)
	a.sess.SetMode(mode)

	fmt.Fprintln(a.out, "\n"+titleStyle.Render(spec.Title))
	fmt.Fprintln(a.out, dimStyle.Render(spec.Description+" (Ctrl+C to cancel)"))

	values := a.sess.Draft(mode)
	for k, v := range prefill {
		values[k] = v
	}

	fields, err := a.collectFields(spec, values)
	if errors.Is(err, errFormCancelled) {
		fmt.Fprintln(a.out, dimStyle.Render("Cancelled."))
		return nil
	}
	if err != nil {
		return err
	}

	return a.generate(ctx, mode, fields)
}

func (a *App) collectFields(spec modes.Spec, values map[string]string) (map[string]string, error) {
	out := make(map[string]string, len(spec.Fields))
	for _, f := range spec.Fields {
		var (
			v   string
			err error
		)
		if len(f.Choices) > 0 {
			var ok bool
			v, ok, err = pickChoice(f, values[f.Name])
			if err == nil && !ok {
				err = errFormCancelled
			}
		} else {
			v, err = a.readField(f, values[f.Name])
		}
		if err != nil {
			return nil, err
		}
		out[f.Name] = v
	}
	return out, nil
}

// readField reads one text field. Multiline fields keep reading until an
// empty line.
func (a *App) readField(f modes.Field, current string) (string, error) {
	fmt.Fprintln(a.out, promptStyle.Render(f.Label+":"))
	if f.Placeholder != "" && current == "" {
		fmt.Fprintln(a.out, dimStyle.Render(f.Placeholder))
	}

	prev := a.rl.Config.Prompt
	defer a.rl.SetPrompt(prev)

	read := func(prompt, def string) (string, error) {
		a.rl.SetPrompt(prompt)
		line, err := a.rl.ReadlineWithDefault(def)
		if err != nil {
			return "", readErr(err)
		}
		return line, nil
	}

	if !f.Multiline {
		fmt.Fprintln(a.out, dimStyle.Render("(@file loads a file, @@ for a literal @)"))
		return read("  › ", current)
	}

	if strings.Contains(current, "\n") {
		fmt.Fprintln(a.out, dimStyle.Render("Saved text:"))
		for _, l := range strings.Split(current, "\n") {
			fmt.Fprintln(a.out, dimStyle.Render("  │ "+l))
		}
		fmt.Fprintln(a.out, dimStyle.Render("(Enter keeps the saved text, or type new text)"))
	}
	fmt.Fprintln(a.out, dimStyle.Render("(finish with an empty line; @file loads a file, @@ for a literal @)"))
	return readMultiline(read, current)
}

// readMultiline collects lines until an empty one. A single-line draft is
// offered for editing; a multi-line draft is kept whole when the first line
// is left empty.
func readMultiline(read func(prompt, def string) (string, error), current string) (string, error) {
	saved := strings.Contains(current, "\n")
	def := current
	if saved {
		def = ""
	}

	first, err := read("  › ", def)
	if err != nil {
		return "", err
	}
	if strings.TrimSpace(first) == "" {
		if saved {
			return current, nil
		}
		return first, nil
	}

	lines := []string{first}
	for {
		line, err := read("  … ", "")
		if err != nil {
			return "", err
		}
		if line == "" {
			break
		}
		lines = append(lines, line)
	}
	return strings.Join(lines, "\n"), nil
}

func readErr(err error) error {
	if errors.Is(err, readline.ErrInterrupt) || errors.Is(err, io.EOF) {
		return errFormCancelled
	}
	return err
}

// generate calls the facade and renders the result
func (a *App) generate(ctx context.Context, mode modes.Mode, fields map[string]string) error {
	spec := modes.SpecFor(mode)

	a.sess.SetMode(mode)
	a.sess.SaveDraft(mode, fields)
	if err := a.sess.Save(); err != nil {
		a.log.Warn("failed to save drafts", "error", err)
	}

	expanded, err := safeio.ExpandFields(a.root, fields)
	if err != nil {
		fmt.Fprintln(a.out, "\n"+warningStyle.Render("⚠️ "+err.Error()))
		return nil
	}

	s := spinner.New(spinner.CharSets[11], 100*time.Millisecond, spinner.WithWriter(a.out))
	s.Suffix = " " + spec.Progress
	s.Start()
	res := a.gen.Generate(ctx, generation.Request{Mode: mode, Fields: expanded})
	s.Stop()

	a.showResult(spec, res)
	return nil
}

func (a *App) showResult(spec modes.Spec, res generation.Result) {
	if !res.OK() {
		fmt.Fprintln(a.out, "\n"+warningStyle.Render("⚠️ "+failureText(res)))
		fmt.Fprintln(a.out)
		return
	}

	a.sess.SetLast(spec.Mode, res.Text)

	fmt.Fprintln(a.out, "\n"+successStyle.Render("✅ "+spec.Success))
	fmt.Fprintln(a.out, titleStyle.Render(spec.ResultLabel+":"))
	fmt.Fprintln(a.out, a.render.Render(res.Text))

	if a.cfg.UI.AutoCopy && strings.TrimSpace(res.Text) != "" {
		if err := clipboard.WriteAll(res.Text); err == nil {
			fmt.Fprintln(a.out, successStyle.Render("✓ Copied to clipboard"))
		}
	}
	fmt.Fprintln(a.out)
}

func failureText(res generation.Result) string {
	if res.Kind == generation.InvalidInput {
		return "Please fill in the form first: " + res.Message
	}
	return res.Message
}

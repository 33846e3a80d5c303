package ui

import (
	"context"
	"errors"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/yourusername/talecraft/internal/config"
	"github.com/yourusername/talecraft/internal/generation"
	"github.com/yourusername/talecraft/internal/modes"
)

func key(s string) tea.KeyMsg {
	switch s {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "up":
		return tea.KeyMsg{Type: tea.KeyUp}
	case "down":
		return tea.KeyMsg{Type: tea.KeyDown}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestParseInput(t *testing.T) {
	tests := []struct {
		in      string
		command string
		arg     string
	}{
		{"/idea a dragon", "idea", "a dragon"},
		{"/Menu", "menu", ""},
		{"/dialogue   two thieves  ", "dialogue", "two thieves"},
		{"just some text", "", "just some text"},
	}
	for _, tt := range tests {
		command, arg := parseInput(tt.in)
		if command != tt.command || arg != tt.arg {
			t.Fatalf("parseInput(%q) = (%q, %q), want (%q, %q)", tt.in, command, arg, tt.command, tt.arg)
		}
	}
}

func TestAutoCompleter(t *testing.T) {
	ac := &autoCompleter{}

	line := []rune("/id")
	suggestions, length := ac.Do(line, len(line))
	if length != 3 || len(suggestions) != 1 || string(suggestions[0]) != "ea" {
		t.Fatalf("unexpected completion: %q, %d", suggestions, length)
	}

	line = []rune("/c")
	suggestions, _ = ac.Do(line, len(line))
	if len(suggestions) != 3 {
		t.Fatalf("expected /character, /copy and /clear, got %q", suggestions)
	}

	line = []rune("/idea dra")
	if suggestions, _ := ac.Do(line, len(line)); suggestions != nil {
		t.Fatalf("expected no completion after a space, got %q", suggestions)
	}

	line = []rune("plain")
	if suggestions, _ := ac.Do(line, len(line)); suggestions != nil {
		t.Fatalf("expected no completion for plain text, got %q", suggestions)
	}
}

func TestMenuModel_ListsEveryMode(t *testing.T) {
	m := newMenuModel(modes.ModeDialogue)

	specs := modes.All()
	if len(m.choices) != len(specs)+2 {
		t.Fatalf("expected %d items, got %d", len(specs)+2, len(m.choices))
	}
	for i, spec := range specs {
		if m.choices[i].action != actionMode || m.choices[i].mode != spec.Mode {
			t.Fatalf("item %d: expected mode %s, got %+v", i, spec.Mode, m.choices[i])
		}
	}
	if m.choices[m.cursor].mode != modes.ModeDialogue {
		t.Fatalf("expected cursor on current mode, got %+v", m.choices[m.cursor])
	}
	if !strings.Contains(m.View(), "Dialogue") {
		t.Fatalf("expected view to mention the dialogue mode")
	}
}

func TestMenuModel_Navigation(t *testing.T) {
	var model tea.Model = newMenuModel(modes.ModeStoryIdea)

	model, _ = model.Update(key("up"))
	if model.(menuModel).cursor != 0 {
		t.Fatalf("cursor should not move above the first item")
	}
	model, _ = model.Update(key("down"))
	model, _ = model.Update(key("j"))
	model, cmd := model.Update(key("enter"))
	m := model.(menuModel)
	if !m.selected || cmd == nil {
		t.Fatalf("expected selection to quit the menu")
	}
	if m.choices[m.cursor].mode != modes.ModePlotStructure {
		t.Fatalf("expected plot structure, got %+v", m.choices[m.cursor])
	}

	model, _ = newMenuModel(modes.ModeStoryIdea).Update(key("q"))
	if model.(menuModel).selected {
		t.Fatalf("q should leave without selecting")
	}
}

func TestChoiceModel(t *testing.T) {
	spec := modes.SpecFor(modes.ModePlotStructure)
	f, ok := spec.Field("structure_choice")
	if !ok {
		t.Fatalf("plot structure has no structure_choice field")
	}

	m := newChoiceModel(f, modes.Structures[2])
	if m.cursor != 2 {
		t.Fatalf("expected cursor on current value, got %d", m.cursor)
	}
	if newChoiceModel(f, "Seven-Point").cursor != 0 {
		t.Fatalf("unknown current value should start at the first choice")
	}

	var model tea.Model = m
	model, _ = model.Update(key("k"))
	model, _ = model.Update(key("enter"))
	got := model.(choiceModel)
	if !got.selected || got.choices[got.cursor] != modes.Structures[1] {
		t.Fatalf("expected %q to be selected, got %+v", modes.Structures[1], got)
	}
}

func TestNextTheme(t *testing.T) {
	if nextTheme("dark") != "light" || nextTheme("light") != "notty" || nextTheme("notty") != "dark" {
		t.Fatalf("themes should cycle dark, light, notty")
	}
	if nextTheme("auto") != "dark" {
		t.Fatalf("unknown theme should reset to dark")
	}
}

func TestSettingsModel_Toggle(t *testing.T) {
	t.Setenv("TALECRAFT_CONFIG_DIR", t.TempDir())
	cfg, err := config.Load("")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	debug := cfg.Backend.Debug

	var model tea.Model = newSettingsModel(cfg)
	model, _ = model.Update(key("enter"))
	if cfg.Backend.Debug == debug {
		t.Fatalf("expected debug to be toggled")
	}
	if err := model.(settingsModel).err; err != nil {
		t.Fatalf("save failed: %v", err)
	}

	model, _ = model.Update(key("down"))
	model, _ = model.Update(key("down"))
	theme := cfg.UI.Theme
	model.Update(key(" "))
	if cfg.UI.Theme != nextTheme(theme) {
		t.Fatalf("expected theme to advance from %q, got %q", theme, cfg.UI.Theme)
	}
}

type stubLister struct {
	models []string
	err    error
}

func (s stubLister) ListModels(context.Context) ([]string, error) {
	return s.models, s.err
}

func TestFirstRunModel(t *testing.T) {
	lister := stubLister{models: []string{"llama3", "mistral"}}
	m := newFirstRunModel(context.Background(), lister)

	var model tea.Model = m
	model, _ = model.Update(m.Init()())
	model, _ = model.Update(key("down"))
	model, _ = model.Update(key("enter"))
	got := model.(firstRunModel)
	if !got.selected || got.availableModels[got.cursor] != "mistral" {
		t.Fatalf("expected mistral to be selected, got %+v", got)
	}

	failing := newFirstRunModel(context.Background(), stubLister{err: errors.New("connection refused")})
	model, _ = failing.Update(failing.Init()())
	if !strings.Contains(model.View(), "connection refused") {
		t.Fatalf("expected the error in the view")
	}
}

func TestModelConfigModel_SetsModelForMode(t *testing.T) {
	t.Setenv("TALECRAFT_CONFIG_DIR", t.TempDir())
	cfg, err := config.Load("")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	m := newModelConfigModel(context.Background(), stubLister{models: []string{"a", "b"}}, cfg)
	var model tea.Model = m
	model, _ = model.Update(m.Init()())
	model, _ = model.Update(key("down")) // character
	model, _ = model.Update(key("enter"))
	model, _ = model.Update(key("down"))
	model, _ = model.Update(key("enter"))

	if got := cfg.GetModelForMode(modes.ModeCharacter); got != "b" {
		t.Fatalf("expected character model b, got %q", got)
	}
	if got := model.(modelConfigModel); got.state != stateSelectMode || got.err != nil {
		t.Fatalf("expected to return to mode list, got state %d err %v", got.state, got.err)
	}
}

func TestFailureText(t *testing.T) {
	got := failureText(generation.Failure(generation.InvalidInput, "missing required field(s): scene"))
	if !strings.HasPrefix(got, "Please fill in the form first") {
		t.Fatalf("unexpected text %q", got)
	}
	got = failureText(generation.Failure(generation.BackendError, "An error occurred: boom"))
	if got != "An error occurred: boom" {
		t.Fatalf("unexpected text %q", got)
	}
}

type scriptedReads struct {
	lines    []string
	defaults []string
}

func (s *scriptedReads) read(_ string, def string) (string, error) {
	s.defaults = append(s.defaults, def)
	if len(s.lines) == 0 {
		return "", nil
	}
	line := s.lines[0]
	s.lines = s.lines[1:]
	return line, nil
}

func TestReadMultiline_KeepsSavedDraft(t *testing.T) {
	draft := "Mara boards the ship.\nThe captain waits.\nRain starts."

	s := &scriptedReads{lines: []string{""}}
	got, err := readMultiline(s.read, draft)
	if err != nil {
		t.Fatalf("readMultiline: %v", err)
	}
	if got != draft {
		t.Fatalf("expected the whole draft back, got %q", got)
	}
	if len(s.defaults) != 1 || s.defaults[0] != "" {
		t.Fatalf("a multi-line draft should not be prefilled line by line, got %q", s.defaults)
	}

	s = &scriptedReads{lines: []string{"A new opening.", "Second line.", ""}}
	got, err = readMultiline(s.read, draft)
	if err != nil {
		t.Fatalf("readMultiline: %v", err)
	}
	if got != "A new opening.\nSecond line." {
		t.Fatalf("expected the replacement text, got %q", got)
	}
}

func TestReadMultiline_PrefillsSingleLineDraft(t *testing.T) {
	s := &scriptedReads{lines: []string{"a lighthouse keeper", "and a storm", ""}}
	got, err := readMultiline(s.read, "a lighthouse keeper")
	if err != nil {
		t.Fatalf("readMultiline: %v", err)
	}
	if s.defaults[0] != "a lighthouse keeper" {
		t.Fatalf("expected the draft as the first default, got %q", s.defaults[0])
	}
	if got != "a lighthouse keeper\nand a storm" {
		t.Fatalf("unexpected text %q", got)
	}

	s = &scriptedReads{lines: []string{"   "}}
	if got, _ := readMultiline(s.read, ""); strings.TrimSpace(got) != "" {
		t.Fatalf("blank input should stay blank, got %q", got)
	}
}

func TestReadMultiline_PropagatesCancel(t *testing.T) {
	read := func(string, string) (string, error) { return "", errFormCancelled }
	if _, err := readMultiline(read, "x\ny"); !errors.Is(err, errFormCancelled) {
		t.Fatalf("expected errFormCancelled, got %v", err)
	}
}

package ui

import (
	"fmt"
	"slices"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/yourusername/talecraft/internal/modes"
)

// choiceModel picks one value of a field with a closed choice set
type choiceModel struct {
	label    string
	choices  []string
	cursor   int
	selected bool
}

func newChoiceModel(f modes.Field, current string) choiceModel {
	cursor := slices.Index(f.Choices, current)
	if cursor < 0 {
		cursor = 0
	}
	return choiceModel{label: f.Label, choices: f.Choices, cursor: cursor}
}

func (m choiceModel) Init() tea.Cmd {
	return nil
}

func (m choiceModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q", "esc":
			return m, tea.Quit

		case "up", "k":
			if m.cursor > 0 {
				m.cursor--
			}

		case "down", "j":
			if m.cursor < len(m.choices)-1 {
				m.cursor++
			}

		case "enter":
			m.selected = true
			return m, tea.Quit
		}
	}

	return m, nil
}

func (m choiceModel) View() string {
	var s strings.Builder
	s.WriteString(promptStyle.Render(m.label) + "\n")
	for i, c := range m.choices {
		if m.cursor == i {
			s.WriteString("> " + selectedStyle.Render(c) + "\n")
		} else {
			s.WriteString("  " + c + "\n")
		}
	}
	return s.String()
}

// pickChoice runs the picker inline and returns the chosen value
func pickChoice(f modes.Field, current string) (string, bool, error) {
	p := tea.NewProgram(newChoiceModel(f, current))
	m, err := p.Run()
	if err != nil {
		return "", false, fmt.Errorf("error running picker: %w", err)
	}
	model := m.(choiceModel)
	if !model.selected {
		return "", false, nil
	}
	return model.choices[model.cursor], true, nil
}

package ui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/yourusername/talecraft/internal/modes"
)

type menuAction int

const (
	actionMode menuAction = iota
	actionModels
	actionSettings
)

type menuItem struct {
	name        string
	description string
	action      menuAction
	mode        modes.Mode
}

type menuModel struct {
	title    string
	choices  []menuItem
	cursor   int
	selected bool
}

// newMenuModel lists every registered mode followed by the utility screens.
// Adding a mode to the registry adds it here.
func newMenuModel(current modes.Mode) menuModel {
	var items []menuItem
	cursor := 0
	for _, spec := range modes.All() {
		if spec.Mode == current {
			cursor = len(items)
		}
		items = append(items, menuItem{name: spec.Title, description: spec.Description, action: actionMode, mode: spec.Mode})
	}
	items = append(items,
		menuItem{name: "Configure Models", description: "Assign different models to different modes", action: actionModels},
		menuItem{name: "Settings", description: "Toggle debug logging, auto-copy and theme", action: actionSettings},
	)
	return menuModel{
		title:   "📖 AI Storytelling Companion",
		choices: items,
		cursor:  cursor,
	}
}

func (m menuModel) Init() tea.Cmd {
	return nil
}

func (m menuModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
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

func (m menuModel) View() string {
	var side strings.Builder
	side.WriteString(titleStyle.Render(m.title) + "\n\n")
	for i, choice := range m.choices {
		if m.cursor == i {
			side.WriteString("> " + selectedStyle.Render(choice.name) + "\n")
		} else {
			side.WriteString("  " + choice.name + "\n")
		}
	}

	current := m.choices[m.cursor]
	var detail strings.Builder
	detail.WriteString(titleStyle.Render(current.name) + "\n\n")
	detail.WriteString(dimStyle.Render(current.description) + "\n")
	if current.action == actionMode {
		spec := modes.SpecFor(current.mode)
		detail.WriteString("\n")
		for _, f := range spec.Fields {
			detail.WriteString(fmt.Sprintf("• %s\n", f.Label))
		}
		detail.WriteString("\n" + dimStyle.Render("Enter: "+spec.Action))
	}

	return "\n" + lipgloss.JoinHorizontal(lipgloss.Top,
		sidebarStyle.Render(side.String()),
		detailStyle.Render(detail.String()),
	) + "\n\n" + dimStyle.Render("↑/↓ to move, Enter to select, q to go back") + "\n"
}

// showMenu runs the sidebar and returns the chosen item, or false if the user left
func showMenu(current modes.Mode) (menuItem, bool, error) {
	p := tea.NewProgram(newMenuModel(current), tea.WithAltScreen())
	m, err := p.Run()
	if err != nil {
		return menuItem{}, false, fmt.Errorf("error running menu: %w", err)
	}

	model := m.(menuModel)
	if !model.selected {
		return menuItem{}, false, nil
	}
	return model.choices[model.cursor], true, nil
}

package ui

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/yourusername/talecraft/internal/backend"
)

type firstRunModel struct {
	ctx             context.Context
	lister          backend.ModelLister
	availableModels []string
	cursor          int
	selected        bool
	err             error
	loading         bool
}

func newFirstRunModel(ctx context.Context, lister backend.ModelLister) firstRunModel {
	return firstRunModel{
		ctx:     ctx,
		lister:  lister,
		loading: true,
	}
}

func (m firstRunModel) Init() tea.Cmd {
	return loadModels(m.ctx, m.lister)
}

func (m firstRunModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case modelsLoadedMsg:
		m.availableModels = msg.models
		m.loading = false
		return m, nil

	case errMsg:
		m.err = msg.err
		m.loading = false
		return m, nil

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
		if m.loading {
			return m, nil
		}

		switch msg.String() {
		case "q":
			return m, tea.Quit

		case "up", "k":
			if m.cursor > 0 {
				m.cursor--
			}

		case "down", "j":
			if m.cursor < len(m.availableModels)-1 {
				m.cursor++
			}

		case "enter":
			if len(m.availableModels) > 0 {
				m.selected = true
				return m, tea.Quit
			}
		}
	}

	return m, nil
}

func (m firstRunModel) View() string {
	var s strings.Builder

	s.WriteString("\n" + titleStyle.Render("📖 Welcome to the AI Storytelling Companion!") + "\n\n")

	if m.err != nil {
		s.WriteString(errorStyle.Render("Error: "+m.err.Error()) + "\n\n")
		s.WriteString(dimStyle.Render("Press q to quit") + "\n")
		return s.String()
	}

	if m.loading {
		s.WriteString(dimStyle.Render("Detecting available models...") + "\n")
		return s.String()
	}

	if len(m.availableModels) == 0 {
		s.WriteString(errorStyle.Render("No models found!") + "\n\n")
		s.WriteString(dimStyle.Render("For Ollama, install a model first with: ollama pull llama3") + "\n")
		s.WriteString(dimStyle.Render("Press q to quit") + "\n")
		return s.String()
	}

	s.WriteString(dimStyle.Render(fmt.Sprintf("Found %d model(s). Select a default model:", len(m.availableModels))) + "\n\n")

	for i, name := range m.availableModels {
		if m.cursor == i {
			s.WriteString("> " + selectedStyle.Render(name) + "\n")
		} else {
			s.WriteString("  " + name + "\n")
		}
	}

	s.WriteString("\n")
	s.WriteString(dimStyle.Render("This model will be used for all modes by default.") + "\n")
	s.WriteString(dimStyle.Render("You can configure different models per mode later via 'Configure Models'.") + "\n\n")
	s.WriteString(dimStyle.Render("Press Enter to select, q to quit") + "\n")

	return s.String()
}

// RunFirstRun shows the first-run model selection and returns the selected model
func RunFirstRun(ctx context.Context, lister backend.ModelLister) (string, error) {
	p := tea.NewProgram(newFirstRunModel(ctx, lister), tea.WithAltScreen())
	m, err := p.Run()
	if err != nil {
		return "", err
	}

	model := m.(firstRunModel)
	if model.err != nil {
		return "", model.err
	}

	if !model.selected || len(model.availableModels) == 0 {
		return "", fmt.Errorf("no model selected")
	}

	return model.availableModels[model.cursor], nil
}

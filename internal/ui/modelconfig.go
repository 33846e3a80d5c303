package ui

import (
	"context"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/yourusername/talecraft/internal/backend"
	"github.com/yourusername/talecraft/internal/config"
	"github.com/yourusername/talecraft/internal/modes"
)

type modelsLoadedMsg struct {
	models []string
}

type errMsg struct {
	err error
}

type configState int

const (
	stateSelectMode configState = iota
	stateSelectModel
)

type modelConfigModel struct {
	ctx             context.Context
	lister          backend.ModelLister
	cfg             *config.Config
	availableModels []string
	specs           []modes.Spec
	currentMode     modes.Mode
	cursor          int
	modelCursor     int
	state           configState
	err             error
}

func newModelConfigModel(ctx context.Context, lister backend.ModelLister, cfg *config.Config) modelConfigModel {
	return modelConfigModel{
		ctx:    ctx,
		lister: lister,
		cfg:    cfg,
		specs:  modes.All(),
		state:  stateSelectMode,
	}
}

func loadModels(ctx context.Context, lister backend.ModelLister) tea.Cmd {
	return func() tea.Msg {
		models, err := lister.ListModels(ctx)
		if err != nil {
			return errMsg{err}
		}
		return modelsLoadedMsg{models}
	}
}

func (m modelConfigModel) Init() tea.Cmd {
	return loadModels(m.ctx, m.lister)
}

func (m modelConfigModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case modelsLoadedMsg:
		m.availableModels = msg.models
		return m, nil

	case errMsg:
		m.err = msg.err
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q":
			return m, tea.Quit

		case "esc", "left", "h":
			if m.state == stateSelectModel {
				m.state = stateSelectMode
				m.modelCursor = 0
			} else {
				return m, tea.Quit
			}

		case "up", "k":
			if m.state == stateSelectMode {
				if m.cursor > 0 {
					m.cursor--
				}
			} else if m.modelCursor > 0 {
				m.modelCursor--
			}

		case "down", "j":
			if m.state == stateSelectMode {
				if m.cursor < len(m.specs)-1 {
					m.cursor++
				}
			} else if m.modelCursor < len(m.availableModels)-1 {
				m.modelCursor++
			}

		case "enter":
			if m.state == stateSelectMode {
				m.currentMode = m.specs[m.cursor].Mode
				m.state = stateSelectModel
				m.modelCursor = 0
			} else if len(m.availableModels) > 0 {
				// Save selected model for current mode
				m.cfg.SetModelForMode(m.currentMode, m.availableModels[m.modelCursor])
				if err := m.cfg.Save(); err != nil {
					m.err = err
				}
				m.state = stateSelectMode
			}
		}
	}

	return m, nil
}

func (m modelConfigModel) View() string {
	var s strings.Builder

	s.WriteString("\n" + titleStyle.Render("⚙️  Configure Models") + "\n\n")

	if m.err != nil {
		s.WriteString(errorStyle.Render("Error: "+m.err.Error()) + "\n\n")
		s.WriteString(dimStyle.Render("Press q to go back") + "\n")
		return s.String()
	}

	if m.availableModels == nil {
		s.WriteString(dimStyle.Render("Loading models..."))
		return s.String()
	}

	if m.state == stateSelectMode {
		s.WriteString(dimStyle.Render("Select a mode to configure:") + "\n\n")

		for i, spec := range m.specs {
			if m.cursor == i {
				s.WriteString("> " + selectedStyle.Render(spec.Title) + "\n")
			} else {
				s.WriteString("  " + spec.Title + "\n")
			}
			s.WriteString("  " + dimStyle.Render("Current: "+m.cfg.GetModelForMode(spec.Mode)) + "\n")
		}

		s.WriteString("\n" + dimStyle.Render("Press Enter to change, left/h to go back, q to quit") + "\n")
		return s.String()
	}

	s.WriteString(dimStyle.Render("Select model for ") + titleStyle.Render(modes.SpecFor(m.currentMode).Title) + dimStyle.Render(":") + "\n\n")
	for i, name := range m.availableModels {
		if m.modelCursor == i {
			s.WriteString("> " + selectedStyle.Render(name) + "\n")
		} else {
			s.WriteString("  " + name + "\n")
		}
	}
	s.WriteString("\n" + dimStyle.Render("Press Enter to select, left/h/Esc to go back") + "\n")

	return s.String()
}

// RunModelConfig starts the model configuration UI
func RunModelConfig(ctx context.Context, lister backend.ModelLister, cfg *config.Config) error {
	p := tea.NewProgram(newModelConfigModel(ctx, lister, cfg), tea.WithAltScreen())
	_, err := p.Run()
	return err
}

func (a *App) configureModels(ctx context.Context) error {
	lister, err := backend.Lister(ctx, a.cfg)
	if err != nil {
		return err
	}
	if err := RunModelConfig(ctx, lister, a.cfg); err != nil {
		return err
	}
	return a.rebuild(ctx)
}

package ui

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/yourusername/talecraft/internal/config"
	"github.com/yourusername/talecraft/internal/logger"
)

var themes = []string{"dark", "light", "notty"}

type settingsModel struct {
	cfg      *config.Config
	cursor   int
	settings []settingItem
	err      error
}

type settingItem struct {
	name        string
	description string
	getValue    func(*config.Config) string
	toggle      func(*config.Config)
}

func onOff(v bool) string {
	if v {
		return successStyle.Render("Enabled")
	}
	return dimStyle.Render("Disabled")
}

func newSettingsModel(cfg *config.Config) settingsModel {
	return settingsModel{
		cfg: cfg,
		settings: []settingItem{
			{
				name:        "Debug Mode",
				description: "Log prompts and responses to the log file",
				getValue:    func(c *config.Config) string { return onOff(c.Backend.Debug) },
				toggle:      func(c *config.Config) { c.Backend.Debug = !c.Backend.Debug },
			},
			{
				name:        "Auto-copy",
				description: "Copy every generated result to the clipboard",
				getValue:    func(c *config.Config) string { return onOff(c.UI.AutoCopy) },
				toggle:      func(c *config.Config) { c.UI.AutoCopy = !c.UI.AutoCopy },
			},
			{
				name:        "Theme",
				description: "Markdown style for generated text",
				getValue:    func(c *config.Config) string { return selectedStyle.Render(c.UI.Theme) },
				toggle:      func(c *config.Config) { c.UI.Theme = nextTheme(c.UI.Theme) },
			},
		},
	}
}

func nextTheme(current string) string {
	for i, t := range themes {
		if t == current {
			return themes[(i+1)%len(themes)]
		}
	}
	return themes[0]
}

func (m settingsModel) Init() tea.Cmd {
	return nil
}

func (m settingsModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q", "esc", "left", "h":
			return m, tea.Quit

		case "up", "k":
			if m.cursor > 0 {
				m.cursor--
			}

		case "down", "j":
			if m.cursor < len(m.settings)-1 {
				m.cursor++
			}

		case "enter", " ":
			// Toggle the setting
			if m.cursor < len(m.settings) {
				m.settings[m.cursor].toggle(m.cfg)
				m.err = m.cfg.Save()
			}
		}
	}

	return m, nil
}

func (m settingsModel) View() string {
	s := "\n" + titleStyle.Render("⚙️  Settings") + "\n\n"
	s += dimStyle.Render("Toggle settings with Enter or Space. Press 'q' to go back.") + "\n\n"

	for i, setting := range m.settings {
		cursor := " "
		if m.cursor == i {
			cursor = titleStyle.Render("›")
		}

		s += fmt.Sprintf("%s %s: %s\n", cursor, setting.name, setting.getValue(m.cfg))
		s += fmt.Sprintf("  %s\n\n", dimStyle.Render(setting.description))
	}

	if m.err != nil {
		s += errorStyle.Render("Error saving config: "+m.err.Error()) + "\n"
	}

	return s
}

// RunSettings shows the settings menu
func RunSettings(cfg *config.Config) error {
	p := tea.NewProgram(newSettingsModel(cfg), tea.WithAltScreen())
	_, err := p.Run()
	return err
}

func (a *App) settings(ctx context.Context) error {
	if err := RunSettings(a.cfg); err != nil {
		return err
	}
	if a.cfg.Backend.Debug {
		logger.SetLevel("debug")
	} else {
		logger.SetLevel(a.cfg.Log.Level)
	}
	return a.rebuild(ctx)
}

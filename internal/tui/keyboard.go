package tui

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

// handleKeyMsg handles keyboard input
func (m Model) handleKeyMsg(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	// Handle state-specific keys
	switch m.State {
	case StateHelp:
		if key.Matches(msg, Keys.Escape, Keys.Help, Keys.Quit) {
			m.setState(StateViewing)
		}
		return m, nil

	case StatePicking:
		return m.handlePickerKey(msg)
	}

	// Global keys
	switch {
	case key.Matches(msg, Keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, Keys.Help):
		m.setState(StateHelp)
		return m, nil

	case key.Matches(msg, Keys.Sets):
		m.setState(StatePicking)
		m.Picker.Show()
		return m, nil

	case key.Matches(msg, Keys.Left):
		m.nudge(-1)
		return m, nil

	case key.Matches(msg, Keys.Right):
		m.nudge(1)
		return m, nil

	case key.Matches(msg, Keys.Open):
		if m.session == nil || m.deps.Launcher == nil {
			return m, nil
		}
		url := m.session.rotator.Container().Source()
		if url == "" {
			return m, nil
		}
		return m, LaunchViewerCmd(m.deps.Launcher, url)
	}

	return m, nil
}

// handlePickerKey routes keys to the set picker
func (m Model) handlePickerKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c":
		return m, tea.Quit
	case "esc":
		m.Picker.Hide()
		if m.session == nil {
			return m, tea.Quit
		}
		m.setState(StateViewing)
		return m, nil
	}

	picker, cmd, chosen := m.Picker.Update(msg)
	m.Picker = picker
	if !chosen {
		return m, cmd
	}

	set, _ := m.Picker.Selected()
	m.Picker.Hide()
	return m, m.openSet(set)
}

package app

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/ryan-rushton/drawer/internal/messages"
)

// Model is the top-level program model. It owns the drawer screen and
// decides what happens after a launch.
type Model struct {
	current       tea.Model
	closeOnLaunch bool
}

func New(screen tea.Model, closeOnLaunch bool) Model {
	return Model{
		current:       screen,
		closeOnLaunch: closeOnLaunch,
	}
}

func (m Model) Init() tea.Cmd {
	return m.current.Init()
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok && key.String() == "ctrl+c" {
		return m, tea.Quit
	}

	if _, ok := msg.(messages.LaunchedMsg); ok && m.closeOnLaunch {
		return m, tea.Quit
	}

	updated, cmd := m.current.Update(msg)
	m.current = updated
	return m, cmd
}

func (m Model) View() string {
	return m.current.View()
}

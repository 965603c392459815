package button

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

// KeyMap defines the button's key bindings.
type KeyMap struct {
	Activate key.Binding
	Dismiss  key.Binding
	Motion   key.Binding
	Help     key.Binding
	Quit     key.Binding
}

// DefaultKeyMap returns the standard bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Activate: key.NewBinding(
			key.WithKeys("enter", " "),
			key.WithHelp("enter/space", "save"),
		),
		Dismiss: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "dismiss"),
		),
		Motion: key.NewBinding(
			key.WithKeys("m"),
			key.WithHelp("m", "reduced motion"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "help"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// ShortHelp implements help.KeyMap.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Activate, k.Dismiss, k.Help, k.Quit}
}

// FullHelp implements help.KeyMap.
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Activate, k.Dismiss},
		{k.Motion, k.Help, k.Quit},
	}
}

// HandleKeyMsg processes keyboard input.
// Returns true if the key was handled, false otherwise.
func (m *Model) HandleKeyMsg(msg tea.KeyMsg) (bool, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		m.quit()
		return true, tea.Quit

	case key.Matches(msg, m.keys.Activate):
		// The controller swallows activation while busy.
		m.ctrl.HandleActivation()
		return true, nil

	case key.Matches(msg, m.keys.Dismiss):
		m.ctrl.HandleExternalDismiss()
		return true, nil

	case key.Matches(msg, m.keys.Motion):
		m.driver.SetReducedMotion(!m.driver.ReducedMotion())
		return true, nil

	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
		return true, nil
	}
	return false, nil
}

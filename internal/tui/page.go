package tui

import tea "github.com/charmbracelet/bubbletea"

// page is one tab of the main screen.
type page interface {
	Init() tea.Cmd
	Update(msg tea.Msg) tea.Cmd
	View() string

	// title is the tab label.
	title() string

	// capturing reports that a form or a dialog is open and the page wants
	// every key, including the global ones.
	capturing() bool
}

package tui

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/MKhiriev/go-data-hub/internal/mock"
	"github.com/MKhiriev/go-data-hub/models"
)

var testSelf = models.Identity{Email: "ana@example.org", DisplayName: "Ana", LoggedIn: true}

func newAPI(t *testing.T) *mock.MockServerAdapter {
	t.Helper()
	return mock.NewMockServerAdapter(gomock.NewController(t))
}

func press(s string) tea.KeyMsg {
	switch s {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "tab":
		return tea.KeyMsg{Type: tea.KeyTab}
	case "shift+tab":
		return tea.KeyMsg{Type: tea.KeyShiftTab}
	case "up":
		return tea.KeyMsg{Type: tea.KeyUp}
	case "down":
		return tea.KeyMsg{Type: tea.KeyDown}
	case "ctrl+c":
		return tea.KeyMsg{Type: tea.KeyCtrlC}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func typeText(p page, s string) {
	for _, r := range s {
		p.Update(press(string(r)))
	}
}

// run executes cmd and returns its message.
func run(t *testing.T, cmd tea.Cmd) tea.Msg {
	t.Helper()
	require.NotNil(t, cmd)
	return cmd()
}

func stubClipboard(t *testing.T, err error) *string {
	t.Helper()
	var copied string
	prev := writeClipboard
	writeClipboard = func(s string) error {
		copied = s
		return err
	}
	t.Cleanup(func() { writeClipboard = prev })
	return &copied
}

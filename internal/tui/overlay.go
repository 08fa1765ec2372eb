package tui

import "strings"

// confirmModel asks before a row is removed from a table.
type confirmModel struct {
	message string
}

func (m confirmModel) View() string {
	return renderOverlay("", `Excluir "`+m.message+`"?`, "y sim    n não")
}

type errorOverlayModel struct {
	message string
}

func (m errorOverlayModel) View() string {
	return renderOverlay(errorStyle.Render("Erro"), m.message, "enter / esc fechar")
}

func renderOverlay(title, body, hint string) string {
	parts := make([]string, 0, 3)
	if title != "" {
		parts = append(parts, title)
	}
	parts = append(parts, body, hint)
	return overlayBoxStyle.Render(strings.Join(parts, "\n\n"))
}

package tui

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/MKhiriev/go-data-hub/models"
)

const (
	uiDivider   = "──────────────────────────────────────────────────────"
	maxBarWidth = 30
)

func renderPage(title, data, hotKeys string) string {
	var b strings.Builder

	b.WriteString(titleStyle.Render(title))
	b.WriteString("\n")
	b.WriteString("  ")
	b.WriteString(uiDivider)
	b.WriteString("\n\n")

	if strings.TrimSpace(data) != "" {
		lines := strings.Split(data, "\n")
		for _, line := range lines {
			b.WriteString("  ")
			b.WriteString(line)
			b.WriteString("\n")
		}
	} else {
		b.WriteString("  -\n")
	}

	b.WriteString("\n")
	b.WriteString("  ")
	b.WriteString(uiDivider)
	b.WriteString("\n")

	if strings.TrimSpace(hotKeys) != "" {
		b.WriteString("  ")
		b.WriteString(helpStyle.Render(hotKeys))
		b.WriteString("\n")
	}
	b.WriteString("  ")
	b.WriteString(helpStyle.Render("ctrl+c: sair"))

	return b.String()
}

func valueOrDash(v string) string {
	if strings.TrimSpace(v) == "" {
		return "-"
	}
	return v
}

// fitText cuts v to max runes, marking the cut with "...".
func fitText(v string, max int) string {
	if max <= 0 || utf8.RuneCountInString(v) <= max {
		return v
	}
	r := []rune(v)
	if max <= 3 {
		return string(r[:max])
	}
	return string(r[:max-3]) + "..."
}

// padRight pads v with spaces to width runes.
func padRight(v string, width int) string {
	n := utf8.RuneCountInString(v)
	if n >= width {
		return v
	}
	return v + strings.Repeat(" ", width-n)
}

// renderBars draws one horizontal bar per category, scaled to the largest
// count. limit <= 0 draws every category.
func renderBars(title string, counts []models.CategoryCount, limit int) string {
	var b strings.Builder
	b.WriteString(titleStyle.Render(title))
	b.WriteString("\n")

	if len(counts) == 0 {
		b.WriteString("  -\n")
		return b.String()
	}
	if limit > 0 && len(counts) > limit {
		counts = counts[:limit]
	}

	peak, labelWidth := 0, 0
	for _, c := range counts {
		peak = max(peak, c.Count)
		labelWidth = max(labelWidth, utf8.RuneCountInString(fitText(c.Label, 24)))
	}

	for _, c := range counts {
		width := 0
		if peak > 0 {
			width = c.Count * maxBarWidth / peak
		}
		if c.Count > 0 && width == 0 {
			width = 1
		}
		fmt.Fprintf(&b, "  %s %s %d\n",
			padRight(fitText(c.Label, 24), labelWidth),
			barStyle.Render(strings.Repeat("█", width)),
			c.Count)
	}
	return b.String()
}

func formatCurrency(v *float64) string {
	if v == nil {
		return "-"
	}
	s := fmt.Sprintf("%.2f", *v)
	return "R$ " + strings.Replace(s, ".", ",", 1)
}

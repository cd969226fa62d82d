package viz

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

type styles struct {
	title, subtle, label, value, active, err lipgloss.Style
	panel, plot                              lipgloss.Style
	start, end                               lipgloss.Style
	high, mid, low                           lipgloss.Style
}

func newStyles(t Theme) styles {
	return styles{
		title:  lipgloss.NewStyle().Foreground(t.Primary).Bold(true),
		subtle: lipgloss.NewStyle().Foreground(t.Muted),
		label:  lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
		value:  lipgloss.NewStyle().Foreground(t.Text),
		active: lipgloss.NewStyle().Foreground(lipgloss.Color("205")).Bold(true),
		err:    lipgloss.NewStyle().Foreground(t.Error).Bold(true),
		panel: lipgloss.NewStyle().
			Border(lipgloss.NormalBorder(), false, false, false, true).
			BorderForeground(lipgloss.Color("240")).
			Padding(0, 2),
		plot:  lipgloss.NewStyle().Padding(1, 2),
		start: lipgloss.NewStyle().Foreground(t.Start).Bold(true),
		end:   lipgloss.NewStyle().Foreground(t.End).Bold(true),
		high:  lipgloss.NewStyle().Foreground(t.Recovered),
		mid:   lipgloss.NewStyle().Foreground(t.Susceptible),
		low:   lipgloss.NewStyle().Foreground(t.Infected),
	}
}

// sliderBar renders ratio in [0, 1] as a filled bar of the given width.
func (s styles) sliderBar(ratio float64, width int) string {
	filled := int(ratio*float64(width) + 0.5)
	if filled > width {
		filled = width
	}
	if filled < 0 {
		filled = 0
	}

	bar := strings.Repeat("█", filled) + strings.Repeat("░", width-filled)
	switch {
	case ratio > 0.8:
		return s.low.Render(bar)
	case ratio > 0.4:
		return s.mid.Render(bar)
	}
	return s.high.Render(bar)
}

// separator draws a decorative rule.
func (s styles) separator(width int) string {
	if width < 8 {
		return s.subtle.Render(strings.Repeat("─", max(width, 0)))
	}
	mid := width / 2
	left := strings.Repeat("─", mid-3)
	right := strings.Repeat("─", width-mid-3)
	return s.subtle.Render(left + " ◆ " + right)
}

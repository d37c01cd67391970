package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

type styles struct {
	title    lipgloss.Style
	subtitle lipgloss.Style
	cursor   lipgloss.Style
	selected lipgloss.Style
	desc     lipgloss.Style
	item     lipgloss.Style
	itemDesc lipgloss.Style
	focus    lipgloss.Style
	value    lipgloss.Style
	unit     lipgloss.Style
	key      lipgloss.Style
	hint     lipgloss.Style
	warn     lipgloss.Style
	err      lipgloss.Style
	panel    lipgloss.Style
}

func newStyles(t Theme) styles {
	return styles{
		title:    lipgloss.NewStyle().Foreground(t.Primary).Bold(true),
		subtitle: lipgloss.NewStyle().Foreground(t.Muted),
		cursor:   lipgloss.NewStyle().Foreground(t.Primary).Bold(true),
		selected: lipgloss.NewStyle().Foreground(t.Text).Bold(true),
		desc:     lipgloss.NewStyle().Foreground(t.Accent),
		item:     lipgloss.NewStyle().Foreground(t.Muted),
		itemDesc: lipgloss.NewStyle().Foreground(t.Faint),
		focus:    lipgloss.NewStyle().Foreground(t.Accent).Bold(true).Underline(true),
		value:    lipgloss.NewStyle().Foreground(t.Success).Bold(true),
		unit:     lipgloss.NewStyle().Foreground(t.Secondary),
		key:      lipgloss.NewStyle().Foreground(t.Secondary).Bold(true),
		hint:     lipgloss.NewStyle().Foreground(t.Muted),
		warn:     lipgloss.NewStyle().Foreground(t.Warning),
		err:      lipgloss.NewStyle().Foreground(t.Error).Bold(true),
		panel: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(t.Faint).
			Padding(0, 1),
	}
}

// keyHints renders "key action" pairs on one line.
func (s styles) keyHints(pairs ...string) string {
	var b strings.Builder
	for i := 0; i+1 < len(pairs); i += 2 {
		b.WriteString(s.key.Render(pairs[i]))
		b.WriteString(s.hint.Render(" " + pairs[i+1] + "  "))
	}
	return b.String()
}

func separator(s styles, width int) string {
	return s.subtitle.Render(strings.Repeat("─", width))
}

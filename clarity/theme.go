package clarity

import (
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// theme styles summary lines by their leading glyph.
type theme struct {
	enabled bool
	success lipgloss.Style
	failure lipgloss.Style
	warning lipgloss.Style
	action  lipgloss.Style
	item    lipgloss.Style
	muted   lipgloss.Style
	heading lipgloss.Style
}

func newTheme(w io.Writer, enabled bool) *theme {
	r := lipgloss.NewRenderer(w)
	return &theme{
		enabled: enabled,
		success: r.NewStyle().Foreground(lipgloss.Color("10")).Bold(true),
		failure: r.NewStyle().Foreground(lipgloss.Color("9")).Bold(true),
		warning: r.NewStyle().Foreground(lipgloss.Color("11")),
		action:  r.NewStyle().Foreground(lipgloss.Color("14")),
		item:    r.NewStyle().Foreground(lipgloss.Color("7")),
		muted:   r.NewStyle().Faint(true),
		heading: r.NewStyle().Bold(true),
	}
}

// line styles one output line. Unstyled text is returned when styling is off.
func (t *theme) line(s string) string {
	if t == nil || !t.enabled || s == "" {
		return s
	}
	switch {
	case strings.HasPrefix(s, "✔"):
		return t.success.Render(s)
	case strings.HasPrefix(s, "❌"):
		return t.failure.Render(s)
	case strings.HasPrefix(s, "⚠"):
		return t.warning.Render(s)
	case strings.HasPrefix(s, "→"):
		return t.action.Render(s)
	case strings.HasPrefix(s, "•"):
		return t.item.Render(s)
	case strings.HasPrefix(s, "Use --"), strings.HasPrefix(s, "No additional output"):
		return t.muted.Render(s)
	case strings.HasPrefix(s, "--- "), strings.HasPrefix(s, "Captured output preview"):
		return t.heading.Render(s)
	}
	return s
}

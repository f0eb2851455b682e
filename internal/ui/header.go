package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// renderHeader renders the status bar.
func (m Model) renderHeader() string {
	styles := m.theme.Styles().WithBackground(m.theme.Surface)
	bg := NewBgStyle(m.theme.Surface)
	sep := bg.Spaces(2)

	parts := []string{bg.Render("globe", styles.Logo)}
	switch {
	case m.loading:
		parts = append(parts, bg.Render("Loading countries...", styles.WarningText.Bold(true)))
	case m.snapshot.Empty() && m.offline:
		parts = append(parts, bg.Render("OFFLINE", styles.DangerText))
	case m.snapshot.Empty():
		parts = append(parts, bg.Render("No countries loaded", styles.DangerText))
	default:
		parts = append(parts,
			bg.Render(fmt.Sprintf("%d countries", len(m.snapshot.Countries)), styles.SuccessText),
			bg.Render("from", styles.FaintText)+bg.Space()+bg.Render(m.snapshot.Source.String(), styles.MutedText),
			bg.Render("sort", styles.FaintText)+bg.Space()+bg.Render(m.sortLabel(), styles.AccentText),
		)
		if !m.snapshot.LoadedAt.IsZero() {
			parts = append(parts, bg.Render(m.snapshot.LoadedAt.Format("15:04:05"), styles.FaintText))
		}
	}
	if m.notice != "" {
		parts = append(parts, bg.Render(truncate(m.notice, max(m.width/2, 10)), styles.WarningText))
	}

	return lipgloss.NewStyle().
		Background(lipgloss.Color(m.theme.Surface)).
		Foreground(lipgloss.Color(m.theme.Text)).
		Width(m.width).
		Render(styles.Header.Render(strings.Join(parts, sep)))
}

// sortLabel names the active order, or "none" before the first sort.
func (m Model) sortLabel() string {
	if !m.snapshot.Sorted {
		return "none"
	}
	return m.snapshot.Order.Label()
}

// renderCommandBar renders the sort buttons and key hints. The active sort
// is highlighted.
func (m Model) renderCommandBar() string {
	styles := m.theme.Styles().WithBackground(m.theme.Surface)
	bg := NewBgStyle(m.theme.Surface)
	colon := bg.Sep(":")
	sep := bg.Spaces(2)

	segments := make([]string, 0, len(commands)+4)
	for _, c := range commands {
		label := styles.MutedText
		if m.snapshot.Sorted && m.snapshot.Order == c.order() {
			label = styles.Text.Bold(true).Underline(true)
		}
		segments = append(segments, bg.Render(c.key(), styles.AccentText)+colon+bg.Render(c.order().Label(), label))
	}

	hints := []struct{ key, desc string }{
		{"enter", "Neighbours"},
		{"esc", "Back"},
		{"?", "More"},
	}
	for _, h := range hints {
		segments = append(segments, bg.Render(h.key, styles.AccentText)+colon+bg.Render(h.desc, styles.MutedText))
	}
	segments = append(segments,
		bg.Render("T", styles.AccentText)+colon+bg.Render(m.theme.Name, styles.FaintText))

	return styles.Header.Width(m.width).Render(strings.Join(segments, sep))
}

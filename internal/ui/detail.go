package ui

import (
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/five82/globe/internal/countries"
)

// updateDetailViewport sizes the detail viewport and refreshes its content.
func (m *Model) updateDetailViewport() {
	if !m.ready {
		return
	}
	_, detailWidth := m.paneWidths()
	m.detailViewport.Width = max(detailWidth-4, 1)
	m.detailViewport.Height = max(m.contentHeight()-2, 1)
	m.detailViewport.SetContent(m.renderDetailContent(m.detailViewport.Width))
}

// renderDetailContent renders the opened country and its neighbours.
func (m Model) renderDetailContent(width int) string {
	styles := m.theme.Styles()
	if m.detail == nil {
		return styles.MutedText.Render("Press enter to show a country's neighbours")
	}

	c := m.detail.country
	label := lipgloss.NewStyle().Foreground(lipgloss.Color(m.theme.Faint)).Width(13)
	field := func(name, value string) string {
		return label.Render(name) + styles.Text.Render(truncate(value, max(width-13, 4)))
	}

	var b strings.Builder
	b.WriteString(field("Name", c.Name) + "\n")
	b.WriteString(field("Native name", c.NativeName) + "\n")
	b.WriteString(field("Area", formatArea(c.Area)) + "\n")
	b.WriteString(field("Code", c.AlphaCode) + "\n\n")
	b.WriteString(renderBorders(styles, m.detail.borders, width))
	return b.String()
}

// renderBorders lists bordering countries in list order.
func renderBorders(styles Styles, borders []countries.Country, width int) string {
	var b strings.Builder
	b.WriteString(styles.AccentText.Bold(true).Render("Neighbours"))
	b.WriteString(styles.FaintText.Render(" (" + strconv.Itoa(len(borders)) + ")"))
	b.WriteString("\n")
	if len(borders) == 0 {
		b.WriteString(styles.MutedText.Render("No bordering countries"))
		return b.String()
	}
	for _, n := range borders {
		code := styles.WarningText.Render(padRight(n.AlphaCode, 4))
		b.WriteString(code + " " + styles.Text.Render(truncate(n.Name, max(width-6, 4))) + "\n")
	}
	return strings.TrimSuffix(b.String(), "\n")
}

package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/five82/globe/internal/countries"
)

// contentHeight is the height left for the panes below header and command bar.
func (m Model) contentHeight() int {
	return max(m.height-2, 3)
}

// listRows is the number of rows visible in the list pane.
func (m Model) listRows() int {
	return max(m.contentHeight()-2, 1)
}

// paneWidths splits the width between list and detail.
func (m Model) paneWidths() (list, detail int) {
	if m.width >= 160 {
		list = m.width * 35 / 100
	} else {
		list = m.width * 45 / 100
	}
	return list, m.width - list
}

// renderPanes renders the list and detail panes side by side.
func (m Model) renderPanes() string {
	styles := m.theme.Styles()
	height := m.contentHeight()

	if m.snapshot.Empty() {
		msg := "Waiting for the country list"
		if m.offline {
			msg = "Offline. The list loads when the connection returns."
		}
		return lipgloss.Place(m.width, height, lipgloss.Center, lipgloss.Center, styles.MutedText.Render(msg))
	}

	listWidth, detailWidth := m.paneWidths()

	listFocused := m.focused == paneList
	listBg := m.theme.SurfaceAlt
	if listFocused {
		listBg = m.theme.FocusBg
	}
	listPane := m.renderTitledBox("Countries", m.renderList(listWidth-2, listBg), listWidth, height, listFocused)

	detailTitle := "Details"
	if m.detail != nil {
		detailTitle = truncate(m.detail.country.Name, max(detailWidth-8, 4))
	}
	detailPane := m.renderTitledBox(detailTitle, m.detailViewport.View(), detailWidth, height, m.focused == paneDetail)

	return lipgloss.JoinHorizontal(lipgloss.Top, listPane, detailPane)
}

// visibleRange returns the window of rows to draw so the selection stays on
// screen.
func visibleRange(selected, total, rows int) (start, end int) {
	if rows <= 0 || total == 0 {
		return 0, 0
	}
	if selected >= rows {
		start = selected - rows + 1
	}
	end = min(start+rows, total)
	return start, end
}

// renderList renders the rows that fit in the list pane.
func (m Model) renderList(width int, bgColor string) string {
	list := m.snapshot.Countries
	start, end := visibleRange(m.selectedRow, len(list), m.listRows())

	lines := make([]string, 0, end-start)
	for i := start; i < end; i++ {
		selected := i == m.selectedRow
		rowBg := bgColor
		if selected {
			rowBg = m.theme.SelectionBg
		}
		lines = append(lines, lipgloss.NewStyle().
			Background(lipgloss.Color(rowBg)).
			Width(width).
			Render(m.formatRow(list[i], width, rowBg, selected)))
	}
	return strings.Join(lines, "\n")
}

// formatRow formats one row as "Name · Native name".
func (m Model) formatRow(c countries.Country, width int, bgColor string, selected bool) string {
	bg := NewBgStyle(bgColor)

	var nameStyle, nativeStyle, sepStyle lipgloss.Style
	if selected {
		sel := lipgloss.NewStyle().Foreground(lipgloss.Color(m.theme.SelectionText))
		nameStyle, nativeStyle, sepStyle = sel.Bold(true), sel, sel
	} else {
		styles := m.theme.Styles()
		nameStyle, nativeStyle, sepStyle = styles.Text, styles.MutedText, styles.FaintText
	}

	nameWidth := max(width*3/5, 8)
	name := truncate(c.Name, nameWidth)
	nativeWidth := max(width-len([]rune(name))-4, 4)

	return bg.Space() +
		bg.Render(name, nameStyle) +
		bg.Render(" · ", sepStyle) +
		bg.Render(truncate(c.NativeName, nativeWidth), nativeStyle)
}

// renderTitledBox renders content in a box with the title embedded in the
// top border: ┌─── Title ───┐
func (m Model) renderTitledBox(title, content string, width, height int, focused bool) string {
	borderColor, bgColor := m.theme.Border, m.theme.SurfaceAlt
	if focused {
		borderColor, bgColor = m.theme.BorderFocus, m.theme.FocusBg
	}
	bg := NewBgStyle(bgColor)
	borderStyle := lipgloss.NewStyle().Foreground(lipgloss.Color(borderColor))
	titleStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(m.theme.Text))

	innerWidth := max(width-2, 0)
	titleLen := len([]rune(title))
	leftPad := max((innerWidth-titleLen-2)/2, 0)
	rightPad := max(innerWidth-titleLen-2-leftPad, 0)

	top := bg.Render("┌", borderStyle) +
		bg.Render(strings.Repeat("─", leftPad), borderStyle) +
		bg.Render(" "+title+" ", titleStyle) +
		bg.Render(strings.Repeat("─", rightPad), borderStyle) +
		bg.Render("┐", borderStyle)
	bottom := bg.Render("└", borderStyle) +
		bg.Render(strings.Repeat("─", innerWidth), borderStyle) +
		bg.Render("┘", borderStyle)

	contentStyle := lipgloss.NewStyle().Width(innerWidth).Background(lipgloss.Color(bgColor))
	contentLines := strings.Split(content, "\n")
	boxHeight := max(height-2, 0)

	lines := make([]string, 0, boxHeight+2)
	lines = append(lines, top)
	for i := 0; i < boxHeight; i++ {
		var line string
		if i < len(contentLines) {
			line = contentLines[i]
		}
		lines = append(lines, bg.Render("│", borderStyle)+contentStyle.Render(line)+bg.Render("│", borderStyle))
	}
	lines = append(lines, bottom)
	return strings.Join(lines, "\n")
}

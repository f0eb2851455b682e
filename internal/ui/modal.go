package ui

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/five82/globe/internal/loader"
)

// modalAction is what the user chose in the error dialog.
type modalAction int

const (
	actionNone modalAction = iota
	actionRetry
	actionOpenSettings
)

// errorModal is a dismissible error dialog with at most one action.
type errorModal struct {
	title   string
	message string
	action  modalAction
}

// newErrorModal builds the dialog for a failed load. It returns false for
// events that are not failures.
func newErrorModal(ev loader.Event) (errorModal, bool) {
	switch ev.Kind {
	case loader.EventFetchFailed:
		msg := "The country list could not be downloaded."
		if ev.Err != nil {
			msg += "\n\n" + ev.Err.Error()
		}
		return errorModal{title: "Download failed", message: msg, action: actionRetry}, true
	case loader.EventOffline:
		return errorModal{
			title:   "No connection",
			message: "You are offline and no saved country list exists.\nThe list loads as soon as the connection returns.",
			action:  actionOpenSettings,
		}, true
	default:
		return errorModal{}, false
	}
}

// Update reports the chosen action and whether the dialog closes.
func (d errorModal) Update(msg tea.KeyMsg, keys keyMap) (modalAction, bool) {
	switch {
	case key.Matches(msg, keys.Escape):
		return actionNone, true
	case d.action == actionRetry && key.Matches(msg, keys.Retry):
		return actionRetry, true
	case d.action == actionOpenSettings && key.Matches(msg, keys.Settings):
		return actionOpenSettings, true
	}
	return actionNone, false
}

// View renders the dialog centered in width x height.
func (d errorModal) View(theme Theme, width, height int) string {
	styles := theme.Styles()

	var b strings.Builder
	b.WriteString(styles.DangerText.Render(d.title))
	b.WriteString("\n\n")
	b.WriteString(styles.Text.Render(d.message))
	b.WriteString("\n\n")

	hint := func(k, desc string) string {
		return styles.AccentText.Render(k) + styles.MutedText.Render(" "+desc)
	}
	var hints []string
	switch d.action {
	case actionRetry:
		hints = append(hints, hint("r", "Try again"))
	case actionOpenSettings:
		hints = append(hints, hint("s", "Open settings"))
	}
	hints = append(hints, hint("esc", "Dismiss"))
	b.WriteString(strings.Join(hints, "   "))

	box := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(theme.Danger)).
		Padding(1, 2).
		Width(min(56, max(width-4, 20))).
		Render(b.String())

	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, box,
		lipgloss.WithWhitespaceChars(" "),
		lipgloss.WithWhitespaceForeground(lipgloss.Color(theme.Background)),
	)
}

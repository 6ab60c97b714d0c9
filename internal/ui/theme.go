package ui

import "github.com/charmbracelet/lipgloss"

// Theme holds the lipgloss styles used by the Screen Coordinator, adapted
// from the teacher's message/modal styling to a status-bar/column/hotkey
// dashboard vocabulary.
type Theme struct {
	// HeaderBar and FooterBar render in reverse video across the full
	// terminal width, top(1)-style.
	HeaderBar lipgloss.Style
	FooterBar lipgloss.Style

	ColumnHeader lipgloss.Style
	CursorRow    lipgloss.Style
	ProxyHeader  lipgloss.Style

	ModeActive   lipgloss.Style
	ModeInactive lipgloss.Style

	StatusUp   lipgloss.Style
	StatusDown lipgloss.Style
	StatusOther lipgloss.Style

	ErrorBanner   lipgloss.Style
	WarningBanner lipgloss.Style

	HotkeyOverlay lipgloss.Style
	CLIPrompt     lipgloss.Style
}

func DefaultTheme() Theme {
	reverse := lipgloss.NewStyle().Reverse(true)
	return Theme{
		HeaderBar: reverse,
		FooterBar: reverse,

		ColumnHeader: reverse,
		CursorRow:    reverse,
		ProxyHeader:  lipgloss.NewStyle().Bold(true),

		ModeActive:   lipgloss.NewStyle().Bold(true).Reverse(true),
		ModeInactive: lipgloss.NewStyle(),

		StatusUp:    lipgloss.NewStyle().Foreground(lipgloss.Color("34")),
		StatusDown:  lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Bold(true),
		StatusOther: lipgloss.NewStyle().Foreground(lipgloss.Color("214")),

		ErrorBanner:   lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Bold(true),
		WarningBanner: lipgloss.NewStyle().Foreground(lipgloss.Color("214")),

		HotkeyOverlay: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("62")).
			Padding(0, 2),
		CLIPrompt: lipgloss.NewStyle().Bold(true),
	}
}

// StatusStyle picks the style for a service's STATUS cell, grounded on the
// original's rendering of UP/DOWN/MAINT in distinct colors.
func (t Theme) StatusStyle(status string) lipgloss.Style {
	switch status {
	case "UP", "OPEN":
		return t.StatusUp
	case "DOWN", "MAINT", "MAINT(via)":
		return t.StatusDown
	default:
		return t.StatusOther
	}
}

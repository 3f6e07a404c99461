package styles

import (
	"github.com/charmbracelet/lipgloss"
)

// Styles used throughout the TUI.
var (
	LabelStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color(ColorSecondary))

	FocusedLabelStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(lipgloss.Color(ColorPrimary))

	PanelStyle = lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color(ColorBorder)).
			Padding(0, 1)

	StatusStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color(ColorMuted))

	ErrorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color(ColorError)).
			Bold(true)

	NoticeStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color(ColorWarning))

	ProgressFilledStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color(ColorSuccess))

	ProgressEmptyStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color(ColorMuted))
)

// Label returns the label style for a field.
func Label(focused bool) lipgloss.Style {
	if focused {
		return FocusedLabelStyle
	}

	return LabelStyle
}

// ProgressBarChar returns progress bar characters with styling.
func ProgressBarChar(filled bool) string {
	if filled {
		return ProgressFilledStyle.Render("█")
	}

	return ProgressEmptyStyle.Render("░")
}

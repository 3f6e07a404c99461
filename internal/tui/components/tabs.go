package components

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/robalyx/cipherlab/internal/tui/styles"
)

// Tabs represents a tab navigation component.
type Tabs struct {
	tabs     []string
	active   int
	width    int
	maxWidth int
}

// NewTabs creates a new tabs component.
func NewTabs(tabs ...string) *Tabs {
	return &Tabs{
		tabs:     tabs,
		maxWidth: 20, // Maximum width per tab
	}
}

// SetActive sets the active tab index.
func (t *Tabs) SetActive(index int) {
	if index >= 0 && index < len(t.tabs) {
		t.active = index
	}
}

// GetActive returns the active tab index.
func (t *Tabs) GetActive() int {
	return t.active
}

// SetWidth sets the total width available for tabs.
func (t *Tabs) SetWidth(width int) {
	t.width = width
	if len(t.tabs) > 0 {
		t.maxWidth = max(8, (width-4)/len(t.tabs))
	}
}

// View renders the tabs.
func (t *Tabs) View() string {
	if len(t.tabs) == 0 {
		return ""
	}

	tabs := make([]string, 0, len(t.tabs))

	for i, tab := range t.tabs {
		displayName := tab
		if len(displayName) > t.maxWidth-4 {
			displayName = displayName[:max(t.maxWidth-7, 1)] + "..."
		}

		style := lipgloss.NewStyle().
			Foreground(lipgloss.Color(styles.ColorMuted)).
			Padding(0, 2)
		if i == t.active {
			style = lipgloss.NewStyle().
				Bold(true).
				Foreground(lipgloss.Color(styles.ColorPrimary)).
				Background(lipgloss.Color(styles.ColorBackground)).
				Padding(0, 2)
		}

		tabs = append(tabs, style.Render(displayName))
	}

	borderStyle := lipgloss.NewStyle().
		BorderStyle(lipgloss.NormalBorder()).
		BorderBottom(true).
		BorderForeground(lipgloss.Color(styles.ColorBorder))

	return borderStyle.Width(max(t.width-2, 0)).Render(strings.Join(tabs, "│"))
}

package views

import (
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/robalyx/cipherlab/internal/tui/styles"
)

// Help represents the help view.
type Help struct {
	viewport viewport.Model
}

// NewHelp creates a new help view.
func NewHelp() *Help {
	vp := viewport.New(80, 24)
	vp.Style = lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(styles.ColorBorder)).
		Padding(1, 2)

	return &Help{
		viewport: vp,
	}
}

// SetSize sets the help view size.
func (h *Help) SetSize(width, height int) {
	h.viewport.Width = max(width-4, 10)
	h.viewport.Height = max(height-4, 5)
}

// Update handles scrolling.
func (h *Help) Update(msg tea.Msg) (*Help, tea.Cmd) {
	var cmd tea.Cmd
	h.viewport, cmd = h.viewport.Update(msg)
	return h, cmd
}

// View renders the help view.
func (h *Help) View() string {
	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color(styles.ColorSecondary)).
		MarginBottom(1)

	sectionStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color(styles.ColorPrimary)).
		MarginTop(1).
		MarginBottom(1)

	keyStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color(styles.ColorWarning)).
		Width(15)

	descStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color(styles.ColorWhite))

	sections := []struct {
		title string
		items [][]string
	}{
		{
			title: "Navigation",
			items: [][]string{
				{"F1", "Show this help screen"},
				{"F2", "Switch to the workbench"},
				{"F3", "Switch to the history"},
				{"Esc/Ctrl+C", "Quit the application"},
			},
		},
		{
			title: "Workbench",
			items: [][]string{
				{"Tab", "Move between the text and shift fields"},
				{"Ctrl+S", "Encrypt the text"},
				{"Ctrl+R", "Decrypt the text and show its letter frequencies"},
				{"Ctrl+L", "Clear the text and reset the shift"},
			},
		},
		{
			title: "Live output",
			items: [][]string{
				{"typing", "Encrypts the text as you type"},
				{"digits", "Persian and Arabic-Indic digits are accepted as shifts"},
				{"alphabet", "Latin, Persian or digits, picked from the text"},
			},
		},
	}

	content := make([]string, 0, 24)
	content = append(content, titleStyle.Render("Caesar Workbench - Help"), "")

	for _, section := range sections {
		content = append(content, sectionStyle.Render(section.title))
		for _, item := range section.items {
			content = append(content, lipgloss.JoinHorizontal(lipgloss.Left,
				keyStyle.Render(item[0]),
				descStyle.Render(item[1])))
		}
		content = append(content, "")
	}

	h.viewport.SetContent(strings.Join(content, "\n"))

	return h.viewport.View()
}

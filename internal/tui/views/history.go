package views

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/robalyx/cipherlab/internal/storage/types"
	"github.com/robalyx/cipherlab/internal/tui/styles"
)

// History lists recent operations.
type History struct {
	entries  []*types.HistoryEntry
	err      string
	viewport viewport.Model
}

// NewHistory creates a new history view.
func NewHistory() *History {
	return &History{
		viewport: viewport.New(80, 24),
	}
}

// SetEntries replaces the listed entries.
func (h *History) SetEntries(entries []*types.HistoryEntry) {
	h.entries = entries
	h.err = ""
}

// SetError shows a loading failure instead of the entries.
func (h *History) SetError(err error) {
	h.err = err.Error()
}

// SetSize sets the history view size.
func (h *History) SetSize(width, height int) {
	h.viewport.Width = width
	h.viewport.Height = max(height-1, 5)
}

// Update handles scrolling.
func (h *History) Update(msg tea.Msg) (*History, tea.Cmd) {
	var cmd tea.Cmd
	h.viewport, cmd = h.viewport.Update(msg)
	return h, cmd
}

// View renders the history view.
func (h *History) View() string {
	if h.err != "" {
		return styles.ErrorStyle.Render(h.err)
	}

	if len(h.entries) == 0 {
		return styles.StatusStyle.Render("No operations yet")
	}

	header := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(styles.ColorSecondary)).
		Render(fmt.Sprintf("%-19s  %-7s  %-8s  %5s  %6s  %s", "Time", "Mode", "Alphabet", "Shift", "Chars", "Preview"))

	lines := make([]string, 0, len(h.entries))
	for _, entry := range h.entries {
		lines = append(lines, fmt.Sprintf("%-19s  %-7s  %-8s  %5d  %6d  %s",
			entry.CreatedAt.Local().Format(time.DateTime), entry.Mode, entry.Alphabet,
			entry.AppliedShift, entry.Characters, entry.Preview))
	}
	h.viewport.SetContent(strings.Join(lines, "\n"))

	return lipgloss.JoinVertical(lipgloss.Left, header, h.viewport.View())
}

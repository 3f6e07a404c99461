package components

import (
	"fmt"
	"strings"

	"github.com/robalyx/cipherlab/internal/analysis"
	"github.com/robalyx/cipherlab/internal/tui/styles"
)

// FrequencyChart renders letter frequencies as horizontal bars.
type FrequencyChart struct {
	entries []analysis.FrequencyEntry
	width   int
}

// NewFrequencyChart creates an empty frequency chart.
func NewFrequencyChart() *FrequencyChart {
	return &FrequencyChart{width: 40}
}

// SetEntries replaces the charted entries.
func (f *FrequencyChart) SetEntries(entries []analysis.FrequencyEntry) {
	f.entries = entries
}

// Entries returns the charted entries.
func (f *FrequencyChart) Entries() []analysis.FrequencyEntry {
	return f.entries
}

// SetSize sets the bar width from the available width.
func (f *FrequencyChart) SetSize(width int) {
	if width > 30 {
		f.width = width - 20
	} else {
		f.width = 10
	}
}

// View renders one bar per entry, scaled to the most frequent letter.
func (f *FrequencyChart) View() string {
	if len(f.entries) == 0 {
		return ""
	}

	highest := f.entries[0].Percentage
	for _, entry := range f.entries {
		highest = max(highest, entry.Percentage)
	}

	lines := make([]string, 0, len(f.entries))
	for _, entry := range f.entries {
		filled := 0
		if highest > 0 {
			filled = int(entry.Percentage / highest * float64(f.width))
		}

		var bar strings.Builder
		for i := range f.width {
			bar.WriteString(styles.ProgressBarChar(i < filled))
		}

		lines = append(lines, fmt.Sprintf("%c %s %5.1f%% (%d)", entry.Char, bar.String(), entry.Percentage, entry.Count))
	}

	return strings.Join(lines, "\n")
}

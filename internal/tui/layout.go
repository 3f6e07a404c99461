package tui

const (
	MinTerminalWidth = 60
	LargeWidth       = 100
)

// isTerminalTooSmall checks if terminal is usable.
func isTerminalTooSmall(width int) bool {
	return width < MinTerminalWidth
}

// shouldShowDetails determines if detailed info should be shown.
func shouldShowDetails(width int) bool {
	return width >= LargeWidth
}

// calculateContentHeight calculates available content height.
func calculateContentHeight(totalHeight, headerHeight int) int {
	content := totalHeight - headerHeight - 2
	if content < 5 {
		return 5
	}

	return content
}

// truncateText truncates text if too long.
func truncateText(text string, maxWidth int) string {
	runes := []rune(text)
	if len(runes) <= maxWidth {
		return text
	}

	if maxWidth < 4 {
		return "..."
	}

	return string(runes[:maxWidth-3]) + "..."
}

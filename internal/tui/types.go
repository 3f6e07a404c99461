package tui

import (
	"github.com/robalyx/cipherlab/internal/storage/types"
	"github.com/robalyx/cipherlab/internal/workbench"
)

// ViewType represents different TUI views.
type ViewType int

const (
	WorkbenchView ViewType = iota
	HistoryView
	HelpView
)

// field identifies the focused input.
type field int

const (
	textField field = iota
	shiftField
)

// restoredMsg carries the saved input replayed at startup.
type restoredMsg struct {
	text string
}

// liveResultMsg carries the outcome of a live request.
type liveResultMsg struct {
	result workbench.LiveResult
	fresh  bool
}

// requestResultMsg carries the outcome of an explicit encrypt or decrypt.
type requestResultMsg struct {
	result *workbench.Result
	err    error
}

// historyMsg carries the loaded operation history.
type historyMsg struct {
	entries []*types.HistoryEntry
	err     error
}

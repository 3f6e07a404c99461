package tui

import (
	"context"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/robalyx/cipherlab/internal/analysis"
	"github.com/robalyx/cipherlab/internal/cipher"
	"github.com/robalyx/cipherlab/internal/tui/components"
	"github.com/robalyx/cipherlab/internal/tui/styles"
	"github.com/robalyx/cipherlab/internal/tui/views"
	"github.com/robalyx/cipherlab/internal/workbench"
	"go.uber.org/zap"
)

const (
	// HistoryLimit is the number of operations loaded into the history view.
	HistoryLimit = 50
	// OutputDisplayLimit is the number of output characters drawn in the output panel.
	OutputDisplayLimit = 4000

	inputHeight  = 6
	headerHeight = 4
)

// Model represents the main TUI model.
type Model struct {
	ctx         context.Context
	wb          *workbench.Workbench
	logger      *zap.Logger
	currentView ViewType
	width       int
	height      int

	// Inputs
	input textarea.Model
	shift textinput.Model
	focus field

	// Output state
	output     string
	status     string
	errMsg     string
	processing bool
	lastSeq    uint64

	// Views and components
	frequencies *components.FrequencyChart
	tabs        *components.Tabs
	history     *views.History
	help        *views.Help

	keys     KeyMap
	quitting bool
}

// KeyMap defines key bindings for the TUI.
type KeyMap struct {
	Quit      key.Binding
	Help      key.Binding
	Workbench key.Binding
	History   key.Binding
	NextField key.Binding
	Encrypt   key.Binding
	Decrypt   key.Binding
	Clear     key.Binding
}

// DefaultKeyMap returns default key bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Quit: key.NewBinding(
			key.WithKeys("esc", "ctrl+c"),
			key.WithHelp("esc", "quit"),
		),
		Help: key.NewBinding(
			key.WithKeys("f1"),
			key.WithHelp("F1", "help"),
		),
		Workbench: key.NewBinding(
			key.WithKeys("f2"),
			key.WithHelp("F2", "workbench"),
		),
		History: key.NewBinding(
			key.WithKeys("f3"),
			key.WithHelp("F3", "history"),
		),
		NextField: key.NewBinding(
			key.WithKeys("tab", "shift+tab"),
			key.WithHelp("tab", "next field"),
		),
		Encrypt: key.NewBinding(
			key.WithKeys("ctrl+s"),
			key.WithHelp("ctrl+s", "encrypt"),
		),
		Decrypt: key.NewBinding(
			key.WithKeys("ctrl+r"),
			key.WithHelp("ctrl+r", "decrypt"),
		),
		Clear: key.NewBinding(
			key.WithKeys("ctrl+l"),
			key.WithHelp("ctrl+l", "clear"),
		),
	}
}

// NewModel creates a new TUI model around a workbench.
func NewModel(ctx context.Context, wb *workbench.Workbench, logger *zap.Logger) *Model {
	input := textarea.New()
	input.Placeholder = "Type the text to encrypt..."
	input.ShowLineNumbers = false
	input.CharLimit = 0
	input.MaxHeight = 0
	input.SetHeight(inputHeight)
	input.Focus()

	shift := textinput.New()
	shift.Prompt = ""
	shift.CharLimit = 32
	shift.Width = 12
	shift.SetValue(workbench.DefaultShift)

	return &Model{
		ctx:         ctx,
		wb:          wb,
		logger:      logger.Named("tui"),
		input:       input,
		shift:       shift,
		focus:       textField,
		frequencies: components.NewFrequencyChart(),
		tabs:        components.NewTabs("Workbench", "History", "Help"),
		history:     views.NewHistory(),
		help:        views.NewHelp(),
		keys:        DefaultKeyMap(),
	}
}

// Init replays the saved input.
func (m *Model) Init() tea.Cmd {
	return tea.Batch(textarea.Blink, m.restoreCmd())
}

// Update handles messages.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.setSize(msg.Width, msg.Height)
		return m, nil

	case restoredMsg:
		// Typing before the replay arrived wins over the saved input
		if msg.text == "" || m.input.Value() != "" {
			return m, nil
		}
		m.input.SetValue(msg.text)
		return m, m.liveCmd()

	case liveResultMsg:
		m.applyLive(msg)
		return m, nil

	case requestResultMsg:
		m.applyRequest(msg)
		return m, nil

	case historyMsg:
		if msg.err != nil {
			m.history.SetError(msg.err)
		} else {
			m.history.SetEntries(msg.entries)
		}
		return m, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit

		case key.Matches(msg, m.keys.Help):
			m.setView(HelpView)
			return m, nil

		case key.Matches(msg, m.keys.Workbench):
			m.setView(WorkbenchView)
			return m, nil

		case key.Matches(msg, m.keys.History):
			m.setView(HistoryView)
			return m, m.historyCmd()
		}

		switch m.currentView {
		case HistoryView:
			_, cmd := m.history.Update(msg)
			return m, cmd
		case HelpView:
			_, cmd := m.help.Update(msg)
			return m, cmd
		case WorkbenchView:
			return m.updateWorkbench(msg)
		}
	}

	// Other messages such as cursor blinks go to the inputs
	return m.updateInputs(msg)
}

// updateWorkbench handles keys on the workbench view.
func (m *Model) updateWorkbench(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.NextField):
		m.toggleFocus()
		return m, nil

	case key.Matches(msg, m.keys.Encrypt):
		return m, m.requestCmd(cipher.ModeEncrypt)

	case key.Matches(msg, m.keys.Decrypt):
		return m, m.requestCmd(cipher.ModeDecrypt)

	case key.Matches(msg, m.keys.Clear):
		m.input.Reset()
		m.shift.SetValue(workbench.DefaultShift)
		m.frequencies.SetEntries(nil)
		m.status = ""
		return m, m.liveCmd()
	}

	return m.updateInputs(msg)
}

// updateInputs forwards msg to the focused input and runs a live request
// when either value changed.
func (m *Model) updateInputs(msg tea.Msg) (tea.Model, tea.Cmd) {
	text, shift := m.input.Value(), m.shift.Value()

	var cmd tea.Cmd
	if m.focus == textField {
		m.input, cmd = m.input.Update(msg)
	} else {
		m.shift, cmd = m.shift.Update(msg)
	}

	if m.input.Value() != text || m.shift.Value() != shift {
		return m, tea.Batch(cmd, m.liveCmd())
	}

	return m, cmd
}

// toggleFocus moves focus between the text and shift fields.
func (m *Model) toggleFocus() {
	if m.focus == textField {
		m.focus = shiftField
		m.input.Blur()
		m.shift.Focus()
		return
	}

	m.focus = textField
	m.shift.Blur()
	m.input.Focus()
}

// setView switches the current view.
func (m *Model) setView(view ViewType) {
	m.currentView = view
	m.tabs.SetActive(int(view))
}

// setSize resizes every view and component.
func (m *Model) setSize(width, height int) {
	m.width = width
	m.height = height

	contentHeight := calculateContentHeight(height, headerHeight)

	m.input.SetWidth(max(width-4, 10))
	m.frequencies.SetSize(width)
	m.tabs.SetWidth(width)
	m.history.SetSize(width, contentHeight)
	m.help.SetSize(width, contentHeight)
}

// liveCmd runs the current inputs through the live workbench path.
func (m *Model) liveCmd() tea.Cmd {
	req := workbench.Request{Text: m.input.Value(), Shift: m.shift.Value()}
	m.processing = utf8.RuneCountInString(req.Text) > workbench.LargeInputThreshold
	m.errMsg = ""

	ctx, wb := m.ctx, m.wb
	return func() tea.Msg {
		result, fresh := wb.Live(ctx, req)
		return liveResultMsg{result: result, fresh: fresh}
	}
}

// requestCmd runs an explicit encrypt or decrypt.
func (m *Model) requestCmd(mode cipher.Mode) tea.Cmd {
	req := workbench.Request{Text: m.input.Value(), Shift: m.shift.Value()}
	m.processing = utf8.RuneCountInString(req.Text) > workbench.LargeInputThreshold

	ctx, wb := m.ctx, m.wb
	return func() tea.Msg {
		var (
			result *workbench.Result
			err    error
		)
		if mode == cipher.ModeEncrypt {
			result, err = wb.Encrypt(ctx, req)
		} else {
			result, err = wb.Decrypt(ctx, req)
		}
		return requestResultMsg{result: result, err: err}
	}
}

// restoreCmd loads the saved input.
func (m *Model) restoreCmd() tea.Cmd {
	ctx, wb, logger := m.ctx, m.wb, m.logger
	return func() tea.Msg {
		text, _, err := wb.Restore(ctx)
		if err != nil {
			logger.Warn("Failed to restore saved input", zap.Error(err))
		}
		return restoredMsg{text: text}
	}
}

// historyCmd loads recent operations.
func (m *Model) historyCmd() tea.Cmd {
	ctx, wb := m.ctx, m.wb
	return func() tea.Msg {
		entries, err := wb.History(ctx, HistoryLimit)
		return historyMsg{entries: entries, err: err}
	}
}

// applyLive shows a live result unless a newer request superseded it.
func (m *Model) applyLive(msg liveResultMsg) {
	if !msg.fresh || msg.result.Seq < m.lastSeq {
		return
	}

	m.lastSeq = msg.result.Seq
	m.processing = false
	m.output = msg.result.Output

	if msg.result.Err != nil {
		m.logger.Debug("Live request failed", zap.Uint64("seq", msg.result.Seq), zap.Error(msg.result.Err))
	}
}

// applyRequest shows the outcome of an explicit request.
func (m *Model) applyRequest(msg requestResultMsg) {
	m.processing = false

	if msg.err != nil {
		m.errMsg = workbench.UserMessage(msg.err)
		return
	}

	result := msg.result
	m.errMsg = ""
	m.output = result.Output
	m.frequencies.SetEntries(result.Frequencies)
	m.status = fmt.Sprintf("%s • %s (%d) • shift %d → %d • %d chars • %s",
		result.Mode, result.Alphabet, result.AlphabetSize, result.OriginalShift,
		result.AppliedShift, result.Characters, result.Duration)
}

// View renders the current view.
func (m *Model) View() string {
	if m.quitting {
		return "Goodbye!\n"
	}

	if m.width == 0 || m.height == 0 {
		return "Loading..."
	}

	if isTerminalTooSmall(m.width) {
		return fmt.Sprintf("Terminal too small!\nMinimum width required: %d columns\nCurrent size: %dx%d",
			MinTerminalWidth, m.width, m.height)
	}

	var content string

	switch m.currentView {
	case WorkbenchView:
		content = m.renderWorkbench()
	case HistoryView:
		content = m.history.View()
	case HelpView:
		content = m.help.View()
	}

	return lipgloss.JoinVertical(lipgloss.Left, m.renderHeader(), content)
}

// renderWorkbench renders the inputs, the output and the latest analysis.
func (m *Model) renderWorkbench() string {
	parts := []string{
		styles.Label(m.focus == textField).Render("Text"),
		m.input.View(),
		styles.Label(m.focus == shiftField).Render("Shift") + " " + m.shift.View(),
		"",
		styles.LabelStyle.Render("Output"),
		styles.PanelStyle.Width(max(m.width-4, 10)).Render(analysis.Preview(m.output, OutputDisplayLimit)),
	}

	if m.processing {
		parts = append(parts, styles.NoticeStyle.Render(workbench.ProcessingNotice))
	}

	switch {
	case m.errMsg != "":
		parts = append(parts, styles.ErrorStyle.Render(m.errMsg))
	case m.status != "":
		parts = append(parts, styles.StatusStyle.Render(m.status))
	}

	if chart := m.frequencies.View(); chart != "" {
		parts = append(parts, "", styles.LabelStyle.Render("Letter frequencies"), chart)
	}

	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

// renderHeader renders the title line and the view tabs.
func (m *Model) renderHeader() string {
	titleText := "Caesar Workbench"
	shortcutsText := "F1 help • F2 workbench • F3 history • ctrl+s encrypt • ctrl+r decrypt • esc quit"

	maxLineWidth := m.width - 8
	if !shouldShowDetails(m.width) {
		shortcutsText = "F1/F2/F3: nav • esc: quit"
	}

	shortcutsText = truncateText(shortcutsText, max(maxLineWidth-len(titleText)-1, 4))
	spacePadding := max(maxLineWidth-len(titleText)-utf8.RuneCountInString(shortcutsText), 1)

	title := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(styles.ColorPrimary)).Render(titleText)
	shortcuts := lipgloss.NewStyle().Foreground(lipgloss.Color(styles.ColorMuted)).Render(shortcutsText)

	headerLine := lipgloss.JoinHorizontal(lipgloss.Left, title, strings.Repeat(" ", spacePadding), shortcuts)
	header := lipgloss.NewStyle().Padding(0, 2).Render(headerLine)

	return lipgloss.JoinVertical(lipgloss.Left, header, m.tabs.View())
}

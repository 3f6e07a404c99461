package tui

import (
	"context"
	"errors"
	"fmt"
	"sync"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/robalyx/cipherlab/internal/workbench"
	"go.uber.org/zap"
)

var ErrTUIManagerAlreadyRunning = errors.New("TUI manager is already running")

// Manager owns the interactive workbench program.
type Manager struct {
	model   *Model
	program *tea.Program
	ctx     context.Context
	cancel  context.CancelFunc
	logger  *zap.Logger
	mu      sync.Mutex
	running bool
}

// NewManager creates a new TUI manager.
func NewManager(ctx context.Context, wb *workbench.Workbench, logger *zap.Logger) *Manager {
	childCtx, cancel := context.WithCancel(ctx)

	return &Manager{
		model:  NewModel(childCtx, wb, logger),
		ctx:    childCtx,
		cancel: cancel,
		logger: logger,
	}
}

// Run shows the TUI and blocks until the user quits or the context ends.
func (m *Manager) Run() error {
	m.mu.Lock()
	if m.running {
		m.mu.Unlock()
		return ErrTUIManagerAlreadyRunning
	}
	m.running = true
	m.program = tea.NewProgram(m.model, tea.WithAltScreen(), tea.WithContext(m.ctx))
	program := m.program
	m.mu.Unlock()

	defer func() {
		m.mu.Lock()
		m.running = false
		m.mu.Unlock()
	}()

	if _, err := program.Run(); err != nil && !errors.Is(err, tea.ErrProgramKilled) {
		m.logger.Error("TUI program error", zap.Error(err))
		return fmt.Errorf("failed to run TUI: %w", err)
	}

	return nil
}

// Stop quits the TUI and cancels in-flight requests.
func (m *Manager) Stop() {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.program != nil && m.running {
		m.program.Quit()
	}

	m.cancel()
}

// IsRunning returns whether the TUI is currently running.
func (m *Manager) IsRunning() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.running
}

package telemetry_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/robalyx/cipherlab/internal/setup/config"
	"github.com/robalyx/cipherlab/internal/setup/telemetry"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestManagerGetLogger(t *testing.T) {
	t.Parallel()

	logDir := t.TempDir()
	manager := telemetry.NewManager("encrypt", &config.Debug{
		LogLevel:      "debug",
		LogDir:        logDir,
		MaxLogsToKeep: 3,
		MaxLogLines:   100,
	})

	logger, err := manager.GetLogger()
	require.NoError(t, err)

	logger.Info("hello from the test")
	logger.Error("something broke")
	manager.Stop()

	sessionDir := manager.GetCurrentSessionDir()
	assert.Equal(t, logDir, filepath.Dir(sessionDir))
	assert.Contains(t, filepath.Base(sessionDir), "encrypt")
	assert.NotEmpty(t, manager.GetInstanceID())

	content, err := os.ReadFile(filepath.Join(sessionDir, "main.log"))
	require.NoError(t, err)
	assert.Contains(t, string(content), "hello from the test")
	assert.Contains(t, string(content), "something broke")
}

func TestManagerRotatesSessions(t *testing.T) {
	t.Parallel()

	logDir := t.TempDir()
	for _, name := range []string{"old-1", "old-2", "old-3"} {
		require.NoError(t, os.Mkdir(filepath.Join(logDir, name), os.ModePerm))
	}

	manager := telemetry.NewManager("analyze", &config.Debug{
		LogLevel:      "info",
		LogDir:        logDir,
		MaxLogsToKeep: 3,
		MaxLogLines:   100,
	})

	_, err := manager.GetLogger()
	require.NoError(t, err)
	defer manager.Stop()

	sessions, err := filepath.Glob(filepath.Join(logDir, "*"))
	require.NoError(t, err)
	assert.Len(t, sessions, 3)
	assert.Contains(t, sessions, manager.GetCurrentSessionDir())
}

func TestManagerInvalidLevel(t *testing.T) {
	t.Parallel()

	manager := telemetry.NewManager("live", &config.Debug{
		LogLevel: "loud",
		LogDir:   t.TempDir(),
	})

	_, err := manager.GetLogger()
	require.Error(t, err)
}

package setup_test

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/robalyx/cipherlab/internal/setup"
	"github.com/robalyx/cipherlab/internal/workbench"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "cipherlab.toml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))

	return path
}

func TestInitializeApp(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := writeConfig(t, fmt.Sprintf(`version = 1

[debug]
log_dir = %q

[storage]
driver = "sqlite"
sqlite_path = %q
`, filepath.Join(dir, "logs"), filepath.Join(dir, "cipherlab.db")))

	app, err := setup.InitializeApp(t.Context(), "test", path)
	require.NoError(t, err)

	result, err := app.Workbench.Encrypt(t.Context(), workbench.Request{Text: "Hello", Shift: "3"})
	require.NoError(t, err)
	assert.Equal(t, "Khoor", result.Output)

	last, ok, err := app.Workbench.Restore(t.Context())
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "Hello", last)

	assert.DirExists(t, app.LogManager.GetCurrentSessionDir())
	app.Cleanup()
}

func TestInitializeAppUnknownDriver(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := writeConfig(t, fmt.Sprintf(`version = 1

[debug]
log_dir = %q

[storage]
driver = "etcd"
`, filepath.Join(dir, "logs")))

	_, err := setup.InitializeApp(t.Context(), "test", path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "etcd")
}

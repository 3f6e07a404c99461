package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/robalyx/cipherlab/internal/setup/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), config.FileName)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoadConfig(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		content string
		wantErr error
		check   func(t *testing.T, cfg *config.Config)
	}{
		{
			name: "overrides keep other defaults",
			content: `version = 1

[cipher]
chunk_size = 250
workers = 4
complete_arabic_digits = true

[storage]
driver = "redis"

[redis]
port = 6380
`,
			check: func(t *testing.T, cfg *config.Config) {
				t.Helper()
				assert.Equal(t, 250, cfg.Cipher.ChunkSize)
				assert.Equal(t, 4, cfg.Cipher.Workers)
				assert.True(t, cfg.Cipher.CompleteArabicDigits)
				assert.Equal(t, 100, cfg.Cipher.WarmupShifts)
				assert.Equal(t, config.DriverRedis, cfg.Storage.Driver)
				assert.Equal(t, "localhost", cfg.Redis.Host)
				assert.Equal(t, 6380, cfg.Redis.Port)
				assert.Equal(t, "info", cfg.Debug.LogLevel)
			},
		},
		{
			name:    "missing version",
			content: "[debug]\nlog_level = \"debug\"\n",
			wantErr: config.ErrConfigVersionMissing,
		},
		{
			name:    "version mismatch",
			content: "version = 2\n",
			wantErr: config.ErrConfigVersionMismatch,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			path := writeConfig(t, tt.content)
			cfg, dir, err := config.LoadConfig(path)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, filepath.Dir(path), dir)
			tt.check(t, cfg)
		})
	}
}

func TestLoadConfigMissingExplicitPath(t *testing.T) {
	t.Parallel()

	_, _, err := config.LoadConfig(filepath.Join(t.TempDir(), "missing.toml"))
	require.ErrorIs(t, err, config.ErrConfigFileNotFound)
}

func TestDefault(t *testing.T) {
	t.Parallel()

	cfg := config.Default()
	assert.Equal(t, config.CurrentVersion, cfg.Version)
	assert.Equal(t, config.DriverSQLite, cfg.Storage.Driver)
	assert.Equal(t, 1000, cfg.Cipher.ChunkSize)
	assert.Equal(t, 10000, cfg.Cipher.YieldThreshold)
	assert.Equal(t, 10, cfg.Cipher.YieldEvery)
	assert.False(t, cfg.Cipher.CompleteArabicDigits)
}

func TestSampleConfigMatchesDefaults(t *testing.T) {
	t.Parallel()

	path := filepath.Join("..", "..", "..", "config", config.FileName)

	cfg, dir, err := config.LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, filepath.Dir(path), dir)
	assert.Equal(t, config.Default(), cfg)
}

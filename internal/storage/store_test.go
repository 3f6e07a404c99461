package storage_test

import (
	"path/filepath"
	"strconv"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	rmanager "github.com/robalyx/cipherlab/internal/redis"
	"github.com/robalyx/cipherlab/internal/setup/config"
	"github.com/robalyx/cipherlab/internal/storage"
	"github.com/robalyx/cipherlab/pkg/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestOpen(t *testing.T) {
	t.Parallel()

	mr := miniredis.RunT(t)
	port, err := strconv.Atoi(mr.Port())
	require.NoError(t, err)

	tests := []struct {
		name    string
		driver  string
		wantErr error
	}{
		{name: "sqlite", driver: config.DriverSQLite},
		{name: "redis", driver: config.DriverRedis},
		{name: "none", driver: config.DriverNone},
		{name: "unknown", driver: "postgres", wantErr: storage.ErrUnknownDriver},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			cfg := config.Default()
			cfg.Storage.Driver = tt.driver
			cfg.Storage.SQLitePath = filepath.Join(t.TempDir(), "cipherlab.db")
			cfg.Redis.Host = mr.Host()
			cfg.Redis.Port = port

			manager := rmanager.NewManager(&cfg.Redis, utils.RetryOptions{
				MaxElapsedTime:  time.Second,
				InitialInterval: 10 * time.Millisecond,
				MaxInterval:     20 * time.Millisecond,
				MaxRetries:      1,
			}, zap.NewNop())
			defer manager.Close()

			store, err := storage.Open(t.Context(), cfg, manager, zap.NewNop())
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			defer store.Close()

			require.NoError(t, store.SaveInput(t.Context(), "input-"+tt.name))
			value, found, err := store.LastInput(t.Context())
			require.NoError(t, err)

			if tt.driver == config.DriverNone {
				assert.False(t, found)
				return
			}
			assert.True(t, found)
			assert.Equal(t, "input-"+tt.name, value)
		})
	}
}

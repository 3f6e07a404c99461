package redis_test

import (
	"strconv"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/robalyx/cipherlab/internal/redis"
	"github.com/robalyx/cipherlab/internal/setup/config"
	"github.com/robalyx/cipherlab/pkg/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func fastRetry() utils.RetryOptions {
	return utils.RetryOptions{
		MaxElapsedTime:  200 * time.Millisecond,
		InitialInterval: 5 * time.Millisecond,
		MaxInterval:     10 * time.Millisecond,
		MaxRetries:      2,
	}
}

func TestManagerReusesClients(t *testing.T) {
	t.Parallel()

	mr := miniredis.RunT(t)
	port, err := strconv.Atoi(mr.Port())
	require.NoError(t, err)

	manager := redis.NewManager(&config.Redis{Host: mr.Host(), Port: port}, fastRetry(), zap.NewNop())
	defer manager.Close()

	first, err := manager.Client(t.Context())
	require.NoError(t, err)
	second, err := manager.GetClient(t.Context(), 0)
	require.NoError(t, err)
	assert.Same(t, first, second)

	other, err := manager.GetClient(t.Context(), 2)
	require.NoError(t, err)
	assert.NotSame(t, first, other)

	pong, err := first.Do(t.Context(), first.B().Ping().Build()).ToString()
	require.NoError(t, err)
	assert.Equal(t, "PONG", pong)
}

func TestManagerUnreachable(t *testing.T) {
	t.Parallel()

	mr := miniredis.RunT(t)
	port, err := strconv.Atoi(mr.Port())
	require.NoError(t, err)
	mr.Close()

	manager := redis.NewManager(&config.Redis{Host: "127.0.0.1", Port: port}, fastRetry(), zap.NewNop())
	defer manager.Close()

	_, err = manager.Client(t.Context())
	require.Error(t, err)
}

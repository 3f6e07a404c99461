package redis_test

import (
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/google/uuid"
	"github.com/redis/rueidis"
	"github.com/robalyx/cipherlab/internal/cipher"
	"github.com/robalyx/cipherlab/internal/storage/redis"
	"github.com/robalyx/cipherlab/internal/storage/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func setupTestStore(t *testing.T, limit int) (*redis.Store, *miniredis.Miniredis) {
	t.Helper()

	mr := miniredis.RunT(t)

	client, err := rueidis.NewClient(rueidis.ClientOption{
		InitAddress:  []string{mr.Addr()},
		DisableCache: true,
	})
	require.NoError(t, err)
	t.Cleanup(client.Close)

	return redis.New(client, limit, zap.NewNop()), mr
}

func TestStoreLastInput(t *testing.T) {
	t.Parallel()

	store, mr := setupTestStore(t, 10)
	ctx := t.Context()

	_, found, err := store.LastInput(ctx)
	require.NoError(t, err)
	assert.False(t, found)

	require.NoError(t, store.SaveInput(ctx, "سلام"))

	value, found, err := store.LastInput(ctx)
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, "سلام", value)

	stored, err := mr.Get(types.LastInputKey)
	require.NoError(t, err)
	assert.Equal(t, "سلام", stored)
}

func TestStoreHistory(t *testing.T) {
	t.Parallel()

	store, mr := setupTestStore(t, 2)
	ctx := t.Context()

	ids := make([]uuid.UUID, 0, 3)
	for i := range 3 {
		entry := &types.HistoryEntry{
			ID:           uuid.New(),
			Mode:         cipher.ModeEncrypt,
			Alphabet:     cipher.AlphabetLatin,
			AppliedShift: i + 1,
			Characters:   5,
			Preview:      "Khoor",
			CreatedAt:    time.Now(),
		}
		ids = append(ids, entry.ID)
		require.NoError(t, store.AddHistory(ctx, entry))
	}

	stored, err := mr.List(redis.HistoryKey)
	require.NoError(t, err)
	assert.Len(t, stored, 2)

	history, err := store.History(ctx, 0)
	require.NoError(t, err)
	require.Len(t, history, 2)
	assert.Equal(t, ids[2], history[0].ID)
	assert.Equal(t, ids[1], history[1].ID)
	assert.Equal(t, 3, history[0].AppliedShift)
	assert.Equal(t, cipher.ModeEncrypt, history[0].Mode)

	limited, err := store.History(ctx, 1)
	require.NoError(t, err)
	assert.Len(t, limited, 1)
}

func TestStoreHistorySkipsMalformed(t *testing.T) {
	t.Parallel()

	store, mr := setupTestStore(t, 0)

	_, err := mr.Lpush(redis.HistoryKey, "not json")
	require.NoError(t, err)

	history, err := store.History(t.Context(), 10)
	require.NoError(t, err)
	assert.Empty(t, history)
}

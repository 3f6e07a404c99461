package redis

import (
	"context"
	"fmt"

	"github.com/bytedance/sonic"
	"github.com/redis/rueidis"
	"github.com/robalyx/cipherlab/internal/storage/types"
	"go.uber.org/zap"
)

// HistoryKey is the list holding encoded history entries, newest first.
const HistoryKey = "cipherlab:history"

// Store keeps the last input and history in Redis.
// The history is a capped list of JSON documents.
type Store struct {
	client       rueidis.Client
	historyLimit int
	logger       *zap.Logger
}

// New creates a Redis store on top of an existing client.
func New(client rueidis.Client, historyLimit int, logger *zap.Logger) *Store {
	return &Store{
		client:       client,
		historyLimit: historyLimit,
		logger:       logger,
	}
}

// SaveInput replaces the stored last input.
func (s *Store) SaveInput(ctx context.Context, text string) error {
	err := s.client.Do(ctx, s.client.B().Set().Key(types.LastInputKey).Value(text).Build()).Error()
	if err != nil {
		return fmt.Errorf("failed to save input: %w", err)
	}
	return nil
}

// LastInput returns the stored last input.
func (s *Store) LastInput(ctx context.Context) (string, bool, error) {
	value, err := s.client.Do(ctx, s.client.B().Get().Key(types.LastInputKey).Build()).ToString()
	if err != nil {
		if rueidis.IsRedisNil(err) {
			return "", false, nil
		}
		return "", false, fmt.Errorf("failed to load input: %w", err)
	}
	return value, true, nil
}

// AddHistory pushes an entry and trims the list to the history limit.
func (s *Store) AddHistory(ctx context.Context, entry *types.HistoryEntry) error {
	data, err := sonic.Marshal(entry)
	if err != nil {
		return fmt.Errorf("failed to encode history entry: %w", err)
	}

	cmds := rueidis.Commands{
		s.client.B().Lpush().Key(HistoryKey).Element(string(data)).Build(),
	}
	if s.historyLimit > 0 {
		cmds = append(cmds, s.client.B().Ltrim().Key(HistoryKey).Start(0).Stop(int64(s.historyLimit-1)).Build())
	}

	for _, resp := range s.client.DoMulti(ctx, cmds...) {
		if err := resp.Error(); err != nil {
			return fmt.Errorf("failed to store history entry: %w", err)
		}
	}

	return nil
}

// History returns up to limit entries, newest first.
func (s *Store) History(ctx context.Context, limit int) ([]*types.HistoryEntry, error) {
	stop := int64(-1)
	if limit > 0 {
		stop = int64(limit - 1)
	}

	values, err := s.client.Do(ctx, s.client.B().Lrange().Key(HistoryKey).Start(0).Stop(stop).Build()).AsStrSlice()
	if err != nil {
		return nil, fmt.Errorf("failed to load history: %w", err)
	}

	entries := make([]*types.HistoryEntry, 0, len(values))
	for _, value := range values {
		var entry types.HistoryEntry
		if err := sonic.UnmarshalString(value, &entry); err != nil {
			s.logger.Warn("Skipping malformed history entry", zap.Error(err))
			continue
		}
		entries = append(entries, &entry)
	}

	return entries, nil
}

// Close is a no-op; the client is owned by the Redis manager.
func (s *Store) Close() error {
	return nil
}

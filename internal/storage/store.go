// Package storage persists the last entered input and the operation history.
package storage

import (
	"context"
	"errors"
	"fmt"

	rmanager "github.com/robalyx/cipherlab/internal/redis"
	"github.com/robalyx/cipherlab/internal/setup/config"
	"github.com/robalyx/cipherlab/internal/storage/redis"
	"github.com/robalyx/cipherlab/internal/storage/sqlite"
	"github.com/robalyx/cipherlab/internal/storage/types"
	"go.uber.org/zap"
)

// ErrUnknownDriver is returned when the configured storage driver is not supported.
var ErrUnknownDriver = errors.New("unknown storage driver")

// Store persists the last input and the operation history.
type Store interface {
	// SaveInput replaces the stored last input.
	SaveInput(ctx context.Context, text string) error
	// LastInput returns the stored last input and whether one exists.
	LastInput(ctx context.Context) (string, bool, error)
	// AddHistory appends an entry, dropping the oldest beyond the history limit.
	AddHistory(ctx context.Context, entry *types.HistoryEntry) error
	// History returns up to limit entries, newest first.
	History(ctx context.Context, limit int) ([]*types.HistoryEntry, error)
	// Close releases the store's resources.
	Close() error
}

// Open creates the store selected by the storage driver in cfg.
// The Redis manager is only used by the redis driver and may be nil otherwise.
func Open(
	ctx context.Context, cfg *config.Config, redisManager *rmanager.Manager, logger *zap.Logger,
) (Store, error) {
	logger = logger.Named("storage")

	switch cfg.Storage.Driver {
	case config.DriverSQLite:
		store, err := sqlite.New(cfg.Storage.SQLitePath, cfg.Storage.HistoryLimit, logger)
		if err != nil {
			return nil, fmt.Errorf("failed to open sqlite store: %w", err)
		}
		return store, nil

	case config.DriverRedis:
		if redisManager == nil {
			return nil, fmt.Errorf("%w: redis driver needs a redis manager", ErrUnknownDriver)
		}
		client, err := redisManager.Client(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to open redis store: %w", err)
		}
		return redis.New(client, cfg.Storage.HistoryLimit, logger), nil

	case config.DriverNone, "":
		return NewNop(), nil

	default:
		return nil, fmt.Errorf("%w: %s", ErrUnknownDriver, cfg.Storage.Driver)
	}
}

// nopStore discards everything.
type nopStore struct{}

// NewNop returns a store that keeps nothing.
func NewNop() Store {
	return nopStore{}
}

func (nopStore) SaveInput(context.Context, string) error { return nil }

func (nopStore) LastInput(context.Context) (string, bool, error) { return "", false, nil }

func (nopStore) AddHistory(context.Context, *types.HistoryEntry) error { return nil }

func (nopStore) History(context.Context, int) ([]*types.HistoryEntry, error) { return nil, nil }

func (nopStore) Close() error { return nil }

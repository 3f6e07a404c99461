package redis

import (
	"context"
	"fmt"
	"sync"

	"github.com/redis/rueidis"
	"github.com/robalyx/cipherlab/internal/setup/config"
	"github.com/robalyx/cipherlab/pkg/utils"
	"go.uber.org/zap"
)

// Manager maintains a thread-safe mapping of database indices to Redis clients.
// Each database index gets its own dedicated connection pool through rueidis.
type Manager struct {
	clients map[int]rueidis.Client
	config  *config.Redis
	retry   utils.RetryOptions
	logger  *zap.Logger
	mu      sync.Mutex // Protects concurrent access to the clients map
}

// NewManager initializes the Redis connection manager with an empty client pool.
// Actual client connections are created lazily when first requested.
func NewManager(config *config.Redis, retry utils.RetryOptions, logger *zap.Logger) *Manager {
	return &Manager{
		clients: make(map[int]rueidis.Client),
		config:  config,
		retry:   retry,
		logger:  logger.Named("redis"),
	}
}

// Client returns the client for the configured database index.
func (m *Manager) Client(ctx context.Context) (rueidis.Client, error) {
	return m.GetClient(ctx, m.config.DB)
}

// GetClient retrieves or creates a Redis client for the specified database index.
// New clients are created with exponential backoff so a server that is still
// starting up does not fail the first command.
func (m *Manager) GetClient(ctx context.Context, dbIndex int) (rueidis.Client, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	// Check if client already exists
	if client, exists := m.clients[dbIndex]; exists {
		return client, nil
	}

	address := fmt.Sprintf("%s:%d", m.config.Host, m.config.Port)
	attempt := 0

	client, err := utils.WithRetry(ctx, func() (rueidis.Client, error) {
		attempt++
		client, err := rueidis.NewClient(rueidis.ClientOption{
			InitAddress:  []string{address},
			Username:     m.config.Username,
			Password:     m.config.Password,
			SelectDB:     dbIndex,
			ClientName:   "cipherlab",
			DisableCache: true,
		})
		if err != nil {
			m.logger.Warn("Failed to connect to Redis",
				zap.String("address", address),
				zap.Int("attempt", attempt),
				zap.Error(err))
			return nil, err
		}
		return client, nil
	}, m.retry)
	if err != nil {
		return nil, fmt.Errorf("failed to create Redis client for DB %d: %w", dbIndex, err)
	}

	m.clients[dbIndex] = client
	m.logger.Debug("Created new Redis client", zap.Int("dbIndex", dbIndex))
	return client, nil
}

// Close gracefully shuts down all active Redis clients in the pool.
// Safe to call multiple times as it cleans up only existing connections.
func (m *Manager) Close() {
	m.mu.Lock()
	defer m.mu.Unlock()

	for dbIndex, client := range m.clients {
		client.Close()
		delete(m.clients, dbIndex)
		m.logger.Debug("Closed Redis client", zap.Int("dbIndex", dbIndex))
	}
}

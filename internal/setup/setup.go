package setup

import (
	"context"
	"fmt"
	"log"

	"github.com/robalyx/cipherlab/internal/cipher"
	"github.com/robalyx/cipherlab/internal/redis"
	"github.com/robalyx/cipherlab/internal/setup/config"
	"github.com/robalyx/cipherlab/internal/setup/telemetry"
	"github.com/robalyx/cipherlab/internal/storage"
	"github.com/robalyx/cipherlab/internal/workbench"
	"github.com/robalyx/cipherlab/pkg/utils"
	"go.uber.org/zap"
)

// App bundles all core dependencies and services needed by the application.
// Each field represents a major subsystem that needs initialization and cleanup.
type App struct {
	Config       *config.Config       // Application configuration
	Logger       *zap.Logger          // Main application logger
	Engine       *cipher.Engine       // Substitution engine with its table cache
	RedisManager *redis.Manager       // Redis connection manager
	Store        storage.Store        // Persistence collaborator
	Workbench    *workbench.Workbench // Input adapter around the engine
	LogManager   *telemetry.Manager   // Log management system
}

// InitializeApp bootstraps all application dependencies in the correct order,
// ensuring each component has its required dependencies available.
func InitializeApp(ctx context.Context, component, configPath string) (*App, error) {
	// Load app configuration
	cfg, configDir, err := config.LoadConfig(configPath)
	if err != nil {
		return nil, err
	}

	// Logging system is initialized next to capture setup issues
	logManager := telemetry.NewManager(component, &cfg.Debug)

	logger, err := logManager.GetLogger()
	if err != nil {
		return nil, err
	}

	if configDir != "" {
		logger.Debug("Loaded configuration", zap.String("dir", configDir))
	} else {
		logger.Debug("No configuration file found, using defaults")
	}

	// Engine warms its table cache on creation
	engine := cipher.NewEngine(cipher.Options{
		WarmupShifts:   cfg.Cipher.WarmupShifts,
		ChunkSize:      cfg.Cipher.ChunkSize,
		YieldThreshold: cfg.Cipher.YieldThreshold,
		YieldEvery:     cfg.Cipher.YieldEvery,
		Workers:        cfg.Cipher.Workers,
	}, logger)

	// Redis manager is created lazily and only connects when the redis driver asks
	retry := utils.NewRetryOptions(cfg.Retry.MaxRetries, cfg.Retry.Delay, cfg.Retry.MaxDelay)
	redisManager := redis.NewManager(&cfg.Redis, retry, logger)

	store, err := storage.Open(ctx, cfg, redisManager, logger)
	if err != nil {
		redisManager.Close()
		logManager.Stop()
		return nil, fmt.Errorf("failed to open storage: %w", err)
	}

	wb := workbench.New(engine, store, workbench.Options{
		CompleteArabicDigits: cfg.Cipher.CompleteArabicDigits,
	}, logger)

	logger.Info("Application initialized",
		zap.String("component", component),
		zap.String("storage", cfg.Storage.Driver),
		zap.String("instance", logManager.GetInstanceID()))

	// Bundle all initialized components
	return &App{
		Config:       cfg,
		Logger:       logger,
		Engine:       engine,
		RedisManager: redisManager,
		Store:        store,
		Workbench:    wb,
		LogManager:   logManager,
	}, nil
}

// Cleanup ensures graceful shutdown of all components in reverse initialization order.
// Logs but does not fail on cleanup errors to ensure all components get cleanup attempts.
func (s *App) Cleanup() {
	// Close the store before its redis connection goes away
	if err := s.Store.Close(); err != nil {
		s.Logger.Error("Failed to close store", zap.Error(err))
	}

	// Close Redis connections last as other components might need it during cleanup
	s.RedisManager.Close()

	// Sync buffered logs before shutdown
	if err := s.Logger.Sync(); err != nil {
		log.Printf("Failed to sync logger: %v", err)
	}

	s.LogManager.Stop()
}

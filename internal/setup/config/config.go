package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/knadh/koanf/parsers/toml/v2"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

var (
	ErrConfigFileNotFound    = errors.New("could not find config file")
	ErrConfigVersionMissing  = errors.New("config file is missing version field")
	ErrConfigVersionMismatch = errors.New("config file version mismatch")
)

// RepositoryVersion is the repository version tag for config file references.
const RepositoryVersion = "v0.1.0"

// CurrentVersion is the current version of the config file.
const CurrentVersion = 1

// FileName is the name of the config file looked up in the search paths.
const FileName = "cipherlab.toml"

// Storage drivers.
const (
	DriverSQLite = "sqlite"
	DriverRedis  = "redis"
	DriverNone   = "none"
)

// Config represents the entire application configuration.
type Config struct {
	// Version of the config file.
	Version int     `koanf:"version"`
	Debug   Debug   `koanf:"debug"`
	Cipher  Cipher  `koanf:"cipher"`
	Storage Storage `koanf:"storage"`
	Redis   Redis   `koanf:"redis"`
	Retry   Retry   `koanf:"retry"`
}

// Debug contains debug-related configuration.
type Debug struct {
	// Log level (debug, info, warn, error).
	LogLevel string `koanf:"log_level"`
	// Directory holding the session log folders.
	LogDir string `koanf:"log_dir"`
	// Maximum log sessions to keep.
	MaxLogsToKeep int `koanf:"max_logs_to_keep"`
	// Maximum lines per log file.
	MaxLogLines int `koanf:"max_log_lines"`
}

// Cipher contains the substitution engine configuration.
type Cipher struct {
	// Number of shift tables built at startup.
	WarmupShifts int `koanf:"warmup_shifts"`
	// Characters per batch chunk.
	ChunkSize int `koanf:"chunk_size"`
	// Text length above which batch runs yield.
	YieldThreshold int `koanf:"yield_threshold"`
	// Chunks processed between yields.
	YieldEvery int `koanf:"yield_every"`
	// Concurrent chunk workers.
	Workers int `koanf:"workers"`
	// Also map the Arabic-Indic digit one when normalizing shift values.
	CompleteArabicDigits bool `koanf:"complete_arabic_digits"`
}

// Storage contains persistence configuration.
type Storage struct {
	// Storage driver (sqlite, redis, none).
	Driver string `koanf:"driver"`
	// Path of the SQLite database file.
	SQLitePath string `koanf:"sqlite_path"`
	// Maximum history entries kept.
	HistoryLimit int `koanf:"history_limit"`
}

// Redis contains Redis connection configuration.
type Redis struct {
	// Redis hostname.
	Host string `koanf:"host"`
	// Redis port.
	Port int `koanf:"port"`
	// Redis username.
	Username string `koanf:"username"`
	// Redis password.
	Password string `koanf:"password"`
	// Database index.
	DB int `koanf:"db"`
}

// Retry contains retry configuration.
type Retry struct {
	// Maximum retry attempts.
	MaxRetries uint64 `koanf:"max_retries"`
	// Initial retry delay in milliseconds.
	Delay int `koanf:"delay"`
	// Maximum retry delay in milliseconds.
	MaxDelay int `koanf:"max_delay"`
}

// Default returns the configuration used when no config file is found.
func Default() *Config {
	return &Config{
		Version: CurrentVersion,
		Debug: Debug{
			LogLevel:      "info",
			LogDir:        "logs",
			MaxLogsToKeep: 10,
			MaxLogLines:   10000,
		},
		Cipher: Cipher{
			WarmupShifts:   100,
			ChunkSize:      1000,
			YieldThreshold: 10000,
			YieldEvery:     10,
			Workers:        1,
		},
		Storage: Storage{
			Driver:       DriverSQLite,
			SQLitePath:   "cipherlab.db",
			HistoryLimit: 100,
		},
		Redis: Redis{
			Host: "localhost",
			Port: 6379,
		},
		Retry: Retry{
			MaxRetries: 3,
			Delay:      500,
			MaxDelay:   5000,
		},
	}
}

// LoadConfig loads the configuration. An explicit path must exist; otherwise the
// search paths are tried in order and defaults apply when none has a config file.
// Returns the config along with the used config directory.
func LoadConfig(path string) (*Config, string, error) {
	k := koanf.New(".")
	config := Default()

	if path != "" {
		if err := k.Load(file.Provider(path), toml.Parser()); err != nil {
			if errors.Is(err, os.ErrNotExist) {
				return nil, "", fmt.Errorf("%w: %s", ErrConfigFileNotFound, path)
			}
			return nil, "", fmt.Errorf("error loading config %s: %w", path, err)
		}
		return unmarshal(k, config, filepath.Dir(path))
	}

	// Get user's home directory
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return nil, "", fmt.Errorf("failed to get home directory: %w", err)
	}

	// List search paths
	configPaths := []string{
		".cipherlab",
		homeDir + "/.cipherlab/config",
		"/etc/cipherlab/config",
		"config",
		".",
	}

	for _, dir := range configPaths {
		configPath := filepath.Join(dir, FileName)
		if _, err := os.Stat(configPath); err != nil {
			continue
		}

		if err := k.Load(file.Provider(configPath), toml.Parser()); err != nil {
			return nil, "", fmt.Errorf("error loading config %s: %w", configPath, err)
		}
		return unmarshal(k, config, dir)
	}

	return config, "", nil
}

// unmarshal decodes the loaded file over the defaults and checks its version.
func unmarshal(k *koanf.Koanf, config *Config, dir string) (*Config, string, error) {
	config.Version = 0
	if err := k.Unmarshal("", config); err != nil {
		return nil, "", fmt.Errorf("error unmarshaling config: %w", err)
	}

	if err := checkConfigVersion(config.Version, CurrentVersion); err != nil {
		return nil, "", err
	}

	return config, dir, nil
}

// checkConfigVersion checks if the config file version is correct.
func checkConfigVersion(current, expected int) error {
	if current == 0 {
		return fmt.Errorf("%w: %s", ErrConfigVersionMissing, FileName)
	}

	if current != expected {
		return fmt.Errorf(
			"%w: %s (got: %d, expected: %d)\n"+
				"Please update your config file from: https://github.com/robalyx/cipherlab/tree/%s/config/%s",
			ErrConfigVersionMismatch,
			FileName,
			current,
			expected,
			RepositoryVersion,
			FileName,
		)
	}

	return nil
}

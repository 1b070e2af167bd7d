package factory

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/norin/shapekey/internal/adapters/store"
	"github.com/norin/shapekey/internal/config"
	"github.com/norin/shapekey/internal/core"
	"go.uber.org/zap"
)

// StoreFactory creates model stores based on configuration
type StoreFactory struct {
	cfg    *config.Config
	logger *zap.Logger
}

// NewStoreFactory creates a new store factory
func NewStoreFactory(cfg *config.Config, logger *zap.Logger) *StoreFactory {
	return &StoreFactory{
		cfg:    cfg,
		logger: logger,
	}
}

// CreateKeyValueStore creates a key-value store based on the configuration
func (f *StoreFactory) CreateKeyValueStore() (core.KeyValueStore, error) {
	storeType := f.cfg.GetString("store.type")

	switch storeType {
	case "memory":
		return store.NewMemoryStore(f.logger), nil
	case "sqlite":
		sqlitePath := f.cfg.GetString("store.sqlite_path")
		// Ensure directory exists
		if err := os.MkdirAll(filepath.Dir(sqlitePath), 0755); err != nil {
			return nil, fmt.Errorf("failed to create SQLite directory: %w", err)
		}
		return store.NewSQLiteStore(sqlitePath, f.logger)
	case "mysql":
		mysqlDSN := f.cfg.GetString("store.mysql_dsn")
		return store.NewMySQLStore(mysqlDSN, f.logger)
	default:
		return nil, fmt.Errorf("unsupported store type: %s", storeType)
	}
}

// GetCacheMaxAge returns the configured maximum age for cached models
func (f *StoreFactory) GetCacheMaxAge() (time.Duration, error) {
	return f.cfg.GetDuration("cache.max_age")
}

// GetEvictFrequency returns how often expired cached models are evicted
func (f *StoreFactory) GetEvictFrequency() (time.Duration, error) {
	return f.cfg.GetDuration("cache.evict_frequency")
}

package di

import (
	"context"
	"flag"

	"go.uber.org/dig"
	"go.uber.org/zap"

	"github.com/norin/shapekey/internal/adapters/langdetect"
	"github.com/norin/shapekey/internal/adapters/registry"
	"github.com/norin/shapekey/internal/classifier"
	"github.com/norin/shapekey/internal/config"
	"github.com/norin/shapekey/internal/core"
	"github.com/norin/shapekey/internal/factory"
	"github.com/norin/shapekey/internal/logging"
	"github.com/norin/shapekey/internal/matcher"
	"github.com/norin/shapekey/internal/utils"
)

// CLIFlags contains all command line flags for the CLI application
type CLIFlags struct {
	// Mode selection
	Mode string

	// Model flags
	ModelID   string
	Threshold float64

	// Store flags
	StoreType  string
	SQLitePath string
	MySQLDSN   string

	// Match flags
	Cases string

	// Input flags
	InputFile  string
	Verbose    bool
	JSONLog    bool
	ConfigFile string
}

// ParseFlags parses command line flags and returns a CLIFlags struct
func ParseFlags() *CLIFlags {
	flags := &CLIFlags{}

	// Mode selection
	flag.StringVar(&flags.Mode, "mode", "match", "Operation mode (train, match, info, clear)")

	// Model flags
	flag.StringVar(&flags.ModelID, "model", "", "Model identifier for train, info and clear modes")
	flag.Float64Var(&flags.Threshold, "threshold", 0.5, "Confidence threshold for model rules")

	// Store flags
	flag.StringVar(&flags.StoreType, "store", "memory", "Model store backend (memory, sqlite, mysql)")
	flag.StringVar(&flags.SQLitePath, "sqlite-path", "/data/shapekey_models.db", "Path to the SQLite database file")
	flag.StringVar(&flags.MySQLDSN, "mysql-dsn", "", "MySQL DSN for the model store")

	// Match flags
	flag.StringVar(&flags.Cases, "cases", "", "Comma separated rule cases to match against (overrides config rules)")

	// Input flags
	flag.StringVar(&flags.InputFile, "file", "", "Input text file (use stdin if not specified)")
	flag.BoolVar(&flags.Verbose, "verbose", false, "Enable verbose logging")
	flag.BoolVar(&flags.JSONLog, "json-log", false, "Output logs in JSON format")
	flag.StringVar(&flags.ConfigFile, "config", "", "Path to config file (overrides command line flags)")

	flag.Parse()
	return flags
}

// BuildCLIContainer creates and configures a dependency injection container for the CLI application
func BuildCLIContainer(flags *CLIFlags) (*dig.Container, error) {
	container := dig.New()

	// Register flags
	if err := container.Provide(func() *CLIFlags { return flags }); err != nil {
		return nil, err
	}

	// Register logger
	if err := container.Provide(func(flags *CLIFlags) (*zap.Logger, error) {
		return logging.InitConsoleLogger(flags.Verbose, flags.JSONLog)
	}); err != nil {
		return nil, err
	}

	// Register configuration
	if err := container.Provide(func(flags *CLIFlags, logger *zap.Logger) (*config.Config, error) {
		if flags.ConfigFile != "" {
			cfg, err := config.New()
			if err != nil {
				return nil, err
			}
			logger.Info("Loaded configuration from file", zap.String("file", cfg.GetViper().ConfigFileUsed()))
			return cfg, nil
		}

		// Create config from command line flags
		return createConfigFromFlags(flags), nil
	}); err != nil {
		return nil, err
	}

	// Register text processor
	if err := container.Provide(func(logger *zap.Logger) *utils.TextProcessor {
		return utils.NewTextProcessor(logger)
	}); err != nil {
		return nil, err
	}

	// Register factories
	if err := container.Provide(factory.NewStoreFactory); err != nil {
		return nil, err
	}
	if err := container.Provide(factory.NewRegistryFactory); err != nil {
		return nil, err
	}

	// Register model store
	if err := container.Provide(func(f *factory.StoreFactory) (core.KeyValueStore, error) {
		return f.CreateKeyValueStore()
	}); err != nil {
		return nil, err
	}

	// Register model cache
	if err := container.Provide(classifier.NewModelCache); err != nil {
		return nil, err
	}

	// Register language detectors
	if err := container.Provide(func(logger *zap.Logger) core.NaturalDetector {
		return langdetect.NewWhatlangDetector(logger)
	}); err != nil {
		return nil, err
	}
	if err := container.Provide(func(logger *zap.Logger) core.ProgramDetector {
		return langdetect.NewEnryDetector(logger)
	}); err != nil {
		return nil, err
	}

	// Register model and regexp registries
	if err := container.Provide(func(f *factory.RegistryFactory, svc *classifier.Service) (*registry.Registry, error) {
		return f.CreateRegistry(context.Background(), svc)
	}); err != nil {
		return nil, err
	}
	if err := container.Provide(func(r *registry.Registry) core.ModelRegistry {
		return r
	}); err != nil {
		return nil, err
	}
	if err := container.Provide(func(r *registry.Registry) core.RegexpRegistry {
		return r
	}); err != nil {
		return nil, err
	}

	// Register classifier service
	if err := container.Provide(classifier.NewService); err != nil {
		return nil, err
	}
	if err := container.Provide(func(s *classifier.Service) matcher.Predictor {
		return s
	}); err != nil {
		return nil, err
	}

	// Register matcher
	if err := container.Provide(matcher.New); err != nil {
		return nil, err
	}

	return container, nil
}

// createConfigFromFlags creates a configuration from command line flags
func createConfigFromFlags(flags *CLIFlags) *config.Config {
	v := config.NewEmptyViper()

	v.Set("cli.verbose", flags.Verbose)

	// Set store backend
	v.Set("store.type", flags.StoreType)
	if flags.SQLitePath != "" {
		v.Set("store.sqlite_path", flags.SQLitePath)
	}
	if flags.MySQLDSN != "" {
		v.Set("store.mysql_dsn", flags.MySQLDSN)
	}

	// Set classifier threshold
	v.Set("classifier.default_threshold", flags.Threshold)

	return config.NewFromViper(v)
}

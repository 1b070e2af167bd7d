package di

import (
	"context"

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

// BuildContainer creates and configures a dependency injection container
func BuildContainer() (*dig.Container, error) {
	container := dig.New()

	// Register configuration
	if err := container.Provide(config.New); err != nil {
		return nil, err
	}

	// Register logger
	if err := container.Provide(logging.InitLogger); err != nil {
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

	// Register configured rules
	if err := container.Provide(func(f *factory.RegistryFactory) ([]*core.Rule, error) {
		return f.CreateRules()
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

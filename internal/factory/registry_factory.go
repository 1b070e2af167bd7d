package factory

import (
	"context"
	"fmt"

	"github.com/norin/shapekey/internal/adapters/registry"
	"github.com/norin/shapekey/internal/classifier"
	"github.com/norin/shapekey/internal/config"
	"github.com/norin/shapekey/internal/core"
	"go.uber.org/zap"
)

// RegistryFactory builds the rule set and the model and regexp registries
// from configuration
type RegistryFactory struct {
	cfg    *config.Config
	logger *zap.Logger
}

// NewRegistryFactory creates a new registry factory
func NewRegistryFactory(cfg *config.Config, logger *zap.Logger) *RegistryFactory {
	return &RegistryFactory{
		cfg:    cfg,
		logger: logger,
	}
}

// CreateRegistry creates a registry populated with the configured models
// and regular expressions. Each model's trained state is read from its
// persisted classifier config through the service, so a model trained in
// an earlier run is usable immediately. A zero threshold means unset and
// takes the configured default.
func (f *RegistryFactory) CreateRegistry(ctx context.Context, svc *classifier.Service) (*registry.Registry, error) {
	modelCfgs, err := f.cfg.GetModels()
	if err != nil {
		return nil, fmt.Errorf("failed to load model config: %w", err)
	}
	regexpCfgs, err := f.cfg.GetRegexps()
	if err != nil {
		return nil, fmt.Errorf("failed to load regexp config: %w", err)
	}

	defaultThreshold := f.cfg.GetClassifier().DefaultThreshold

	models := make([]*core.Model, 0, len(modelCfgs))
	for _, m := range modelCfgs {
		threshold := m.Threshold
		if threshold == 0 {
			threshold = defaultThreshold
		}

		trained := false
		info, err := svc.ModelInfo(ctx, m.ID)
		if err != nil {
			f.logger.Warn("Failed to read persisted model state",
				zap.String("model_id", m.ID), zap.Error(err))
		} else {
			trained = info.Trained
		}

		models = append(models, &core.Model{
			ID:        m.ID,
			Sample:    m.Sample,
			Threshold: threshold,
			Trained:   trained,
		})
	}
	regexps := make([]*core.Regexp, 0, len(regexpCfgs))
	for _, r := range regexpCfgs {
		regexps = append(regexps, &core.Regexp{
			ID:      r.ID,
			Pattern: r.Pattern,
			Flags:   r.Flags,
		})
	}

	return registry.New(models, regexps, f.logger), nil
}

// CreateRules creates the ordered rule list from configuration
func (f *RegistryFactory) CreateRules() ([]*core.Rule, error) {
	ruleCfgs, err := f.cfg.GetRules()
	if err != nil {
		return nil, fmt.Errorf("failed to load rule config: %w", err)
	}

	rules := make([]*core.Rule, 0, len(ruleCfgs))
	for _, r := range ruleCfgs {
		rules = append(rules, &core.Rule{
			ID:     r.ID,
			Key:    r.Key,
			Case:   r.Case,
			Action: r.Action,
		})
	}
	return rules, nil
}

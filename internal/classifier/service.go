package classifier

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/norin/shapekey/internal/core"
	"github.com/norin/shapekey/internal/utils"
)

// Service is the application-facing facade over classifiers: it trains by
// id, predicts through the cache with load-on-demand, and manages the
// persisted artifacts.
type Service struct {
	store  core.KeyValueStore
	cache  *ModelCache
	text   *utils.TextProcessor
	logger *zap.Logger
}

// NewService creates a classifier service on top of a key/value store and
// an injected model cache.
func NewService(store core.KeyValueStore, cache *ModelCache, text *utils.TextProcessor, logger *zap.Logger) *Service {
	return &Service{
		store:  store,
		cache:  cache,
		text:   text,
		logger: logger,
	}
}

func (s *Service) classifier(id string) *Classifier {
	return New(id, s.store, s.cache, s.text, s.logger)
}

// Train fits and persists the model for an id from positive samples.
func (s *Service) Train(ctx context.Context, id string, samples []string) (*core.TrainingHistory, error) {
	return s.classifier(id).Train(ctx, samples)
}

// TrainText is Train for newline-separated raw sample text.
func (s *Service) TrainText(ctx context.Context, id, text string) (*core.TrainingHistory, error) {
	return s.classifier(id).TrainText(ctx, text)
}

// Predict returns the confidence of the model for an id on a text,
// loading the model on demand. ok is false when no usable trained model
// exists; that is a normal miss, not an error.
func (s *Service) Predict(ctx context.Context, id, text string) (confidence float64, ok bool) {
	c := s.classifier(id)
	if !c.LoadModel(ctx) {
		s.logger.Debug("Unable to load model for prediction", zap.String("model_id", id))
		return 0, false
	}
	if !c.trained {
		s.logger.Warn("Model not trained yet", zap.String("model_id", id))
		return 0, false
	}
	s.cache.Touch(id)
	return c.Predict(text), true
}

// ClearSavedModel removes every persisted artifact for an id and evicts
// its cache entry, releasing model resources.
func (s *Service) ClearSavedModel(ctx context.Context, id string) error {
	s.cache.Evict(id)

	for _, key := range []string{weightsKey(id), tokenizerKey(id), configKey(id)} {
		if err := s.store.Remove(ctx, key); err != nil {
			return fmt.Errorf("failed to remove %q: %w", key, err)
		}
	}
	s.logger.Debug("Cleared saved model data", zap.String("model_id", id))
	return nil
}

// ModelInfo reports the persisted footprint of a model: blob size and
// vocabulary count.
func (s *Service) ModelInfo(ctx context.Context, id string) (core.ModelInfo, error) {
	var info core.ModelInfo

	totalBytes := 0
	for _, key := range []string{weightsKey(id), tokenizerKey(id), configKey(id)} {
		value, ok, err := s.store.Get(ctx, key)
		if err != nil {
			return info, fmt.Errorf("failed to read %q: %w", key, err)
		}
		if ok {
			totalBytes += len(key) + len(value)
		}
	}
	info.SizeKB = float64(totalBytes) / 1024

	configData, ok, err := s.store.Get(ctx, configKey(id))
	if err != nil {
		return info, fmt.Errorf("failed to read model config: %w", err)
	}
	if ok {
		var cfg Config
		if err := json.Unmarshal(configData, &cfg); err == nil {
			info.Vocabulary = cfg.TokenizerSize
			info.Trained = cfg.ModelTrained
		}
	}
	return info, nil
}

// EvictExpired removes cached models unused for longer than maxAge.
func (s *Service) EvictExpired(maxAge time.Duration) int {
	return s.cache.EvictExpired(maxAge)
}

// Package classifier implements the single-class text classifier: a
// compact embedding network trained from positive samples plus synthetic
// negatives, persisted through a key/value store and served from an
// in-process model cache.
package classifier

import (
	"context"
	"encoding/json"
	"fmt"
	"math/rand"
	"sort"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/norin/shapekey/internal/core"
	"github.com/norin/shapekey/internal/utils"
)

// Storage key namespaces, one value each per classifier id.
const (
	storageClassifier = "classifier"
	storageConfig     = "classifier_config"
	storageTokenizer  = "classifier_tokenizer"
)

// Defaults sized for small training sets.
const (
	DefaultMaxSequenceLength = 50
	DefaultEmbeddingDim      = 32
)

// Config is the persisted classifier configuration.
type Config struct {
	MaxSequenceLength int  `json:"maxSequenceLength"`
	EmbeddingDim      int  `json:"embeddingDim"`
	ModelTrained      bool `json:"modelTrained"`
	TokenizerSize     int  `json:"tokenizerSize"`
}

// Classifier is one logical model identified by a caller-supplied id. It
// starts untrained; Train fits and persists it, LoadModel restores it from
// the cache or the store.
type Classifier struct {
	id     string
	store  core.KeyValueStore
	cache  *ModelCache
	text   *utils.TextProcessor
	logger *zap.Logger
	rng    *rand.Rand

	net     *network
	vocab   Vocabulary
	maxLen  int
	dim     int
	trained bool
}

// New creates an untrained classifier for the given id.
func New(id string, store core.KeyValueStore, cache *ModelCache, text *utils.TextProcessor, logger *zap.Logger) *Classifier {
	return &Classifier{
		id:     id,
		store:  store,
		cache:  cache,
		text:   text,
		logger: logger.With(zap.String("model_id", id)),
		rng:    rand.New(rand.NewSource(time.Now().UnixNano())),
		maxLen: DefaultMaxSequenceLength,
		dim:    DefaultEmbeddingDim,
	}
}

func weightsKey(id string) string   { return storageClassifier + "_" + id }
func configKey(id string) string    { return storageConfig + "_" + id }
func tokenizerKey(id string) string { return storageTokenizer + "_" + id }

// Train fits a fresh model from positive samples only. Input is normalized
// (sanitized, trimmed, blanks dropped, deduplicated) and must leave at
// least three distinct samples, otherwise core.ErrInsufficientSamples is
// returned and the current state is untouched. On success the new state
// replaces the old one, is persisted, and is placed in the cache.
func (c *Classifier) Train(ctx context.Context, samples []string) (*core.TrainingHistory, error) {
	positives := c.text.PrepareSamples(samples)
	if len(positives) < 3 {
		return nil, fmt.Errorf("%w: got %d valid samples", core.ErrInsufficientSamples, len(positives))
	}

	vocab := BuildVocabulary(positives)
	c.logger.Debug("Built vocabulary", zap.Int("size", len(vocab)))

	inputs := make([][]int, 0, len(positives)+maxNegativeSamples)
	labels := make([]float64, 0, len(positives)+maxNegativeSamples)
	for _, text := range positives {
		inputs = append(inputs, vocab.Sequence(text, c.maxLen))
		labels = append(labels, 1)
	}
	for _, seq := range Synthesize(c.rng, len(vocab), NegativeCount(len(positives)), c.maxLen) {
		inputs = append(inputs, seq)
		labels = append(labels, 0)
	}

	net := newNetwork(len(vocab), c.dim, c.maxLen, c.rng)
	history := net.fit(inputs, labels, c.rng)
	c.logger.Debug("Model fit complete",
		zap.Int("epochs", history.Epochs()),
		zap.Float64("final_loss", history.Loss[history.Epochs()-1]))

	// Persist before committing so a storage failure leaves the previous
	// state in effect.
	cfg := Config{
		MaxSequenceLength: c.maxLen,
		EmbeddingDim:      c.dim,
		ModelTrained:      true,
		TokenizerSize:     len(vocab),
	}
	if err := c.persist(ctx, net, vocab, cfg); err != nil {
		return nil, err
	}

	c.net = net
	c.vocab = vocab
	c.trained = true
	c.cache.Put(c.id, net, vocab, cfg)

	c.logger.Info("Model trained",
		zap.Int("positives", len(positives)),
		zap.Int("negatives", NegativeCount(len(positives))),
		zap.Int("vocabulary", len(vocab)))
	return history, nil
}

// TrainText is Train for newline-separated raw sample text.
func (c *Classifier) TrainText(ctx context.Context, text string) (*core.TrainingHistory, error) {
	return c.Train(ctx, strings.Split(text, "\n"))
}

// Predict returns the model's confidence that the text belongs to the
// trained class. An untrained or unloaded classifier yields 0, as does a
// text none of whose tokens appear in the vocabulary. Runtime failures in
// the forward pass degrade to 0 rather than propagate.
func (c *Classifier) Predict(text string) (confidence float64) {
	if c.net == nil || !c.trained {
		c.logger.Warn("Predict called on untrained or unloaded model")
		return 0
	}

	seq := c.vocab.Sequence(text, c.maxLen)
	nonZero := 0
	for _, id := range seq {
		if id > 0 {
			nonZero++
		}
	}
	if nonZero == 0 && c.vocab.KnownTokenCount(text) == 0 {
		c.logger.Debug("No known tokens in input", zap.Int("vocabulary", len(c.vocab)))
		return 0
	}

	defer func() {
		if r := recover(); r != nil {
			c.logger.Error("Prediction failed", zap.Any("panic", r))
			confidence = 0
		}
	}()
	return c.net.Predict(seq)
}

// SaveModel persists the current state under the classifier's id.
func (c *Classifier) SaveModel(ctx context.Context) error {
	if c.net == nil {
		return fmt.Errorf("no model to save for id %q", c.id)
	}
	cfg := Config{
		MaxSequenceLength: c.maxLen,
		EmbeddingDim:      c.dim,
		ModelTrained:      c.trained,
		TokenizerSize:     len(c.vocab),
	}
	if err := c.persist(ctx, c.net, c.vocab, cfg); err != nil {
		return err
	}
	c.cache.Put(c.id, c.net, c.vocab, cfg)
	return nil
}

func (c *Classifier) persist(ctx context.Context, net *network, vocab Vocabulary, cfg Config) error {
	weights, err := net.MarshalJSON()
	if err != nil {
		return fmt.Errorf("failed to encode model weights: %w", err)
	}
	tokenizer, err := marshalVocabulary(vocab)
	if err != nil {
		return fmt.Errorf("failed to encode tokenizer: %w", err)
	}
	config, err := json.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to encode model config: %w", err)
	}

	if err := c.store.Set(ctx, weightsKey(c.id), weights); err != nil {
		return fmt.Errorf("failed to store model weights: %w", err)
	}
	if err := c.store.Set(ctx, tokenizerKey(c.id), tokenizer); err != nil {
		return fmt.Errorf("failed to store tokenizer: %w", err)
	}
	if err := c.store.Set(ctx, configKey(c.id), config); err != nil {
		return fmt.Errorf("failed to store model config: %w", err)
	}
	return nil
}

// LoadModel restores state from the cache, falling back to the store. It
// returns false when no persisted data exists or the data is unusable; in
// the failure case in-memory state is reset so the classifier is cleanly
// unusable rather than half-initialized.
func (c *Classifier) LoadModel(ctx context.Context) bool {
	if entry, ok := c.cache.Get(c.id); ok {
		c.net = entry.net
		c.vocab = entry.vocab
		c.maxLen = entry.config.MaxSequenceLength
		c.dim = entry.config.EmbeddingDim
		c.trained = entry.config.ModelTrained
		c.cache.Touch(c.id)
		return true
	}

	tokenizerData, ok, err := c.store.Get(ctx, tokenizerKey(c.id))
	if err != nil || !ok {
		c.logFetch("tokenizer", ok, err)
		return false
	}
	configData, ok, err := c.store.Get(ctx, configKey(c.id))
	if err != nil || !ok {
		c.logFetch("config", ok, err)
		return false
	}
	weightsData, ok, err := c.store.Get(ctx, weightsKey(c.id))
	if err != nil || !ok {
		c.logFetch("weights", ok, err)
		return false
	}

	vocab, err := unmarshalVocabulary(tokenizerData)
	if err == nil {
		var cfg Config
		if err = json.Unmarshal(configData, &cfg); err == nil {
			var net *network
			if net, err = networkFromJSON(weightsData); err == nil {
				if cfg.TokenizerSize != 0 && cfg.TokenizerSize != len(vocab) {
					c.logger.Warn("Tokenizer size mismatch",
						zap.Int("expected", cfg.TokenizerSize),
						zap.Int("actual", len(vocab)))
				}
				c.net = net
				c.vocab = vocab
				c.maxLen = cfg.MaxSequenceLength
				c.dim = cfg.EmbeddingDim
				c.trained = cfg.ModelTrained
				c.cache.Put(c.id, net, vocab, cfg)
				return true
			}
		}
	}

	c.logger.Error("Failed to load model, resetting state", zap.Error(err))
	c.net = nil
	c.vocab = nil
	c.trained = false
	return false
}

func (c *Classifier) logFetch(artifact string, ok bool, err error) {
	if err != nil {
		c.logger.Error("Failed to read model artifact", zap.String("artifact", artifact), zap.Error(err))
		return
	}
	if !ok {
		c.logger.Debug("No saved model data found", zap.String("artifact", artifact))
	}
}

// marshalVocabulary serializes the token map as a JSON list of [token, id]
// pairs, sorted by id for a stable wire form. Ids are not assumed dense:
// a vocabulary restored from an older blob may carry gaps.
func marshalVocabulary(vocab Vocabulary) ([]byte, error) {
	pairs := make([][2]interface{}, 0, len(vocab))
	for tok, id := range vocab {
		pairs = append(pairs, [2]interface{}{tok, id})
	}
	sort.Slice(pairs, func(i, j int) bool {
		return pairs[i][1].(int) < pairs[j][1].(int)
	})
	return json.Marshal(pairs)
}

func unmarshalVocabulary(data []byte) (Vocabulary, error) {
	var pairs [][2]json.RawMessage
	if err := json.Unmarshal(data, &pairs); err != nil {
		return nil, fmt.Errorf("failed to decode tokenizer: %w", err)
	}
	vocab := make(Vocabulary, len(pairs))
	for _, pair := range pairs {
		var tok string
		var id int
		if err := json.Unmarshal(pair[0], &tok); err != nil {
			return nil, fmt.Errorf("failed to decode tokenizer entry: %w", err)
		}
		if err := json.Unmarshal(pair[1], &id); err != nil {
			return nil, fmt.Errorf("failed to decode tokenizer entry: %w", err)
		}
		vocab[tok] = id
	}
	return vocab, nil
}

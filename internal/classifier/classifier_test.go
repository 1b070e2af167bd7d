package classifier

import (
	"context"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/norin/shapekey/internal/adapters/store"
	"github.com/norin/shapekey/internal/core"
	"github.com/norin/shapekey/internal/utils"
)

var trainingSamples = []string{
	"INV-2024-0001",
	"INV-2024-0002",
	"INV-2024-0317",
	"INV-2023-9981",
	"INV-2023-0456",
	"INV-2022-1204",
}

func newTestService(t *testing.T) (*Service, core.KeyValueStore) {
	t.Helper()
	logger := zap.NewNop()
	kv := store.NewMemoryStore(logger)
	svc := NewService(kv, NewModelCache(logger), utils.NewTextProcessor(logger), logger)
	return svc, kv
}

func TestTrainRejectsInsufficientSamples(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	_, err := svc.Train(ctx, "m1", []string{"one", "two"})
	assert.ErrorIs(t, err, core.ErrInsufficientSamples)

	// Blanks and duplicates do not count toward the minimum.
	_, err = svc.Train(ctx, "m1", []string{"one", "one", "  ", "", "two"})
	assert.ErrorIs(t, err, core.ErrInsufficientSamples)
}

func TestTrainProducesHistory(t *testing.T) {
	svc, _ := newTestService(t)

	history, err := svc.Train(context.Background(), "m1", trainingSamples)
	require.NoError(t, err)
	assert.Equal(t, 50, history.Epochs())
	assert.Len(t, history.Accuracy, 50)
	assert.Len(t, history.ValLoss, 50)
	for _, loss := range history.Loss {
		assert.False(t, loss != loss, "loss must not be NaN")
	}
}

func TestTrainPersistsArtifacts(t *testing.T) {
	svc, kv := newTestService(t)
	ctx := context.Background()

	_, err := svc.Train(ctx, "m1", trainingSamples)
	require.NoError(t, err)

	for _, key := range []string{"classifier_m1", "classifier_tokenizer_m1", "classifier_config_m1"} {
		_, ok, err := kv.Get(ctx, key)
		require.NoError(t, err)
		assert.True(t, ok, "expected %q to be persisted", key)
	}
}

func TestPredictAfterTrain(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	_, err := svc.Train(ctx, "m1", trainingSamples)
	require.NoError(t, err)

	conf, ok := svc.Predict(ctx, "m1", "INV-2024-0001")
	require.True(t, ok)
	assert.Greater(t, conf, 0.5)
	assert.LessOrEqual(t, conf, 1.0)

	// Inference runs without dropout, so repeated calls agree exactly.
	again, ok := svc.Predict(ctx, "m1", "INV-2024-0001")
	require.True(t, ok)
	assert.Equal(t, conf, again)
}

func TestPredictUnknownModel(t *testing.T) {
	svc, _ := newTestService(t)

	_, ok := svc.Predict(context.Background(), "never-trained", "anything")
	assert.False(t, ok)
}

func TestPredictOutOfVocabularyShortCircuits(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	// Undelimited ASCII ids share no token, not even the length or
	// word-count buckets, with the short Chinese probe below.
	_, err := svc.Train(ctx, "m1", []string{
		"INV20240001", "INV20240002", "INV20240317", "INV20239981", "INV20230456",
	})
	require.NoError(t, err)

	conf, ok := svc.Predict(ctx, "m1", "你好 世界")
	require.True(t, ok)
	assert.Equal(t, 0.0, conf)
}

func TestModelRoundTripThroughStore(t *testing.T) {
	logger := zap.NewNop()
	kv := store.NewMemoryStore(logger)
	text := utils.NewTextProcessor(logger)
	ctx := context.Background()

	first := NewService(kv, NewModelCache(logger), text, logger)
	_, err := first.Train(ctx, "m1", trainingSamples)
	require.NoError(t, err)
	want, ok := first.Predict(ctx, "m1", "INV-2024-9999")
	require.True(t, ok)

	// A fresh service with an empty cache must reload from the store and
	// reproduce the same confidence.
	second := NewService(kv, NewModelCache(logger), text, logger)
	got, ok := second.Predict(ctx, "m1", "INV-2024-9999")
	require.True(t, ok)
	assert.InDelta(t, want, got, 1e-12)
}

func TestClearSavedModel(t *testing.T) {
	svc, kv := newTestService(t)
	ctx := context.Background()

	_, err := svc.Train(ctx, "m1", trainingSamples)
	require.NoError(t, err)
	require.NoError(t, svc.ClearSavedModel(ctx, "m1"))

	_, ok, err := kv.Get(ctx, "classifier_m1")
	require.NoError(t, err)
	assert.False(t, ok)

	_, ok = svc.Predict(ctx, "m1", "INV-2024-0001")
	assert.False(t, ok)
}

func TestModelInfo(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	info, err := svc.ModelInfo(ctx, "m1")
	require.NoError(t, err)
	assert.False(t, info.Trained)
	assert.Zero(t, info.Vocabulary)

	_, err = svc.Train(ctx, "m1", trainingSamples)
	require.NoError(t, err)

	info, err = svc.ModelInfo(ctx, "m1")
	require.NoError(t, err)
	assert.True(t, info.Trained)
	assert.Greater(t, info.Vocabulary, 0)
	assert.Greater(t, info.SizeKB, 0.0)
}

func TestNetworkStateRoundTrip(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	net := newNetwork(25, 8, 16, rng)
	seq := []int{3, 1, 4, 1, 5, 9, 2, 6, 0, 0, 0, 0, 0, 0, 0, 0}
	want := net.Predict(seq)

	data, err := net.MarshalJSON()
	require.NoError(t, err)

	restored, err := networkFromJSON(data)
	require.NoError(t, err)
	assert.InDelta(t, want, restored.Predict(seq), 1e-15)
}

func TestNetworkFromJSONRejectsBadShapes(t *testing.T) {
	_, err := networkFromJSON([]byte(`{"vocabSize":0,"embeddingDim":8,"maxSequenceLength":16}`))
	assert.Error(t, err)

	_, err = networkFromJSON([]byte(`{"vocabSize":5,"embeddingDim":8,"maxSequenceLength":16,"embedding":[1,2,3]}`))
	assert.Error(t, err)

	_, err = networkFromJSON([]byte(`not json`))
	assert.Error(t, err)
}

func TestVocabularyMarshalRoundTrip(t *testing.T) {
	vocab := BuildVocabulary(trainingSamples)

	data, err := marshalVocabulary(vocab)
	require.NoError(t, err)

	restored, err := unmarshalVocabulary(data)
	require.NoError(t, err)
	assert.Equal(t, vocab, restored)
}

func TestVocabularyMarshalGappedIDs(t *testing.T) {
	vocab := Vocabulary{"alpha": 1, "gamma": 7, "beta": 3}

	data, err := marshalVocabulary(vocab)
	require.NoError(t, err)

	restored, err := unmarshalVocabulary(data)
	require.NoError(t, err)
	assert.Equal(t, vocab, restored)
}

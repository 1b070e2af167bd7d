package factory

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/norin/shapekey/internal/adapters/store"
	"github.com/norin/shapekey/internal/config"
)

func TestCreateKeyValueStoreMemory(t *testing.T) {
	cfg := config.NewFromViper(config.NewEmptyViper())
	f := NewStoreFactory(cfg, zap.NewNop())

	kv, err := f.CreateKeyValueStore()
	require.NoError(t, err)
	assert.IsType(t, &store.MemoryStore{}, kv)
}

func TestCreateKeyValueStoreUnsupported(t *testing.T) {
	v := config.NewEmptyViper()
	v.Set("store.type", "redis")
	f := NewStoreFactory(config.NewFromViper(v), zap.NewNop())

	_, err := f.CreateKeyValueStore()
	assert.ErrorContains(t, err, "unsupported store type")
}

func TestCacheDurations(t *testing.T) {
	cfg := config.NewFromViper(config.NewEmptyViper())
	f := NewStoreFactory(cfg, zap.NewNop())

	maxAge, err := f.GetCacheMaxAge()
	require.NoError(t, err)
	assert.Equal(t, time.Hour, maxAge)

	freq, err := f.GetEvictFrequency()
	require.NoError(t, err)
	assert.Equal(t, 10*time.Minute, freq)
}

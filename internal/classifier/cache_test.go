package classifier

import (
	"math/rand"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func testNetwork(t *testing.T) *network {
	t.Helper()
	return newNetwork(10, 4, 8, rand.New(rand.NewSource(1)))
}

func TestModelCachePutGet(t *testing.T) {
	cache := NewModelCache(zap.NewNop())
	net := testNetwork(t)

	cache.Put("a", net, Vocabulary{"TOK": 1}, Config{ModelTrained: true})

	entry, ok := cache.Get("a")
	require.True(t, ok)
	assert.Same(t, net, entry.net)
	assert.Equal(t, 1, cache.Len())

	_, ok = cache.Get("missing")
	assert.False(t, ok)
}

func TestModelCacheEvict(t *testing.T) {
	cache := NewModelCache(zap.NewNop())
	net := testNetwork(t)
	cache.Put("a", net, nil, Config{})

	cache.Evict("a")

	_, ok := cache.Get("a")
	assert.False(t, ok)
	assert.Nil(t, net.embedding, "eviction must release model resources")

	// Evicting an absent id is a no-op.
	cache.Evict("a")
	assert.Equal(t, 0, cache.Len())
}

func TestModelCacheEvictExpiredBoundary(t *testing.T) {
	cache := NewModelCache(zap.NewNop())

	current := time.Unix(1000, 0)
	cache.now = func() time.Time { return current }

	cache.Put("old", testNetwork(t), nil, Config{})
	current = current.Add(time.Hour)
	cache.Put("fresh", testNetwork(t), nil, Config{})

	// "old" is exactly maxAge old: not yet expired.
	assert.Equal(t, 0, cache.EvictExpired(time.Hour))
	assert.Equal(t, 2, cache.Len())

	current = current.Add(time.Millisecond)
	assert.Equal(t, 1, cache.EvictExpired(time.Hour))

	_, ok := cache.Get("old")
	assert.False(t, ok)
	_, ok = cache.Get("fresh")
	assert.True(t, ok)
}

func TestModelCacheTouchDefersEviction(t *testing.T) {
	cache := NewModelCache(zap.NewNop())

	current := time.Unix(1000, 0)
	cache.now = func() time.Time { return current }

	cache.Put("a", testNetwork(t), nil, Config{})
	current = current.Add(59 * time.Minute)
	cache.Touch("a")
	current = current.Add(30 * time.Minute)

	assert.Equal(t, 0, cache.EvictExpired(time.Hour))
	_, ok := cache.Get("a")
	assert.True(t, ok)
}

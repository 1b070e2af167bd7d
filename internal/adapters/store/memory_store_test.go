package store

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestMemoryStoreSetGet(t *testing.T) {
	s := NewMemoryStore(zap.NewNop())
	ctx := context.Background()

	_, ok, err := s.Get(ctx, "missing")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, s.Set(ctx, "k", []byte("v1")))
	value, ok, err := s.Get(ctx, "k")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, []byte("v1"), value)

	// Overwrite replaces the stored value.
	require.NoError(t, s.Set(ctx, "k", []byte("v2")))
	value, _, _ = s.Get(ctx, "k")
	assert.Equal(t, []byte("v2"), value)
}

func TestMemoryStoreRemove(t *testing.T) {
	s := NewMemoryStore(zap.NewNop())
	ctx := context.Background()

	require.NoError(t, s.Set(ctx, "k", []byte("v")))
	require.NoError(t, s.Remove(ctx, "k"))

	_, ok, err := s.Get(ctx, "k")
	require.NoError(t, err)
	assert.False(t, ok)

	// Removing an absent key is a no-op.
	assert.NoError(t, s.Remove(ctx, "k"))
}

func TestMemoryStoreCopiesValues(t *testing.T) {
	s := NewMemoryStore(zap.NewNop())
	ctx := context.Background()

	original := []byte("value")
	require.NoError(t, s.Set(ctx, "k", original))
	original[0] = 'X'

	value, _, _ := s.Get(ctx, "k")
	assert.Equal(t, []byte("value"), value)
}

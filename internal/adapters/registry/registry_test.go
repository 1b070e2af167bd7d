package registry

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/norin/shapekey/internal/core"
)

func TestRegistryLookups(t *testing.T) {
	r := New(
		[]*core.Model{{ID: "m1", Threshold: 0.7, Trained: true}},
		[]*core.Regexp{{ID: "re1", Pattern: `\d+`}},
		zap.NewNop(),
	)

	m, ok := r.ModelByID("m1")
	require.True(t, ok)
	assert.Equal(t, 0.7, m.Threshold)

	re, ok := r.RegexpByID("re1")
	require.True(t, ok)
	assert.Equal(t, `\d+`, re.Pattern)

	_, ok = r.ModelByID("missing")
	assert.False(t, ok)
	_, ok = r.RegexpByID("missing")
	assert.False(t, ok)
}

func TestRegistryPutReplaces(t *testing.T) {
	r := New(nil, nil, zap.NewNop())

	r.PutModel(&core.Model{ID: "m1", Trained: false})
	r.PutModel(&core.Model{ID: "m1", Trained: true})

	m, ok := r.ModelByID("m1")
	require.True(t, ok)
	assert.True(t, m.Trained)

	r.PutRegexp(&core.Regexp{ID: "re1", Pattern: "a"})
	r.PutRegexp(&core.Regexp{ID: "re1", Pattern: "b"})

	re, ok := r.RegexpByID("re1")
	require.True(t, ok)
	assert.Equal(t, "b", re.Pattern)
}

package langdetect

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestRankEmptyText(t *testing.T) {
	d := NewEnryDetector(zap.NewNop())

	ranked, err := d.Rank(context.Background(), "   \n  ")
	require.NoError(t, err)
	assert.Empty(t, ranked)
}

func TestRankShebangPinsLanguage(t *testing.T) {
	d := NewEnryDetector(zap.NewNop())

	ranked, err := d.Rank(context.Background(), "#!/bin/bash\necho hello\n")
	require.NoError(t, err)
	require.NotEmpty(t, ranked)
	assert.Equal(t, "sh", ranked[0].LanguageID)
	assert.Equal(t, 0.9, ranked[0].Confidence)
}

func TestRankPythonShebang(t *testing.T) {
	d := NewEnryDetector(zap.NewNop())

	ranked, err := d.Rank(context.Background(), "#!/usr/bin/env python3\nprint('hi')\n")
	require.NoError(t, err)
	require.NotEmpty(t, ranked)
	assert.Equal(t, "py", ranked[0].LanguageID)
}

func TestRankKeywordScoring(t *testing.T) {
	d := NewEnryDetector(zap.NewNop())

	source := `package main

import "fmt"

func main() {
	fmt.Println("hello")
}
`
	ranked, err := d.Rank(context.Background(), source)
	require.NoError(t, err)
	require.NotEmpty(t, ranked)
	assert.Equal(t, "go", ranked[0].LanguageID)
}

func TestRankSortedDescending(t *testing.T) {
	d := NewEnryDetector(zap.NewNop())

	ranked, err := d.Rank(context.Background(), "def handle(self):\n    return function() { var x = 1; }\n")
	require.NoError(t, err)
	for i := 1; i < len(ranked); i++ {
		assert.GreaterOrEqual(t, ranked[i-1].Confidence, ranked[i].Confidence)
	}
}

func TestRankConfidencesNormalized(t *testing.T) {
	d := NewEnryDetector(zap.NewNop())

	ranked, err := d.Rank(context.Background(), "SELECT name FROM users WHERE id = 1;")
	require.NoError(t, err)
	require.NotEmpty(t, ranked)

	total := 0.0
	for _, ls := range ranked {
		assert.Greater(t, ls.Confidence, 0.0)
		assert.LessOrEqual(t, ls.Confidence, 1.0)
		total += ls.Confidence
	}
	assert.InDelta(t, 1.0, total, 1e-9)
}

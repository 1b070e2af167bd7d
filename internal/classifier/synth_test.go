package classifier

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNegativeCount(t *testing.T) {
	assert.Equal(t, 3, NegativeCount(3))
	assert.Equal(t, 19, NegativeCount(19))
	assert.Equal(t, 20, NegativeCount(20))
	// The cap holds no matter how large the positive set grows.
	assert.Equal(t, 20, NegativeCount(500))
}

func TestSynthesizeShape(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	seqs := Synthesize(rng, 100, 10, 50)
	require.Len(t, seqs, 10)
	for _, seq := range seqs {
		assert.Len(t, seq, 50)
	}
}

func TestSynthesizeIDsInRange(t *testing.T) {
	rng := rand.New(rand.NewSource(2))
	for _, seq := range Synthesize(rng, 30, 20, 50) {
		for _, id := range seq {
			assert.GreaterOrEqual(t, id, 0)
			assert.LessOrEqual(t, id, 30)
		}
	}
}

func TestSynthesizeSparsity(t *testing.T) {
	rng := rand.New(rand.NewSource(3))

	filled, total := 0, 0
	for _, seq := range Synthesize(rng, 1000, 200, 50) {
		for _, id := range seq {
			total++
			if id > 0 {
				filled++
			}
		}
	}

	ratio := float64(filled) / float64(total)
	assert.InDelta(t, 0.3, ratio, 0.05)
}

package classifier

import (
	"math/rand"
)

// Sparsity and cap of the synthetic negatives. Downstream confidence
// thresholds were tuned against exactly this distribution, so the values
// are load-bearing.
const (
	negativeFillProbability = 0.3
	maxNegativeSamples      = 20
)

// NegativeCount returns how many synthetic negatives to fabricate for a
// positive set of the given size.
func NegativeCount(positiveCount int) int {
	if positiveCount < maxNegativeSamples {
		return positiveCount
	}
	return maxNegativeSamples
}

// Synthesize fabricates count negative id sequences of length maxLen. Each
// position independently holds a uniformly random vocabulary id with
// probability 0.3, otherwise padding. The result is sparse and
// structurally uncorrelated, which is what separates it from real feature
// sequences and lets a single-class model learn a boundary from positives
// alone.
func Synthesize(rng *rand.Rand, vocabSize, count, maxLen int) [][]int {
	sequences := make([][]int, 0, count)
	for i := 0; i < count; i++ {
		seq := make([]int, maxLen)
		for j := range seq {
			if rng.Float64() < negativeFillProbability {
				seq[j] = rng.Intn(vocabSize) + 1
			}
		}
		sequences = append(sequences, seq)
	}
	return sequences
}

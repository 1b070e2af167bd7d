package classifier

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildVocabularyAssignsDenseIDs(t *testing.T) {
	vocab := BuildVocabulary([]string{"abc", "abd"})
	require.NotEmpty(t, vocab)

	seen := make(map[int]string, len(vocab))
	for tok, id := range vocab {
		assert.GreaterOrEqual(t, id, 1)
		assert.LessOrEqual(t, id, len(vocab))
		prev, dup := seen[id]
		assert.False(t, dup, "id %d assigned to both %q and %q", id, prev, tok)
		seen[id] = tok
	}
}

func TestBuildVocabularyIsDeterministic(t *testing.T) {
	samples := []string{"INV-001", "INV-002", "INV-003"}
	first := BuildVocabulary(samples)
	for i := 0; i < 5; i++ {
		assert.Equal(t, first, BuildVocabulary(samples))
	}
}

func TestSequenceShape(t *testing.T) {
	vocab := BuildVocabulary([]string{"hello world"})

	seq := vocab.Sequence("hello world", 50)
	require.Len(t, seq, 50)

	nonZero := 0
	for _, id := range seq {
		if id > 0 {
			nonZero++
		}
	}
	assert.Greater(t, nonZero, 0)
}

func TestSequenceTruncates(t *testing.T) {
	vocab := BuildVocabulary([]string{"a longer sample with many tokens inside it"})
	seq := vocab.Sequence("a longer sample with many tokens inside it", 5)
	assert.Len(t, seq, 5)
}

func TestSequenceUnknownTokensAreZero(t *testing.T) {
	vocab := BuildVocabulary([]string{"this is a longer sample text"})
	seq := vocab.Sequence("你好你好", 10)
	for _, id := range seq {
		assert.LessOrEqual(t, id, len(vocab))
	}
	assert.Equal(t, 0, vocab.KnownTokenCount("你好你好"))
}

func TestSequenceIsDeterministic(t *testing.T) {
	vocab := BuildVocabulary([]string{"order-1", "order-2", "order-3"})
	first := vocab.Sequence("order-9", 50)
	for i := 0; i < 5; i++ {
		assert.Equal(t, first, vocab.Sequence("order-9", 50))
	}
}

func TestKnownTokenCount(t *testing.T) {
	vocab := BuildVocabulary([]string{"abc123"})
	assert.Greater(t, vocab.KnownTokenCount("abc123"), 0)
	assert.Greater(t, vocab.KnownTokenCount("abc"), 0)
}

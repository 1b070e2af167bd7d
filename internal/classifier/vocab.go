package classifier

import (
	"sort"

	"github.com/norin/shapekey/internal/features"
)

// Vocabulary maps feature tokens to dense integer ids starting at 1.
// Id 0 is reserved for tokens outside the vocabulary. A vocabulary is
// immutable once built and is part of the classifier's persisted state.
type Vocabulary map[string]int

// BuildVocabulary extracts features from every positive sample and assigns
// ids 1..N over the sorted union of tokens. Only positive data is
// consulted; negatives never contribute vocabulary.
func BuildVocabulary(positives []string) Vocabulary {
	set := make(map[string]struct{})
	for _, text := range positives {
		for _, tok := range features.Extract(text) {
			set[tok] = struct{}{}
		}
	}

	tokens := make([]string, 0, len(set))
	for tok := range set {
		tokens = append(tokens, tok)
	}
	sort.Strings(tokens)

	vocab := make(Vocabulary, len(tokens))
	for i, tok := range tokens {
		vocab[tok] = i + 1
	}
	return vocab
}

// Sequence maps a text to a fixed-length id sequence: extract tokens, look
// each up (unknown tokens become 0), then truncate or zero-pad to maxLen.
// Tokens are sorted before mapping so repeated calls produce the same
// sequence for the same text.
func (v Vocabulary) Sequence(text string, maxLen int) []int {
	tokens := features.Extract(text)
	sort.Strings(tokens)

	seq := make([]int, maxLen)
	for i, tok := range tokens {
		if i >= maxLen {
			break
		}
		seq[i] = v[tok]
	}
	return seq
}

// KnownTokenCount reports how many of a text's extracted tokens are in the
// vocabulary.
func (v Vocabulary) KnownTokenCount(text string) int {
	count := 0
	for _, tok := range features.Extract(text) {
		if _, ok := v[tok]; ok {
			count++
		}
	}
	return count
}

package features

import (
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
)

func sorted(tokens []string) []string {
	out := append([]string(nil), tokens...)
	sort.Strings(out)
	return out
}

func TestExtractIsDeterministic(t *testing.T) {
	text := "INV-2024-0042"
	first := sorted(Extract(text))
	for i := 0; i < 10; i++ {
		assert.Equal(t, first, sorted(Extract(text)))
	}
}

func TestExtractAllDigits(t *testing.T) {
	tokens := Extract("123456")
	assert.Contains(t, tokens, "ALL_DIGITS")
	assert.Contains(t, tokens, "DIGITS_6")
	assert.Contains(t, tokens, "MOSTLY_DIGITS")
	assert.Contains(t, tokens, "STARTS_WITH_DIGIT")
	assert.Contains(t, tokens, "ENDS_WITH_DIGIT")
	assert.Contains(t, tokens, "SHORT")
	assert.NotContains(t, tokens, "MOSTLY_LETTERS")
}

func TestExtractDateFormats(t *testing.T) {
	assert.Contains(t, Extract("2024-06-01"), "DATE_FORMAT")
	assert.Contains(t, Extract("20240601"), "DATE_COMPACT")
	assert.NotContains(t, Extract("2024-6-1"), "DATE_FORMAT")
}

func TestExtractShapeFlags(t *testing.T) {
	tokens := Extract("ABC-123")
	assert.Contains(t, tokens, "ALPHANUMERIC_DASH")
	assert.Contains(t, tokens, "HAS_DASH")
	assert.NotContains(t, tokens, "ALPHANUMERIC")

	tokens = Extract("ABC123")
	assert.Contains(t, tokens, "ALPHANUMERIC")
	assert.Contains(t, tokens, "LETTERS_THEN_DIGITS")
	assert.NotContains(t, tokens, "DIGITS_THEN_LETTERS")
}

func TestExtractCaseFlags(t *testing.T) {
	assert.Contains(t, Extract("HELLO"), "ALL_UPPERCASE")
	assert.Contains(t, Extract("hello"), "ALL_LOWERCASE")
	assert.Contains(t, Extract("Hello"), "TITLE_CASE")
	assert.Contains(t, Extract("helloWorld"), "MIXED_CASE")
}

func TestExtractRepetition(t *testing.T) {
	assert.Contains(t, Extract("aaab"), "HAS_REPEATED_CHARS")
	assert.NotContains(t, Extract("aabb"), "HAS_REPEATED_CHARS")

	assert.Contains(t, Extract("abab"), "REPEATING_PATTERN")
	assert.Contains(t, Extract("aaa"), "REPEATING_PATTERN")
	assert.NotContains(t, Extract("abc"), "REPEATING_PATTERN")
}

func TestExtractChinese(t *testing.T) {
	tokens := Extract("你好")
	assert.Contains(t, tokens, "ALL_CHINESE")
	assert.Contains(t, tokens, "HAS_CHINESE")

	tokens = Extract("hi你好")
	assert.NotContains(t, tokens, "ALL_CHINESE")
	assert.Contains(t, tokens, "HAS_CHINESE")
}

func TestExtractNgrams(t *testing.T) {
	tokens := Extract("Go")
	assert.Contains(t, tokens, "NGRAM_2_go")
	// N-grams longer than the text are not emitted.
	assert.NotContains(t, tokens, "NGRAM_3_go")
}

func TestExtractWords(t *testing.T) {
	tokens := Extract("order_id: 42")
	assert.Contains(t, tokens, "WORD_order")
	assert.Contains(t, tokens, "WORD_id")
	assert.Contains(t, tokens, "WORD_42")
	assert.Contains(t, tokens, "FEW_WORDS")

	assert.Contains(t, Extract("word"), "SINGLE_WORD")
	assert.Contains(t, Extract("a b c d e"), "MANY_WORDS")
}

func TestExtractWordLengthCap(t *testing.T) {
	long := "abcdefghijklmnop" // 16 runes
	tokens := Extract(long)
	assert.NotContains(t, tokens, "WORD_"+long)
	assert.Contains(t, tokens, "SINGLE_WORD")
}

func TestExtractDigitPositions(t *testing.T) {
	tokens := Extract("42abc")
	assert.Contains(t, tokens, "DIGITS_AT_START")
	assert.NotContains(t, tokens, "DIGITS_AT_END")

	tokens = Extract("abc42")
	assert.Contains(t, tokens, "DIGITS_AT_END")

	tokens = Extract("ab42cd")
	assert.Contains(t, tokens, "DIGITS_IN_MIDDLE")
}

func TestExtractDigitSegments(t *testing.T) {
	tokens := Extract("a12b345c6789d12345")
	assert.Contains(t, tokens, "TWO_DIGIT_SEGMENT")
	assert.Contains(t, tokens, "THREE_DIGIT_SEGMENT")
	assert.Contains(t, tokens, "FOUR_DIGIT_SEGMENT")
	assert.Contains(t, tokens, "LONG_DIGIT_SEGMENT")
}

func TestExtractEmptyText(t *testing.T) {
	tokens := Extract("")
	// Length bucket and the zero-word bucket still apply.
	assert.Contains(t, tokens, "VERY_SHORT")
	assert.Contains(t, tokens, "FEW_WORDS")
}

func TestExtractDeduplicates(t *testing.T) {
	tokens := Extract("aaaa")
	seen := make(map[string]int)
	for _, tok := range tokens {
		seen[tok]++
	}
	for tok, count := range seen {
		assert.Equal(t, 1, count, "token %q emitted more than once", tok)
	}
}

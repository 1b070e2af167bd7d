package langdetect

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

var allowedCodes = []string{"cmn", "eng", "jpn", "kor", "rus", "fra", "deu", "spa", "por", "arb"}

func TestDetectEnglish(t *testing.T) {
	d := NewWhatlangDetector(zap.NewNop())

	code, ok := d.Detect("The quick brown fox jumps over the lazy dog", 2, allowedCodes)
	require.True(t, ok)
	assert.Equal(t, "eng", code)
}

func TestDetectChinese(t *testing.T) {
	d := NewWhatlangDetector(zap.NewNop())

	code, ok := d.Detect("今天天气真不错我们出去走走吧", 2, allowedCodes)
	require.True(t, ok)
	assert.Equal(t, "cmn", code)
}

func TestDetectRussian(t *testing.T) {
	d := NewWhatlangDetector(zap.NewNop())

	code, ok := d.Detect("Быстрая коричневая лиса прыгает через ленивую собаку", 2, allowedCodes)
	require.True(t, ok)
	assert.Equal(t, "rus", code)
}

func TestDetectTooShort(t *testing.T) {
	d := NewWhatlangDetector(zap.NewNop())

	_, ok := d.Detect("a", 2, allowedCodes)
	assert.False(t, ok)

	// Whitespace does not count toward the minimum length.
	_, ok = d.Detect("  a  ", 2, allowedCodes)
	assert.False(t, ok)
}

func TestDetectRespectsWhitelist(t *testing.T) {
	d := NewWhatlangDetector(zap.NewNop())

	// With only Russian allowed, an unambiguous English sentence cannot
	// come back as anything outside the whitelist.
	code, ok := d.Detect("The quick brown fox jumps over the lazy dog", 2, []string{"rus"})
	if ok {
		assert.Equal(t, "rus", code)
	}
}

package utils

import (
	"strings"
	"unicode/utf8"

	"go.uber.org/zap"
	"golang.org/x/text/unicode/norm"
)

// TextProcessor provides utilities for shaping text before classification
// and training.
type TextProcessor struct {
	logger *zap.Logger
}

// NewTextProcessor creates a new TextProcessor
func NewTextProcessor(logger *zap.Logger) *TextProcessor {
	return &TextProcessor{
		logger: logger,
	}
}

// SanitizeUTF8 ensures the string contains only valid UTF-8 characters
func (tp *TextProcessor) SanitizeUTF8(text string) string {
	if utf8.ValidString(text) {
		return text
	}

	// Drop invalid UTF-8 sequences
	result := make([]rune, 0, len(text))
	for i, r := range text {
		if r == utf8.RuneError {
			_, size := utf8.DecodeRuneInString(text[i:])
			if size == 1 {
				continue
			}
		}
		result = append(result, r)
	}

	tp.logger.Debug("Text sanitized",
		zap.Int("original_size", len(text)),
		zap.Int("sanitized_size", len(string(result))))

	return string(result)
}

// Normalize sanitizes a text and brings it to NFC form so visually
// identical samples tokenize identically.
func (tp *TextProcessor) Normalize(text string) string {
	return norm.NFC.String(tp.SanitizeUTF8(text))
}

// PrepareSamples normalizes a raw sample list for training: every entry is
// sanitized and trimmed, blank entries are dropped, and duplicates are
// removed while preserving first-seen order.
func (tp *TextProcessor) PrepareSamples(samples []string) []string {
	seen := make(map[string]struct{}, len(samples))
	prepared := make([]string, 0, len(samples))

	for _, sample := range samples {
		cleaned := strings.TrimSpace(tp.Normalize(sample))
		if cleaned == "" {
			continue
		}
		if _, dup := seen[cleaned]; dup {
			continue
		}
		seen[cleaned] = struct{}{}
		prepared = append(prepared, cleaned)
	}

	tp.logger.Debug("Prepared training samples",
		zap.Int("raw", len(samples)),
		zap.Int("valid", len(prepared)))

	return prepared
}

// Package langdetect provides the language-identification adapters the
// matcher consumes: a trigram-based natural-language detector and a
// programming-language detector producing ranked confidences.
package langdetect

import (
	"strings"

	"github.com/abadojack/whatlanggo"
	"go.uber.org/zap"
)

// WhatlangDetector identifies natural languages with whatlanggo's trigram
// model, restricted to a caller-supplied allowed set.
type WhatlangDetector struct {
	logger *zap.Logger
}

// NewWhatlangDetector creates a new natural-language detector.
func NewWhatlangDetector(logger *zap.Logger) *WhatlangDetector {
	return &WhatlangDetector{logger: logger}
}

// Detect returns the best ISO 639-3 code for the text among the allowed
// codes. ok is false for texts shorter than minLength or when no allowed
// language is identified.
func (d *WhatlangDetector) Detect(text string, minLength int, allowed []string) (string, bool) {
	trimmed := strings.TrimSpace(text)
	if len([]rune(trimmed)) < minLength {
		return "", false
	}

	whitelist := make(map[whatlanggo.Lang]bool, len(allowed))
	for _, code := range allowed {
		lang := whatlanggo.CodeToLang(code)
		if lang < 0 {
			d.logger.Warn("Unknown language code in allowed set", zap.String("code", code))
			continue
		}
		whitelist[lang] = true
	}

	info := whatlanggo.DetectWithOptions(trimmed, whatlanggo.Options{Whitelist: whitelist})
	code := whatlanggo.LangToString(info.Lang)
	if code == "" {
		return "", false
	}

	d.logger.Debug("Natural language detected",
		zap.String("code", code),
		zap.Float64("confidence", info.Confidence))
	return code, true
}

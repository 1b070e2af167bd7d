package langdetect

import (
	"context"
	"regexp"
	"sort"
	"strings"

	"github.com/go-enry/go-enry/v2"
	"go.uber.org/zap"

	"github.com/norin/shapekey/internal/core"
)

// Confidence pinned on a high-precision strategy hit (shebang or
// modeline); the keyword ranking fills the remaining mass.
const strategyConfidence = 0.9

var identRE = regexp.MustCompile(`[A-Za-z_][A-Za-z0-9_]*`)

// EnryDetector ranks programming languages for a text. Shebangs and
// modelines are resolved through enry's linguist strategies; everything
// else is scored by weighted keyword log-likelihood over the supported
// language set, normalized into [0,1] confidences.
type EnryDetector struct {
	logger *zap.Logger
}

// NewEnryDetector creates a new programming-language detector.
func NewEnryDetector(logger *zap.Logger) *EnryDetector {
	return &EnryDetector{logger: logger}
}

// Rank returns the supported languages scored for the text, sorted by
// descending confidence. Languages with no evidence are omitted.
func (d *EnryDetector) Rank(ctx context.Context, text string) ([]core.LanguageScore, error) {
	if strings.TrimSpace(text) == "" {
		return nil, nil
	}
	content := []byte(text)

	pinned := ""
	if langs := enry.GetLanguagesByShebang("", content, nil); len(langs) > 0 {
		pinned = linguistToID[langs[0]]
	}
	if pinned == "" {
		if langs := enry.GetLanguagesByModeline("", content, nil); len(langs) > 0 {
			pinned = linguistToID[langs[0]]
		}
	}

	ranked := d.scoreKeywords(text)

	if pinned != "" {
		// The strategy hit takes the top slot; keyword evidence for the
		// other languages is squeezed into the remaining mass.
		result := []core.LanguageScore{{LanguageID: pinned, Confidence: strategyConfidence}}
		for _, ls := range ranked {
			if ls.LanguageID == pinned {
				continue
			}
			result = append(result, core.LanguageScore{
				LanguageID: ls.LanguageID,
				Confidence: ls.Confidence * (1 - strategyConfidence),
			})
		}
		return result, nil
	}

	return ranked, nil
}

// scoreKeywords accumulates weighted keyword hits per language and
// normalizes the totals into a ranked confidence distribution.
func (d *EnryDetector) scoreKeywords(text string) []core.LanguageScore {
	wordCounts := make(map[string]int)
	for _, w := range identRE.FindAllString(text, -1) {
		wordCounts[w]++
	}

	scores := make(map[string]float64)
	total := 0.0
	for langID, keywords := range languageKeywords {
		score := 0.0
		for _, kw := range keywords {
			var hits int
			if isIdentifier(kw.Token) {
				hits = wordCounts[kw.Token]
			} else {
				hits = strings.Count(text, kw.Token)
			}
			if hits > 0 {
				score += kw.Weight * float64(hits)
			}
		}
		if score > 0 {
			scores[langID] = score
			total += score
		}
	}

	if total == 0 {
		return nil
	}

	ranked := make([]core.LanguageScore, 0, len(scores))
	for langID, score := range scores {
		ranked = append(ranked, core.LanguageScore{
			LanguageID: langID,
			Confidence: score / total,
		})
	}
	sort.Slice(ranked, func(i, j int) bool {
		if ranked[i].Confidence != ranked[j].Confidence {
			return ranked[i].Confidence > ranked[j].Confidence
		}
		return ranked[i].LanguageID < ranked[j].LanguageID
	})

	if len(ranked) > 0 {
		d.logger.Debug("Programming language ranked",
			zap.String("top", ranked[0].LanguageID),
			zap.Float64("confidence", ranked[0].Confidence),
			zap.Int("candidates", len(ranked)))
	}
	return ranked
}

func isIdentifier(token string) bool {
	return identRE.FindString(token) == token
}

package matcher

import (
	"context"
	"regexp"
	"strings"

	"go.uber.org/zap"

	"github.com/norin/shapekey/internal/core"
)

// Decision-policy constants for programming-language matches. The absolute
// bar rises with the target's rank because confidence calibration degrades
// down the ranking; the relative rule catches a clear local winner whose
// absolute score is depressed.
const (
	minNaturalLength     = 2
	minProgramConfidence = 0.2
	initialThreshold     = 0.5
	rankThresholdStep    = 0.1
	relativeThreshold    = 0.15
	maxRelativeRank      = 3
)

// Predictor serves user-model confidence scores, loading models on demand.
// ok is false when no usable trained model exists for the id.
type Predictor interface {
	Predict(ctx context.Context, id, text string) (confidence float64, ok bool)
}

// Matcher evaluates rules against text. It owns no rule or model data; the
// registries and detectors are injected collaborators.
type Matcher struct {
	natural   core.NaturalDetector
	program   core.ProgramDetector
	models    core.ModelRegistry
	regexps   core.RegexpRegistry
	predictor Predictor
	logger    *zap.Logger
}

// New creates a matcher over the given detectors and registries.
func New(
	natural core.NaturalDetector,
	program core.ProgramDetector,
	models core.ModelRegistry,
	regexps core.RegexpRegistry,
	predictor Predictor,
	logger *zap.Logger,
) *Matcher {
	return &Matcher{
		natural:   natural,
		program:   program,
		models:    models,
		regexps:   regexps,
		predictor: predictor,
		logger:    logger,
	}
}

// Match walks the rules in order and returns the first whose case holds
// for the text, with its CaseLabel set to the matched detector's label.
// ok is false when no rule matches; that is a normal outcome, not an
// error. Every detector failure inside the cascade is logged and treated
// as "this rule does not match".
func (m *Matcher) Match(ctx context.Context, text string, rules []*core.Rule) (matched *core.Rule, ok bool) {
	// The programming-language ranking is computed at most once per Match
	// call and reused by every program-case rule in this invocation.
	var programRanked []core.LanguageScore
	programDetected := false

	for _, rule := range rules {
		c := core.ParseCase(rule.Case, IsBuiltinCase, IsNaturalCase, IsProgramCase)

		switch c.Kind {
		case core.CaseEmpty:
			m.logger.Debug("Rule matches unconditionally", zap.String("rule_id", rule.ID))
			return rule, true

		case core.CaseBuiltin:
			builtin := builtinCases[c.Target]
			if text != "" && builtin.Pattern.MatchString(text) {
				m.logger.Debug("Builtin pattern matched",
					zap.String("rule_id", rule.ID), zap.String("case", builtin.Value))
				rule.CaseLabel = builtin.Label
				return rule, true
			}

		case core.CaseNatural:
			if code, detected := m.natural.Detect(text, minNaturalLength, NaturalLanguages()); detected && code == c.Target {
				m.logger.Debug("Natural language matched",
					zap.String("rule_id", rule.ID), zap.String("language", code))
				rule.CaseLabel = naturalCases[c.Target]
				return rule, true
			}

		case core.CaseProgram:
			if !programDetected {
				ranked, err := m.program.Rank(ctx, text)
				if err != nil {
					m.logger.Error("Programming language detection failed", zap.Error(err))
				} else {
					programRanked = ranked
					programDetected = true
				}
			}
			if programDetected && matchProgramCase(c.Target, programRanked) {
				m.logger.Debug("Programming language matched",
					zap.String("rule_id", rule.ID), zap.String("language", c.Target))
				rule.CaseLabel = ProgramLabel(c.Target)
				return rule, true
			}

		case core.CaseRegexp:
			userRegexp, found := m.regexps.RegexpByID(c.Target)
			if !found {
				continue
			}
			re, err := compileUserRegexp(userRegexp)
			if err != nil {
				m.logger.Error("Failed to compile user regexp",
					zap.String("regexp_id", userRegexp.ID), zap.Error(err))
				continue
			}
			if re.MatchString(text) {
				m.logger.Debug("User regexp matched",
					zap.String("rule_id", rule.ID), zap.String("regexp_id", userRegexp.ID))
				rule.CaseLabel = userRegexp.ID
				return rule, true
			}

		case core.CaseModel:
			model, found := m.models.ModelByID(c.Target)
			if !found || !model.Trained {
				continue
			}
			confidence, usable := m.predictor.Predict(ctx, model.ID, text)
			if usable && confidence >= model.Threshold {
				m.logger.Debug("User model matched",
					zap.String("rule_id", rule.ID),
					zap.String("model_id", model.ID),
					zap.Float64("confidence", confidence))
				rule.CaseLabel = model.ID
				return rule, true
			}

		case core.CaseUnknown:
			m.logger.Debug("Unknown rule case, skipping",
				zap.String("rule_id", rule.ID), zap.String("case", rule.Case))
		}
	}

	return nil, false
}

// matchProgramCase applies the decision policy to a ranked detection
// result for one target language.
func matchProgramCase(targetID string, results []core.LanguageScore) bool {
	targetIndex := -1
	for i, result := range results {
		if result.LanguageID == targetID {
			targetIndex = i
			break
		}
	}
	if targetIndex == -1 {
		return false
	}
	targetConfidence := results[targetIndex].Confidence

	// Absolute rule: the bar rises by one step per rank.
	threshold := initialThreshold + rankThresholdStep*float64(targetIndex)
	if targetConfidence > threshold {
		return true
	}

	// Relative rule: only near the top and above the confidence floor.
	if targetConfidence <= minProgramConfidence || targetIndex >= maxRelativeRank {
		return false
	}
	nextConfidence := 0.0
	if targetIndex+1 < len(results) {
		nextConfidence = results[targetIndex+1].Confidence
	}
	return targetConfidence-nextConfidence > relativeThreshold
}

// compileUserRegexp builds a Go regexp from a user pattern with JS-style
// flags; i, m and s translate directly, the rest have no Go equivalent and
// are ignored.
func compileUserRegexp(r *core.Regexp) (*regexp.Regexp, error) {
	var flags strings.Builder
	for _, f := range r.Flags {
		switch f {
		case 'i', 'm', 's':
			flags.WriteRune(f)
		}
	}
	pattern := r.Pattern
	if flags.Len() > 0 {
		pattern = "(?" + flags.String() + ")" + pattern
	}
	return regexp.Compile(pattern)
}

package core

import (
	"errors"
	"strings"
)

// Case prefixes for user-defined rule cases. A rule case starting with one
// of these refers to a registry object by the id that follows the prefix.
const (
	ModelMark  = "model-"
	RegexpMark = "regexp-"
)

var (
	// ErrInsufficientSamples is returned when training input cannot be
	// normalized to at least three distinct non-blank samples.
	ErrInsufficientSamples = errors.New("training requires at least 3 distinct non-blank samples")
)

// Rule binds a hotkey to a text case and an action. Rules are evaluated as
// an ordered list; the first rule whose case holds for the text wins.
type Rule struct {
	ID  string
	Key string
	// Case discriminates the text type: "" matches unconditionally, a
	// builtin/natural/program id selects a detector, and the model-/regexp-
	// prefixes select user-defined registry objects.
	Case   string
	Action string
	// CaseLabel and ActionLabel are display fields populated on a winning
	// rule; they carry no weight in the match decision.
	CaseLabel   string
	ActionLabel string
}

// Model is a user-trained classifier definition owned by the settings layer.
type Model struct {
	ID        string
	Sample    string
	Threshold float64
	Trained   bool
}

// Regexp is a user-defined pattern owned by the settings layer.
type Regexp struct {
	ID      string
	Pattern string
	Flags   string
}

// LanguageScore is one entry of a ranked programming-language detection
// result, confidence in [0,1].
type LanguageScore struct {
	LanguageID string
	Confidence float64
}

// TrainingHistory records per-epoch metrics from a classifier fit.
type TrainingHistory struct {
	Loss     []float64
	Accuracy []float64
	ValLoss  []float64
}

// Epochs returns the number of completed epochs.
func (h *TrainingHistory) Epochs() int {
	return len(h.Loss)
}

// ModelInfo describes a persisted classifier's footprint.
type ModelInfo struct {
	SizeKB     float64
	Vocabulary int
	Trained    bool
}

// CaseKind enumerates the detector categories a rule case can resolve to.
type CaseKind int

const (
	CaseUnknown CaseKind = iota
	CaseEmpty
	CaseBuiltin
	CaseNatural
	CaseProgram
	CaseRegexp
	CaseModel
)

// Case is a rule's case string resolved into a tagged variant. Target is
// the builtin id, language code, or registry id depending on Kind.
type Case struct {
	Kind   CaseKind
	Target string
}

// ParseCase resolves a raw case string into a tagged variant. Membership in
// the builtin, natural and program tables is decided by the caller-supplied
// lookup sets so the core stays free of table ownership.
func ParseCase(raw string, builtin, natural, program func(string) bool) Case {
	switch {
	case raw == "":
		return Case{Kind: CaseEmpty}
	case strings.HasPrefix(raw, RegexpMark):
		return Case{Kind: CaseRegexp, Target: strings.TrimPrefix(raw, RegexpMark)}
	case strings.HasPrefix(raw, ModelMark):
		return Case{Kind: CaseModel, Target: strings.TrimPrefix(raw, ModelMark)}
	case builtin(raw):
		return Case{Kind: CaseBuiltin, Target: raw}
	case natural(raw):
		return Case{Kind: CaseNatural, Target: raw}
	case program(raw):
		return Case{Kind: CaseProgram, Target: raw}
	default:
		return Case{Kind: CaseUnknown, Target: raw}
	}
}

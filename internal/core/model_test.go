package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseCase(t *testing.T) {
	builtin := func(s string) bool { return s == "url" }
	natural := func(s string) bool { return s == "eng" }
	program := func(s string) bool { return s == "py" }

	tests := []struct {
		raw  string
		want Case
	}{
		{"", Case{Kind: CaseEmpty}},
		{"url", Case{Kind: CaseBuiltin, Target: "url"}},
		{"eng", Case{Kind: CaseNatural, Target: "eng"}},
		{"py", Case{Kind: CaseProgram, Target: "py"}},
		{"regexp-abc", Case{Kind: CaseRegexp, Target: "abc"}},
		{"model-xyz", Case{Kind: CaseModel, Target: "xyz"}},
		{"bogus", Case{Kind: CaseUnknown, Target: "bogus"}},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, ParseCase(tt.raw, builtin, natural, program), "raw %q", tt.raw)
	}
}

func TestParseCasePrefixBeatsTables(t *testing.T) {
	// A prefixed case resolves to the registry kind even when the full
	// string would also pass a table lookup.
	anything := func(string) bool { return true }
	got := ParseCase("model-url", anything, anything, anything)
	assert.Equal(t, Case{Kind: CaseModel, Target: "url"}, got)
}

func TestTrainingHistoryEpochs(t *testing.T) {
	h := &TrainingHistory{Loss: []float64{1, 0.5, 0.25}}
	assert.Equal(t, 3, h.Epochs())
	assert.Equal(t, 0, (&TrainingHistory{}).Epochs())
}

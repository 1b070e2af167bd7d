package core

import (
	"context"
)

// KeyValueStore is the persistent blob store classifier artifacts live in.
// Values are opaque byte blobs namespaced by the caller's key scheme.
type KeyValueStore interface {
	// Get retrieves the value for a key, ok=false when the key is absent.
	Get(ctx context.Context, key string) (value []byte, ok bool, err error)

	// Set stores a value under a key, replacing any previous value.
	Set(ctx context.Context, key string, value []byte) error

	// Remove deletes a key. Removing an absent key is not an error.
	Remove(ctx context.Context, key string) error
}

// NaturalDetector identifies the natural language of a text, restricted to
// an allowed set of ISO 639-3 codes. It returns ok=false when the text is
// shorter than minLength or no allowed language is identified.
type NaturalDetector interface {
	Detect(text string, minLength int, allowed []string) (code string, ok bool)
}

// ProgramDetector ranks candidate programming languages for a text, sorted
// by descending confidence.
type ProgramDetector interface {
	Rank(ctx context.Context, text string) ([]LanguageScore, error)
}

// ModelRegistry looks up user-defined classifier models by id. The backing
// list is owned by the surrounding application's settings layer.
type ModelRegistry interface {
	ModelByID(id string) (*Model, bool)
}

// RegexpRegistry looks up user-defined patterns by id.
type RegexpRegistry interface {
	RegexpByID(id string) (*Regexp, bool)
}

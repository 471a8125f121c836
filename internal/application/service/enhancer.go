package service

import "context"

// EnhanceKind selects the rewrite prompt for a free-text field.
type EnhanceKind string

const (
	KindBio     EnhanceKind = "bio"
	KindJob     EnhanceKind = "job"
	KindProject EnhanceKind = "project"
)

// Enhancer is the text-enhancement capability. Exactly one implementation is
// selected at startup. Implementations may fail; callers are expected to
// degrade to the original input or an empty skill list.
type Enhancer interface {
	EnhanceText(ctx context.Context, text string, kind EnhanceKind) (string, error)
	SuggestSkills(ctx context.Context, bio string) ([]string, error)
}

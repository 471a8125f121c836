// Package enhance wraps the text-enhancement capability with the degrade
// rules the editor relies on: a failing or empty rewrite falls back to the
// original text, a failing skill extraction falls back to an empty list.
// Nothing here surfaces a hard error.
package enhance

import (
	"context"
	"unicode/utf8"

	"go.uber.org/zap"

	"github.com/khangtran/folio/internal/application/service"
	"github.com/khangtran/folio/pkg/logger"
)

// Inputs shorter than this are returned unchanged without calling the model.
const minEnhanceLength = 5

type EnhanceUseCase struct {
	enhancer service.Enhancer
	logger   logger.Logger
}

func NewEnhanceUseCase(enhancer service.Enhancer, log logger.Logger) *EnhanceUseCase {
	return &EnhanceUseCase{enhancer: enhancer, logger: log}
}

func (uc *EnhanceUseCase) EnhanceText(ctx context.Context, text string, kind service.EnhanceKind) string {
	if utf8.RuneCountInString(text) < minEnhanceLength {
		return text
	}

	switch kind {
	case service.KindBio, service.KindJob, service.KindProject:
	default:
		uc.logger.Warn("Unknown enhance kind, returning input unchanged", zap.String("kind", string(kind)))
		return text
	}

	enhanced, err := uc.enhancer.EnhanceText(ctx, text, kind)
	if err != nil {
		uc.logger.Warn("Text enhancement failed, falling back to original", zap.Error(err))
		return text
	}
	if enhanced == "" {
		return text
	}
	return enhanced
}

func (uc *EnhanceUseCase) SuggestSkills(ctx context.Context, bio string) []string {
	skills, err := uc.enhancer.SuggestSkills(ctx, bio)
	if err != nil {
		uc.logger.Warn("Skill extraction failed, falling back to empty list", zap.Error(err))
		return []string{}
	}
	if skills == nil {
		skills = []string{}
	}
	return skills
}

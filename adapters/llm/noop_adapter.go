package llm

import (
	"context"

	"github.com/khangtran/folio/internal/application/service"
	"github.com/khangtran/folio/pkg/logger"
)

type noopEnhancer struct{}

// NewNoopEnhancer returns the identity enhancer, selected at startup when no
// Gemini API key is configured: text comes back unchanged, skill extraction
// yields nothing.
func NewNoopEnhancer(log logger.Logger) service.Enhancer {
	log.Warn("No Gemini API key configured, text enhancement is disabled")
	return noopEnhancer{}
}

func (noopEnhancer) EnhanceText(_ context.Context, text string, _ service.EnhanceKind) (string, error) {
	return text, nil
}

func (noopEnhancer) SuggestSkills(_ context.Context, _ string) ([]string, error) {
	return []string{}, nil
}

package llm

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"google.golang.org/genai"

	"github.com/khangtran/folio/internal/application/service"
	"github.com/khangtran/folio/internal/config"
	"github.com/khangtran/folio/pkg/logger"
)

type geminiEnhancer struct {
	client *genai.Client
	model  string
	log    logger.Logger
}

// NewGeminiEnhancer builds the Gemini-backed text enhancer. Requires a
// configured API key; callers should fall back to the no-op enhancer when
// none is set.
func NewGeminiEnhancer(ctx context.Context, cfg config.Config, log logger.Logger) (service.Enhancer, error) {
	if cfg.Gemini.APIKey == "" {
		return nil, fmt.Errorf("gemini API key is not configured")
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  cfg.Gemini.APIKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	log.Info("Gemini enhancer initialized")
	return &geminiEnhancer{client: client, model: cfg.Gemini.Model, log: log}, nil
}

func (g *geminiEnhancer) EnhanceText(ctx context.Context, text string, kind service.EnhanceKind) (string, error) {
	var prompt string
	switch kind {
	case service.KindBio:
		prompt = fmt.Sprintf(`Rewrite the following professional bio to be more engaging, concise, and professional. Keep it under 80 words. Text: %q`, text)
	case service.KindJob:
		prompt = fmt.Sprintf(`Rewrite the following job description to highlight achievements and use action verbs. Keep it professional and bulleted if possible (use •). Text: %q`, text)
	case service.KindProject:
		prompt = fmt.Sprintf(`Rewrite this project description to be punchy and highlight the problem solved and tech used. Text: %q`, text)
	default:
		return "", fmt.Errorf("unknown enhance kind: %s", kind)
	}

	resp, err := g.client.Models.GenerateContent(ctx, g.model, []*genai.Content{
		{Parts: []*genai.Part{{Text: prompt}}},
	}, nil)
	if err != nil {
		return "", fmt.Errorf("gemini generation failed: %w", err)
	}

	out := extractText(resp)
	if out == "" {
		return "", fmt.Errorf("empty response from Gemini")
	}
	return out, nil
}

func (g *geminiEnhancer) SuggestSkills(ctx context.Context, bio string) ([]string, error) {
	prompt := fmt.Sprintf(`Extract a list of professional hard and soft skills from this bio. Return only the skills as a JSON array of strings. If no clear skills are found, return an empty array. Bio: %q`, bio)

	resp, err := g.client.Models.GenerateContent(ctx, g.model, []*genai.Content{
		{Parts: []*genai.Part{{Text: prompt}}},
	}, &genai.GenerateContentConfig{
		ResponseMIMEType: "application/json",
	})
	if err != nil {
		return nil, fmt.Errorf("gemini skill extraction failed: %w", err)
	}

	text := extractText(resp)
	if text == "" {
		return []string{}, nil
	}

	var skills []string
	if err := json.Unmarshal([]byte(text), &skills); err != nil {
		return nil, fmt.Errorf("gemini returned non-list skills payload: %w", err)
	}
	return skills, nil
}

func extractText(resp *genai.GenerateContentResponse) string {
	if resp == nil {
		return ""
	}
	var sb strings.Builder
	for _, cand := range resp.Candidates {
		if cand == nil || cand.Content == nil {
			continue
		}
		for _, part := range cand.Content.Parts {
			if part != nil {
				sb.WriteString(part.Text)
			}
		}
	}
	return strings.TrimSpace(sb.String())
}

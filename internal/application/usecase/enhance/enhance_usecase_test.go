package enhance

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/khangtran/folio/internal/application/service"
	"github.com/khangtran/folio/pkg/logger"
)

type stubEnhancer struct {
	text      string
	textErr   error
	skills    []string
	skillsErr error
	calls     int
}

func (s *stubEnhancer) EnhanceText(_ context.Context, _ string, _ service.EnhanceKind) (string, error) {
	s.calls++
	return s.text, s.textErr
}

func (s *stubEnhancer) SuggestSkills(_ context.Context, _ string) ([]string, error) {
	s.calls++
	return s.skills, s.skillsErr
}

func TestEnhanceText_ReplacesWithModelOutput(t *testing.T) {
	stub := &stubEnhancer{text: "A much better bio."}
	uc := NewEnhanceUseCase(stub, logger.NewNop())

	got := uc.EnhanceText(context.Background(), "my original bio text", service.KindBio)
	assert.Equal(t, "A much better bio.", got)
}

func TestEnhanceText_FailureFallsBackToOriginal(t *testing.T) {
	stub := &stubEnhancer{textErr: errors.New("model unavailable")}
	uc := NewEnhanceUseCase(stub, logger.NewNop())

	got := uc.EnhanceText(context.Background(), "my original bio text", service.KindJob)
	assert.Equal(t, "my original bio text", got)
}

func TestEnhanceText_EmptyModelOutputFallsBack(t *testing.T) {
	stub := &stubEnhancer{text: ""}
	uc := NewEnhanceUseCase(stub, logger.NewNop())

	got := uc.EnhanceText(context.Background(), "describe this project", service.KindProject)
	assert.Equal(t, "describe this project", got)
}

func TestEnhanceText_ShortInputSkipsModel(t *testing.T) {
	stub := &stubEnhancer{text: "should never be used"}
	uc := NewEnhanceUseCase(stub, logger.NewNop())

	got := uc.EnhanceText(context.Background(), "abc", service.KindBio)
	assert.Equal(t, "abc", got)
	assert.Zero(t, stub.calls)
}

func TestEnhanceText_UnknownKindReturnsInput(t *testing.T) {
	stub := &stubEnhancer{text: "should never be used"}
	uc := NewEnhanceUseCase(stub, logger.NewNop())

	got := uc.EnhanceText(context.Background(), "a perfectly long text", service.EnhanceKind("poem"))
	assert.Equal(t, "a perfectly long text", got)
	assert.Zero(t, stub.calls)
}

func TestSuggestSkills_ReturnsModelList(t *testing.T) {
	stub := &stubEnhancer{skills: []string{"Go", "PostgreSQL"}}
	uc := NewEnhanceUseCase(stub, logger.NewNop())

	got := uc.SuggestSkills(context.Background(), "I write Go services on PostgreSQL")
	assert.Equal(t, []string{"Go", "PostgreSQL"}, got)
}

func TestSuggestSkills_FailureFallsBackToEmpty(t *testing.T) {
	stub := &stubEnhancer{skillsErr: errors.New("quota exceeded")}
	uc := NewEnhanceUseCase(stub, logger.NewNop())

	got := uc.SuggestSkills(context.Background(), "any bio")
	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func TestSuggestSkills_NilListNormalizedToEmpty(t *testing.T) {
	stub := &stubEnhancer{skills: nil}
	uc := NewEnhanceUseCase(stub, logger.NewNop())

	got := uc.SuggestSkills(context.Background(), "any bio")
	assert.NotNil(t, got)
	assert.Empty(t, got)
}

package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/khangtran/folio/internal/application/service"
	enhanceUC "github.com/khangtran/folio/internal/application/usecase/enhance"
	"github.com/khangtran/folio/pkg/apperror"
	"github.com/khangtran/folio/pkg/logger"
)

type EnhanceHandler struct {
	enhanceUseCase *enhanceUC.EnhanceUseCase
	logger         logger.Logger
}

func NewEnhanceHandler(uc *enhanceUC.EnhanceUseCase, log logger.Logger) *EnhanceHandler {
	return &EnhanceHandler{enhanceUseCase: uc, logger: log}
}

// EnhanceText rewrites a free-text field. Enhancement failures are not
// errors: the response carries the original text instead.
func (h *EnhanceHandler) EnhanceText(c *gin.Context) {
	var req EnhanceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.NewInvalidInput("invalid enhance payload", err))
		return
	}

	text := h.enhanceUseCase.EnhanceText(c.Request.Context(), req.Text, service.EnhanceKind(req.Kind))
	c.JSON(http.StatusOK, EnhanceResponse{Text: text})
}

func (h *EnhanceHandler) SuggestSkills(c *gin.Context) {
	var req SuggestSkillsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.NewInvalidInput("invalid skills payload", err))
		return
	}

	skills := h.enhanceUseCase.SuggestSkills(c.Request.Context(), req.Bio)
	c.JSON(http.StatusOK, SuggestSkillsResponse{Skills: skills})
}

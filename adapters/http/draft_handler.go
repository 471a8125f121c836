package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	draftUC "github.com/khangtran/folio/internal/application/usecase/draft"
	"github.com/khangtran/folio/pkg/apperror"
	"github.com/khangtran/folio/pkg/logger"
)

type DraftHandler struct {
	draftUseCase *draftUC.DraftUseCase
	logger       logger.Logger
}

func NewDraftHandler(uc *draftUC.DraftUseCase, log logger.Logger) *DraftHandler {
	return &DraftHandler{draftUseCase: uc, logger: log}
}

func (h *DraftHandler) GetDraft(c *gin.Context) {
	ownerID, ok := GetOwnerIDFromGinContext(c)
	if !ok {
		c.Error(apperror.NewPermissionDenied("ownerID not found in context"))
		return
	}

	p, err := h.draftUseCase.Get(c.Request.Context(), ownerID)
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, p)
}

func (h *DraftHandler) SetField(c *gin.Context) {
	ownerID, ok := GetOwnerIDFromGinContext(c)
	if !ok {
		c.Error(apperror.NewPermissionDenied("ownerID not found in context"))
		return
	}
	var req SetFieldRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.NewInvalidInput("invalid field payload", err))
		return
	}

	p, err := h.draftUseCase.SetField(c.Request.Context(), ownerID, req.Name, req.Value)
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, p)
}

func (h *DraftHandler) SetSocial(c *gin.Context) {
	ownerID, ok := GetOwnerIDFromGinContext(c)
	if !ok {
		c.Error(apperror.NewPermissionDenied("ownerID not found in context"))
		return
	}
	var req SetSocialRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.NewInvalidInput("invalid social payload", err))
		return
	}

	p, err := h.draftUseCase.SetSocial(c.Request.Context(), ownerID, req.Platform, req.Value)
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, p)
}

func (h *DraftHandler) AddListItem(c *gin.Context) {
	ownerID, ok := GetOwnerIDFromGinContext(c)
	if !ok {
		c.Error(apperror.NewPermissionDenied("ownerID not found in context"))
		return
	}

	output, err := h.draftUseCase.AddListItem(c.Request.Context(), ownerID, c.Param("list"))
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusCreated, AddListItemResponse{ID: output.ID, Profile: output.Profile})
}

func (h *DraftHandler) UpdateListItem(c *gin.Context) {
	ownerID, ok := GetOwnerIDFromGinContext(c)
	if !ok {
		c.Error(apperror.NewPermissionDenied("ownerID not found in context"))
		return
	}
	var req UpdateListItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.NewInvalidInput("invalid list item payload", err))
		return
	}

	output, err := h.draftUseCase.UpdateListItem(
		c.Request.Context(), ownerID,
		c.Param("list"), c.Param("id"),
		req.Field, req.Value,
	)
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, UpdateListItemResponse{Updated: output.Updated, Profile: output.Profile})
}

func (h *DraftHandler) RemoveListItem(c *gin.Context) {
	ownerID, ok := GetOwnerIDFromGinContext(c)
	if !ok {
		c.Error(apperror.NewPermissionDenied("ownerID not found in context"))
		return
	}

	if _, err := h.draftUseCase.RemoveListItem(c.Request.Context(), ownerID, c.Param("list"), c.Param("id")); err != nil {
		c.Error(err)
		return
	}
	c.Status(http.StatusNoContent)
}

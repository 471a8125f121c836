package http

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	publishUC "github.com/khangtran/folio/internal/application/usecase/publish"
	"github.com/khangtran/folio/pkg/apperror"
	"github.com/khangtran/folio/pkg/logger"
)

type PublishHandler struct {
	publishUseCase *publishUC.PublishUseCase
	logger         logger.Logger
}

func NewPublishHandler(uc *publishUC.PublishUseCase, log logger.Logger) *PublishHandler {
	return &PublishHandler{publishUseCase: uc, logger: log}
}

func (h *PublishHandler) Publish(c *gin.Context) {
	ownerID, ok := GetOwnerIDFromGinContext(c)
	if !ok {
		c.Error(apperror.NewPermissionDenied("ownerID not found in context"))
		return
	}

	output, err := h.publishUseCase.Execute(c.Request.Context(), ownerID)
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, PublishResponse{ID: output.ID, URL: output.URL})
}

func (h *PublishHandler) ListPublished(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))

	entries, err := h.publishUseCase.ListPublished(c.Request.Context(), limit)
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, entries)
}

// GetPublic is the unauthenticated viewer route: /p/:id resolved to the
// latest snapshot, 404 when never published.
func (h *PublishHandler) GetPublic(c *gin.Context) {
	p, err := h.publishUseCase.Fetch(c.Request.Context(), c.Param("id"))
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, p)
}

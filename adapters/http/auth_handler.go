package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	authUC "github.com/khangtran/folio/internal/application/usecase/auth"
	"github.com/khangtran/folio/pkg/apperror"
	"github.com/khangtran/folio/pkg/logger"
)

type AuthHandler struct {
	loginUseCase *authUC.LoginUseCase
	logger       logger.Logger
}

func NewAuthHandler(uc *authUC.LoginUseCase, log logger.Logger) *AuthHandler {
	return &AuthHandler{loginUseCase: uc, logger: log}
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.NewInvalidInput("invalid login payload", err))
		return
	}

	output, err := h.loginUseCase.Execute(c.Request.Context(), authUC.LoginInput{
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"access_token": output.AccessToken})
}

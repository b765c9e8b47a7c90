package handlers

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/SscSPs/smb_books/internal/apperrors"
	portssvc "github.com/SscSPs/smb_books/internal/core/ports/services"
	"github.com/SscSPs/smb_books/internal/dto"
	"github.com/SscSPs/smb_books/internal/middleware"
	"github.com/gin-gonic/gin"
)

// googleOAuthHandler exchanges Google authorization codes for application JWTs.
type googleOAuthHandler struct {
	googleOAuthService portssvc.GoogleOAuthHandlerSvcFacade
	tokenService       portssvc.TokenSvcFacade
}

// exchangeCodeGoogle godoc
// @Summary Exchange a Google authorization code for an access token
// @Description Exchanges the code with Google, validates the ID token and returns an application JWT whose subject is the Google account ID
// @Tags oauth
// @Accept  json
// @Produce  json
// @Param   code body dto.ExchangeCodeRequest true "Authorization code"
// @Success 200 {object} dto.LoginResponse
// @Failure 400 {object} dto.ErrorResponse "Invalid authorization code"
// @Failure 401 {object} dto.ErrorResponse "Invalid Google ID token"
// @Failure 504 {object} dto.ErrorResponse "Google unreachable"
// @Router /auth/google/exchange-code [post]
func (h *googleOAuthHandler) exchangeCodeGoogle(c *gin.Context) {
	ctx := c.Request.Context()
	logger := middleware.GetLoggerFromCtx(ctx)

	var req dto.ExchangeCodeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	oauth2Token, err := h.googleOAuthService.ExchangeCodeForToken(ctx, req.Code)
	if err != nil {
		logger.Error("Failed to exchange authorization code with Google", slog.String("error", err.Error()))
		appErr := apperrors.NewGatewayTimeoutError("Failed to communicate with Google OAuth service.")
		msg := strings.ToLower(err.Error())
		if strings.Contains(msg, "invalid_grant") || strings.Contains(msg, "bad request") {
			appErr = apperrors.NewBadRequestError("Invalid or expired authorization code provided by Google.")
		}
		respondError(c, appErr, appErr.Message)
		return
	}

	idTokenString, ok := oauth2Token.Extra("id_token").(string)
	if !ok || idTokenString == "" {
		respondError(c, apperrors.NewInternalServerError("Failed to retrieve ID token from Google."), "")
		return
	}

	payload, err := h.googleOAuthService.ValidateGoogleIDToken(ctx, idTokenString)
	if err != nil {
		logger.Warn("Google ID token validation failed", slog.String("error", err.Error()))
		respondError(c, apperrors.NewUnauthorizedError("Invalid Google ID token"), "")
		return
	}
	if payload.Subject == "" {
		respondError(c, apperrors.NewUnauthorizedError("Google ID token has no subject"), "")
		return
	}

	accessToken, _, err := h.tokenService.GenerateAccessToken(ctx, payload.Subject)
	if err != nil {
		respondError(c, err, "Failed to generate access token")
		return
	}

	logger.Info("Issued access token via Google sign-in", slog.String("user_id", payload.Subject))
	c.JSON(http.StatusOK, gin.H{"data": dto.LoginResponse{Token: accessToken}})
}

// registerAuthRoutes registers the public sign-in routes.
func registerAuthRoutes(rg *gin.RouterGroup, services *portssvc.ServiceContainer) {
	h := &googleOAuthHandler{
		googleOAuthService: services.GoogleOAuthHandler,
		tokenService:       services.TokenService,
	}
	auth := rg.Group("/auth")
	{
		auth.POST("/google/exchange-code", h.exchangeCodeGoogle)
	}
}

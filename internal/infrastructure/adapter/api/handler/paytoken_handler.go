package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	coreport "github.com/MrEisbear/Silk/internal/domain/port/core"
	"github.com/MrEisbear/Silk/internal/domain/port/usecase"
	"github.com/MrEisbear/Silk/internal/infrastructure/adapter/api/dto"
	"github.com/MrEisbear/Silk/internal/infrastructure/adapter/api/middleware"
)

// PayTokenHandler handles payment token HTTP requests
type PayTokenHandler struct {
	tokenService usecase.PaymentTokenUseCase
	logger       coreport.Logger
}

// NewPayTokenHandler creates a new payment token handler instance
func NewPayTokenHandler(tokenService usecase.PaymentTokenUseCase, logger coreport.Logger) *PayTokenHandler {
	return &PayTokenHandler{
		tokenService: tokenService,
		logger:       logger,
	}
}

// Issue handles the POST /tokens endpoint
func (h *PayTokenHandler) Issue(c *gin.Context) {
	user, _ := middleware.CurrentUser(c)

	var req dto.IssueTokenRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	result, err := h.tokenService.Issue(c.Request.Context(), usecase.IssueTokenRequest{
		ActorID:       user.ID,
		AccountNumber: req.AccountNumber,
		Pin:           req.Pin,
		RecipientType: req.RecipientType,
		RecipientUUID: req.RecipientUUID,
		Amount:        req.Amount,
		TaxCategory:   req.TaxCategory,
		Label:         req.Label,
		WebhookURL:    req.WebhookURL,
		IPAddress:     c.ClientIP(),
		UserAgent:     c.Request.UserAgent(),
	})
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusCreated, dto.TokenResponse{
		Token:   result.Token,
		Amount:  result.Amount,
		Expires: result.Expires,
	})
}

// Consume handles the POST /tokens/:token/consume endpoint
func (h *PayTokenHandler) Consume(c *gin.Context) {
	user, _ := middleware.CurrentUser(c)

	result, err := h.tokenService.Consume(c.Request.Context(), user.ID, c.Param("token"))
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, dto.ConsumeTokenResponse{
		Token:           result.Token,
		TransactionUUID: result.TransactionUUID,
		TaxUUID:         result.TaxUUID,
		Amount:          result.Amount,
	})
}

// Cancel handles the POST /tokens/:token/cancel endpoint
func (h *PayTokenHandler) Cancel(c *gin.Context) {
	user, _ := middleware.CurrentUser(c)

	if err := h.tokenService.Cancel(c.Request.Context(), user.ID, c.Param("token")); err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// Status handles the GET /tokens/:token endpoint
func (h *PayTokenHandler) Status(c *gin.Context) {
	user, _ := middleware.CurrentUser(c)

	token := c.Param("token")
	status, err := h.tokenService.Status(c.Request.Context(), user.ID, token)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, dto.TokenStatusResponse{
		Token:  token,
		Status: status,
	})
}

package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	coreport "github.com/MrEisbear/Silk/internal/domain/port/core"
	"github.com/MrEisbear/Silk/internal/domain/port/usecase"
	"github.com/MrEisbear/Silk/internal/infrastructure/adapter/api/dto"
	"github.com/MrEisbear/Silk/internal/infrastructure/adapter/api/middleware"
)

// GiftCodeHandler handles gift code HTTP requests
type GiftCodeHandler struct {
	giftCodeService usecase.GiftCodeUseCase
	logger          coreport.Logger
}

// NewGiftCodeHandler creates a new gift code handler instance
func NewGiftCodeHandler(giftCodeService usecase.GiftCodeUseCase, logger coreport.Logger) *GiftCodeHandler {
	return &GiftCodeHandler{
		giftCodeService: giftCodeService,
		logger:          logger,
	}
}

// giftCodeToResponse maps a gift code result to its API representation
func giftCodeToResponse(result *usecase.GiftCodeResult) dto.GiftCodeResponse {
	return dto.GiftCodeResponse{
		Code:      result.Code,
		Amount:    result.Amount,
		ExpiresAt: result.ExpiresAt,
	}
}

// Issue handles the POST /giftcodes endpoint
func (h *GiftCodeHandler) Issue(c *gin.Context) {
	user, _ := middleware.CurrentUser(c)

	var req dto.IssueGiftCodeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	result, err := h.giftCodeService.Issue(c.Request.Context(), user.ID, req.AccountUUID, req.Amount)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusCreated, giftCodeToResponse(result))
}

// IssueSystem handles the POST /admin/giftcodes endpoint
func (h *GiftCodeHandler) IssueSystem(c *gin.Context) {
	admin, _ := middleware.CurrentUser(c)

	var req dto.SystemGiftCodeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	result, err := h.giftCodeService.IssueSystem(c.Request.Context(), admin.ID, req.Amount)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusCreated, giftCodeToResponse(result))
}

// Redeem handles the POST /giftcodes/redeem endpoint
func (h *GiftCodeHandler) Redeem(c *gin.Context) {
	user, _ := middleware.CurrentUser(c)

	var req dto.RedeemGiftCodeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	result, err := h.giftCodeService.Redeem(c.Request.Context(), user.ID, req.Code, req.AccountUUID)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, dto.RedeemGiftCodeResponse{
		Amount:          result.Amount,
		TransactionUUID: result.TransactionUUID,
		NewBalance:      result.NewBalance,
	})
}

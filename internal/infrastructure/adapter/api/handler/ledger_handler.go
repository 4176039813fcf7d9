package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	coreport "github.com/MrEisbear/Silk/internal/domain/port/core"
	"github.com/MrEisbear/Silk/internal/domain/port/usecase"
	"github.com/MrEisbear/Silk/internal/infrastructure/adapter/api/dto"
	"github.com/MrEisbear/Silk/internal/infrastructure/adapter/api/middleware"
)

// LedgerHandler handles balance movement HTTP requests
type LedgerHandler struct {
	ledgerService usecase.LedgerUseCase
	logger        coreport.Logger
}

// NewLedgerHandler creates a new ledger handler instance
func NewLedgerHandler(ledgerService usecase.LedgerUseCase, logger coreport.Logger) *LedgerHandler {
	return &LedgerHandler{
		ledgerService: ledgerService,
		logger:        logger,
	}
}

// ledgerToResponse maps a ledger result to its API representation
func ledgerToResponse(result *usecase.LedgerResult) dto.LedgerResponse {
	return dto.LedgerResponse{
		TransactionUUID: result.TransactionUUID,
		TaxUUID:         result.TaxUUID,
		Amount:          result.Amount,
		Tax:             result.Tax,
		NewBalance:      result.NewBalance,
	}
}

// Transfer handles the POST /transfers endpoint
func (h *LedgerHandler) Transfer(c *gin.Context) {
	user, _ := middleware.CurrentUser(c)

	var req dto.TransferRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	result, err := h.ledgerService.Transfer(c.Request.Context(), usecase.TransferRequest{
		ActorID:  user.ID,
		FromUUID: req.FromUUID,
		ToUUID:   req.ToUUID,
		Amount:   req.Amount,
	})
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, ledgerToResponse(result))
}

// Pay handles the POST /payments endpoint
func (h *LedgerHandler) Pay(c *gin.Context) {
	user, _ := middleware.CurrentUser(c)

	var req dto.PayRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	result, err := h.ledgerService.Pay(c.Request.Context(), usecase.PayRequest{
		ActorID:     user.ID,
		FromUUID:    req.FromUUID,
		ToUUID:      req.ToUUID,
		Amount:      req.Amount,
		Description: req.Description,
		TaxCategory: req.TaxCategory,
	})
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, ledgerToResponse(result))
}

// AdminAdjust handles the POST /admin/adjustments endpoint
func (h *LedgerHandler) AdminAdjust(c *gin.Context) {
	admin, _ := middleware.CurrentUser(c)

	var req dto.AdminAdjustRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	result, err := h.ledgerService.AdminAdjust(c.Request.Context(), usecase.AdminAdjustRequest{
		AdminID:     admin.ID,
		UserID:      req.UserID,
		AccountUUID: req.AccountUUID,
		Amount:      req.Amount,
		Reason:      req.Reason,
	})
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, ledgerToResponse(result))
}

// ClaimSalary handles the POST /salary/claim endpoint
func (h *LedgerHandler) ClaimSalary(c *gin.Context) {
	user, _ := middleware.CurrentUser(c)

	var req dto.ClaimSalaryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	result, err := h.ledgerService.ClaimSalary(c.Request.Context(), user.ID, req.AccountUUID)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, dto.SalaryResponse{
		TransactionUUID: result.TransactionUUID,
		JobName:         result.JobName,
		Amount:          result.Amount,
		NewBalance:      result.NewBalance,
		NextClaimAt:     result.NextClaimAt,
	})
}

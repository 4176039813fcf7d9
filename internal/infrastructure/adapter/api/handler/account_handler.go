package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/MrEisbear/Silk/internal/domain/entity"
	coreport "github.com/MrEisbear/Silk/internal/domain/port/core"
	"github.com/MrEisbear/Silk/internal/domain/port/usecase"
	"github.com/MrEisbear/Silk/internal/infrastructure/adapter/api/dto"
	"github.com/MrEisbear/Silk/internal/infrastructure/adapter/api/middleware"
)

// AccountHandler handles account-related HTTP requests
type AccountHandler struct {
	accountService usecase.AccountUseCase
	pinService     usecase.PinUseCase
	logger         coreport.Logger
}

// NewAccountHandler creates a new account handler instance
func NewAccountHandler(
	accountService usecase.AccountUseCase,
	pinService usecase.PinUseCase,
	logger coreport.Logger,
) *AccountHandler {
	return &AccountHandler{
		accountService: accountService,
		pinService:     pinService,
		logger:         logger,
	}
}

// accountToResponse maps an account entity to its API representation
func accountToResponse(account *entity.Account) dto.AccountResponse {
	return dto.AccountResponse{
		UUID:          account.UUID,
		AccountNumber: account.AccountNumber,
		HolderType:    account.HolderType,
		HolderID:      account.HolderID,
		Balance:       entity.FormatAmount(account.Balance),
		IsFrozen:      account.IsFrozen,
		HasPin:        account.HasPin(),
		CreatedAt:     account.CreatedAt,
	}
}

// Create handles the POST /accounts endpoint
func (h *AccountHandler) Create(c *gin.Context) {
	user, _ := middleware.CurrentUser(c)

	account, err := h.accountService.CreateAccount(c.Request.Context(), user.ID)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusCreated, accountToResponse(account))
}

// List handles the GET /accounts endpoint
func (h *AccountHandler) List(c *gin.Context) {
	user, _ := middleware.CurrentUser(c)

	accounts, err := h.accountService.ListOwn(c.Request.Context(), user.ID)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	responses := make([]dto.AccountResponse, 0, len(accounts))
	for _, account := range accounts {
		responses = append(responses, accountToResponse(account))
	}
	c.JSON(http.StatusOK, responses)
}

// Get handles the GET /accounts/:uuid endpoint
func (h *AccountHandler) Get(c *gin.Context) {
	user, _ := middleware.CurrentUser(c)

	account, err := h.accountService.Get(c.Request.Context(), user.ID, c.Param("uuid"))
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, accountToResponse(account))
}

// SetFrozen handles the PUT /accounts/:uuid/frozen endpoint
func (h *AccountHandler) SetFrozen(c *gin.Context) {
	user, _ := middleware.CurrentUser(c)

	var req dto.FreezeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	if err := h.accountService.SetFrozen(c.Request.Context(), user.ID, c.Param("uuid"), *req.Frozen); err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// Lookup handles the GET /lookup/:reference endpoint. The reference may be
// an account UUID or an account number.
func (h *AccountHandler) Lookup(c *gin.Context) {
	account, err := h.accountService.Lookup(c.Request.Context(), c.Param("reference"))
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, dto.LookupResponse{
		UUID:          account.UUID,
		AccountNumber: account.AccountNumber,
		HolderType:    account.HolderType,
	})
}

// ListTransactions handles the GET /accounts/:uuid/transactions endpoint
func (h *AccountHandler) ListTransactions(c *gin.Context) {
	user, _ := middleware.CurrentUser(c)

	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))
	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))

	transactions, err := h.accountService.ListTransactions(c.Request.Context(), user.ID, c.Param("uuid"), limit, offset)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	responses := make([]dto.TransactionResponse, 0, len(transactions))
	for _, tx := range transactions {
		responses = append(responses, dto.TransactionResponse{
			UUID:            tx.UUID,
			TransactionType: tx.TransactionType,
			FromAccountID:   tx.FromAccountID,
			ToAccountID:     tx.ToAccountID,
			Amount:          entity.FormatAmount(tx.Amount),
			Description:     tx.Description,
			TaxCategory:     tx.TaxCategory,
			CreatedAt:       tx.CreatedAt,
		})
	}
	c.JSON(http.StatusOK, responses)
}

// GetTransaction handles the GET /transactions/:uuid endpoint
func (h *AccountHandler) GetTransaction(c *gin.Context) {
	user, _ := middleware.CurrentUser(c)

	tx, err := h.accountService.GetTransaction(c.Request.Context(), user.ID, c.Param("uuid"))
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, dto.TransactionResponse{
		UUID:            tx.UUID,
		TransactionType: tx.TransactionType,
		FromAccountID:   tx.FromAccountID,
		ToAccountID:     tx.ToAccountID,
		Amount:          entity.FormatAmount(tx.Amount),
		Description:     tx.Description,
		TaxCategory:     tx.TaxCategory,
		CreatedAt:       tx.CreatedAt,
	})
}

// SetPin handles the POST /accounts/:uuid/pin endpoint
func (h *AccountHandler) SetPin(c *gin.Context) {
	user, _ := middleware.CurrentUser(c)

	var req dto.SetPinRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	if err := h.pinService.SetPin(c.Request.Context(), user.ID, c.Param("uuid"), req.Pin); err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// PinStatus handles the GET /accounts/:uuid/pin endpoint
func (h *AccountHandler) PinStatus(c *gin.Context) {
	user, _ := middleware.CurrentUser(c)

	hasPin, err := h.pinService.HasPin(c.Request.Context(), user.ID, c.Param("uuid"))
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, dto.PinStatusResponse{HasPin: hasPin})
}

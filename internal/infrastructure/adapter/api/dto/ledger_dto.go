package dto

import "time"

// TransferRequest represents the API request for a transfer between two
// accounts of the same owner
type TransferRequest struct {
	FromUUID string `json:"fromUuid" binding:"required,uuid"`
	ToUUID   string `json:"toUuid" binding:"required,uuid"`
	Amount   string `json:"amount" binding:"required"`
}

// PayRequest represents the API request for a taxed payment
type PayRequest struct {
	FromUUID    string `json:"fromUuid" binding:"required,uuid"`
	ToUUID      string `json:"toUuid" binding:"required,uuid"`
	Amount      string `json:"amount" binding:"required"`
	Description string `json:"description" binding:"max=255"`
	TaxCategory string `json:"taxCategory"`
}

// AdminAdjustRequest represents the API request for an administrative
// balance correction. Amount may be negative.
type AdminAdjustRequest struct {
	UserID      uint64 `json:"userId" binding:"required"`
	AccountUUID string `json:"accountUuid"`
	Amount      string `json:"amount" binding:"required"`
	Reason      string `json:"reason" binding:"required,max=255"`
}

// LedgerResponse represents a completed balance movement
type LedgerResponse struct {
	TransactionUUID string `json:"transactionUuid"`
	TaxUUID         string `json:"taxUuid,omitempty"`
	Amount          string `json:"amount"`
	Tax             string `json:"tax,omitempty"`
	NewBalance      string `json:"newBalance"`
}

// ClaimSalaryRequest represents the API request for a salary claim
type ClaimSalaryRequest struct {
	AccountUUID string `json:"accountUuid" binding:"required,uuid"`
}

// SalaryResponse represents a successful salary claim
type SalaryResponse struct {
	TransactionUUID string    `json:"transactionUuid"`
	JobName         string    `json:"jobName"`
	Amount          string    `json:"amount"`
	NewBalance      string    `json:"newBalance"`
	NextClaimAt     time.Time `json:"nextClaimAt"`
}

package dto

import "time"

// IssueGiftCodeRequest represents the API request for issuing a gift code
type IssueGiftCodeRequest struct {
	AccountUUID string `json:"accountUuid" binding:"required,uuid"`
	Amount      string `json:"amount" binding:"required"`
}

// SystemGiftCodeRequest represents the API request for minting a system
// gift code without an escrow debit
type SystemGiftCodeRequest struct {
	Amount string `json:"amount" binding:"required"`
}

// GiftCodeResponse represents an issued gift code
type GiftCodeResponse struct {
	Code      string    `json:"code"`
	Amount    string    `json:"amount"`
	ExpiresAt time.Time `json:"expiresAt"`
}

// RedeemGiftCodeRequest represents the API request for redeeming a gift code
type RedeemGiftCodeRequest struct {
	Code        string `json:"code" binding:"required,len=16,numeric"`
	AccountUUID string `json:"accountUuid" binding:"required,uuid"`
}

// RedeemGiftCodeResponse represents a completed redemption
type RedeemGiftCodeResponse struct {
	Amount          string `json:"amount"`
	TransactionUUID string `json:"transactionUuid"`
	NewBalance      string `json:"newBalance"`
}

package dto

import "time"

// IssueTokenRequest represents the API request for minting a payment token
type IssueTokenRequest struct {
	AccountNumber string `json:"accountNumber" binding:"required"`
	Pin           string `json:"pin" binding:"required"`
	RecipientType string `json:"recipientType" binding:"required,oneof=personal company"`
	RecipientUUID string `json:"recipientUuid" binding:"required,uuid"`
	Amount        string `json:"amount" binding:"required"`
	TaxCategory   string `json:"taxCategory"`
	Label         string `json:"label" binding:"max=255"`
	WebhookURL    string `json:"webhookUrl"`
}

// TokenResponse represents an issued payment token
type TokenResponse struct {
	Token   string    `json:"token"`
	Amount  string    `json:"amount"`
	Expires time.Time `json:"expires"`
}

// ConsumeTokenResponse represents a consumed token and the payment it executed
type ConsumeTokenResponse struct {
	Token           string `json:"token"`
	TransactionUUID string `json:"transactionUuid"`
	TaxUUID         string `json:"taxUuid,omitempty"`
	Amount          string `json:"amount"`
}

// TokenStatusResponse reports the current state of a payment token
type TokenStatusResponse struct {
	Token  string `json:"token"`
	Status string `json:"status"`
}

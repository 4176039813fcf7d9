package dto

import "time"

// AccountResponse represents a bank account in API responses
type AccountResponse struct {
	UUID          string    `json:"uuid"`
	AccountNumber string    `json:"accountNumber"`
	HolderType    string    `json:"holderType"`
	HolderID      uint64    `json:"holderId"`
	Balance       string    `json:"balance"`
	IsFrozen      bool      `json:"isFrozen"`
	HasPin        bool      `json:"hasPin"`
	CreatedAt     time.Time `json:"createdAt"`
}

// LookupResponse represents the public view of an account resolved for a
// payment. The balance is never exposed to third parties.
type LookupResponse struct {
	UUID          string `json:"uuid"`
	AccountNumber string `json:"accountNumber"`
	HolderType    string `json:"holderType"`
}

// FreezeRequest represents the API request for freezing or unfreezing an account
type FreezeRequest struct {
	Frozen *bool `json:"frozen" binding:"required"`
}

// TransactionResponse represents a ledger entry in API responses
type TransactionResponse struct {
	UUID            string    `json:"uuid"`
	TransactionType string    `json:"transactionType"`
	FromAccountID   *uint64   `json:"fromAccountId,omitempty"`
	ToAccountID     *uint64   `json:"toAccountId,omitempty"`
	Amount          string    `json:"amount"`
	Description     string    `json:"description,omitempty"`
	TaxCategory     string    `json:"taxCategory,omitempty"`
	CreatedAt       time.Time `json:"createdAt"`
}

// SetPinRequest represents the API request for configuring an account PIN
type SetPinRequest struct {
	Pin string `json:"pin" binding:"required"`
}

// PinStatusResponse reports whether an account has a PIN configured
type PinStatusResponse struct {
	HasPin bool `json:"hasPin"`
}

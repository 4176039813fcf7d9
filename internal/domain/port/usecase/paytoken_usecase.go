package usecase

import (
	"context"
	"time"
)

// IssueTokenRequest describes a pre-authorized payment to be tokenized.
type IssueTokenRequest struct {
	ActorID       uint64
	AccountNumber string
	Pin           string
	RecipientType string
	RecipientUUID string
	Amount        string
	TaxCategory   string
	Label         string
	WebhookURL    string
	IPAddress     string
	UserAgent     string
}

// TokenResult reports an issued payment token.
type TokenResult struct {
	Token   string
	Amount  string
	Expires time.Time
}

// ConsumeResult reports a consumed token and the payment it executed.
type ConsumeResult struct {
	Token           string
	TransactionUUID string
	TaxUUID         string
	Amount          string
}

// PaymentTokenUseCase issues, consumes and cancels single-use payment tokens.
type PaymentTokenUseCase interface {
	// Issue validates the PIN and mints a token; no funds move yet
	Issue(ctx context.Context, req IssueTokenRequest) (*TokenResult, error)

	// Consume executes the tokenized payment exactly once
	Consume(ctx context.Context, actorID uint64, token string) (*ConsumeResult, error)

	// Cancel voids an issued token before consumption. Sender only.
	Cancel(ctx context.Context, actorID uint64, token string) error

	// Status returns the token's current state for its sender or recipient
	Status(ctx context.Context, actorID uint64, token string) (string, error)
}

package usecase

import (
	"context"
	"time"
)

// GiftCodeResult reports an issued gift code.
type GiftCodeResult struct {
	Code      string
	Amount    string
	ExpiresAt time.Time
}

// RedeemResult reports a completed redemption.
type RedeemResult struct {
	Amount          string
	TransactionUUID string
	NewBalance      string
}

// GiftCodeUseCase issues and redeems prepaid gift codes.
type GiftCodeUseCase interface {
	// Issue debits the creator account and mints a new code
	Issue(ctx context.Context, actorID uint64, accountUUID string, amount string) (*GiftCodeResult, error)

	// IssueSystem mints a code without an escrow debit. Admin only.
	IssueSystem(ctx context.Context, adminID uint64, amount string) (*GiftCodeResult, error)

	// Redeem credits the code's amount to the redeemer account, or refunds
	// the creator when the code turns out to be expired
	Redeem(ctx context.Context, actorID uint64, code string, accountUUID string) (*RedeemResult, error)
}

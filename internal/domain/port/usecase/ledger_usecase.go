package usecase

import (
	"context"
	"time"
)

// TransferRequest describes a transfer between two accounts of one owner.
type TransferRequest struct {
	ActorID  uint64
	FromUUID string
	ToUUID   string
	Amount   string
}

// PayRequest describes a taxed payment to a possibly foreign account.
type PayRequest struct {
	ActorID     uint64
	FromUUID    string
	ToUUID      string
	Amount      string
	Description string
	TaxCategory string
}

// AdminAdjustRequest describes an administrative balance correction.
// Amount may be negative; AccountUUID narrows the target when set.
type AdminAdjustRequest struct {
	AdminID     uint64
	UserID      uint64
	AccountUUID string
	Amount      string
	Reason      string
}

// LedgerResult reports a completed movement with its ledger entry ids.
type LedgerResult struct {
	TransactionUUID string
	TaxUUID         string
	Amount          string
	Tax             string
	NewBalance      string
}

// SalaryResult reports a successful salary claim.
type SalaryResult struct {
	TransactionUUID string
	JobName         string
	Amount          string
	NewBalance      string
	NextClaimAt     time.Time
}

// LedgerUseCase exposes every balance-mutating operation of the ledger.
type LedgerUseCase interface {
	// Transfer moves funds between two accounts owned by the actor
	Transfer(ctx context.Context, req TransferRequest) (*LedgerResult, error)

	// Pay moves funds to any account, routing tax to the configured sink
	Pay(ctx context.Context, req PayRequest) (*LedgerResult, error)

	// AdminAdjust applies a signed correction to a user's account
	AdminAdjust(ctx context.Context, req AdminAdjustRequest) (*LedgerResult, error)

	// ClaimSalary pays out the actor's best job once per cooldown window
	ClaimSalary(ctx context.Context, userID uint64, accountUUID string) (*SalaryResult, error)
}

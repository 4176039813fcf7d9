package usecase

import (
	"context"

	"github.com/MrEisbear/Silk/internal/domain/entity"
)

// AccountUseCase manages account lifecycle outside of balance movement.
type AccountUseCase interface {
	// CreateAccount opens a new personal account with a generated number
	CreateAccount(ctx context.Context, actorID uint64) (*entity.Account, error)

	// ListOwn returns the actor's accounts
	ListOwn(ctx context.Context, actorID uint64) ([]*entity.Account, error)

	// Get returns one of the actor's accounts by UUID
	Get(ctx context.Context, actorID uint64, accountUUID string) (*entity.Account, error)

	// SetFrozen freezes or unfreezes one of the actor's accounts
	SetFrozen(ctx context.Context, actorID uint64, accountUUID string, frozen bool) error

	// Lookup resolves an account by UUID or account number for payments.
	// Frozen and deleted accounts are hidden.
	Lookup(ctx context.Context, reference string) (*entity.Account, error)

	// ListTransactions returns ledger entries touching the actor's account
	ListTransactions(ctx context.Context, actorID uint64, accountUUID string, limit, offset int) ([]*entity.Transaction, error)

	// GetTransaction returns one ledger entry by UUID if it touches any of
	// the actor's accounts
	GetTransaction(ctx context.Context, actorID uint64, transactionUUID string) (*entity.Transaction, error)
}

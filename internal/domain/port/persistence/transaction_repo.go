package persistence

import (
	"context"

	"github.com/MrEisbear/Silk/internal/domain/entity"
)

// TransactionRepository defines persistence operations for ledger entries.
// The log is append-only; there is no update or delete.
type TransactionRepository interface {
	// Create appends a ledger entry. Called only inside the same database
	// transaction as the balance mutation it records.
	Create(ctx context.Context, transaction *entity.Transaction) error

	// GetByUUID retrieves a ledger entry by its external UUID
	//
	// Possible errors:
	// - ErrTransactionNotFound: if no entry carries the UUID
	GetByUUID(ctx context.Context, uuid string) (*entity.Transaction, error)

	// ListByAccount retrieves entries touching the account as sender or
	// receiver, newest first
	ListByAccount(ctx context.Context, accountID uint64, limit, offset int) ([]*entity.Transaction, error)
}

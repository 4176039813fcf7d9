package persistence

import (
	"context"

	"github.com/MrEisbear/Silk/internal/domain/entity"
)

// AccountRepository defines persistence operations for bank accounts.
// Lookups hide soft-deleted rows unless stated otherwise.
type AccountRepository interface {
	// GetByUUID retrieves an account by its external UUID
	//
	// Possible errors:
	// - ErrAccountNotFound: if no visible account carries the UUID
	// - ErrDatabaseConnection: if the database is unreachable
	GetByUUID(ctx context.Context, uuid string) (*entity.Account, error)

	// GetByNumber retrieves an account by its human-facing account number
	GetByNumber(ctx context.Context, accountNumber string) (*entity.Account, error)

	// GetForUpdate retrieves an account by internal id holding a row lock
	// for the remainder of the enclosing transaction. Soft-deleted rows are
	// returned too; callers decide whether deletion blocks the operation.
	GetForUpdate(ctx context.Context, id uint64) (*entity.Account, error)

	// GetByHolder retrieves the accounts owned by a holder, including
	// frozen ones, excluding soft-deleted ones
	GetByHolder(ctx context.Context, holderType string, holderID uint64) ([]*entity.Account, error)

	// Create inserts a new account
	//
	// Possible errors:
	// - ErrDuplicate: if the UUID or account number collides
	Create(ctx context.Context, account *entity.Account) error

	// Update persists balance, flag and PIN state changes
	Update(ctx context.Context, account *entity.Account) error
}

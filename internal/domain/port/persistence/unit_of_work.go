package persistence

import (
	"context"
)

// UnitOfWork coordinates a single database transaction across every
// repository a ledger operation touches. An operation either commits all
// of its balance updates, log inserts and subsidiary entity updates or
// rolls back all of them.
type UnitOfWork interface {
	// Begin starts a new transaction and returns a transactional context
	Begin(ctx context.Context) (context.Context, error)

	// Commit commits the transaction in the given context
	Commit(ctx context.Context) error

	// Rollback rolls back the transaction in the given context
	Rollback(ctx context.Context) error

	// GetAccountRepository returns an account repository bound to the current transaction
	GetAccountRepository(ctx context.Context) AccountRepository

	// GetTransactionRepository returns a ledger repository bound to the current transaction
	GetTransactionRepository(ctx context.Context) TransactionRepository

	// GetGiftCodeRepository returns a gift code repository bound to the current transaction
	GetGiftCodeRepository(ctx context.Context) GiftCodeRepository

	// GetPaymentTokenRepository returns a token repository bound to the current transaction
	GetPaymentTokenRepository(ctx context.Context) PaymentTokenRepository

	// GetUserRepository returns a user repository bound to the current transaction
	GetUserRepository(ctx context.Context) UserRepository

	// GetJobRepository returns a job repository bound to the current transaction
	GetJobRepository(ctx context.Context) JobRepository
}

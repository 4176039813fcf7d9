package account

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/MrEisbear/Silk/internal/domain/entity"
	errs "github.com/MrEisbear/Silk/internal/domain/error"
	coreport "github.com/MrEisbear/Silk/internal/domain/port/core"
	"github.com/MrEisbear/Silk/internal/domain/port/persistence"
)

// Config carries the account management knobs.
type Config struct {
	// NumberPrefix is prepended to every generated account number
	NumberPrefix string

	// GenerationRetries bounds the collision retries for account numbers
	GenerationRetries int
}

// Service manages account lifecycle outside of balance movement.
type Service struct {
	uow          persistence.UnitOfWork
	timeProvider coreport.TimeProvider
	logger       coreport.Logger
	cfg          Config
}

// NewService creates a new account service
func NewService(
	uow persistence.UnitOfWork,
	timeProvider coreport.TimeProvider,
	logger coreport.Logger,
	cfg Config,
) *Service {
	if cfg.NumberPrefix == "" {
		cfg.NumberPrefix = "SILK"
	}
	if cfg.GenerationRetries <= 0 {
		cfg.GenerationRetries = 5
	}
	return &Service{
		uow:          uow,
		timeProvider: timeProvider,
		logger:       logger,
		cfg:          cfg,
	}
}

// generateNumber draws a prefixed account number from the CSPRNG and
// retries a bounded number of times on collision.
func (s *Service) generateNumber(ctx context.Context, accounts persistence.AccountRepository) (string, error) {
	for attempt := 0; attempt < s.cfg.GenerationRetries; attempt++ {
		buf := make([]byte, 4)
		if _, err := rand.Read(buf); err != nil {
			return "", fmt.Errorf("%w: account number generation failed", errs.ErrInternalServer)
		}
		number := s.cfg.NumberPrefix + hex.EncodeToString(buf)

		_, err := accounts.GetByNumber(ctx, number)
		if errs.IsNotFoundError(err) {
			return number, nil
		}
		if err != nil {
			return "", err
		}
	}
	return "", fmt.Errorf("%w: account number space exhausted after %d attempts",
		errs.ErrInternalServer, s.cfg.GenerationRetries)
}

// CreateAccount opens a new personal account with a zero balance.
func (s *Service) CreateAccount(ctx context.Context, actorID uint64) (*entity.Account, error) {
	var created *entity.Account
	txCtx, err := s.uow.Begin(ctx)
	if err != nil {
		return nil, err
	}
	accounts := s.uow.GetAccountRepository(txCtx)

	number, err := s.generateNumber(txCtx, accounts)
	if err != nil {
		_ = s.uow.Rollback(txCtx)
		return nil, err
	}

	now := s.timeProvider.Now()
	created = &entity.Account{
		UUID:          uuid.NewString(),
		AccountNumber: number,
		HolderType:    entity.HolderTypeUser,
		HolderID:      actorID,
		Balance:       decimal.Zero,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if err := accounts.Create(txCtx, created); err != nil {
		_ = s.uow.Rollback(txCtx)
		return nil, err
	}
	if err := s.uow.Commit(txCtx); err != nil {
		return nil, err
	}

	s.logger.Info("Account created", map[string]any{
		"actor_id":       actorID,
		"account_uuid":   created.UUID,
		"account_number": created.AccountNumber,
	})
	return created, nil
}

// ListOwn returns the actor's accounts.
func (s *Service) ListOwn(ctx context.Context, actorID uint64) ([]*entity.Account, error) {
	return s.uow.GetAccountRepository(ctx).GetByHolder(ctx, entity.HolderTypeUser, actorID)
}

// Get returns one of the actor's accounts by UUID.
func (s *Service) Get(ctx context.Context, actorID uint64, accountUUID string) (*entity.Account, error) {
	account, err := s.uow.GetAccountRepository(ctx).GetByUUID(ctx, accountUUID)
	if err != nil {
		return nil, err
	}
	if !account.IsOwnedBy(actorID) {
		return nil, errs.ErrForbidden
	}
	return account, nil
}

// SetFrozen freezes or unfreezes one of the actor's accounts.
func (s *Service) SetFrozen(ctx context.Context, actorID uint64, accountUUID string, frozen bool) error {
	txCtx, err := s.uow.Begin(ctx)
	if err != nil {
		return err
	}
	accounts := s.uow.GetAccountRepository(txCtx)

	account, err := accounts.GetByUUID(txCtx, accountUUID)
	if err != nil {
		_ = s.uow.Rollback(txCtx)
		return err
	}
	if !account.IsOwnedBy(actorID) {
		_ = s.uow.Rollback(txCtx)
		return errs.ErrForbidden
	}

	account, err = accounts.GetForUpdate(txCtx, account.ID)
	if err != nil {
		_ = s.uow.Rollback(txCtx)
		return err
	}
	account.IsFrozen = frozen
	if err := accounts.Update(txCtx, account); err != nil {
		_ = s.uow.Rollback(txCtx)
		return err
	}
	if err := s.uow.Commit(txCtx); err != nil {
		return err
	}

	s.logger.Info("Account freeze state changed", map[string]any{
		"actor_id":     actorID,
		"account_uuid": accountUUID,
		"frozen":       frozen,
	})
	return nil
}

// Lookup resolves an account by UUID or account number for payment
// targeting. Frozen accounts are hidden like deleted ones.
func (s *Service) Lookup(ctx context.Context, reference string) (*entity.Account, error) {
	accounts := s.uow.GetAccountRepository(ctx)

	account, err := accounts.GetByUUID(ctx, reference)
	if errs.IsNotFoundError(err) {
		account, err = accounts.GetByNumber(ctx, reference)
	}
	if err != nil {
		return nil, err
	}
	if account.IsFrozen {
		return nil, errs.ErrAccountNotFound
	}
	return account, nil
}

// ListTransactions returns ledger entries touching the actor's account,
// newest first.
func (s *Service) ListTransactions(ctx context.Context, actorID uint64, accountUUID string, limit, offset int) ([]*entity.Transaction, error) {
	account, err := s.Get(ctx, actorID, accountUUID)
	if err != nil {
		return nil, err
	}
	if limit <= 0 || limit > 100 {
		limit = 50
	}
	return s.uow.GetTransactionRepository(ctx).ListByAccount(ctx, account.ID, limit, offset)
}

// GetTransaction returns one ledger entry by UUID. The entry is visible
// only when it touches an account the actor holds.
func (s *Service) GetTransaction(ctx context.Context, actorID uint64, transactionUUID string) (*entity.Transaction, error) {
	tx, err := s.uow.GetTransactionRepository(ctx).GetByUUID(ctx, transactionUUID)
	if err != nil {
		return nil, err
	}

	accounts, err := s.uow.GetAccountRepository(ctx).GetByHolder(ctx, entity.HolderTypeUser, actorID)
	if err != nil {
		return nil, err
	}
	for _, account := range accounts {
		if touches(tx, account.ID) {
			return tx, nil
		}
	}
	return nil, errs.ErrForbidden
}

// touches reports whether the entry references the account on either side.
func touches(tx *entity.Transaction, accountID uint64) bool {
	if tx.FromAccountID != nil && *tx.FromAccountID == accountID {
		return true
	}
	return tx.ToAccountID != nil && *tx.ToAccountID == accountID
}

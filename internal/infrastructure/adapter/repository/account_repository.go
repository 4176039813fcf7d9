package repository

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/MrEisbear/Silk/internal/domain/entity"
	errs "github.com/MrEisbear/Silk/internal/domain/error"
	coreport "github.com/MrEisbear/Silk/internal/domain/port/core"
	"github.com/MrEisbear/Silk/internal/infrastructure/adapter/model"
)

// AccountRepository implements the account port using GORM
type AccountRepository struct {
	db              *gorm.DB
	timeProvider    coreport.TimeProvider
	logger          coreport.Logger
	errorClassifier *ErrorClassifier
}

// NewAccountRepository creates a new AccountRepository instance
func NewAccountRepository(db *gorm.DB, timeProvider coreport.TimeProvider, logger coreport.Logger) *AccountRepository {
	return &AccountRepository{
		db:              db,
		timeProvider:    timeProvider,
		logger:          logger,
		errorClassifier: NewErrorClassifier(),
	}
}

func accountModelToEntity(m *model.BankAccount) *entity.Account {
	return &entity.Account{
		ID:                m.ID,
		UUID:              m.UUID,
		AccountNumber:     m.AccountNumber,
		HolderType:        m.HolderType,
		HolderID:          m.HolderID,
		Balance:           m.Balance,
		IsFrozen:          m.IsFrozen,
		IsDeleted:         m.IsDeleted,
		PinHash:           m.PinHash,
		PinFailedAttempts: m.PinFailedAttempts,
		PinLockedUntil:    m.PinLockedUntil,
		CreatedAt:         m.CreatedAt,
		UpdatedAt:         m.UpdatedAt,
	}
}

func (r *AccountRepository) handleError(operation string, err error) error {
	mapped := mapDatabaseError(r.errorClassifier, err, errs.ErrAccountNotFound)
	if !errs.IsNotFoundError(mapped) {
		r.logger.Error("Database error on account "+operation, map[string]any{
			"error": err.Error(),
		})
	}
	return mapped
}

// GetByUUID retrieves a visible account by its external UUID
func (r *AccountRepository) GetByUUID(ctx context.Context, uuid string) (*entity.Account, error) {
	var m model.BankAccount
	result := r.db.WithContext(ctx).
		Where("uuid = ? AND is_deleted = ?", uuid, false).
		First(&m)
	if result.Error != nil {
		return nil, r.handleError("lookup by uuid", result.Error)
	}
	return accountModelToEntity(&m), nil
}

// GetByNumber retrieves a visible account by its account number
func (r *AccountRepository) GetByNumber(ctx context.Context, accountNumber string) (*entity.Account, error) {
	var m model.BankAccount
	result := r.db.WithContext(ctx).
		Where("account_number = ? AND is_deleted = ?", accountNumber, false).
		First(&m)
	if result.Error != nil {
		return nil, r.handleError("lookup by number", result.Error)
	}
	return accountModelToEntity(&m), nil
}

// GetForUpdate retrieves an account by internal id holding a row lock for
// the rest of the enclosing transaction. Soft-deleted rows are returned
// too so that callers decide what deletion means for their operation.
func (r *AccountRepository) GetForUpdate(ctx context.Context, id uint64) (*entity.Account, error) {
	var m model.BankAccount
	result := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&m, id)
	if result.Error != nil {
		return nil, r.handleError("lock", result.Error)
	}
	return accountModelToEntity(&m), nil
}

// GetByHolder retrieves the visible accounts owned by a holder
func (r *AccountRepository) GetByHolder(ctx context.Context, holderType string, holderID uint64) ([]*entity.Account, error) {
	var models []model.BankAccount
	result := r.db.WithContext(ctx).
		Where("holder_type = ? AND holder_id = ? AND is_deleted = ?", holderType, holderID, false).
		Order("id ASC").
		Find(&models)
	if result.Error != nil {
		return nil, r.handleError("list by holder", result.Error)
	}

	accounts := make([]*entity.Account, 0, len(models))
	for i := range models {
		accounts = append(accounts, accountModelToEntity(&models[i]))
	}
	return accounts, nil
}

// Create inserts a new account
func (r *AccountRepository) Create(ctx context.Context, account *entity.Account) error {
	m := model.BankAccount{
		UUID:          account.UUID,
		AccountNumber: account.AccountNumber,
		HolderType:    account.HolderType,
		HolderID:      account.HolderID,
		Balance:       account.Balance,
		IsFrozen:      account.IsFrozen,
		IsDeleted:     account.IsDeleted,
		CreatedAt:     account.CreatedAt,
		UpdatedAt:     account.UpdatedAt,
	}
	result := r.db.WithContext(ctx).Create(&m)
	if result.Error != nil {
		return r.handleError("create", result.Error)
	}
	account.ID = m.ID

	r.logger.Debug("Account row created", map[string]any{
		"account_uuid":   account.UUID,
		"account_number": account.AccountNumber,
	})
	return nil
}

// Update persists balance, flag and PIN state changes
func (r *AccountRepository) Update(ctx context.Context, account *entity.Account) error {
	result := r.db.WithContext(ctx).Model(&model.BankAccount{}).
		Where("id = ?", account.ID).
		Updates(map[string]any{
			"balance":             account.Balance,
			"is_frozen":           account.IsFrozen,
			"is_deleted":          account.IsDeleted,
			"pin_hash":            account.PinHash,
			"pin_failed_attempts": account.PinFailedAttempts,
			"pin_locked_until":    account.PinLockedUntil,
			"updated_at":          r.timeProvider.Now(),
		})
	if result.Error != nil {
		return r.handleError("update", result.Error)
	}
	if result.RowsAffected == 0 {
		return errs.ErrAccountNotFound
	}
	return nil
}

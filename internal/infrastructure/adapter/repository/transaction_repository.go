package repository

import (
	"context"
	"encoding/json"

	"gorm.io/gorm"

	"github.com/MrEisbear/Silk/internal/domain/entity"
	errs "github.com/MrEisbear/Silk/internal/domain/error"
	coreport "github.com/MrEisbear/Silk/internal/domain/port/core"
	"github.com/MrEisbear/Silk/internal/infrastructure/adapter/model"
)

// TransactionRepository implements the ledger port using GORM. The table
// is append-only; this repository exposes no update or delete.
type TransactionRepository struct {
	db              *gorm.DB
	logger          coreport.Logger
	errorClassifier *ErrorClassifier
}

// NewTransactionRepository creates a new TransactionRepository instance
func NewTransactionRepository(db *gorm.DB, logger coreport.Logger) *TransactionRepository {
	return &TransactionRepository{
		db:              db,
		logger:          logger,
		errorClassifier: NewErrorClassifier(),
	}
}

func (r *TransactionRepository) modelToEntity(m *model.Transaction) *entity.Transaction {
	tx := &entity.Transaction{
		ID:              m.ID,
		UUID:            m.UUID,
		TransactionType: m.TransactionType,
		FromAccountID:   m.FromAccountID,
		ToAccountID:     m.ToAccountID,
		Amount:          m.Amount,
		Confirmed:       m.Confirmed,
		Description:     m.Description,
		Metadata:        map[string]any{},
		TaxCategory:     m.TaxCategory,
		CreatedAt:       m.CreatedAt,
	}
	if m.Metadata != "" {
		if err := json.Unmarshal([]byte(m.Metadata), &tx.Metadata); err != nil {
			r.logger.Warn("Unreadable transaction metadata", map[string]any{
				"transaction_uuid": m.UUID,
				"error":            err.Error(),
			})
		}
	}
	return tx
}

// Create appends a ledger entry
func (r *TransactionRepository) Create(ctx context.Context, transaction *entity.Transaction) error {
	metadata := ""
	if len(transaction.Metadata) > 0 {
		raw, err := json.Marshal(transaction.Metadata)
		if err != nil {
			return errs.NewLedgerError("record", "", "", entity.FormatAmount(transaction.Amount),
				"metadata not serializable", err)
		}
		metadata = string(raw)
	}

	m := model.Transaction{
		UUID:            transaction.UUID,
		TransactionType: transaction.TransactionType,
		FromAccountID:   transaction.FromAccountID,
		ToAccountID:     transaction.ToAccountID,
		Amount:          transaction.Amount,
		Confirmed:       transaction.Confirmed,
		Description:     transaction.Description,
		Metadata:        metadata,
		TaxCategory:     transaction.TaxCategory,
		CreatedAt:       transaction.CreatedAt,
	}
	result := r.db.WithContext(ctx).Create(&m)
	if result.Error != nil {
		r.logger.Error("Failed to append ledger entry", map[string]any{
			"transaction_uuid": transaction.UUID,
			"error":            result.Error.Error(),
		})
		return mapDatabaseError(r.errorClassifier, result.Error, errs.ErrTransactionNotFound)
	}

	transaction.ID = m.ID
	transaction.CreatedAt = m.CreatedAt
	return nil
}

// GetByUUID retrieves a ledger entry by its external UUID
func (r *TransactionRepository) GetByUUID(ctx context.Context, uuid string) (*entity.Transaction, error) {
	var m model.Transaction
	result := r.db.WithContext(ctx).Where("uuid = ?", uuid).First(&m)
	if result.Error != nil {
		return nil, mapDatabaseError(r.errorClassifier, result.Error, errs.ErrTransactionNotFound)
	}
	return r.modelToEntity(&m), nil
}

// ListByAccount retrieves entries touching the account, newest first
func (r *TransactionRepository) ListByAccount(ctx context.Context, accountID uint64, limit, offset int) ([]*entity.Transaction, error) {
	var models []model.Transaction
	result := r.db.WithContext(ctx).
		Where("from_account_id = ? OR to_account_id = ?", accountID, accountID).
		Order("created_at DESC, id DESC").
		Limit(limit).
		Offset(offset).
		Find(&models)
	if result.Error != nil {
		return nil, mapDatabaseError(r.errorClassifier, result.Error, errs.ErrTransactionNotFound)
	}

	entries := make([]*entity.Transaction, 0, len(models))
	for i := range models {
		entries = append(entries, r.modelToEntity(&models[i]))
	}
	return entries, nil
}

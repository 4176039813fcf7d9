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

// GiftCodeRepository implements the gift code port using GORM
type GiftCodeRepository struct {
	db              *gorm.DB
	logger          coreport.Logger
	errorClassifier *ErrorClassifier
}

// NewGiftCodeRepository creates a new GiftCodeRepository instance
func NewGiftCodeRepository(db *gorm.DB, logger coreport.Logger) *GiftCodeRepository {
	return &GiftCodeRepository{
		db:              db,
		logger:          logger,
		errorClassifier: NewErrorClassifier(),
	}
}

func giftCodeModelToEntity(m *model.GiftCode) *entity.GiftCode {
	return &entity.GiftCode{
		Code:       m.Code,
		Amount:     m.Amount,
		CreatedBy:  m.CreatedBy,
		ExpiresAt:  m.ExpiresAt,
		IsActive:   m.IsActive,
		RedeemedBy: m.RedeemedBy,
		RedeemedAt: m.RedeemedAt,
		CreatedAt:  m.CreatedAt,
	}
}

// Create inserts a new gift code
func (r *GiftCodeRepository) Create(ctx context.Context, code *entity.GiftCode) error {
	m := model.GiftCode{
		Code:      code.Code,
		Amount:    code.Amount,
		CreatedBy: code.CreatedBy,
		ExpiresAt: code.ExpiresAt,
		IsActive:  code.IsActive,
		CreatedAt: code.CreatedAt,
	}
	result := r.db.WithContext(ctx).Create(&m)
	if result.Error != nil {
		r.logger.Error("Failed to create gift code", map[string]any{
			"error": result.Error.Error(),
		})
		return mapDatabaseError(r.errorClassifier, result.Error, errs.ErrGiftCodeNotFound)
	}
	return nil
}

// GetByCodeForUpdate retrieves a gift code holding a row lock
func (r *GiftCodeRepository) GetByCodeForUpdate(ctx context.Context, code string) (*entity.GiftCode, error) {
	var m model.GiftCode
	result := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("code = ?", code).
		First(&m)
	if result.Error != nil {
		return nil, mapDatabaseError(r.errorClassifier, result.Error, errs.ErrGiftCodeNotFound)
	}
	return giftCodeModelToEntity(&m), nil
}

// CodeExists reports whether a code string is already taken
func (r *GiftCodeRepository) CodeExists(ctx context.Context, code string) (bool, error) {
	var count int64
	result := r.db.WithContext(ctx).Model(&model.GiftCode{}).
		Where("code = ?", code).
		Count(&count)
	if result.Error != nil {
		return false, mapDatabaseError(r.errorClassifier, result.Error, errs.ErrGiftCodeNotFound)
	}
	return count > 0, nil
}

// Update persists a state transition on a locked gift code row
func (r *GiftCodeRepository) Update(ctx context.Context, code *entity.GiftCode) error {
	result := r.db.WithContext(ctx).Model(&model.GiftCode{}).
		Where("code = ?", code.Code).
		Updates(map[string]any{
			"is_active":   code.IsActive,
			"redeemed_by": code.RedeemedBy,
			"redeemed_at": code.RedeemedAt,
		})
	if result.Error != nil {
		return mapDatabaseError(r.errorClassifier, result.Error, errs.ErrGiftCodeNotFound)
	}
	if result.RowsAffected == 0 {
		return errs.ErrGiftCodeNotFound
	}
	return nil
}

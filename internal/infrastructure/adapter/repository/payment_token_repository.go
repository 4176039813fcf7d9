package repository

import (
	"context"
	"encoding/json"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/MrEisbear/Silk/internal/domain/entity"
	errs "github.com/MrEisbear/Silk/internal/domain/error"
	coreport "github.com/MrEisbear/Silk/internal/domain/port/core"
	"github.com/MrEisbear/Silk/internal/infrastructure/adapter/model"
)

// PaymentTokenRepository implements the payment token port using GORM
type PaymentTokenRepository struct {
	db              *gorm.DB
	logger          coreport.Logger
	errorClassifier *ErrorClassifier
}

// NewPaymentTokenRepository creates a new PaymentTokenRepository instance
func NewPaymentTokenRepository(db *gorm.DB, logger coreport.Logger) *PaymentTokenRepository {
	return &PaymentTokenRepository{
		db:              db,
		logger:          logger,
		errorClassifier: NewErrorClassifier(),
	}
}

func (r *PaymentTokenRepository) modelToEntity(m *model.PaymentToken) *entity.PaymentToken {
	token := &entity.PaymentToken{
		ID:            m.ID,
		Token:         m.Token,
		SenderUUID:    m.SenderUUID,
		RecipientUUID: m.RecipientUUID,
		Amount:        m.Amount,
		TaxCategory:   m.TaxCategory,
		Label:         m.Label,
		WebhookURL:    m.WebhookURL,
		Status:        m.Status,
		Expires:       m.Expires,
		IPAddress:     m.IPAddress,
		CreatedAt:     m.CreatedAt,
	}
	if m.UserAgent != "" {
		if err := json.Unmarshal([]byte(m.UserAgent), &token.UserAgent); err != nil {
			r.logger.Warn("Unreadable token user agent record", map[string]any{
				"token": m.Token,
				"error": err.Error(),
			})
		}
	}
	return token
}

// Create inserts a new payment token
func (r *PaymentTokenRepository) Create(ctx context.Context, token *entity.PaymentToken) error {
	userAgent, err := json.Marshal(token.UserAgent)
	if err != nil {
		return errs.ErrInternalServer
	}

	m := model.PaymentToken{
		Token:         token.Token,
		SenderUUID:    token.SenderUUID,
		RecipientUUID: token.RecipientUUID,
		Amount:        token.Amount,
		TaxCategory:   token.TaxCategory,
		Label:         token.Label,
		WebhookURL:    token.WebhookURL,
		Status:        token.Status,
		Expires:       token.Expires,
		IPAddress:     token.IPAddress,
		UserAgent:     string(userAgent),
		CreatedAt:     token.CreatedAt,
	}
	result := r.db.WithContext(ctx).Create(&m)
	if result.Error != nil {
		r.logger.Error("Failed to create payment token", map[string]any{
			"error": result.Error.Error(),
		})
		return mapDatabaseError(r.errorClassifier, result.Error, errs.ErrTokenNotFound)
	}
	token.ID = m.ID
	return nil
}

// GetByToken retrieves a token without locking
func (r *PaymentTokenRepository) GetByToken(ctx context.Context, token string) (*entity.PaymentToken, error) {
	var m model.PaymentToken
	result := r.db.WithContext(ctx).Where("token = ?", token).First(&m)
	if result.Error != nil {
		return nil, mapDatabaseError(r.errorClassifier, result.Error, errs.ErrTokenNotFound)
	}
	return r.modelToEntity(&m), nil
}

// GetByTokenForUpdate retrieves a token holding a row lock
func (r *PaymentTokenRepository) GetByTokenForUpdate(ctx context.Context, token string) (*entity.PaymentToken, error) {
	var m model.PaymentToken
	result := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("token = ?", token).
		First(&m)
	if result.Error != nil {
		return nil, mapDatabaseError(r.errorClassifier, result.Error, errs.ErrTokenNotFound)
	}
	return r.modelToEntity(&m), nil
}

// Update persists a state transition on a locked token row
func (r *PaymentTokenRepository) Update(ctx context.Context, token *entity.PaymentToken) error {
	result := r.db.WithContext(ctx).Model(&model.PaymentToken{}).
		Where("id = ?", token.ID).
		Updates(map[string]any{
			"status": token.Status,
		})
	if result.Error != nil {
		return mapDatabaseError(r.errorClassifier, result.Error, errs.ErrTokenNotFound)
	}
	if result.RowsAffected == 0 {
		return errs.ErrTokenNotFound
	}
	return nil
}

package persistence

import (
	"context"

	"github.com/MrEisbear/Silk/internal/domain/entity"
)

// PaymentTokenRepository defines persistence operations for payment tokens.
type PaymentTokenRepository interface {
	// Create inserts a new payment token
	//
	// Possible errors:
	// - ErrDuplicate: if the token string collides
	Create(ctx context.Context, token *entity.PaymentToken) error

	// GetByToken retrieves a token without locking, for status inspection
	//
	// Possible errors:
	// - ErrTokenNotFound: if the token does not exist
	GetByToken(ctx context.Context, token string) (*entity.PaymentToken, error)

	// GetByTokenForUpdate retrieves a token holding a row lock so that a
	// token can never be consumed twice
	GetByTokenForUpdate(ctx context.Context, token string) (*entity.PaymentToken, error)

	// Update persists a state transition on a locked token row
	Update(ctx context.Context, token *entity.PaymentToken) error
}

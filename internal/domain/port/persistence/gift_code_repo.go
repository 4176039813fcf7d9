package persistence

import (
	"context"

	"github.com/MrEisbear/Silk/internal/domain/entity"
)

// GiftCodeRepository defines persistence operations for gift codes.
type GiftCodeRepository interface {
	// Create inserts a new gift code
	//
	// Possible errors:
	// - ErrDuplicate: if the code already exists
	Create(ctx context.Context, code *entity.GiftCode) error

	// GetByCodeForUpdate retrieves a gift code holding a row lock so that
	// redemption and expiry refund stay mutually exclusive
	//
	// Possible errors:
	// - ErrGiftCodeNotFound: if the code does not exist
	GetByCodeForUpdate(ctx context.Context, code string) (*entity.GiftCode, error)

	// CodeExists reports whether a code string is already taken. Used by
	// the bounded collision retry during generation.
	CodeExists(ctx context.Context, code string) (bool, error)

	// Update persists a state transition on a locked gift code row
	Update(ctx context.Context, code *entity.GiftCode) error
}

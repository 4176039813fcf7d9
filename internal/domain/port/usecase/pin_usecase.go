package usecase

import "context"

// PinUseCase manages PIN authorization for personal accounts.
type PinUseCase interface {
	// SetPin stores a new PIN hash on an account owned by the actor
	SetPin(ctx context.Context, actorID uint64, accountUUID string, pin string) error

	// HasPin reports whether the account has a PIN configured
	HasPin(ctx context.Context, actorID uint64, accountUUID string) (bool, error)
}

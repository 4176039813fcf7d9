package persistence

import (
	"context"

	"github.com/MrEisbear/Silk/internal/domain/entity"
)

// UserRepository defines persistence operations for users.
type UserRepository interface {
	// GetByID retrieves a user by internal id
	//
	// Possible errors:
	// - ErrUserNotFound: if the user does not exist
	GetByID(ctx context.Context, id uint64) (*entity.User, error)

	// GetByIDForUpdate retrieves a user holding a row lock. The salary
	// claim cooldown check happens on the locked row.
	GetByIDForUpdate(ctx context.Context, id uint64) (*entity.User, error)

	// GetByUUID retrieves a user by external UUID
	GetByUUID(ctx context.Context, uuid string) (*entity.User, error)

	// GetByUsername retrieves a user by username
	GetByUsername(ctx context.Context, username string) (*entity.User, error)

	// Create inserts a new user
	//
	// Possible errors:
	// - ErrDuplicate: if the username or email is taken
	Create(ctx context.Context, user *entity.User) error

	// Update persists profile, role, ban and cooldown changes
	Update(ctx context.Context, user *entity.User) error
}

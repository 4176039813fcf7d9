package usecase

import (
	"context"

	"github.com/MrEisbear/Silk/internal/domain/entity"
)

// RegisterRequest carries the fields needed to create a user.
type RegisterRequest struct {
	Username string
	Email    string
	Password string
}

// AuthResult carries a signed session token and the authenticated user.
type AuthResult struct {
	Token string
	User  *entity.User
}

// AuthUseCase registers users and issues bearer session tokens.
type AuthUseCase interface {
	// Register creates a user and returns a fresh session
	Register(ctx context.Context, req RegisterRequest) (*AuthResult, error)

	// Login verifies credentials and returns a fresh session
	Login(ctx context.Context, username, password string) (*AuthResult, error)

	// VerifyToken validates a bearer token and returns the user it names
	VerifyToken(ctx context.Context, token string) (*entity.User, error)

	// SetBanned bans or unbans a user. Admin only; role verification
	// happens at the request boundary. Banned users keep their accounts
	// but every request is rejected at authentication.
	SetBanned(ctx context.Context, userID uint64, banned bool) error

	// DeleteUser removes a user from service: the user is banned and
	// every account they hold is soft-deleted, in one transaction. Admin
	// only; admins cannot delete themselves.
	DeleteUser(ctx context.Context, actorID, userID uint64) error
}

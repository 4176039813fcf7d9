package auth

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/MrEisbear/Silk/internal/domain/entity"
	errs "github.com/MrEisbear/Silk/internal/domain/error"
	coreport "github.com/MrEisbear/Silk/internal/domain/port/core"
	"github.com/MrEisbear/Silk/internal/domain/port/persistence"
	"github.com/MrEisbear/Silk/internal/domain/port/usecase"
)

// Config carries the session knobs.
type Config struct {
	// JWTSecret signs session tokens with HMAC-SHA256
	JWTSecret string

	// TokenTTL is the session lifetime
	TokenTTL time.Duration

	// BcryptCost overrides the password hash cost, zero means the default
	BcryptCost int
}

// Service registers users and issues bearer session tokens. The ledger
// never sees raw credentials; it trusts the verified id this service
// extracts from a token.
type Service struct {
	uow          persistence.UnitOfWork
	timeProvider coreport.TimeProvider
	logger       coreport.Logger
	cfg          Config
}

// NewService creates a new auth service
func NewService(
	uow persistence.UnitOfWork,
	timeProvider coreport.TimeProvider,
	logger coreport.Logger,
	cfg Config,
) *Service {
	if cfg.BcryptCost == 0 {
		cfg.BcryptCost = bcrypt.DefaultCost
	}
	return &Service{
		uow:          uow,
		timeProvider: timeProvider,
		logger:       logger,
		cfg:          cfg,
	}
}

// Register creates a user and returns a fresh session.
func (s *Service) Register(ctx context.Context, req usecase.RegisterRequest) (*usecase.AuthResult, error) {
	username := strings.TrimSpace(req.Username)
	if len(username) < 3 || len(req.Password) < 8 || !strings.Contains(req.Email, "@") {
		return nil, errs.ErrInvalidCredentials
	}

	users := s.uow.GetUserRepository(ctx)
	if _, err := users.GetByUsername(ctx, username); err == nil {
		return nil, errs.ErrDuplicate
	} else if !errs.IsNotFoundError(err) {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), s.cfg.BcryptCost)
	if err != nil {
		return nil, err
	}

	user := &entity.User{
		UUID:         uuid.NewString(),
		Username:     username,
		Email:        req.Email,
		PasswordHash: string(hash),
		Role:         entity.RoleUser,
		CreatedAt:    s.timeProvider.Now(),
	}
	if err := users.Create(ctx, user); err != nil {
		return nil, err
	}

	token, err := s.signToken(user)
	if err != nil {
		return nil, err
	}

	s.logger.Info("User registered", map[string]any{
		"user_id":  user.ID,
		"username": user.Username,
	})
	return &usecase.AuthResult{Token: token, User: user}, nil
}

// Login verifies credentials and returns a fresh session.
func (s *Service) Login(ctx context.Context, username, password string) (*usecase.AuthResult, error) {
	user, err := s.uow.GetUserRepository(ctx).GetByUsername(ctx, strings.TrimSpace(username))
	if err != nil {
		if errs.IsNotFoundError(err) {
			return nil, errs.ErrInvalidCredentials
		}
		return nil, err
	}
	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		s.logger.Warn("Failed login attempt", map[string]any{"username": username})
		return nil, errs.ErrInvalidCredentials
	}
	if user.IsBanned {
		return nil, errs.ErrForbidden
	}

	token, err := s.signToken(user)
	if err != nil {
		return nil, err
	}
	return &usecase.AuthResult{Token: token, User: user}, nil
}

// VerifyToken validates a bearer token and loads the user it names.
func (s *Service) VerifyToken(ctx context.Context, tokenString string) (*entity.User, error) {
	parsed, err := jwt.Parse(tokenString, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return []byte(s.cfg.JWTSecret), nil
	}, jwt.WithValidMethods([]string{"HS256"}))
	if err != nil || !parsed.Valid {
		return nil, errs.ErrInvalidCredentials
	}

	claims, ok := parsed.Claims.(jwt.MapClaims)
	if !ok {
		return nil, errs.ErrInvalidCredentials
	}
	rawID, ok := claims["id"].(float64)
	if !ok || rawID <= 0 {
		return nil, errs.ErrInvalidCredentials
	}

	user, err := s.uow.GetUserRepository(ctx).GetByID(ctx, uint64(rawID))
	if err != nil {
		return nil, errs.ErrInvalidCredentials
	}
	if user.IsBanned {
		return nil, errs.ErrForbidden
	}
	return user, nil
}

// SetBanned bans or unbans a user. Existing sessions die on the next
// request because VerifyToken reloads the user.
func (s *Service) SetBanned(ctx context.Context, userID uint64, banned bool) error {
	txCtx, err := s.uow.Begin(ctx)
	if err != nil {
		return err
	}
	users := s.uow.GetUserRepository(txCtx)

	user, err := users.GetByIDForUpdate(txCtx, userID)
	if err != nil {
		_ = s.uow.Rollback(txCtx)
		return err
	}
	user.IsBanned = banned
	if err := users.Update(txCtx, user); err != nil {
		_ = s.uow.Rollback(txCtx)
		return err
	}
	if err := s.uow.Commit(txCtx); err != nil {
		return err
	}

	s.logger.Info("User ban state changed", map[string]any{
		"user_id": userID,
		"banned":  banned,
	})
	return nil
}

// DeleteUser bans a user and soft-deletes every account they hold. The
// ledger rows stay; soft-deleted accounts disappear from lookups and
// reject every movement. Account rows are locked in ascending id order.
func (s *Service) DeleteUser(ctx context.Context, actorID, userID uint64) error {
	if actorID == userID {
		return fmt.Errorf("%w: cannot delete yourself", errs.ErrInvalidRequest)
	}

	txCtx, err := s.uow.Begin(ctx)
	if err != nil {
		return err
	}
	users := s.uow.GetUserRepository(txCtx)

	user, err := users.GetByIDForUpdate(txCtx, userID)
	if err != nil {
		_ = s.uow.Rollback(txCtx)
		return err
	}
	user.IsBanned = true
	if err := users.Update(txCtx, user); err != nil {
		_ = s.uow.Rollback(txCtx)
		return err
	}

	accounts := s.uow.GetAccountRepository(txCtx)
	owned, err := accounts.GetByHolder(txCtx, entity.HolderTypeUser, userID)
	if err != nil {
		_ = s.uow.Rollback(txCtx)
		return err
	}
	sort.Slice(owned, func(i, j int) bool { return owned[i].ID < owned[j].ID })
	for _, summary := range owned {
		account, err := accounts.GetForUpdate(txCtx, summary.ID)
		if err != nil {
			_ = s.uow.Rollback(txCtx)
			return err
		}
		account.IsDeleted = true
		if err := accounts.Update(txCtx, account); err != nil {
			_ = s.uow.Rollback(txCtx)
			return err
		}
	}

	if err := s.uow.Commit(txCtx); err != nil {
		return err
	}

	s.logger.Info("User deleted", map[string]any{
		"admin_id":         actorID,
		"user_id":          userID,
		"accounts_deleted": len(owned),
	})
	return nil
}

// signToken issues an HS256 session token carrying the user id.
func (s *Service) signToken(user *entity.User) (string, error) {
	now := s.timeProvider.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"id":  user.ID,
		"iat": now.Unix(),
		"exp": now.Add(s.cfg.TokenTTL).Unix(),
	})
	return token.SignedString([]byte(s.cfg.JWTSecret))
}

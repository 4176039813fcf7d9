package pin

import (
	"context"
	"time"

	"golang.org/x/crypto/bcrypt"

	errs "github.com/MrEisbear/Silk/internal/domain/error"
	coreport "github.com/MrEisbear/Silk/internal/domain/port/core"
	"github.com/MrEisbear/Silk/internal/domain/port/persistence"
)

// Config carries the lockout policy knobs.
type Config struct {
	// LockoutThreshold is the number of consecutive failures that locks the account
	LockoutThreshold int

	// LockoutDuration is how long a lockout lasts
	LockoutDuration time.Duration

	// BcryptCost overrides the hash cost, zero means the library default
	BcryptCost int
}

// Service verifies PINs against account-scoped hashes and tracks failed
// attempts. Only personal accounts may carry a PIN.
type Service struct {
	uow          persistence.UnitOfWork
	timeProvider coreport.TimeProvider
	logger       coreport.Logger
	cfg          Config
}

// NewService creates a new PIN service
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

// validPinLength accepts the allowed PIN lengths.
func validPinLength(pin string) bool {
	switch len(pin) {
	case 4, 5, 6:
		return true
	default:
		return false
	}
}

// isDigits reports whether the PIN consists of decimal digits only.
func isDigits(pin string) bool {
	for _, r := range pin {
		if r < '0' || r > '9' {
			return false
		}
	}
	return len(pin) > 0
}

// hashPin salts the PIN with the account UUID so identical PINs on
// different accounts never share a hash input.
func (s *Service) hashPin(pin, accountUUID string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(pin+":"+accountUUID), s.cfg.BcryptCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// matchPin compares a raw PIN against the stored account-scoped hash.
func matchPin(pin, accountUUID, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(pin+":"+accountUUID)) == nil
}

// SetPin stores a new PIN hash on a personal account owned by the actor.
func (s *Service) SetPin(ctx context.Context, actorID uint64, accountUUID string, rawPin string) error {
	if !validPinLength(rawPin) || !isDigits(rawPin) {
		return errs.ErrInvalidPin
	}

	txCtx, err := s.uow.Begin(ctx)
	if err != nil {
		return err
	}
	accounts := s.uow.GetAccountRepository(txCtx)

	account, err := accounts.GetByUUID(txCtx, accountUUID)
	if err != nil {
		_ = s.uow.Rollback(txCtx)
		return err
	}
	if !account.IsPersonal() {
		_ = s.uow.Rollback(txCtx)
		return errs.ErrUnsupportedAccountType
	}
	if !account.IsOwnedBy(actorID) {
		_ = s.uow.Rollback(txCtx)
		return errs.ErrForbidden
	}

	hash, err := s.hashPin(rawPin, account.UUID)
	if err != nil {
		_ = s.uow.Rollback(txCtx)
		return err
	}

	account, err = accounts.GetForUpdate(txCtx, account.ID)
	if err != nil {
		_ = s.uow.Rollback(txCtx)
		return err
	}
	account.PinHash = hash
	account.PinFailedAttempts = 0
	account.PinLockedUntil = nil
	if err := accounts.Update(txCtx, account); err != nil {
		_ = s.uow.Rollback(txCtx)
		return err
	}

	if err := s.uow.Commit(txCtx); err != nil {
		return err
	}

	s.logger.Info("Account PIN updated", map[string]any{
		"actor_id":     actorID,
		"account_uuid": accountUUID,
	})
	return nil
}

// HasPin reports whether a PIN is configured on an account the actor owns.
func (s *Service) HasPin(ctx context.Context, actorID uint64, accountUUID string) (bool, error) {
	account, err := s.uow.GetAccountRepository(ctx).GetByUUID(ctx, accountUUID)
	if err != nil {
		return false, err
	}
	if !account.IsOwnedBy(actorID) {
		return false, errs.ErrForbidden
	}
	return account.HasPin(), nil
}

// Verify checks a PIN against an account's stored hash and updates the
// failure counter. The counter update commits in its own transaction even
// when verification fails, so a surrounding operation's rollback can never
// erase a recorded failed attempt.
func (s *Service) Verify(ctx context.Context, accountUUID string, rawPin string) error {
	txCtx, err := s.uow.Begin(ctx)
	if err != nil {
		return err
	}
	accounts := s.uow.GetAccountRepository(txCtx)

	account, err := accounts.GetByUUID(txCtx, accountUUID)
	if err != nil {
		_ = s.uow.Rollback(txCtx)
		return err
	}
	if !account.IsPersonal() {
		_ = s.uow.Rollback(txCtx)
		return errs.ErrUnsupportedAccountType
	}

	account, err = accounts.GetForUpdate(txCtx, account.ID)
	if err != nil {
		_ = s.uow.Rollback(txCtx)
		return err
	}
	if !account.HasPin() {
		_ = s.uow.Rollback(txCtx)
		return errs.ErrPinNotSet
	}

	now := s.timeProvider.Now()
	if account.IsPinLocked(now) {
		_ = s.uow.Rollback(txCtx)
		return errs.NewAccountLockedError(account.UUID,
			account.PinLockedUntil.UTC().Format(time.RFC3339))
	}

	if matchPin(rawPin, account.UUID, account.PinHash) {
		account.PinFailedAttempts = 0
		account.PinLockedUntil = nil
		if err := accounts.Update(txCtx, account); err != nil {
			_ = s.uow.Rollback(txCtx)
			return err
		}
		return s.uow.Commit(txCtx)
	}

	account.PinFailedAttempts++
	if account.PinFailedAttempts >= s.cfg.LockoutThreshold {
		lockedUntil := now.Add(s.cfg.LockoutDuration)
		account.PinLockedUntil = &lockedUntil
		s.logger.Warn("Account locked after repeated PIN failures", map[string]any{
			"account_uuid": account.UUID,
			"locked_until": lockedUntil.UTC().Format(time.RFC3339),
		})
	}
	if err := accounts.Update(txCtx, account); err != nil {
		_ = s.uow.Rollback(txCtx)
		return err
	}
	if err := s.uow.Commit(txCtx); err != nil {
		return err
	}
	return errs.ErrInvalidPin
}

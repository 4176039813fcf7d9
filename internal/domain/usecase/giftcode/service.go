package giftcode

import (
	"context"
	"crypto/rand"
	"fmt"
	"math/big"
	"time"

	errs "github.com/MrEisbear/Silk/internal/domain/error"
	coreport "github.com/MrEisbear/Silk/internal/domain/port/core"
	"github.com/MrEisbear/Silk/internal/domain/port/persistence"
)

// Config carries the gift code knobs.
type Config struct {
	// TTL is how long a code stays redeemable after issuance
	TTL time.Duration

	// GenerationRetries bounds the collision retries during code generation
	GenerationRetries int
}

// Service issues and redeems prepaid gift codes. Funds are held in escrow
// from issuance until exactly one of redemption or expiry refund.
type Service struct {
	uow          persistence.UnitOfWork
	timeProvider coreport.TimeProvider
	logger       coreport.Logger
	cfg          Config
}

// NewService creates a new gift code service
func NewService(
	uow persistence.UnitOfWork,
	timeProvider coreport.TimeProvider,
	logger coreport.Logger,
	cfg Config,
) *Service {
	if cfg.GenerationRetries <= 0 {
		cfg.GenerationRetries = 5
	}
	return &Service{
		uow:          uow,
		timeProvider: timeProvider,
		logger:       logger,
		cfg:          cfg,
	}
}

// codeSpace is the number of possible fixed-length numeric codes.
var codeSpace = new(big.Int).Exp(big.NewInt(10), big.NewInt(16), nil)

// generateCode draws a fixed-length numeric code from the CSPRNG and
// retries a bounded number of times on collision.
func (s *Service) generateCode(ctx context.Context, codes persistence.GiftCodeRepository) (string, error) {
	for attempt := 0; attempt < s.cfg.GenerationRetries; attempt++ {
		n, err := rand.Int(rand.Reader, codeSpace)
		if err != nil {
			return "", fmt.Errorf("%w: code generation failed", errs.ErrInternalServer)
		}
		code := fmt.Sprintf("%016d", n)

		exists, err := codes.CodeExists(ctx, code)
		if err != nil {
			return "", err
		}
		if !exists {
			return code, nil
		}
	}
	return "", fmt.Errorf("%w: gift code space exhausted after %d attempts",
		errs.ErrInternalServer, s.cfg.GenerationRetries)
}

// withTx runs fn inside a unit of work, committing on success.
func (s *Service) withTx(ctx context.Context, fn func(txCtx context.Context) error) error {
	txCtx, err := s.uow.Begin(ctx)
	if err != nil {
		return err
	}
	if err := fn(txCtx); err != nil {
		if rbErr := s.uow.Rollback(txCtx); rbErr != nil {
			s.logger.Error("Rollback failed", map[string]any{
				"error":          rbErr.Error(),
				"original_error": err.Error(),
			})
		}
		return err
	}
	return s.uow.Commit(txCtx)
}

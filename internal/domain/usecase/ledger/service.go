package ledger

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	coreport "github.com/MrEisbear/Silk/internal/domain/port/core"
	"github.com/MrEisbear/Silk/internal/domain/port/persistence"
)

// Config carries the externally configurable knobs of the ledger.
// None of the rates or windows are hard-coded in the operations.
type Config struct {
	// TaxRates maps a tax category to its rate, e.g. "1" -> 0.30
	TaxRates map[string]decimal.Decimal

	// TaxSinkAccountUUID receives every collected tax amount
	TaxSinkAccountUUID string

	// SalaryCooldown is the minimum gap between two successful claims
	SalaryCooldown time.Duration
}

// Service implements every balance-mutating ledger operation. Each
// operation runs in a single database transaction, acquires row locks on
// all accounts it will mutate in ascending internal-id order, validates
// before mutating, and pairs every balance change with a ledger entry.
type Service struct {
	uow          persistence.UnitOfWork
	timeProvider coreport.TimeProvider
	logger       coreport.Logger
	cfg          Config
}

// NewService creates a new ledger service
func NewService(
	uow persistence.UnitOfWork,
	timeProvider coreport.TimeProvider,
	logger coreport.Logger,
	cfg Config,
) *Service {
	if cfg.TaxRates == nil {
		cfg.TaxRates = map[string]decimal.Decimal{}
	}
	return &Service{
		uow:          uow,
		timeProvider: timeProvider,
		logger:       logger,
		cfg:          cfg,
	}
}

// TaxRate returns the configured rate for a category, zero when unknown.
func (s *Service) TaxRate(category string) decimal.Decimal {
	if category == "" {
		return decimal.Zero
	}
	return s.cfg.TaxRates[category]
}

// withTx runs fn inside a unit of work, committing on success and rolling
// back on any error so partial state is never observable.
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

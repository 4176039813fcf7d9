package paytoken

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	errs "github.com/MrEisbear/Silk/internal/domain/error"
	coreport "github.com/MrEisbear/Silk/internal/domain/port/core"
	"github.com/MrEisbear/Silk/internal/domain/port/persistence"
	"github.com/MrEisbear/Silk/internal/domain/port/usecase"
)

// tokenBytes is the entropy of a token; rendered as 64 hex characters.
const tokenBytes = 32

// PinVerifier authorizes a token issuance against the sender's PIN.
type PinVerifier interface {
	Verify(ctx context.Context, accountUUID string, rawPin string) error
}

// PaymentExecutor runs a taxed payment inside the caller's unit of work.
// Satisfied by the ledger service.
type PaymentExecutor interface {
	PayInTransaction(txCtx context.Context, fromUUID, toUUID string, amount decimal.Decimal, description, taxCategory string) (*usecase.LedgerResult, error)

	// TaxRate returns the configured rate for a category, zero when unknown
	TaxRate(category string) decimal.Decimal
}

// Config carries the payment token knobs.
type Config struct {
	// TTL is how long an issued token stays consumable
	TTL time.Duration

	// WebhookMaxLength bounds the accepted webhook URL length
	WebhookMaxLength int

	// WebhookAllowedHosts is the set of hosts a webhook URL may target
	WebhookAllowedHosts []string
}

// Service issues, consumes and cancels single-use payment tokens. A token
// reserves intent only; funds move exactly once, on consumption.
type Service struct {
	uow          persistence.UnitOfWork
	timeProvider coreport.TimeProvider
	logger       coreport.Logger
	pins         PinVerifier
	payments     PaymentExecutor
	notifier     coreport.WebhookNotifier
	cfg          Config
}

// NewService creates a new payment token service
func NewService(
	uow persistence.UnitOfWork,
	timeProvider coreport.TimeProvider,
	logger coreport.Logger,
	pins PinVerifier,
	payments PaymentExecutor,
	notifier coreport.WebhookNotifier,
	cfg Config,
) *Service {
	if cfg.WebhookMaxLength <= 0 {
		cfg.WebhookMaxLength = 2000
	}
	return &Service{
		uow:          uow,
		timeProvider: timeProvider,
		logger:       logger,
		pins:         pins,
		payments:     payments,
		notifier:     notifier,
		cfg:          cfg,
	}
}

// generateToken draws an opaque token from the CSPRNG.
func generateToken() (string, error) {
	buf := make([]byte, tokenBytes)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("%w: token generation failed", errs.ErrInternalServer)
	}
	return hex.EncodeToString(buf), nil
}

// validateWebhookURL enforces the delivery policy: secure scheme, bounded
// length and an allow-listed host.
func (s *Service) validateWebhookURL(raw string) error {
	if len(raw) > s.cfg.WebhookMaxLength {
		return fmt.Errorf("%w: exceeds %d characters", errs.ErrInvalidWebhookURL, s.cfg.WebhookMaxLength)
	}
	parsed, err := url.Parse(raw)
	if err != nil || parsed.Scheme != "https" || parsed.Host == "" {
		return fmt.Errorf("%w: https is required", errs.ErrInvalidWebhookURL)
	}
	host := strings.ToLower(parsed.Hostname())
	for _, allowed := range s.cfg.WebhookAllowedHosts {
		if host == allowed {
			return nil
		}
	}
	return fmt.Errorf("%w: host %q is not allowed", errs.ErrInvalidWebhookURL, host)
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

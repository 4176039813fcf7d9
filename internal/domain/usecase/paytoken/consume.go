package paytoken

import (
	"context"

	coreport "github.com/MrEisbear/Silk/internal/domain/port/core"

	"github.com/MrEisbear/Silk/internal/domain/entity"
	errs "github.com/MrEisbear/Silk/internal/domain/error"
	"github.com/MrEisbear/Silk/internal/domain/port/usecase"
)

// Consume executes the tokenized payment exactly once. The token row is
// locked before its state is read, so two concurrent consume calls see
// one success and one terminal-state error. The webhook fires only after
// the transaction has committed.
func (s *Service) Consume(ctx context.Context, actorID uint64, tokenString string) (*usecase.ConsumeResult, error) {
	var result *usecase.ConsumeResult
	var consumed *entity.PaymentToken
	var expired bool

	err := s.withTx(ctx, func(txCtx context.Context) error {
		tokens := s.uow.GetPaymentTokenRepository(txCtx)

		token, err := tokens.GetByTokenForUpdate(txCtx, tokenString)
		if err != nil {
			return err
		}
		switch token.Status {
		case entity.TokenStatusIssued:
			// continue below
		case entity.TokenStatusExpired:
			return errs.ErrTokenExpired
		default:
			return errs.ErrAlreadyConsumed
		}

		if token.IsExpired(s.timeProvider.Now()) {
			// Terminal expiry transition committed in place; the caller
			// still sees an expired error afterwards.
			expired = true
			token.Status = entity.TokenStatusExpired
			return tokens.Update(txCtx, token)
		}

		recipient, err := s.uow.GetAccountRepository(txCtx).GetByUUID(txCtx, token.RecipientUUID)
		if err != nil {
			return err
		}
		if !recipient.IsOwnedBy(actorID) {
			return errs.ErrForbidden
		}

		payResult, err := s.payments.PayInTransaction(txCtx,
			token.SenderUUID, token.RecipientUUID, token.Amount, token.Label, token.TaxCategory)
		if err != nil {
			return err
		}

		token.Status = entity.TokenStatusConsumed
		if err := tokens.Update(txCtx, token); err != nil {
			return err
		}

		consumed = token
		result = &usecase.ConsumeResult{
			Token:           token.Token,
			TransactionUUID: payResult.TransactionUUID,
			TaxUUID:         payResult.TaxUUID,
			Amount:          payResult.Amount,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	if expired {
		return nil, errs.ErrTokenExpired
	}

	s.logger.Info("Payment token consumed", map[string]any{
		"actor_id":         actorID,
		"sender_uuid":      consumed.SenderUUID,
		"recipient_uuid":   consumed.RecipientUUID,
		"amount":           result.Amount,
		"transaction_uuid": result.TransactionUUID,
	})

	if consumed.WebhookURL != "" {
		s.deliverWebhook(ctx, consumed)
	}
	return result, nil
}

// deliverWebhook notifies the token's callback URL. Failures are logged
// and dropped; the payment has already committed.
func (s *Service) deliverWebhook(ctx context.Context, token *entity.PaymentToken) {
	notification := coreport.WebhookNotification{
		Token:     token.Token,
		Status:    token.Status,
		Amount:    entity.FormatAmount(token.Amount),
		Sender:    token.SenderUUID,
		Recipient: token.RecipientUUID,
		Label:     token.Label,
	}
	if err := s.notifier.Notify(ctx, token.WebhookURL, notification); err != nil {
		s.logger.Warn("Webhook delivery failed", map[string]any{
			"token": token.Token,
			"error": err.Error(),
		})
	}
}

// Cancel voids an issued token before consumption. Only the sender may
// cancel; the transition is terminal.
func (s *Service) Cancel(ctx context.Context, actorID uint64, tokenString string) error {
	err := s.withTx(ctx, func(txCtx context.Context) error {
		tokens := s.uow.GetPaymentTokenRepository(txCtx)

		token, err := tokens.GetByTokenForUpdate(txCtx, tokenString)
		if err != nil {
			return err
		}
		if token.Status != entity.TokenStatusIssued {
			return errs.ErrAlreadyConsumed
		}

		sender, err := s.uow.GetAccountRepository(txCtx).GetByUUID(txCtx, token.SenderUUID)
		if err != nil {
			return err
		}
		if !sender.IsOwnedBy(actorID) {
			return errs.ErrForbidden
		}

		token.Status = entity.TokenStatusCancelled
		return tokens.Update(txCtx, token)
	})
	if err != nil {
		return err
	}

	s.logger.Info("Payment token cancelled", map[string]any{
		"actor_id": actorID,
		"token":    tokenString,
	})
	return nil
}

// Status reports the token's state to its sender or recipient. An issued
// token past its expiry reads as expired even before the row transitions.
func (s *Service) Status(ctx context.Context, actorID uint64, tokenString string) (string, error) {
	token, err := s.uow.GetPaymentTokenRepository(ctx).GetByToken(ctx, tokenString)
	if err != nil {
		return "", err
	}

	accounts := s.uow.GetAccountRepository(ctx)
	authorized := false
	for _, accountUUID := range []string{token.SenderUUID, token.RecipientUUID} {
		account, err := accounts.GetByUUID(ctx, accountUUID)
		if err == nil && account.IsOwnedBy(actorID) {
			authorized = true
			break
		}
	}
	if !authorized {
		return "", errs.ErrForbidden
	}

	if token.Status == entity.TokenStatusIssued && token.IsExpired(s.timeProvider.Now()) {
		return entity.TokenStatusExpired, nil
	}
	return token.Status, nil
}
